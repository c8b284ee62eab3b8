package page

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/wedge762/deckpress/internal/prompt"
)

// Chunk splits the ordered card paths into pages of at most size entries.
func Chunk(paths []string, size int) [][]string {
	var pages [][]string
	for len(paths) > size {
		pages = append(pages, paths[:size])
		paths = paths[size:]
	}
	if len(paths) > 0 {
		pages = append(pages, paths)
	}
	return pages
}

// Montage composites up to PageSize card images into a 3-wide grid with a
// gutter around every cell and writes it to outPath. The encoder is chosen
// by the output extension. A partial final page simply has fewer rows.
func Montage(paths []string, cardW, cardH, gutter int, outPath string, policy prompt.Policy) error {
	if len(paths) == 0 {
		return fmt.Errorf("montage %s: no images", outPath)
	}
	if len(paths) > PageSize {
		return fmt.Errorf("montage %s: %d images exceed page size %d", outPath, len(paths), PageSize)
	}
	if err := prompt.EnsureWritable(policy, outPath); err != nil {
		return err
	}

	cols := Columns
	if len(paths) < cols {
		cols = len(paths)
	}
	rows := (len(paths) + Columns - 1) / Columns

	cellW := cardW + 2*gutter
	cellH := cardH + 2*gutter
	canvas := imaging.New(cols*cellW, rows*cellH, color.White)

	for i, p := range paths {
		img, err := imaging.Open(p)
		if err != nil {
			return fmt.Errorf("open card image %s: %w", p, err)
		}
		img = imaging.Resize(img, cardW, cardH, imaging.Lanczos)
		x := (i % Columns) * cellW
		y := (i / Columns) * cellH
		canvas = imaging.Paste(canvas, img, image.Pt(x+gutter, y+gutter))
	}

	if err := imaging.Save(canvas, outPath); err != nil {
		return fmt.Errorf("write page %s: %w", outPath, err)
	}
	return nil
}
