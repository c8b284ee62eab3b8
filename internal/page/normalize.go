// Package page turns cached card images into printable output: in-place
// normalization to the common card size, 3x3 montage pages, and an optional
// merged PDF.
package page

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Canonical card size and page geometry. Card size matches the dimensions
// every source image is forced to; pages are fixed 3x3 grids.
const (
	DefaultCardWidth  = 312
	DefaultCardHeight = 445
	DefaultGutter     = 8

	Columns  = 3
	Rows     = 3
	PageSize = Columns * Rows
)

// Normalize rewrites the image file in place to exactly width x height,
// forcing the aspect ratio. The encoding format of the original is kept,
// since cache entries carry no extension.
func Normalize(path string, width, height int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image %s: %w", path, err)
	}
	img, formatName, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode image %s: %w", path, err)
	}

	format, err := imaging.FormatFromExtension(formatName)
	if err != nil {
		return fmt.Errorf("image %s: unsupported format %q: %w", path, formatName, err)
	}

	resized := imaging.Resize(img, width, height, imaging.Lanczos)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rewrite image %s: %w", path, err)
	}
	if err := imaging.Encode(out, resized, format); err != nil {
		out.Close()
		return fmt.Errorf("encode image %s: %w", path, err)
	}
	return out.Close()
}
