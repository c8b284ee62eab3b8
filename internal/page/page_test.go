package page

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wedge762/deckpress/internal/prompt"
)

// writeCard writes a small PNG-encoded image, optionally without an
// extension like a cache entry.
func writeCard(t *testing.T, path string, w, h int) string {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 0x80, G: 0x20, B: 0x20, A: 0xff})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, imaging.Encode(f, img, imaging.PNG))
	require.NoError(t, f.Close())
	return path
}

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestChunk(t *testing.T) {
	paths := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("card%d", i)
		}
		return out
	}

	assert.Nil(t, Chunk(nil, PageSize))
	assert.Len(t, Chunk(paths(9), PageSize), 1)

	pages := Chunk(paths(10), PageSize)
	require.Len(t, pages, 2)
	assert.Len(t, pages[0], 9)
	assert.Len(t, pages[1], 1)

	pages = Chunk(paths(18), PageSize)
	require.Len(t, pages, 2)
	assert.Len(t, pages[1], 9)
}

func TestNormalizeForcesExactSize(t *testing.T) {
	// Extensionless, like a cache entry.
	path := writeCard(t, filepath.Join(t.TempDir(), "Lightning Bolt"), 100, 100)

	require.NoError(t, Normalize(path, DefaultCardWidth, DefaultCardHeight))

	w, h := decodeSize(t, path)
	assert.Equal(t, DefaultCardWidth, w)
	assert.Equal(t, DefaultCardHeight, h)
}

func TestNormalizeMissingFile(t *testing.T) {
	require.Error(t, Normalize(filepath.Join(t.TempDir(), "absent"), 312, 445))
}

func TestMontageFullPage(t *testing.T) {
	dir := t.TempDir()
	var cards []string
	for i := 0; i < PageSize; i++ {
		cards = append(cards, writeCard(t, filepath.Join(dir, fmt.Sprintf("c%d", i)), 312, 445))
	}

	out := filepath.Join(dir, "page0.png")
	require.NoError(t, Montage(cards, 312, 445, 8, out, prompt.DenyAll{}))

	w, h := decodeSize(t, out)
	assert.Equal(t, 3*(312+16), w)
	assert.Equal(t, 3*(445+16), h)
}

func TestMontagePartialPage(t *testing.T) {
	dir := t.TempDir()
	var cards []string
	for i := 0; i < 5; i++ {
		cards = append(cards, writeCard(t, filepath.Join(dir, fmt.Sprintf("c%d", i)), 312, 445))
	}

	out := filepath.Join(dir, "page1.png")
	require.NoError(t, Montage(cards, 312, 445, 8, out, prompt.DenyAll{}))

	w, h := decodeSize(t, out)
	assert.Equal(t, 3*(312+16), w)
	assert.Equal(t, 2*(445+16), h)
}

func TestMontageRespectsOverwritePolicy(t *testing.T) {
	dir := t.TempDir()
	card := writeCard(t, filepath.Join(dir, "c0"), 312, 445)
	out := filepath.Join(dir, "page0.png")
	require.NoError(t, os.WriteFile(out, []byte("existing"), 0o644))

	err := Montage([]string{card}, 312, 445, 8, out, prompt.DenyAll{})
	require.ErrorIs(t, err, prompt.ErrDestinationExists)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("existing"), b)
}

func TestMontageRejectsOversizedPage(t *testing.T) {
	cards := make([]string, PageSize+1)
	err := Montage(cards, 312, 445, 8, "page.png", prompt.AllowAll{})
	require.Error(t, err)
}

func TestMergePDFAppendsExtension(t *testing.T) {
	dir := t.TempDir()
	pagePath := filepath.Join(dir, "page0.png")
	writeCard(t, pagePath, 100, 140)

	out, err := MergePDF([]string{pagePath}, filepath.Join(dir, "deck"), prompt.DenyAll{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "deck.pdf"), out)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestMergePDFRespectsOverwritePolicy(t *testing.T) {
	dir := t.TempDir()
	pagePath := writeCard(t, filepath.Join(dir, "page0.png"), 100, 140)
	existing := filepath.Join(dir, "deck.pdf")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

	_, err := MergePDF([]string{pagePath}, existing, prompt.DenyAll{})
	require.ErrorIs(t, err, prompt.ErrDestinationExists)
}
