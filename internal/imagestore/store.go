// Package imagestore is the on-disk image cache: one file per unique card
// name, named by a deterministic slug of the name, no extension, no metadata.
// Existence of the file is the only state; entries persist across runs and
// are never removed automatically.
package imagestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/wedge762/deckpress/internal/prompt"
	"golang.org/x/text/unicode/norm"
)

// Store is the cache directory. Two concurrent processes sharing one
// directory can race on Exists/Write; that is documented as unsupported.
type Store struct {
	dir    string
	policy prompt.Policy
}

// New creates the cache directory if needed.
func New(dir string, policy prompt.Policy) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &Store{dir: dir, policy: policy}, nil
}

// Dir returns the cache root.
func (s *Store) Dir() string { return s.dir }

// Path returns the deterministic cache path for a card name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, slug(name))
}

// Exists reports whether the cache already holds an image for the name.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Write persists image bytes for a card name. Empty data is refused, and an
// existing destination needs the confirmation policy's approval.
func (s *Store) Write(name string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("refusing to cache empty image for %q", name)
	}
	dst := s.Path(name)
	if err := prompt.EnsureWritable(s.policy, dst); err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write cache entry %s: %w", dst, err)
	}
	return nil
}

// slug derives the cache filename from the card name and nothing else:
// compatibility forms folded, diacritics stripped, filesystem separators
// replaced. Visually identical names are deliberately not disambiguated.
func slug(name string) string {
	s := stripDiacritics(norm.NFKC.String(name))
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, s)
}

// stripDiacritics removes combining marks after NFD decomposition.
func stripDiacritics(s string) string {
	decomp := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomp))
	for _, r := range decomp {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
