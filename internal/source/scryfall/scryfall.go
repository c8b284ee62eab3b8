// Package scryfall resolves card names against the Scryfall named-card API,
// which can return the card image directly as the response body.
package scryfall

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/wedge762/deckpress/internal/source"
)

const defaultBaseURL = "https://api.scryfall.com"

type Resolver struct {
	// BaseURL is overridable for tests.
	BaseURL string
}

func New() *Resolver {
	return &Resolver{BaseURL: defaultBaseURL}
}

func (r *Resolver) Name() string { return "scryfall" }

// Resolve queries /cards/named with the exact card name and format=image.
// A 2xx response body is the image itself; a 404 means the name is unknown
// to Scryfall.
func (r *Resolver) Resolve(ctx context.Context, c *source.Client, cardName string) (source.Outcome, error) {
	q := url.Values{}
	q.Set("exact", cardName)
	q.Set("format", "image")

	resp, err := c.Get(ctx, r.BaseURL+"/cards/named?"+q.Encode())
	if err != nil {
		return source.Outcome{}, fmt.Errorf("query scryfall: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return source.Outcome{}, fmt.Errorf("scryfall has no card %q: %w", cardName, source.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return source.Outcome{}, fmt.Errorf("scryfall: unexpected status %d for %q", resp.StatusCode, cardName)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return source.Outcome{}, fmt.Errorf("scryfall: read image: %w", err)
	}
	if len(b) == 0 {
		return source.Outcome{}, fmt.Errorf("scryfall: %w for %q", source.ErrEmptyBody, cardName)
	}
	return source.Outcome{Bytes: b}, nil
}
