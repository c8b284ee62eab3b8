// Package pipeline orchestrates the per-card image acquisition: cache check,
// ordered resolver fallback, byte fetch, cache write, normalization. It is
// deliberately best-effort — one unresolvable card never aborts the batch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wedge762/deckpress/internal/deck"
	"github.com/wedge762/deckpress/internal/imagestore"
	"github.com/wedge762/deckpress/internal/page"
	"github.com/wedge762/deckpress/internal/source"
)

// ErrExhausted reports that every source in the chain failed for a card.
var ErrExhausted = errors.New("every source failed")

// Result counts what happened to each unique card name.
type Result struct {
	Hits    int // already cached, no network touched
	Fetched int // downloaded, cached and normalized this run
	Failed  int // every source failed; no cache entry written
}

// Pipeline fetches one image per unique card in a deck.
type Pipeline struct {
	Store     *imagestore.Store
	Client    *source.Client
	Resolvers []source.Resolver
	Log       *slog.Logger

	// Canonical size freshly fetched images are normalized to. Cache hits
	// are assumed already normalized and are never resized again.
	CardWidth  int
	CardHeight int
}

// Run walks the deck's unique cards in deck order, sequentially. It returns
// an error only for failures that must stop the whole run (a refused cache
// overwrite); per-card lookup failures are logged and counted instead.
func (p *Pipeline) Run(ctx context.Context, d *deck.Deck) (Result, error) {
	var res Result
	for _, e := range d.Entries() {
		if p.Store.Exists(e.Name) {
			p.Log.Info("found cached", "card", e.Name)
			res.Hits++
			continue
		}
		p.Log.Info("downloading", "card", e.Name)

		data, err := p.fetch(ctx, e.Name)
		if err != nil {
			p.Log.Error("no source produced an image", "card", e.Name, "error", err)
			res.Failed++
			continue
		}

		if err := p.Store.Write(e.Name, data); err != nil {
			return res, fmt.Errorf("cache %q: %w", e.Name, err)
		}
		if err := page.Normalize(p.Store.Path(e.Name), p.CardWidth, p.CardHeight); err != nil {
			p.Log.Error("normalize failed", "card", e.Name, "error", err)
		}
		res.Fetched++
	}
	return res, nil
}

// fetch walks the resolver chain in priority order. A resolver's ErrNotFound
// and its transport errors both fall through to the next source, but they
// are logged apart so a flaky site is distinguishable from a missing card.
func (p *Pipeline) fetch(ctx context.Context, cardName string) ([]byte, error) {
	lastURL := ""
	for _, r := range p.Resolvers {
		out, err := r.Resolve(ctx, p.Client, cardName)
		if err != nil {
			if errors.Is(err, source.ErrNotFound) {
				p.Log.Info("source has no match", "source", r.Name(), "card", cardName)
			} else {
				p.Log.Error("source failed", "source", r.Name(), "card", cardName, "error", err)
			}
			continue
		}

		data := out.Bytes
		if out.URL != "" {
			lastURL = out.URL
			data, err = p.Client.FetchBytes(ctx, out.URL)
			if err != nil {
				p.Log.Error("image fetch failed", "source", r.Name(), "card", cardName,
					"url", out.URL, "error", err)
				continue
			}
		}
		return data, nil
	}
	if lastURL != "" {
		return nil, fmt.Errorf("%w (last url %s)", ErrExhausted, lastURL)
	}
	return nil, ErrExhausted
}
