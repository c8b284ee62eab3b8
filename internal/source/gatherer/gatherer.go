// Package gatherer resolves card names via the Gatherer search redirect: a
// name search redirects to the card detail page, whose URL carries the
// multiverse id, from which the image handler URL is synthesized.
package gatherer

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/wedge762/deckpress/internal/source"
)

const defaultBaseURL = "http://gatherer.wizards.com"

type Resolver struct {
	// BaseURL is overridable for tests.
	BaseURL string
}

func New() *Resolver {
	return &Resolver{BaseURL: defaultBaseURL}
}

func (r *Resolver) Name() string { return "gatherer" }

// Resolve searches Gatherer by name and follows the redirect chain. The
// final URL names the card's multiverseid when the search hit a single card;
// a final URL without one means the name found nothing.
func (r *Resolver) Resolve(ctx context.Context, c *source.Client, cardName string) (source.Outcome, error) {
	searchURL := fmt.Sprintf("%s/Pages/Search/Default.aspx?name=+%s", r.BaseURL, url.QueryEscape("["+cardName+"]"))

	resp, err := c.Get(ctx, searchURL)
	if err != nil {
		return source.Outcome{}, fmt.Errorf("query gatherer: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return source.Outcome{}, fmt.Errorf("gatherer: unexpected status %d for %q", resp.StatusCode, cardName)
	}

	id := resp.Request.URL.Query().Get("multiverseid")
	if id == "" {
		return source.Outcome{}, fmt.Errorf("gatherer found no card %q: %w", cardName, source.ErrNotFound)
	}
	if _, err := strconv.Atoi(id); err != nil {
		return source.Outcome{}, fmt.Errorf("gatherer: non-numeric multiverseid %q for %q", id, cardName)
	}

	return source.Outcome{
		URL: fmt.Sprintf("%s/Handlers/Image.ashx?multiverseid=%s&type=card", r.BaseURL, id),
	}, nil
}
