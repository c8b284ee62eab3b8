// Package magiccards resolves card names by scraping the magiccards.info
// search results page for an image whose alt text matches the name exactly.
package magiccards

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/wedge762/deckpress/internal/source"
)

const defaultBaseURL = "http://magiccards.info"

var reAltText = regexp.MustCompile(`alt="([^"]+)"`)

type Resolver struct {
	// BaseURL is overridable for tests.
	BaseURL string
}

func New() *Resolver {
	return &Resolver{BaseURL: defaultBaseURL}
}

func (r *Resolver) Name() string { return "magiccards" }

// Resolve fetches the card-name search page and pattern-matches the raw
// markup for an img tag with the exact card name as alt text. A found src
// that is relative is resolved against the site origin.
func (r *Resolver) Resolve(ctx context.Context, c *source.Client, cardName string) (source.Outcome, error) {
	query := strings.ReplaceAll(cardName, " ", "+")
	searchURL := fmt.Sprintf("%s/query?q=%s&v=card&s=cname", r.BaseURL, query)

	resp, err := c.Get(ctx, searchURL)
	if err != nil {
		return source.Outcome{}, fmt.Errorf("query magiccards: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return source.Outcome{}, fmt.Errorf("magiccards: unexpected status %d for %q", resp.StatusCode, cardName)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return source.Outcome{}, fmt.Errorf("magiccards: read page: %w", err)
	}

	src, ok := imageSrc(string(body), cardName)
	if !ok {
		if hint := closestAlt(string(body), cardName); hint != "" {
			return source.Outcome{}, fmt.Errorf("magiccards has no image with alt %q (closest: %q): %w",
				cardName, hint, source.ErrNotFound)
		}
		return source.Outcome{}, fmt.Errorf("magiccards has no image with alt %q: %w", cardName, source.ErrNotFound)
	}

	abs, err := r.absolute(src)
	if err != nil {
		return source.Outcome{}, fmt.Errorf("magiccards: bad image url %q: %w", src, err)
	}
	return source.Outcome{URL: abs}, nil
}

// imageSrc finds the src of the first img tag whose alt text is exactly the
// card name.
func imageSrc(page, cardName string) (string, bool) {
	re, err := regexp.Compile(`img\s+src="([^"]+)"\s+alt="` + regexp.QuoteMeta(cardName) + `"`)
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(page)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// closestAlt ranks every alt text on the page against the card name and
// returns the nearest one, as a diagnostic for near-miss spellings.
func closestAlt(page, cardName string) string {
	var alts []string
	for _, m := range reAltText.FindAllStringSubmatch(page, -1) {
		alts = append(alts, m[1])
	}
	ranks := fuzzy.RankFindFold(cardName, alts)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

func (r *Resolver) absolute(src string) (string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", err
	}
	if u.IsAbs() {
		return src, nil
	}
	base, err := url.Parse(r.BaseURL)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(u).String(), nil
}
