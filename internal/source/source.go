// Package source defines the card-image lookup chain: an ordered set of
// resolvers that turn a card name into image bytes or an image URL, plus the
// shared HTTP client they fetch through. Each remote service lives in its own
// subpackage so site changes stay contained there.
package source

import (
	"context"
	"errors"
)

// ErrNotFound reports that a source has no card under the requested name.
// It is the only resolver error that means "this card does not exist here";
// anything else is a transport problem.
var ErrNotFound = errors.New("card not found")

// Outcome is a successful resolution. Exactly one field is set: either the
// image bytes are already in hand, or URL still needs a byte fetch.
type Outcome struct {
	Bytes []byte
	URL   string
}

// Resolver maps a card name to an Outcome via one remote service.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, c *Client, cardName string) (Outcome, error)
}
