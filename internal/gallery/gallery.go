// Package gallery tracks an ordered list of image identifiers and the
// position currently being viewed. Navigation wraps around in both
// directions, so browsing never runs off either end of the list.
package gallery

import "errors"

// ErrNoImages is returned when a Gallery is constructed from an empty
// identifier list.
var ErrNoImages = errors.New("gallery: no images")

// Gallery holds image identifiers in display order plus the active index.
// The identifier list is fixed at construction and never empty.
type Gallery struct {
	ids   []string
	index int
}

// New creates a Gallery over the given identifiers. Display order is the
// slice order. Returns ErrNoImages for an empty list.
func New(ids []string) (*Gallery, error) {
	if len(ids) == 0 {
		return nil, ErrNoImages
	}
	owned := make([]string, len(ids))
	copy(owned, ids)
	return &Gallery{ids: owned}, nil
}

// Current returns the identifier at the active index.
func (g *Gallery) Current() string {
	return g.ids[g.index]
}

// Next advances to the following identifier, wrapping from the last entry
// back to the first, and returns the new current identifier.
func (g *Gallery) Next() string {
	g.index = (g.index + 1) % len(g.ids)
	return g.ids[g.index]
}

// Previous retreats to the preceding identifier, wrapping from the first
// entry to the last, and returns the new current identifier.
func (g *Gallery) Previous() string {
	g.index = (g.index - 1 + len(g.ids)) % len(g.ids)
	return g.ids[g.index]
}

// Index returns the active position, always in [0, Len()).
func (g *Gallery) Index() int {
	return g.index
}

// Len returns the number of identifiers in the gallery.
func (g *Gallery) Len() int {
	return len(g.ids)
}
