// Package pool picks reaction assets for stabilized categories while
// avoiding immediate repeats.
package pool

import "math/rand/v2"

// RecentBufferSize is how many picks per category are remembered to bias
// selection away from repeats.
const RecentBufferSize = 3

// Selector maps category names to asset identifiers and hands out one asset
// per request. Identifiers are opaque; the selector never interprets them.
// A Selector is populated once and confined to a single logical owner.
type Selector struct {
	assets   map[string][]string
	recent   map[string][]string
	fallback string
	intn     func(n int) int
}

// New builds a Selector over the given catalogue. Categories with no assets
// fall back to the fallback category's list.
func New(fallback string, assets map[string][]string) *Selector {
	copied := make(map[string][]string, len(assets))
	for cat, ids := range assets {
		copied[cat] = append([]string(nil), ids...)
	}
	return &Selector{
		assets:   copied,
		recent:   make(map[string][]string),
		fallback: fallback,
		intn:     rand.IntN,
	}
}

// Select returns one asset for the category, avoiding the last few picks.
// The second return is false when neither the category nor the fallback has
// any assets; absence, not an error.
//
// Guarantee: for a pool of four or more assets, no identifier repeats
// within three consecutive picks for the same category.
func (p *Selector) Select(category string) (string, bool) {
	effective := category
	ids := p.assets[effective]
	if len(ids) == 0 {
		effective = p.fallback
		ids = p.assets[effective]
	}
	if len(ids) == 0 {
		return "", false
	}

	candidates := p.excludeRecent(effective, ids)
	if len(candidates) == 0 {
		// Recent history covers the whole pool, which only happens when the
		// pool is no bigger than the buffer. Fall back to the full list.
		candidates = ids
	}

	pick := candidates[p.intn(len(candidates))]
	p.remember(effective, pick)
	return pick, true
}

// Categories returns the category names with at least one asset.
func (p *Selector) Categories() []string {
	out := make([]string, 0, len(p.assets))
	for cat, ids := range p.assets {
		if len(ids) > 0 {
			out = append(out, cat)
		}
	}
	return out
}

// Size returns the number of assets registered for a category.
func (p *Selector) Size(category string) int {
	return len(p.assets[category])
}

// Reset clears all recent-pick buffers. Normal session stop/start does not
// reach this; it exists for hosts that rebuild their catalogue.
func (p *Selector) Reset() {
	p.recent = make(map[string][]string)
}

func (p *Selector) excludeRecent(category string, ids []string) []string {
	recent := p.recent[category]
	if len(recent) == 0 {
		return ids
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		seen := false
		for _, r := range recent {
			if r == id {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, id)
		}
	}
	return out
}

func (p *Selector) remember(category, id string) {
	buf := append(p.recent[category], id)
	if len(buf) > RecentBufferSize {
		buf = buf[1:]
	}
	p.recent[category] = buf
}
