package layout

import "math"

// Band maps each value of a categorical domain to an equal-width span of a
// pixel range. Padding is a fraction of the step used both between bands and
// at the outer edges; leftover space is split evenly on both sides.
type Band[K comparable] struct {
	domain    []K
	index     map[K]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBand builds a band scale over domain for the range [r0, r1]. Duplicate
// domain values keep their first position.
func NewBand[K comparable](domain []K, r0, r1, padding float64) *Band[K] {
	padding = math.Max(0, math.Min(1, padding))

	b := &Band[K]{index: make(map[K]int, len(domain))}
	for _, k := range domain {
		if _, ok := b.index[k]; ok {
			continue
		}
		b.index[k] = len(b.domain)
		b.domain = append(b.domain, k)
	}

	n := float64(len(b.domain))
	b.step = (r1 - r0) / math.Max(1, n-padding+2*padding)
	b.start = r0 + (r1-r0-b.step*(n-padding))*0.5
	b.bandwidth = b.step * (1 - padding)
	return b
}

// Position returns the start of k's band and whether k is in the domain.
func (b *Band[K]) Position(k K) (float64, bool) {
	i, ok := b.index[k]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

// Center returns the midpoint of k's band, used for axis ticks.
func (b *Band[K]) Center(k K) (float64, bool) {
	p, ok := b.Position(k)
	return p + b.bandwidth/2, ok
}

// Bandwidth returns the width of every band.
func (b *Band[K]) Bandwidth() float64 { return b.bandwidth }

// Step returns the distance between the starts of adjacent bands.
func (b *Band[K]) Step() float64 { return b.step }

// Domain returns a copy of the scale's domain in band order.
func (b *Band[K]) Domain() []K {
	out := make([]K, len(b.domain))
	copy(out, b.domain)
	return out
}
