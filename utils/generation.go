package utils

import "sync/atomic"

// Generation is a monotonically increasing counter used to suppress stale
// responses. A caller tags each outgoing request with Next() and applies the
// result only while IsCurrent still holds for that tag, so a slow superseded
// response can never clobber fresher state.
type Generation struct {
	counter atomic.Uint64
}

// Next advances the generation and returns the new value
func (g *Generation) Next() uint64 {
	return g.counter.Add(1)
}

// Current returns the latest generation
func (g *Generation) Current() uint64 {
	return g.counter.Load()
}

// IsCurrent reports whether the given tag is still the latest generation
func (g *Generation) IsCurrent(tag uint64) bool {
	return g.counter.Load() == tag
}
