package store

import "sync/atomic"

// Handle holds the current Store and allows swapping in a replacement built
// from a reloaded source file. Queries read whichever store was current when
// they started; stores themselves are never mutated.
type Handle struct {
	current atomic.Pointer[Store]
}

// NewHandle returns a Handle serving s.
func NewHandle(s *Store) *Handle {
	h := &Handle{}
	h.current.Store(s)
	return h
}

// Current returns the store currently being served.
func (h *Handle) Current() *Store {
	return h.current.Load()
}

// Swap replaces the served store with s and returns the previous one.
func (h *Handle) Swap(s *Store) *Store {
	return h.current.Swap(s)
}
