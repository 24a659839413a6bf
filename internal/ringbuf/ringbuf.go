// Package ringbuf keeps a bounded in-memory history of recent signals per
// pair. Old entries are overwritten once a pair's ring is full, so the
// gateway can always serve the last N signals without touching Redis.
package ringbuf

import (
	"sort"
	"sync"

	"forex-signalsv1/internal/model"
)

// Ring holds the last cap signals for one pair.
// Capacity is rounded up to a power of two for fast bitwise modulo.
type Ring struct {
	buf  []model.Signal
	mask uint64
	head uint64 // total signals ever pushed
}

// newRing creates a ring. capacity is rounded up to the next power of two.
// Minimum capacity is 2.
func newRing(capacity int) *Ring {
	cap := nextPow2(capacity)
	if cap < 2 {
		cap = 2
	}
	return &Ring{
		buf:  make([]model.Signal, cap),
		mask: uint64(cap - 1),
	}
}

// push appends a signal, overwriting the oldest entry when full.
func (r *Ring) push(s model.Signal) {
	r.buf[r.head&r.mask] = s
	r.head++
}

// recent returns up to limit signals, newest first.
func (r *Ring) recent(limit int) []model.Signal {
	n := r.head
	if n > uint64(len(r.buf)) {
		n = uint64(len(r.buf))
	}
	if limit > 0 && uint64(limit) < n {
		n = uint64(limit)
	}
	out := make([]model.Signal, 0, n)
	for i := uint64(1); i <= n; i++ {
		out = append(out, r.buf[(r.head-i)&r.mask])
	}
	return out
}

// History is the per-pair signal history. Safe for concurrent use.
type History struct {
	mu       sync.RWMutex
	capacity int
	rings    map[string]*Ring
}

// NewHistory creates a history keeping capacity signals per pair.
func NewHistory(capacity int) *History {
	return &History{
		capacity: capacity,
		rings:    make(map[string]*Ring),
	}
}

// Push records a signal under its pair.
func (h *History) Push(s model.Signal) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rings[s.Pair]
	if !ok {
		r = newRing(h.capacity)
		h.rings[s.Pair] = r
	}
	r.push(s)
}

// Recent returns up to limit signals for a pair, newest first.
// limit <= 0 means the full retained history.
func (h *History) Recent(pair string, limit int) []model.Signal {
	h.mu.RLock()
	defer h.mu.RUnlock()
	r, ok := h.rings[pair]
	if !ok {
		return nil
	}
	return r.recent(limit)
}

// Pairs returns the pairs with recorded history, sorted.
func (h *History) Pairs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	pairs := make([]string, 0, len(h.rings))
	for p := range h.rings {
		pairs = append(pairs, p)
	}
	sort.Strings(pairs)
	return pairs
}

// nextPow2 returns the smallest power of 2 >= n.
func nextPow2(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
