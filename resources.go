// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

// ResourcePool maps resource references to the backend objects they name.
// Backends keep one pool per resource kind and resolve the refs found in
// recorded commands through it at submission time.
//
// The pool does not manage object lifetimes: Remove only forgets the
// mapping, and released slots are reused by later Add calls. A ref that
// outlives its object therefore resolves to whatever was added after it;
// callers must not submit commands that reference removed resources.
//
// ResourcePool is not safe for concurrent use. If concurrent access is needed,
// external synchronization must be provided.
type ResourcePool[K ~uint32, V any] struct {
	items []V
	live  []bool
	free  []K
	count int
}

// NewResourcePool creates an empty pool with room for capacity resources.
func NewResourcePool[K ~uint32, V any](capacity int) *ResourcePool[K, V] {
	return &ResourcePool[K, V]{
		items: make([]V, 0, capacity),
		live:  make([]bool, 0, capacity),
	}
}

// Add stores v and returns its reference.
func (p *ResourcePool[K, V]) Add(v V) K {
	p.count++
	if n := len(p.free); n > 0 {
		ref := p.free[n-1]
		p.free = p.free[:n-1]
		p.items[ref] = v
		p.live[ref] = true
		return ref
	}
	p.items = append(p.items, v)
	p.live = append(p.live, true)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return K(uint32(len(p.items) - 1))
}

// Get returns the resource for ref.
// The second result is false if ref is invalid or has been removed.
func (p *ResourcePool[K, V]) Get(ref K) (V, bool) {
	if !p.Has(ref) {
		var zero V
		return zero, false
	}
	return p.items[ref], true
}

// Has reports whether ref names a live resource.
func (p *ResourcePool[K, V]) Has(ref K) bool {
	return uint64(ref) < uint64(len(p.items)) && p.live[ref]
}

// Remove forgets the resource for ref and returns it.
// Removing an unknown ref is a no-op.
func (p *ResourcePool[K, V]) Remove(ref K) (V, bool) {
	var zero V
	if !p.Has(ref) {
		return zero, false
	}
	v := p.items[ref]
	p.items[ref] = zero
	p.live[ref] = false
	p.free = append(p.free, ref)
	p.count--
	return v, true
}

// Len returns the number of live resources.
func (p *ResourcePool[K, V]) Len() int {
	return p.count
}

// All calls fn for every live resource in reference order.
func (p *ResourcePool[K, V]) All(fn func(K, V)) {
	for i, ok := range p.live {
		if ok {
			// #nosec G115 -- index bounded by len(items)
			fn(K(uint32(i)), p.items[i])
		}
	}
}

// Clear removes all resources from the pool.
// This does not release the underlying memory.
func (p *ResourcePool[K, V]) Clear() {
	clear(p.items)
	p.items = p.items[:0]
	p.live = p.live[:0]
	p.free = p.free[:0]
	p.count = 0
}
