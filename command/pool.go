// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import "sync"

// BufferPool manages reusable Buffers.
// After warmup, recording a frame does not allocate buffer memory.
//
// Usage:
//
//	pool := NewBufferPool()
//	b := pool.Get()
//	defer pool.Put(b)
//	// record into b...
type BufferPool struct {
	pool sync.Pool
}

// NewBufferPool creates a pool whose buffers are created with opts.
func NewBufferPool(opts ...Option) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewBuffer(opts...)
			},
		},
	}
}

// Get retrieves an empty buffer from the pool.
func (p *BufferPool) Get() *Buffer {
	return p.pool.Get().(*Buffer)
}

// Put clears a buffer and returns it to the pool.
func (p *BufferPool) Put(b *Buffer) {
	if b == nil {
		return
	}
	b.Clear()
	p.pool.Put(b)
}

// Warmup pre-allocates count buffers.
func (p *BufferPool) Warmup(count int) {
	bufs := make([]*Buffer, count)
	for i := range bufs {
		bufs[i] = p.Get()
	}
	for _, b := range bufs {
		p.Put(b)
	}
}

// DefaultPool is a global buffer pool for convenience.
var DefaultPool = NewBufferPool()

// GetBuffer retrieves a buffer from the default pool.
func GetBuffer() *Buffer {
	return DefaultPool.Get()
}

// PutBuffer returns a buffer to the default pool.
func PutBuffer(b *Buffer) {
	DefaultPool.Put(b)
}
