// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import (
	"sync"

	"github.com/gogpu/rhi"
)

// Queue collects finished buffers from any number of recording goroutines
// for execution on a single submitting goroutine.
//
// Buffers must not be modified after Enqueue until they are returned by
// Drain or recycled by Flush.
type Queue struct {
	mu      sync.Mutex
	pending []*Buffer
	pool    *BufferPool
}

// NewQueue creates a queue. If pool is not nil, flushed buffers are returned
// to it.
func NewQueue(pool *BufferPool) *Queue {
	return &Queue{pool: pool}
}

// Enqueue appends b to the queue. Nil and empty buffers are ignored.
func (q *Queue) Enqueue(b *Buffer) {
	if b == nil || b.IsEmpty() {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, b)
	q.mu.Unlock()
}

// Len returns the number of queued buffers.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain removes and returns all queued buffers in enqueue order.
func (q *Queue) Drain() []*Buffer {
	q.mu.Lock()
	bufs := q.pending
	q.pending = nil
	q.mu.Unlock()
	return bufs
}

// Flush executes all queued buffers against r with RendererTable.
func (q *Queue) Flush(r rhi.Renderer) int {
	return RendererTable().Flush(q, r)
}

func (q *Queue) recycle(b *Buffer) {
	if q.pool != nil {
		q.pool.Put(b)
	}
}
