// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import (
	"github.com/gogpu/rhi/internal/parallel"
)

// ParallelRecorder records independent parts of a frame on a pool of
// goroutines, each part into its own buffer.
//
// Example:
//
//	rec := command.NewParallelRecorder(0, nil)
//	defer rec.Close()
//	rec.RecordInto(queue, drawShadows, drawOpaque, drawUI)
//	queue.Flush(renderer)
type ParallelRecorder struct {
	workers *parallel.WorkerPool
	pool    *BufferPool
}

// NewParallelRecorder starts a recorder with the given number of workers
// (GOMAXPROCS if workers <= 0). Buffers come from pool, or from
// DefaultPool if pool is nil.
func NewParallelRecorder(workers int, pool *BufferPool) *ParallelRecorder {
	if pool == nil {
		pool = DefaultPool
	}
	return &ParallelRecorder{
		workers: parallel.NewWorkerPool(workers),
		pool:    pool,
	}
}

// Record calls every fn with its own empty buffer and returns the buffers
// in the order of fns once all of them have returned. The caller owns the
// buffers and may return them to the recorder's pool.
func (r *ParallelRecorder) Record(fns ...func(b *Buffer)) []*Buffer {
	bufs := make([]*Buffer, len(fns))
	jobs := make([]func(), len(fns))
	for i, fn := range fns {
		bufs[i] = r.pool.Get()
		jobs[i] = func() { fn(bufs[i]) }
	}
	r.workers.ExecuteAll(jobs)
	return bufs
}

// RecordInto records like Record and enqueues the non-empty buffers on q in
// the order of fns. Empty buffers go back to the pool.
func (r *ParallelRecorder) RecordInto(q *Queue, fns ...func(b *Buffer)) {
	for _, b := range r.Record(fns...) {
		if b.IsEmpty() {
			r.pool.Put(b)
			continue
		}
		q.Enqueue(b)
	}
}

// Workers returns the number of recording goroutines.
func (r *ParallelRecorder) Workers() int {
	return r.workers.Workers()
}

// Close stops the recording goroutines. Record still works after Close
// but runs on the calling goroutine.
func (r *ParallelRecorder) Close() {
	r.workers.Close()
}
