// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import (
	"iter"
	"unsafe"

	"github.com/gogpu/rhi"
)

// Buffer records render commands into one contiguous block of memory for
// later submission.
//
// Each command is stored as a packet: a fixed header, the command value and
// optional auxiliary bytes. Packets are linked by offset in recording order.
// Submitting a Buffer does not consume it, so a recorded Buffer can be
// replayed any number of times until Clear is called.
//
// A Buffer is not safe for concurrent use. Record on one goroutine and hand
// finished buffers to a Queue to cross goroutines.
type Buffer struct {
	s store
}

// NewBuffer creates an empty Buffer.
func NewBuffer(opts ...Option) *Buffer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	initial := o.initialCapacity
	if initial == 0 {
		initial = o.increment
	}
	b := &Buffer{}
	b.s.init(o.increment, initial)
	return b
}

// Add appends a packet for command type T with auxBytes of zeroed auxiliary
// memory and returns a pointer to its zeroed payload.
//
// The pointer is valid only until the next Add on the same Buffer, because
// growing the buffer moves the memory. Auxiliary memory starts directly
// after the payload and can be reached with Auxiliary.
//
// Add panics if auxBytes is negative, if T reports an invalid ID, or if the
// buffer would exceed the addressable size.
func Add[T Command](b *Buffer, auxBytes int) *T {
	var zero T
	_, p := b.s.place(zero.CommandID(), int(unsafe.Sizeof(zero)), auxBytes)
	return (*T)(p)
}

// IsEmpty reports whether no packet has been recorded since the last Clear.
func (b *Buffer) IsEmpty() bool { return b.s.count == 0 }

// Len returns the number of recorded packets.
func (b *Buffer) Len() int { return b.s.count }

// Size returns the number of bytes in use.
func (b *Buffer) Size() int { return b.s.write }

// Capacity returns the number of bytes allocated.
func (b *Buffer) Capacity() int { return b.s.capacity() }

// Grows returns how many times the memory block was reallocated.
func (b *Buffer) Grows() int { return b.s.grows }

// Clear drops all packets. The memory is kept for reuse and the next packet
// is recorded at offset 0.
func (b *Buffer) Clear() { b.s.reset() }

// Packets iterates over the recorded packets in recording order.
func (b *Buffer) Packets() iter.Seq[Packet] {
	return func(yield func(Packet) bool) {
		if b.s.count == 0 {
			return
		}
		for off := Offset(0); off != NoPacket; {
			p := Packet{s: &b.s, off: off}
			next := p.Next()
			if !yield(p) {
				return
			}
			off = next
		}
	}
}

// Submit replays every packet against r in recording order.
// The buffer is left unchanged.
func (b *Buffer) Submit(r rhi.Renderer) {
	RendererTable().Submit(b, r)
}

// SubmitAndClear replays every packet against r and then clears the buffer.
func (b *Buffer) SubmitAndClear(r rhi.Renderer) {
	RendererTable().SubmitAndClear(b, r)
}
