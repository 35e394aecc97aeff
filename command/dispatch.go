// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"unsafe"

	"github.com/gogpu/rhi"
)

// entry is one bound handler in a Table.
type entry[C any] struct {
	invoke func(payload unsafe.Pointer, ctx C)
	typ    reflect.Type
	size   uint32
}

// Table maps command IDs to handlers that execute packets against a
// context of type C, typically a renderer.
//
// Tables are filled with Bind before use and are safe for concurrent
// Submit calls once binding is complete.
type Table[C any] struct {
	name    string
	entries [MaxID]entry[C]
	frozen  bool
}

// NewTable creates an empty table. The name is used in log output.
func NewTable[C any](name string) *Table[C] {
	return &Table[C]{name: name}
}

// Name returns the table name.
func (t *Table[C]) Name() string { return t.name }

// Bind registers fn as the handler for command type T.
//
// Bind panics if fn is nil, if T reports an invalid ID, if T contains Go
// pointers, if a different type is already bound to the same ID, or if the
// table is frozen. Binding the same type again replaces the handler.
func Bind[T Command, C any](t *Table[C], fn func(cmd *T, ctx C)) {
	if fn == nil {
		panic(ErrNilHandler)
	}
	if t.frozen {
		panic(fmt.Errorf("%w: %s", ErrTableFrozen, t.name))
	}
	var zero T
	id := zero.CommandID()
	if !id.valid() {
		panic(fmt.Errorf("%w: %d", ErrInvalidCommandID, uint32(id)))
	}
	typ := reflect.TypeFor[T]()
	if hasPointers(typ) {
		panic(fmt.Errorf("%w: %s", ErrPointerPayload, typ))
	}
	if e := &t.entries[id]; e.typ != nil && e.typ != typ {
		panic(fmt.Errorf("command: id %s bound to both %s and %s", id, e.typ, typ))
	}
	t.entries[id] = entry[C]{
		invoke: func(p unsafe.Pointer, ctx C) { fn((*T)(p), ctx) },
		typ:    typ,
		size:   uint32(unsafe.Sizeof(zero)),
	}
}

// IsBound reports whether a handler is registered for id.
func (t *Table[C]) IsBound(id ID) bool {
	return id.valid() && t.entries[id].invoke != nil
}

// Freeze makes the table read-only. Later Bind calls panic.
func (t *Table[C]) Freeze() { t.frozen = true }

// Clone returns an unfrozen copy of the table that can be extended without
// affecting t.
func (t *Table[C]) Clone() *Table[C] {
	c := *t
	c.frozen = false
	return &c
}

// Submit executes every packet of b against ctx in recording order.
// The buffer is left unchanged.
//
// Submit panics with ErrUnboundCommand when it reaches a packet whose ID has
// no handler.
func (t *Table[C]) Submit(b *Buffer, ctx C) {
	s := &b.s
	if s.count == 0 {
		return
	}
	if l := rhi.Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("command: submit", "table", t.name, "packets", s.count, "bytes", s.write)
	}
	for off := Offset(0); off != NoPacket; {
		h := s.header(off)
		next := h.next
		e := &t.entries[h.id]
		if e.invoke == nil {
			panic(fmt.Errorf("%w: %s at offset %d", ErrUnboundCommand, h.id, off))
		}
		if checkPackets && e.size != h.size {
			panic(fmt.Errorf("%w: %s has %d bytes, %s wants %d", ErrPayloadMismatch, h.id, h.size, e.typ, e.size))
		}
		e.invoke(s.payload(off), ctx)
		off = next
	}
}

// SubmitAndClear executes b against ctx and then clears it.
func (t *Table[C]) SubmitAndClear(b *Buffer, ctx C) {
	t.Submit(b, ctx)
	b.Clear()
}

// SubmitAll executes the buffers against ctx one after another.
// Nil buffers are skipped.
func (t *Table[C]) SubmitAll(ctx C, bufs ...*Buffer) {
	for _, b := range bufs {
		if b != nil {
			t.Submit(b, ctx)
		}
	}
}

// Flush drains q and executes the buffers against ctx in enqueue order.
// Every drained buffer is returned to the queue's pool afterwards, also when
// a handler panics. Flush returns the number of buffers executed.
func (t *Table[C]) Flush(q *Queue, ctx C) int {
	bufs := q.Drain()
	defer func() {
		for _, b := range bufs {
			q.recycle(b)
		}
	}()
	for _, b := range bufs {
		t.Submit(b, ctx)
	}
	return len(bufs)
}

// hasPointers reports whether values of typ contain Go pointers.
func hasPointers(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Array:
		return typ.Len() > 0 && hasPointers(typ.Elem())
	case reflect.Struct:
		for i := range typ.NumField() {
			if hasPointers(typ.Field(i).Type) {
				return true
			}
		}
		return false
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	default:
		return true
	}
}
