// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rhi"
)

// mockRenderer records every call as a string.
type mockRenderer struct {
	calls []string
}

func (m *mockRenderer) add(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *mockRenderer) SetGraphicsRootSignature(rs rhi.RootSignatureRef) {
	m.add("SetGraphicsRootSignature(%d)", rs)
}

func (m *mockRenderer) SetGraphicsRootDescriptorTable(index uint32, res rhi.ResourceGroupRef) {
	m.add("SetGraphicsRootDescriptorTable(%d, %d)", index, res)
}

func (m *mockRenderer) SetPipelineState(ps rhi.PipelineStateRef) {
	m.add("SetPipelineState(%d)", ps)
}

func (m *mockRenderer) SetVertexArray(va rhi.VertexArrayRef) {
	m.add("SetVertexArray(%d)", va)
}

func (m *mockRenderer) SetPrimitiveTopology(topology gputypes.PrimitiveTopology) {
	m.add("SetPrimitiveTopology(%d)", topology)
}

func (m *mockRenderer) SetViewports(vps []rhi.Viewport) {
	m.add("SetViewports(%v)", vps)
}

func (m *mockRenderer) SetScissorRectangles(rects []rhi.ScissorRectangle) {
	m.add("SetScissorRectangles(%v)", rects)
}

func (m *mockRenderer) SetRenderTarget(rt rhi.RenderTargetRef) {
	m.add("SetRenderTarget(%d)", rt)
}

func (m *mockRenderer) Clear(flags rhi.ClearFlags, color [4]float32, z float32, stencil uint32) {
	m.add("Clear(%s, %v, %v, %d)", flags, color, z, stencil)
}

func (m *mockRenderer) Draw(args []rhi.DrawArguments) {
	m.add("Draw(%v)", args)
}

func (m *mockRenderer) DrawIndirect(buf rhi.IndirectBufferRef, offset, n uint32) {
	m.add("DrawIndirect(%d, %d, %d)", buf, offset, n)
}

func (m *mockRenderer) DrawIndexed(args []rhi.DrawIndexedArguments) {
	m.add("DrawIndexed(%v)", args)
}

func (m *mockRenderer) DrawIndexedIndirect(buf rhi.IndirectBufferRef, offset, n uint32) {
	m.add("DrawIndexedIndirect(%d, %d, %d)", buf, offset, n)
}

func (m *mockRenderer) SetDebugMarker(name string) {
	m.add("SetDebugMarker(%q)", name)
}

func (m *mockRenderer) BeginDebugEvent(name string) {
	m.add("BeginDebugEvent(%q)", name)
}

func (m *mockRenderer) EndDebugEvent() {
	m.add("EndDebugEvent()")
}

var _ rhi.Renderer = (*mockRenderer)(nil)

// userCommand is a command type defined outside the built-in set.
type userCommand struct {
	Value uint32
}

func (userCommand) CommandID() ID { return FirstUserID }

// collidingCommand reports the same ID as userCommand.
type collidingCommand struct {
	Other float32
}

func (collidingCommand) CommandID() ID { return FirstUserID }

// pointerCommand holds a Go pointer and must be rejected.
type pointerCommand struct {
	P *int
}

func (pointerCommand) CommandID() ID { return FirstUserID + 1 }

type invalidCommand struct{}

func (invalidCommand) CommandID() ID { return InvalidID }

type outOfRangeCommand struct{}

func (outOfRangeCommand) CommandID() ID { return MaxID }

// expectPanic runs fn and fails unless it panics with an error matching
// target. A nil target accepts any panic.
func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if target == nil {
			return
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic = %v, want %v", r, target)
		}
	}()
	fn()
}

func equalCalls(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d calls, want %d\ngot:  %q\nwant: %q", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, got[i], want[i])
		}
	}
}
