// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// stalledQueue accepts submissions that never complete.
type stalledQueue struct {
	hal.Queue
}

func (stalledQueue) Submit([]hal.CommandBuffer) (uint64, error) { return 1, nil }
func (stalledQueue) PollCompleted() uint64                     { return 0 }

// patternDevice fills mapped buffers with BGRA pixels encoding their
// position: blue is the row, green the column, red 100, alpha 255.
type patternDevice struct {
	hal.Device
}

func (d patternDevice) MapBuffer(buffer hal.Buffer, offset, size uint64) (hal.BufferMapping, error) {
	m, err := d.Device.MapBuffer(buffer, offset, size)
	if err != nil {
		return m, err
	}
	data := unsafe.Slice((*byte)(m.Ptr), size)
	for off := 0; off+3 < len(data); off += 4 {
		data[off+0] = byte(off / copyPitchAlignment)
		data[off+1] = byte(off % copyPitchAlignment / 4)
		data[off+2] = 100
		data[off+3] = 255
	}
	return m, nil
}

type fakePipeline struct {
	hal.RenderPipeline
	name string
}

type fakeGroup struct {
	hal.BindGroup
	name string
}

type fakeBuffer struct {
	hal.Buffer
	name string
}

func nameOf(v any) string {
	switch v := v.(type) {
	case *fakePipeline:
		return v.name
	case *fakeGroup:
		return v.name
	case *fakeBuffer:
		return v.name
	}
	return fmt.Sprintf("%v", v)
}

// fakePass records render pass calls as strings.
type fakePass struct {
	hal.RenderPassEncoder
	calls *[]string
}

func (p *fakePass) record(format string, args ...any) {
	*p.calls = append(*p.calls, fmt.Sprintf(format, args...))
}

func (p *fakePass) SetPipeline(pipeline hal.RenderPipeline) {
	p.record("pipeline %s", nameOf(pipeline))
}

func (p *fakePass) SetBindGroup(index uint32, group hal.BindGroup, _ []uint32) {
	p.record("group %d %s", index, nameOf(group))
}

func (p *fakePass) SetVertexBuffer(slot uint32, buffer hal.Buffer, offset uint64) {
	p.record("vertex %d %s+%d", slot, nameOf(buffer), offset)
}

func (p *fakePass) SetIndexBuffer(buffer hal.Buffer, _ gputypes.IndexFormat, offset uint64) {
	p.record("index %s+%d", nameOf(buffer), offset)
}

func (p *fakePass) SetViewport(x, y, width, height, minDepth, maxDepth float32) {
	p.record("viewport %g %g %g %g %g %g", x, y, width, height, minDepth, maxDepth)
}

func (p *fakePass) SetScissorRect(x, y, width, height uint32) {
	p.record("scissor %d %d %d %d", x, y, width, height)
}

func (p *fakePass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.record("draw %d %d %d %d", vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *fakePass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.record("draw indexed %d %d %d %d %d", indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (p *fakePass) DrawIndirect(buffer hal.Buffer, offset uint64) {
	p.record("draw indirect %s+%d", nameOf(buffer), offset)
}

func (p *fakePass) DrawIndexedIndirect(buffer hal.Buffer, offset uint64) {
	p.record("draw indexed indirect %s+%d", nameOf(buffer), offset)
}

func (p *fakePass) PushDebugGroup(label string) { p.record("push %s", label) }

func (p *fakePass) PopDebugGroup() { p.record("pop") }

func (p *fakePass) InsertDebugMarker(label string) { p.record("marker %s", label) }

func (p *fakePass) End() { p.record("end") }

// fakeEncoder begins fakePasses that share one call log.
type fakeEncoder struct {
	calls []string
	descs []*hal.RenderPassDescriptor
}

func (e *fakeEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	e.descs = append(e.descs, desc)
	e.calls = append(e.calls, "begin")
	return &fakePass{calls: &e.calls}
}

// newFakeRenderer returns a renderer recording into a fakeEncoder with one
// render target bound.
func newFakeRenderer(t *testing.T) (*Renderer, *fakeEncoder) {
	t.Helper()
	r := NewRenderer(nil, nil)
	enc := &fakeEncoder{}
	r.encoder = enc
	r.SetRenderTarget(r.AddRenderTarget(&RenderTarget{Width: 4, Height: 4}))
	return r, enc
}

func equalCalls(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d calls %q, want %d calls %q", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
