// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
)

// Optional render pass capabilities. Not every HAL backend implements them.
type (
	viewportSetter interface {
		SetViewport(x, y, width, height, minDepth, maxDepth float32)
	}
	scissorSetter interface {
		SetScissorRect(x, y, width, height uint32)
	}
	indirectDrawer interface {
		DrawIndirect(buffer hal.Buffer, offset uint64)
	}
	indexedIndirectDrawer interface {
		DrawIndexedIndirect(buffer hal.Buffer, offset uint64)
	}
	debugMarker interface {
		InsertDebugMarker(label string)
	}
	debugGrouper interface {
		PushDebugGroup(label string)
		PopDebugGroup()
	}
)

// ensurePass returns the open render pass, beginning one if needed.
// It returns nil if no pass can be started.
func (r *Renderer) ensurePass() hal.RenderPassEncoder {
	if r.pass != nil {
		return r.pass
	}
	if r.encoder == nil {
		r.fail(ErrNoFrame)
		return nil
	}
	rt, ok := r.targets.Get(r.state.target)
	if !ok {
		r.fail(fmt.Errorf("%w: render target %d", ErrUnknownResource, r.state.target))
		return nil
	}

	desc := r.passDescriptor(rt)
	r.state.clear = pendingClear{}
	r.pass = r.encoder.BeginRenderPass(desc)
	r.stats.RenderPasses++

	r.applyPipeline(r.pass)
	r.applyVertexArray(r.pass)
	for index, group := range r.state.tables {
		r.applyBindGroup(r.pass, index, group)
	}
	r.applyViewport(r.pass)
	r.applyScissor(r.pass)
	return r.pass
}

// passDescriptor builds the descriptor for a pass into rt, consuming the
// pending clear as load operations.
func (r *Renderer) passDescriptor(rt *RenderTarget) *hal.RenderPassDescriptor {
	c := r.state.clear
	color := hal.RenderPassColorAttachment{
		View:    rt.View,
		LoadOp:  gputypes.LoadOpLoad,
		StoreOp: gputypes.StoreOpStore,
	}
	if c.flags.Has(rhi.ClearColor) {
		color.LoadOp = gputypes.LoadOpClear
		color.ClearValue = gputypes.Color{
			R: float64(c.color[0]),
			G: float64(c.color[1]),
			B: float64(c.color[2]),
			A: float64(c.color[3]),
		}
	}
	desc := &hal.RenderPassDescriptor{
		Label:            r.label,
		ColorAttachments: []hal.RenderPassColorAttachment{color},
	}
	if rt.DepthStencilView == nil {
		return desc
	}

	ds := &hal.RenderPassDepthStencilAttachment{
		View:           rt.DepthStencilView,
		DepthLoadOp:    gputypes.LoadOpLoad,
		DepthStoreOp:   gputypes.StoreOpStore,
		StencilLoadOp:  gputypes.LoadOpLoad,
		StencilStoreOp: gputypes.StoreOpStore,
	}
	if c.flags.Has(rhi.ClearDepth) {
		ds.DepthLoadOp = gputypes.LoadOpClear
		ds.DepthClearValue = c.z
	}
	if c.flags.Has(rhi.ClearStencil) {
		ds.StencilLoadOp = gputypes.LoadOpClear
		ds.StencilClearValue = c.stencil
	}
	desc.DepthStencilAttachment = ds
	return desc
}

// flushClear begins and ends an empty pass so a pending clear reaches the
// current render target.
func (r *Renderer) flushClear() {
	if r.state.clear.flags == 0 || r.encoder == nil {
		return
	}
	if !r.targets.Has(r.state.target) {
		r.state.clear = pendingClear{}
		return
	}
	r.ensurePass()
	r.endPass()
}

func (r *Renderer) endPass() {
	if r.pass == nil {
		return
	}
	if g, ok := r.pass.(debugGrouper); ok {
		for ; r.passEvents > 0; r.passEvents-- {
			g.PopDebugGroup()
		}
	}
	r.passEvents = 0
	r.pass.End()
	r.pass = nil
}

func (r *Renderer) applyPipeline(p hal.RenderPassEncoder) {
	if !r.state.pipeline.IsValid() {
		return
	}
	pipeline, ok := r.pipelines.Get(r.state.pipeline)
	if !ok {
		r.fail(fmt.Errorf("%w: pipeline state %d", ErrUnknownResource, r.state.pipeline))
		return
	}
	p.SetPipeline(pipeline)
}

func (r *Renderer) applyBindGroup(p hal.RenderPassEncoder, index uint32, ref rhi.ResourceGroupRef) {
	group, ok := r.groups.Get(ref)
	if !ok {
		r.fail(fmt.Errorf("%w: resource group %d", ErrUnknownResource, ref))
		return
	}
	p.SetBindGroup(index, group, nil)
}

func (r *Renderer) applyVertexArray(p hal.RenderPassEncoder) {
	if !r.state.vertexArray.IsValid() {
		return
	}
	va, ok := r.vertexArrays.Get(r.state.vertexArray)
	if !ok {
		r.fail(fmt.Errorf("%w: vertex array %d", ErrUnknownResource, r.state.vertexArray))
		return
	}
	for i, buf := range va.Buffers {
		var offset uint64
		if i < len(va.Offsets) {
			offset = va.Offsets[i]
		}
		// #nosec G115 -- vertex buffer slots are bounded by device limits
		p.SetVertexBuffer(uint32(i), buf, offset)
	}
	if va.Index != nil {
		p.SetIndexBuffer(va.Index, va.IndexFormat, va.IndexOffset)
	}
}

func (r *Renderer) applyViewport(p hal.RenderPassEncoder) {
	if len(r.state.viewports) == 0 {
		return
	}
	s, ok := p.(viewportSetter)
	if !ok {
		rhi.Logger().Debug("wgpu: render pass ignores viewports")
		return
	}
	v := r.state.viewports[0]
	s.SetViewport(v.TopLeftX, v.TopLeftY, v.Width, v.Height, v.MinDepth, v.MaxDepth)
}

func (r *Renderer) applyScissor(p hal.RenderPassEncoder) {
	if len(r.state.scissors) == 0 {
		return
	}
	s, ok := p.(scissorSetter)
	if !ok {
		rhi.Logger().Debug("wgpu: render pass ignores scissor rectangles")
		return
	}
	rect := r.state.scissors[0]
	// #nosec G115 -- clamped to non-negative before conversion
	s.SetScissorRect(uint32(max(rect.TopLeftX, 0)), uint32(max(rect.TopLeftY, 0)), uint32(rect.Width()), uint32(rect.Height()))
}
