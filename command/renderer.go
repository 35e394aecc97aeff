// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import (
	"sync"

	"github.com/gogpu/rhi"
)

// RendererTable returns the shared table that executes the built-in
// commands against an rhi.Renderer. The table is frozen; use Clone to add
// user commands.
var RendererTable = sync.OnceValue(newRendererTable)

func newRendererTable() *Table[rhi.Renderer] {
	t := NewTable[rhi.Renderer]("renderer")

	Bind(t, func(c *SetGraphicsRootSignatureCommand, r rhi.Renderer) {
		r.SetGraphicsRootSignature(c.RootSignature)
	})
	Bind(t, func(c *SetGraphicsRootDescriptorTableCommand, r rhi.Renderer) {
		r.SetGraphicsRootDescriptorTable(c.RootParameterIndex, c.Resource)
	})
	Bind(t, func(c *SetPipelineStateCommand, r rhi.Renderer) {
		r.SetPipelineState(c.PipelineState)
	})
	Bind(t, func(c *SetVertexArrayCommand, r rhi.Renderer) {
		r.SetVertexArray(c.VertexArray)
	})
	Bind(t, func(c *SetPrimitiveTopologyCommand, r rhi.Renderer) {
		r.SetPrimitiveTopology(c.Topology)
	})
	Bind(t, func(c *SetViewportsCommand, r rhi.Renderer) {
		r.SetViewports(c.Viewports())
	})
	Bind(t, func(c *SetScissorRectanglesCommand, r rhi.Renderer) {
		r.SetScissorRectangles(c.ScissorRectangles())
	})
	Bind(t, func(c *SetRenderTargetCommand, r rhi.Renderer) {
		r.SetRenderTarget(c.RenderTarget)
	})
	Bind(t, func(c *ClearCommand, r rhi.Renderer) {
		r.Clear(c.Flags, c.Color, c.Z, c.Stencil)
	})
	Bind(t, func(c *DrawCommand, r rhi.Renderer) {
		if c.IsInline() {
			r.Draw(c.Arguments())
			return
		}
		r.DrawIndirect(c.IndirectBuffer, c.IndirectBufferOffset, c.NumberOfDraws)
	})
	Bind(t, func(c *DrawIndexedCommand, r rhi.Renderer) {
		if c.IsInline() {
			r.DrawIndexed(c.Arguments())
			return
		}
		r.DrawIndexedIndirect(c.IndirectBuffer, c.IndirectBufferOffset, c.NumberOfDraws)
	})
	Bind(t, func(c *SetDebugMarkerCommand, r rhi.Renderer) {
		r.SetDebugMarker(c.Name.String())
	})
	Bind(t, func(c *BeginDebugEventCommand, r rhi.Renderer) {
		r.BeginDebugEvent(c.Name.String())
	})
	Bind(t, func(_ *EndDebugEventCommand, r rhi.Renderer) {
		r.EndDebugEvent()
	})

	t.Freeze()
	return t
}
