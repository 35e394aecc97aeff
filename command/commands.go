// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rhi"
)

// Command payloads hold plain values and resource refs only. They are
// written into raw packet memory, so they must never contain Go pointers,
// slices, strings, maps or interfaces.
//
// Methods that read auxiliary memory are only meaningful on a payload
// returned by Add or Payload.

// SetGraphicsRootSignatureCommand binds the root signature for graphics work.
type SetGraphicsRootSignatureCommand struct {
	RootSignature rhi.RootSignatureRef
}

// CommandID implements Command.
func (SetGraphicsRootSignatureCommand) CommandID() ID { return CmdSetGraphicsRootSignature }

// SetGraphicsRootDescriptorTableCommand binds a resource group to a root
// parameter slot.
type SetGraphicsRootDescriptorTableCommand struct {
	RootParameterIndex uint32
	Resource           rhi.ResourceGroupRef
}

// CommandID implements Command.
func (SetGraphicsRootDescriptorTableCommand) CommandID() ID {
	return CmdSetGraphicsRootDescriptorTable
}

// SetPipelineStateCommand binds a pipeline state object.
type SetPipelineStateCommand struct {
	PipelineState rhi.PipelineStateRef
}

// CommandID implements Command.
func (SetPipelineStateCommand) CommandID() ID { return CmdSetPipelineState }

// SetVertexArrayCommand binds vertex and index buffers.
type SetVertexArrayCommand struct {
	VertexArray rhi.VertexArrayRef
}

// CommandID implements Command.
func (SetVertexArrayCommand) CommandID() ID { return CmdSetVertexArray }

// SetPrimitiveTopologyCommand sets how vertices are assembled.
type SetPrimitiveTopologyCommand struct {
	Topology gputypes.PrimitiveTopology
}

// CommandID implements Command.
func (SetPrimitiveTopologyCommand) CommandID() ID { return CmdSetPrimitiveTopology }

// SetViewportsCommand sets the viewports. The viewports follow the payload
// as auxiliary memory.
type SetViewportsCommand struct {
	NumberOfViewports uint32
}

// CommandID implements Command.
func (SetViewportsCommand) CommandID() ID { return CmdSetViewports }

// Viewports returns the recorded viewports. The slice aliases the buffer.
func (c *SetViewportsCommand) Viewports() []rhi.Viewport {
	return trailing[rhi.Viewport](c, c.NumberOfViewports)
}

// SetScissorRectanglesCommand sets the scissor rectangles. The rectangles
// follow the payload as auxiliary memory.
type SetScissorRectanglesCommand struct {
	NumberOfScissorRectangles uint32
}

// CommandID implements Command.
func (SetScissorRectanglesCommand) CommandID() ID { return CmdSetScissorRectangles }

// ScissorRectangles returns the recorded rectangles. The slice aliases the
// buffer.
func (c *SetScissorRectanglesCommand) ScissorRectangles() []rhi.ScissorRectangle {
	return trailing[rhi.ScissorRectangle](c, c.NumberOfScissorRectangles)
}

// SetRenderTargetCommand selects the render target for following work.
type SetRenderTargetCommand struct {
	RenderTarget rhi.RenderTargetRef
}

// CommandID implements Command.
func (SetRenderTargetCommand) CommandID() ID { return CmdSetRenderTarget }

// ClearCommand clears the selected parts of the render target.
type ClearCommand struct {
	Flags   rhi.ClearFlags
	Color   [4]float32
	Z       float32
	Stencil uint32
}

// CommandID implements Command.
func (ClearCommand) CommandID() ID { return CmdClear }

// DrawCommand issues non-indexed draws.
//
// When IndirectBuffer is valid the draw arguments are read by the GPU from
// that buffer at IndirectBufferOffset. Otherwise NumberOfDraws arguments
// are stored inline as auxiliary memory.
type DrawCommand struct {
	IndirectBuffer       rhi.IndirectBufferRef
	IndirectBufferOffset uint32
	NumberOfDraws        uint32
}

// CommandID implements Command.
func (DrawCommand) CommandID() ID { return CmdDraw }

// IsInline reports whether the draw arguments live in the packet.
func (c *DrawCommand) IsInline() bool { return !c.IndirectBuffer.IsValid() }

// Arguments returns the inline draw arguments, or nil for indirect draws.
func (c *DrawCommand) Arguments() []rhi.DrawArguments {
	if !c.IsInline() {
		return nil
	}
	return trailing[rhi.DrawArguments](c, c.NumberOfDraws)
}

// DrawIndexedCommand issues indexed draws. Argument storage follows the
// rules of DrawCommand.
type DrawIndexedCommand struct {
	IndirectBuffer       rhi.IndirectBufferRef
	IndirectBufferOffset uint32
	NumberOfDraws        uint32
}

// CommandID implements Command.
func (DrawIndexedCommand) CommandID() ID { return CmdDrawIndexed }

// IsInline reports whether the draw arguments live in the packet.
func (c *DrawIndexedCommand) IsInline() bool { return !c.IndirectBuffer.IsValid() }

// Arguments returns the inline draw arguments, or nil for indirect draws.
func (c *DrawIndexedCommand) Arguments() []rhi.DrawIndexedArguments {
	if !c.IsInline() {
		return nil
	}
	return trailing[rhi.DrawIndexedArguments](c, c.NumberOfDraws)
}

// SetDebugMarkerCommand inserts a named marker.
type SetDebugMarkerCommand struct {
	Name Name
}

// CommandID implements Command.
func (SetDebugMarkerCommand) CommandID() ID { return CmdSetDebugMarker }

// BeginDebugEventCommand opens a named debug event.
type BeginDebugEventCommand struct {
	Name Name
}

// CommandID implements Command.
func (BeginDebugEventCommand) CommandID() ID { return CmdBeginDebugEvent }

// EndDebugEventCommand closes the innermost debug event.
type EndDebugEventCommand struct{}

// CommandID implements Command.
func (EndDebugEventCommand) CommandID() ID { return CmdEndDebugEvent }
