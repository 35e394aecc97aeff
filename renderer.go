// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

import "github.com/gogpu/gputypes"

// Renderer is the backend context a command buffer is submitted against.
// It has one method per recorded command kind; each method issues the
// corresponding native graphics operation immediately.
//
// Slices passed to Renderer methods alias the command buffer's memory and
// are only valid for the duration of the call. Implementations must copy
// them if they need to keep the data.
//
// A Renderer is driven from one goroutine at a time.
type Renderer interface {
	// SetGraphicsRootSignature sets the layout used by subsequent
	// SetGraphicsRootDescriptorTable calls.
	SetGraphicsRootSignature(rootSignature RootSignatureRef)

	// SetGraphicsRootDescriptorTable binds a resource group to a root parameter slot.
	SetGraphicsRootDescriptorTable(rootParameterIndex uint32, resource ResourceGroupRef)

	// SetPipelineState sets the pipeline state used by subsequent draws.
	SetPipelineState(pipelineState PipelineStateRef)

	// SetVertexArray binds vertex and index buffers.
	SetVertexArray(vertexArray VertexArrayRef)

	// SetPrimitiveTopology sets the input assembler topology.
	SetPrimitiveTopology(topology gputypes.PrimitiveTopology)

	// SetViewports replaces the active viewports.
	SetViewports(viewports []Viewport)

	// SetScissorRectangles replaces the active scissor rectangles.
	SetScissorRectangles(rectangles []ScissorRectangle)

	// SetRenderTarget makes renderTarget the output of subsequent clears and draws.
	SetRenderTarget(renderTarget RenderTargetRef)

	// Clear clears the planes of the current render target selected by flags.
	Clear(flags ClearFlags, color [4]float32, z float32, stencil uint32)

	// Draw issues non-indexed draws whose arguments are supplied by the CPU.
	Draw(args []DrawArguments)

	// DrawIndirect issues numberOfDraws non-indexed draws whose arguments are
	// read from buffer starting at offset.
	DrawIndirect(buffer IndirectBufferRef, offset uint32, numberOfDraws uint32)

	// DrawIndexed issues indexed draws whose arguments are supplied by the CPU.
	DrawIndexed(args []DrawIndexedArguments)

	// DrawIndexedIndirect issues numberOfDraws indexed draws whose arguments
	// are read from buffer starting at offset.
	DrawIndexedIndirect(buffer IndirectBufferRef, offset uint32, numberOfDraws uint32)

	// SetDebugMarker inserts a single named marker into the command stream.
	SetDebugMarker(name string)

	// BeginDebugEvent opens a named debug region.
	BeginDebugEvent(name string)

	// EndDebugEvent closes the innermost debug region.
	EndDebugEvent()
}
