// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rhi"
)

// SetGraphicsRootSignature records a SetGraphicsRootSignatureCommand.
func SetGraphicsRootSignature(b *Buffer, rootSignature rhi.RootSignatureRef) {
	Add[SetGraphicsRootSignatureCommand](b, 0).RootSignature = rootSignature
}

// SetGraphicsRootDescriptorTable records a SetGraphicsRootDescriptorTableCommand.
func SetGraphicsRootDescriptorTable(b *Buffer, rootParameterIndex uint32, resource rhi.ResourceGroupRef) {
	*Add[SetGraphicsRootDescriptorTableCommand](b, 0) = SetGraphicsRootDescriptorTableCommand{
		RootParameterIndex: rootParameterIndex,
		Resource:           resource,
	}
}

// SetPipelineState records a SetPipelineStateCommand.
func SetPipelineState(b *Buffer, pipelineState rhi.PipelineStateRef) {
	Add[SetPipelineStateCommand](b, 0).PipelineState = pipelineState
}

// SetVertexArray records a SetVertexArrayCommand.
func SetVertexArray(b *Buffer, vertexArray rhi.VertexArrayRef) {
	Add[SetVertexArrayCommand](b, 0).VertexArray = vertexArray
}

// SetPrimitiveTopology records a SetPrimitiveTopologyCommand.
func SetPrimitiveTopology(b *Buffer, topology gputypes.PrimitiveTopology) {
	Add[SetPrimitiveTopologyCommand](b, 0).Topology = topology
}

// SetViewports records a SetViewportsCommand with the viewports copied into
// the packet.
func SetViewports(b *Buffer, viewports ...rhi.Viewport) {
	cmd := Add[SetViewportsCommand](b, auxSize[rhi.Viewport](len(viewports)))
	cmd.NumberOfViewports = uint32(len(viewports)) //#nosec G115 -- bounded by buffer size
	copy(cmd.Viewports(), viewports)
}

// SetScissorRectangles records a SetScissorRectanglesCommand with the
// rectangles copied into the packet.
func SetScissorRectangles(b *Buffer, rects ...rhi.ScissorRectangle) {
	cmd := Add[SetScissorRectanglesCommand](b, auxSize[rhi.ScissorRectangle](len(rects)))
	cmd.NumberOfScissorRectangles = uint32(len(rects)) //#nosec G115 -- bounded by buffer size
	copy(cmd.ScissorRectangles(), rects)
}

// SetViewportAndScissorRectangle records one viewport and a matching scissor
// rectangle covering the same area.
func SetViewportAndScissorRectangle(b *Buffer, topLeftX, topLeftY, width, height uint32, minDepth, maxDepth float32) {
	SetViewports(b, rhi.Viewport{
		TopLeftX: float32(topLeftX),
		TopLeftY: float32(topLeftY),
		Width:    float32(width),
		Height:   float32(height),
		MinDepth: minDepth,
		MaxDepth: maxDepth,
	})
	SetScissorRectangles(b, rhi.ScissorRectangle{
		TopLeftX:     int32(topLeftX),          //#nosec G115 -- pixel coordinates
		TopLeftY:     int32(topLeftY),          //#nosec G115 -- pixel coordinates
		BottomRightX: int32(topLeftX + width),  //#nosec G115 -- pixel coordinates
		BottomRightY: int32(topLeftY + height), //#nosec G115 -- pixel coordinates
	})
}

// SetRenderTarget records a SetRenderTargetCommand.
func SetRenderTarget(b *Buffer, renderTarget rhi.RenderTargetRef) {
	Add[SetRenderTargetCommand](b, 0).RenderTarget = renderTarget
}

// Clear records a ClearCommand.
func Clear(b *Buffer, flags rhi.ClearFlags, color [4]float32, z float32, stencil uint32) {
	*Add[ClearCommand](b, 0) = ClearCommand{
		Flags:   flags,
		Color:   color,
		Z:       z,
		Stencil: stencil,
	}
}

// DrawIndirect records numberOfDraws draws whose arguments are read from
// indirectBuffer starting at offset.
func DrawIndirect(b *Buffer, indirectBuffer rhi.IndirectBufferRef, offset, numberOfDraws uint32) {
	*Add[DrawCommand](b, 0) = DrawCommand{
		IndirectBuffer:       indirectBuffer,
		IndirectBufferOffset: offset,
		NumberOfDraws:        numberOfDraws,
	}
}

// Draw records a single non-indexed draw with inline arguments.
func Draw(b *Buffer, vertexCountPerInstance, instanceCount, startVertex, startInstance uint32) {
	DrawInline(b, rhi.DrawArguments{
		VertexCountPerInstance: vertexCountPerInstance,
		InstanceCount:          instanceCount,
		StartVertexLocation:    startVertex,
		StartInstanceLocation:  startInstance,
	})
}

// DrawInline records non-indexed draws with the arguments copied into the
// packet.
func DrawInline(b *Buffer, args ...rhi.DrawArguments) {
	cmd := Add[DrawCommand](b, auxSize[rhi.DrawArguments](len(args)))
	cmd.IndirectBuffer = rhi.IndirectBufferRef(rhi.InvalidRef)
	cmd.NumberOfDraws = uint32(len(args)) //#nosec G115 -- bounded by buffer size
	copy(cmd.Arguments(), args)
}

// DrawIndexedIndirect records numberOfDraws indexed draws whose arguments
// are read from indirectBuffer starting at offset.
func DrawIndexedIndirect(b *Buffer, indirectBuffer rhi.IndirectBufferRef, offset, numberOfDraws uint32) {
	*Add[DrawIndexedCommand](b, 0) = DrawIndexedCommand{
		IndirectBuffer:       indirectBuffer,
		IndirectBufferOffset: offset,
		NumberOfDraws:        numberOfDraws,
	}
}

// DrawIndexed records a single indexed draw with inline arguments.
func DrawIndexed(b *Buffer, indexCountPerInstance, instanceCount, startIndex uint32, baseVertex int32, startInstance uint32) {
	DrawIndexedInline(b, rhi.DrawIndexedArguments{
		IndexCountPerInstance: indexCountPerInstance,
		InstanceCount:         instanceCount,
		StartIndexLocation:    startIndex,
		BaseVertexLocation:    baseVertex,
		StartInstanceLocation: startInstance,
	})
}

// DrawIndexedInline records indexed draws with the arguments copied into the
// packet.
func DrawIndexedInline(b *Buffer, args ...rhi.DrawIndexedArguments) {
	cmd := Add[DrawIndexedCommand](b, auxSize[rhi.DrawIndexedArguments](len(args)))
	cmd.IndirectBuffer = rhi.IndirectBufferRef(rhi.InvalidRef)
	cmd.NumberOfDraws = uint32(len(args)) //#nosec G115 -- bounded by buffer size
	copy(cmd.Arguments(), args)
}

// SetDebugMarker records a SetDebugMarkerCommand. Long names are truncated.
func SetDebugMarker(b *Buffer, name string) {
	Add[SetDebugMarkerCommand](b, 0).Name = MakeName(name)
}

// BeginDebugEvent records a BeginDebugEventCommand. Long names are truncated.
func BeginDebugEvent(b *Buffer, name string) {
	Add[BeginDebugEventCommand](b, 0).Name = MakeName(name)
}

// EndDebugEvent records an EndDebugEventCommand.
func EndDebugEvent(b *Buffer) {
	Add[EndDebugEventCommand](b, 0)
}
