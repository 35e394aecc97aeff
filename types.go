// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

import "strings"

// ClearFlags selects which planes of the current render target a clear affects.
type ClearFlags uint32

const (
	// ClearColor clears the color attachment.
	ClearColor ClearFlags = 1 << iota
	// ClearDepth clears the depth plane.
	ClearDepth
	// ClearStencil clears the stencil plane.
	ClearStencil

	// ClearColorDepth clears color and depth.
	ClearColorDepth = ClearColor | ClearDepth
	// ClearAll clears color, depth and stencil.
	ClearAll = ClearColor | ClearDepth | ClearStencil
)

// Has reports whether all bits of mask are set.
func (f ClearFlags) Has(mask ClearFlags) bool {
	return f&mask == mask
}

// String returns a "|"-separated list of the set planes.
func (f ClearFlags) String() string {
	if f == 0 {
		return "None"
	}
	var parts []string
	if f.Has(ClearColor) {
		parts = append(parts, "Color")
	}
	if f.Has(ClearDepth) {
		parts = append(parts, "Depth")
	}
	if f.Has(ClearStencil) {
		parts = append(parts, "Stencil")
	}
	if f&^ClearAll != 0 {
		parts = append(parts, "Unknown")
	}
	return strings.Join(parts, "|")
}

// Viewport describes the mapping from normalized device coordinates to the
// render target. Fields are in pixels except the depth range.
type Viewport struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

// ScissorRectangle limits rasterization to a pixel rectangle.
// The bottom-right corner is exclusive.
type ScissorRectangle struct {
	TopLeftX     int32
	TopLeftY     int32
	BottomRightX int32
	BottomRightY int32
}

// Width returns the rectangle width, or 0 if it is inverted.
func (r ScissorRectangle) Width() int32 {
	return max(r.BottomRightX-r.TopLeftX, 0)
}

// Height returns the rectangle height, or 0 if it is inverted.
func (r ScissorRectangle) Height() int32 {
	return max(r.BottomRightY-r.TopLeftY, 0)
}

// DrawArguments holds the arguments of one non-indexed draw.
// The layout matches the GPU indirect draw argument block (4 x uint32).
type DrawArguments struct {
	VertexCountPerInstance uint32
	InstanceCount          uint32
	StartVertexLocation    uint32
	StartInstanceLocation  uint32
}

// DrawIndexedArguments holds the arguments of one indexed draw.
// The layout matches the GPU indirect indexed draw argument block (5 x 32 bit).
type DrawIndexedArguments struct {
	IndexCountPerInstance uint32
	InstanceCount         uint32
	StartIndexLocation    uint32
	BaseVertexLocation    int32
	StartInstanceLocation uint32
}

// Size of the indirect argument blocks in bytes.
const (
	DrawArgumentsSize        = 16
	DrawIndexedArgumentsSize = 20
)
