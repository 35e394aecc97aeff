// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rhi

// InvalidRef is the sentinel value for an invalid reference.
// Use this to indicate that a reference does not point to a live resource.
const InvalidRef = ^uint32(0)

// Resource references are non-owning handles to objects managed by a
// backend (pipeline states, vertex arrays, render targets, buffers).
// They are plain integers so recorded commands stay pointer-free and can be
// copied, moved and replayed without touching the referenced object.
//
// Recording a reference never extends the lifetime of the resource. The
// caller must keep every referenced resource alive until the command buffer
// holding the reference has been submitted; submitting a reference to a
// released resource is undefined.

// RootSignatureRef references a root signature (pipeline layout).
type RootSignatureRef uint32

// PipelineStateRef references a compiled pipeline state object.
type PipelineStateRef uint32

// VertexArrayRef references a vertex array object (vertex and index buffer bindings).
type VertexArrayRef uint32

// RenderTargetRef references a render target (swap chain image or framebuffer).
type RenderTargetRef uint32

// ResourceGroupRef references a group of shader resources bound through a
// root descriptor table (uniform buffers, textures, samplers).
type ResourceGroupRef uint32

// IndirectBufferRef references a buffer holding draw arguments.
type IndirectBufferRef uint32

// IsValid returns true if the reference is not InvalidRef.
func (r RootSignatureRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid returns true if the reference is not InvalidRef.
func (r PipelineStateRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid returns true if the reference is not InvalidRef.
func (r VertexArrayRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid returns true if the reference is not InvalidRef.
func (r RenderTargetRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid returns true if the reference is not InvalidRef.
func (r ResourceGroupRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid returns true if the reference is not InvalidRef.
func (r IndirectBufferRef) IsValid() bool { return uint32(r) != InvalidRef }
