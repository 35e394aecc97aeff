// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu provides a GPU execution backend built on gogpu/wgpu.
//
// The backend translates submitted command buffers into WebGPU render
// passes through the wgpu hardware abstraction layer. It supports Vulkan,
// Metal, and DX12 depending on the platform, or any device shared by a host
// application through gpucontext.
//
// # Architecture Overview
//
//	command.Buffer -> Renderer -> hal.CommandEncoder -> hal.RenderPassEncoder -> hal.Queue
//
// Key components:
//
//   - Backend: Entry point implementing backend.Backend
//   - Renderer: rhi.Renderer that records into a frame's command encoder
//   - RenderTarget: Color and optional depth/stencil views for a pass
//   - VertexArray: Vertex and index buffer bindings for a draw
//
// # Frames
//
// Commands are recorded between BeginFrame and EndFrame. EndFrame submits
// the encoded work and waits for the GPU. Execute does all three for a
// single command buffer:
//
//	r := b.Wgpu()
//	if err := r.Execute(buf); err != nil {
//		log.Fatal(err)
//	}
//
// # Render Passes
//
// A render pass is begun lazily by the first command that needs one and
// ends when the render target changes or the frame ends. Clear commands
// become load operations of the next pass, so a clear always covers the
// whole render target.
//
// # Resources
//
// Resource refs in recorded commands are resolved through pools owned by
// the Renderer. Register pipelines, bind groups, vertex arrays, render
// targets, and indirect buffers before submitting commands that use them.
//
// # Device Sharing
//
// By default Init opens its own Vulkan device. Call SetDeviceProvider, or
// create the backend with NewFromProvider, to use a device owned by the host
// application. Build with the nogpu tag to disable device creation.
package wgpu
