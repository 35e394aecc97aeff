// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rhi is a render hardware interface built around a deferred
// command buffer.
//
// # Overview
//
// Scene and material code records graphics operations (set pipeline state,
// bind resources, clear, draw, debug markers) into a command.Buffer. The
// buffer stores every command as a packet inside one contiguous byte block:
// a small header (link to the next packet, dispatch token) followed by the
// command's plain-data payload and optional auxiliary bytes. Later the buffer
// is submitted to a backend, which walks the packet chain and invokes the
// routine bound to each command's token.
//
// Recording never touches backend types. Backends implement [Renderer], or
// build their own dispatch table with command.Bind, and are selected at
// runtime through the backend registry.
//
// # Quick Start
//
//	buf := command.NewBuffer()
//	command.SetRenderTarget(buf, backbuffer)
//	command.Clear(buf, rhi.ClearColorDepth, [4]float32{0, 0, 0, 1}, 1, 0)
//	command.SetPipelineState(buf, pipeline)
//	command.SetVertexArray(buf, mesh)
//	command.Draw(buf, 3, 1, 0, 0)
//
//	buf.Submit(renderer) // replay; may be called again next frame
//
// # Resource References
//
// Commands hold non-owning references ([PipelineStateRef], [VertexArrayRef],
// [RenderTargetRef], ...). Backends resolve them through a [ResourcePool].
// The command buffer never extends a resource's lifetime; keep resources
// alive until every buffer that references them has been submitted.
//
// # Architecture
//
// The module is organized into:
//   - rhi: shared vocabulary (refs, viewports, draw arguments, Renderer)
//   - command: packet layout, growable store, Buffer, descriptors, dispatch
//   - backend: registry plus trace, software and wgpu backends
//
// # Logging
//
// rhi is silent by default. Use [SetLogger] to route diagnostics to a
// log/slog logger.
package rhi
