// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software provides a CPU backend for command buffer execution.
//
// The software backend does not rasterize geometry. It executes the state
// and clear commands against in-memory images and accounts for every draw,
// which makes it a deterministic reference for tests and headless tools.
//
// # Supported Features
//
//   - Render targets backed by image.RGBA
//   - Color clears, clipped to the first scissor rectangle
//   - Depth and stencil clear values
//   - Draw statistics for inline and indirect draws
//   - Indirect argument buffers in little-endian layout
//   - Debug event nesting and marker paths
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/rhi/backend/software"
//
//	r := software.NewRenderer()
//	rt := r.NewRenderTarget(640, 480)
//
//	buf := command.NewBuffer()
//	command.SetRenderTarget(buf, rt)
//	command.Clear(buf, rhi.ClearColor, [4]float32{0, 0, 1, 1}, 1, 0)
//	buf.Submit(r)
//
//	img, _ := r.Snapshot(rt)
package software
