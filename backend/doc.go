// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend provides a pluggable execution backend abstraction.
//
// A backend owns an rhi.Renderer. Command buffers recorded with the
// command package are submitted to that renderer, which turns each packet
// into work for a GPU, a CPU rasterizer, or a log.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// Import the backend packages you want to make available:
//
//	import (
//		_ "github.com/gogpu/rhi/backend/software"
//		_ "github.com/gogpu/rhi/backend/trace"
//		_ "github.com/gogpu/rhi/backend/wgpu"
//	)
//
// # Backend Selection
//
// Use InitDefault() to initialize the best available backend, or Open() to
// request a specific backend by name:
//
//	b, err := backend.InitDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	buf := command.NewBuffer()
//	command.Clear(buf, rhi.ClearColor, [4]float32{0, 0, 0, 1}, 1, 0)
//	buf.Submit(b.Renderer())
//
// Priority order is wgpu, then software, then trace. The wgpu backend
// reports ErrBackendNotAvailable until a GPU device has been provided, so
// InitDefault falls back to the software backend on headless machines.
package backend
