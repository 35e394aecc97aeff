// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"image"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/command"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Backend name constants.
const (
	// BackendWGPU is the name of the GPU backend built on gogpu/wgpu.
	BackendWGPU = "wgpu"
	// BackendSoftware is the name of the CPU backend.
	BackendSoftware = "software"
	// BackendTrace is the name of the backend that logs every call.
	BackendTrace = "trace"
)

// Backend is the interface for execution backends.
// A backend owns an rhi.Renderer that recorded command buffers are
// submitted to.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// Init initializes the backend.
	// It returns ErrBackendNotAvailable if the backend cannot run here.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Renderer returns the renderer that executes submitted commands.
	// It returns nil before Init.
	Renderer() rhi.Renderer
}

// TargetProvider is implemented by backends that can create render targets
// and read them back to the CPU.
type TargetProvider interface {
	// NewRenderTarget creates a render target of the given size.
	NewRenderTarget(width, height int) (rhi.RenderTargetRef, error)

	// Snapshot returns the current contents of a render target.
	Snapshot(target rhi.RenderTargetRef) (image.Image, error)
}

// Executor is implemented by backends that need to wrap submission, for
// example in a GPU frame.
type Executor interface {
	// Execute submits the commands in buf and waits for them to complete.
	Execute(buf *command.Buffer) error
}

// Execute submits buf to b. Backends implementing Executor handle the
// submission themselves; for the others, buf is replayed on the renderer.
func Execute(b Backend, buf *command.Buffer) error {
	if e, ok := b.(Executor); ok {
		return e.Execute(buf)
	}
	r := b.Renderer()
	if r == nil {
		return ErrNotInitialized
	}
	buf.Submit(r)
	return nil
}
