// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
)

func init() {
	backend.Register(backend.BackendSoftware, func() backend.Backend {
		return NewBackend()
	})
}

// Ensure Backend implements all required interfaces.
var (
	_ backend.Backend        = (*Backend)(nil)
	_ backend.TargetProvider = (*Backend)(nil)
)

// Backend is a CPU-based execution backend.
type Backend struct {
	opts     []Option
	renderer *Renderer
}

// NewBackend creates a new software backend. The options are applied to the
// renderer created by Init.
func NewBackend(opts ...Option) *Backend {
	return &Backend{opts: opts}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendSoftware
}

// Init initializes the backend.
func (b *Backend) Init() error {
	b.renderer = NewRenderer(b.opts...)
	return nil
}

// Close releases all backend resources.
func (b *Backend) Close() {
	b.renderer = nil
}

// Renderer returns the software renderer, or nil before Init.
func (b *Backend) Renderer() rhi.Renderer {
	if b.renderer == nil {
		return nil
	}
	return b.renderer
}

// Software returns the concrete renderer, or nil before Init.
func (b *Backend) Software() *Renderer {
	return b.renderer
}

// NewRenderTarget creates a render target of the given size.
func (b *Backend) NewRenderTarget(width, height int) (rhi.RenderTargetRef, error) {
	if b.renderer == nil {
		return rhi.RenderTargetRef(rhi.InvalidRef), backend.ErrNotInitialized
	}
	return b.renderer.NewRenderTarget(width, height)
}

// Snapshot returns a copy of a render target's color contents.
func (b *Backend) Snapshot(target rhi.RenderTargetRef) (image.Image, error) {
	if b.renderer == nil {
		return nil, backend.ErrNotInitialized
	}
	return b.renderer.Snapshot(target)
}
