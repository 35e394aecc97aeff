// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
	"github.com/gogpu/rhi/command"
)

func init() {
	backend.Register(backend.BackendWGPU, func() backend.Backend {
		b := NewBackend()
		if p := sharedProvider(); p != nil {
			if err := b.useProvider(p); err != nil {
				rhi.Logger().Warn("wgpu: shared device rejected", "err", err)
			}
		}
		return b
	})
}

// Ensure Backend implements all required interfaces.
var (
	_ backend.Backend        = (*Backend)(nil)
	_ backend.TargetProvider = (*Backend)(nil)
	_ backend.Executor       = (*Backend)(nil)
)

var (
	providerMu sync.Mutex
	provider   any
)

// SetDeviceProvider makes backends created by the registry use a GPU
// device shared by the host application instead of opening their own.
//
// The provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue. Passing nil restores the default.
func SetDeviceProvider(p any) error {
	if p != nil {
		if _, _, err := halFromProvider(p); err != nil {
			return err
		}
	}
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
	return nil
}

func sharedProvider() any {
	providerMu.Lock()
	defer providerMu.Unlock()
	return provider
}

func halFromProvider(p any) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := p.(halProvider)
	if !ok {
		return nil, nil, errors.New("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, errors.New("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, errors.New("wgpu: provider HalQueue is not hal.Queue")
	}
	return device, queue, nil
}

// Backend is a GPU execution backend built on gogpu/wgpu.
type Backend struct {
	opts     []Option
	own      *gpuDevice
	device   hal.Device
	queue    hal.Queue
	external bool
	renderer *Renderer
}

// NewBackend creates a backend that opens its own device on Init.
func NewBackend(opts ...Option) *Backend {
	return &Backend{opts: opts}
}

// NewFromProvider creates a backend that renders with the device of a host
// application. The provider must also expose its HAL device and queue.
func NewFromProvider(p gpucontext.DeviceProvider, opts ...Option) (*Backend, error) {
	b := NewBackend(opts...)
	if err := b.useProvider(p); err != nil {
		return nil, err
	}
	info := p.AdapterInfo()
	rhi.Logger().Debug("wgpu: using shared device",
		"adapter", info.Name, "adapterType", info.Type, "surfaceFormat", p.SurfaceFormat())
	return b, nil
}

func (b *Backend) useProvider(p any) error {
	device, queue, err := halFromProvider(p)
	if err != nil {
		return err
	}
	b.device = device
	b.queue = queue
	b.external = true
	return nil
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWGPU
}

// Init opens a GPU device unless one was provided, and creates the
// renderer. It returns backend.ErrBackendNotAvailable if no device can be
// opened.
func (b *Backend) Init() error {
	if b.renderer != nil {
		return nil
	}
	if !b.external {
		dev, err := openDevice()
		if err != nil {
			return fmt.Errorf("%w: wgpu: %w", backend.ErrBackendNotAvailable, err)
		}
		b.own = dev
		b.device = dev.device
		b.queue = dev.queue
	}
	b.renderer = NewRenderer(b.device, b.queue, b.opts...)
	return nil
}

// Close releases the renderer's render targets and, if the backend opened
// the device itself, the device.
func (b *Backend) Close() {
	if b.renderer != nil {
		b.renderer.AbortFrame()
		b.renderer.Release()
		b.renderer = nil
	}
	if b.own != nil {
		b.own.destroy()
		b.own = nil
	}
	if !b.external {
		b.device = nil
		b.queue = nil
	}
}

// Renderer returns the wgpu renderer, or nil before Init.
func (b *Backend) Renderer() rhi.Renderer {
	if b.renderer == nil {
		return nil
	}
	return b.renderer
}

// Wgpu returns the concrete renderer, or nil before Init.
func (b *Backend) Wgpu() *Renderer {
	return b.renderer
}

// Execute submits buf as one GPU frame and waits for it to complete.
func (b *Backend) Execute(buf *command.Buffer) error {
	if b.renderer == nil {
		return backend.ErrNotInitialized
	}
	return b.renderer.Execute(buf)
}

// NewRenderTarget creates a readable render target of the given size.
func (b *Backend) NewRenderTarget(width, height int) (rhi.RenderTargetRef, error) {
	if b.renderer == nil {
		return rhi.RenderTargetRef(rhi.InvalidRef), backend.ErrNotInitialized
	}
	return b.renderer.NewRenderTarget(width, height)
}

// Snapshot reads back the color contents of a render target.
func (b *Backend) Snapshot(target rhi.RenderTargetRef) (image.Image, error) {
	if b.renderer == nil {
		return nil, backend.ErrNotInitialized
	}
	return b.renderer.Snapshot(target)
}
