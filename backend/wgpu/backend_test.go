// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
	"github.com/gogpu/rhi/command"
)

// sharedDevice is a host-owned device exposed the way gogpu exposes it.
type sharedDevice struct {
	device hal.Device
	queue  hal.Queue
}

func (sharedDevice) Device() gpucontext.Device   { return nil }
func (sharedDevice) Queue() gpucontext.Queue     { return nil }
func (sharedDevice) Adapter() gpucontext.Adapter { return nil }
func (sharedDevice) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}
func (sharedDevice) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop", Type: gpucontext.AdapterTypeSoftware}
}
func (d sharedDevice) HalDevice() any { return d.device }
func (d sharedDevice) HalQueue() any  { return d.queue }

var _ gpucontext.DeviceProvider = sharedDevice{}

func TestBackendName(t *testing.T) {
	if got := NewBackend().Name(); got != backend.BackendWGPU {
		t.Errorf("Name() = %q, want %q", got, backend.BackendWGPU)
	}
}

func TestBackendRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendWGPU) {
		t.Error("wgpu backend not registered")
	}
}

func TestBackendNotInitialized(t *testing.T) {
	b := NewBackend()
	if b.Renderer() != nil {
		t.Error("Renderer() before Init should be nil")
	}
	if _, err := b.NewRenderTarget(4, 4); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("NewRenderTarget() error = %v, want ErrNotInitialized", err)
	}
	if _, err := b.Snapshot(0); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("Snapshot() error = %v, want ErrNotInitialized", err)
	}
	if err := b.Execute(command.NewBuffer()); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("Execute() error = %v, want ErrNotInitialized", err)
	}
}

func TestNewFromProvider(t *testing.T) {
	device, queue := createNoopDevice(t)
	b, err := NewFromProvider(sharedDevice{device: device, queue: queue})
	if err != nil {
		t.Fatalf("NewFromProvider() error = %v", err)
	}
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if b.Wgpu().Device() != device {
		t.Error("renderer does not use the shared device")
	}

	target, err := b.NewRenderTarget(4, 4)
	if err != nil {
		t.Fatalf("NewRenderTarget() error = %v", err)
	}
	buf := command.NewBuffer()
	command.SetRenderTarget(buf, target)
	command.Clear(buf, rhi.ClearColor, [4]float32{1, 0, 0, 1}, 0, 0)
	if err := backend.Execute(b, buf); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := b.Snapshot(target); err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	b.Close()
	if b.Renderer() != nil {
		t.Error("Renderer() after Close should be nil")
	}
	if b.device != device {
		t.Error("Close released the shared device")
	}
}

func TestProviderRejected(t *testing.T) {
	tests := []struct {
		name     string
		provider any
	}{
		{"no hal accessors", struct{}{}},
		{"nil device", sharedDevice{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := SetDeviceProvider(tt.provider); err == nil {
				t.Error("SetDeviceProvider() error = nil")
			}
			if sharedProvider() != nil {
				t.Error("rejected provider was stored")
			}
		})
	}
}

func TestSetDeviceProvider(t *testing.T) {
	device, queue := createNoopDevice(t)
	if err := SetDeviceProvider(sharedDevice{device: device, queue: queue}); err != nil {
		t.Fatalf("SetDeviceProvider() error = %v", err)
	}
	t.Cleanup(func() { _ = SetDeviceProvider(nil) })

	b, err := backend.Open(backend.BackendWGPU)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer b.Close()
	r, ok := b.Renderer().(*Renderer)
	if !ok {
		t.Fatalf("Renderer() = %T, want *Renderer", b.Renderer())
	}
	if r.Device() != device {
		t.Error("registry backend does not use the shared device")
	}
}
