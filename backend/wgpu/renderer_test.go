// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/command"
)

func TestNewRenderTarget(t *testing.T) {
	device, queue := createNoopDevice(t)
	r := NewRenderer(device, queue)

	ref, err := r.NewRenderTarget(8, 4)
	if err != nil {
		t.Fatalf("NewRenderTarget() error = %v", err)
	}
	rt, ok := r.RenderTarget(ref)
	if !ok {
		t.Fatal("RenderTarget() not found")
	}
	if rt.Width != 8 || rt.Height != 4 {
		t.Errorf("size = %dx%d, want 8x4", rt.Width, rt.Height)
	}
	if rt.Texture == nil || rt.View == nil || rt.DepthTexture == nil || rt.DepthStencilView == nil {
		t.Errorf("render target textures not created: %+v", rt)
	}

	r.RemoveRenderTarget(ref)
	if _, ok := r.RenderTarget(ref); ok {
		t.Error("RenderTarget() found after remove")
	}
	if rt.Texture != nil || rt.View != nil {
		t.Error("owned textures not destroyed on remove")
	}
}

func TestNewRenderTargetInvalidSize(t *testing.T) {
	r := NewRenderer(nil, nil)
	for _, size := range [][2]int{{0, 4}, {4, 0}, {-1, 3}} {
		ref, err := r.NewRenderTarget(size[0], size[1])
		if err == nil {
			t.Errorf("NewRenderTarget(%d, %d) error = nil", size[0], size[1])
		}
		if ref.IsValid() {
			t.Errorf("NewRenderTarget(%d, %d) ref = %d, want invalid", size[0], size[1], ref)
		}
	}
}

func TestBorrowedRenderTarget(t *testing.T) {
	r := NewRenderer(nil, nil)
	view := &fakeView{}
	rt := &RenderTarget{View: view, Width: 2, Height: 2}
	ref := r.AddRenderTarget(rt)

	r.RemoveRenderTarget(ref)
	if rt.View != view {
		t.Error("borrowed render target was destroyed on remove")
	}
}

func TestFrameLifecycle(t *testing.T) {
	device, queue := createNoopDevice(t)
	r := NewRenderer(device, queue, WithLabel("test"), WithSubmitTimeout(time.Second))

	if err := r.EndFrame(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("EndFrame() without frame error = %v, want ErrNoFrame", err)
	}
	if err := r.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := r.BeginFrame(); !errors.Is(err, ErrFrameActive) {
		t.Errorf("second BeginFrame() error = %v, want ErrFrameActive", err)
	}
	if err := r.EndFrame(); err != nil {
		t.Fatalf("EndFrame() error = %v", err)
	}
	if got := r.Stats().Frames; got != 1 {
		t.Errorf("Frames = %d, want 1", got)
	}
}

func TestAbortFrame(t *testing.T) {
	device, queue := createNoopDevice(t)
	r := NewRenderer(device, queue)

	r.AbortFrame()
	if err := r.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	r.AbortFrame()
	if err := r.EndFrame(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("EndFrame() after abort error = %v, want ErrNoFrame", err)
	}
	if got := r.Stats().Frames; got != 0 {
		t.Errorf("Frames = %d, want 0", got)
	}
}

func TestExecuteClear(t *testing.T) {
	device, queue := createNoopDevice(t)
	r := NewRenderer(device, queue)
	target, err := r.NewRenderTarget(4, 4)
	if err != nil {
		t.Fatalf("NewRenderTarget() error = %v", err)
	}

	buf := command.NewBuffer()
	command.SetRenderTarget(buf, target)
	command.Clear(buf, rhi.ClearColor|rhi.ClearDepth, [4]float32{0, 0, 1, 1}, 1, 0)
	command.SetDebugMarker(buf, "cleared")

	if err := r.Execute(buf); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	s := r.Stats()
	if s.Frames != 1 || s.RenderPasses != 1 {
		t.Errorf("Stats() = %+v, want 1 frame and 1 pass", s)
	}
}

func TestExecuteReportsFirstError(t *testing.T) {
	device, queue := createNoopDevice(t)
	r := NewRenderer(device, queue)

	buf := command.NewBuffer()
	command.SetRenderTarget(buf, rhi.RenderTargetRef(7))
	command.Draw(buf, 3, 1, 0, 0)

	err := r.Execute(buf)
	if !errors.Is(err, ErrUnknownResource) {
		t.Fatalf("Execute() error = %v, want ErrUnknownResource", err)
	}
	if got := r.Stats().Frames; got != 0 {
		t.Errorf("Frames = %d after failed frame, want 0", got)
	}

	// The failed frame must not poison the next one.
	if err := r.Execute(command.NewBuffer()); err != nil {
		t.Errorf("Execute() after failure error = %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	device, queue := createNoopDevice(t)
	r := NewRenderer(device, queue)
	target, err := r.NewRenderTarget(3, 2)
	if err != nil {
		t.Fatalf("NewRenderTarget() error = %v", err)
	}

	img, err := r.Snapshot(target)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("Snapshot() bounds = %v, want 3x2", b)
	}
}

func TestSnapshotReadback(t *testing.T) {
	device, queue := createNoopDevice(t)
	r := NewRenderer(patternDevice{device}, queue)
	target, err := r.NewRenderTarget(5, 3)
	if err != nil {
		t.Fatalf("NewRenderTarget() error = %v", err)
	}

	img, err := r.Snapshot(target)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	rgba := img.(*image.RGBA)
	for _, p := range []image.Point{{0, 0}, {4, 0}, {2, 1}, {4, 2}} {
		want := color.RGBA{R: 100, G: uint8(p.X), B: uint8(p.Y), A: 255}
		if got := rgba.RGBAAt(p.X, p.Y); got != want {
			t.Errorf("pixel %v = %v, want %v", p, got, want)
		}
	}
}

func TestEndFrameTimeout(t *testing.T) {
	device, queue := createNoopDevice(t)
	r := NewRenderer(device, stalledQueue{queue}, WithSubmitTimeout(time.Millisecond))

	if err := r.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := r.EndFrame(); !errors.Is(err, ErrTimeout) {
		t.Errorf("EndFrame() error = %v, want ErrTimeout", err)
	}
	if err := r.BeginFrame(); err != nil {
		t.Errorf("BeginFrame() after timeout error = %v", err)
	}
	r.AbortFrame()
}

func TestSnapshotErrors(t *testing.T) {
	device, queue := createNoopDevice(t)
	r := NewRenderer(device, queue)
	borrowed := r.AddRenderTarget(&RenderTarget{View: &fakeView{}, Width: 2, Height: 2})

	if _, err := r.Snapshot(rhi.RenderTargetRef(42)); !errors.Is(err, ErrUnknownResource) {
		t.Errorf("Snapshot(unknown) error = %v, want ErrUnknownResource", err)
	}
	if _, err := r.Snapshot(borrowed); !errors.Is(err, ErrNotReadable) {
		t.Errorf("Snapshot(borrowed) error = %v, want ErrNotReadable", err)
	}

	if err := r.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	defer r.AbortFrame()
	if _, err := r.Snapshot(borrowed); !errors.Is(err, ErrFrameActive) {
		t.Errorf("Snapshot() during frame error = %v, want ErrFrameActive", err)
	}
}

func TestRelease(t *testing.T) {
	device, queue := createNoopDevice(t)
	r := NewRenderer(device, queue)
	target, err := r.NewRenderTarget(2, 2)
	if err != nil {
		t.Fatalf("NewRenderTarget() error = %v", err)
	}
	rt, _ := r.RenderTarget(target)
	pipeline := r.AddPipelineState(&fakePipeline{name: "p"})

	r.Release()
	if _, ok := r.RenderTarget(target); ok {
		t.Error("render target still registered after Release")
	}
	if rt.Texture != nil {
		t.Error("owned texture not destroyed by Release")
	}
	if r.pipelines.Has(pipeline) {
		t.Error("pipeline still registered after Release")
	}
}

func TestBGRAToRGBA(t *testing.T) {
	src := []byte{10, 20, 30, 255, 1, 2, 3, 4}
	dst := make([]byte, len(src))
	bgraToRGBA(dst, src)
	want := []byte{30, 20, 10, 255, 3, 2, 1, 4}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("bgraToRGBA() = %v, want %v", dst, want)
		}
	}
}
