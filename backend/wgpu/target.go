// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
)

// copyPitchAlignment is the required BytesPerRow alignment of
// texture-to-buffer copies.
const copyPitchAlignment = 256

// RenderTarget is a color attachment with an optional depth/stencil
// attachment.
//
// Targets created by NewRenderTarget own their textures and can be read
// back with Snapshot. Targets registered with AddRenderTarget are borrowed:
// Texture may be nil, and RemoveRenderTarget leaves them alive.
type RenderTarget struct {
	Texture          hal.Texture
	View             hal.TextureView
	DepthTexture     hal.Texture
	DepthStencilView hal.TextureView
	Width, Height    uint32

	owned bool
}

// NewRenderTarget creates a BGRA8 color texture and a Depth24PlusStencil8
// texture of the given size and registers them as a render target.
func (r *Renderer) NewRenderTarget(width, height int) (rhi.RenderTargetRef, error) {
	invalid := rhi.RenderTargetRef(rhi.InvalidRef)
	if width <= 0 || height <= 0 {
		return invalid, fmt.Errorf("wgpu: invalid render target size %dx%d", width, height)
	}
	rt := &RenderTarget{
		// #nosec G115 -- validated positive above
		Width: uint32(width),
		// #nosec G115 -- validated positive above
		Height: uint32(height),
		owned:  true,
	}
	if err := r.createTextures(rt); err != nil {
		r.destroyTextures(rt)
		return invalid, err
	}
	return r.targets.Add(rt), nil
}

func (r *Renderer) createTextures(rt *RenderTarget) error {
	size := hal.Extent3D{
		Width:              rt.Width,
		Height:             rt.Height,
		DepthOrArrayLayers: 1,
	}

	var err error
	rt.Texture, err = r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "rhi_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color texture: %w", err)
	}
	rt.View, err = r.device.CreateTextureView(rt.Texture, &hal.TextureViewDescriptor{
		Label: "rhi_color_view",
	})
	if err != nil {
		return fmt.Errorf("create color texture view: %w", err)
	}

	rt.DepthTexture, err = r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "rhi_depth_stencil",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatDepth24PlusStencil8,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth/stencil texture: %w", err)
	}
	rt.DepthStencilView, err = r.device.CreateTextureView(rt.DepthTexture, &hal.TextureViewDescriptor{
		Label: "rhi_depth_stencil_view",
	})
	if err != nil {
		return fmt.Errorf("create depth/stencil texture view: %w", err)
	}
	return nil
}

func (r *Renderer) destroyTextures(rt *RenderTarget) {
	if rt.DepthStencilView != nil {
		r.device.DestroyTextureView(rt.DepthStencilView)
		rt.DepthStencilView = nil
	}
	if rt.DepthTexture != nil {
		r.device.DestroyTexture(rt.DepthTexture)
		rt.DepthTexture = nil
	}
	if rt.View != nil {
		r.device.DestroyTextureView(rt.View)
		rt.View = nil
	}
	if rt.Texture != nil {
		r.device.DestroyTexture(rt.Texture)
		rt.Texture = nil
	}
}

// AddRenderTarget registers a render target whose textures are owned by
// the caller, such as a surface view.
func (r *Renderer) AddRenderTarget(rt *RenderTarget) rhi.RenderTargetRef {
	rt.owned = false
	return r.targets.Add(rt)
}

// RenderTarget returns the render target for ref.
func (r *Renderer) RenderTarget(ref rhi.RenderTargetRef) (*RenderTarget, bool) {
	return r.targets.Get(ref)
}

// RemoveRenderTarget forgets a render target, destroying its textures if
// NewRenderTarget created them.
func (r *Renderer) RemoveRenderTarget(ref rhi.RenderTargetRef) {
	rt, ok := r.targets.Remove(ref)
	if ok && rt.owned {
		r.destroyTextures(rt)
	}
}

// Snapshot copies the color attachment of a render target into an image.
// It must not be called while a frame is being recorded.
func (r *Renderer) Snapshot(ref rhi.RenderTargetRef) (image.Image, error) {
	if r.frame != nil {
		return nil, ErrFrameActive
	}
	rt, ok := r.targets.Get(ref)
	if !ok {
		return nil, fmt.Errorf("%w: render target %d", ErrUnknownResource, ref)
	}
	if rt.Texture == nil {
		return nil, ErrNotReadable
	}

	w, h := rt.Width, rt.Height
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "rhi_snapshot_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(staging)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "rhi_snapshot",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("rhi_snapshot"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: rt.Texture,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(rt.Texture, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: rt.Texture, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: rt.Texture,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	if err := r.submit(encoder); err != nil {
		return nil, err
	}

	mapping, err := r.device.MapBuffer(staging, 0, stagingSize)
	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}
	readback := unsafe.Slice((*byte)(mapping.Ptr), stagingSize)
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for y := range int(h) {
		src := readback[y*int(alignedBytesPerRow):][:bytesPerRow]
		dst := img.Pix[y*img.Stride:][:bytesPerRow]
		bgraToRGBA(dst, src)
	}
	if err := r.device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("unmap staging buffer: %w", err)
	}
	return img, nil
}

// bgraToRGBA swaps the red and blue channels of packed 8-bit pixels.
func bgraToRGBA(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}

// Release destroys the textures of owned render targets and forgets all
// registered resources.
func (r *Renderer) Release() {
	r.targets.All(func(_ rhi.RenderTargetRef, rt *RenderTarget) {
		if rt.owned {
			r.destroyTextures(rt)
		}
	})
	r.targets.Clear()
	r.pipelines.Clear()
	r.groups.Clear()
	r.vertexArrays.Clear()
	r.indirect.Clear()
}
