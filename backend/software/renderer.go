// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/rhi"
)

// Errors returned by the software renderer.
var (
	// ErrUnknownRenderTarget is returned for a ref that names no render target.
	ErrUnknownRenderTarget = errors.New("software: unknown render target")

	// ErrInvalidSize is returned when a render target would be empty.
	ErrInvalidSize = errors.New("software: invalid render target size")
)

var _ rhi.Renderer = (*Renderer)(nil)

// RenderTarget is an in-memory render target.
type RenderTarget struct {
	Color   draw.Image
	Depth   float32
	Stencil uint32
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithScissorTest enables or disables clipping clears to the first scissor
// rectangle. It is enabled by default.
func WithScissorTest(enabled bool) Option {
	return func(r *Renderer) {
		r.scissorTest = enabled
	}
}

// Renderer executes commands on the CPU.
// It is not safe for concurrent use.
type Renderer struct {
	targets  *rhi.ResourcePool[rhi.RenderTargetRef, *RenderTarget]
	indirect *rhi.ResourcePool[rhi.IndirectBufferRef, []byte]

	target        rhi.RenderTargetRef
	rootSignature rhi.RootSignatureRef
	pipeline      rhi.PipelineStateRef
	vertexArray   rhi.VertexArrayRef
	topology      gputypes.PrimitiveTopology
	tables        map[uint32]rhi.ResourceGroupRef
	viewports     []rhi.Viewport
	scissors      []rhi.ScissorRectangle
	scissorTest   bool

	events  []string
	markers []string
	stats   Stats
}

// NewRenderer creates a software renderer with no render targets.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		targets:     rhi.NewResourcePool[rhi.RenderTargetRef, *RenderTarget](4),
		indirect:    rhi.NewResourcePool[rhi.IndirectBufferRef, []byte](4),
		target:      rhi.RenderTargetRef(rhi.InvalidRef),
		tables:      make(map[uint32]rhi.ResourceGroupRef),
		scissorTest: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRenderTarget creates an RGBA render target of the given size.
func (r *Renderer) NewRenderTarget(width, height int) (rhi.RenderTargetRef, error) {
	if width <= 0 || height <= 0 {
		return rhi.RenderTargetRef(rhi.InvalidRef), fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return r.AddRenderTarget(image.NewRGBA(image.Rect(0, 0, width, height))), nil
}

// AddRenderTarget registers an existing image as a render target.
func (r *Renderer) AddRenderTarget(img draw.Image) rhi.RenderTargetRef {
	return r.targets.Add(&RenderTarget{Color: img, Depth: 1})
}

// RemoveRenderTarget releases a render target.
func (r *Renderer) RemoveRenderTarget(ref rhi.RenderTargetRef) {
	r.targets.Remove(ref)
	if ref == r.target {
		r.target = rhi.RenderTargetRef(rhi.InvalidRef)
	}
}

// RenderTarget returns the render target for ref.
func (r *Renderer) RenderTarget(ref rhi.RenderTargetRef) (*RenderTarget, bool) {
	return r.targets.Get(ref)
}

// Snapshot returns a copy of the color contents of a render target.
func (r *Renderer) Snapshot(ref rhi.RenderTargetRef) (image.Image, error) {
	rt, ok := r.targets.Get(ref)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRenderTarget, ref)
	}
	b := rt.Color.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, rt.Color, b.Min, draw.Src)
	return out, nil
}

// Present scales the color contents of a render target into dst.
func (r *Renderer) Present(dst draw.Image, ref rhi.RenderTargetRef) error {
	rt, ok := r.targets.Get(ref)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownRenderTarget, ref)
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), rt.Color, rt.Color.Bounds(), draw.Src, nil)
	return nil
}

// NewIndirectBuffer registers argument data for indirect draws.
// The data is used in place and must not be modified while commands
// referencing it may still be submitted.
func (r *Renderer) NewIndirectBuffer(data []byte) rhi.IndirectBufferRef {
	return r.indirect.Add(data)
}

// RemoveIndirectBuffer releases an indirect buffer.
func (r *Renderer) RemoveIndirectBuffer(ref rhi.IndirectBufferRef) {
	r.indirect.Remove(ref)
}

// EncodeDrawArguments returns args in the layout read by DrawIndirect.
func EncodeDrawArguments(args ...rhi.DrawArguments) []byte {
	out := make([]byte, 0, len(args)*rhi.DrawArgumentsSize)
	for _, a := range args {
		out, _ = binary.Append(out, binary.LittleEndian, a)
	}
	return out
}

// EncodeDrawIndexedArguments returns args in the layout read by
// DrawIndexedIndirect.
func EncodeDrawIndexedArguments(args ...rhi.DrawIndexedArguments) []byte {
	out := make([]byte, 0, len(args)*rhi.DrawIndexedArgumentsSize)
	for _, a := range args {
		out, _ = binary.Append(out, binary.LittleEndian, a)
	}
	return out
}

// Stats returns the work counters.
func (r *Renderer) Stats() Stats { return r.stats }

// ResetStats zeroes the work counters.
func (r *Renderer) ResetStats() { r.stats = Stats{} }

// Markers returns every marker seen so far as a "/"-separated path of the
// enclosing debug events.
func (r *Renderer) Markers() []string { return r.markers }

// EventDepth returns the number of open debug events.
func (r *Renderer) EventDepth() int { return len(r.events) }

// PipelineState returns the bound pipeline state.
func (r *Renderer) PipelineState() rhi.PipelineStateRef { return r.pipeline }

// VertexArray returns the bound vertex array.
func (r *Renderer) VertexArray() rhi.VertexArrayRef { return r.vertexArray }

// RootSignature returns the bound root signature.
func (r *Renderer) RootSignature() rhi.RootSignatureRef { return r.rootSignature }

// PrimitiveTopology returns the current topology.
func (r *Renderer) PrimitiveTopology() gputypes.PrimitiveTopology { return r.topology }

// DescriptorTable returns the resource group bound to a root parameter.
func (r *Renderer) DescriptorTable(rootParameterIndex uint32) (rhi.ResourceGroupRef, bool) {
	g, ok := r.tables[rootParameterIndex]
	return g, ok
}

// Viewports returns the current viewports.
func (r *Renderer) Viewports() []rhi.Viewport { return r.viewports }

// ScissorRectangles returns the current scissor rectangles.
func (r *Renderer) ScissorRectangles() []rhi.ScissorRectangle { return r.scissors }

// SetGraphicsRootSignature implements rhi.Renderer.
func (r *Renderer) SetGraphicsRootSignature(rootSignature rhi.RootSignatureRef) {
	r.rootSignature = rootSignature
	clear(r.tables)
	r.stats.StateChanges++
}

// SetGraphicsRootDescriptorTable implements rhi.Renderer.
func (r *Renderer) SetGraphicsRootDescriptorTable(rootParameterIndex uint32, resource rhi.ResourceGroupRef) {
	r.tables[rootParameterIndex] = resource
	r.stats.StateChanges++
}

// SetPipelineState implements rhi.Renderer.
func (r *Renderer) SetPipelineState(pipelineState rhi.PipelineStateRef) {
	r.pipeline = pipelineState
	r.stats.StateChanges++
}

// SetVertexArray implements rhi.Renderer.
func (r *Renderer) SetVertexArray(vertexArray rhi.VertexArrayRef) {
	r.vertexArray = vertexArray
	r.stats.StateChanges++
}

// SetPrimitiveTopology implements rhi.Renderer.
func (r *Renderer) SetPrimitiveTopology(topology gputypes.PrimitiveTopology) {
	r.topology = topology
	r.stats.StateChanges++
}

// SetViewports implements rhi.Renderer. The viewports are copied.
func (r *Renderer) SetViewports(viewports []rhi.Viewport) {
	r.viewports = append(r.viewports[:0], viewports...)
	r.stats.StateChanges++
}

// SetScissorRectangles implements rhi.Renderer. The rectangles are copied.
func (r *Renderer) SetScissorRectangles(rectangles []rhi.ScissorRectangle) {
	r.scissors = append(r.scissors[:0], rectangles...)
	r.stats.StateChanges++
}

// SetRenderTarget implements rhi.Renderer.
func (r *Renderer) SetRenderTarget(renderTarget rhi.RenderTargetRef) {
	if _, ok := r.targets.Get(renderTarget); !ok && renderTarget.IsValid() {
		rhi.Logger().Warn("software: unknown render target", "ref", uint32(renderTarget))
	}
	r.target = renderTarget
	r.stats.StateChanges++
}

// Clear implements rhi.Renderer.
func (r *Renderer) Clear(flags rhi.ClearFlags, c [4]float32, z float32, stencil uint32) {
	rt, ok := r.targets.Get(r.target)
	if !ok {
		rhi.Logger().Warn("software: clear without render target", "flags", flags.String())
		return
	}
	r.stats.Clears++

	if flags.Has(rhi.ClearColor) {
		rect := rt.Color.Bounds()
		if r.scissorTest && len(r.scissors) > 0 {
			s := r.scissors[0]
			rect = rect.Intersect(image.Rectangle{
				Min: image.Pt(int(s.TopLeftX), int(s.TopLeftY)),
				Max: image.Pt(int(s.BottomRightX), int(s.BottomRightY)),
			})
		}
		draw.Draw(rt.Color, rect, image.NewUniform(toColor(c)), image.Point{}, draw.Src)
	}
	if flags.Has(rhi.ClearDepth) {
		rt.Depth = z
	}
	if flags.Has(rhi.ClearStencil) {
		rt.Stencil = stencil
	}
}

// Draw implements rhi.Renderer.
func (r *Renderer) Draw(args []rhi.DrawArguments) {
	r.checkDrawState("draw")
	for _, a := range args {
		r.stats.addDraw(a)
	}
}

// DrawIndirect implements rhi.Renderer.
func (r *Renderer) DrawIndirect(buffer rhi.IndirectBufferRef, offset, numberOfDraws uint32) {
	data, ok := r.indirectRange(buffer, offset, numberOfDraws, rhi.DrawArgumentsSize)
	if !ok {
		return
	}
	r.checkDrawState("draw indirect")
	r.stats.IndirectDraws++
	for i := range int(numberOfDraws) {
		var a rhi.DrawArguments
		if _, err := binary.Decode(data[i*rhi.DrawArgumentsSize:], binary.LittleEndian, &a); err != nil {
			rhi.Logger().Warn("software: decode draw arguments", "err", err)
			return
		}
		r.stats.addDraw(a)
	}
}

// DrawIndexed implements rhi.Renderer.
func (r *Renderer) DrawIndexed(args []rhi.DrawIndexedArguments) {
	r.checkDrawState("draw indexed")
	for _, a := range args {
		r.stats.addIndexedDraw(a)
	}
}

// DrawIndexedIndirect implements rhi.Renderer.
func (r *Renderer) DrawIndexedIndirect(buffer rhi.IndirectBufferRef, offset, numberOfDraws uint32) {
	data, ok := r.indirectRange(buffer, offset, numberOfDraws, rhi.DrawIndexedArgumentsSize)
	if !ok {
		return
	}
	r.checkDrawState("draw indexed indirect")
	r.stats.IndirectDraws++
	for i := range int(numberOfDraws) {
		var a rhi.DrawIndexedArguments
		if _, err := binary.Decode(data[i*rhi.DrawIndexedArgumentsSize:], binary.LittleEndian, &a); err != nil {
			rhi.Logger().Warn("software: decode draw arguments", "err", err)
			return
		}
		r.stats.addIndexedDraw(a)
	}
}

// SetDebugMarker implements rhi.Renderer.
func (r *Renderer) SetDebugMarker(name string) {
	r.markers = append(r.markers, r.eventPath(name))
	r.stats.Markers++
}

// BeginDebugEvent implements rhi.Renderer.
func (r *Renderer) BeginDebugEvent(name string) {
	r.events = append(r.events, name)
}

// EndDebugEvent implements rhi.Renderer.
func (r *Renderer) EndDebugEvent() {
	if len(r.events) == 0 {
		rhi.Logger().Warn("software: unbalanced debug event")
		return
	}
	r.events = r.events[:len(r.events)-1]
}

func (r *Renderer) eventPath(name string) string {
	if len(r.events) == 0 {
		return name
	}
	return strings.Join(r.events, "/") + "/" + name
}

// indirectRange returns the argument bytes for numberOfDraws records of
// stride bytes at offset, or false if the buffer is unknown or too short.
func (r *Renderer) indirectRange(ref rhi.IndirectBufferRef, offset, numberOfDraws uint32, stride int) ([]byte, bool) {
	data, ok := r.indirect.Get(ref)
	if !ok {
		rhi.Logger().Warn("software: unknown indirect buffer", "ref", uint32(ref))
		return nil, false
	}
	end := uint64(offset) + uint64(numberOfDraws)*uint64(stride)
	if end > uint64(len(data)) {
		rhi.Logger().Warn("software: indirect arguments out of range",
			"ref", uint32(ref), "offset", offset, "draws", numberOfDraws, "size", len(data))
		return nil, false
	}
	return data[offset:end], true
}

func (r *Renderer) checkDrawState(op string) {
	if !r.pipeline.IsValid() || !r.targets.Has(r.target) {
		rhi.Logger().Debug("software: "+op+" with incomplete state",
			"pipeline", uint32(r.pipeline), "target", uint32(r.target))
	}
}

// toColor converts a linear float color to a non-premultiplied 16-bit color.
func toColor(c [4]float32) color.NRGBA64 {
	return color.NRGBA64{
		R: unorm16(c[0]),
		G: unorm16(c[1]),
		B: unorm16(c[2]),
		A: unorm16(c[3]),
	}
}

func unorm16(v float32) uint16 {
	switch {
	case v <= 0 || v != v:
		return 0
	case v >= 1:
		return 0xffff
	default:
		return uint16(v*0xffff + 0.5)
	}
}
