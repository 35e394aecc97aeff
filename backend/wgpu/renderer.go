// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
)

// Errors returned by the wgpu renderer.
var (
	// ErrNoFrame is returned when commands are executed outside BeginFrame/EndFrame.
	ErrNoFrame = errors.New("wgpu: no active frame")

	// ErrFrameActive is returned when an operation needs the renderer idle.
	ErrFrameActive = errors.New("wgpu: frame already active")

	// ErrUnknownResource is returned when a command references an unregistered resource.
	ErrUnknownResource = errors.New("wgpu: unknown resource")

	// ErrTimeout is returned when the GPU does not finish in time.
	ErrTimeout = errors.New("wgpu: timed out waiting for GPU")

	// ErrNotReadable is returned when a render target cannot be read back.
	ErrNotReadable = errors.New("wgpu: render target is not readable")
)

// DefaultSubmitTimeout is how long EndFrame waits for the GPU.
const DefaultSubmitTimeout = 5 * time.Second

var _ rhi.Renderer = (*Renderer)(nil)

// VertexArray binds vertex buffers to consecutive slots and an optional
// index buffer.
type VertexArray struct {
	Buffers     []hal.Buffer
	Offsets     []uint64
	Index       hal.Buffer
	IndexFormat gputypes.IndexFormat
	IndexOffset uint64
}

// passEncoder is the part of hal.CommandEncoder that starts render passes.
type passEncoder interface {
	BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder
}

// pendingClear holds the clear values for the next render pass.
type pendingClear struct {
	flags   rhi.ClearFlags
	color   [4]float32
	z       float32
	stencil uint32
}

// state is the pipeline state recorded by commands. It outlives render
// passes and is reapplied when a new pass begins.
type state struct {
	target        rhi.RenderTargetRef
	rootSignature rhi.RootSignatureRef
	pipeline      rhi.PipelineStateRef
	vertexArray   rhi.VertexArrayRef
	topology      gputypes.PrimitiveTopology
	tables        map[uint32]rhi.ResourceGroupRef
	viewports     []rhi.Viewport
	scissors      []rhi.ScissorRectangle
	clear         pendingClear
}

func (s *state) reset() {
	s.target = rhi.RenderTargetRef(rhi.InvalidRef)
	s.rootSignature = rhi.RootSignatureRef(rhi.InvalidRef)
	s.pipeline = rhi.PipelineStateRef(rhi.InvalidRef)
	s.vertexArray = rhi.VertexArrayRef(rhi.InvalidRef)
	s.topology = gputypes.PrimitiveTopologyTriangleList
	if s.tables == nil {
		s.tables = make(map[uint32]rhi.ResourceGroupRef)
	}
	clear(s.tables)
	s.viewports = s.viewports[:0]
	s.scissors = s.scissors[:0]
	s.clear = pendingClear{}
}

// Renderer executes commands by encoding WebGPU render passes.
// It is not safe for concurrent use.
type Renderer struct {
	device  hal.Device
	queue   hal.Queue
	label   string
	timeout time.Duration

	pipelines    *rhi.ResourcePool[rhi.PipelineStateRef, hal.RenderPipeline]
	groups       *rhi.ResourcePool[rhi.ResourceGroupRef, hal.BindGroup]
	vertexArrays *rhi.ResourcePool[rhi.VertexArrayRef, *VertexArray]
	targets      *rhi.ResourcePool[rhi.RenderTargetRef, *RenderTarget]
	indirect     *rhi.ResourcePool[rhi.IndirectBufferRef, hal.Buffer]

	frame      hal.CommandEncoder
	encoder    passEncoder
	pass       hal.RenderPassEncoder
	passEvents int
	state      state
	err        error
	stats      Stats
}

// Stats counts the GPU work encoded by a Renderer.
type Stats struct {
	Frames       int
	RenderPasses int
	DrawCalls    int
	Skipped      int
}

// NewRenderer creates a renderer that encodes work for device and submits
// it to queue.
func NewRenderer(device hal.Device, queue hal.Queue, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Renderer{
		device:       device,
		queue:        queue,
		label:        o.label,
		timeout:      o.timeout,
		pipelines:    rhi.NewResourcePool[rhi.PipelineStateRef, hal.RenderPipeline](16),
		groups:       rhi.NewResourcePool[rhi.ResourceGroupRef, hal.BindGroup](16),
		vertexArrays: rhi.NewResourcePool[rhi.VertexArrayRef, *VertexArray](16),
		targets:      rhi.NewResourcePool[rhi.RenderTargetRef, *RenderTarget](4),
		indirect:     rhi.NewResourcePool[rhi.IndirectBufferRef, hal.Buffer](4),
	}
	r.state.reset()
	return r
}

// Device returns the HAL device.
func (r *Renderer) Device() hal.Device { return r.device }

// Stats returns the work counters.
func (r *Renderer) Stats() Stats { return r.stats }

// AddPipelineState registers a render pipeline.
func (r *Renderer) AddPipelineState(p hal.RenderPipeline) rhi.PipelineStateRef {
	return r.pipelines.Add(p)
}

// RemovePipelineState forgets a render pipeline. The pipeline is not destroyed.
func (r *Renderer) RemovePipelineState(ref rhi.PipelineStateRef) {
	r.pipelines.Remove(ref)
}

// AddResourceGroup registers a bind group.
func (r *Renderer) AddResourceGroup(g hal.BindGroup) rhi.ResourceGroupRef {
	return r.groups.Add(g)
}

// RemoveResourceGroup forgets a bind group. The group is not destroyed.
func (r *Renderer) RemoveResourceGroup(ref rhi.ResourceGroupRef) {
	r.groups.Remove(ref)
}

// AddVertexArray registers a vertex array.
func (r *Renderer) AddVertexArray(va *VertexArray) rhi.VertexArrayRef {
	return r.vertexArrays.Add(va)
}

// RemoveVertexArray forgets a vertex array. Its buffers are not destroyed.
func (r *Renderer) RemoveVertexArray(ref rhi.VertexArrayRef) {
	r.vertexArrays.Remove(ref)
}

// AddIndirectBuffer registers a buffer holding indirect draw arguments.
func (r *Renderer) AddIndirectBuffer(buf hal.Buffer) rhi.IndirectBufferRef {
	return r.indirect.Add(buf)
}

// RemoveIndirectBuffer forgets an indirect buffer. The buffer is not destroyed.
func (r *Renderer) RemoveIndirectBuffer(ref rhi.IndirectBufferRef) {
	r.indirect.Remove(ref)
}

// fail records the first error of the frame.
func (r *Renderer) fail(err error) {
	rhi.Logger().Warn("wgpu: command failed", "err", err)
	if r.err == nil {
		r.err = err
	}
}

// SetGraphicsRootSignature implements rhi.Renderer.
// WebGPU has no root signatures: the pipeline layout is part of the
// pipeline. The ref is tracked so descriptor tables can be reset.
func (r *Renderer) SetGraphicsRootSignature(rootSignature rhi.RootSignatureRef) {
	if rootSignature != r.state.rootSignature {
		clear(r.state.tables)
	}
	r.state.rootSignature = rootSignature
}

// SetGraphicsRootDescriptorTable implements rhi.Renderer.
func (r *Renderer) SetGraphicsRootDescriptorTable(rootParameterIndex uint32, resource rhi.ResourceGroupRef) {
	r.state.tables[rootParameterIndex] = resource
	if r.pass != nil {
		r.applyBindGroup(r.pass, rootParameterIndex, resource)
	}
}

// SetPipelineState implements rhi.Renderer.
func (r *Renderer) SetPipelineState(pipelineState rhi.PipelineStateRef) {
	r.state.pipeline = pipelineState
	if r.pass != nil {
		r.applyPipeline(r.pass)
	}
}

// SetVertexArray implements rhi.Renderer.
func (r *Renderer) SetVertexArray(vertexArray rhi.VertexArrayRef) {
	r.state.vertexArray = vertexArray
	if r.pass != nil {
		r.applyVertexArray(r.pass)
	}
}

// SetPrimitiveTopology implements rhi.Renderer.
// The topology is baked into WebGPU pipelines; it is only tracked here.
func (r *Renderer) SetPrimitiveTopology(topology gputypes.PrimitiveTopology) {
	r.state.topology = topology
}

// SetViewports implements rhi.Renderer. WebGPU has a single viewport, so
// only the first one is applied.
func (r *Renderer) SetViewports(viewports []rhi.Viewport) {
	r.state.viewports = append(r.state.viewports[:0], viewports...)
	if r.pass != nil {
		r.applyViewport(r.pass)
	}
}

// SetScissorRectangles implements rhi.Renderer. Only the first rectangle
// is applied.
func (r *Renderer) SetScissorRectangles(rectangles []rhi.ScissorRectangle) {
	r.state.scissors = append(r.state.scissors[:0], rectangles...)
	if r.pass != nil {
		r.applyScissor(r.pass)
	}
}

// SetRenderTarget implements rhi.Renderer. The current pass ends; the next
// pass renders into the new target.
func (r *Renderer) SetRenderTarget(renderTarget rhi.RenderTargetRef) {
	if renderTarget == r.state.target {
		return
	}
	r.flushClear()
	r.endPass()
	r.state.target = renderTarget
}

// Clear implements rhi.Renderer. The clear is folded into the load
// operations of the next render pass.
func (r *Renderer) Clear(flags rhi.ClearFlags, color [4]float32, z float32, stencil uint32) {
	r.endPass()
	c := &r.state.clear
	c.flags |= flags
	if flags.Has(rhi.ClearColor) {
		c.color = color
	}
	if flags.Has(rhi.ClearDepth) {
		c.z = z
	}
	if flags.Has(rhi.ClearStencil) {
		c.stencil = stencil
	}
}

// Draw implements rhi.Renderer.
func (r *Renderer) Draw(args []rhi.DrawArguments) {
	p := r.drawPass("draw")
	if p == nil {
		return
	}
	for _, a := range args {
		p.Draw(a.VertexCountPerInstance, a.InstanceCount, a.StartVertexLocation, a.StartInstanceLocation)
		r.stats.DrawCalls++
	}
}

// DrawIndexed implements rhi.Renderer.
func (r *Renderer) DrawIndexed(args []rhi.DrawIndexedArguments) {
	p := r.drawPass("draw indexed")
	if p == nil {
		return
	}
	if !r.hasIndexBuffer() {
		r.skip("draw indexed", "no index buffer bound")
		return
	}
	for _, a := range args {
		p.DrawIndexed(a.IndexCountPerInstance, a.InstanceCount, a.StartIndexLocation, a.BaseVertexLocation, a.StartInstanceLocation)
		r.stats.DrawCalls++
	}
}

// DrawIndirect implements rhi.Renderer.
func (r *Renderer) DrawIndirect(buffer rhi.IndirectBufferRef, offset, numberOfDraws uint32) {
	buf, ok := r.indirect.Get(buffer)
	if !ok {
		r.fail(fmt.Errorf("%w: indirect buffer %d", ErrUnknownResource, buffer))
		return
	}
	p := r.drawPass("draw indirect")
	if p == nil {
		return
	}
	d, ok := p.(indirectDrawer)
	if !ok {
		r.skip("draw indirect", "render pass does not support indirect draws")
		return
	}
	for i := range uint64(numberOfDraws) {
		d.DrawIndirect(buf, uint64(offset)+i*rhi.DrawArgumentsSize)
		r.stats.DrawCalls++
	}
}

// DrawIndexedIndirect implements rhi.Renderer.
func (r *Renderer) DrawIndexedIndirect(buffer rhi.IndirectBufferRef, offset, numberOfDraws uint32) {
	buf, ok := r.indirect.Get(buffer)
	if !ok {
		r.fail(fmt.Errorf("%w: indirect buffer %d", ErrUnknownResource, buffer))
		return
	}
	p := r.drawPass("draw indexed indirect")
	if p == nil {
		return
	}
	if !r.hasIndexBuffer() {
		r.skip("draw indexed indirect", "no index buffer bound")
		return
	}
	d, ok := p.(indexedIndirectDrawer)
	if !ok {
		r.skip("draw indexed indirect", "render pass does not support indirect draws")
		return
	}
	for i := range uint64(numberOfDraws) {
		d.DrawIndexedIndirect(buf, uint64(offset)+i*rhi.DrawIndexedArgumentsSize)
		r.stats.DrawCalls++
	}
}

// SetDebugMarker implements rhi.Renderer. Markers outside a render pass
// are only logged.
func (r *Renderer) SetDebugMarker(name string) {
	if m, ok := r.pass.(debugMarker); ok {
		m.InsertDebugMarker(name)
		return
	}
	rhi.Logger().Debug("wgpu: marker", "name", name)
}

// BeginDebugEvent implements rhi.Renderer. Events are scoped to the current
// render pass; events still open when the pass ends are closed with it.
func (r *Renderer) BeginDebugEvent(name string) {
	if g, ok := r.pass.(debugGrouper); ok {
		g.PushDebugGroup(name)
		r.passEvents++
		return
	}
	rhi.Logger().Debug("wgpu: begin event", "name", name)
}

// EndDebugEvent implements rhi.Renderer.
func (r *Renderer) EndDebugEvent() {
	if g, ok := r.pass.(debugGrouper); ok && r.passEvents > 0 {
		g.PopDebugGroup()
		r.passEvents--
		return
	}
	rhi.Logger().Debug("wgpu: end event")
}

func (r *Renderer) hasIndexBuffer() bool {
	va, ok := r.vertexArrays.Get(r.state.vertexArray)
	return ok && va.Index != nil
}

// drawPass returns the pass for a draw, or nil if the draw must be skipped.
func (r *Renderer) drawPass(op string) hal.RenderPassEncoder {
	p := r.ensurePass()
	if p == nil {
		return nil
	}
	if !r.pipelines.Has(r.state.pipeline) {
		r.skip(op, "no pipeline bound")
		return nil
	}
	return p
}

func (r *Renderer) skip(op, reason string) {
	r.stats.Skipped++
	rhi.Logger().Warn("wgpu: "+op+" skipped", "reason", reason)
}
