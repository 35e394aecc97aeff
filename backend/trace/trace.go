// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package trace provides a backend that records every renderer call as a
// line of text and writes it to the rhi logger.
//
// The trace backend is useful for debugging command buffers and for
// comparing the output of different recording paths in tests.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/rhi/backend/trace"
//
//	r := trace.NewRenderer()
//	buf.Submit(r)
//	for _, line := range r.Calls() {
//		fmt.Println(line)
//	}
package trace

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
)

func init() {
	backend.Register(backend.BackendTrace, func() backend.Backend {
		return NewBackend()
	})
}

// Ensure the types implement the required interfaces.
var (
	_ backend.Backend = (*Backend)(nil)
	_ rhi.Renderer    = (*Renderer)(nil)
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogLevel sets the level calls are logged at. The default is
// slog.LevelDebug.
func WithLogLevel(level slog.Level) Option {
	return func(r *Renderer) {
		r.level = level
	}
}

// WithoutRecording stops the renderer from keeping calls in memory.
// Calls are still logged.
func WithoutRecording() Option {
	return func(r *Renderer) {
		r.discard = true
	}
}

// Renderer implements rhi.Renderer by describing every call.
// It is safe for concurrent use.
type Renderer struct {
	mu      sync.Mutex
	calls   []string
	level   slog.Level
	discard bool
	depth   int
}

// NewRenderer creates a trace renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{level: slog.LevelDebug}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Calls returns a copy of the recorded calls.
func (r *Renderer) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset forgets all recorded calls.
func (r *Renderer) Reset() {
	r.mu.Lock()
	r.calls = r.calls[:0]
	r.depth = 0
	r.mu.Unlock()
}

func (r *Renderer) record(format string, args ...any) {
	line := fmt.Sprintf(format, args...)

	r.mu.Lock()
	if !r.discard {
		r.calls = append(r.calls, line)
	}
	depth := r.depth
	r.mu.Unlock()

	if l := rhi.Logger(); l.Enabled(context.Background(), r.level) {
		l.Log(context.Background(), r.level, "trace: "+line, "depth", depth)
	}
}

// SetGraphicsRootSignature implements rhi.Renderer.
func (r *Renderer) SetGraphicsRootSignature(rootSignature rhi.RootSignatureRef) {
	r.record("SetGraphicsRootSignature(%d)", rootSignature)
}

// SetGraphicsRootDescriptorTable implements rhi.Renderer.
func (r *Renderer) SetGraphicsRootDescriptorTable(rootParameterIndex uint32, resource rhi.ResourceGroupRef) {
	r.record("SetGraphicsRootDescriptorTable(%d, %d)", rootParameterIndex, resource)
}

// SetPipelineState implements rhi.Renderer.
func (r *Renderer) SetPipelineState(pipelineState rhi.PipelineStateRef) {
	r.record("SetPipelineState(%d)", pipelineState)
}

// SetVertexArray implements rhi.Renderer.
func (r *Renderer) SetVertexArray(vertexArray rhi.VertexArrayRef) {
	r.record("SetVertexArray(%d)", vertexArray)
}

// SetPrimitiveTopology implements rhi.Renderer.
func (r *Renderer) SetPrimitiveTopology(topology gputypes.PrimitiveTopology) {
	r.record("SetPrimitiveTopology(%v)", topology)
}

// SetViewports implements rhi.Renderer.
func (r *Renderer) SetViewports(viewports []rhi.Viewport) {
	r.record("SetViewports(%v)", viewports)
}

// SetScissorRectangles implements rhi.Renderer.
func (r *Renderer) SetScissorRectangles(rectangles []rhi.ScissorRectangle) {
	r.record("SetScissorRectangles(%v)", rectangles)
}

// SetRenderTarget implements rhi.Renderer.
func (r *Renderer) SetRenderTarget(renderTarget rhi.RenderTargetRef) {
	r.record("SetRenderTarget(%d)", renderTarget)
}

// Clear implements rhi.Renderer.
func (r *Renderer) Clear(flags rhi.ClearFlags, color [4]float32, z float32, stencil uint32) {
	r.record("Clear(%s, %v, %v, %d)", flags, color, z, stencil)
}

// Draw implements rhi.Renderer.
func (r *Renderer) Draw(args []rhi.DrawArguments) {
	r.record("Draw(%v)", args)
}

// DrawIndirect implements rhi.Renderer.
func (r *Renderer) DrawIndirect(buffer rhi.IndirectBufferRef, offset, numberOfDraws uint32) {
	r.record("DrawIndirect(%d, %d, %d)", buffer, offset, numberOfDraws)
}

// DrawIndexed implements rhi.Renderer.
func (r *Renderer) DrawIndexed(args []rhi.DrawIndexedArguments) {
	r.record("DrawIndexed(%v)", args)
}

// DrawIndexedIndirect implements rhi.Renderer.
func (r *Renderer) DrawIndexedIndirect(buffer rhi.IndirectBufferRef, offset, numberOfDraws uint32) {
	r.record("DrawIndexedIndirect(%d, %d, %d)", buffer, offset, numberOfDraws)
}

// SetDebugMarker implements rhi.Renderer.
func (r *Renderer) SetDebugMarker(name string) {
	r.record("SetDebugMarker(%q)", name)
}

// BeginDebugEvent implements rhi.Renderer.
func (r *Renderer) BeginDebugEvent(name string) {
	r.record("BeginDebugEvent(%q)", name)
	r.mu.Lock()
	r.depth++
	r.mu.Unlock()
}

// EndDebugEvent implements rhi.Renderer.
func (r *Renderer) EndDebugEvent() {
	r.mu.Lock()
	if r.depth > 0 {
		r.depth--
	}
	r.mu.Unlock()
	r.record("EndDebugEvent()")
}

// Depth returns the number of open debug events.
func (r *Renderer) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.depth
}

// Backend wraps a Renderer as a backend.Backend.
type Backend struct {
	opts     []Option
	renderer *Renderer
}

// NewBackend creates a trace backend. The options are applied to the
// renderer created by Init.
func NewBackend(opts ...Option) *Backend {
	return &Backend{opts: opts}
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.BackendTrace }

// Init creates the renderer. It never fails.
func (b *Backend) Init() error {
	b.renderer = NewRenderer(b.opts...)
	return nil
}

// Close drops the renderer.
func (b *Backend) Close() { b.renderer = nil }

// Renderer returns the trace renderer, or nil before Init.
func (b *Backend) Renderer() rhi.Renderer {
	if b.renderer == nil {
		return nil
	}
	return b.renderer
}

// Trace returns the concrete renderer, or nil before Init.
func (b *Backend) Trace() *Renderer { return b.renderer }
