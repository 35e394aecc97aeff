// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"time"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/command"
)

// pollInterval is the sleep between completion polls while waiting for a
// submission.
const pollInterval = 100 * time.Microsecond

// BeginFrame starts recording GPU work. Render state is reset to defaults.
func (r *Renderer) BeginFrame() error {
	if r.frame != nil {
		return ErrFrameActive
	}
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: r.label,
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(r.label); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	r.frame = encoder
	r.encoder = encoder
	r.err = nil
	r.state.reset()
	return nil
}

// EndFrame finishes the frame, submits it, and waits for the GPU.
// If a command failed during the frame, the work is discarded and the
// first error is returned.
func (r *Renderer) EndFrame() error {
	if r.frame == nil {
		return ErrNoFrame
	}
	r.flushClear()
	r.endPass()

	encoder := r.frame
	r.frame = nil
	r.encoder = nil
	if r.err != nil {
		encoder.DiscardEncoding()
		return r.err
	}
	r.stats.Frames++
	return r.submit(encoder)
}

// AbortFrame discards the work recorded since BeginFrame.
func (r *Renderer) AbortFrame() {
	if r.frame == nil {
		return
	}
	r.endPass()
	r.frame.DiscardEncoding()
	r.frame = nil
	r.encoder = nil
}

// Execute submits b as a single frame.
func (r *Renderer) Execute(b *command.Buffer) error {
	if err := r.BeginFrame(); err != nil {
		return err
	}
	b.Submit(r)
	return r.EndFrame()
}

// submit ends encoding, submits the work, and blocks until it completes.
func (r *Renderer) submit(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	index, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		r.device.FreeCommandBuffer(cmdBuf)
		return fmt.Errorf("submit: %w", err)
	}
	if err := r.wait(index); err != nil {
		// The GPU may still read cmdBuf; it is reclaimed with the device.
		return err
	}
	r.device.FreeCommandBuffer(cmdBuf)
	rhi.Logger().Debug("wgpu: frame submitted", "label", r.label, "submission", index)
	return nil
}

// wait polls the queue until submission index has completed or the submit
// timeout elapses.
func (r *Renderer) wait(index uint64) error {
	deadline := time.Now().Add(r.timeout)
	for r.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: submission %d after %v", ErrTimeout, index, r.timeout)
		}
		time.Sleep(pollInterval)
	}
	return nil
}
