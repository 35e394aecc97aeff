// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import "time"

type options struct {
	label   string
	timeout time.Duration
}

func defaultOptions() options {
	return options{
		label:   "rhi_frame",
		timeout: DefaultSubmitTimeout,
	}
}

// Option configures a Renderer.
type Option func(*options)

// WithLabel sets the debug label of command encoders and render passes.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithSubmitTimeout sets how long EndFrame and Snapshot wait for the GPU.
// Non-positive values are ignored.
func WithSubmitTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}
