// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

// DefaultGrowthIncrement is the number of bytes a Buffer grows by when it
// runs out of memory.
const DefaultGrowthIncrement = 8192

// options configures a Buffer.
type options struct {
	increment       int
	initialCapacity int
}

func defaultOptions() options {
	return options{
		increment: DefaultGrowthIncrement,
	}
}

// Option configures a Buffer.
type Option func(*options)

// WithGrowthIncrement sets the growth increment in bytes. It is rounded up
// to a multiple of 8. Values below 1 keep the default.
func WithGrowthIncrement(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.increment = n
		}
	}
}

// WithInitialCapacity sets the number of bytes allocated up front.
// Without it a new Buffer allocates one growth increment.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.initialCapacity = n
		}
	}
}
