// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build nogpu

package wgpu

import (
	"errors"

	"github.com/gogpu/wgpu/hal"
)

type gpuDevice struct {
	device hal.Device
	queue  hal.Queue
}

func (d *gpuDevice) destroy() {}

func openDevice() (*gpuDevice, error) {
	return nil, errors.New("built with nogpu")
}
