// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"path/filepath"
	"testing"

	"github.com/gogpu/rhi/backend"
	"github.com/gogpu/rhi/backend/software"
	"github.com/gogpu/rhi/command"
)

func TestRecordFrameSoftware(t *testing.T) {
	const w, h = 64, 48
	b := software.NewBackend()
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer b.Close()

	target, err := b.NewRenderTarget(w, h)
	if err != nil {
		t.Fatalf("NewRenderTarget() error = %v", err)
	}
	buf := command.NewBuffer()
	recordFrame(buf, target, w, h)
	if err := backend.Execute(b, buf); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	img, err := b.Snapshot(target)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	tile := img.At(1, 1)
	background := img.At(w/8+1, 1)
	if tile == background {
		t.Errorf("tile pixel %v equals background pixel", tile)
	}
	if got := b.Software().EventDepth(); got != 0 {
		t.Errorf("EventDepth() = %d, want 0", got)
	}

	out := filepath.Join(t.TempDir(), "frame.png")
	if err := savePNG(out, img); err != nil {
		t.Fatalf("savePNG() error = %v", err)
	}
}
