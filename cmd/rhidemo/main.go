// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command rhidemo records a frame into a command buffer and submits it to
// an execution backend.
//
// With a backend that supports render targets the result is written as a
// PNG file. The trace backend prints every replayed call instead.
//
//	rhidemo -backend software -output demo.png
//	rhidemo -backend trace -v
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
	"github.com/gogpu/rhi/command"

	_ "github.com/gogpu/rhi/backend/software"
	_ "github.com/gogpu/rhi/backend/trace"
	_ "github.com/gogpu/rhi/backend/wgpu"
)

func main() {
	var (
		name    = flag.String("backend", "", "execution backend (default: best available)")
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "demo.png", "output file")
		verbose = flag.Bool("v", false, "log backend activity")
	)
	flag.Parse()

	if *verbose {
		rhi.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	log.Printf("Available backends: %v", backend.Available())

	b, err := backend.Open(*name)
	if err != nil {
		log.Fatalf("Failed to open backend: %v", err)
	}
	defer b.Close()

	tp, readable := b.(backend.TargetProvider)
	target := rhi.RenderTargetRef(0)
	if readable {
		target, err = tp.NewRenderTarget(*width, *height)
		if err != nil {
			log.Fatalf("Failed to create render target: %v", err)
		}
	}

	buf := command.GetBuffer()
	defer command.PutBuffer(buf)
	recordFrame(buf, target, *width, *height)
	log.Printf("Recorded %d commands (%d bytes)", buf.Len(), buf.Size())

	if err := backend.Execute(b, buf); err != nil {
		log.Fatalf("Failed to execute: %v", err)
	}

	if !readable {
		log.Printf("Backend %q has no readable render targets, nothing saved", b.Name())
		return
	}
	img, err := tp.Snapshot(target)
	if err != nil {
		log.Fatalf("Failed to read back: %v", err)
	}
	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d) using %s", *output, *width, *height, b.Name())
}

// recordFrame clears the target to a dark background and paints a grid of
// scissored tiles over it.
func recordFrame(buf *command.Buffer, target rhi.RenderTargetRef, w, h int) {
	const tiles = 8

	command.BeginDebugEvent(buf, "frame")
	command.SetRenderTarget(buf, target)
	// #nosec G115 -- demo sizes come from flags and are small
	command.SetViewportAndScissorRectangle(buf, 0, 0, uint32(w), uint32(h), 0, 1)
	command.Clear(buf, rhi.ClearColor|rhi.ClearDepth|rhi.ClearStencil, [4]float32{0.1, 0.2, 0.4, 1}, 1, 0)

	command.BeginDebugEvent(buf, "tiles")
	tw, th := w/tiles, h/tiles
	for y := range tiles {
		for x := range tiles {
			if (x+y)%2 != 0 {
				continue
			}
			t := float32(x+y) / (2 * tiles)
			// #nosec G115 -- tile coordinates are bounded by the image size
			command.SetScissorRectangles(buf, rhi.ScissorRectangle{
				TopLeftX:     int32(x * tw),
				TopLeftY:     int32(y * th),
				BottomRightX: int32((x + 1) * tw),
				BottomRightY: int32((y + 1) * th),
			})
			command.Clear(buf, rhi.ClearColor, [4]float32{0.1 + t*0.8, 0.5, 0.9 - t*0.6, 1}, 0, 0)
		}
	}
	command.EndDebugEvent(buf)
	command.SetDebugMarker(buf, "tiles done")
	command.EndDebugEvent(buf)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // output path is chosen by the user
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
