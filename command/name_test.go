// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gogpu/rhi"
)

func TestMakeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"short", "shadow pass", "shadow pass"},
		{"exact fit", strings.Repeat("a", 63), strings.Repeat("a", 63)},
		{"one over", strings.Repeat("a", 64), strings.Repeat("a", 63)},
		{"long", strings.Repeat("b", 80), strings.Repeat("b", 63)},
		{"rune boundary", strings.Repeat("a", 62) + "é", strings.Repeat("a", 62)},
		{"normalized", "e\u0301clair", "\u00e9clair"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := MakeName(tt.in)
			got := n.String()
			if got != tt.want {
				t.Errorf("MakeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("MakeName(%q) produced invalid UTF-8", tt.in)
			}
			if n[MaxNameLength-1] != 0 {
				t.Error("name is not zero terminated")
			}
		})
	}
}

func TestMakeName_CachesNormalized(t *testing.T) {
	const label = "passé d’ombre"
	before := names.Stats().Hits
	first := MakeName(label)
	second := MakeName(label)
	if first != second {
		t.Errorf("MakeName(%q) differs between calls", label)
	}
	if hits := names.Stats().Hits - before; hits < 1 {
		t.Errorf("cache hits = %d, want at least 1", hits)
	}

	ascii := names.Len()
	MakeName("plain ascii label")
	if names.Len() != ascii {
		t.Error("ASCII names should not be cached")
	}
}

func TestSetDebugMarker_Truncates(t *testing.T) {
	b := NewBuffer()
	long := strings.Repeat("x", 80)
	SetDebugMarker(b, long)
	BeginDebugEvent(b, long)

	r := &mockRenderer{}
	b.Submit(r)
	want := "\"" + strings.Repeat("x", 63) + "\")"
	equalCalls(t, r.calls, []string{"SetDebugMarker(" + want, "BeginDebugEvent(" + want})
}

func TestSetViewportAndScissorRectangle(t *testing.T) {
	b := NewBuffer()
	SetViewportAndScissorRectangle(b, 10, 20, 100, 50, 0, 1)

	var viewports []rhi.Viewport
	var rects []rhi.ScissorRectangle
	for p := range b.Packets() {
		if c, ok := Payload[SetViewportsCommand](p); ok {
			viewports = append(viewports, c.Viewports()...)
		}
		if c, ok := Payload[SetScissorRectanglesCommand](p); ok {
			rects = append(rects, c.ScissorRectangles()...)
		}
	}

	wantVP := rhi.Viewport{TopLeftX: 10, TopLeftY: 20, Width: 100, Height: 50, MinDepth: 0, MaxDepth: 1}
	if len(viewports) != 1 || viewports[0] != wantVP {
		t.Errorf("viewports = %+v, want [%+v]", viewports, wantVP)
	}
	wantRect := rhi.ScissorRectangle{TopLeftX: 10, TopLeftY: 20, BottomRightX: 110, BottomRightY: 70}
	if len(rects) != 1 || rects[0] != wantRect {
		t.Errorf("rects = %+v, want [%+v]", rects, wantRect)
	}
}
