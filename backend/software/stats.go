// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"

	"github.com/gogpu/rhi"
)

// Stats counts the work executed by a Renderer.
type Stats struct {
	Clears        int
	Draws         int
	IndexedDraws  int
	IndirectDraws int
	Vertices      uint64
	Indices       uint64
	Instances     uint64
	StateChanges  int
	Markers       int
}

// String returns a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("clears=%d draws=%d indexed=%d indirect=%d vertices=%d indices=%d instances=%d",
		s.Clears, s.Draws, s.IndexedDraws, s.IndirectDraws, s.Vertices, s.Indices, s.Instances)
}

func (s *Stats) addDraw(a rhi.DrawArguments) {
	s.Draws++
	s.Vertices += uint64(a.VertexCountPerInstance) * uint64(a.InstanceCount)
	s.Instances += uint64(a.InstanceCount)
}

func (s *Stats) addIndexedDraw(a rhi.DrawIndexedArguments) {
	s.IndexedDraws++
	s.Indices += uint64(a.IndexCountPerInstance) * uint64(a.InstanceCount)
	s.Instances += uint64(a.InstanceCount)
}
