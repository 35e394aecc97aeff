// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import (
	"context"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/gogpu/rhi"
)

// maxBufferSize keeps every offset below NoPacket.
const maxBufferSize = uint64(NoPacket) &^ (packetAlign - 1)

// store is the growable packet memory behind a Buffer.
//
// Memory is held as []uint64 so the block is always 8-byte aligned. It only
// grows while recording, in whole multiples of the growth increment, and a
// reallocation copies every recorded byte to the same offset.
type store struct {
	mem       []uint64
	write     int    // first free byte
	previous  Offset // last placed packet, NoPacket when empty
	count     int    // number of packets
	increment int
	grows     int
}

func (s *store) init(increment, initialCapacity int) {
	s.increment = alignPacket(max(increment, packetAlign))
	s.previous = NoPacket
	if initialCapacity > 0 {
		s.mem = make([]uint64, alignPacket(initialCapacity)/8)
	}
}

func (s *store) capacity() int { return len(s.mem) * 8 }

func (s *store) base() unsafe.Pointer { return unsafe.Pointer(unsafe.SliceData(s.mem)) }

func (s *store) header(off Offset) *header {
	return (*header)(unsafe.Add(s.base(), int(off)))
}

func (s *store) payload(off Offset) unsafe.Pointer {
	return unsafe.Add(s.base(), int(off)+HeaderSize)
}

// bytes returns the used part of the block.
func (s *store) bytes() []byte {
	if s.write == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(s.base()), s.write)
}

// reserve makes room for needed more bytes. A request larger than one
// increment grows by as many increments as it takes, in one reallocation.
func (s *store) reserve(needed int) {
	capacity := s.capacity()
	if s.write+needed <= capacity {
		return
	}
	steps := (s.write + needed - capacity + s.increment - 1) / s.increment
	newCapacity := capacity + steps*s.increment
	if uint64(newCapacity) > maxBufferSize {
		panic(fmt.Errorf("%w: %d bytes requested", ErrBufferOverflow, newCapacity))
	}

	mem := make([]uint64, newCapacity/8)
	copy(mem, s.mem[:s.write/8])
	s.mem = mem
	s.grows++

	if l := rhi.Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("command: buffer grown", "from", capacity, "to", newCapacity, "used", s.write)
	}
}

// place appends a zeroed packet and links it to the chain.
func (s *store) place(id ID, payloadSize, auxBytes int) (Offset, unsafe.Pointer) {
	if !id.valid() {
		panic(fmt.Errorf("%w: %d", ErrInvalidCommandID, uint32(id)))
	}
	if auxBytes < 0 || uint64(auxBytes) > maxBufferSize {
		panic(fmt.Errorf("%w: %d", ErrInvalidAuxiliarySize, auxBytes))
	}
	if s.increment == 0 {
		s.init(DefaultGrowthIncrement, 0)
	}

	needed := placedSize(payloadSize, auxBytes)
	s.reserve(needed)

	off := Offset(s.write) // #nosec G115 -- bounded by maxBufferSize
	clear(unsafe.Slice((*byte)(unsafe.Add(s.base(), s.write)), needed))

	h := s.header(off)
	h.next = NoPacket
	h.id = id
	h.size = uint32(payloadSize) // #nosec G115 -- bounded by maxBufferSize
	h.aux = uint32(auxBytes)     // #nosec G115 -- bounded by maxBufferSize

	if s.previous != NoPacket {
		s.header(s.previous).next = off
	}
	s.previous = off
	s.write += needed
	s.count++

	return off, s.payload(off)
}

// reset forgets all packets but keeps the memory.
func (s *store) reset() {
	s.write = 0
	s.count = 0
	s.previous = NoPacket
}
