// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import (
	"fmt"
	"unsafe"
)

// Offset is the byte offset of a packet inside a Buffer's memory block.
type Offset uint32

// NoPacket terminates the packet chain.
const NoPacket = ^Offset(0)

// header is stored at the start of every packet.
type header struct {
	next Offset // next packet in the chain, NoPacket for the tail
	id   ID     // dispatch token
	size uint32 // payload size in bytes
	aux  uint32 // auxiliary size in bytes
}

const (
	// HeaderSize is the size of the header in front of every payload.
	HeaderSize = int(unsafe.Sizeof(header{}))

	// packetAlign keeps every header and payload 8-byte aligned.
	packetAlign = 8
)

// PacketSize returns the unpadded size of a packet holding a payload of
// payloadSize bytes followed by auxBytes of auxiliary memory.
func PacketSize(payloadSize, auxBytes int) int {
	return HeaderSize + payloadSize + auxBytes
}

// SizeOf returns the packet size of command type T with auxBytes of
// auxiliary memory.
func SizeOf[T Command](auxBytes int) int {
	var zero T
	return PacketSize(int(unsafe.Sizeof(zero)), auxBytes)
}

// alignPacket rounds n up to the packet alignment.
func alignPacket(n int) int {
	return (n + packetAlign - 1) &^ (packetAlign - 1)
}

// placedSize returns the number of bytes a packet occupies in the store.
// Packets without payload and auxiliary bytes get one extra alignment unit
// so that their payload address still lies inside the block.
func placedSize(payloadSize, auxBytes int) int {
	n := alignPacket(PacketSize(payloadSize, auxBytes))
	if payloadSize+auxBytes == 0 {
		n += packetAlign
	}
	return n
}

// Packet is a read-only view of one recorded packet.
// It stays valid while the buffer is not cleared.
type Packet struct {
	s   *store
	off Offset
}

func (p Packet) header() *header { return p.s.header(p.off) }

// Offset returns the packet's offset inside the buffer.
func (p Packet) Offset() Offset { return p.off }

// Next returns the offset of the following packet, or NoPacket.
func (p Packet) Next() Offset { return p.header().next }

// ID returns the command type stored in the packet.
func (p Packet) ID() ID { return p.header().id }

// PayloadSize returns the size of the command payload in bytes.
func (p Packet) PayloadSize() int { return int(p.header().size) }

// AuxiliarySize returns the number of auxiliary bytes after the payload.
func (p Packet) AuxiliarySize() int { return int(p.header().aux) }

// Size returns the unpadded packet size.
func (p Packet) Size() int { return PacketSize(p.PayloadSize(), p.AuxiliarySize()) }

// Auxiliary returns the packet's auxiliary memory, or nil if it has none.
// The slice aliases the buffer.
func (p Packet) Auxiliary() []byte {
	h := p.header()
	if h.aux == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Add(p.s.payload(p.off), h.size)), h.aux)
}

// Payload returns the packet's command as a *T.
// The second result is false if the packet does not hold a T.
func Payload[T Command](p Packet) (*T, bool) {
	var zero T
	h := p.header()
	if h.id != zero.CommandID() || uintptr(h.size) != unsafe.Sizeof(zero) {
		return nil, false
	}
	return (*T)(p.s.payload(p.off)), true
}

// Auxiliary returns n bytes of auxiliary memory recorded directly after
// cmd, which must have been returned by Add with at least n auxiliary bytes.
// The memory starts exactly at the address of cmd plus the size of T.
func Auxiliary[T any](cmd *T, n int) []byte {
	if n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Add(unsafe.Pointer(cmd), unsafe.Sizeof(*cmd))), n)
}

// trailing views the auxiliary memory after cmd as count elements of E.
// cmd must have been placed by Add. E must not require more than 4-byte
// alignment. trailing panics with ErrInvalidAuxiliarySize when count
// elements do not fit in the packet's auxiliary memory.
func trailing[E, T any](cmd *T, count uint32) []E {
	if count == 0 {
		return nil
	}
	var zero E
	h := (*header)(unsafe.Add(unsafe.Pointer(cmd), -HeaderSize))
	if need := uint64(count) * uint64(unsafe.Sizeof(zero)); need > uint64(h.aux) {
		panic(fmt.Errorf("%w: %d elements need %d bytes, packet has %d", ErrInvalidAuxiliarySize, count, need, h.aux))
	}
	return unsafe.Slice((*E)(unsafe.Add(unsafe.Pointer(cmd), unsafe.Sizeof(*cmd))), count)
}

// auxSize returns the auxiliary bytes needed for n elements of E.
func auxSize[E any](n int) int {
	var zero E
	return n * int(unsafe.Sizeof(zero))
}
