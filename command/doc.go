// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package command records graphics commands into a flat, type-erased packet
// stream and replays them against a backend.
//
// # Packet Layout
//
// A [Buffer] owns one contiguous, 8-byte aligned block of memory. Every
// recorded command occupies one packet inside it:
//
//	+--------+--------+--------+--------+--------------+----------------+
//	| next   | id     | size   | aux    | payload (T)  | auxiliary      |
//	| uint32 | uint32 | uint32 | uint32 | size bytes   | aux bytes      |
//	+--------+--------+--------+--------+--------------+----------------+
//
// next is the [Offset] of the following packet ([NoPacket] for the tail),
// id is the [ID] that selects the dispatch routine, and the payload is the
// command struct itself. Packets link by offset rather than by pointer, so
// the block can be reallocated while recording without invalidating links.
//
// # Recording
//
// [Add] places a zeroed command of type T and returns a pointer to it for
// in-place initialization. Factories such as [SetPipelineState], [Clear] and
// [Draw] wrap Add for the built-in descriptors:
//
//	buf := command.NewBuffer()
//	command.Clear(buf, rhi.ClearColor, [4]float32{0, 0, 0, 1}, 1, 0)
//	command.Draw(buf, 3, 1, 0, 0)
//
// Pointers returned by Add and the factories are valid only until the next
// command is added to the same buffer, since growth may move the block.
//
// # Dispatch
//
// A [Table] maps each ID to a typed handler and is built once per backend
// with [Bind]. [Table.Submit] walks the packet chain in recording order and
// calls the handler bound to every packet. [RendererTable] is the standard
// table that forwards each built-in command to the matching [rhi.Renderer]
// method; [Buffer.Submit] uses it.
//
// Command types must be pointer-free: resources are referenced through the
// integer refs of package rhi. Bind rejects types that contain pointers.
//
// # Thread Safety
//
// A Buffer is not safe for concurrent use: record on one goroutine, then
// submit. Submission does not modify the buffer, so a finished buffer may
// be submitted many times. To record on several goroutines, give each its
// own Buffer and hand finished buffers to a [Queue], which submits them in
// enqueue order.
package command
