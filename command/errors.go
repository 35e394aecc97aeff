// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import "errors"

// Errors used as panic values for violated recording and dispatch preconditions.
var (
	// ErrUnboundCommand is raised when a submitted packet has no handler in the table.
	ErrUnboundCommand = errors.New("command: no handler bound for command")

	// ErrInvalidAuxiliarySize is raised when Add is called with a negative
	// or oversized auxiliary byte count.
	ErrInvalidAuxiliarySize = errors.New("command: invalid auxiliary size")

	// ErrBufferOverflow is raised when a buffer would exceed the offset range.
	ErrBufferOverflow = errors.New("command: buffer exceeds maximum size")

	// ErrInvalidCommandID is raised for commands whose ID is InvalidID or not below MaxID.
	ErrInvalidCommandID = errors.New("command: invalid command id")

	// ErrPointerPayload is raised when binding a command type that contains pointers.
	ErrPointerPayload = errors.New("command: command type must not contain pointers")

	// ErrPayloadMismatch is raised by checked builds when a packet's payload
	// size differs from the size of the type bound to its ID.
	ErrPayloadMismatch = errors.New("command: payload does not match bound type")

	// ErrTableFrozen is raised when binding into a shared, read-only table.
	ErrTableFrozen = errors.New("command: table is read-only, Clone it first")

	// ErrNilHandler is raised when binding a nil handler.
	ErrNilHandler = errors.New("command: nil handler")
)
