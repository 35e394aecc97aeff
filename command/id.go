// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import "strconv"

// ID identifies a command type. It is stored in every packet header and
// selects the handler that interprets the packet's payload.
type ID uint32

const (
	// InvalidID is never stored in a packet.
	InvalidID ID = iota

	CmdSetGraphicsRootSignature       // Set root signature (pipeline layout)
	CmdSetGraphicsRootDescriptorTable // Bind resource group to root parameter
	CmdSetPipelineState               // Set pipeline state object
	CmdSetVertexArray                 // Bind vertex array
	CmdSetPrimitiveTopology           // Set input assembler topology
	CmdSetViewports                   // Set viewports (array in auxiliary memory)
	CmdSetScissorRectangles           // Set scissor rectangles (array in auxiliary memory)
	CmdSetRenderTarget                // Set render target
	CmdClear                          // Clear render target planes
	CmdDraw                           // Non-indexed draw (indirect or inline)
	CmdDrawIndexed                    // Indexed draw (indirect or inline)
	CmdSetDebugMarker                 // Insert debug marker
	CmdBeginDebugEvent                // Open debug region
	CmdEndDebugEvent                  // Close debug region
)

const (
	// FirstUserID is the first ID available to command types defined
	// outside this package.
	FirstUserID ID = 64

	// MaxID bounds all command IDs; valid IDs are below it.
	MaxID = 256
)

// idNames maps built-in IDs to their string representation.
var idNames = [...]string{
	InvalidID:                         "Invalid",
	CmdSetGraphicsRootSignature:       "SetGraphicsRootSignature",
	CmdSetGraphicsRootDescriptorTable: "SetGraphicsRootDescriptorTable",
	CmdSetPipelineState:               "SetPipelineState",
	CmdSetVertexArray:                 "SetVertexArray",
	CmdSetPrimitiveTopology:           "SetPrimitiveTopology",
	CmdSetViewports:                   "SetViewports",
	CmdSetScissorRectangles:           "SetScissorRectangles",
	CmdSetRenderTarget:                "SetRenderTarget",
	CmdClear:                          "Clear",
	CmdDraw:                           "Draw",
	CmdDrawIndexed:                    "DrawIndexed",
	CmdSetDebugMarker:                 "SetDebugMarker",
	CmdBeginDebugEvent:                "BeginDebugEvent",
	CmdEndDebugEvent:                  "EndDebugEvent",
}

// String returns the string representation of an ID.
func (id ID) String() string {
	switch {
	case int(id) < len(idNames):
		return idNames[id]
	case id >= FirstUserID && id < MaxID:
		return "User(" + strconv.Itoa(int(id)) + ")"
	default:
		return "Unknown"
	}
}

// valid reports whether id may be stored in a packet.
func (id ID) valid() bool {
	return id != InvalidID && id < MaxID
}

// Command is implemented by every command type.
//
// CommandID must be declared on the value receiver and return a constant,
// so that the ID can be obtained from the zero value of the type.
type Command interface {
	CommandID() ID
}
