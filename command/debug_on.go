// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build rhidebug

package command

// checkPackets enables per-packet payload size checks during Submit.
const checkPackets = true
