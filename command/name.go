// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/rhi/internal/cache"
)

// MaxNameLength is the size of a marker name including its terminating zero.
const MaxNameLength = 64

// Name is a fixed-size, zero-terminated marker name.
type Name [MaxNameLength]byte

// names holds the normalized form of non-ASCII marker names, which are
// usually recorded with the same labels every frame.
var names = cache.New[Name](0)

// MakeName converts s to a Name. The string is normalized to NFC and cut at
// a rune boundary so that at most MaxNameLength-1 bytes are kept.
// It is safe for concurrent use.
func MakeName(s string) Name {
	if isASCII(s) {
		return truncateName(s)
	}
	return names.GetOrCreate(s, func() Name {
		return truncateName(norm.NFC.String(s))
	})
}

func isASCII(s string) bool {
	for i := range len(s) {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func truncateName(s string) Name {
	var n Name
	if len(s) >= MaxNameLength {
		end := MaxNameLength - 1
		for end > 0 && !utf8.RuneStart(s[end]) {
			end--
		}
		s = s[:end]
	}
	copy(n[:], s)
	return n
}

// String returns the name up to the first zero byte.
func (n *Name) String() string {
	for i, c := range n {
		if c == 0 {
			return string(n[:i])
		}
	}
	return string(n[:])
}
