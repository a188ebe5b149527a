/*
   S2200 general register set and index registers.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/
package register

import (
	"github.com/rcornwell/S2200/emu/word"
)

// General register set indices.
const (
	X0  = 0   // User index registers X0-X15.
	A0  = 12  // User accumulators A0-A15, overlap X12-X15.
	R0  = 64  // User R registers R0-R15.
	ER0 = 80  // Executive R registers.
	EX0 = 96  // Executive index registers.
	EA0 = 108 // Executive accumulators.

	X11 = X0 + 11
	EX1 = EX0 + 1
	R1  = R0 + 1
	ER1 = ER0 + 1

	GRSSize = 128
)

// General register set.
type GRS [GRSSize]uint64

// Return true if the GRS location may be accessed at the given privilege.
func GRSAccessAllowed(index uint64, pp uint64, write bool) bool {
	switch {
	case index < 040:
		return true
	case index < 0100:
		return false
	case index < 0120:
		return true
	case write:
		return pp == 0
	default:
		return pp <= 2
	}
}

// Index of X register, exec or user set.
func XIndex(n uint64, exec bool) uint64 {
	if exec {
		return EX0 + (n & 017)
	}
	return X0 + (n & 017)
}

// Index of A register, exec or user set.
func AIndex(n uint64, exec bool) uint64 {
	if exec {
		return EA0 + (n & 017)
	}
	return A0 + (n & 017)
}

// Index of R register, exec or user set.
func RIndex(n uint64, exec bool) uint64 {
	if exec {
		return ER0 + (n & 017)
	}
	return R0 + (n & 017)
}

// Index register fields.
func XI(x uint64) uint64   { return word.H1(x) }
func XM(x uint64) uint64   { return word.H2(x) }
func XI12(x uint64) uint64 { return word.T1(x) }
func XM24(x uint64) uint64 { return x & 0_77777777 }

func SetXI(x, v uint64) uint64 { return word.SetH1(x, v) }
func SetXM(x, v uint64) uint64 { return word.SetH2(x, v) }

// Apply increment to modifier, 18 bit mode.
func IncrementModifier18(x uint64) uint64 {
	return SetXM(x, word.Add18(XM(x), XI(x)))
}

// Apply decrement to modifier, 18 bit mode.
func DecrementModifier18(x uint64) uint64 {
	return SetXM(x, word.Add18(XM(x), ^XI(x)&word.HalfMask))
}

// Apply increment to modifier, 24 bit mode.
func IncrementModifier24(x uint64) uint64 {
	m := word.Add24(XM24(x), word.ExtendThird(XI12(x)))
	return (x &^ 0_77777777) | m
}
