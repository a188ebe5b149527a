/*
   S2200 absolute and virtual addresses.

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
package bank

import "fmt"

// Location in storage: MSP UPI, segment and word offset.
type AbsoluteAddress struct {
	UPI     uint64
	Segment uint64
	Offset  uint64
}

const (
	segmentMask uint64 = 0x1ffffff
	offsetMask  uint64 = 0xffffffff
)

func NewAbsoluteAddress(upi, segment, offset uint64) AbsoluteAddress {
	return AbsoluteAddress{UPI: upi & 017, Segment: segment & segmentMask, Offset: offset & offsetMask}
}

// Build absolute address from two packed words.
//
//	word 0  segment
//	word 1  bits 0-3 UPI, bits 4-35 offset
func AbsoluteAddressFromWords(w0, w1 uint64) AbsoluteAddress {
	return AbsoluteAddress{
		UPI:     (w1 >> 32) & 017,
		Segment: w0 & segmentMask,
		Offset:  w1 & offsetMask,
	}
}

func (a AbsoluteAddress) Words() (uint64, uint64) {
	return a.Segment & segmentMask, ((a.UPI & 017) << 32) | (a.Offset & offsetMask)
}

func (a AbsoluteAddress) AddOffset(n uint64) AbsoluteAddress {
	return AbsoluteAddress{UPI: a.UPI, Segment: a.Segment, Offset: (a.Offset + n) & offsetMask}
}

func (a AbsoluteAddress) String() string {
	return fmt.Sprintf("%o:%o:%o", a.UPI, a.Segment, a.Offset)
}

// Extended mode virtual address: L in bits 0-2, BDI in bits 3-17, H2 offset.
type VirtualAddress uint64

func NewVirtualAddress(level, bdi, offset uint64) VirtualAddress {
	return VirtualAddress(((level & 07) << 33) | ((bdi & 077777) << 18) | (offset & 0_777777))
}

func (va VirtualAddress) Level() uint64  { return (uint64(va) >> 33) & 07 }
func (va VirtualAddress) BDI() uint64    { return (uint64(va) >> 18) & 077777 }
func (va VirtualAddress) LBDI() uint64   { return (uint64(va) >> 18) & 0_777777 }
func (va VirtualAddress) Offset() uint64 { return uint64(va) & 0_777777 }

// Basic mode virtual address bits.
const (
	basicExec      uint64 = 0_400000_000000
	basicLevelSpec uint64 = 0_040000_000000
)

// Convert basic mode E and LS flags to an extended mode level.
func BasicToExtendedLevel(exec, levelSpec bool) uint64 {
	switch {
	case exec && levelSpec:
		return 0
	case exec:
		return 2
	case levelSpec:
		return 6
	default:
		return 4
	}
}

// Convert basic mode address word to extended mode virtual address.
func FromBasicMode(w uint64) VirtualAddress {
	level := BasicToExtendedLevel((w&basicExec) != 0, (w&basicLevelSpec) != 0)
	return NewVirtualAddress(level, (w>>18)&07777, w)
}

// Translate L,BDI,offset into basic mode form. Banks not representable
// in basic mode translate to level 0 BDI 0.
func TranslateToBasicMode(level, bdi, offset uint64) uint64 {
	if bdi <= 07777 {
		result := (bdi << 18) | (offset & 0_777777)
		switch level {
		case 0:
			return result | basicExec | basicLevelSpec
		case 2:
			return result | basicExec
		case 4:
			return result
		case 6:
			return result | basicLevelSpec
		}
	}
	return basicExec | basicLevelSpec | (offset & 0_777777)
}
