/*
   S2200 instruction word fields.

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
package word

// Instruction word.
//
//	f  bits 0-5    function code
//	j  bits 6-9    partial word or minor function
//	a  bits 10-13  register or minor function
//	x  bits 14-17  index register
//	h  bit  18     index increment
//	i  bit  19     indirect or base register extension
//	u  bits 20-35  displacement, b bits 20-23 and d bits 24-35 in extended mode
type Instruction uint64

const (
	MaskF    uint64 = 0_770000_000000
	MaskJ    uint64 = 0_007400_000000
	MaskA    uint64 = 0_000360_000000
	MaskX    uint64 = 0_000017_000000
	MaskH    uint64 = 0_000000_400000
	MaskI    uint64 = 0_000000_200000
	MaskU    uint64 = 0_000000_177777
	MaskHIU  uint64 = 0_000000_777777
	MaskXHIU uint64 = 0_000017_777777
	MaskB    uint64 = 0_000000_170000
	MaskD    uint64 = 0_000000_007777
)

// Build an instruction from fields.
func NewInstruction(f, j, a, x, h, i, u uint64) Instruction {
	w := (f & 077) << 30
	w |= (j & 017) << 26
	w |= (a & 017) << 22
	w |= (x & 017) << 18
	w |= (h & 1) << 17
	w |= (i & 1) << 16
	w |= u & MaskU
	return Instruction(w)
}

// Build an extended mode instruction with b and d fields.
func NewExtended(f, j, a, x, h, i, b, d uint64) Instruction {
	return NewInstruction(f, j, a, x, h, i, ((b&017)<<12)|(d&07777))
}

func (iw Instruction) F() uint64   { return (uint64(iw) >> 30) & 077 }
func (iw Instruction) J() uint64   { return (uint64(iw) >> 26) & 017 }
func (iw Instruction) A() uint64   { return (uint64(iw) >> 22) & 017 }
func (iw Instruction) X() uint64   { return (uint64(iw) >> 18) & 017 }
func (iw Instruction) H() uint64   { return (uint64(iw) >> 17) & 1 }
func (iw Instruction) I() uint64   { return (uint64(iw) >> 16) & 1 }
func (iw Instruction) U() uint64   { return uint64(iw) & MaskU }
func (iw Instruction) HIU() uint64 { return uint64(iw) & MaskHIU }
func (iw Instruction) B() uint64   { return (uint64(iw) >> 12) & 017 }
func (iw Instruction) D() uint64   { return uint64(iw) & MaskD }

// Base register with i-field extension, B0..B31.
func (iw Instruction) IB() uint64 { return (iw.I() << 4) | iw.B() }

// Replace x, h, i and u fields, used by basic mode indirect addressing.
func (iw Instruction) SetXHIU(v uint64) Instruction {
	return Instruction((uint64(iw) &^ MaskXHIU) | (v & MaskXHIU))
}

func (iw Instruction) Word() uint64 { return uint64(iw) & Mask }
