/*
   S2200 36 bit word primitives.

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

const (
	Mask     uint64 = 0_777777_777777 // 36 bit word.
	SignBit  uint64 = 0_400000_000000 // Sign of full word.
	HalfMask uint64 = 0_777777        // 18 bit half word.
	HalfSign uint64 = 0_400000        // Sign of half word.
	ThirdMsk uint64 = 0_7777          // 12 bit third word.
	ThirdSgn uint64 = 0_4000          // Sign of third word.
	SixthMsk uint64 = 0_77            // 6 bit sixth word.
	QuartMsk uint64 = 0_777           // 9 bit quarter word.
	NegZero  uint64 = Mask            // Ones complement negative zero.
)

// Partial word designators (j-field).
const (
	JW   = 000 // Whole word.
	JH2  = 001 // Half word 2.
	JH1  = 002 // Half word 1.
	JXH2 = 003 // Sign extended half 2.
	JXH1 = 004 // Sign extended half 1, Q2 in quarter word mode.
	JT3  = 005 // Third word 3, Q4 in quarter word mode.
	JT2  = 006 // Third word 2, Q3 in quarter word mode.
	JT1  = 007 // Third word 1, Q1 in quarter word mode.
	JS6  = 010
	JS5  = 011
	JS4  = 012
	JS3  = 013
	JS2  = 014
	JS1  = 015
	JU   = 016 // Immediate U.
	JXU  = 017 // Sign extended immediate U.
)

// Half words.
func H1(w uint64) uint64 { return (w >> 18) & HalfMask }
func H2(w uint64) uint64 { return w & HalfMask }

// Third words.
func T1(w uint64) uint64 { return (w >> 24) & ThirdMsk }
func T2(w uint64) uint64 { return (w >> 12) & ThirdMsk }
func T3(w uint64) uint64 { return w & ThirdMsk }

// Quarter words.
func Q1(w uint64) uint64 { return (w >> 27) & QuartMsk }
func Q2(w uint64) uint64 { return (w >> 18) & QuartMsk }
func Q3(w uint64) uint64 { return (w >> 9) & QuartMsk }
func Q4(w uint64) uint64 { return w & QuartMsk }

// Sixth words, S1 is leftmost.
func S(w uint64, n int) uint64 {
	return (w >> (6 * (6 - n))) & SixthMsk
}

func SetH1(w, v uint64) uint64 { return (w & HalfMask) | ((v & HalfMask) << 18) }
func SetH2(w, v uint64) uint64 { return (w &^ HalfMask) | (v & HalfMask) }

// Set sixth word n (1..6).
func SetS(w uint64, n int, v uint64) uint64 {
	shift := 6 * (6 - n)
	return (w &^ (SixthMsk << shift)) | ((v & SixthMsk) << shift)
}

// Sign extend a half word to a full word.
func ExtendHalf(v uint64) uint64 {
	v &= HalfMask
	if (v & HalfSign) != 0 {
		return v | (Mask &^ HalfMask)
	}
	return v
}

// Sign extend a third word to a full word.
func ExtendThird(v uint64) uint64 {
	v &= ThirdMsk
	if (v & ThirdSgn) != 0 {
		return v | (Mask &^ ThirdMsk)
	}
	return v
}

// Return true if word is negative.
func IsNegative(w uint64) bool {
	return (w & SignBit) != 0
}

// Return true if word is positive or negative zero.
func IsZero(w uint64) bool {
	w &= Mask
	return w == 0 || w == NegZero
}

// Ones complement negation.
func Negate(w uint64) uint64 {
	return ^w & Mask
}

// Ones complement 36 bit add with end around carry.
func Add(a, b uint64) uint64 {
	sum := (a & Mask) + (b & Mask)
	if sum > Mask {
		sum = (sum + 1) & Mask
	}
	if sum == NegZero && !(a == NegZero && b == NegZero) {
		sum = 0
	}
	return sum
}

// Ones complement 18 bit add with end around carry.
func Add18(a, b uint64) uint64 {
	sum := (a & HalfMask) + (b & HalfMask)
	if sum > HalfMask {
		sum = (sum + 1) & HalfMask
	}
	if sum == HalfMask && !(a&HalfMask == HalfMask && b&HalfMask == HalfMask) {
		sum = 0
	}
	return sum
}

// Ones complement 24 bit add with end around carry.
func Add24(a, b uint64) uint64 {
	const m24 = 0_77777777
	sum := (a & m24) + (b & m24)
	if sum > m24 {
		sum = (sum + 1) & m24
	}
	return sum
}

// Extract partial word selected by j-field. Immediate designators are not
// handled here.
func GetPartial(w uint64, j uint64, quarter bool) uint64 {
	switch j {
	case JW:
		return w & Mask
	case JH2:
		return H2(w)
	case JH1:
		return H1(w)
	case JXH2:
		return ExtendHalf(H2(w))
	case JXH1:
		if quarter {
			return Q2(w)
		}
		return ExtendHalf(H1(w))
	case JT3:
		if quarter {
			return Q4(w)
		}
		return ExtendThird(T3(w))
	case JT2:
		if quarter {
			return Q3(w)
		}
		return ExtendThird(T2(w))
	case JT1:
		if quarter {
			return Q1(w)
		}
		return ExtendThird(T1(w))
	case JS6, JS5, JS4, JS3, JS2, JS1:
		return S(w, int(JS1-j)+1)
	}
	return w & Mask
}

// Replace partial word selected by j-field in w with v.
func SetPartial(w uint64, v uint64, j uint64, quarter bool) uint64 {
	var shift, mask uint64
	switch j {
	case JH2, JXH2:
		shift, mask = 0, HalfMask
	case JH1:
		shift, mask = 18, HalfMask
	case JXH1:
		if quarter {
			shift, mask = 18, QuartMsk
		} else {
			shift, mask = 18, HalfMask
		}
	case JT3:
		if quarter {
			shift, mask = 0, QuartMsk
		} else {
			shift, mask = 0, ThirdMsk
		}
	case JT2:
		if quarter {
			shift, mask = 9, QuartMsk
		} else {
			shift, mask = 12, ThirdMsk
		}
	case JT1:
		if quarter {
			shift, mask = 27, QuartMsk
		} else {
			shift, mask = 24, ThirdMsk
		}
	case JS6, JS5, JS4, JS3, JS2, JS1:
		return SetS(w, int(JS1-j)+1, v)
	default:
		return v & Mask
	}
	return (w &^ (mask << shift)) | ((v & mask) << shift)
}
