/*
   Octal formatting of 36 bit words.

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
package octal

import "strings"

var octMap = "01234567"

// Write each word as 12 octal digits followed by a space.
func FormatWord(str *strings.Builder, words []uint64) {
	for _, full := range words {
		shift := 33
		for range 12 {
			str.WriteByte(octMap[(full>>shift)&07])
			shift -= 3
		}
		str.WriteByte(' ')
	}
}

// Write word as two 6 digit halves separated by a space.
func FormatHalves(str *strings.Builder, full uint64) {
	FormatDigits(str, full>>18, 6)
	str.WriteByte(' ')
	FormatDigits(str, full, 6)
}

// Write low digits*3 bits of value as octal.
func FormatDigits(str *strings.Builder, value uint64, digits int) {
	for shift := 3 * (digits - 1); shift >= 0; shift -= 3 {
		str.WriteByte(octMap[(value>>shift)&07])
	}
}

// Word as instruction fields f j a x h i u.
func FormatFields(str *strings.Builder, full uint64) {
	FormatDigits(str, full>>30&077, 2)
	str.WriteByte(' ')
	FormatDigits(str, full>>26&017, 2)
	str.WriteByte(' ')
	FormatDigits(str, full>>22&017, 2)
	str.WriteByte(' ')
	FormatDigits(str, full>>18&017, 2)
	str.WriteByte(' ')
	FormatDigits(str, full>>17&1, 1)
	str.WriteByte(' ')
	FormatDigits(str, full>>16&1, 1)
	str.WriteByte(' ')
	FormatDigits(str, full&0177777, 6)
}
