/*
   Fieldata and ASCII word conversion.

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
package fieldata

import "strings"

// Fieldata space.
const Space = 005

// Characters per word.
const (
	SixthsPerWord   = 6
	QuartersPerWord = 4
)

// Return ASCII character for Fieldata code.
func ToASCII(fd uint8) byte {
	return fieldataToASCII[fd&077]
}

// Return Fieldata code for ASCII character.
func FromASCII(c byte) uint8 {
	if c >= 128 {
		return 077
	}
	return asciiToFieldata[c]
}

// Decode words of six Fieldata characters, trailing spaces are removed.
func WordsToString(words []uint64) string {
	var sb strings.Builder
	for _, w := range words {
		for n := range SixthsPerWord {
			sb.WriteByte(ToASCII(uint8(w >> (6 * (5 - n)))))
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// Encode string as Fieldata, last word is padded with spaces.
func StringToWords(s string) []uint64 {
	words := make([]uint64, 0, (len(s)+SixthsPerWord-1)/SixthsPerWord)
	for i := 0; i < len(s); i += SixthsPerWord {
		var w uint64
		for n := range SixthsPerWord {
			fd := uint8(Space)
			if i+n < len(s) {
				fd = FromASCII(s[i+n])
			}
			w = (w << 6) | uint64(fd)
		}
		words = append(words, w)
	}
	return words
}

// Decode words of four ASCII quarter words. Decoding stops at the first
// NUL, trailing spaces are removed.
func QuartersToString(words []uint64) string {
	var sb strings.Builder
outer:
	for _, w := range words {
		for n := range QuartersPerWord {
			c := byte((w >> (9 * (3 - n))) & 0177)
			if c == 0 {
				break outer
			}
			sb.WriteByte(c)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// Encode string as ASCII quarter words, last word is padded with spaces.
func StringToQuarters(s string) []uint64 {
	words := make([]uint64, 0, (len(s)+QuartersPerWord-1)/QuartersPerWord)
	for i := 0; i < len(s); i += QuartersPerWord {
		var w uint64
		for n := range QuartersPerWord {
			c := byte(' ')
			if i+n < len(s) {
				c = s[i+n] & 0177
			}
			w = (w << 9) | uint64(c)
		}
		words = append(words, w)
	}
	return words
}
