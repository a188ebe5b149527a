/*
   S2200 36 bit word primitives tests.

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

import (
	"testing"
)

// Test half and third word extraction.
func TestPartials(t *testing.T) {
	w := uint64(0_123456_765432)
	if r := H1(w); r != 0_123456 {
		t.Errorf("H1 not correct got: %o wanted: %o", r, 0_123456)
	}
	if r := H2(w); r != 0_765432 {
		t.Errorf("H2 not correct got: %o wanted: %o", r, 0_765432)
	}
	if r := T1(w); r != 0_1234 {
		t.Errorf("T1 not correct got: %o wanted: %o", r, 0_1234)
	}
	if r := T2(w); r != 0_5676 {
		t.Errorf("T2 not correct got: %o wanted: %o", r, 0_5676)
	}
	if r := T3(w); r != 0_5432 {
		t.Errorf("T3 not correct got: %o wanted: %o", r, 0_5432)
	}
	for n, v := range []uint64{0_12, 0_34, 0_56, 0_76, 0_54, 0_32} {
		if r := S(w, n+1); r != v {
			t.Errorf("S%d not correct got: %o wanted: %o", n+1, r, v)
		}
	}
}

// Test j-field selection.
func TestGetPartial(t *testing.T) {
	w := uint64(0_400001_600002)
	tests := []struct {
		j       uint64
		quarter bool
		want    uint64
	}{
		{JW, false, 0_400001_600002},
		{JH1, false, 0_400001},
		{JH2, false, 0_600002},
		{JXH1, false, 0_777777_400001},
		{JXH2, false, 0_777777_600002},
		{JT1, false, 0_777777_774000},
		{JT3, false, 0_0002},
		{JS1, false, 0_40},
		{JS6, false, 0_02},
		{JT1, true, 0_400},
		{JXH1, true, 0_001},
	}
	for _, test := range tests {
		r := GetPartial(w, test.j, test.quarter)
		if r != test.want {
			t.Errorf("GetPartial j=%o q=%v got: %o wanted: %o", test.j, test.quarter, r, test.want)
		}
	}
}

// Test storing partial words.
func TestSetPartial(t *testing.T) {
	w := uint64(0)
	w = SetPartial(w, 0_123, JS2, false)
	if w != 0_002300_000000 {
		t.Errorf("SetPartial S2 got: %o wanted: %o", w, uint64(0_002300_000000))
	}
	w = SetPartial(w, 0_777777, JH2, false)
	if w != 0_002300_777777 {
		t.Errorf("SetPartial H2 got: %o wanted: %o", w, uint64(0_002300_777777))
	}
	w = SetPartial(w, 0_1111, JT1, false)
	if w != 0_111100_777777 {
		t.Errorf("SetPartial T1 got: %o wanted: %o", w, uint64(0_111100_777777))
	}
	w = SetPartial(w, 0_555, JT2, true)
	if w != 0_111100_555777 {
		t.Errorf("SetPartial Q3 got: %o wanted: %o", w, uint64(0_111100_555777))
	}
}

// Test ones complement arithmetic.
func TestAdd(t *testing.T) {
	if r := Add(1, 2); r != 3 {
		t.Errorf("Add 1+2 got: %o wanted: %o", r, 3)
	}
	if r := Add(Negate(1), 2); r != 1 {
		t.Errorf("Add -1+2 got: %o wanted: %o", r, 1)
	}
	if r := Add(5, Negate(5)); r != 0 {
		t.Errorf("Add 5-5 got: %o wanted: %o", r, 0)
	}
	if r := Add(NegZero, NegZero); r != NegZero {
		t.Errorf("Add -0+-0 got: %o wanted: %o", r, NegZero)
	}
	if r := Add18(0_777776, 2); r != 1 {
		t.Errorf("Add18 -1+2 got: %o wanted: %o", r, 1)
	}
	if !IsZero(NegZero) || IsZero(1) {
		t.Errorf("IsZero not correct")
	}
}

// Test instruction field decoding.
func TestInstruction(t *testing.T) {
	iw := NewInstruction(010, 016, 5, 3, 1, 0, 01234)
	if iw.F() != 010 || iw.J() != 016 || iw.A() != 5 || iw.X() != 3 {
		t.Errorf("Instruction fields wrong f=%o j=%o a=%o x=%o", iw.F(), iw.J(), iw.A(), iw.X())
	}
	if iw.H() != 1 || iw.I() != 0 || iw.U() != 01234 {
		t.Errorf("Instruction h/i/u wrong h=%o i=%o u=%o", iw.H(), iw.I(), iw.U())
	}
	ext := NewExtended(073, 017, 003, 0, 0, 1, 05, 0123)
	if ext.B() != 05 || ext.D() != 0123 || ext.IB() != 025 {
		t.Errorf("Extended fields wrong b=%o d=%o ib=%o", ext.B(), ext.D(), ext.IB())
	}
	n := iw.SetXHIU(0_000004_600010)
	if n.F() != 010 || n.X() != 4 || n.H() != 1 || n.I() != 1 || n.U() != 010 {
		t.Errorf("SetXHIU not correct got: %o", n.Word())
	}
}
