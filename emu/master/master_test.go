/*
   S2200 master packet tests.

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
package master

import "testing"

func TestPacketFor(t *testing.T) {
	p := Packet{Msg: Start, UPI: 2}
	if !p.For(2) {
		t.Errorf("Packet for UPI 2 not accepted by 2")
	}
	if p.For(3) {
		t.Errorf("Packet for UPI 2 accepted by 3")
	}
	p.UPI = AllProcessors
	if !p.For(3) {
		t.Errorf("Broadcast packet not accepted")
	}
	if s := p.String(); s != "start" {
		t.Errorf("String got: %s expected: start", s)
	}
	if s := (Packet{Msg: 99}).String(); s != "unknown" {
		t.Errorf("String got: %s expected: unknown", s)
	}
}
