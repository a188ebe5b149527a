/*
   Debug trace output tests.

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
package debug

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Debugf("CPU", 0x3, 0x4, "not selected %d", 1)
	if buf.Len() != 0 {
		t.Errorf("Unselected level written: %s", buf.String())
	}
	Debugf("CPU", 0x5, 0x4, "PAR %012o", uint64(0_000100_001000))
	if got := buf.String(); got != "CPU: PAR 000100001000\n" {
		t.Errorf("Debug Got: '%s'", got)
	}

	SetOutput(nil)
	Debugf("CPU", 1, 1, "dropped")
}

func TestCreate(t *testing.T) {
	defer SetOutput(nil)
	dir := t.TempDir()
	if err := create(0, filepath.Join(dir, "none", "x.log"), nil); err == nil {
		t.Errorf("Bad path accepted")
	}
	if err := create(0, filepath.Join(dir, "debug.log"), nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := create(0, filepath.Join(dir, "other.log"), nil); err == nil {
		t.Errorf("Second debug file accepted")
	}
}
