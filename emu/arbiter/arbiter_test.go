/*
   S2200 storage lock arbiter tests.

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
package arbiter

import (
	"sync"
	"testing"
	"time"

	"github.com/rcornwell/S2200/emu/bank"
)

func TestLockRelease(t *testing.T) {
	a := New()
	addr := bank.NewAbsoluteAddress(0, 0, 0100)
	a.Lock(1, addr, addr.AddOffset(1))
	if n := a.Holds(1); n != 2 {
		t.Errorf("Holds got: %d expected: %d", n, 2)
	}
	if o, ok := a.Owner(addr); !ok || o != 1 {
		t.Errorf("Owner got: %o %v expected: 1 true", o, ok)
	}
	// Different addresses do not conflict.
	a.Lock(2, addr.AddOffset(2))
	a.Release(1)
	a.Release(2)
	if n := a.Holds(1); n != 0 {
		t.Errorf("Holds after release got: %d expected: 0", n)
	}
	if _, ok := a.Owner(addr); ok {
		t.Errorf("Owner after release still set")
	}
}

// Second processor waits until the first releases.
func TestLockExclusion(t *testing.T) {
	a := New()
	addr := bank.NewAbsoluteAddress(0, 0, 0100)
	a.Lock(1, addr)

	var wg sync.WaitGroup
	acquired := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.Lock(2, addr)
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatalf("Processor 2 acquired lock held by processor 1")
	case <-time.After(50 * time.Millisecond):
	}
	a.Release(1)
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("Processor 2 never acquired lock")
	}
	wg.Wait()
	if o, _ := a.Owner(addr); o != 2 {
		t.Errorf("Owner got: %o expected: 2", o)
	}
}

// Asking for locks while holding locks is a fatal error.
func TestLockWhileHolding(t *testing.T) {
	a := New()
	a.Lock(1, bank.NewAbsoluteAddress(0, 0, 1))
	defer func() {
		if recover() == nil {
			t.Errorf("Lock while holding locks did not panic")
		}
	}()
	a.Lock(1, bank.NewAbsoluteAddress(0, 0, 2))
}
