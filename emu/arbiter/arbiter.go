/*
   S2200 storage lock arbiter.

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
	"fmt"
	"sync"

	"github.com/rcornwell/S2200/emu/bank"
)

// Storage locks shared by a set of processors. A processor holds locks on
// absolute addresses until its current instruction completes.
type Arbiter struct {
	lock  sync.Mutex
	freed *sync.Cond
	held  map[uint64]map[bank.AbsoluteAddress]struct{}
}

func New() *Arbiter {
	a := &Arbiter{held: map[uint64]map[bank.AbsoluteAddress]struct{}{}}
	a.freed = sync.NewCond(&a.lock)
	return a
}

// Return true if another processor holds any of addrs. Caller holds lock.
func (a *Arbiter) conflict(upi uint64, addrs []bank.AbsoluteAddress) bool {
	for owner, set := range a.held {
		if owner == upi {
			continue
		}
		for _, addr := range addrs {
			if _, ok := set[addr]; ok {
				return true
			}
		}
	}
	return false
}

// Acquire locks on addrs for processor upi, waiting until no other
// processor holds any of them. A processor may only wait while it holds
// no locks, anything else could deadlock.
func (a *Arbiter) Lock(upi uint64, addrs ...bank.AbsoluteAddress) {
	a.lock.Lock()
	defer a.lock.Unlock()
	if len(a.held[upi]) != 0 {
		panic(fmt.Sprintf("processor %o requested storage locks while holding %d", upi, len(a.held[upi])))
	}
	for a.conflict(upi, addrs) {
		a.freed.Wait()
	}
	set := make(map[bank.AbsoluteAddress]struct{}, len(addrs))
	for _, addr := range addrs {
		set[addr] = struct{}{}
	}
	a.held[upi] = set
}

// Release all locks held by processor upi.
func (a *Arbiter) Release(upi uint64) {
	a.lock.Lock()
	if _, ok := a.held[upi]; ok {
		delete(a.held, upi)
		a.freed.Broadcast()
	}
	a.lock.Unlock()
}

// Number of locks held by processor upi.
func (a *Arbiter) Holds(upi uint64) int {
	a.lock.Lock()
	defer a.lock.Unlock()
	return len(a.held[upi])
}

// Return UPI of the processor holding addr.
func (a *Arbiter) Owner(addr bank.AbsoluteAddress) (uint64, bool) {
	a.lock.Lock()
	defer a.lock.Unlock()
	for owner, set := range a.held {
		if _, ok := set[addr]; ok {
			return owner, true
		}
	}
	return 0, false
}
