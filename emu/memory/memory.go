/*
   S2200 main storage.

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
package memory

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rcornwell/S2200/emu/bank"
)

const (
	WMASK       uint64 = 0_777777_777777 // Mask word to 36 bits.
	MaxSegment  uint64 = 0x1ffffff       // Largest segment index.
	MaxSize     uint64 = 0x10000000      // Largest segment in words.
	MaxDynamic  uint64 = 0x1000000       // Words of dynamic segments per MSP.
	FixedSegment       = 0               // Segment created at configuration time.
)

var (
	ErrNoMSP        = errors.New("no storage unit at UPI")
	ErrSegment      = errors.New("segment not allocated")
	ErrSize         = errors.New("invalid segment size")
	ErrOffset       = errors.New("offset beyond end of segment")
	ErrFixedSegment = errors.New("fixed segment can not be released")
)

// One main storage processor: a set of segments of 36 bit words.
type MSP struct {
	upi      uint64
	lock     sync.RWMutex
	segments map[uint64][]uint64
	next     uint64
	dynamic  uint64 // Words held by dynamic segments.
	limit    uint64 // Most words dynamic segments may hold.
}

// Create storage unit with fixed segment 0 of size words.
func NewMSP(upi uint64, size uint64) (*MSP, error) {
	if size == 0 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d words", ErrSize, size)
	}
	msp := &MSP{upi: upi & 017, segments: map[uint64][]uint64{}, next: 1, limit: MaxDynamic}
	msp.segments[FixedSegment] = make([]uint64, size)
	return msp, nil
}

func (m *MSP) UPI() uint64 {
	return m.upi
}

// Allocate a new segment, returns the segment index.
func (m *MSP) Allocate(size uint64) (uint64, error) {
	if size == 0 || size > MaxSize {
		return 0, fmt.Errorf("%w: %d words", ErrSize, size)
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	if size > m.limit-m.dynamic {
		return 0, fmt.Errorf("%w: %d words exceeds dynamic storage", ErrSize, size)
	}
	for range MaxSegment {
		seg := m.next
		m.next++
		if m.next > MaxSegment {
			m.next = 1
		}
		if _, ok := m.segments[seg]; !ok {
			m.segments[seg] = make([]uint64, size)
			m.dynamic += size
			return seg, nil
		}
	}
	return 0, fmt.Errorf("%w: no free segment index", ErrSegment)
}

// Free a segment.
func (m *MSP) Release(seg uint64) error {
	if seg == FixedSegment {
		return ErrFixedSegment
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	words, ok := m.segments[seg]
	if !ok {
		return fmt.Errorf("%w: %o", ErrSegment, seg)
	}
	m.dynamic -= uint64(len(words))
	delete(m.segments, seg)
	return nil
}

// Change size of a segment, content up to the smaller size is kept.
func (m *MSP) Resize(seg uint64, size uint64) error {
	if size == 0 || size > MaxSize {
		return fmt.Errorf("%w: %d words", ErrSize, size)
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	old, ok := m.segments[seg]
	if !ok {
		return fmt.Errorf("%w: %o", ErrSegment, seg)
	}
	if seg != FixedSegment {
		if size > m.limit-(m.dynamic-uint64(len(old))) {
			return fmt.Errorf("%w: %d words exceeds dynamic storage", ErrSize, size)
		}
		m.dynamic += size - uint64(len(old))
	}
	words := make([]uint64, size)
	for i := range min(uint64(len(old)), size) {
		words[i] = atomic.LoadUint64(&old[i])
	}
	m.segments[seg] = words
	return nil
}

// Size of segment in words, zero if not allocated.
func (m *MSP) Size(seg uint64) uint64 {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return uint64(len(m.segments[seg]))
}

// Return word slot for segment and offset. Caller holds read lock.
func (m *MSP) slot(seg, offset uint64) (*uint64, error) {
	words, ok := m.segments[seg]
	if !ok {
		return nil, fmt.Errorf("%w: %o", ErrSegment, seg)
	}
	if offset >= uint64(len(words)) {
		return nil, fmt.Errorf("%w: %o:%o", ErrOffset, seg, offset)
	}
	return &words[offset], nil
}

// Read one word.
func (m *MSP) Read(seg, offset uint64) (uint64, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	p, err := m.slot(seg, offset)
	if err != nil {
		return 0, err
	}
	return atomic.LoadUint64(p), nil
}

// Write one word.
func (m *MSP) Write(seg, offset, value uint64) error {
	m.lock.RLock()
	defer m.lock.RUnlock()
	p, err := m.slot(seg, offset)
	if err != nil {
		return err
	}
	atomic.StoreUint64(p, value&WMASK)
	return nil
}

// Return n words of segment starting at offset. The slice shares the
// segment's storage, so later writes are visible through it until the
// segment is resized or released.
func (m *MSP) View(seg, offset, n uint64) ([]uint64, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	words, ok := m.segments[seg]
	if !ok {
		return nil, fmt.Errorf("%w: %o", ErrSegment, seg)
	}
	if offset+n > uint64(len(words)) || offset+n < offset {
		return nil, fmt.Errorf("%w: %o:%o", ErrOffset, seg, offset+n)
	}
	return words[offset : offset+n : offset+n], nil
}

// Storage shared by processors, storage units are selected by UPI.
type Unit struct {
	lock sync.RWMutex
	msps map[uint64]*MSP
}

func NewUnit(msps ...*MSP) *Unit {
	u := &Unit{msps: map[uint64]*MSP{}}
	for _, m := range msps {
		u.msps[m.upi] = m
	}
	return u
}

// Add a storage unit, replacing any unit with the same UPI.
func (u *Unit) Add(m *MSP) {
	u.lock.Lock()
	u.msps[m.upi] = m
	u.lock.Unlock()
}

// Return storage unit for UPI.
func (u *Unit) MSP(upi uint64) (*MSP, error) {
	u.lock.RLock()
	defer u.lock.RUnlock()
	m, ok := u.msps[upi&017]
	if !ok {
		return nil, fmt.Errorf("%w %o", ErrNoMSP, upi)
	}
	return m, nil
}

// Read word at absolute address.
func (u *Unit) Read(addr bank.AbsoluteAddress) (uint64, error) {
	m, err := u.MSP(addr.UPI)
	if err != nil {
		return 0, err
	}
	return m.Read(addr.Segment, addr.Offset)
}

// Write word at absolute address.
func (u *Unit) Write(addr bank.AbsoluteAddress, value uint64) error {
	m, err := u.MSP(addr.UPI)
	if err != nil {
		return err
	}
	return m.Write(addr.Segment, addr.Offset, value)
}

// Return n words of storage starting at addr, shared with the unit.
func (u *Unit) View(addr bank.AbsoluteAddress, n uint64) ([]uint64, error) {
	m, err := u.MSP(addr.UPI)
	if err != nil {
		return nil, err
	}
	return m.View(addr.Segment, addr.Offset, n)
}

// Read len(buf) consecutive words starting at addr.
func (u *Unit) ReadRange(addr bank.AbsoluteAddress, buf []uint64) error {
	for i := range buf {
		w, err := u.Read(addr.AddOffset(uint64(i)))
		if err != nil {
			return err
		}
		buf[i] = w
	}
	return nil
}

// Write words to consecutive locations starting at addr.
func (u *Unit) WriteRange(addr bank.AbsoluteAddress, words []uint64) error {
	for i, w := range words {
		if err := u.Write(addr.AddOffset(uint64(i)), w); err != nil {
			return err
		}
	}
	return nil
}
