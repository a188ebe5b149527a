/*
   S2200 system services reached by the SYSC instruction.

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
package sysc

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rcornwell/S2200/emu/bank"
	"github.com/rcornwell/S2200/emu/cpu"
	"github.com/rcornwell/S2200/emu/interrupt"
	"github.com/rcornwell/S2200/emu/memory"
	"github.com/rcornwell/S2200/emu/word"
	"github.com/rcornwell/S2200/util/fieldata"
)

// Subfunction codes in U+0 S1.
const (
	CreateMemory    = 020
	ReleaseMemory   = 021
	ResizeMemory    = 022
	StatusMessage   = 030
	ReadOnlyMessage = 031
	ReadReply       = 032
	PollInput       = 033
	CancelReadReply = 034
	ReadDayclock    = 050
	SetComparator   = 051
)

// Status codes returned in the packet.
const (
	StatusOK          = 0
	StatusBadUPI      = 1
	StatusBadSegment  = 2
	StatusBadSize     = 3
	StatusUnsupported = 077
)

// Sixth of U+0 receiving the status of each subfunction group. Console
// requests keep flags in S2 and lengths in S3, S4 and S6.
func statusField(sub uint64) int {
	switch sub >> 3 {
	case 02:
		return 3
	case 03:
		return 5
	}
	return 2
}

func setStatus(packet []uint64, sub, status uint64) {
	packet[0] = word.SetS(packet[0], statusField(sub), status)
}

// Flag bits in U+0.
const (
	flagSendASCII uint64 = 1 << (35 - 6)
	flagReadASCII uint64 = 1 << (35 - 7)
	flagMsgRead   uint64 = 1 << (35 - 11)
)

// Maximum size of dynamic memory request, 31 bits.
const maxRequest = 0_17777_777777

// Destination of messages sent by the operating system.
type Console interface {
	StatusMessage(upi uint64, first, second string)
	ReadOnlyMessage(upi uint64, text string)
}

// System services shared by a processor set.
type Services struct {
	lock       sync.Mutex
	unit       *memory.Unit
	console    Console
	now        func() time.Time
	input      []string        // Unsolicited console input.
	comparator uint64          // Dayclock comparator in microseconds, zero when not set.
	fired      map[uint64]bool // Processors notified of the comparator.
}

// Create services operating on storage unit, console may be nil.
func New(unit *memory.Unit, console Console) *Services {
	return &Services{
		unit:    unit,
		console: console,
		now:     time.Now,
		fired:   map[uint64]bool{},
	}
}

// Queue unsolicited console input for the poll subfunction.
func (s *Services) Reply(text string) {
	s.lock.Lock()
	s.input = append(s.input, text)
	s.lock.Unlock()
}

// Number of queued input messages.
func (s *Services) Pending() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.input)
}

// Perform the request in packet.
func (s *Services) Call(c cpu.Caller, packet []uint64) error {
	if len(packet) < 4 {
		return interrupt.NewInvalidInstruction(interrupt.UndefinedFunctionCode)
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	sub := word.S(packet[0], 1)
	slog.Debug("SYSC", "upi", c.UPI(), "function", sub)
	switch sub {
	case CreateMemory, ReleaseMemory, ResizeMemory:
		setStatus(packet, sub, s.memory(sub, packet))
	case StatusMessage:
		return s.statusMessage(c, packet)
	case ReadOnlyMessage:
		return s.readOnlyMessage(c, packet)
	case PollInput:
		return s.poll(c, packet)
	case ReadDayclock:
		hi, lo := split(microseconds(s.now()))
		packet[1], packet[2] = hi, lo
		setStatus(packet, sub, StatusOK)
	case SetComparator:
		s.comparator = (packet[1]&word.Mask)<<36 | (packet[2] & word.Mask)
		clear(s.fired)
		setStatus(packet, sub, StatusOK)
		slog.Debug("Dayclock comparator set", "upi", c.UPI(), "usec", s.comparator)
	case ReadReply, CancelReadReply:
		setStatus(packet, sub, StatusUnsupported)
	default:
		return interrupt.NewInvalidInstruction(interrupt.UndefinedFunctionCode)
	}
	return nil
}

// Dynamic memory requests, returns status.
func (s *Services) memory(sub uint64, packet []uint64) uint64 {
	msp, err := s.unit.MSP(word.S(packet[0], 2))
	if err != nil {
		return StatusBadUPI
	}
	size := packet[2] & word.Mask
	if sub != ReleaseMemory && size > maxRequest {
		return StatusBadSize
	}

	switch sub {
	case CreateMemory:
		var seg uint64
		seg, err = msp.Allocate(size)
		if err == nil {
			packet[1] = seg
			slog.Info("Dynamic memory created", "upi", msp.UPI(), "segment", seg, "size", size)
		}
	case ReleaseMemory:
		err = msp.Release(packet[1] & word.Mask)
	case ResizeMemory:
		err = msp.Resize(packet[1]&word.Mask, size)
	}
	return memoryStatus(err)
}

func memoryStatus(err error) uint64 {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, memory.ErrSize):
		return StatusBadSize
	}
	return StatusBadSegment
}

// Read message of count words at va.
func readMessage(c cpu.Caller, va uint64, count uint64, ascii bool) (string, error) {
	if count == 0 {
		return "", nil
	}
	buf := make([]uint64, count)
	if err := c.ReadVirtual(bank.VirtualAddress(va&word.Mask), buf); err != nil {
		return "", err
	}
	if ascii {
		return fieldata.QuartersToString(buf), nil
	}
	return fieldata.WordsToString(buf), nil
}

func (s *Services) statusMessage(c cpu.Caller, packet []uint64) error {
	ascii := packet[0]&flagSendASCII != 0
	first, err := readMessage(c, packet[1], word.S(packet[0], 3), ascii)
	if err != nil {
		return err
	}
	second, err := readMessage(c, packet[3], word.S(packet[0], 4), ascii)
	if err != nil {
		return err
	}
	slog.Info("Console status", "upi", c.UPI(), "first", first, "second", second)
	if s.console != nil {
		s.console.StatusMessage(c.UPI(), first, second)
	}
	setStatus(packet, StatusMessage, StatusOK)
	return nil
}

func (s *Services) readOnlyMessage(c cpu.Caller, packet []uint64) error {
	text, err := readMessage(c, packet[1], word.S(packet[0], 3), packet[0]&flagSendASCII != 0)
	if err != nil {
		return err
	}
	slog.Info("Console message", "upi", c.UPI(), "text", text)
	if s.console != nil {
		s.console.ReadOnlyMessage(c.UPI(), text)
	}
	setStatus(packet, ReadOnlyMessage, StatusOK)
	return nil
}

// Return the oldest unsolicited input, if any.
func (s *Services) poll(c cpu.Caller, packet []uint64) error {
	ascii := packet[0]&flagReadASCII != 0
	packet[0] &^= flagMsgRead
	packet[0] = word.SetS(packet[0], 6, 0)
	setStatus(packet, PollInput, StatusOK)
	if len(s.input) == 0 {
		return nil
	}

	var words []uint64
	if ascii {
		words = fieldata.StringToQuarters(s.input[0])
	} else {
		words = fieldata.StringToWords(s.input[0])
	}
	if limit := word.S(packet[0], 4); uint64(len(words)) > limit {
		words = words[:limit]
	}
	if len(words) != 0 {
		if err := c.WriteVirtual(bank.VirtualAddress(packet[2]&word.Mask), words); err != nil {
			return err
		}
	}
	s.input = s.input[1:]
	packet[0] |= flagMsgRead
	packet[0] = word.SetS(packet[0], 6, uint64(len(words)))
	return nil
}

// Report once per processor when the comparator has been passed.
func (s *Services) DayclockExpired(upi uint64, now time.Time) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.comparator == 0 || s.fired[upi] || microseconds(now) < s.comparator {
		return false
	}
	s.fired[upi] = true
	return true
}

func microseconds(t time.Time) uint64 {
	return uint64(t.UnixMicro())
}

// Split value into two 36 bit words.
func split(v uint64) (uint64, uint64) {
	return (v >> 36) & word.Mask, v & word.Mask
}
