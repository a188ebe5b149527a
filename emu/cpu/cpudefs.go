/*
   S2200 instruction processor definitions.

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
package cpu

import (
	"sync"
	"time"

	"github.com/rcornwell/S2200/emu/arbiter"
	"github.com/rcornwell/S2200/emu/bank"
	"github.com/rcornwell/S2200/emu/interrupt"
	"github.com/rcornwell/S2200/emu/master"
	"github.com/rcornwell/S2200/emu/register"
	"github.com/rcornwell/S2200/emu/word"
)

// Storage seen by a processor.
type Storage interface {
	Read(addr bank.AbsoluteAddress) (uint64, error)
	Write(addr bank.AbsoluteAddress, value uint64) error
}

// Storage that can hand out words in place. Bank descriptors are read
// through it so the processor sees the table as it is in storage.
type StorageViewer interface {
	View(addr bank.AbsoluteAddress, n uint64) ([]uint64, error)
}

// Processor side of a system services request. Virtual addresses are
// resolved through the calling processor's bank descriptor tables.
type Caller interface {
	UPI() uint64
	ReadVirtual(va bank.VirtualAddress, buf []uint64) error
	WriteVirtual(va bank.VirtualAddress, words []uint64) error
}

// Services reached by the SYSC instruction.
type SystemServices interface {
	// Perform request in packet, results are written back to packet.
	Call(c Caller, packet []uint64) error
	// Report once per processor that the dayclock comparator has passed.
	DayclockExpired(upi uint64, now time.Time) bool
}

// Base registers and index registers with fixed roles.
const (
	l0BDTBaseRegister = 16 // Level 0 BDT, level L is based on B16+L.
	rcsBaseRegister   = 25 // Return control stack.
	icsBaseRegister   = 26 // Interrupt control stack.
	rcsIndexRegister  = 25 // X25 of the selected register set.
	icsIndexRegister  = register.EX1
)

// Jump history.
const (
	jumpHistorySize      = 128
	jumpHistoryThreshold = 120
)

// Words in the SYSC packet.
const syscPacketSize = 4

// Wait between checks while stopped.
const idleDelay = 10 * time.Millisecond

// Size of inbound packet queue.
const inboxSize = 16

// Run modes.
type RunMode int

const (
	Normal            RunMode = iota // Run until stopped.
	SingleInstruction                // Stop after each instruction.
)

// Breakpoint register.
type Breakpoint struct {
	Address bank.AbsoluteAddress
	Fetch   bool // Match instruction fetch.
	Read    bool // Match operand read.
	Write   bool // Match operand write.
	Halt    bool // Stop processor instead of raising an interrupt.
}

// Debug trace options.
const (
	debugInst = 1 << iota
	debugBank
	debugIRQ
	debugLock
)

var debugOption = map[string]int{
	"INST": debugInst,
	"BANK": debugBank,
	"IRQ":  debugIRQ,
	"LOCK": debugLock,
}

// One instruction processor.
type Processor struct {
	lock     sync.Mutex
	upi      uint64
	storage  Storage
	arbiter  *arbiter.Arbiter
	services SystemServices
	inbox    chan master.Packet

	grs register.GRS                          // General register set.
	br  [bank.BaseRegisters]bank.BaseRegister // Base registers.
	abt [16]bank.ActiveBaseTableEntry         // Names of banks in B1-B15.
	dr  register.Designator                   // Designator register.
	ikr register.IndicatorKey                 // Indicator key register.
	par register.ProgramAddress               // Program address register.
	qt  int64                                 // Quantum timer.

	inst             word.Instruction // Instruction in F0.
	midInstruction   bool             // Suspended by indirect addressing.
	preventIncrement bool             // Handler set the program counter.
	resumeF0         bool             // UR restored an instruction in F0.

	pending *interrupt.MachineInterrupt // Next interrupt to take.
	last    *interrupt.MachineInterrupt // Last interrupt taken.

	breakpoint    Breakpoint
	breakpointSet bool

	jumpHistory      [jumpHistorySize]uint64
	jumpNext         int
	jumpCount        int
	jumpThreshold    bool
	jumpInterruptEnb bool

	running    bool
	mode       RunMode
	stopReason interrupt.StopReason
	stopDetail uint64
	debugMsk   int
}

// Copy of processor registers for display.
type State struct {
	UPI         uint64
	Running     bool
	StopReason  interrupt.StopReason
	StopDetail  uint64
	PAR         register.ProgramAddress
	DR          register.Designator
	IKR         register.IndicatorKey
	Quantum     int64
	Instruction word.Instruction
	GRS         register.GRS
	BR          [bank.BaseRegisters]bank.BaseRegister
	ABT         [16]bank.ActiveBaseTableEntry
	Pending     *interrupt.MachineInterrupt
	Last        *interrupt.MachineInterrupt
}
