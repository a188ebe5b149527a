/*
   S2200 machine interrupts.

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
package interrupt

import (
	"errors"
	"fmt"
)

// Interrupt class code, lower value has higher priority.
type Class uint64

const (
	HardwareDefault             Class = 000
	HardwareCheck               Class = 001
	ReferenceViolation          Class = 010
	AddressingException         Class = 011
	TerminalAddressingException Class = 012
	RCSGenericStack             Class = 013
	Signal                      Class = 014
	TestAndSet                  Class = 015
	InvalidInstruction          Class = 016
	PageException               Class = 017
	ArithmeticException         Class = 020
	DataException               Class = 021
	OperationTrap               Class = 022
	Breakpoint                  Class = 023
	QuantumTimer                Class = 024
	SoftwareBreak               Class = 030
	JumpHistoryFull             Class = 031
	Dayclock                    Class = 033
	PerformanceMonitoring       Class = 034
	InitialProgramLoad          Class = 035
	UPIInitial                  Class = 036
	UPINormal                   Class = 037
)

type Category int

const (
	CategoryNone Category = iota
	Fault
	NonFault
)

type Deferrability int

const (
	DeferNone Deferrability = iota
	Deferrable
	Exigent
)

// Point at which the interrupt may be taken.
type Point int

const (
	PointNone Point = iota
	BetweenInstructions
	MidExecution
	IndirectExecute
)

type Synchrony int

const (
	SynchronyNone Synchrony = iota
	Asynchronous
	Broadcast
	Pended
	Synchronous
)

type classAttr struct {
	name      string
	category  Category
	synchrony Synchrony
	deferral  Deferrability
	point     Point
}

var classTable = map[Class]classAttr{
	HardwareDefault:             {"HardwareDefault", Fault, Asynchronous, Exigent, BetweenInstructions},
	HardwareCheck:               {"HardwareCheck", Fault, Asynchronous, Exigent, MidExecution},
	ReferenceViolation:          {"ReferenceViolation", Fault, Synchronous, Exigent, MidExecution},
	AddressingException:         {"AddressingException", Fault, Synchronous, Exigent, MidExecution},
	TerminalAddressingException: {"TerminalAddressingException", Fault, Pended, Exigent, MidExecution},
	RCSGenericStack:             {"RCSGenericStackUnderflowOverflow", Fault, Synchronous, Exigent, MidExecution},
	Signal:                      {"Signal", NonFault, Synchronous, Exigent, BetweenInstructions},
	TestAndSet:                  {"TestAndSet", NonFault, Synchronous, Exigent, MidExecution},
	InvalidInstruction:          {"InvalidInstruction", Fault, Synchronous, Exigent, MidExecution},
	PageException:               {"PageException", Fault, Synchronous, Exigent, MidExecution},
	ArithmeticException:         {"ArithmeticException", Fault, Synchronous, Exigent, BetweenInstructions},
	DataException:               {"DataException", Fault, Synchronous, Exigent, MidExecution},
	OperationTrap:               {"OperationTrap", Fault, Synchronous, Exigent, MidExecution},
	Breakpoint:                  {"Breakpoint", NonFault, Pended, Exigent, BetweenInstructions},
	QuantumTimer:                {"QuantumTimer", NonFault, Pended, Deferrable, BetweenInstructions},
	SoftwareBreak:               {"SoftwareBreak", NonFault, Pended, Deferrable, BetweenInstructions},
	JumpHistoryFull:             {"JumpHistoryFull", NonFault, Pended, Deferrable, BetweenInstructions},
	Dayclock:                    {"Dayclock", NonFault, Asynchronous, Deferrable, BetweenInstructions},
	PerformanceMonitoring:       {"PerformanceMonitoring", NonFault, Asynchronous, Deferrable, BetweenInstructions},
	InitialProgramLoad:          {"InitialProgramLoad", NonFault, Broadcast, Exigent, BetweenInstructions},
	UPIInitial:                  {"UPIInitial", NonFault, Broadcast, Exigent, BetweenInstructions},
	UPINormal:                   {"UPINormal", NonFault, Broadcast, Deferrable, BetweenInstructions},
}

func (c Class) String() string {
	if a, ok := classTable[c]; ok {
		return a.name
	}
	return fmt.Sprintf("Class%03o", uint64(c))
}

// Interrupt raised by the processor or delivered to it.
type MachineInterrupt struct {
	Class         Class
	Category      Category
	Synchrony     Synchrony
	Deferrability Deferrability
	Point         Point
	ShortStatus   uint64 // Stored in IKR S1 when taken.
	ISW0          uint64 // Interrupt status word 0.
	ISW1          uint64 // Interrupt status word 1.
}

func (mi *MachineInterrupt) Error() string {
	return fmt.Sprintf("%03o:%s status %02o", uint64(mi.Class), mi.Class.String(), mi.ShortStatus)
}

// True if interrupt is ignored while deferrable interrupts are disabled.
func (mi *MachineInterrupt) Deferrable() bool {
	return mi.Deferrability == Deferrable
}

// True if the interrupt takes priority over other.
func (mi *MachineInterrupt) Before(other *MachineInterrupt) bool {
	return other == nil || mi.Class < other.Class
}

// Create an interrupt of the given class with class attributes filled in.
func New(class Class, status, isw0, isw1 uint64) *MachineInterrupt {
	attr := classTable[class]
	return &MachineInterrupt{
		Class:         class,
		Category:      attr.category,
		Synchrony:     attr.synchrony,
		Deferrability: attr.deferral,
		Point:         attr.point,
		ShortStatus:   status & 077,
		ISW0:          isw0 & 0_777777_777777,
		ISW1:          isw1 & 0_777777_777777,
	}
}

// Return the interrupt carried by err, if any.
func AsInterrupt(err error) (*MachineInterrupt, bool) {
	var mi *MachineInterrupt
	if errors.As(err, &mi) {
		return mi, true
	}
	return nil, false
}

// Level and BDI packed into H1 of an interrupt status word.
func lbdiWord(level, bdi uint64) uint64 {
	return (((level & 07) << 15) | (bdi & 077777)) << 18
}

// Addressing exception reasons.
const (
	FatalAddressing           uint64 = 000
	GBitSetGate               uint64 = 001
	EnterAccessDenied         uint64 = 002
	InvalidSourceLevelBDI     uint64 = 003
	GateBankBoundaryViolation uint64 = 004
	InvalidISValue            uint64 = 005
	GBitSetIndirect           uint64 = 006
	BDTypeInvalid             uint64 = 007
)

// Addressing exception naming the failing bank in ISW1 H1.
func NewAddressingException(reason, level, bdi uint64) *MachineInterrupt {
	return New(AddressingException, reason, 0, lbdiWord(level, bdi))
}

// Terminal addressing exception reasons.
const (
	GBitSetInTargetBD         uint64 = 001
	TerminalEnterDenied       uint64 = 002
	FunctionalityNotSupported uint64 = 010
	RCSTrap                   uint64 = 012
)

func NewTerminalAddressingException(reason, level, bdi uint64) *MachineInterrupt {
	return New(TerminalAddressingException, reason, 0, lbdiWord(level, bdi))
}

// Reference violation kinds.
const (
	GRSViolation           uint64 = 0
	StorageLimitsViolation uint64 = 1
	ReadAccessViolation    uint64 = 2
	WriteAccessViolation   uint64 = 3
)

// Reference violation, short status bit 2 set for instruction fetch.
func NewReferenceViolation(kind uint64, fetch bool) *MachineInterrupt {
	status := kind & 03
	if fetch {
		status |= 04
	}
	return New(ReferenceViolation, status, 0, 0)
}

// Invalid instruction reasons.
const (
	UndefinedFunctionCode     uint64 = 0
	InvalidLinkageRegister    uint64 = 1
	InvalidBaseRegister       uint64 = 2
	InvalidProcessorPrivilege uint64 = 3
	InvalidTargetInstruction  uint64 = 4
)

func NewInvalidInstruction(reason uint64) *MachineInterrupt {
	return New(InvalidInstruction, reason, 0, 0)
}

// RCS stack reasons.
const (
	RCSOverflow  uint64 = 0
	RCSUnderflow uint64 = 1
)

// RCS overflow or underflow, ISW1 holds base register and frame pointer.
func NewRCSGenericStack(reason, baseRegister, offset uint64) *MachineInterrupt {
	return New(RCSGenericStack, reason, 0, ((baseRegister&037)<<18)|(offset&0_777777))
}

// Arithmetic exception reasons.
const (
	CharacteristicOverflow  uint64 = 0
	CharacteristicUnderflow uint64 = 1
	DivideCheck             uint64 = 2
)

func NewArithmeticException(reason uint64) *MachineInterrupt {
	return New(ArithmeticException, reason, 0, 0)
}

// Operation trap reasons.
const (
	FixedPointBinaryIntegerOverflow uint64 = 001
	DecimalIntegerOverflow          uint64 = 002
	MultiplySingleIntegerOverflow   uint64 = 003
)

func NewOperationTrap(reason uint64) *MachineInterrupt {
	return New(OperationTrap, reason, 0, 0)
}

// Test and set interrupt, ISW1 holds the absolute address tested.
func NewTestAndSet(segment, offset uint64) *MachineInterrupt {
	return New(TestAndSet, 0, segment, offset)
}

// Signal interrupt from SGNL, ISW0 holds the operand.
func NewSignal(operand uint64) *MachineInterrupt {
	return New(Signal, 0, operand, 0)
}

func NewHardwareCheck() *MachineInterrupt      { return New(HardwareCheck, 0, 0, 0) }
func NewBreakpoint() *MachineInterrupt         { return New(Breakpoint, 0, 0, 0) }
func NewQuantumTimer() *MachineInterrupt       { return New(QuantumTimer, 0, 0, 0) }
func NewSoftwareBreak() *MachineInterrupt      { return New(SoftwareBreak, 0, 0, 0) }
func NewJumpHistoryFull() *MachineInterrupt    { return New(JumpHistoryFull, 0, 0, 0) }
func NewDayclock() *MachineInterrupt           { return New(Dayclock, 0, 0, 0) }
func NewInitialProgramLoad() *MachineInterrupt { return New(InitialProgramLoad, 0, 0, 0) }

// UPI interrupts carry the sending UPI in ISW0.
func NewUPIInitial(upi uint64) *MachineInterrupt { return New(UPIInitial, 0, upi, 0) }
func NewUPINormal(upi uint64) *MachineInterrupt  { return New(UPINormal, 0, upi, 0) }
