/*
   S2200 designator register.

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
package register

// Designator register, DB0 is the most significant bit.
type Designator uint64

const (
	DB0  Designator = 0_400000_000000 // Activity level queue monitor enabled.
	DB6  Designator = 0_004000_000000 // Fault handling in progress.
	DB11 Designator = 0_000100_000000 // Executive 24 bit indexing enabled.
	DB12 Designator = 0_000040_000000 // Quantum timer enabled.
	DB13 Designator = 0_000020_000000 // Deferrable interrupt enabled.
	DB14 Designator = 0_000010_000000 // Processor privilege high bit.
	DB15 Designator = 0_000004_000000 // Processor privilege low bit.
	DB16 Designator = 0_000002_000000 // Basic mode enabled.
	DB17 Designator = 0_000001_000000 // Executive register set selected.
	DB18 Designator = 0_000000_400000 // Carry.
	DB19 Designator = 0_000000_200000 // Overflow.
	DB21 Designator = 0_000000_040000 // Characteristic underflow.
	DB22 Designator = 0_000000_020000 // Characteristic overflow.
	DB23 Designator = 0_000000_010000 // Divide check.
	DB27 Designator = 0_000000_000400 // Operation trap enabled.
	DB29 Designator = 0_000000_000100 // Arithmetic exception enabled.
	DB31 Designator = 0_000000_000020 // Basic mode base register selection.
	DB32 Designator = 0_000000_000010 // Quarter word mode.

	DB12To17 Designator = 0_000077_000000 // Bits saved in RCS frames and gates.
	GateMask Designator = 0_000075_000000 // Bits a gate may replace, DB16 excluded.
)

func (dr Designator) bit(m Designator) bool { return (dr & m) != 0 }

func (dr *Designator) set(m Designator, v bool) {
	if v {
		*dr |= m
	} else {
		*dr &^= m
	}
}

func (dr Designator) ActivityLevelQueueMonitor() bool { return dr.bit(DB0) }
func (dr Designator) FaultHandlingInProgress() bool   { return dr.bit(DB6) }
func (dr Designator) Exec24BitIndexing() bool         { return dr.bit(DB11) }
func (dr Designator) QuantumTimerEnabled() bool       { return dr.bit(DB12) }
func (dr Designator) DeferrableInterruptEnabled() bool {
	return dr.bit(DB13)
}
func (dr Designator) BasicModeEnabled() bool           { return dr.bit(DB16) }
func (dr Designator) ExecRegisterSetSelected() bool    { return dr.bit(DB17) }
func (dr Designator) Carry() bool                      { return dr.bit(DB18) }
func (dr Designator) Overflow() bool                   { return dr.bit(DB19) }
func (dr Designator) CharacteristicUnderflow() bool    { return dr.bit(DB21) }
func (dr Designator) CharacteristicOverflow() bool     { return dr.bit(DB22) }
func (dr Designator) DivideCheck() bool                { return dr.bit(DB23) }
func (dr Designator) OperationTrapEnabled() bool       { return dr.bit(DB27) }
func (dr Designator) ArithmeticExceptionEnabled() bool { return dr.bit(DB29) }
func (dr Designator) BasicModeBaseRegisterSelection() bool {
	return dr.bit(DB31)
}
func (dr Designator) QuarterWordMode() bool { return dr.bit(DB32) }

// Processor privilege, DB14 and DB15.
func (dr Designator) ProcessorPrivilege() uint64 {
	return (uint64(dr) >> 20) & 3
}

func (dr *Designator) SetActivityLevelQueueMonitor(v bool) { dr.set(DB0, v) }
func (dr *Designator) SetFaultHandlingInProgress(v bool)   { dr.set(DB6, v) }
func (dr *Designator) SetExec24BitIndexing(v bool)         { dr.set(DB11, v) }
func (dr *Designator) SetQuantumTimerEnabled(v bool)       { dr.set(DB12, v) }
func (dr *Designator) SetDeferrableInterruptEnabled(v bool) {
	dr.set(DB13, v)
}
func (dr *Designator) SetBasicModeEnabled(v bool)           { dr.set(DB16, v) }
func (dr *Designator) SetExecRegisterSetSelected(v bool)    { dr.set(DB17, v) }
func (dr *Designator) SetCarry(v bool)                      { dr.set(DB18, v) }
func (dr *Designator) SetOverflow(v bool)                   { dr.set(DB19, v) }
func (dr *Designator) SetDivideCheck(v bool)                { dr.set(DB23, v) }
func (dr *Designator) SetOperationTrapEnabled(v bool)       { dr.set(DB27, v) }
func (dr *Designator) SetArithmeticExceptionEnabled(v bool) { dr.set(DB29, v) }
func (dr *Designator) SetBasicModeBaseRegisterSelection(v bool) {
	dr.set(DB31, v)
}
func (dr *Designator) SetQuarterWordMode(v bool) { dr.set(DB32, v) }

func (dr *Designator) SetProcessorPrivilege(pp uint64) {
	*dr = (*dr &^ (DB14 | DB15)) | Designator((pp&3)<<20)
}

// DB12 through DB17 right justified.
func (dr Designator) S3() uint64 {
	return (uint64(dr) >> 18) & 077
}

// Replace DB12 through DB17.
func (dr *Designator) SetS3(v uint64) {
	*dr = (*dr &^ DB12To17) | Designator((v&077)<<18)
}

func (dr Designator) Word() uint64 { return uint64(dr) & 0_777777_777777 }
