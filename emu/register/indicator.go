/*
   S2200 indicator key and program address registers.

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

// Indicator key register.
//
//	S1        short status field
//	bits 6-8  mid instruction description
//	bits 9-11 pending interrupt information
//	S3        interrupt class
//	H2        access key
type IndicatorKey uint64

const (
	ikrShortStatus   uint64 = 0_770000_000000
	ikrMidInst       uint64 = 0_007000_000000
	ikrInF0          uint64 = 0_004000_000000
	ikrRepeated      uint64 = 0_002000_000000
	ikrPending       uint64 = 0_000700_000000
	ikrBreakpoint    uint64 = 0_000400_000000
	ikrSoftwareBreak uint64 = 0_000200_000000
	ikrClass         uint64 = 0_000077_000000
	ikrAccessKey     uint64 = 0_000000_777777
)

func (ikr IndicatorKey) ShortStatus() uint64 { return (uint64(ikr) & ikrShortStatus) >> 30 }
func (ikr IndicatorKey) MidInstructionDescription() uint64 {
	return (uint64(ikr) & ikrMidInst) >> 27
}
func (ikr IndicatorKey) PendingInterruptInformation() uint64 {
	return (uint64(ikr) & ikrPending) >> 24
}
func (ikr IndicatorKey) InterruptClass() uint64 { return (uint64(ikr) & ikrClass) >> 18 }
func (ikr IndicatorKey) AccessKey() uint64      { return uint64(ikr) & ikrAccessKey }
func (ikr IndicatorKey) InstructionInF0() bool  { return (uint64(ikr) & ikrInF0) != 0 }
func (ikr IndicatorKey) ExecuteRepeated() bool  { return (uint64(ikr) & ikrRepeated) != 0 }
func (ikr IndicatorKey) BreakpointMatch() bool  { return (uint64(ikr) & ikrBreakpoint) != 0 }
func (ikr IndicatorKey) SoftwareBreak() bool    { return (uint64(ikr) & ikrSoftwareBreak) != 0 }

func (ikr *IndicatorKey) setField(mask uint64, shift uint, v uint64) {
	*ikr = IndicatorKey((uint64(*ikr) &^ mask) | ((v << shift) & mask))
}

func (ikr *IndicatorKey) setBit(mask uint64, v bool) {
	if v {
		*ikr |= IndicatorKey(mask)
	} else {
		*ikr &^= IndicatorKey(mask)
	}
}

func (ikr *IndicatorKey) SetShortStatus(v uint64) { ikr.setField(ikrShortStatus, 30, v) }
func (ikr *IndicatorKey) SetMidInstructionDescription(v uint64) {
	ikr.setField(ikrMidInst, 27, v)
}
func (ikr *IndicatorKey) SetPendingInterruptInformation(v uint64) {
	ikr.setField(ikrPending, 24, v)
}
func (ikr *IndicatorKey) SetInterruptClass(v uint64) { ikr.setField(ikrClass, 18, v) }
func (ikr *IndicatorKey) SetAccessKey(v uint64)      { ikr.setField(ikrAccessKey, 0, v) }
func (ikr *IndicatorKey) SetInstructionInF0(v bool)  { ikr.setBit(ikrInF0, v) }
func (ikr *IndicatorKey) SetExecuteRepeated(v bool)  { ikr.setBit(ikrRepeated, v) }
func (ikr *IndicatorKey) SetBreakpointMatch(v bool)  { ikr.setBit(ikrBreakpoint, v) }
func (ikr *IndicatorKey) SetSoftwareBreak(v bool)    { ikr.setBit(ikrSoftwareBreak, v) }

func (ikr IndicatorKey) Word() uint64 { return uint64(ikr) & 0_777777_777777 }

// Program address register, H1 holds L,BDI and H2 the program counter.
type ProgramAddress uint64

func (par ProgramAddress) Level() uint64 { return (uint64(par) >> 33) & 07 }
func (par ProgramAddress) BDI() uint64   { return (uint64(par) >> 18) & 077777 }
func (par ProgramAddress) LBDI() uint64  { return (uint64(par) >> 18) & 0_777777 }
func (par ProgramAddress) PC() uint64    { return uint64(par) & 0_777777 }

func (par *ProgramAddress) SetLBDI(level, bdi uint64) {
	*par = ProgramAddress(((level & 07) << 33) | ((bdi & 077777) << 18) | par.PC())
}

func (par *ProgramAddress) SetPC(pc uint64) {
	*par = ProgramAddress((uint64(*par) &^ 0_777777) | (pc & 0_777777))
}

func NewProgramAddress(level, bdi, pc uint64) ProgramAddress {
	return ProgramAddress(((level & 07) << 33) | ((bdi & 077777) << 18) | (pc & 0_777777))
}

func (par ProgramAddress) Word() uint64 { return uint64(par) & 0_777777_777777 }
