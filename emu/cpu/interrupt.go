/*
   S2200 interrupt controller.

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
	"log/slog"

	"github.com/rcornwell/S2200/emu/bank"
	"github.com/rcornwell/S2200/emu/interrupt"
	"github.com/rcornwell/S2200/emu/register"
	"github.com/rcornwell/S2200/emu/word"
	"github.com/rcornwell/S2200/util/debug"
)

// Post interrupt. Returns true if the processor acted on it.
func (p *Processor) raise(mi *interrupt.MachineInterrupt) bool {
	if mi.Deferrable() && !p.dr.DeferrableInterruptEnabled() {
		debug.Debugf("CPU", p.debugMsk, debugIRQ, "UPI %o ignored %s", p.upi, mi.Error())
		return false
	}
	if mi.Class == interrupt.HardwareCheck && p.dr.FaultHandlingInProgress() {
		p.stop(interrupt.StopInterruptHandlerHardwareFailure, 0)
		return true
	}
	if mi.Before(p.pending) {
		p.pending = mi
	}
	debug.Debugf("CPU", p.debugMsk, debugIRQ, "UPI %o raise %s", p.upi, mi.Error())
	return true
}

// Look for an interrupt to take or post before the next cycle. Returns
// true if the cycle was used.
func (p *Processor) checkInterrupts() bool {
	if p.pending != nil && (!p.midInstruction || p.pending.Point != interrupt.BetweenInstructions) {
		p.handleInterrupt()
		return true
	}

	if p.ikr.BreakpointMatch() && !p.midInstruction {
		p.ikr.SetBreakpointMatch(false)
		if p.breakpoint.Halt {
			p.stop(interrupt.StopBreakpoint, 0)
			return true
		}
		return p.raise(interrupt.NewBreakpoint())
	}

	if p.dr.QuantumTimerEnabled() && p.qt < 0 {
		if p.raise(interrupt.NewQuantumTimer()) {
			return true
		}
	}

	if p.ikr.SoftwareBreak() && !p.midInstruction {
		p.ikr.SetSoftwareBreak(false)
		if p.raise(interrupt.NewSoftwareBreak()) {
			return true
		}
	}

	if p.jumpThreshold && p.jumpInterruptEnb && !p.midInstruction {
		p.jumpThreshold = false
		p.jumpCount = 0
		return p.raise(interrupt.NewJumpHistoryFull())
	}
	return false
}

// Take pending interrupt: save state on the interrupt control stack and
// enter the handler named by the level 0 BDT vector.
func (p *Processor) handleInterrupt() {
	mi := p.pending
	p.pending = nil
	p.last = mi
	slog.Debug("Interrupt", "upi", p.upi, "class", mi.Class.String(), "status", mi.ShortStatus)
	debug.Debugf("CPU", p.debugMsk, debugIRQ, "UPI %o take %s PAR %012o", p.upi, mi.Error(), p.par.Word())

	ikr := p.ikr
	ikr.SetShortStatus(mi.ShortStatus)
	ikr.SetInterruptClass(uint64(mi.Class))
	ikr.SetInstructionInF0(p.midInstruction)

	ics := p.br[icsBaseRegister]
	if ics.Void {
		p.stop(interrupt.StopICSBaseRegisterInvalid, 0)
		return
	}
	x := register.DecrementModifier18(p.grs[icsIndexRegister])
	p.grs[icsIndexRegister] = x
	fp := register.XM(x)
	size := max(register.XI(x), bank.ICSFrameSize)
	if fp < ics.Lower || fp+size-1 > ics.Upper {
		p.stop(interrupt.StopICSOverflow, fp)
		return
	}

	frame := bank.ICSFrame{
		PAR:          p.par.Word(),
		DR:           p.dr.Word(),
		IKR:          ikr.Word(),
		QuantumTimer: unsigned36(p.qt),
		ISW0:         mi.ISW0,
		ISW1:         mi.ISW1,
	}
	for i, w := range frame.Words() {
		if err := p.storage.Write(ics.Address(fp+uint64(i)), w); err != nil {
			slog.Error("Interrupt control stack write failed", "upi", p.upi, "error", err)
			p.stop(interrupt.StopInterruptHandlerHardwareFailure, fp)
			return
		}
	}

	p.ikr = ikr
	p.midInstruction = false
	p.preventIncrement = false
	p.resumeF0 = false
	p.ikr.SetInstructionInF0(false)
	p.addJumpHistory(p.par.Word())

	c := p.newBankContext(opInterrupt)
	c.mi = mi
	if err := p.bankManipulation(c); err != nil {
		if s, ok := interrupt.AsStop(err); ok {
			p.stop(s.Reason, s.Detail)
			return
		}
		p.stop(interrupt.StopInterruptHandlerInvalidLevelBDI, lbdi(c.srcLevel, c.srcBDI))
	}
}

// Record PAR of a transfer in the jump history.
func (p *Processor) addJumpHistory(par uint64) {
	p.jumpHistory[p.jumpNext] = par & word.Mask
	p.jumpNext = (p.jumpNext + 1) % jumpHistorySize
	if p.jumpCount < jumpHistorySize {
		p.jumpCount++
	}
	if p.jumpCount >= jumpHistoryThreshold {
		p.jumpThreshold = true
	}
}

// Flag breakpoint match if addr and access type match the breakpoint register.
func (p *Processor) checkBreakpoint(addr bank.AbsoluteAddress, fetch, read, write bool) {
	if !p.breakpointSet || addr != p.breakpoint.Address {
		return
	}
	if (fetch && p.breakpoint.Fetch) || (read && p.breakpoint.Read) || (write && p.breakpoint.Write) {
		debug.Debugf("CPU", p.debugMsk, debugIRQ, "UPI %o breakpoint %s", p.upi, addr.String())
		p.ikr.SetBreakpointMatch(true)
	}
}

// Level and BDI as an 18 bit value.
func lbdi(level, bdi uint64) uint64 {
	return ((level & 07) << 15) | (bdi & 077777)
}
