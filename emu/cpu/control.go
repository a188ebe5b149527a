/*
   S2200 processor operator controls.

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
)

// Start processor at the current PAR.
func (p *Processor) Start() {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.running {
		return
	}
	p.running = true
	slog.Info("Processor started", "upi", p.upi, "par", p.par.Word())
}

// Stop processor after the current cycle.
func (p *Processor) Stop() {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.running {
		p.stop(interrupt.StopPanelHalt, 0)
	}
}

// Clear all processor state.
func (p *Processor) Clear() {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.clear()
	slog.Info("Processor cleared", "upi", p.upi)
}

func (p *Processor) SetRunMode(mode RunMode) {
	p.lock.Lock()
	p.mode = mode
	p.lock.Unlock()
}

func (p *Processor) RunMode() RunMode {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.mode
}

func (p *Processor) Running() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.running
}

// Reason and detail of the last stop.
func (p *Processor) StopReason() (interrupt.StopReason, uint64) {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.stopReason, p.stopDetail
}

// Post interrupt from outside the processor.
func (p *Processor) RaiseInterrupt(mi *interrupt.MachineInterrupt) {
	p.lock.Lock()
	p.raise(mi)
	p.lock.Unlock()
}

func (p *Processor) GRS(index uint64) uint64 {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.grs[index%register.GRSSize]
}

func (p *Processor) SetGRS(index, value uint64) {
	p.lock.Lock()
	p.grs[index%register.GRSSize] = value & word.Mask
	p.lock.Unlock()
}

func (p *Processor) BaseRegister(n int) bank.BaseRegister {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.br[n]
}

func (p *Processor) SetBaseRegister(n int, br bank.BaseRegister) {
	p.lock.Lock()
	p.br[n] = br
	p.lock.Unlock()
}

// Active base table entry for B1-B15.
func (p *Processor) ActiveBaseTable(n int) bank.ActiveBaseTableEntry {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.abt[n]
}

func (p *Processor) SetActiveBaseTable(n int, e bank.ActiveBaseTableEntry) {
	p.lock.Lock()
	p.abt[n] = e
	p.lock.Unlock()
}

func (p *Processor) DR() register.Designator {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.dr
}

func (p *Processor) SetDR(dr register.Designator) {
	p.lock.Lock()
	p.dr = dr & register.Designator(word.Mask)
	p.lock.Unlock()
}

func (p *Processor) IKR() register.IndicatorKey {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.ikr
}

func (p *Processor) SetIKR(ikr register.IndicatorKey) {
	p.lock.Lock()
	p.ikr = ikr & register.IndicatorKey(word.Mask)
	p.lock.Unlock()
}

func (p *Processor) PAR() register.ProgramAddress {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.par
}

func (p *Processor) SetPAR(par register.ProgramAddress) {
	p.lock.Lock()
	p.par = par & register.ProgramAddress(word.Mask)
	p.lock.Unlock()
}

// Quantum timer as signed value.
func (p *Processor) QuantumTimer() int64 {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.qt
}

func (p *Processor) SetQuantumTimer(v int64) {
	p.lock.Lock()
	p.qt = v
	p.lock.Unlock()
}

// Load breakpoint register, nil clears it.
func (p *Processor) SetBreakpoint(bp *Breakpoint) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if bp == nil {
		p.breakpointSet = false
		p.breakpoint = Breakpoint{}
		return
	}
	p.breakpoint = *bp
	p.breakpointSet = true
}

// Enable JumpHistoryFull interrupt.
func (p *Processor) SetJumpHistoryInterrupt(enable bool) {
	p.lock.Lock()
	p.jumpInterruptEnb = enable
	p.lock.Unlock()
}

// Return jump history oldest first and empty it.
func (p *Processor) JumpHistory() []uint64 {
	p.lock.Lock()
	defer p.lock.Unlock()
	n := p.jumpCount
	out := make([]uint64, 0, n)
	start := (p.jumpNext - n + jumpHistorySize) % jumpHistorySize
	for i := range n {
		out = append(out, p.jumpHistory[(start+i)%jumpHistorySize])
	}
	p.jumpCount = 0
	p.jumpThreshold = false
	return out
}

// Snapshot of processor registers.
func (p *Processor) State() State {
	p.lock.Lock()
	defer p.lock.Unlock()
	return State{
		UPI:         p.upi,
		Running:     p.running,
		StopReason:  p.stopReason,
		StopDetail:  p.stopDetail,
		PAR:         p.par,
		DR:          p.dr,
		IKR:         p.ikr,
		Quantum:     p.qt,
		Instruction: p.inst,
		GRS:         p.grs,
		BR:          p.br,
		ABT:         p.abt,
		Pending:     p.pending,
		Last:        p.last,
	}
}

// Read words through the bank descriptor tables of the processor. Caller
// holds the processor lock.
func (p *Processor) readVirtual(va bank.VirtualAddress, buf []uint64) error {
	br, err := p.virtualBank(va, uint64(len(buf)), true, false)
	if err != nil {
		return err
	}
	for i := range buf {
		w, err := p.readWord(br.Address(va.Offset() + uint64(i)))
		if err != nil {
			return err
		}
		buf[i] = w
	}
	return nil
}

func (p *Processor) writeVirtual(va bank.VirtualAddress, words []uint64) error {
	br, err := p.virtualBank(va, uint64(len(words)), false, true)
	if err != nil {
		return err
	}
	for i, w := range words {
		if err := p.writeWord(br.Address(va.Offset()+uint64(i)), w); err != nil {
			return err
		}
	}
	return nil
}

// Base register describing bank va lies in, checked for count words.
func (p *Processor) virtualBank(va bank.VirtualAddress, count uint64, read, write bool) (bank.BaseRegister, error) {
	bd, err := p.bankDescriptor(va.Level(), va.BDI())
	if err != nil {
		return bank.BaseRegister{}, err
	}
	if t := bd.Type(); t != bank.ExtendedMode && t != bank.BasicMode {
		return bank.BaseRegister{}, interrupt.NewAddressingException(interrupt.BDTypeInvalid, va.Level(), va.BDI())
	}
	br := bank.BaseRegisterFromDescriptor(bd)
	if count == 0 {
		return br, nil
	}
	if err := br.CheckRange(va.Offset(), count, read, write, p.key()); err != nil {
		return bank.BaseRegister{}, err
	}
	return br, nil
}

// System services view of a processor executing SYSC. The processor lock
// is already held.
type caller struct {
	p *Processor
}

func (c caller) UPI() uint64 {
	return c.p.upi
}

func (c caller) ReadVirtual(va bank.VirtualAddress, buf []uint64) error {
	return c.p.readVirtual(va, buf)
}

func (c caller) WriteVirtual(va bank.VirtualAddress, words []uint64) error {
	return c.p.writeVirtual(va, words)
}
