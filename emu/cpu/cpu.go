/*
   S2200 instruction processor.

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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rcornwell/S2200/emu/arbiter"
	"github.com/rcornwell/S2200/emu/bank"
	disassembler "github.com/rcornwell/S2200/emu/disassemble"
	"github.com/rcornwell/S2200/emu/interrupt"
	"github.com/rcornwell/S2200/emu/master"
	"github.com/rcornwell/S2200/emu/register"
	"github.com/rcornwell/S2200/emu/word"
	"github.com/rcornwell/S2200/util/debug"
)

// Create processor with the given UPI. Processor starts cleared and stopped.
func New(upi uint64, storage Storage, arb *arbiter.Arbiter, services SystemServices) *Processor {
	p := &Processor{
		upi:      upi & 017,
		storage:  storage,
		arbiter:  arb,
		services: services,
		inbox:    make(chan master.Packet, inboxSize),
	}
	p.clear()
	return p
}

func (p *Processor) UPI() uint64 {
	return p.upi
}

// Queue for packets sent to this processor.
func (p *Processor) Inbox() chan<- master.Packet {
	return p.inbox
}

// Set debug options from comma separated list of option names.
func (p *Processor) Debug(opts string) error {
	mask, err := debugMask(opts)
	if err != nil {
		return err
	}
	p.lock.Lock()
	p.debugMsk = mask
	p.lock.Unlock()
	return nil
}

// Check comma separated list of debug option names.
func CheckDebug(opts string) error {
	_, err := debugMask(opts)
	return err
}

func debugMask(opts string) (int, error) {
	mask := 0
	for _, opt := range strings.Split(opts, ",") {
		opt = strings.ToUpper(strings.TrimSpace(opt))
		if opt == "" {
			continue
		}
		m, ok := debugOption[opt]
		if !ok {
			return 0, fmt.Errorf("CPU debug option invalid: %s", opt)
		}
		mask |= m
	}
	return mask, nil
}

// Run processor loop until context is cancelled or Quit is received.
func (p *Processor) Run(ctx context.Context) error {
	slog.Info("Processor loop started", "upi", p.upi)
	defer slog.Info("Processor loop ended", "upi", p.upi)
	for {
		select {
		case <-ctx.Done():
			return nil
		case pkt := <-p.inbox:
			if pkt.Msg == master.Quit {
				return nil
			}
			p.processPacket(pkt)
			continue
		default:
		}

		if p.Cycle() {
			continue
		}

		// Stopped, wait for something to do.
		select {
		case <-ctx.Done():
			return nil
		case pkt := <-p.inbox:
			if pkt.Msg == master.Quit {
				return nil
			}
			p.processPacket(pkt)
		case <-time.After(idleDelay):
		}
	}
}

// Handle packet from host.
func (p *Processor) processPacket(pkt master.Packet) {
	switch pkt.Msg {
	case master.Start:
		p.Start()
	case master.Stop:
		p.Stop()
	case master.Clear:
		p.Clear()
	case master.Continue:
		p.SetRunMode(Normal)
		p.Start()
	case master.Step:
		p.SetRunMode(SingleInstruction)
		p.Start()
	case master.TimeClock:
		p.lock.Lock()
		p.timeClock(time.Now())
		p.lock.Unlock()
	}
}

// Execute one cycle. Returns false if processor is stopped.
func (p *Processor) Cycle() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	if !p.running {
		return false
	}
	p.cycle()
	return true
}

// Take an interrupt, or fetch, or execute the instruction in F0.
func (p *Processor) cycle() {
	if p.checkInterrupts() {
		return
	}

	var err error
	if !p.ikr.InstructionInF0() {
		err = p.fetch()
	} else {
		err = p.execute()
	}
	if err != nil {
		p.fault(err)
	}
}

// Fetch instruction at PAR into F0.
func (p *Processor) fetch() error {
	pc := p.par.PC()
	var br bank.BaseRegister
	if p.dr.BasicModeEnabled() {
		idx := p.findBasicModeBank(pc, true)
		if idx == 0 {
			return interrupt.NewReferenceViolation(interrupt.StorageLimitsViolation, true)
		}
		br = p.br[idx]
	} else {
		br = p.br[0]
		if err := br.CheckLimits(pc, true); err != nil {
			return err
		}
	}
	if err := br.CheckAccess(true, true, false, p.key()); err != nil {
		return err
	}

	addr := br.Address(pc)
	p.checkBreakpoint(addr, true, false, false)
	w, err := p.storage.Read(addr)
	if err != nil {
		slog.Warn("Instruction fetch failed", "upi", p.upi, "address", addr.String(), "error", err)
		return interrupt.NewHardwareCheck()
	}

	p.inst = word.Instruction(w)
	p.ikr.SetInstructionInF0(true)
	p.midInstruction = false
	p.preventIncrement = false
	if (p.debugMsk & debugInst) != 0 {
		text := disassembler.Disassemble(p.inst, p.dr.BasicModeEnabled())
		debug.Debugf("CPU", p.debugMsk, debugInst, "%o %06o %012o %s", p.par.LBDI(), pc, w, text)
	}
	return nil
}

// Execute instruction in F0.
func (p *Processor) execute() error {
	h := lookup(p.dr.BasicModeEnabled(), p.inst)
	if h == nil {
		return interrupt.NewInvalidInstruction(interrupt.UndefinedFunctionCode)
	}

	err := h.fn(p)
	if errors.Is(err, interrupt.ErrUnresolvedAddress) {
		// Indirect addressing, resume on next cycle.
		p.midInstruction = true
		if p.dr.QuantumTimerEnabled() {
			p.qt--
		}
		return nil
	}

	if s, ok := interrupt.AsStop(err); ok {
		p.complete(h)
		p.stop(s.Reason, s.Detail)
		return nil
	}

	if err != nil {
		return err
	}
	p.complete(h)
	return nil
}

// Finish instruction.
func (p *Processor) complete(h *handler) {
	p.releaseLocks()
	if !p.preventIncrement {
		p.par.SetPC(p.par.PC() + 1)
	}
	p.preventIncrement = false
	if p.resumeF0 {
		p.resumeF0 = false
		p.midInstruction = true
	} else {
		p.ikr.SetInstructionInF0(false)
		p.midInstruction = false
	}
	if p.dr.QuantumTimerEnabled() {
		p.qt -= int64(h.quantum)
	}
	if p.mode == SingleInstruction {
		p.stop(interrupt.StopDebug, 0)
	}
}

// Abandon instruction in F0 and post the error.
func (p *Processor) fault(err error) {
	p.releaseLocks()
	p.ikr.SetInstructionInF0(false)
	p.midInstruction = false
	p.preventIncrement = false
	p.resumeF0 = false

	if s, ok := interrupt.AsStop(err); ok {
		p.stop(s.Reason, s.Detail)
		return
	}

	mi, ok := interrupt.AsInterrupt(err)
	if !ok {
		slog.Error("Processor internal error", "upi", p.upi, "error", err)
		mi = interrupt.NewHardwareCheck()
	}

	// Signal returns to the following instruction.
	if mi.Class == interrupt.Signal {
		p.par.SetPC(p.par.PC() + 1)
	}
	p.raise(mi)
}

// Halt processor.
func (p *Processor) stop(reason interrupt.StopReason, detail uint64) {
	p.running = false
	p.stopReason = reason
	p.stopDetail = detail & word.Mask
	p.releaseLocks()
	slog.Info("Processor stopped", "upi", p.upi, "reason", reason.String(),
		"detail", fmt.Sprintf("%012o", p.stopDetail))
}

// Reset processor state.
func (p *Processor) clear() {
	p.grs = register.GRS{}
	for i := range p.br {
		p.br[i] = bank.VoidBaseRegister()
	}
	for i := range p.abt {
		p.abt[i] = bank.ActiveBaseTableEntry{}
	}
	p.dr = 0
	p.ikr = 0
	p.par = 0
	p.qt = 0
	p.inst = 0
	p.midInstruction = false
	p.preventIncrement = false
	p.resumeF0 = false
	p.pending = nil
	p.last = nil
	p.jumpHistory = [jumpHistorySize]uint64{}
	p.jumpNext = 0
	p.jumpCount = 0
	p.jumpThreshold = false
	p.running = false
	p.stopReason = interrupt.StopCleared
	p.stopDetail = 0
	p.releaseLocks()
}

// Access key from indicator key register.
func (p *Processor) key() register.AccessInfo {
	return register.NewAccessInfo(p.ikr.AccessKey())
}

func (p *Processor) releaseLocks() {
	if p.arbiter == nil {
		return
	}
	if (p.debugMsk&debugLock) != 0 && p.arbiter.Holds(p.upi) != 0 {
		debug.Debugf("CPU", p.debugMsk, debugLock, "UPI %o release locks", p.upi)
	}
	p.arbiter.Release(p.upi)
}

// Lock absolute addresses for the current instruction.
func (p *Processor) lockStorage(addrs ...bank.AbsoluteAddress) {
	if p.arbiter == nil {
		return
	}
	debug.Debugf("CPU", p.debugMsk, debugLock, "UPI %o lock %v", p.upi, addrs)
	p.arbiter.Lock(p.upi, addrs...)
}

// Read storage word for an operand.
func (p *Processor) readWord(addr bank.AbsoluteAddress) (uint64, error) {
	p.checkBreakpoint(addr, false, true, false)
	w, err := p.storage.Read(addr)
	if err != nil {
		slog.Warn("Storage read failed", "upi", p.upi, "address", addr.String(), "error", err)
		return 0, interrupt.NewHardwareCheck()
	}
	return w, nil
}

// Write storage word for an operand.
func (p *Processor) writeWord(addr bank.AbsoluteAddress, value uint64) error {
	p.checkBreakpoint(addr, false, false, true)
	if err := p.storage.Write(addr, value&word.Mask); err != nil {
		slog.Warn("Storage write failed", "upi", p.upi, "address", addr.String(), "error", err)
		return interrupt.NewHardwareCheck()
	}
	return nil
}
