/*
   S2200 procedure control and system instructions.

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
	"github.com/rcornwell/S2200/emu/bank"
	"github.com/rcornwell/S2200/emu/interrupt"
	"github.com/rcornwell/S2200/emu/word"
)

// Number of words in the UR operand.
const urOperandSize = 7

// Processor privilege 0 required.
func (p *Processor) privileged() error {
	if p.dr.ProcessorPrivilege() != 0 {
		return interrupt.NewInvalidInstruction(interrupt.InvalidProcessorPrivilege)
	}
	return nil
}

// LxJ: basic mode bank transfer named by X(a).
func (p *Processor) lxj(op bankOp) error {
	target, err := p.jumpOperand()
	if err != nil {
		return err
	}
	p.addJumpHistory(p.par.Word())
	return p.bankManipulation(p.newBankContext(op, target))
}

func (p *Processor) opLBJ() error { return p.lxj(opLBJ) }
func (p *Processor) opLDJ() error { return p.lxj(opLDJ) }
func (p *Processor) opLIJ() error { return p.lxj(opLIJ) }

// Run bank manipulation with the virtual address in (U).
func (p *Processor) bankOperand(op bankOp) error {
	va, err := p.fetchWord()
	if err != nil {
		return err
	}
	if op == opCALL || op == opGOTO {
		p.addJumpHistory(p.par.Word())
	}
	return p.bankManipulation(p.newBankContext(op, va))
}

func (p *Processor) opCALL() error { return p.bankOperand(opCALL) }
func (p *Processor) opGOTO() error { return p.bankOperand(opGOTO) }
func (p *Processor) opLBU() error  { return p.bankOperand(opLBU) }

// Load bank from exec table, B16-B31.
func (p *Processor) opLBE() error {
	if err := p.privileged(); err != nil {
		return err
	}
	return p.bankOperand(opLBE)
}

// Local call, target in the current bank.
func (p *Processor) opLOCL() error {
	target, err := p.jumpOperand()
	if err != nil {
		return err
	}
	p.addJumpHistory(p.par.Word())
	va := bank.NewVirtualAddress(p.par.Level(), p.par.BDI(), target)
	return p.bankManipulation(p.newBankContext(opLOCL, uint64(va)))
}

// Return through the RCS.
func (p *Processor) opRTN() error {
	p.addJumpHistory(p.par.Word())
	return p.bankManipulation(p.newBankContext(opRTN))
}

// Load addressing environment, B1-B15 from 15 words at (U).
func (p *Processor) opLAE() error {
	words, _, err := p.operandWords(15, false)
	if err != nil {
		return err
	}
	for i, w := range words {
		c := p.newBankContext(opLAE, w)
		c.brIndex = uint64(i) + 1
		if err := p.bankManipulation(c); err != nil {
			return err
		}
	}
	return nil
}

// User return, reload activity state from 7 words at (U).
func (p *Processor) opUR() error {
	if err := p.privileged(); err != nil {
		return err
	}
	words, _, err := p.operandWords(urOperandSize, false)
	if err != nil {
		return err
	}
	p.addJumpHistory(p.par.Word())
	if err := p.bankManipulation(p.newBankContext(opUR, words...)); err != nil {
		return err
	}
	p.preventIncrement = true
	p.resumeF0 = p.ikr.InstructionInF0()
	return nil
}

// Test and set. Locks the word for the rest of the instruction.
func (p *Processor) opTS() error {
	op, err := p.resolve(true, true, false)
	if err != nil {
		return err
	}
	addr := op.br.Address(op.rel)
	p.lockStorage(addr)
	w, err := p.readWord(addr)
	if err != nil {
		return err
	}
	if (w & 0_010000_000000) != 0 {
		return interrupt.NewTestAndSet(addr.Segment, addr.Offset)
	}
	return p.writeWord(addr, word.SetS(w, 1, 01))
}

// Signal, interrupt carries the operand.
func (p *Processor) opSGNL() error {
	return interrupt.NewSignal(p.relativeAddress())
}

// Initiate auto recovery.
func (p *Processor) opIAR() error {
	if err := p.privileged(); err != nil {
		return err
	}
	return interrupt.NewStop(interrupt.StopInitiateAutoRecovery, p.inst.U())
}

// System call, packet at (U) is passed to system services.
func (p *Processor) opSYSC() error {
	if err := p.privileged(); err != nil {
		return err
	}
	if p.services == nil {
		return interrupt.NewInvalidInstruction(interrupt.UndefinedFunctionCode)
	}
	packet, op, err := p.operandWords(syscPacketSize, true)
	if err != nil {
		return err
	}
	if err := p.services.Call(caller{p}, packet); err != nil {
		return err
	}
	return p.writeOperandWords(op, packet)
}

// Development halt.
func (p *Processor) opHALT() error {
	if err := p.privileged(); err != nil {
		return err
	}
	return interrupt.NewStop(interrupt.StopDevelopment, p.inst.Word())
}
