/*
   S2200 load, store and jump instructions.

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
	"github.com/rcornwell/S2200/emu/interrupt"
	"github.com/rcornwell/S2200/emu/register"
	"github.com/rcornwell/S2200/emu/word"
)

// Load A register.
func (p *Processor) opLA() error {
	v, err := p.fetchOperand(true)
	if err != nil {
		return err
	}
	p.grs[p.aIndex(p.inst.A())] = v
	return nil
}

// Load X register.
func (p *Processor) opLX() error {
	v, err := p.fetchOperand(true)
	if err != nil {
		return err
	}
	p.grs[p.xIndex(p.inst.A())] = v
	return nil
}

// Load R register.
func (p *Processor) opLR() error {
	v, err := p.fetchOperand(true)
	if err != nil {
		return err
	}
	p.grs[p.rIndex(p.inst.A())] = v
	return nil
}

// Store A register.
func (p *Processor) opSA() error {
	return p.storeOperand(p.grs[p.aIndex(p.inst.A())])
}

// Store X register.
func (p *Processor) opSX() error {
	return p.storeOperand(p.grs[p.xIndex(p.inst.A())])
}

// Store R register.
func (p *Processor) opSR() error {
	return p.storeOperand(p.grs[p.rIndex(p.inst.A())])
}

// Store zero.
func (p *Processor) opSZ() error {
	return p.storeOperand(0)
}

// Transfer to target in current bank.
func (p *Processor) jump(target uint64) {
	p.addJumpHistory(p.par.Word())
	p.par.SetPC(target)
	p.preventIncrement = true
}

// Jump.
func (p *Processor) opJ() error {
	target, err := p.jumpOperand()
	if err != nil {
		return err
	}
	p.jump(target)
	return nil
}

// Jump if A(a) zero.
func (p *Processor) opJZ() error {
	target, err := p.jumpOperand()
	if err != nil {
		return err
	}
	if word.IsZero(p.grs[p.aIndex(p.inst.A())]) {
		p.jump(target)
	}
	return nil
}

// Jump if A(a) not zero.
func (p *Processor) opJNZ() error {
	target, err := p.jumpOperand()
	if err != nil {
		return err
	}
	if !word.IsZero(p.grs[p.aIndex(p.inst.A())]) {
		p.jump(target)
	}
	return nil
}

// Halt and jump, processor stops with PC at target.
func (p *Processor) opHLTJ() error {
	if err := p.privileged(); err != nil {
		return err
	}
	target, err := p.jumpOperand()
	if err != nil {
		return err
	}
	p.jump(target)
	return interrupt.NewStop(interrupt.StopHaltJumpExecuted, target)
}

// Load modifier and jump, X(a) modifier receives return address.
func (p *Processor) opLMJ() error {
	target, err := p.jumpOperand()
	if err != nil {
		return err
	}
	idx := p.xIndex(p.inst.A())
	p.grs[idx] = register.SetXM(p.grs[idx], p.par.PC()+1)
	p.jump(target)
	return nil
}

// No operation, indexing still applies.
func (p *Processor) opNOP() error {
	_, err := p.jumpOperand()
	return err
}
