/*
   S2200 operand address generation.

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
	"github.com/rcornwell/S2200/emu/register"
	"github.com/rcornwell/S2200/emu/word"
)

// Resolved operand location, either a GRS register or a storage word.
type operand struct {
	grs   bool
	index uint64
	br    bank.BaseRegister
	rel   uint64
}

func (p *Processor) exec() bool {
	return p.dr.ExecRegisterSetSelected()
}

func (p *Processor) xIndex(n uint64) uint64 {
	return register.XIndex(n, p.exec())
}

func (p *Processor) aIndex(n uint64) uint64 {
	return register.AIndex(n, p.exec())
}

func (p *Processor) rIndex(n uint64) uint64 {
	return register.RIndex(n, p.exec())
}

// Select base register for relative address in basic mode. Returns zero
// if no basic mode bank holds the address. When update is set and the
// address is found in the second pair, DB31 is toggled.
func (p *Processor) findBasicModeBank(rel uint64, update bool) uint64 {
	order := [4]uint64{12, 14, 13, 15}
	if p.dr.BasicModeBaseRegisterSelection() {
		order = [4]uint64{13, 15, 12, 14}
	}
	for i, idx := range order {
		if !p.br[idx].Within(rel) {
			continue
		}
		if update && i >= 2 {
			p.dr.SetBasicModeBaseRegisterSelection(!p.dr.BasicModeBaseRegisterSelection())
		}
		return idx
	}
	return 0
}

// True if 24 bit indexing applies to the current instruction.
func (p *Processor) index24() bool {
	return !p.dr.BasicModeEnabled() && p.dr.Exec24BitIndexing() && p.dr.ProcessorPrivilege() < 2
}

// Add X(x) modifier to displacement.
func (p *Processor) addModifier(disp uint64) uint64 {
	x := p.inst.X()
	if x == 0 {
		return disp
	}
	xr := p.grs[p.xIndex(x)]
	if p.index24() {
		return word.Add24(disp, register.XM24(xr))
	}
	return word.Add18(disp, register.XM(xr))
}

// Relative address of data operand.
func (p *Processor) relativeAddress() uint64 {
	if p.dr.BasicModeEnabled() {
		return p.addModifier(p.inst.U())
	}
	return p.addModifier(p.inst.D())
}

// Relative address of jump target.
func (p *Processor) jumpAddress() uint64 {
	return p.addModifier(p.inst.U())
}

// Base register used by extended mode operands.
func (p *Processor) baseIndex() uint64 {
	if p.dr.ProcessorPrivilege() < 2 {
		return p.inst.IB()
	}
	return p.inst.B()
}

// Apply X(x) increment when h is set.
func (p *Processor) incrementIndex() {
	x := p.inst.X()
	if x == 0 || p.inst.H() == 0 {
		return
	}
	idx := p.xIndex(x)
	if p.index24() {
		p.grs[idx] = register.IncrementModifier24(p.grs[idx])
	} else {
		p.grs[idx] = register.IncrementModifier18(p.grs[idx])
	}
}

// Follow one level of basic mode indirection through the word at rel.
// Always returns an error, ErrUnresolvedAddress on success.
func (p *Processor) indirect(br bank.BaseRegister, rel uint64) error {
	p.incrementIndex()
	if err := br.CheckAccess(false, true, false, p.key()); err != nil {
		return err
	}
	w, err := p.readWord(br.Address(rel))
	if err != nil {
		return err
	}
	p.inst = p.inst.SetXHIU(w)
	return interrupt.ErrUnresolvedAddress
}

// Locate operand of the current instruction. grsCheck allows small
// addresses to refer to the GRS.
func (p *Processor) resolve(read, write, grsCheck bool) (operand, error) {
	rel := p.relativeAddress()
	basic := p.dr.BasicModeEnabled()
	pp := p.dr.ProcessorPrivilege()

	if grsCheck && (basic || p.baseIndex() == 0) && rel < 0200 {
		if (read && !register.GRSAccessAllowed(rel, pp, false)) ||
			(write && !register.GRSAccessAllowed(rel, pp, true)) {
			return operand{}, interrupt.NewReferenceViolation(interrupt.GRSViolation, false)
		}
		p.incrementIndex()
		return operand{grs: true, index: rel}, nil
	}

	var br bank.BaseRegister
	if basic {
		idx := p.findBasicModeBank(rel, false)
		if idx == 0 {
			return operand{}, interrupt.NewReferenceViolation(interrupt.StorageLimitsViolation, false)
		}
		br = p.br[idx]
		if p.inst.I() != 0 {
			return operand{}, p.indirect(br, rel)
		}
	} else {
		br = p.br[p.baseIndex()]
	}

	if err := br.CheckLimits(rel, false); err != nil {
		return operand{}, err
	}
	if err := br.CheckAccess(false, read, write, p.key()); err != nil {
		return operand{}, err
	}
	p.incrementIndex()
	return operand{br: br, rel: rel}, nil
}

// Immediate operand for j of 016 or 017.
func (p *Processor) immediateOperand() uint64 {
	var v uint64
	if p.inst.X() == 0 {
		v = p.inst.HIU()
		if p.inst.J() == word.JXU {
			v = word.ExtendHalf(v)
		}
	} else {
		u := p.inst.U()
		if u == word.MaskU {
			u = 0
		}
		v = p.addModifier(u)
		if p.inst.J() == word.JXU && !p.index24() {
			v = word.ExtendHalf(v)
		}
	}
	p.incrementIndex()
	return v
}

// Read word at operand.
func (p *Processor) readOperand(op operand) (uint64, error) {
	if op.grs {
		return p.grs[op.index], nil
	}
	return p.readWord(op.br.Address(op.rel))
}

// Fetch operand selected by the j-field.
func (p *Processor) fetchOperand(grsCheck bool) (uint64, error) {
	if p.inst.J() >= word.JU {
		return p.immediateOperand(), nil
	}
	op, err := p.resolve(true, false, grsCheck)
	if err != nil {
		return 0, err
	}
	w, err := p.readOperand(op)
	if err != nil {
		return 0, err
	}
	return word.GetPartial(w, p.inst.J(), p.dr.QuarterWordMode()), nil
}

// Fetch whole word operand ignoring the j-field.
func (p *Processor) fetchWord() (uint64, error) {
	op, err := p.resolve(true, false, true)
	if err != nil {
		return 0, err
	}
	return p.readOperand(op)
}

// Store value into partial word selected by the j-field. Immediate
// designators store nothing.
func (p *Processor) storeOperand(value uint64) error {
	j := p.inst.J()
	if j >= word.JU {
		p.incrementIndex()
		return nil
	}
	op, err := p.resolve(false, true, true)
	if err != nil {
		return err
	}
	if op.grs {
		p.grs[op.index] = word.SetPartial(p.grs[op.index], value, j, p.dr.QuarterWordMode())
		return nil
	}
	addr := op.br.Address(op.rel)
	if j != word.JW {
		old, err := p.readWord(addr)
		if err != nil {
			return err
		}
		value = word.SetPartial(old, value, j, p.dr.QuarterWordMode())
	}
	return p.writeWord(addr, value)
}

// Jump target of the current instruction.
func (p *Processor) jumpOperand() (uint64, error) {
	rel := p.jumpAddress()
	if p.dr.BasicModeEnabled() && p.inst.I() != 0 {
		idx := p.findBasicModeBank(rel, false)
		if idx == 0 {
			return 0, interrupt.NewReferenceViolation(interrupt.StorageLimitsViolation, false)
		}
		return 0, p.indirect(p.br[idx], rel)
	}
	p.incrementIndex()
	return rel, nil
}

// Read n consecutive storage words at the operand address. Returns the
// words and the location for writing them back.
func (p *Processor) operandWords(n uint64, write bool) ([]uint64, operand, error) {
	op, err := p.resolve(false, false, false)
	if err != nil {
		return nil, op, err
	}
	if err := op.br.CheckRange(op.rel, n, true, write, p.key()); err != nil {
		return nil, op, err
	}
	words := make([]uint64, n)
	for i := range words {
		w, err := p.readWord(op.br.Address(op.rel + uint64(i)))
		if err != nil {
			return nil, op, err
		}
		words[i] = w
	}
	return words, op, nil
}

// Write words back to location returned by operandWords.
func (p *Processor) writeOperandWords(op operand, words []uint64) error {
	for i, w := range words {
		if err := p.writeWord(op.br.Address(op.rel+uint64(i)), w); err != nil {
			return err
		}
	}
	return nil
}

// Bank descriptor for level and BDI in the bank descriptor tables. When
// storage allows it the result is the descriptor in place, not a copy.
func (p *Processor) bankDescriptor(level, bdi uint64) (*bank.BankDescriptor, error) {
	br := p.br[l0BDTBaseRegister+(level&07)]
	rel := bdi * bank.DescriptorSize
	if br.Void || rel < br.Lower || rel+bank.DescriptorSize-1 > br.Upper {
		return nil, interrupt.NewAddressingException(interrupt.FatalAddressing, level, bdi)
	}
	if v, ok := p.storage.(StorageViewer); ok {
		words, err := v.View(br.Address(rel), bank.DescriptorSize)
		if err != nil {
			return nil, interrupt.NewAddressingException(interrupt.FatalAddressing, level, bdi)
		}
		return (*bank.BankDescriptor)(words), nil
	}
	var bd bank.BankDescriptor
	for i := range bd {
		w, err := p.storage.Read(br.Address(rel + uint64(i)))
		if err != nil {
			return nil, interrupt.NewAddressingException(interrupt.FatalAddressing, level, bdi)
		}
		bd[i] = w
	}
	return &bd, nil
}
