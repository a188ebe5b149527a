/*
   S2200 bank manipulation.

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
	"fmt"

	"github.com/rcornwell/S2200/emu/bank"
	"github.com/rcornwell/S2200/emu/interrupt"
	"github.com/rcornwell/S2200/emu/register"
	"github.com/rcornwell/S2200/emu/word"
	"github.com/rcornwell/S2200/util/debug"
)

// Operation requesting bank manipulation.
type bankOp int

const (
	opInterrupt bankOp = iota
	opCALL
	opLOCL
	opGOTO
	opRTN
	opLBJ
	opLDJ
	opLIJ
	opLAE
	opLBE
	opLBU
	opUR
)

var bankOpNames = [...]string{
	opInterrupt: "Interrupt",
	opCALL:      "CALL",
	opLOCL:      "LOCL",
	opGOTO:      "GOTO",
	opRTN:       "RTN",
	opLBJ:       "LBJ",
	opLDJ:       "LDJ",
	opLIJ:       "LIJ",
	opLAE:       "LAE",
	opLBE:       "LBE",
	opLBU:       "LBU",
	opUR:        "UR",
}

func (op bankOp) String() string {
	return bankOpNames[op]
}

// Execution mode change of a transfer.
type transferMode int

const (
	noTransfer transferMode = iota
	basicToBasic
	basicToExtended
	extendedToBasic
	extendedToExtended
)

// State of one bank manipulation.
type bankContext struct {
	op       bankOp
	mi       *interrupt.MachineInterrupt // Interrupt being entered.
	operands []uint64

	call bool // CALL, LOCL, LxJ call or interrupt.
	ret  bool // RTN or LxJ return.
	load bool // LAE, LBE or LBU.
	lxj  bool // LBJ, LDJ or LIJ.

	lxjX    uint64 // GRS index of X(a).
	lxjIS   uint64 // X(a) interface specification.
	lxjBank uint64 // X(a) base register selector.

	brIndex    uint64
	gate       *bank.GateEntry
	priorLevel uint64
	priorBDI   uint64
	rcs        *bank.RCSFrame
	mode       transferMode

	srcLevel  uint64
	srcBDI    uint64
	srcOffset uint64
	srcBD     *bank.BankDescriptor

	tgtLevel  uint64
	tgtBDI    uint64
	tgtOffset uint64
	tgtBD     *bank.BankDescriptor // Nil for a void bank.
}

// Classify operation.
func (p *Processor) newBankContext(op bankOp, operands ...uint64) *bankContext {
	c := &bankContext{op: op, operands: operands}
	switch op {
	case opInterrupt, opCALL, opLOCL:
		c.call = true
	case opRTN:
		c.ret = true
	case opLAE, opLBE, opLBU:
		c.load = true
	case opLBJ, opLDJ, opLIJ:
		c.lxj = true
		c.lxjX = p.xIndex(p.inst.A())
		x := p.grs[c.lxjX]
		c.lxjIS = (x >> 30) & 03
		c.lxjBank = (x >> 33) & 03
		c.call = c.lxjIS < 2
		c.ret = c.lxjIS == 2
	}
	return c
}

// Basic mode base register named by an LxJ instruction.
func (p *Processor) lxjBaseRegister(c *bankContext) uint64 {
	switch c.op {
	case opLBJ:
		return c.lxjBank + 12
	case opLDJ:
		if p.dr.BasicModeBaseRegisterSelection() {
			return 15
		}
		return 14
	default:
		if p.dr.BasicModeBaseRegisterSelection() {
			return 13
		}
		return 12
	}
}

// GRS index of the RCS frame pointer, X25 of the selected register set.
func (p *Processor) rcsIndex() uint64 {
	if p.exec() {
		return register.EX0 + rcsIndexRegister
	}
	return register.X0 + rcsIndexRegister
}

// Enter permission of bank for the current key.
func (p *Processor) canEnter(bd *bank.BankDescriptor) bool {
	return register.EffectivePermissions(p.key(), bd.Lock(),
		bd.GeneralPermissions(), bd.SpecialPermissions()).Enter
}

// Either permission set grants enter.
func anyEnter(bd *bank.BankDescriptor) bool {
	return bd.GeneralPermissions().Enter || bd.SpecialPermissions().Enter
}

type bankStep func(p *Processor, c *bankContext) (int, error)

var bankSteps = [...]bankStep{
	nil,
	bankStep1, bankStep2, bankStep3, bankStep4, bankStep5, bankStep6, bankStep7,
	bankStep8, bankStep9, bankStep10, bankStep11, bankStep12, bankStep13, bankStep14,
	bankStep15, bankStep16, bankStep17, bankStep18, bankStep19, bankStep20, bankStep21,
}

// Run bank manipulation steps until done or an error is returned. Errors
// while entering an interrupt handler become processor stops.
func (p *Processor) bankManipulation(c *bankContext) error {
	step := 1
	for step != 0 {
		next, err := bankSteps[step](p, c)
		if err != nil {
			debug.Debugf("CPU", p.debugMsk, debugBank, "%s step %d: %v", c.op, step, err)
			if c.op == opInterrupt {
				if _, ok := interrupt.AsStop(err); !ok {
					return interrupt.NewStop(interrupt.StopInterruptHandlerInvalidLevelBDI,
						lbdi(c.srcLevel, c.srcBDI))
				}
			}
			return err
		}
		if next == step {
			panic(fmt.Sprintf("bank manipulation step %d does not advance", step))
		}
		step = next
	}
	debug.Debugf("CPU", p.debugMsk, debugBank, "%s B%d <- %o,%05o+%06o", c.op, c.brIndex,
		c.tgtLevel, c.tgtBDI, c.tgtOffset)
	return nil
}

// Validate instruction fields.
func bankStep1(p *Processor, c *bankContext) (int, error) {
	if c.op == opLBU && p.inst.A() < 2 {
		return 0, interrupt.NewInvalidInstruction(interrupt.InvalidBaseRegister)
	}
	if c.lxj && c.lxjIS == 3 {
		return 0, interrupt.NewAddressingException(interrupt.InvalidISValue, 0, 0)
	}
	return 2, nil
}

// Remember the bank being left for the RCS frame.
func bankStep2(p *Processor, c *bankContext) (int, error) {
	switch {
	case c.op == opCALL || c.op == opLOCL:
		c.priorLevel, c.priorBDI = p.par.Level(), p.par.BDI()
	case c.lxj && c.lxjIS < 2:
		e := p.abt[p.lxjBaseRegister(c)]
		c.priorLevel, c.priorBDI = e.Level, e.BDI
	}
	return 3, nil
}

// Determine source L,BDI and offset.
func bankStep3(p *Processor, c *bankContext) (int, error) {
	var va bank.VirtualAddress
	switch {
	case c.op == opInterrupt:
		br := p.br[l0BDTBaseRegister]
		if br.Void {
			return 0, interrupt.NewStop(interrupt.StopL0BaseRegisterInvalid, 0)
		}
		rel := br.Lower + uint64(c.mi.Class)
		if !br.Within(rel) {
			return 0, interrupt.NewStop(interrupt.StopInterruptHandlerOffsetOutOfRange, rel)
		}
		w, err := p.storage.Read(br.Address(rel))
		if err != nil {
			return 0, interrupt.NewStop(interrupt.StopInterruptHandlerHardwareFailure, rel)
		}
		va = bank.VirtualAddress(w)
	case c.op == opUR:
		va = bank.VirtualAddress(c.operands[0])
	case c.ret:
		frame, err := p.popRCS()
		if err != nil {
			return 0, err
		}
		c.rcs = &frame
		va = frame.Reentry
	case c.lxj:
		x := p.grs[c.lxjX]
		level := bank.BasicToExtendedLevel((x&0_400000_000000) != 0, (x&0_040000_000000) != 0)
		va = bank.NewVirtualAddress(level, (x>>18)&07777, c.operands[0])
	default:
		va = bank.VirtualAddress(c.operands[0])
	}
	c.srcLevel, c.srcBDI, c.srcOffset = va.Level(), va.BDI(), va.Offset()
	return 4, nil
}

// Pop frame off the return control stack.
func (p *Processor) popRCS() (bank.RCSFrame, error) {
	br := p.br[rcsBaseRegister]
	if br.Void {
		return bank.RCSFrame{}, interrupt.NewRCSGenericStack(interrupt.RCSOverflow, rcsBaseRegister, 0)
	}
	idx := p.rcsIndex()
	fp := register.XM(p.grs[idx])
	if fp+bank.RCSFrameSize-1 > br.Upper {
		return bank.RCSFrame{}, interrupt.NewRCSGenericStack(interrupt.RCSUnderflow, rcsBaseRegister, fp)
	}
	if fp < br.Lower {
		return bank.RCSFrame{}, interrupt.NewAddressingException(interrupt.FatalAddressing, 0, 0)
	}
	var w [bank.RCSFrameSize]uint64
	for i := range w {
		v, err := p.storage.Read(br.Address(fp + uint64(i)))
		if err != nil {
			return bank.RCSFrame{}, interrupt.NewAddressingException(interrupt.FatalAddressing, 0, 0)
		}
		w[i] = v
	}
	p.grs[idx] = register.SetXM(p.grs[idx], fp+bank.RCSFrameSize)
	return bank.RCSFrameFromWords(w), nil
}

// Level 0 BDIs 1 to 31 are reserved for interrupt vectors.
func bankStep4(p *Processor, c *bankContext) (int, error) {
	if c.srcLevel == 0 && c.srcBDI > 0 && c.srcBDI < 32 {
		if c.op == opInterrupt {
			return 0, interrupt.NewStop(interrupt.StopInterruptHandlerInvalidLevelBDI, lbdi(c.srcLevel, c.srcBDI))
		}
		return 0, interrupt.NewAddressingException(interrupt.InvalidSourceLevelBDI, c.srcLevel, c.srcBDI)
	}
	return 5, nil
}

// Bank 0,0 names the void bank.
func bankStep5(p *Processor, c *bankContext) (int, error) {
	c.tgtLevel, c.tgtBDI, c.tgtOffset = c.srcLevel, c.srcBDI, c.srcOffset
	if c.srcLevel != 0 || c.srcBDI != 0 {
		return 6, nil
	}

	var toBasic bool
	switch {
	case c.op == opInterrupt:
		return 0, interrupt.NewStop(interrupt.StopInterruptHandlerInvalidLevelBDI, 0)
	case c.load:
		return 10, nil
	case c.ret:
		toBasic = c.rcs.Designator.BasicModeEnabled()
	case c.op == opUR:
		toBasic = register.Designator(c.operands[1]).BasicModeEnabled()
	}
	if !toBasic {
		return 0, interrupt.NewAddressingException(interrupt.InvalidSourceLevelBDI, 0, 0)
	}
	return 10, nil
}

// Fetch source bank descriptor.
func bankStep6(p *Processor, c *bankContext) (int, error) {
	bd, err := p.bankDescriptor(c.srcLevel, c.srcBDI)
	if err != nil {
		if c.op == opInterrupt {
			return 0, interrupt.NewStop(interrupt.StopInterruptHandlerInvalidLevelBDI, lbdi(c.srcLevel, c.srcBDI))
		}
		return 0, err
	}
	c.srcBD = bd
	return 7, nil
}

// Dispatch on source bank type.
func bankStep7(p *Processor, c *bankContext) (int, error) {
	c.tgtBD = c.srcBD
	bt := c.srcBD.Type()
	typeInvalid := interrupt.NewAddressingException(interrupt.BDTypeInvalid, c.srcLevel, c.srcBDI)

	if c.op == opInterrupt && bt != bank.ExtendedMode {
		return 0, interrupt.NewStop(interrupt.StopInterruptHandlerInvalidBankType, lbdi(c.srcLevel, c.srcBDI))
	}

	switch bt {
	case bank.ExtendedMode:
	case bank.BasicMode:
		if c.op == opLBU && p.dr.ProcessorPrivilege() > 1 && !anyEnter(c.srcBD) {
			c.tgtBD = nil
		}
		if c.ret && !c.rcs.Designator.BasicModeEnabled() {
			return 0, typeInvalid
		}
	case bank.Gate:
		if c.call || c.op == opGOTO {
			return 9, nil
		}
		if c.ret || c.op == opUR {
			return 0, typeInvalid
		}
	case bank.Indirect:
		if c.call || c.load {
			return 8, nil
		}
		return 0, typeInvalid
	case bank.QueueRepository:
		return 0, typeInvalid
	default:
		if !c.load {
			return 0, typeInvalid
		}
	}
	return 10, nil
}

// Resolve indirect bank to its target.
func bankStep8(p *Processor, c *bankContext) (int, error) {
	if c.srcBD.GeneralFault() {
		return 0, interrupt.NewAddressingException(interrupt.GBitSetIndirect, c.srcLevel, c.srcBDI)
	}
	level, bdi := c.srcBD.TargetLevel(), c.srcBD.TargetBDI()
	bd, err := p.bankDescriptor(level, bdi)
	if err != nil {
		return 0, interrupt.NewAddressingException(interrupt.FatalAddressing, level, bdi)
	}
	c.tgtLevel, c.tgtBDI, c.tgtBD = level, bdi, bd
	fatal := interrupt.NewAddressingException(interrupt.FatalAddressing, level, bdi)

	switch bd.Type() {
	case bank.ExtendedMode:
	case bank.BasicMode:
		if c.load && p.dr.ProcessorPrivilege() > 1 && !anyEnter(bd) {
			c.tgtBD = nil
		}
	case bank.Gate:
		if c.lxj || c.call {
			c.srcLevel, c.srcBDI, c.srcBD = level, bdi, bd
			return 9, nil
		}
	case bank.Indirect, bank.QueueRepository:
		return 0, fatal
	default:
		if !c.load {
			return 0, fatal
		}
	}
	return 10, nil
}

// Pass through gate.
func bankStep9(p *Processor, c *bankContext) (int, error) {
	gbd := c.srcBD
	if gbd.GeneralFault() {
		return 0, interrupt.NewAddressingException(interrupt.GBitSetIndirect, c.srcLevel, c.srcBDI)
	}
	if !p.canEnter(gbd) {
		return 0, interrupt.NewAddressingException(interrupt.EnterAccessDenied, c.srcLevel, c.srcBDI)
	}
	off := c.srcOffset
	if off < gbd.LowerNormalized() || off > gbd.UpperNormalized() || (off&07) != 0 {
		return 0, interrupt.NewAddressingException(interrupt.GateBankBoundaryViolation, c.srcLevel, c.srcBDI)
	}

	var gate bank.GateEntry
	base := gbd.BaseAddress().AddOffset(off - gbd.LowerNormalized())
	for i := range gate {
		w, err := p.storage.Read(base.AddOffset(uint64(i)))
		if err != nil {
			return 0, interrupt.NewAddressingException(interrupt.FatalAddressing, c.srcLevel, c.srcBDI)
		}
		gate[i] = w
	}

	perms := register.EffectivePermissions(p.key(), gate.Lock(), gate.GeneralPermissions(), gate.SpecialPermissions())
	if !perms.Enter {
		return 0, interrupt.NewAddressingException(interrupt.EnterAccessDenied, c.srcLevel, c.srcBDI)
	}
	if (c.op == opGOTO || (c.lxj && c.lxjIS == 1)) && gate.GotoInhibit() {
		return 0, interrupt.NewAddressingException(interrupt.GBitSetGate, c.srcLevel, c.srcBDI)
	}

	target := gate.Target()
	if target.Level() == 0 && target.BDI() < 32 {
		return 0, interrupt.NewAddressingException(interrupt.FatalAddressing, c.srcLevel, c.srcBDI)
	}
	c.gate = &gate
	c.tgtLevel, c.tgtBDI, c.tgtOffset = target.Level(), target.BDI(), target.Offset()
	bd, err := p.bankDescriptor(c.tgtLevel, c.tgtBDI)
	if err != nil {
		return 0, interrupt.NewAddressingException(interrupt.FatalAddressing, c.tgtLevel, c.tgtBDI)
	}
	c.tgtBD = bd
	return 10, nil
}

// Select base register and transfer mode.
func bankStep10(p *Processor, c *bankContext) (int, error) {
	switch c.op {
	case opLAE:
		return 18, nil
	case opLBE:
		c.brIndex = p.inst.A() + 16
		return 18, nil
	case opLBU:
		c.brIndex = p.inst.A()
		return 18, nil
	case opUR, opInterrupt:
		c.brIndex = 0
		return 16, nil
	}

	fromBasic := p.dr.BasicModeEnabled()
	var toBasic bool
	switch {
	case c.ret:
		toBasic = c.rcs.Designator.BasicModeEnabled()
	case c.tgtBD == nil:
		toBasic = fromBasic
	default:
		toBasic = c.tgtBD.Type() == bank.BasicMode
	}

	switch {
	case fromBasic && toBasic:
		c.mode = basicToBasic
		if c.ret {
			c.brIndex = c.rcs.BaseRegister + 12
		} else {
			c.brIndex = p.lxjBaseRegister(c)
		}
	case !fromBasic && toBasic:
		c.mode = extendedToBasic
		switch {
		case c.ret:
			c.brIndex = c.rcs.BaseRegister + 12
		case c.gate != nil:
			c.brIndex = c.gate.BasicModeBaseRegister() + 12
		default:
			c.brIndex = 12
		}
	case fromBasic:
		c.mode = basicToExtended
		c.brIndex = 0
	default:
		c.mode = extendedToExtended
		c.brIndex = 0
	}
	return 11, nil
}

// Vacate the register the transfer leaves.
func bankStep11(p *Processor, c *bankContext) (int, error) {
	switch c.mode {
	case extendedToBasic:
		p.br[0] = bank.VoidBaseRegister()
		p.par.SetLBDI(0, 0)
	case basicToExtended:
		var idx uint64
		switch {
		case c.ret && c.rcs != nil:
			idx = c.rcs.BaseRegister + 12
		case c.lxj:
			idx = p.lxjBaseRegister(c)
		default:
			return 12, nil
		}
		p.br[idx] = bank.VoidBaseRegister()
		p.abt[idx] = bank.ActiveBaseTableEntry{}
	}
	return 12, nil
}

// Push return control stack frame for calls.
func bankStep12(p *Processor, c *bankContext) (int, error) {
	if !c.call {
		return 13, nil
	}
	br := p.br[rcsBaseRegister]
	if br.Void {
		return 0, interrupt.NewRCSGenericStack(interrupt.RCSOverflow, rcsBaseRegister, 0)
	}
	idx := p.rcsIndex()
	xm := register.XM(p.grs[idx])
	if xm < bank.RCSFrameSize || xm-bank.RCSFrameSize < br.Lower {
		return 0, interrupt.NewRCSGenericStack(interrupt.RCSOverflow, rcsBaseRegister,
			(xm-bank.RCSFrameSize)&word.HalfMask)
	}
	fp := xm - bank.RCSFrameSize

	var b uint64
	switch c.mode {
	case extendedToBasic:
		if c.gate != nil {
			b = c.gate.BasicModeBaseRegister()
		}
	case basicToExtended:
		if c.lxj {
			b = p.lxjBaseRegister(c) - 12
		}
	}
	reentry := bank.NewVirtualAddress(c.priorLevel, c.priorBDI, p.par.PC()+1)
	frame := bank.NewRCSFrame(reentry, false, b, p.dr, p.ikr.AccessKey())
	for i, w := range frame.Words() {
		if err := p.storage.Write(br.Address(fp+uint64(i)), w); err != nil {
			return 0, interrupt.NewAddressingException(interrupt.FatalAddressing, 0, 0)
		}
	}
	p.grs[idx] = register.SetXM(p.grs[idx], fp)
	return 13, nil
}

// Link register for basic mode transfers.
func bankStep13(p *Processor, c *bankContext) (int, error) {
	switch {
	case c.lxj && c.mode == basicToBasic:
		v := bank.TranslateToBasicMode(c.priorLevel, c.priorBDI, p.par.PC()+1)
		p.grs[c.lxjX] = v | ((c.brIndex & 03) << 33)
	case c.op == opCALL && c.mode == extendedToBasic:
		p.grs[p.xIndex(11)] = 2 << 30
	}
	return 14, nil
}

// X0 receives the caller's mode and key.
func bankStep14(p *Processor, c *bankContext) (int, error) {
	if c.call {
		var v uint64
		if p.dr.BasicModeEnabled() {
			v = 0_400000_000000
		}
		p.grs[register.X0] = v | p.ikr.AccessKey()
	}
	return 15, nil
}

// Copy gate fields.
func bankStep15(p *Processor, c *bankContext) (int, error) {
	g := c.gate
	if g == nil {
		return 16, nil
	}
	if !g.DesignatorInhibit() {
		p.dr = (p.dr & 0_777702_777777) | (g.Designator() & register.GateMask)
	}
	if !g.AccessKeyInhibit() {
		p.ikr.SetAccessKey(g.AccessKey())
	}
	if !g.LP0Inhibit() {
		p.grs[p.rIndex(0)] = g.LatentParameter0()
	}
	if !g.LP1Inhibit() {
		p.grs[p.rIndex(1)] = g.LatentParameter1()
	}
	return 17, nil
}

// Update designator, key and program address for ungated transfers,
// interrupt entry and UR.
func bankStep16(p *Processor, c *bankContext) (int, error) {
	switch {
	case c.op == opInterrupt:
		p.par = register.NewProgramAddress(c.tgtLevel, c.tgtBDI, c.tgtOffset)
		var dr register.Designator
		dr.SetExecRegisterSetSelected(true)
		dr.SetArithmeticExceptionEnabled(true)
		dr.SetBasicModeEnabled(c.tgtBD.Type() == bank.BasicMode)
		dr.SetBasicModeBaseRegisterSelection(p.dr.BasicModeBaseRegisterSelection())
		dr.SetFaultHandlingInProgress(c.mi.Class == interrupt.HardwareCheck)
		p.dr = dr
		p.ikr = 0
		return 18, nil
	case c.op == opUR:
		p.par = register.ProgramAddress(c.operands[0] & word.Mask)
		p.dr = register.Designator(c.operands[1] & word.Mask)
		ikr := register.IndicatorKey(c.operands[2] & word.Mask)
		ikr.SetShortStatus(p.ikr.ShortStatus())
		p.ikr = ikr
		p.qt = signed36(c.operands[3])
		p.inst = word.Instruction(c.operands[4] & word.Mask)
		return 18, nil
	case c.ret:
		p.ikr.SetAccessKey(c.rcs.AccessKey)
		p.dr = (p.dr &^ register.DB12To17) | c.rcs.Designator
		if p.dr.ProcessorPrivilege() > 1 {
			p.dr.SetExecRegisterSetSelected(false)
		}
	case c.op == opGOTO || c.op == opCALL:
		if c.mode == extendedToBasic {
			p.dr.SetBasicModeEnabled(true)
		}
	case c.lxj && c.mode == basicToExtended:
		p.dr.SetBasicModeEnabled(false)
	}
	return 17, nil
}

// Commit new program counter for transfers.
func bankStep17(p *Processor, c *bankContext) (int, error) {
	if c.mode != noTransfer {
		p.par.SetPC(c.tgtOffset)
		p.preventIncrement = true
	}
	return 18, nil
}

// Record name of the bank now based.
func bankStep18(p *Processor, c *bankContext) (int, error) {
	switch {
	case c.brIndex == 0:
		if c.op != opInterrupt && c.op != opUR {
			p.par.SetLBDI(c.tgtLevel, c.tgtBDI)
		}
	case c.brIndex < 16:
		if c.tgtBD == nil {
			p.abt[c.brIndex] = bank.ActiveBaseTableEntry{}
		} else {
			var off uint64
			if c.load {
				off = c.tgtOffset
			}
			p.abt[c.brIndex] = bank.ActiveBaseTableEntry{Level: c.tgtLevel, BDI: c.tgtBDI, Offset: off}
		}
	}
	return 19, nil
}

// Load base register.
func bankStep19(p *Processor, c *bankContext) (int, error) {
	switch {
	case c.tgtBD == nil:
		p.br[c.brIndex] = bank.VoidBaseRegister()
	case c.load && c.tgtOffset != 0:
		p.br[c.brIndex] = bank.SubsetBaseRegister(c.tgtBD, c.tgtOffset)
	default:
		p.br[c.brIndex] = bank.BaseRegisterFromDescriptor(c.tgtBD)
	}
	return 20, nil
}

// Select basic mode bank pair for the new program counter.
func bankStep20(p *Processor, c *bankContext) (int, error) {
	if c.mode == basicToBasic || c.mode == extendedToBasic {
		p.findBasicModeBank(c.tgtOffset, true)
	}
	return 21, nil
}

// Final checks.
func bankStep21(p *Processor, c *bankContext) (int, error) {
	bd := c.tgtBD
	if bd == nil {
		return 0, nil
	}
	fatal := interrupt.NewAddressingException(interrupt.FatalAddressing, c.tgtLevel, c.tgtBDI)
	transfer := c.mode != noTransfer

	if (c.op == opLBE || c.op == opLBU || transfer) && bd.GeneralFault() {
		return 0, fatal
	}
	enter := p.canEnter(bd)
	basic := bd.Type() == bank.BasicMode

	if transfer && c.gate == nil && !c.ret &&
		(c.mode == basicToExtended || c.mode == extendedToExtended) && !enter {
		return 0, fatal
	}
	if transfer && c.gate == nil && basic && !enter && c.tgtOffset != bd.LowerNormalized() {
		return 0, fatal
	}
	if transfer && (c.gate != nil || !enter) && basic && !p.br[c.brIndex].Within(p.par.PC()) {
		return 0, fatal
	}
	if c.rcs != nil && c.rcs.Trap {
		return 0, fatal
	}
	return 0, nil
}

// Convert 36 bit ones complement value to signed.
func signed36(w uint64) int64 {
	w &= word.Mask
	if (w & word.SignBit) != 0 {
		return -int64(word.Mask &^ w)
	}
	return int64(w)
}

// Convert signed value to 36 bit ones complement.
func unsigned36(v int64) uint64 {
	if v < 0 {
		return word.Mask &^ (uint64(-v) & word.Mask)
	}
	return uint64(v) & word.Mask
}
