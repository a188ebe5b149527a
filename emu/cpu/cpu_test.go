/*
   S2200 instruction processor test cases.

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
	"testing"
	"time"

	"github.com/rcornwell/S2200/emu/arbiter"
	"github.com/rcornwell/S2200/emu/bank"
	"github.com/rcornwell/S2200/emu/interrupt"
	"github.com/rcornwell/S2200/emu/master"
	"github.com/rcornwell/S2200/emu/memory"
	"github.com/rcornwell/S2200/emu/opcodemap"
	"github.com/rcornwell/S2200/emu/register"
	"github.com/rcornwell/S2200/emu/word"
)

// Storage layout of the test machine, all in MSP 0 segment 0.
const (
	testSize  uint64 = 0200000
	bdtBase   uint64 = 0       // Level 0 bank descriptor table, B16.
	icsBase   uint64 = 020000  // Interrupt control stack, B26.
	rcsBase   uint64 = 030000  // Return control stack, B25.
	progBase  uint64 = 040000  // Extended program bank.
	tgtBase   uint64 = 050000  // Extended call target, limits 0 to 0143.
	dataBase  uint64 = 060000  // Data bank based on B2.
	gateBase  uint64 = 070000  // Gate bank.
	irqBase   uint64 = 0100000 // Interrupt handler bank.
	basicBase uint64 = 0110000 // Basic mode bank.
)

// Bank descriptor indexes of the test banks.
const (
	tgtBDI   uint64 = 0100
	progBDI  uint64 = 0101
	gateBDI  uint64 = 0102
	indBDI   uint64 = 0103
	irqBDI   uint64 = 0104
	basicBDI uint64 = 0105
)

// Top of both stacks.
const stackTop uint64 = 01000

type testMachine struct {
	t   *testing.T
	msp *memory.MSP
	mem *memory.Unit
	arb *arbiter.Arbiter
	p   *Processor
}

// Build a processor with the level 0 BDT, ICS, RCS and program banks set up.
func newTestMachine(t *testing.T, services SystemServices) *testMachine {
	t.Helper()
	msp, err := memory.NewMSP(0, testSize)
	if err != nil {
		t.Fatalf("Unable to create storage: %v", err)
	}
	m := &testMachine{t: t, msp: msp, mem: memory.NewUnit(msp), arb: arbiter.New()}
	m.p = New(1, m.mem, m.arb, services)
	p := m.p

	p.br[l0BDTBaseRegister] = m.baseRegister(bdtBase, 0, 07777)
	p.br[icsBaseRegister] = m.baseRegister(icsBase, 0, 0777)
	p.br[rcsBaseRegister] = m.baseRegister(rcsBase, 0, 0777)
	p.br[2] = m.baseRegister(dataBase, 0, 0777)
	p.grs[icsIndexRegister] = register.SetXI(stackTop, bank.ICSFrameSize)
	p.grs[register.X0+rcsIndexRegister] = stackTop
	p.grs[register.EX0+rcsIndexRegister] = stackTop

	m.defineBank(progBDI, bank.ExtendedMode, progBase, 0, 0777)
	m.defineBank(tgtBDI, bank.ExtendedMode, tgtBase, 0, 0143)
	m.defineBank(irqBDI, bank.ExtendedMode, irqBase, 0, 0777)
	for class := range uint64(040) {
		m.write(bdtBase+class, uint64(bank.NewVirtualAddress(0, irqBDI, class)))
	}
	return m
}

// Base register with full access for key 0.
func (m *testMachine) baseRegister(base, lower, upper uint64) bank.BaseRegister {
	all := register.NewAccessPermissions(07)
	all.Enter = false
	return bank.NewBaseRegister(bank.NewAbsoluteAddress(0, 0, base), false, lower, upper,
		register.AccessInfo{}, all, all)
}

// Write level 0 bank descriptor with enter, read and write permission.
// Lower is the unnormalized 9 bit limit.
func (m *testMachine) defineBank(bdi uint64, bt bank.BankType, base, lower, upper uint64) bank.BankDescriptor {
	var bd bank.BankDescriptor
	bd.SetType(bt)
	bd.SetGeneralPermissions(register.NewAccessPermissions(07))
	bd.SetSpecialPermissions(register.NewAccessPermissions(07))
	bd.SetLimits(lower, upper)
	bd.SetBaseAddress(bank.NewAbsoluteAddress(0, 0, base))
	m.putDescriptor(bdi, bd)
	return bd
}

func (m *testMachine) putDescriptor(bdi uint64, bd bank.BankDescriptor) {
	m.write(bdtBase+bdi*bank.DescriptorSize, bd[:]...)
}

func (m *testMachine) descriptor(bdi uint64) bank.BankDescriptor {
	var bd bank.BankDescriptor
	for i := range bd {
		bd[i] = m.read(bdtBase + bdi*bank.DescriptorSize + uint64(i))
	}
	return bd
}

func (m *testMachine) write(offset uint64, words ...uint64) {
	m.t.Helper()
	for i, w := range words {
		if err := m.msp.Write(0, offset+uint64(i), w); err != nil {
			m.t.Fatalf("Write %o failed: %v", offset, err)
		}
	}
}

func (m *testMachine) read(offset uint64) uint64 {
	m.t.Helper()
	w, err := m.msp.Read(0, offset)
	if err != nil {
		m.t.Fatalf("Read %o failed: %v", offset, err)
	}
	return w
}

// Base the extended bank in B0 and start at pc.
func (m *testMachine) enter(bdi, pc uint64) {
	bd := m.descriptor(bdi)
	m.p.br[0] = bank.BaseRegisterFromDescriptor(&bd)
	m.p.par = register.NewProgramAddress(0, bdi, pc)
	m.p.running = true
}

// Load instructions into the program bank starting at pc.
func (m *testMachine) program(pc uint64, inst ...word.Instruction) {
	for i, iw := range inst {
		m.write(progBase+pc+uint64(i), iw.Word())
	}
}

// Run cycles until the processor stops or limit is reached.
func (m *testMachine) run(limit int) {
	for i := 0; i < limit && m.p.running; i++ {
		m.p.cycle()
	}
}

// Fetch and execute one instruction.
func (m *testMachine) step() {
	m.p.cycle()
	for m.p.running && m.p.ikr.InstructionInF0() {
		m.p.cycle()
	}
}

func (m *testMachine) pendingClass() interrupt.Class {
	if m.p.pending == nil {
		return 0777
	}
	return m.p.pending.Class
}

// Load, store, jump and halt in extended mode.
func TestCycleLoadStoreJump(t *testing.T) {
	m := newTestMachine(t, nil)
	m.program(010,
		word.NewInstruction(opcodemap.OpLA, word.JU, 2, 0, 0, 0, 0123),
		word.NewExtended(opcodemap.OpSA, 0, 2, 0, 0, 0, 2, 020),
		word.NewInstruction(opcodemap.OpJump, 015, 004, 0, 0, 0, 030))
	m.program(030,
		word.NewExtended(opcodemap.OpLA, 0, 3, 0, 0, 0, 0, 5),
		word.NewInstruction(opcodemap.OpHalt, 017, 017, 0, 0, 0, 0))
	m.p.grs[5] = 0777
	m.enter(progBDI, 010)
	m.run(20)

	p := m.p
	if p.running {
		t.Fatalf("Processor did not halt PAR: %012o", p.par.Word())
	}
	if p.stopReason != interrupt.StopDevelopment {
		t.Errorf("Stop reason got: %s wanted: %s", p.stopReason, interrupt.StopDevelopment)
	}
	if v := p.grs[register.A0+2]; v != 0123 {
		t.Errorf("LA,U A2 got: %o wanted: %o", v, 0123)
	}
	if v := m.read(dataBase + 020); v != 0123 {
		t.Errorf("SA A2 got: %o wanted: %o", v, 0123)
	}
	if v := p.grs[register.A0+3]; v != 0777 {
		t.Errorf("LA A3 from GRS got: %o wanted: %o", v, 0777)
	}
	if p.par.PC() != 032 {
		t.Errorf("PC got: %o wanted: %o", p.par.PC(), 032)
	}
}

// Partial word stores keep the rest of the word.
func TestCyclePartialStore(t *testing.T) {
	m := newTestMachine(t, nil)
	m.write(dataBase+040, 0_111111_222222)
	m.program(010,
		word.NewInstruction(opcodemap.OpLA, word.JU, 1, 0, 0, 0, 0777),
		word.NewExtended(opcodemap.OpSA, word.JH1, 1, 0, 0, 0, 2, 040),
		word.NewExtended(opcodemap.OpLX, word.JH2, 4, 0, 0, 0, 2, 040),
		word.NewExtended(opcodemap.OpSZ, word.JH2, 0, 0, 0, 0, 2, 041))
	m.write(dataBase+041, 0_333333_444444)
	m.enter(progBDI, 010)
	for range 4 {
		m.step()
	}
	if v := m.read(dataBase + 040); v != 0_000777_222222 {
		t.Errorf("SA,H1 got: %012o wanted: %012o", v, uint64(0_000777_222222))
	}
	if v := m.p.grs[4]; v != 0222222 {
		t.Errorf("LX,H2 got: %012o wanted: %012o", v, uint64(0222222))
	}
	if v := m.read(dataBase + 041); v != 0_333333_000000 {
		t.Errorf("SZ,H2 got: %012o wanted: %012o", v, uint64(0_333333_000000))
	}
}

// Index register increment after use.
func TestCycleIndexIncrement(t *testing.T) {
	m := newTestMachine(t, nil)
	m.write(dataBase+0100, 1, 2, 3)
	m.p.grs[5] = 0_000001_000100
	m.program(010,
		word.NewExtended(opcodemap.OpLA, 0, 0, 5, 1, 0, 2, 0),
		word.NewExtended(opcodemap.OpLA, 0, 1, 5, 1, 0, 2, 0),
		word.NewExtended(opcodemap.OpLA, 0, 2, 5, 0, 0, 2, 0))
	m.enter(progBDI, 010)
	for range 3 {
		m.step()
	}
	for i := range uint64(3) {
		if v := m.p.grs[register.A0+i]; v != i+1 {
			t.Errorf("A%d got: %o wanted: %o", i, v, i+1)
		}
	}
	if v := register.XM(m.p.grs[5]); v != 0102 {
		t.Errorf("X5 modifier got: %o wanted: %o", v, 0102)
	}
}

// Basic mode indirect addressing suspends the instruction between cycles.
func TestCycleBasicIndirect(t *testing.T) {
	m := newTestMachine(t, nil)
	p := m.p
	p.br[12] = m.baseRegister(basicBase, 01000, 01777)
	p.dr.SetBasicModeEnabled(true)
	p.dr.SetQuantumTimerEnabled(true)
	p.qt = 1000
	p.par = register.NewProgramAddress(0, 0, 01000)
	p.running = true

	m.write(basicBase, word.NewInstruction(opcodemap.OpLA, 0, 1, 0, 0, 1, 01100).Word())
	m.write(basicBase+0100, 01200)
	m.write(basicBase+0200, 0123456)

	p.cycle() // Fetch.
	p.cycle() // Indirect word.
	if !p.midInstruction || !p.ikr.InstructionInF0() {
		t.Fatalf("Instruction not suspended")
	}
	if p.inst.U() != 01200 || p.inst.I() != 0 {
		t.Errorf("Indirect fields not replaced got: %012o", p.inst.Word())
	}
	if p.qt != 999 {
		t.Errorf("Quantum after indirect got: %d wanted: %d", p.qt, 999)
	}
	p.cycle() // Complete.
	if p.midInstruction || p.ikr.InstructionInF0() {
		t.Errorf("Instruction not completed")
	}
	if v := p.grs[register.A0+1]; v != 0123456 {
		t.Errorf("LA A1 got: %o wanted: %o", v, 0123456)
	}
	if p.par.PC() != 01001 {
		t.Errorf("PC got: %o wanted: %o", p.par.PC(), 01001)
	}
	if p.qt != 979 {
		t.Errorf("Quantum after complete got: %d wanted: %d", p.qt, 979)
	}
}

// Basic mode selects from B12 to B15 by table order.
func TestFindBasicModeBank(t *testing.T) {
	m := newTestMachine(t, nil)
	p := m.p
	p.br[12] = m.baseRegister(basicBase, 01000, 01777)
	p.br[13] = m.baseRegister(basicBase, 02000, 02777)
	p.br[14] = m.baseRegister(basicBase, 03000, 03777)
	p.br[15] = m.baseRegister(basicBase, 04000, 04777)

	tests := []struct {
		rel  uint64
		want uint64
	}{
		{01000, 12}, {01777, 12}, {02000, 13}, {03456, 14}, {04777, 15}, {0777, 0}, {05000, 0},
	}
	for _, sel := range []bool{false, true} {
		p.dr.SetBasicModeBaseRegisterSelection(sel)
		for _, test := range tests {
			if r := p.findBasicModeBank(test.rel, false); r != test.want {
				t.Errorf("DB31=%v rel %o got: B%d wanted: B%d", sel, test.rel, r, test.want)
			}
		}
	}

	// Second pair toggles DB31 when updating.
	p.dr.SetBasicModeBaseRegisterSelection(false)
	if r := p.findBasicModeBank(03000, true); r != 14 || p.dr.BasicModeBaseRegisterSelection() {
		t.Errorf("B14 from primary table changed selection got: B%d", r)
	}
	if r := p.findBasicModeBank(02000, true); r != 13 || !p.dr.BasicModeBaseRegisterSelection() {
		t.Errorf("B13 from primary table did not toggle selection got: B%d", r)
	}
	if r := p.findBasicModeBank(01000, true); r != 12 || p.dr.BasicModeBaseRegisterSelection() {
		t.Errorf("B12 from secondary table did not toggle selection got: B%d", r)
	}
}

// Undefined codes raise invalid instruction.
func TestCycleUndefined(t *testing.T) {
	m := newTestMachine(t, nil)
	m.program(010, word.NewInstruction(076, 0, 0, 0, 0, 0, 0))
	m.enter(progBDI, 010)
	m.step()
	if m.pendingClass() != interrupt.InvalidInstruction {
		t.Errorf("Pending got: %o wanted: %o", m.pendingClass(), interrupt.InvalidInstruction)
	}
	if m.p.par.PC() != 010 {
		t.Errorf("PC moved got: %o", m.p.par.PC())
	}
}

// Fetch outside the bank is a reference violation.
func TestCycleFetchLimits(t *testing.T) {
	m := newTestMachine(t, nil)
	m.enter(tgtBDI, 0144)
	m.p.cycle()
	if m.pendingClass() != interrupt.ReferenceViolation {
		t.Fatalf("Pending got: %o wanted: %o", m.pendingClass(), interrupt.ReferenceViolation)
	}
	if m.p.pending.ShortStatus != 05 {
		t.Errorf("Short status got: %o wanted: %o", m.p.pending.ShortStatus, 05)
	}
}

// Halt and jump stops with PC at the target.
func TestCycleHaltJump(t *testing.T) {
	m := newTestMachine(t, nil)
	m.program(010, word.NewInstruction(opcodemap.OpJump, 015, 005, 0, 0, 0, 0200))
	m.enter(progBDI, 010)
	m.run(5)
	if m.p.running || m.p.stopReason != interrupt.StopHaltJumpExecuted {
		t.Errorf("Stop reason got: %s wanted: %s", m.p.stopReason, interrupt.StopHaltJumpExecuted)
	}
	if m.p.stopDetail != 0200 || m.p.par.PC() != 0200 {
		t.Errorf("HLTJ detail: %o PC: %o wanted: %o", m.p.stopDetail, m.p.par.PC(), 0200)
	}

	// Privileged.
	m = newTestMachine(t, nil)
	m.program(010, word.NewInstruction(opcodemap.OpJump, 015, 005, 0, 0, 0, 0200))
	m.enter(progBDI, 010)
	m.p.dr.SetProcessorPrivilege(3)
	m.step()
	if m.pendingClass() != interrupt.InvalidInstruction || m.p.pending.ShortStatus != interrupt.InvalidProcessorPrivilege {
		t.Errorf("HLTJ at privilege 3 did not fault")
	}
}

// Signal returns to the next instruction.
func TestCycleSignal(t *testing.T) {
	m := newTestMachine(t, nil)
	m.program(010, word.NewExtended(opcodemap.OpSys, 015, 017, 0, 0, 0, 0, 042))
	m.enter(progBDI, 010)
	m.step()
	if m.pendingClass() != interrupt.Signal {
		t.Fatalf("Pending got: %o wanted: %o", m.pendingClass(), interrupt.Signal)
	}
	if m.p.pending.ISW0 != 042 {
		t.Errorf("Signal operand got: %o wanted: %o", m.p.pending.ISW0, 042)
	}
	if m.p.par.PC() != 011 {
		t.Errorf("PC got: %o wanted: %o", m.p.par.PC(), 011)
	}
}

// Test and set sets S1 and locks are gone after the instruction.
func TestCycleTestAndSet(t *testing.T) {
	m := newTestMachine(t, nil)
	ts := word.NewExtended(opcodemap.OpSys, 017, 000, 0, 0, 0, 2, 040)
	m.program(010, ts, ts)
	m.write(dataBase+040, 0_000000_123456)
	m.enter(progBDI, 010)
	m.step()
	if v := m.read(dataBase + 040); v != 0_010000_123456 {
		t.Errorf("TS got: %012o wanted: %012o", v, uint64(0_010000_123456))
	}
	if m.arb.Holds(m.p.upi) != 0 {
		t.Errorf("Storage locks held after instruction")
	}
	if m.p.pending != nil {
		t.Errorf("Unexpected interrupt %v", m.p.pending)
	}
	m.step()
	if m.pendingClass() != interrupt.TestAndSet {
		t.Fatalf("Pending got: %o wanted: %o", m.pendingClass(), interrupt.TestAndSet)
	}
	if m.p.pending.ISW1 != dataBase+040 {
		t.Errorf("Test and set address got: %o wanted: %o", m.p.pending.ISW1, dataBase+040)
	}
	if m.arb.Holds(m.p.upi) != 0 {
		t.Errorf("Storage locks held after interrupt")
	}
}

// Single instruction mode stops after each instruction.
func TestCycleSingleInstruction(t *testing.T) {
	m := newTestMachine(t, nil)
	m.program(010,
		word.NewInstruction(opcodemap.OpLA, word.JU, 1, 0, 0, 0, 1),
		word.NewInstruction(opcodemap.OpLA, word.JU, 2, 0, 0, 0, 2))
	m.enter(progBDI, 010)
	m.p.mode = SingleInstruction
	m.run(10)
	if m.p.stopReason != interrupt.StopDebug || m.p.par.PC() != 011 {
		t.Errorf("Stop: %s PC: %o wanted Debug at 11", m.p.stopReason, m.p.par.PC())
	}
	if m.p.grs[register.A0+2] != 0 {
		t.Errorf("Second instruction executed")
	}
}

// Fetch breakpoint with halt stops before execution.
func TestCycleBreakpoint(t *testing.T) {
	m := newTestMachine(t, nil)
	m.program(010,
		word.NewInstruction(opcodemap.OpLA, word.JU, 1, 0, 0, 0, 1),
		word.NewInstruction(opcodemap.OpLA, word.JU, 2, 0, 0, 0, 2))
	m.enter(progBDI, 010)
	m.p.SetBreakpoint(&Breakpoint{Address: bank.NewAbsoluteAddress(0, 0, progBase+011), Fetch: true, Halt: true})
	m.run(10)
	if m.p.stopReason != interrupt.StopBreakpoint {
		t.Errorf("Stop reason got: %s wanted: %s", m.p.stopReason, interrupt.StopBreakpoint)
	}
	if m.p.grs[register.A0+1] != 1 || m.p.grs[register.A0+2] != 0 {
		t.Errorf("Breakpoint stopped at wrong instruction")
	}

	// Without halt an interrupt is posted.
	m = newTestMachine(t, nil)
	m.program(010, word.NewInstruction(opcodemap.OpLA, word.JU, 1, 0, 0, 0, 1))
	m.enter(progBDI, 010)
	m.p.SetBreakpoint(&Breakpoint{Address: bank.NewAbsoluteAddress(0, 0, dataBase+020), Write: true})
	m.program(011, word.NewExtended(opcodemap.OpSA, 0, 1, 0, 0, 0, 2, 020))
	m.step()
	m.step()
	m.p.cycle()
	if m.pendingClass() != interrupt.Breakpoint {
		t.Errorf("Pending got: %o wanted: %o", m.pendingClass(), interrupt.Breakpoint)
	}
}

// Jumps are recorded oldest first.
func TestJumpHistory(t *testing.T) {
	m := newTestMachine(t, nil)
	m.program(010, word.NewInstruction(opcodemap.OpJump, 015, 004, 0, 0, 0, 020))
	m.program(020, word.NewInstruction(opcodemap.OpJump, 015, 004, 0, 0, 0, 030))
	m.enter(progBDI, 010)
	m.step()
	m.step()
	hist := m.p.JumpHistory()
	want := []uint64{
		register.NewProgramAddress(0, progBDI, 010).Word(),
		register.NewProgramAddress(0, progBDI, 020).Word(),
	}
	if len(hist) != len(want) {
		t.Fatalf("Jump history length got: %d wanted: %d", len(hist), len(want))
	}
	for i := range want {
		if hist[i] != want[i] {
			t.Errorf("Jump history %d got: %012o wanted: %012o", i, hist[i], want[i])
		}
	}
	if len(m.p.JumpHistory()) != 0 {
		t.Errorf("Jump history not emptied")
	}

	// Threshold raises JumpHistoryFull when enabled.
	m.p.SetJumpHistoryInterrupt(true)
	m.p.dr.SetDeferrableInterruptEnabled(true)
	for i := range jumpHistoryThreshold {
		m.p.addJumpHistory(uint64(i))
	}
	if !m.p.checkInterrupts() || m.pendingClass() != interrupt.JumpHistoryFull {
		t.Errorf("Jump history full not raised got: %o", m.pendingClass())
	}
}

// Quantum timer expiry raises an interrupt when deferrable ones are enabled.
func TestQuantumTimer(t *testing.T) {
	m := newTestMachine(t, nil)
	m.program(010, word.NewInstruction(opcodemap.OpLA, word.JU, 1, 0, 0, 0, 1))
	m.enter(progBDI, 010)
	m.p.dr.SetQuantumTimerEnabled(true)
	m.p.qt = 10
	m.step()
	if m.p.qt != -10 {
		t.Fatalf("Quantum got: %d wanted: %d", m.p.qt, -10)
	}
	if m.p.checkInterrupts() {
		t.Errorf("Quantum interrupt taken with DB13 clear")
	}
	m.p.dr.SetDeferrableInterruptEnabled(true)
	if !m.p.checkInterrupts() || m.pendingClass() != interrupt.QuantumTimer {
		t.Errorf("Quantum interrupt not raised got: %o", m.pendingClass())
	}
}

type testServices struct {
	calls   int
	packet  []uint64
	buffer  []uint64
	expired bool
}

func (s *testServices) Call(c Caller, packet []uint64) error {
	s.calls++
	s.packet = append([]uint64(nil), packet...)
	s.buffer = make([]uint64, 2)
	if err := c.ReadVirtual(bank.VirtualAddress(packet[1]), s.buffer); err != nil {
		return err
	}
	packet[0] = word.SetS(packet[0], 3, 0)
	packet[2] = c.UPI()
	return nil
}

func (s *testServices) DayclockExpired(uint64, time.Time) bool {
	e := s.expired
	s.expired = false
	return e
}

// SYSC hands the packet to system services and writes it back.
func TestCycleSystemCall(t *testing.T) {
	svc := &testServices{}
	m := newTestMachine(t, svc)
	m.write(dataBase+0300, 0_000077_000000, uint64(bank.NewVirtualAddress(0, tgtBDI, 4)), 0, 0)
	m.write(tgtBase+4, 0111, 0222)
	m.program(010, word.NewExtended(opcodemap.OpSys, 017, 012, 0, 0, 0, 2, 0300))
	m.enter(progBDI, 010)
	m.step()
	if svc.calls != 1 {
		t.Fatalf("System services not called")
	}
	if svc.buffer[0] != 0111 || svc.buffer[1] != 0222 {
		t.Errorf("Virtual read got: %o %o", svc.buffer[0], svc.buffer[1])
	}
	if v := m.read(dataBase + 0300); v != 0 {
		t.Errorf("Status not written back got: %012o", v)
	}
	if v := m.read(dataBase + 0302); v != 1 {
		t.Errorf("UPI not written back got: %o", v)
	}

	// Dayclock interrupt on timer tick.
	m.p.dr.SetDeferrableInterruptEnabled(true)
	svc.expired = true
	m.p.timeClock(time.Now())
	if m.pendingClass() != interrupt.Dayclock {
		t.Errorf("Dayclock got: %o wanted: %o", m.pendingClass(), interrupt.Dayclock)
	}
}

// Processor loop driven by packets.
func TestRun(t *testing.T) {
	m := newTestMachine(t, nil)
	m.program(010,
		word.NewInstruction(opcodemap.OpLA, word.JU, 1, 0, 0, 0, 1),
		word.NewInstruction(opcodemap.OpHalt, 017, 017, 0, 0, 0, 0))
	m.enter(progBDI, 010)
	m.p.running = false

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.p.Run(ctx) }()
	m.p.Inbox() <- master.Packet{Msg: master.Start, UPI: 1}

	deadline := time.Now().Add(5 * time.Second)
	for {
		reason, _ := m.p.StopReason()
		if reason == interrupt.StopDevelopment {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Processor did not halt")
		}
		time.Sleep(time.Millisecond)
	}
	if v := m.p.GRS(register.A0 + 1); v != 1 {
		t.Errorf("A1 got: %o wanted: %o", v, 1)
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned: %v", err)
	}
}

// Clear resets registers and stops.
func TestClear(t *testing.T) {
	m := newTestMachine(t, nil)
	m.enter(progBDI, 010)
	m.p.RaiseInterrupt(interrupt.NewHardwareCheck())
	m.p.Clear()
	s := m.p.State()
	if s.Running || s.StopReason != interrupt.StopCleared || s.Pending != nil {
		t.Errorf("Processor not cleared")
	}
	if s.PAR != 0 || !s.BR[0].Void || !s.BR[l0BDTBaseRegister].Void {
		t.Errorf("Registers not cleared")
	}
}

// Debug options.
func TestDebugOptions(t *testing.T) {
	m := newTestMachine(t, nil)
	if err := m.p.Debug("inst, bank"); err != nil {
		t.Errorf("Debug options failed: %v", err)
	}
	if m.p.debugMsk != debugInst|debugBank {
		t.Errorf("Debug mask got: %x", m.p.debugMsk)
	}
	if err := m.p.Debug("INST,BOGUS"); err == nil {
		t.Errorf("Invalid debug option accepted")
	}
	if err := CheckDebug("irq,lock"); err != nil {
		t.Errorf("CheckDebug failed: %v", err)
	}
	if err := CheckDebug("trace"); err == nil {
		t.Errorf("CheckDebug accepted invalid option")
	}
}
