/*
   S2200 register tests.

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

import (
	"testing"
)

// Test designator bit accessors.
func TestDesignator(t *testing.T) {
	var dr Designator
	dr.SetBasicModeEnabled(true)
	if !dr.BasicModeEnabled() || dr.Word() != 0_000002_000000 {
		t.Errorf("DB16 not set got: %012o", dr.Word())
	}
	dr.SetProcessorPrivilege(2)
	if dr.ProcessorPrivilege() != 2 || dr.Word() != 0_000012_000000 {
		t.Errorf("Processor privilege not correct got: %012o", dr.Word())
	}
	dr.SetProcessorPrivilege(1)
	if dr.ProcessorPrivilege() != 1 || dr.Word() != 0_000006_000000 {
		t.Errorf("Processor privilege not correct got: %012o", dr.Word())
	}
	dr.SetBasicModeBaseRegisterSelection(true)
	if !dr.BasicModeBaseRegisterSelection() || dr.Word() != 0_000006_000020 {
		t.Errorf("DB31 not set got: %012o", dr.Word())
	}
	dr.SetS3(0_41)
	if dr.S3() != 0_41 || !dr.QuantumTimerEnabled() || dr.BasicModeEnabled() {
		t.Errorf("S3 not correct got: %012o", dr.Word())
	}
	dr.SetBasicModeBaseRegisterSelection(false)
	dr.SetQuantumTimerEnabled(false)
	dr.SetExecRegisterSetSelected(false)
	if dr.Word() != 0 {
		t.Errorf("Designator not cleared got: %012o", dr.Word())
	}
}

// Test each designator setter round trips through the packed word.
func TestDesignatorRoundTrip(t *testing.T) {
	setters := []struct {
		set  func(*Designator, bool)
		get  func(Designator) bool
		mask Designator
	}{
		{(*Designator).SetActivityLevelQueueMonitor, Designator.ActivityLevelQueueMonitor, DB0},
		{(*Designator).SetFaultHandlingInProgress, Designator.FaultHandlingInProgress, DB6},
		{(*Designator).SetExec24BitIndexing, Designator.Exec24BitIndexing, DB11},
		{(*Designator).SetQuantumTimerEnabled, Designator.QuantumTimerEnabled, DB12},
		{(*Designator).SetDeferrableInterruptEnabled, Designator.DeferrableInterruptEnabled, DB13},
		{(*Designator).SetBasicModeEnabled, Designator.BasicModeEnabled, DB16},
		{(*Designator).SetExecRegisterSetSelected, Designator.ExecRegisterSetSelected, DB17},
		{(*Designator).SetCarry, Designator.Carry, DB18},
		{(*Designator).SetOverflow, Designator.Overflow, DB19},
		{(*Designator).SetDivideCheck, Designator.DivideCheck, DB23},
		{(*Designator).SetOperationTrapEnabled, Designator.OperationTrapEnabled, DB27},
		{(*Designator).SetArithmeticExceptionEnabled, Designator.ArithmeticExceptionEnabled, DB29},
		{(*Designator).SetBasicModeBaseRegisterSelection, Designator.BasicModeBaseRegisterSelection, DB31},
		{(*Designator).SetQuarterWordMode, Designator.QuarterWordMode, DB32},
	}
	for i, s := range setters {
		dr := Designator(0_777777_777777)
		s.set(&dr, false)
		if s.get(dr) || dr != Designator(0_777777_777777)&^s.mask {
			t.Errorf("Setter %d clear failed got: %012o", i, dr.Word())
		}
		dr = 0
		s.set(&dr, true)
		if !s.get(dr) || dr != s.mask {
			t.Errorf("Setter %d set failed got: %012o", i, dr.Word())
		}
	}
}

// Test indicator key register fields.
func TestIndicatorKey(t *testing.T) {
	ikr := IndicatorKey(0_371122_334455)
	if ikr.ShortStatus() != 037 {
		t.Errorf("Short status got: %o wanted: %o", ikr.ShortStatus(), 037)
	}
	if ikr.AccessKey() != 0_334455 {
		t.Errorf("Access key got: %o wanted: %o", ikr.AccessKey(), 0_334455)
	}
	if IndicatorKey(0_003000_000000).MidInstructionDescription() != 3 {
		t.Errorf("Mid instruction description not correct")
	}
	if IndicatorKey(0_000300_000000).PendingInterruptInformation() != 3 {
		t.Errorf("Pending interrupt information not correct")
	}
	if IndicatorKey(0_000075_000000).InterruptClass() != 075 {
		t.Errorf("Interrupt class not correct")
	}
	ikr = 0
	ikr.SetInstructionInF0(true)
	ikr.SetAccessKey(0_754321)
	ikr.SetInterruptClass(077)
	ikr.SetShortStatus(012)
	if ikr.Word() != 0_124077_754321 {
		t.Errorf("Indicator key not correct got: %012o wanted: %012o", ikr.Word(), uint64(0_124077_754321))
	}
	ikr.SetInstructionInF0(false)
	if ikr.InstructionInF0() || ikr.Word() != 0_120077_754321 {
		t.Errorf("Instruction in F0 not cleared got: %012o", ikr.Word())
	}
}

// Test program address register.
func TestProgramAddress(t *testing.T) {
	par := NewProgramAddress(6, 01234, 0_1000)
	if par.Level() != 6 || par.BDI() != 01234 || par.PC() != 0_1000 {
		t.Errorf("PAR fields wrong got: %012o", par.Word())
	}
	par.SetPC(0_777777)
	par.SetLBDI(1, 077777)
	if par.Word() != 0_177777_777777 {
		t.Errorf("PAR not correct got: %012o wanted: %012o", par.Word(), uint64(0_177777_777777))
	}
}

// Test permission selection.
func TestAccess(t *testing.T) {
	lock := NewAccessInfo(0_400005)
	if lock.Ring != 2 || lock.Domain != 5 || lock.Value() != 0_400005 {
		t.Errorf("Access info not correct got: %o", lock.Value())
	}
	general := NewAccessPermissions(02)
	special := NewAccessPermissions(07)
	if special.Value() != 07 || general.Value() != 02 {
		t.Errorf("Access permissions not correct")
	}
	if !EffectivePermissions(NewAccessInfo(0_200007), lock, general, special).Enter {
		t.Errorf("Lower ring did not get special permissions")
	}
	if !EffectivePermissions(NewAccessInfo(0_400005), lock, general, special).Write {
		t.Errorf("Same key did not get special permissions")
	}
	if !EffectivePermissions(NewAccessInfo(0_600005), lock, general, special).Enter {
		t.Errorf("Same domain in higher ring did not get special permissions")
	}
	if EffectivePermissions(NewAccessInfo(0_600006), lock, general, special).Enter {
		t.Errorf("Higher ring got special permissions")
	}
	if EffectivePermissions(NewAccessInfo(0_400006), lock, general, special).Write {
		t.Errorf("Different domain got special permissions")
	}
}

// Test GRS access rules and index modification.
func TestGRS(t *testing.T) {
	tests := []struct {
		index uint64
		pp    uint64
		write bool
		want  bool
	}{
		{0, 3, true, true},
		{037, 3, true, true},
		{040, 0, false, false},
		{0100, 3, true, true},
		{0120, 0, true, true},
		{0120, 1, true, false},
		{0120, 2, false, true},
		{0120, 3, false, false},
	}
	for _, test := range tests {
		if r := GRSAccessAllowed(test.index, test.pp, test.write); r != test.want {
			t.Errorf("GRS access %o pp=%d write=%v got: %v wanted: %v", test.index, test.pp, test.write, r, test.want)
		}
	}

	x := uint64(0_000002_000010)
	x = IncrementModifier18(x)
	if XM(x) != 012 || XI(x) != 2 {
		t.Errorf("Increment modifier got: %012o", x)
	}
	x = SetXI(x, 2)
	x = DecrementModifier18(x)
	if XM(x) != 010 {
		t.Errorf("Decrement modifier got: %012o", x)
	}
	if XIndex(1, true) != EX1 || AIndex(0, false) != A0 || RIndex(1, true) != ER1 {
		t.Errorf("Register index selection not correct")
	}
}
