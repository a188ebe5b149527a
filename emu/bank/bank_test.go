/*
   S2200 bank model tests.

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
package bank

import (
	"testing"

	"github.com/rcornwell/S2200/emu/interrupt"
	"github.com/rcornwell/S2200/emu/register"
)

// Base register packets must survive load and store unchanged.
func TestBaseRegisterRoundTrip(t *testing.T) {
	packets := [][4]uint64{
		{0_000000_000000 | 0_200005, 0_001000_001777, 0_000000_000003, 0_000001_000100},
		{0_330000_000000 | 0_600000, 0_000000_007777, 0_000000_000012, 0_000000_000000},
		{0_200004_000000 | 0_177777, 0_001000_001777, 0_000000_000001, 0_000017_777777},
		{0_010000_000000, 0_777000_777777, 0_000177_777777, 0_000003_000000},
		{0_000200_000000, 0, 0, 0},
	}
	for _, p := range packets {
		br := BaseRegisterFromWords(p)
		if w := br.Words(); w != p {
			t.Errorf("Base register packet got: %012o wanted: %012o", w, p)
		}
	}
}

// Void whenever lower limit exceeds upper limit.
func TestBaseRegisterLimits(t *testing.T) {
	br := BaseRegisterFromWords([4]uint64{0_300000_000000, 0_001000_000777, 0, 0})
	if !br.Void {
		t.Error("Lower 01000 upper 0777 not void")
	}
	if br.Within(01000) {
		t.Error("Void bank contains 01000")
	}
	err := br.CheckLimits(01000, false)
	mi, ok := interrupt.AsInterrupt(err)
	if !ok {
		t.Fatalf("CheckLimits did not return interrupt: %v", err)
	}
	if mi.Class != interrupt.ReferenceViolation {
		t.Errorf("CheckLimits class got: %v wanted: %v", mi.Class, interrupt.ReferenceViolation)
	}

	br = NewBaseRegister(NewAbsoluteAddress(1, 2, 0100), false, 01000, 01777,
		register.NewAccessInfo(0_200000), register.NewAccessPermissions(02), register.NewAccessPermissions(03))
	if br.Void {
		t.Error("Bank 01000 to 01777 is void")
	}
	for _, test := range []struct {
		rel    uint64
		within bool
	}{
		{01000, true}, {01777, true}, {0777, false}, {02000, false},
	} {
		if v := br.Within(test.rel); v != test.within {
			t.Errorf("Within %o got: %v wanted: %v", test.rel, v, test.within)
		}
	}
	if a := br.Address(01005); a != NewAbsoluteAddress(1, 2, 0105) {
		t.Errorf("Address got: %v wanted: %v", a, NewAbsoluteAddress(1, 2, 0105))
	}

	// Large bank normalization.
	br = BaseRegisterFromWords([4]uint64{brLarge, 0_001000_000001, 0, 0})
	if br.Lower != 01<<15 {
		t.Errorf("Large lower got: %o wanted: %o", br.Lower, 01<<15)
	}
	if br.Upper != 0177 {
		t.Errorf("Large upper got: %o wanted: %o", br.Upper, 0177)
	}
	if !br.Void {
		t.Error("Large bank with lower above upper not void")
	}
}

// Permission checks follow access key against lock.
func TestBaseRegisterAccess(t *testing.T) {
	br := NewBaseRegister(NewAbsoluteAddress(0, 0, 0), false, 0, 0777,
		register.NewAccessInfo(0_400001), register.NewAccessPermissions(02), register.NewAccessPermissions(03))

	// Same key gets special permissions.
	if err := br.CheckAccess(false, true, true, register.NewAccessInfo(0_400001)); err != nil {
		t.Errorf("Same key read write failed: %v", err)
	}

	// Same domain in a higher ring also gets special permissions.
	if err := br.CheckAccess(false, true, true, register.NewAccessInfo(0_600001)); err != nil {
		t.Errorf("Same domain higher ring read write failed: %v", err)
	}

	// Higher ring in another domain gets general, read only.
	if err := br.CheckAccess(false, true, false, register.NewAccessInfo(0_600002)); err != nil {
		t.Errorf("General read failed: %v", err)
	}
	err := br.CheckAccess(false, false, true, register.NewAccessInfo(0_600002))
	mi, ok := interrupt.AsInterrupt(err)
	if !ok {
		t.Fatalf("General write did not fault: %v", err)
	}
	if mi.ShortStatus != uint64(interrupt.WriteAccessViolation) {
		t.Errorf("General write status got: %o wanted: %o", mi.ShortStatus, interrupt.WriteAccessViolation)
	}

	if err := br.CheckRange(0770, 010, true, false, register.NewAccessInfo(0_600002)); err != nil {
		t.Errorf("CheckRange 0770 to 0777 failed: %v", err)
	}
	if err := br.CheckRange(0771, 010, true, false, register.NewAccessInfo(0_600002)); err == nil {
		t.Error("CheckRange 0771 to 01000 did not fault")
	}
}

// Base register loaded from a bank descriptor and from a subset of it.
func TestBaseRegisterFromDescriptor(t *testing.T) {
	var bd BankDescriptor
	bd.SetType(ExtendedMode)
	bd.SetGeneralPermissions(register.NewAccessPermissions(07))
	bd.SetSpecialPermissions(register.NewAccessPermissions(06))
	bd.SetLock(register.NewAccessInfo(0_200003))
	bd.SetLimits(1, 01777)
	bd.SetBaseAddress(NewAbsoluteAddress(0, 5, 01000))

	br := BaseRegisterFromDescriptor(&bd)
	if br.General.Enter {
		t.Error("Enter held in base register")
	}
	if !br.General.Write {
		t.Error("General write not set")
	}
	if br.Lower != 01000 || br.Upper != 01777 {
		t.Errorf("Limits got: %o %o wanted: 1000 1777", br.Lower, br.Upper)
	}
	if a := br.Address(01000); a != NewAbsoluteAddress(0, 5, 01000) {
		t.Errorf("Address got: %v wanted: %v", a, NewAbsoluteAddress(0, 5, 01000))
	}

	sub := SubsetBaseRegister(&bd, 01100)
	if sub.Lower != 0 || sub.Upper != 0677 {
		t.Errorf("Subset 01100 limits got: %o %o wanted: 0 677", sub.Lower, sub.Upper)
	}
	if sub.Address(0) != br.Address(01100) {
		t.Errorf("Subset 01100 address got: %v wanted: %v", sub.Address(0), br.Address(01100))
	}

	sub = SubsetBaseRegister(&bd, 0400)
	if sub.Lower != 0400 {
		t.Errorf("Subset 0400 lower got: %o wanted: %o", sub.Lower, 0400)
	}
	if sub.Address(0400) != br.Address(01000) {
		t.Errorf("Subset 0400 address got: %v wanted: %v", sub.Address(0400), br.Address(01000))
	}

	sub = SubsetBaseRegister(&bd, 02000)
	if !sub.Void {
		t.Error("Subset past upper limit not void")
	}
}

// Bank descriptor field layout.
func TestBankDescriptor(t *testing.T) {
	var bd BankDescriptor
	bd.SetGeneralPermissions(register.NewAccessPermissions(05))
	bd.SetSpecialPermissions(register.NewAccessPermissions(07))
	bd.SetType(Gate)
	bd.SetGeneralFault(true)
	bd.SetLarge(true)
	bd.SetLock(register.NewAccessInfo(0_600010))
	if bd[0] != 0_570224_600010 {
		t.Errorf("Word 0 got: %012o wanted: %012o", bd[0], uint64(0_570224_600010))
	}
	if bd.Type() != Gate {
		t.Errorf("Type got: %v wanted: %v", bd.Type(), Gate)
	}
	if !bd.GeneralFault() || !bd.Large() {
		t.Error("General fault or large not set")
	}
	if bd.UpperSuppression() {
		t.Error("Upper suppression set")
	}
	if r := bd.Lock().Ring; r != 3 {
		t.Errorf("Lock ring got: %o wanted: %o", r, 3)
	}

	bd.SetLimits(2, 010)
	if v := bd.LowerNormalized(); v != 2<<15 {
		t.Errorf("Lower got: %o wanted: %o", v, 2<<15)
	}
	if v := bd.UpperNormalized(); v != 010<<6 {
		t.Errorf("Upper got: %o wanted: %o", v, 010<<6)
	}

	bd.SetType(Indirect)
	bd.SetTarget(4, 0100)
	if bd.TargetLevel() != 4 || bd.TargetBDI() != 0100 {
		t.Errorf("Target got: %o,%o wanted: 4,100", bd.TargetLevel(), bd.TargetBDI())
	}
	if s := bd.Type().String(); s != "Indirect" {
		t.Errorf("Type name got: %s wanted: Indirect", s)
	}
	if s := BankType(5).String(); s != "Reserved(5)" {
		t.Errorf("Reserved type name got: %s wanted: Reserved(5)", s)
	}
}

// Basic mode and extended mode virtual address conversion.
func TestVirtualAddress(t *testing.T) {
	tests := []struct {
		level, bdi, offset uint64
		basic              uint64
	}{
		{0, 041, 01000, 0_440041_001000},
		{2, 041, 01000, 0_400041_001000},
		{4, 041, 01000, 0_000041_001000},
		{6, 041, 01000, 0_040041_001000},
	}
	for _, test := range tests {
		got := TranslateToBasicMode(test.level, test.bdi, test.offset)
		if got != test.basic {
			t.Errorf("Level %o basic got: %012o wanted: %012o", test.level, got, test.basic)
		}
		va := FromBasicMode(got)
		if va.Level() != test.level || va.BDI() != test.bdi || va.Offset() != test.offset {
			t.Errorf("Level %o extended got: %o,%o,%o", test.level, va.Level(), va.BDI(), va.Offset())
		}
	}
	if v := TranslateToBasicMode(1, 041, 5); v != 0_440000_000005 {
		t.Errorf("Level 1 basic got: %012o wanted: %012o", v, uint64(0_440000_000005))
	}
	if v := TranslateToBasicMode(4, 010000, 5); v != 0_440000_000005 {
		t.Errorf("Large BDI basic got: %012o wanted: %012o", v, uint64(0_440000_000005))
	}

	va := NewVirtualAddress(6, 077777, 0_777777)
	if uint64(va) != 0_677777_777777 {
		t.Errorf("Virtual address got: %012o wanted: %012o", uint64(va), uint64(0_677777_777777))
	}
	if va.LBDI() != 0_677777 {
		t.Errorf("LBDI got: %o wanted: %o", va.LBDI(), 0_677777)
	}
}

// Absolute address packing.
func TestAbsoluteAddress(t *testing.T) {
	a := NewAbsoluteAddress(3, 0100, 0_7777777)
	w0, w1 := a.Words()
	if w0 != 0100 {
		t.Errorf("Word 0 got: %o wanted: %o", w0, 0100)
	}
	if w1 != uint64(3)<<32|0_7777777 {
		t.Errorf("Word 1 got: %o wanted: %o", w1, uint64(3)<<32|0_7777777)
	}
	if b := AbsoluteAddressFromWords(w0, w1); b != a {
		t.Errorf("From words got: %v wanted: %v", b, a)
	}
	if b := a.AddOffset(1); b != NewAbsoluteAddress(3, 0100, 0_10000000) {
		t.Errorf("AddOffset got: %v wanted: %v", b, NewAbsoluteAddress(3, 0100, 0_10000000))
	}
}

// Gate, RCS and ICS frame layouts.
func TestFrames(t *testing.T) {
	g := NewGate(register.NewAccessPermissions(04), register.NewAccessPermissions(04),
		register.NewAccessInfo(0_200000), NewVirtualAddress(0, 0100, 01000))
	g.SetGotoInhibit(true)
	g.SetLP1Inhibit(true)
	g.SetState(2, register.DB12|register.DB17|register.DB18, 0_200005)
	g.SetLatentParameters(011, 022)
	if g[0] != 0_444200_200000 {
		t.Errorf("Gate word 0 got: %012o wanted: %012o", g[0], uint64(0_444200_200000))
	}
	if !g.GotoInhibit() || g.DesignatorInhibit() || !g.LP1Inhibit() {
		t.Errorf("Gate inhibits got: %v %v %v wanted: true false true",
			g.GotoInhibit(), g.DesignatorInhibit(), g.LP1Inhibit())
	}
	if g.BasicModeBaseRegister() != 2 {
		t.Errorf("Gate base register got: %o wanted: 2", g.BasicModeBaseRegister())
	}
	if g.Designator() != register.DB12|register.DB17 {
		t.Errorf("Gate designator got: %012o wanted: %012o", g.Designator(), register.DB12|register.DB17)
	}
	if g.AccessKey() != 0_200005 {
		t.Errorf("Gate key got: %o wanted: %o", g.AccessKey(), 0_200005)
	}
	if g.Target().BDI() != 0100 {
		t.Errorf("Gate target got: %o wanted: %o", g.Target().BDI(), 0100)
	}
	if g.LatentParameter1() != 022 {
		t.Errorf("Gate latent parameter got: %o wanted: %o", g.LatentParameter1(), 022)
	}

	f := NewRCSFrame(NewVirtualAddress(0, 0100, 01001), true, 3,
		register.DB16|register.DB19, 0_400001)
	w := f.Words()
	want := [RCSFrameSize]uint64{0_000100_001001, 0_400002_400001 | 3<<30}
	if w != want {
		t.Errorf("RCS frame got: %012o wanted: %012o", w, want)
	}
	if g := RCSFrameFromWords(w); g != f {
		t.Errorf("RCS frame from words got: %+v wanted: %+v", g, f)
	}
	if !RCSFrameFromWords(w).Designator.BasicModeEnabled() {
		t.Error("RCS frame lost basic mode")
	}

	e := ActiveBaseTableEntry{Level: 2, BDI: 040, Offset: 01000}
	if g := ActiveBaseTableEntryFromWord(e.Word()); g != e {
		t.Errorf("Active base entry got: %+v wanted: %+v", g, e)
	}

	ics := ICSFrame{PAR: 1, DR: 2, IKR: 3, QuantumTimer: 4, ISW0: 5, ISW1: 6}
	if g := ICSFrameFromWords(ics.Words()); g != ics {
		t.Errorf("ICS frame got: %+v wanted: %+v", g, ics)
	}
}
