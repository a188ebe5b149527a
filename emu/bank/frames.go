/*
   S2200 active base table, gates and control stack frames.

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
	"fmt"

	"github.com/rcornwell/S2200/emu/register"
)

// Name and subset offset of the bank based on B1-B15.
type ActiveBaseTableEntry struct {
	Level  uint64
	BDI    uint64
	Offset uint64
}

func ActiveBaseTableEntryFromWord(w uint64) ActiveBaseTableEntry {
	va := VirtualAddress(w)
	return ActiveBaseTableEntry{Level: va.Level(), BDI: va.BDI(), Offset: va.Offset()}
}

func (e ActiveBaseTableEntry) Word() uint64 {
	return uint64(NewVirtualAddress(e.Level, e.BDI, e.Offset))
}

func (e ActiveBaseTableEntry) String() string {
	return fmt.Sprintf("%o,%05o+%06o", e.Level, e.BDI, e.Offset)
}

// Number of words in a gate.
const GateSize = 8

// Gate inside a gate bank.
//
//	word 0  bits 0-2 GAP, 3-5 SAP, bit 6 goto inhibit, bit 7 designator
//	        inhibit, bit 8 access key inhibit, bit 9 LP0 inhibit,
//	        bit 10 LP1 inhibit, H2 access lock
//	word 1  target L,BDI and offset
//	word 2  bits 0-1 basic mode base register, bits 12-17 DB12-17,
//	        H2 access key
//	word 4  latent parameter 0
//	word 5  latent parameter 1
type GateEntry [GateSize]uint64

const (
	gateGotoInhibit       uint64 = 0_004000_000000
	gateDesignatorInhibit uint64 = 0_002000_000000
	gateKeyInhibit        uint64 = 0_001000_000000
	gateLP0Inhibit        uint64 = 0_000400_000000
	gateLP1Inhibit        uint64 = 0_000200_000000
)

func (g *GateEntry) GeneralPermissions() register.AccessPermissions {
	return register.NewAccessPermissions((g[0] >> 33) & 07)
}

func (g *GateEntry) SpecialPermissions() register.AccessPermissions {
	return register.NewAccessPermissions((g[0] >> 30) & 07)
}

func (g *GateEntry) GotoInhibit() bool       { return (g[0] & gateGotoInhibit) != 0 }
func (g *GateEntry) DesignatorInhibit() bool { return (g[0] & gateDesignatorInhibit) != 0 }
func (g *GateEntry) AccessKeyInhibit() bool  { return (g[0] & gateKeyInhibit) != 0 }
func (g *GateEntry) LP0Inhibit() bool        { return (g[0] & gateLP0Inhibit) != 0 }
func (g *GateEntry) LP1Inhibit() bool        { return (g[0] & gateLP1Inhibit) != 0 }

func (g *GateEntry) Lock() register.AccessInfo { return register.NewAccessInfo(g[0] & 0_777777) }
func (g *GateEntry) Target() VirtualAddress    { return VirtualAddress(g[1]) }
func (g *GateEntry) BasicModeBaseRegister() uint64 {
	return (g[2] >> 34) & 03
}

// Designator bits 12-17 in their register positions.
func (g *GateEntry) Designator() register.Designator {
	return register.Designator(g[2]) & register.DB12To17
}

func (g *GateEntry) AccessKey() uint64        { return g[2] & 0_777777 }
func (g *GateEntry) LatentParameter0() uint64 { return g[4] }
func (g *GateEntry) LatentParameter1() uint64 { return g[5] }

// Build a gate from its parts.
func NewGate(general, special register.AccessPermissions, lock register.AccessInfo,
	target VirtualAddress) GateEntry {
	var g GateEntry
	g[0] = (general.Value() << 33) | (special.Value() << 30) | lock.Value()
	g[1] = uint64(target)
	return g
}

func (g *GateEntry) setBit(mask uint64, v bool) {
	if v {
		g[0] |= mask
	} else {
		g[0] &^= mask
	}
}

func (g *GateEntry) SetGotoInhibit(v bool)       { g.setBit(gateGotoInhibit, v) }
func (g *GateEntry) SetDesignatorInhibit(v bool) { g.setBit(gateDesignatorInhibit, v) }
func (g *GateEntry) SetAccessKeyInhibit(v bool)  { g.setBit(gateKeyInhibit, v) }
func (g *GateEntry) SetLP0Inhibit(v bool)        { g.setBit(gateLP0Inhibit, v) }
func (g *GateEntry) SetLP1Inhibit(v bool)        { g.setBit(gateLP1Inhibit, v) }

// Set word 2 fields.
func (g *GateEntry) SetState(baseRegister uint64, dr register.Designator, key uint64) {
	g[2] = ((baseRegister & 03) << 34) | uint64(dr&register.DB12To17) | (key & 0_777777)
}

func (g *GateEntry) SetLatentParameters(lp0, lp1 uint64) {
	g[4] = lp0 & 0_777777_777777
	g[5] = lp1 & 0_777777_777777
}

// Number of words in a return control stack frame.
const RCSFrameSize = 2

// Frame pushed on the return control stack by call type transfers.
//
//	word 0  reentry L,BDI and offset
//	word 1  bit 0 trap, bits 4-5 basic mode base register, bits 12-17
//	        DB12-17, H2 access key
type RCSFrame struct {
	Reentry      VirtualAddress
	Trap         bool
	BaseRegister uint64
	Designator   register.Designator
	AccessKey    uint64
}

const rcsTrap uint64 = 0_400000_000000

func NewRCSFrame(reentry VirtualAddress, trap bool, baseRegister uint64,
	dr register.Designator, key uint64) RCSFrame {
	return RCSFrame{
		Reentry:      reentry,
		Trap:         trap,
		BaseRegister: baseRegister & 03,
		Designator:   dr & register.DB12To17,
		AccessKey:    key & 0_777777,
	}
}

func RCSFrameFromWords(w [RCSFrameSize]uint64) RCSFrame {
	return RCSFrame{
		Reentry:      VirtualAddress(w[0] & 0_777777_777777),
		Trap:         (w[1] & rcsTrap) != 0,
		BaseRegister: (w[1] >> 30) & 03,
		Designator:   register.Designator(w[1]) & register.DB12To17,
		AccessKey:    w[1] & 0_777777,
	}
}

func (f RCSFrame) Words() [RCSFrameSize]uint64 {
	w1 := ((f.BaseRegister & 03) << 30) | uint64(f.Designator&register.DB12To17) | (f.AccessKey & 0_777777)
	if f.Trap {
		w1 |= rcsTrap
	}
	return [RCSFrameSize]uint64{uint64(f.Reentry) & 0_777777_777777, w1}
}

// Number of words in an interrupt control stack frame.
const ICSFrameSize = 6

// Frame written to the interrupt control stack when an interrupt is taken.
type ICSFrame struct {
	PAR          uint64
	DR           uint64
	IKR          uint64
	QuantumTimer uint64
	ISW0         uint64
	ISW1         uint64
}

func ICSFrameFromWords(w [ICSFrameSize]uint64) ICSFrame {
	return ICSFrame{PAR: w[0], DR: w[1], IKR: w[2], QuantumTimer: w[3], ISW0: w[4], ISW1: w[5]}
}

func (f ICSFrame) Words() [ICSFrameSize]uint64 {
	return [ICSFrameSize]uint64{f.PAR, f.DR, f.IKR, f.QuantumTimer, f.ISW0, f.ISW1}
}
