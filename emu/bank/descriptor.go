/*
   S2200 bank descriptors.

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

type BankType uint64

const (
	ExtendedMode    BankType = 0
	BasicMode       BankType = 1
	Gate            BankType = 2
	Indirect        BankType = 3
	Queue           BankType = 4
	QueueRepository BankType = 6
)

var typeNames = map[BankType]string{
	ExtendedMode:    "Extended",
	BasicMode:       "Basic",
	Gate:            "Gate",
	Indirect:        "Indirect",
	Queue:           "Queue",
	QueueRepository: "QueueRepository",
}

func (bt BankType) String() string {
	if s, ok := typeNames[bt]; ok {
		return s
	}
	return fmt.Sprintf("Reserved(%o)", uint64(bt))
}

// Number of words in a bank descriptor.
const DescriptorSize = 8

// Bank descriptor as stored in a bank descriptor table.
//
//	word 0  bits 0-2 GAP, 3-5 SAP, 8-11 type, bit 13 G, bit 15 S,
//	        bit 16 U, H2 access lock
//	word 1  bits 0-8 lower limit, bits 9-35 upper limit,
//	        H1 target L,BDI for indirect banks
//	word 2  base segment
//	word 3  base UPI and offset
//	word 4  bits 3-17 displacement
type BankDescriptor [DescriptorSize]uint64

const (
	bdGeneralFault uint64 = 0_000020_000000
	bdLarge        uint64 = 0_000004_000000
	bdSuppression  uint64 = 0_000002_000000
	bdTypeMask     uint64 = 0_001700_000000
)

func (bd *BankDescriptor) GeneralPermissions() register.AccessPermissions {
	return register.NewAccessPermissions((bd[0] >> 33) & 07)
}

func (bd *BankDescriptor) SpecialPermissions() register.AccessPermissions {
	return register.NewAccessPermissions((bd[0] >> 30) & 07)
}

func (bd *BankDescriptor) Type() BankType         { return BankType((bd[0] >> 24) & 017) }
func (bd *BankDescriptor) GeneralFault() bool     { return (bd[0] & bdGeneralFault) != 0 }
func (bd *BankDescriptor) Large() bool            { return (bd[0] & bdLarge) != 0 }
func (bd *BankDescriptor) UpperSuppression() bool { return (bd[0] & bdSuppression) != 0 }

func (bd *BankDescriptor) Lock() register.AccessInfo {
	return register.NewAccessInfo(bd[0] & 0_777777)
}

func (bd *BankDescriptor) LowerLimit() uint64 { return (bd[1] >> 27) & 0777 }
func (bd *BankDescriptor) UpperLimit() uint64 { return bd[1] & 0_777_777777 }

func (bd *BankDescriptor) LowerNormalized() uint64 {
	if bd.Large() {
		return bd.LowerLimit() << 15
	}
	return bd.LowerLimit() << 9
}

func (bd *BankDescriptor) UpperNormalized() uint64 {
	if bd.Large() {
		return bd.UpperLimit() << 6
	}
	return bd.UpperLimit()
}

func (bd *BankDescriptor) BaseAddress() AbsoluteAddress {
	return AbsoluteAddressFromWords(bd[2], bd[3])
}

func (bd *BankDescriptor) Displacement() uint64 { return (bd[4] >> 18) & 077777 }

// Target bank of an indirect bank descriptor.
func (bd *BankDescriptor) TargetLevel() uint64 { return (bd[1] >> 33) & 07 }
func (bd *BankDescriptor) TargetBDI() uint64   { return (bd[1] >> 18) & 077777 }

func (bd *BankDescriptor) SetGeneralPermissions(ap register.AccessPermissions) {
	bd[0] = (bd[0] &^ 0_700000_000000) | (ap.Value() << 33)
}

func (bd *BankDescriptor) SetSpecialPermissions(ap register.AccessPermissions) {
	bd[0] = (bd[0] &^ 0_070000_000000) | (ap.Value() << 30)
}

func (bd *BankDescriptor) SetType(bt BankType) {
	bd[0] = (bd[0] &^ bdTypeMask) | ((uint64(bt) & 017) << 24)
}

func (bd *BankDescriptor) setBit(mask uint64, v bool) {
	if v {
		bd[0] |= mask
	} else {
		bd[0] &^= mask
	}
}

func (bd *BankDescriptor) SetGeneralFault(v bool)     { bd.setBit(bdGeneralFault, v) }
func (bd *BankDescriptor) SetLarge(v bool)            { bd.setBit(bdLarge, v) }
func (bd *BankDescriptor) SetUpperSuppression(v bool) { bd.setBit(bdSuppression, v) }

func (bd *BankDescriptor) SetLock(ai register.AccessInfo) {
	bd[0] = (bd[0] &^ 0_777777) | ai.Value()
}

func (bd *BankDescriptor) SetLimits(lower, upper uint64) {
	bd[1] = ((lower & 0777) << 27) | (upper & 0_777_777777)
}

func (bd *BankDescriptor) SetBaseAddress(a AbsoluteAddress) {
	bd[2], bd[3] = a.Words()
}

func (bd *BankDescriptor) SetDisplacement(d uint64) {
	bd[4] = (bd[4] &^ 0_077777_000000) | ((d & 077777) << 18)
}

func (bd *BankDescriptor) SetTarget(level, bdi uint64) {
	bd[1] = (bd[1] & 0_777777) | ((((level & 07) << 15) | (bdi & 077777)) << 18)
}

func (bd *BankDescriptor) String() string {
	return fmt.Sprintf("%s lock=%06o gap=%o sap=%o lower=%o upper=%o base=%s",
		bd.Type(), bd.Lock().Value(), bd.GeneralPermissions().Value(),
		bd.SpecialPermissions().Value(), bd.LowerNormalized(), bd.UpperNormalized(),
		bd.BaseAddress())
}
