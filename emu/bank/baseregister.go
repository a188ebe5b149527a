/*
   S2200 base registers.

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

	"github.com/rcornwell/S2200/emu/interrupt"
	"github.com/rcornwell/S2200/emu/register"
)

// Number of base registers per processor.
const BaseRegisters = 32

// Describes one based bank. Lower and Upper are normalized to word
// granularity.
type BaseRegister struct {
	Base    AbsoluteAddress
	Large   bool
	Lower   uint64
	Upper   uint64
	Lock    register.AccessInfo
	General register.AccessPermissions
	Special register.AccessPermissions
	Void    bool
}

// Base register packet bits, word 0.
const (
	brGeneralRead  uint64 = 0_200000_000000
	brGeneralWrite uint64 = 0_100000_000000
	brSpecialRead  uint64 = 0_020000_000000
	brSpecialWrite uint64 = 0_010000_000000
	brVoid         uint64 = 0_000200_000000
	brLarge        uint64 = 0_000004_000000
)

// Base register describing no storage.
func VoidBaseRegister() BaseRegister {
	return BaseRegister{Void: true}
}

func NewBaseRegister(base AbsoluteAddress, large bool, lower, upper uint64,
	lock register.AccessInfo, general, special register.AccessPermissions) BaseRegister {
	return BaseRegister{
		Base:    base,
		Large:   large,
		Lower:   lower,
		Upper:   upper,
		Lock:    lock,
		General: general,
		Special: special,
		Void:    lower > upper,
	}
}

// Load base register from a 4 word packet.
func BaseRegisterFromWords(w [4]uint64) BaseRegister {
	br := BaseRegister{
		General: register.AccessPermissions{Read: (w[0] & brGeneralRead) != 0, Write: (w[0] & brGeneralWrite) != 0},
		Special: register.AccessPermissions{Read: (w[0] & brSpecialRead) != 0, Write: (w[0] & brSpecialWrite) != 0},
		Large:   (w[0] & brLarge) != 0,
		Lock:    register.NewAccessInfo(w[0] & 0_777777),
		Base:    AbsoluteAddressFromWords(w[2], w[3]),
	}
	lower := (w[1] >> 27) & 0777
	upper := w[1] & 0_777777
	if br.Large {
		br.Lower = lower << 15
		br.Upper = (upper << 6) | 077
	} else {
		br.Lower = lower << 9
		br.Upper = upper
	}
	br.Void = (w[0]&brVoid) != 0 || br.Lower > br.Upper
	return br
}

// Load base register from bank descriptor. Enter permission is not held
// in a base register.
func BaseRegisterFromDescriptor(bd *BankDescriptor) BaseRegister {
	gap := bd.GeneralPermissions()
	sap := bd.SpecialPermissions()
	gap.Enter = false
	sap.Enter = false
	return NewBaseRegister(bd.BaseAddress(), bd.Large(), bd.LowerNormalized(),
		bd.UpperNormalized(), bd.Lock(), gap, sap)
}

// Load base register describing the part of the bank starting at offset.
func SubsetBaseRegister(bd *BankDescriptor, offset uint64) BaseRegister {
	br := BaseRegisterFromDescriptor(bd)
	bdLower := bd.LowerNormalized()
	bdUpper := bd.UpperNormalized()
	if bdLower > offset {
		br.Lower = bdLower - offset
	} else {
		br.Lower = 0
		br.Base = br.Base.AddOffset(offset - bdLower)
	}
	if offset > bdUpper {
		br.Upper = 0
		br.Void = true
		return br
	}
	br.Upper = bdUpper - offset
	br.Void = br.Lower > br.Upper
	return br
}

// Return base register as 4 word packet.
func (br BaseRegister) Words() [4]uint64 {
	var w [4]uint64
	if br.General.Read {
		w[0] |= brGeneralRead
	}
	if br.General.Write {
		w[0] |= brGeneralWrite
	}
	if br.Special.Read {
		w[0] |= brSpecialRead
	}
	if br.Special.Write {
		w[0] |= brSpecialWrite
	}
	if br.Void {
		w[0] |= brVoid
	}
	if br.Large {
		w[0] |= brLarge
	}
	w[0] |= br.Lock.Value()
	if br.Large {
		w[1] = ((br.Lower >> 15) << 27) | ((br.Upper >> 6) & 0_777777)
	} else {
		w[1] = (((br.Lower >> 9) & 0777) << 27) | (br.Upper & 0_777777)
	}
	w[2], w[3] = br.Base.Words()
	return w
}

// Unnormalized limits.
func (br BaseRegister) LowerLimit() uint64 {
	if br.Large {
		return br.Lower >> 15
	}
	return br.Lower >> 9
}

func (br BaseRegister) UpperLimit() uint64 {
	if br.Large {
		return br.Upper >> 6
	}
	return br.Upper
}

// True if relative address lies inside a non void bank.
func (br BaseRegister) Within(rel uint64) bool {
	return !br.Void && rel >= br.Lower && rel <= br.Upper
}

// Permissions in effect for the given access key.
func (br BaseRegister) Permissions(key register.AccessInfo) register.AccessPermissions {
	return register.EffectivePermissions(key, br.Lock, br.General, br.Special)
}

// Check relative address against limits.
func (br BaseRegister) CheckLimits(rel uint64, fetch bool) error {
	if !br.Within(rel) {
		return interrupt.NewReferenceViolation(interrupt.StorageLimitsViolation, fetch)
	}
	return nil
}

// Check read and write permission for the key.
func (br BaseRegister) CheckAccess(fetch, read, write bool, key register.AccessInfo) error {
	if !read && !write {
		return nil
	}
	perms := br.Permissions(key)
	if read && !perms.Read {
		return interrupt.NewReferenceViolation(interrupt.ReadAccessViolation, fetch)
	}
	if write && !perms.Write {
		return interrupt.NewReferenceViolation(interrupt.WriteAccessViolation, fetch)
	}
	return nil
}

// Check limits and then permissions for a range of count words.
func (br BaseRegister) CheckRange(rel, count uint64, read, write bool, key register.AccessInfo) error {
	if count == 0 || br.Void || rel < br.Lower || rel+count-1 > br.Upper {
		return interrupt.NewReferenceViolation(interrupt.StorageLimitsViolation, false)
	}
	return br.CheckAccess(false, read, write, key)
}

// Absolute address of relative address, limits must already be checked.
func (br BaseRegister) Address(rel uint64) AbsoluteAddress {
	return br.Base.AddOffset(rel - br.Lower)
}

// Compare registers ignoring enter permissions, all void registers are equal.
func (br BaseRegister) Equal(other BaseRegister) bool {
	if br.Void && other.Void {
		return true
	}
	return br.Void == other.Void &&
		br.Base == other.Base &&
		br.Large == other.Large &&
		br.Lower == other.Lower &&
		br.Upper == other.Upper &&
		br.Lock == other.Lock &&
		br.General.Read == other.General.Read &&
		br.General.Write == other.General.Write &&
		br.Special.Read == other.Special.Read &&
		br.Special.Write == other.Special.Write
}

func (br BaseRegister) String() string {
	w := br.Words()
	return fmt.Sprintf("%012o %012o %012o %012o", w[0], w[1], w[2], w[3])
}
