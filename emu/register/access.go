/*
   S2200 access keys, locks and permissions.

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

// Access key or access lock: 2 bit ring and 16 bit domain packed in 18 bits.
type AccessInfo struct {
	Ring   uint64
	Domain uint64
}

func NewAccessInfo(v uint64) AccessInfo {
	return AccessInfo{Ring: (v >> 16) & 03, Domain: v & 0_177777}
}

func (ai AccessInfo) Value() uint64 {
	return ((ai.Ring & 03) << 16) | (ai.Domain & 0_177777)
}

// Enter, read and write permissions.
type AccessPermissions struct {
	Enter bool
	Read  bool
	Write bool
}

// Build permissions from 3 bit field, E is the high bit.
func NewAccessPermissions(v uint64) AccessPermissions {
	return AccessPermissions{
		Enter: (v & 04) != 0,
		Read:  (v & 02) != 0,
		Write: (v & 01) != 0,
	}
}

func (ap AccessPermissions) Value() uint64 {
	var v uint64
	if ap.Enter {
		v |= 04
	}
	if ap.Read {
		v |= 02
	}
	if ap.Write {
		v |= 01
	}
	return v
}

// Return true if the key selects special permissions for the lock, a
// lower ring or the same domain.
func UseSpecial(key, lock AccessInfo) bool {
	return key.Ring < lock.Ring || key.Domain == lock.Domain
}

// Select permissions for the key given a bank lock and its two permission sets.
func EffectivePermissions(key, lock AccessInfo, general, special AccessPermissions) AccessPermissions {
	if UseSpecial(key, lock) {
		return special
	}
	return general
}
