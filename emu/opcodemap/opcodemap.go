/*
   S2200 instruction mnemonic map.

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
package opcodemap

// Execution modes an opcode is defined in.
type Mode int

const (
	Basic    Mode = 1 << iota // Basic mode only.
	Extended                  // Extended mode only.
	Both     = Basic | Extended
)

// Field value matching any j or a.
const Any uint64 = 0xff

// Operand form, selects how the instruction is disassembled.
type Form int

const (
	FormA      Form = iota // a names an A register, j is partial word.
	FormX                  // a names an X register, j is partial word.
	FormR                  // a names an R register, j is partial word.
	FormStore              // a names an A register, j is partial word, no immediate.
	FormJump               // Jump target only.
	FormJumpA              // a names an A register tested by a jump.
	FormJumpX              // a names an X register linked by a jump.
	FormBank               // a names a base register.
	FormU                  // Operand address only.
	FormNone               // No operand.
)

// One mnemonic. J and A may be Any.
type Opcode struct {
	Name string
	Mode Mode
	F    uint64
	J    uint64
	A    uint64
	Form Form
}

// Opcode numbers.
const (
	OpSA   = 001
	OpSR   = 004
	OpSZ   = 005
	OpSX   = 006
	OpLxJ  = 007
	OpLA   = 010
	OpLR   = 023
	OpLX   = 027
	OpSys  = 073
	OpJump = 074
	OpLB   = 075
	OpHalt = 077
)

// Opcodes known to the processor.
var Opcodes = []Opcode{
	{"LA", Both, OpLA, Any, Any, FormA},
	{"LX", Both, OpLX, Any, Any, FormX},
	{"LR", Both, OpLR, Any, Any, FormR},
	{"SA", Both, OpSA, Any, Any, FormStore},
	{"SR", Both, OpSR, Any, Any, FormR},
	{"SX", Both, OpSX, Any, Any, FormX},
	{"SZ", Both, OpSZ, Any, 000, FormU},

	{"JZ", Both, OpJump, 000, Any, FormJumpA},
	{"JNZ", Both, OpJump, 001, Any, FormJumpA},
	{"J", Basic, OpJump, 004, Any, FormJump},
	{"J", Extended, OpJump, 015, 004, FormJump},
	{"HLTJ", Extended, OpJump, 015, 005, FormJump},
	{"NOP", Basic, OpJump, 006, Any, FormNone},
	{"LMJ", Basic, OpJump, 013, Any, FormJumpX},

	{"LDJ", Basic, OpLxJ, 012, Any, FormJumpX},
	{"LIJ", Basic, OpLxJ, 013, Any, FormJumpX},
	{"LBJ", Basic, OpLxJ, 017, Any, FormJumpX},
	{"LOCL", Extended, OpLxJ, 016, 000, FormJump},
	{"CALL", Extended, OpLxJ, 016, 013, FormU},
	{"GOTO", Extended, OpLxJ, 017, 000, FormU},

	{"LBU", Both, OpLB, 000, Any, FormBank},
	{"LBE", Both, OpLB, 003, Any, FormBank},

	{"NOP", Extended, OpSys, 014, 000, FormNone},
	{"LAE", Extended, OpSys, 015, 012, FormU},
	{"UR", Both, OpSys, 015, 016, FormU},
	{"SGNL", Both, OpSys, 015, 017, FormU},
	{"TS", Both, OpSys, 017, 000, FormU},
	{"RTN", Extended, OpSys, 017, 003, FormNone},
	{"IAR", Both, OpSys, 017, 006, FormU},
	{"SYSC", Extended, OpSys, 017, 012, FormU},

	{"HALT", Both, OpHalt, 017, 017, FormNone},
}

type key struct {
	basic bool
	f     uint64
	j     uint64
	a     uint64
}

var opMap = map[key]*Opcode{}

func init() {
	for i := range Opcodes {
		op := &Opcodes[i]
		if op.Mode&Basic != 0 {
			opMap[key{true, op.F, op.J, op.A}] = op
		}
		if op.Mode&Extended != 0 {
			opMap[key{false, op.F, op.J, op.A}] = op
		}
	}
}

// Find opcode for instruction fields. The most specific entry wins.
func Lookup(basic bool, f, j, a uint64) *Opcode {
	keys := [...]key{
		{basic, f, j, a},
		{basic, f, j, Any},
		{basic, f, Any, a},
		{basic, f, Any, Any},
	}
	for _, k := range keys {
		if op, ok := opMap[k]; ok {
			return op
		}
	}
	return nil
}
