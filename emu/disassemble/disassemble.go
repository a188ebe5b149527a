/*
   S2200 instruction disassembler.

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
package disassembler

import (
	"fmt"
	"strings"

	op "github.com/rcornwell/S2200/emu/opcodemap"
	"github.com/rcornwell/S2200/emu/word"
)

// Partial word designator names, quarter word mode differs for 4 to 7.
var jNames = [16]string{"", "H2", "H1", "XH2", "XH1", "T3", "T2", "T1",
	"S6", "S5", "S4", "S3", "S2", "S1", "U", "XU"}

var jQuarter = [16]string{4: "Q2", 5: "Q4", 6: "Q3", 7: "Q1"}

// Width of mnemonic column.
const nameWidth = 8

// Disassemble one instruction in basic or extended mode.
func Disassemble(inst word.Instruction, basic bool) string {
	return disassemble(inst, basic, false)
}

// Disassemble with quarter word partial designators.
func DisassembleQuarter(inst word.Instruction, basic bool) string {
	return disassemble(inst, basic, true)
}

func disassemble(inst word.Instruction, basic, quarter bool) string {
	opc := op.Lookup(basic, inst.F(), inst.J(), inst.A())
	if opc == nil {
		return undefined(inst)
	}

	name := opc.Name
	switch opc.Form {
	case op.FormA, op.FormX, op.FormR, op.FormStore, op.FormU:
		if opc.J == op.Any {
			if j := partial(inst.J(), quarter); j != "" {
				name += "," + j
			}
		}
	}
	text := name
	if len(text) < nameWidth {
		text += strings.Repeat(" ", nameWidth-len(text))
	} else {
		text += " "
	}

	immediate := inst.J() >= word.JU && opc.J == op.Any
	switch opc.Form {
	case op.FormA, op.FormStore:
		text += fmt.Sprintf("A%d,", inst.A()) + operand(inst, basic, immediate)
	case op.FormX:
		text += fmt.Sprintf("X%d,", inst.A()) + operand(inst, basic, immediate)
	case op.FormR:
		text += fmt.Sprintf("R%d,", inst.A()) + operand(inst, basic, immediate)
	case op.FormU:
		text += operand(inst, basic, immediate)
	case op.FormJump:
		text += jumpTarget(inst, basic)
	case op.FormJumpA:
		text += fmt.Sprintf("A%d,", inst.A()) + jumpTarget(inst, basic)
	case op.FormJumpX:
		text += fmt.Sprintf("X%d,", inst.A()) + jumpTarget(inst, basic)
	case op.FormBank:
		text += fmt.Sprintf("B%d,", inst.A()) + operand(inst, basic, false)
	}
	return strings.TrimRight(text, " ")
}

// Word as octal followed by the disassembly.
func PrintInst(inst word.Instruction, basic bool) string {
	return fmt.Sprintf("%012o  %s", inst.Word(), Disassemble(inst, basic))
}

func partial(j uint64, quarter bool) string {
	if quarter && jQuarter[j] != "" {
		return jQuarter[j]
	}
	return jNames[j]
}

// Index register with * when incremented.
func index(inst word.Instruction) string {
	if inst.X() == 0 {
		return ""
	}
	s := ","
	if inst.H() != 0 {
		s += "*"
	}
	return s + fmt.Sprintf("X%d", inst.X())
}

// Data operand: u or d, index and base register.
func operand(inst word.Instruction, basic, immediate bool) string {
	switch {
	case immediate && inst.X() == 0:
		return fmt.Sprintf("%o", inst.HIU())
	case basic || immediate:
		s := fmt.Sprintf("%o", inst.U())
		if basic && inst.I() != 0 && !immediate {
			s = "*" + s
		}
		return s + index(inst)
	}
	s := fmt.Sprintf("%o", inst.D()) + index(inst)
	if inst.B() != 0 || inst.I() != 0 {
		if inst.X() == 0 {
			s += ","
		}
		s += fmt.Sprintf(",B%d", inst.IB())
	}
	return s
}

// Jump target: u and index.
func jumpTarget(inst word.Instruction, basic bool) string {
	s := fmt.Sprintf("%o", inst.U())
	if basic && inst.I() != 0 {
		s = "*" + s
	}
	return s + index(inst)
}

func undefined(inst word.Instruction) string {
	return fmt.Sprintf("%02o %02o %02o %02o %o %o %06o", inst.F(), inst.J(), inst.A(),
		inst.X(), inst.H(), inst.I(), inst.U())
}
