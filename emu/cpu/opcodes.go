/*
   S2200 instruction dispatch table.

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
	"github.com/rcornwell/S2200/emu/opcodemap"
	"github.com/rcornwell/S2200/emu/word"
)

// Instruction handler and the quantum it charges.
type handler struct {
	fn      func(p *Processor) error
	quantum int
}

// Handlers by mnemonic, the opcode map supplies the field encodings.
var handlers = map[string]handler{
	"LA": {(*Processor).opLA, 20},
	"LX": {(*Processor).opLX, 20},
	"LR": {(*Processor).opLR, 20},
	"SA": {(*Processor).opSA, 20},
	"SX": {(*Processor).opSX, 20},
	"SR": {(*Processor).opSR, 20},
	"SZ": {(*Processor).opSZ, 20},

	"J":    {(*Processor).opJ, 20},
	"JZ":   {(*Processor).opJZ, 20},
	"JNZ":  {(*Processor).opJNZ, 20},
	"HLTJ": {(*Processor).opHLTJ, 20},
	"LMJ":  {(*Processor).opLMJ, 20},
	"NOP":  {(*Processor).opNOP, 20},

	"LBJ":  {(*Processor).opLBJ, 100},
	"LDJ":  {(*Processor).opLDJ, 100},
	"LIJ":  {(*Processor).opLIJ, 100},
	"CALL": {(*Processor).opCALL, 100},
	"LOCL": {(*Processor).opLOCL, 100},
	"GOTO": {(*Processor).opGOTO, 100},
	"RTN":  {(*Processor).opRTN, 100},
	"LBU":  {(*Processor).opLBU, 100},
	"LBE":  {(*Processor).opLBE, 100},
	"LAE":  {(*Processor).opLAE, 500},
	"UR":   {(*Processor).opUR, 100},

	"TS":   {(*Processor).opTS, 20},
	"SGNL": {(*Processor).opSGNL, 20},
	"IAR":  {(*Processor).opIAR, 20},
	"SYSC": {(*Processor).opSYSC, 200},
	"HALT": {(*Processor).opHALT, 20},
}

// Find handler for instruction in the given mode.
func lookup(basic bool, inst word.Instruction) *handler {
	op := opcodemap.Lookup(basic, inst.F(), inst.J(), inst.A())
	if op == nil {
		return nil
	}
	h, ok := handlers[op.Name]
	if !ok {
		return nil
	}
	return &h
}
