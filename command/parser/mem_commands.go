/*
   Storage examine and deposit commands.

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
package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	core "github.com/rcornwell/S2200/emu/core"
	disassembler "github.com/rcornwell/S2200/emu/disassemble"
	"github.com/rcornwell/S2200/emu/word"
	"github.com/rcornwell/S2200/util/fieldata"
	"github.com/rcornwell/S2200/util/octal"
)

// Words shown per output line.
const wordsPerLine = 4

// Largest examine request.
const maxExamine = 010000

type memoryOpts struct {
	ascii bool // Show characters as ASCII quarter words.
	inst  bool // Show instructions.
	basic bool // Instructions are basic mode.
}

// Collect -a, -f, -i and -b options.
func (line *cmdLine) parseMemoryOptions(options *memoryOpts) error {
	for {
		line.skipSpace()
		if line.isEOL() || line.line[line.pos] != '-' {
			return nil
		}
		line.pos++
		for !line.isEOL() && line.line[line.pos] != ' ' {
			switch by := line.getCurrent(); by {
			case 'a', 'A':
				options.ascii = true
			case 'f', 'F':
				options.ascii = false
			case 'i', 'I':
				options.inst = true
			case 'b', 'B':
				options.inst = true
				options.basic = true
			default:
				return fmt.Errorf("unknown memory option: %c", by)
			}
		}
	}
}

// Parse segment and offset.
func (line *cmdLine) parseAddress() (uint64, uint64, error) {
	segment, err := line.getOctal()
	if err != nil {
		return 0, 0, errors.New("segment must be octal number")
	}
	offset, err := line.getOctal()
	if err != nil {
		return 0, 0, errors.New("offset must be octal number")
	}
	return segment, offset, nil
}

// Display storage: examine [-a|-i|-b] <segment> <offset> [count].
func examine(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Examine")
	var options memoryOpts
	if err := line.parseMemoryOptions(&options); err != nil {
		return false, err
	}
	segment, offset, err := line.parseAddress()
	if err != nil {
		return false, err
	}
	count := uint64(1)
	line.skipSpace()
	if !line.isEOL() {
		count, err = line.getOctal()
		if err != nil || count == 0 || count > maxExamine {
			return false, errors.New("count must be octal number 1 to 10000")
		}
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}

	buf := make([]uint64, count)
	if err := core.Examine(segment, offset, buf); err != nil {
		return false, err
	}
	if options.inst {
		fmt.Fprint(out, formatInstructions(segment, offset, buf, options.basic))
	} else {
		fmt.Fprint(out, formatMemory(segment, offset, buf, options.ascii))
	}
	return false, nil
}

// One instruction per line.
func formatInstructions(segment, offset uint64, buf []uint64, basic bool) string {
	var str strings.Builder
	for i, w := range buf {
		fmt.Fprintf(&str, "%03o:%08o  %s\n", segment, offset+uint64(i),
			disassembler.PrintInst(word.Instruction(w), basic))
	}
	return str.String()
}

// Format words with their address, octal value and characters.
func formatMemory(segment, offset uint64, buf []uint64, ascii bool) string {
	var str strings.Builder
	for i := 0; i < len(buf); i += wordsPerLine {
		words := buf[i:min(i+wordsPerLine, len(buf))]
		fmt.Fprintf(&str, "%03o:%08o  ", segment, offset+uint64(i))
		octal.FormatWord(&str, words)
		for range wordsPerLine - len(words) {
			str.WriteString("             ")
		}
		str.WriteByte(' ')
		if ascii {
			for _, w := range words {
				for n := range fieldata.QuartersPerWord {
					str.WriteByte(printable(byte(w >> (9 * (3 - n)))))
				}
			}
		} else {
			for _, w := range words {
				for n := range fieldata.SixthsPerWord {
					str.WriteByte(fieldata.ToASCII(uint8(w >> (6 * (5 - n)))))
				}
			}
		}
		str.WriteByte('\n')
	}
	return str.String()
}

func printable(by byte) byte {
	if by < ' ' || by > '~' {
		return '.'
	}
	return by
}

// Change storage: deposit [-a] <segment> <offset> <value>... or "text".
func deposit(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Deposit")
	var options memoryOpts
	if err := line.parseMemoryOptions(&options); err != nil {
		return false, err
	}
	segment, offset, err := line.parseAddress()
	if err != nil {
		return false, err
	}

	var words []uint64
	line.skipSpace()
	if !line.isEOL() && line.line[line.pos] == '"' {
		text, ok := line.parseQuoteString()
		if !ok {
			return false, errors.New("text not terminated")
		}
		if options.ascii {
			words = fieldata.StringToQuarters(text)
		} else {
			words = fieldata.StringToWords(text)
		}
	} else {
		for {
			line.skipSpace()
			if line.isEOL() {
				break
			}
			value, err := line.getOctal()
			if err != nil {
				return false, errors.New("value must be octal number")
			}
			words = append(words, value)
		}
	}
	if len(words) == 0 {
		return false, errors.New("deposit requires values")
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	return false, core.Deposit(segment, offset, words...)
}
