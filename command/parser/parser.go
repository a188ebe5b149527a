/*
   Command parser.

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
	"io"
	"os"
	"strings"
	"unicode"

	core "github.com/rcornwell/S2200/emu/core"
	"github.com/rcornwell/S2200/emu/master"
)

type cmd struct {
	Name     string // Command name.
	Min      int    // Minimum match size.
	Process  func(*cmdLine, *core.Core) (bool, error)
	Complete func(*cmdLine) []string
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

// Where command output is written.
var out io.Writer = os.Stdout

// Execute the command line given.
func ProcessCommand(commandLine string, core *core.Core) (bool, error) {
	line := cmdLine{line: commandLine}
	command := line.getWord()
	if command == "" {
		if !line.isEOL() {
			return false, errors.New("command not found: " + strings.TrimSpace(commandLine))
		}
		return false, nil
	}

	match := matchList(command)
	if len(match) == 0 {
		return false, errors.New("command not found: " + command)
	}

	if len(match) > 1 {
		return false, errors.New("unique command not found: " + command)
	}

	return match[0].Process(&line, core)
}

// Check if command matches at least to minimum length.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.Name) {
		return false
	}
	return strings.HasPrefix(match.Name, command) && len(command) >= match.Min
}

// Check if command matches one of the commands.
func matchList(command string) []cmd {
	if command == "" {
		return []cmd{}
	}

	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

// Skip forward over line until none whitespace character found.
func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Return current character and advance to next.
func (line *cmdLine) getCurrent() byte {
	if line.isEOL() {
		return 0
	}
	by := line.line[line.pos]
	line.pos++
	return by
}

// Parse string that is "string" or just the rest of the line.
func (line *cmdLine) parseQuoteString() (string, bool) {
	line.skipSpace()
	if line.pos >= len(line.line) {
		return "", false
	}
	if line.line[line.pos] != '"' {
		value := strings.TrimRight(line.line[line.pos:], " \t")
		line.pos = len(line.line)
		return value, true
	}

	line.pos++
	var value strings.Builder
	for line.pos < len(line.line) {
		by := line.line[line.pos]
		line.pos++
		if by == '"' {
			// "" inside quotes is a single quote.
			if line.pos < len(line.line) && line.line[line.pos] == '"' {
				line.pos++
			} else {
				return value.String(), true
			}
		}
		value.WriteByte(by)
	}
	return "", false
}

// Parse an octal number.
func (line *cmdLine) getOctal() (uint64, error) {
	line.skipSpace()
	if line.isEOL() {
		return 0, errors.New("not a number")
	}

	pos := line.pos
	value := uint64(0)
	for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		by := line.getCurrent()
		// Value must fit in 36 bits.
		if by < '0' || by > '7' || (value>>33) != 0 {
			line.pos = pos
			return 0, errors.New("not an octal number")
		}
		value = (value << 3) | uint64(by-'0')
	}
	return value, nil
}

// Parse a word of letters, returned in lower case.
func (line *cmdLine) getWord() string {
	line.skipSpace()

	pos := line.pos
	var value strings.Builder
	for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		by := line.getCurrent()
		if !unicode.IsLetter(rune(by)) {
			line.pos = pos
			return ""
		}
		value.WriteByte(by)
	}
	return strings.ToLower(value.String())
}

// Parse optional processor number, all processors if none given.
func (line *cmdLine) getUPI(core *core.Core) (uint64, error) {
	line.skipSpace()
	if line.isEOL() {
		return master.AllProcessors, nil
	}
	if word := line.getWord(); word != "" {
		if word != "all" {
			return 0, errors.New("processor must be number or all: " + word)
		}
		return master.AllProcessors, nil
	}
	upi, err := line.getOctal()
	if err != nil {
		return 0, errors.New("processor must be octal number")
	}
	if _, err := core.Processor(upi); err != nil {
		return 0, err
	}
	return upi, nil
}

// Check nothing follows the command.
func (line *cmdLine) checkEOL() error {
	line.skipSpace()
	if !line.isEOL() {
		return errors.New("extra text on line: " + line.line[line.pos:])
	}
	return nil
}
