/*
   Command line completion.

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
	"slices"
	"strings"
	"unicode"
)

// Called to complete a command line, during line editing.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	// We have a command, let it try and complete it.
	if line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		match := matchList(name)
		if len(match) != 1 {
			return nil
		}

		if match[0].Complete != nil {
			return match[0].Complete(&line)
		}
		return nil
	}

	var matches []string
	for _, m := range cmdList {
		if strings.HasPrefix(m.Name, name) {
			matches = append(matches, m.Name)
		}
	}
	slices.Sort(matches)
	return matches
}

// Complete a single keyword from list.
func (line *cmdLine) matchWord(words []string) []string {
	line.skipSpace()
	leading := line.line[:line.pos]
	name := strings.ToLower(line.line[line.pos:])
	if strings.ContainsAny(name, " \t") {
		return nil
	}
	var matches []string
	for _, w := range words {
		if strings.HasPrefix(w, name) {
			matches = append(matches, leading+w+" ")
		}
	}
	slices.Sort(matches)
	return matches
}

// Show command completion.
func showComplete(line *cmdLine) []string {
	names := make([]string, 0, len(showList))
	for name := range showList {
		names = append(names, name)
	}
	return line.matchWord(names)
}

// Set command completion.
func setComplete(line *cmdLine) []string {
	names := make([]string, 0, len(runModes))
	for name := range runModes {
		names = append(names, name)
	}
	return line.matchWord(names)
}

// Break command completion, options follow the address.
func breakComplete(line *cmdLine) []string {
	if _, _, err := line.parseAddress(); err != nil || line.pos >= len(line.line) {
		return nil
	}
	for {
		pos := line.pos
		word := line.getWord()
		if word == "" || line.pos >= len(line.line) {
			line.pos = pos
			break
		}
	}
	return line.matchWord([]string{"fetch", "read", "write", "halt"})
}
