/*
   Configuration file parser.

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
package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// List of options to pass to create routine.
type Option struct {
	Name     string    // Name of option.
	EqualOpt string    // Value of string after =.
	Value    []*string // Value of option.
}

// Option after keyword.
type FirstOption struct {
	number   uint64 // Value of option if a number.
	isNumber bool   // Valid number in number.
	value    string // String value of option.
}

// Current option line being parsed.
type optionLine struct {
	line string // Current option line.
	pos  int    // Current position in line.
}

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <keyword> <whitespace> <first> <whitespace> <options> |
 *            <keyword> <quoteopt> |
 *            <keyword>
 * <first> ::= <string> | <octalnumber> | <number><K|M>
 * <options> ::= *(<option> *(<whitespace>))
 * <option> ::= <opt> *(',' *(<whitespace>) <string>)
 * <opt> := <optvalue> | <string>
 * <optvalue> ::= <string> '=' <quoteopt>
 * <quoteopt> ::= <string> | '"' *(<letter> | <whitespace>) '"'
 * <string> ::= *(<letter> | <number>)
 */

const (
	TypeModel   = 1 + iota // Unit which requires a number.
	TypeOption             // Accepts a option parameter.
	TypeOptions            // Accepts a name and list of options.
	TypeSwitch             // Keyword only used to set a flag.
	TypeFile               // Accepts a file name.
)

// Passed as number when the first option was not a number.
const NoNumber = ^uint64(0)

// Create function for a keyword.
type CreateFunc func(number uint64, value string, options []Option) error

type modelDef struct {
	create CreateFunc
	ty     int
}

var models = map[string]modelDef{}

var lineNumber int

// Return type of keyword or 0 if not registered.
func getModel(mod string) int {
	model, ok := models[mod]
	if !ok {
		return 0
	}
	return model.ty
}

func register(mod string, ty int, fn CreateFunc) {
	mod = strings.ToUpper(mod)
	slog.Debug("Registering configuration keyword", "keyword", mod, "type", ty)
	models[mod] = modelDef{create: fn, ty: ty}
}

// Register should be called from init functions.
func RegisterModel(mod string, ty int, fn CreateFunc) {
	register(mod, ty, fn)
}

// Register keyword without parameters.
func RegisterSwitch(mod string, fn CreateFunc) {
	register(mod, TypeSwitch, fn)
}

// Register keyword with one parameter.
func RegisterOption(mod string, fn CreateFunc) {
	register(mod, TypeOption, fn)
}

// Register keyword followed by a file name.
func RegisterFile(mod string, fn CreateFunc) {
	register(mod, TypeFile, fn)
}

// Look up keyword and make sure it is of type ty.
func lookup(mod string, ty int, kind string) (modelDef, error) {
	mod = strings.ToUpper(mod)
	model, ok := models[mod]
	if !ok {
		return model, fmt.Errorf("unknown %s: %s", kind, mod)
	}
	if model.ty != ty {
		return model, fmt.Errorf("not a %s type: %s", kind, mod)
	}
	return model, nil
}

func (first *FirstOption) num() uint64 {
	if first.isNumber {
		return first.number
	}
	return NoNumber
}

// Create a unit of type model.
func createModel(mod string, first *FirstOption, options []Option) error {
	model, err := lookup(mod, TypeModel, "model")
	if err != nil {
		return err
	}
	return model.create(first.number, "", options)
}

// Create a option with one parameter.
func createOption(mod string, first *FirstOption) error {
	model, err := lookup(mod, TypeOption, "option")
	if err != nil {
		return err
	}
	return model.create(first.num(), first.value, []Option{})
}

// Create a option with options.
func createOptions(mod string, first *FirstOption, options []Option) error {
	model, err := lookup(mod, TypeOptions, "options")
	if err != nil {
		return err
	}
	return model.create(first.num(), first.value, options)
}

// Create switch option.
func createSwitch(mod string) error {
	model, err := lookup(mod, TypeSwitch, "switch")
	if err != nil {
		return err
	}
	return model.create(0, "", nil)
}

// Create file option.
func createFile(mod string, name string) error {
	model, err := lookup(mod, TypeFile, "file")
	if err != nil {
		return err
	}
	return model.create(NoNumber, name, nil)
}

// Load in a configuration file.
func LoadConfigFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return LoadConfig(file)
}

// Load configuration from reader.
func LoadConfig(in io.Reader) error {
	lineNumber = 0
	reader := bufio.NewReader(in)
	for {
		var err error

		line := optionLine{}
		line.line, err = reader.ReadString('\n')
		lineNumber++
		if len(line.line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if err := line.parseLine(); err != nil {
			return err
		}
	}
	return nil
}

// Parse one line from file.
func (line *optionLine) parseLine() error {
	model := line.parseModel()
	if model == "" {
		return nil
	}
	switch getModel(model) {
	case TypeModel:
		first := line.parseFirst()
		if first == nil || !first.isNumber {
			return fmt.Errorf("%s requires a number, line: %d", model, lineNumber)
		}
		options, err := line.parseOptions()
		if err != nil {
			return err
		}
		return createModel(model, first, options)

	case TypeOption:
		first := line.parseFirst()
		line.skipSpace()
		if !line.isEOL() || first == nil {
			return fmt.Errorf("option: %s not followed by value, line: %d", model, lineNumber)
		}
		return createOption(model, first)

	case TypeOptions:
		first := line.parseFirst()
		if first == nil {
			return fmt.Errorf("option: %s not followed by value, line: %d", model, lineNumber)
		}
		options, err := line.parseOptions()
		if err != nil {
			return err
		}
		return createOptions(model, first, options)

	case TypeSwitch:
		line.skipSpace()
		if !line.isEOL() {
			return fmt.Errorf("switch: %s followed by options, line: %d", model, lineNumber)
		}
		return createSwitch(model)

	case TypeFile:
		name, ok := line.parseFileName()
		line.skipSpace()
		if !ok || name == "" || !line.isEOL() {
			return fmt.Errorf("file: %s requires a file name, line: %d", model, lineNumber)
		}
		return createFile(model, name)
	}
	return fmt.Errorf("no type: %s registered, line: %d", model, lineNumber)
}

// Skip forward over line until none whitespace character found.
func (line *optionLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *optionLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Return next letter or digit in line. 0 if EOL or space.
func (line *optionLine) getNext(inQuote bool) byte {
	line.pos++
	if line.pos >= len(line.line) || (!inQuote && line.isEOL()) {
		return 0
	}
	by := line.line[line.pos]
	if unicode.IsLetter(rune(by)) || unicode.IsNumber(rune(by)) || inQuote {
		return by
	}
	return 0
}

// Peek at next character.
func (line *optionLine) getPeek() byte {
	if (line.pos + 1) >= len(line.line) {
		return 0
	}
	return line.line[line.pos+1]
}

// Collect letters and digits at the current position.
func (line *optionLine) word() string {
	var sb strings.Builder
	for !line.isEOL() {
		by := line.line[line.pos]
		if !unicode.IsLetter(rune(by)) && !unicode.IsNumber(rune(by)) {
			break
		}
		sb.WriteByte(by)
		line.pos++
	}
	return sb.String()
}

// Parse keyword, returns upper case name or empty at end of line.
func (line *optionLine) parseModel() string {
	line.skipSpace()
	if line.isEOL() {
		return ""
	}
	return strings.ToUpper(line.word())
}

// Parse first option parameter.
func (line *optionLine) parseFirst() *FirstOption {
	line.skipSpace()
	if line.isEOL() {
		return nil
	}

	value := line.word()
	option := FirstOption{number: NoNumber, value: value}
	if n, err := ParseNumber(value); err == nil {
		option.number = n
		option.isNumber = true
	}
	return &option
}

// Convert octal number, or decimal number followed by K or M.
func ParseNumber(value string) (uint64, error) {
	if value == "" {
		return 0, errors.New("empty number")
	}
	mult := uint64(0)
	switch value[len(value)-1] {
	case 'k', 'K':
		mult = 1024
	case 'm', 'M':
		mult = 1024 * 1024
	}
	if mult == 0 {
		return strconv.ParseUint(value, 8, 36)
	}
	n, err := strconv.ParseUint(value[:len(value)-1], 10, 36)
	if err != nil {
		return 0, err
	}
	return n * mult, nil
}

// Parse string that is "string" or just string.
func (line *optionLine) parseQuoteString() (string, bool) {
	inQuote := false
	var sb strings.Builder

	if line.getPeek() == '"' {
		inQuote = true
		line.pos++
	}

	for {
		by := line.getNext(inQuote)
		if inQuote && by == '\n' {
			return sb.String(), false
		}
		// In a quoted string "" gets replaced by single quote.
		if by == '"' && inQuote {
			if line.getPeek() != '"' {
				line.pos++
				return sb.String(), true
			}
			line.pos++
		}

		if !inQuote && (by == 0 || by == ',' || unicode.IsSpace(rune(by))) {
			return sb.String(), true
		}
		if by == 0 {
			return sb.String(), false
		}
		sb.WriteByte(by)
	}
}

// Parse file name, quoted or up to the next space.
func (line *optionLine) parseFileName() (string, bool) {
	line.skipSpace()
	if line.isEOL() {
		return "", false
	}
	if line.line[line.pos] == '"' {
		line.pos--
		return line.parseQuoteString()
	}
	start := line.pos
	for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return line.line[start:line.pos], true
}

// Parse option name.
func (line *optionLine) getName() (string, error) {
	if line.isEOL() {
		return "", nil
	}

	// First character must be alphabetic.
	by := line.line[line.pos]
	if !unicode.IsLetter(rune(by)) {
		return "", fmt.Errorf("invalid option encountered line: %d [%d]", lineNumber, line.pos)
	}
	return line.word(), nil
}

// Parse options for a line.
func (line *optionLine) parseOption() (*Option, error) {
	line.skipSpace()

	value, err := line.getName()
	if value == "" {
		return nil, err
	}
	option := Option{Name: value}
	if line.isEOL() {
		return &option, nil
	}

	// Check if equals option.
	if line.line[line.pos] == '=' {
		v, ok := line.parseQuoteString()
		if !ok {
			return nil, fmt.Errorf("invalid quoted string line: %d [%d]", lineNumber, line.pos)
		}
		option.EqualOpt = v
	}

	line.skipSpace()

	// Grab all , options
	for !line.isEOL() && line.line[line.pos] == ',' {
		line.pos++
		line.skipSpace()
		v, err := line.getName()
		if err != nil {
			return nil, err
		}
		if v != "" {
			option.Value = append(option.Value, &v)
		}
		line.skipSpace()
	}

	return &option, nil
}

// Collect all options for line.
func (line *optionLine) parseOptions() ([]Option, error) {
	options := []Option{}
	for {
		option, err := line.parseOption()
		if err != nil {
			return nil, err
		}
		if option == nil {
			break
		}
		options = append(options, *option)
	}
	return options, nil
}

// Names of an option followed by its comma values.
func (opt Option) Names() []string {
	names := []string{opt.Name}
	for _, v := range opt.Value {
		names = append(names, *v)
	}
	return names
}
