/*
   Debug option configuration.

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
package debugconfig

import (
	"errors"
	"strings"

	config "github.com/rcornwell/S2200/config/configparser"
	"github.com/rcornwell/S2200/emu/core"
	"github.com/rcornwell/S2200/emu/cpu"
)

// register debug keyword on initialize.
func init() {
	config.RegisterModel("DEBUG", config.TypeOptions, setDebug)
}

// DEBUG <unit> <option>,<option>...
func setDebug(_ uint64, unit string, options []config.Option) error {
	switch strings.ToUpper(unit) {
	case "CPU":
		if len(options) == 0 {
			return errors.New("debug cpu requires options")
		}
		var names []string
		for _, opt := range options {
			if opt.EqualOpt != "" {
				return errors.New("debug cpu option can't have equals: " + opt.Name)
			}
			names = append(names, opt.Names()...)
		}
		opts := strings.ToUpper(strings.Join(names, ","))
		if err := cpu.CheckDebug(opts); err != nil {
			return err
		}
		core.AddDebug(opts)
		return nil
	}
	return errors.New("debug option invalid: " + unit)
}
