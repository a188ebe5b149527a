/*
   S2200 configuration of the processor set.

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
package core

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	config "github.com/rcornwell/S2200/config/configparser"
	"github.com/rcornwell/S2200/emu/memory"
	"github.com/rcornwell/S2200/emu/timer"
)

// Words of fixed storage when no MEMORY line is given.
const DefaultMemory = 256 * 1024

// UPI of the main storage processor.
const MSPUPI = 0

// Processor set to build.
type Config struct {
	Memory       uint64        // Words in fixed segment 0.
	Processors   []uint64      // UPI of each instruction processor.
	SingleStep   bool          // Stop after every instruction.
	Debug        string        // CPU debug options.
	TickInterval time.Duration // Dayclock check interval.
}

var (
	settingsLock sync.Mutex
	settings     = defaultConfig()
)

func defaultConfig() Config {
	return Config{Memory: DefaultMemory, TickInterval: timer.DefaultInterval}
}

// register configuration keywords on initialize.
func init() {
	config.RegisterOption("MEMORY", setMemory)
	config.RegisterModel("PROCESSOR", config.TypeModel, addProcessor)
	config.RegisterSwitch("SINGLESTEP", setSingleStep)
}

// Configuration collected from the configuration file. A processor
// with UPI 0 is supplied when none was configured.
func Settings() Config {
	settingsLock.Lock()
	defer settingsLock.Unlock()
	cfg := settings
	cfg.Processors = slices.Clone(settings.Processors)
	if len(cfg.Processors) == 0 {
		cfg.Processors = []uint64{0}
	}
	return cfg
}

// Forget collected configuration.
func ResetSettings() {
	settingsLock.Lock()
	settings = defaultConfig()
	settingsLock.Unlock()
}

// Add CPU debug options for all processors.
func AddDebug(opts string) {
	settingsLock.Lock()
	defer settingsLock.Unlock()
	if settings.Debug != "" {
		settings.Debug += ","
	}
	settings.Debug += opts
}

func setMemory(size uint64, value string, _ []config.Option) error {
	if size == config.NoNumber {
		return errors.New("memory size must be a number: " + value)
	}
	if size == 0 || size > memory.MaxSize {
		return fmt.Errorf("memory size out of range: %s", value)
	}
	settingsLock.Lock()
	settings.Memory = size
	settingsLock.Unlock()
	return nil
}

func addProcessor(upi uint64, _ string, options []config.Option) error {
	if upi > 017 {
		return fmt.Errorf("processor UPI %o out of range", upi)
	}
	settingsLock.Lock()
	defer settingsLock.Unlock()
	if slices.Contains(settings.Processors, upi) {
		return fmt.Errorf("processor UPI %o defined twice", upi)
	}
	if len(options) != 0 {
		return errors.New("processor option invalid: " + options[0].Name)
	}
	settings.Processors = append(settings.Processors, upi)
	return nil
}

func setSingleStep(_ uint64, _ string, _ []config.Option) error {
	settingsLock.Lock()
	settings.SingleStep = true
	settingsLock.Unlock()
	return nil
}
