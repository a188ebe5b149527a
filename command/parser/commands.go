/*
   Processor control commands.

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

	"github.com/rcornwell/S2200/emu/bank"
	core "github.com/rcornwell/S2200/emu/core"
	"github.com/rcornwell/S2200/emu/cpu"
	"github.com/rcornwell/S2200/emu/master"
	"github.com/rcornwell/S2200/util/octal"
)

var cmdList = []cmd{
	{Name: "start", Min: 3, Process: start},
	{Name: "stop", Min: 3, Process: stop},
	{Name: "clear", Min: 2, Process: clearCPU},
	{Name: "continue", Min: 1, Process: cont},
	{Name: "step", Min: 3, Process: step},
	{Name: "set", Min: 3, Process: set, Complete: setComplete},
	{Name: "show", Min: 2, Process: show, Complete: showComplete},
	{Name: "examine", Min: 2, Process: examine},
	{Name: "deposit", Min: 1, Process: deposit},
	{Name: "break", Min: 2, Process: setBreak, Complete: breakComplete},
	{Name: "nobreak", Min: 3, Process: noBreak},
	{Name: "reply", Min: 3, Process: reply},
	{Name: "quit", Min: 4, Process: quit},
}

// Send a control message to the processors named on the line.
func sendControl(line *cmdLine, core *core.Core, msg int) (bool, error) {
	upi, err := line.getUPI(core)
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	core.Send(master.Packet{Msg: msg, UPI: upi})
	return false, nil
}

// Start processors.
func start(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Start")
	return sendControl(line, core, master.Start)
}

// Stop processors.
func stop(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Stop")
	return sendControl(line, core, master.Stop)
}

// Clear processors to initial state.
func clearCPU(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Clear")
	return sendControl(line, core, master.Clear)
}

// Continue processors from where they left off.
func cont(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Continue")
	return sendControl(line, core, master.Continue)
}

// Execute one instruction.
func step(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Step")
	return sendControl(line, core, master.Step)
}

var runModes = map[string]cpu.RunMode{
	"run":  cpu.Normal,
	"step": cpu.SingleInstruction,
}

// Set run mode of processors.
func set(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Set")
	name := line.getWord()
	mode, ok := runModes[name]
	if !ok {
		return false, errors.New("set requires run or step")
	}
	upi, err := line.getUPI(core)
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	for _, p := range core.Processors() {
		if upi == master.AllProcessors || p.UPI() == upi {
			p.SetRunMode(mode)
		}
	}
	return false, nil
}

// Send text to the operating system.
func reply(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Reply")
	text, ok := line.parseQuoteString()
	if !ok || text == "" {
		return false, errors.New("reply requires text")
	}
	core.Send(master.Packet{Msg: master.Console, UPI: master.AllProcessors, Text: text})
	return false, nil
}

// Handle commands that quit simulation.
func quit(_ *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Quit")
	return true, nil
}

// Set processor breakpoint: break <segment> <offset> [fetch] [read] [write] [halt].
func setBreak(line *cmdLine, sys *core.Core) (bool, error) {
	slog.Debug("Command Break")
	segment, err := line.getOctal()
	if err != nil {
		return false, errors.New("break requires segment")
	}
	offset, err := line.getOctal()
	if err != nil {
		return false, errors.New("break requires offset")
	}
	bp := cpu.Breakpoint{Address: bank.NewAbsoluteAddress(core.MSPUPI, segment, offset)}
	for {
		name := line.getWord()
		if name == "" {
			break
		}
		switch name {
		case "fetch":
			bp.Fetch = true
		case "read":
			bp.Read = true
		case "write":
			bp.Write = true
		case "halt":
			bp.Halt = true
		default:
			return false, errors.New("unknown break option: " + name)
		}
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	if !bp.Fetch && !bp.Read && !bp.Write {
		bp.Fetch = true
	}
	for _, p := range sys.Processors() {
		p.SetBreakpoint(&bp)
	}
	return false, nil
}

// Clear processor breakpoint.
func noBreak(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command NoBreak")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	for _, p := range core.Processors() {
		p.SetBreakpoint(nil)
	}
	return false, nil
}

var showList = map[string]func(*cpu.Processor) string{
	"registers": showRegisters,
	"banks":     showBanks,
	"stop":      showStop,
	"jumps":     showJumps,
}

// Process the show command: show registers|banks|stop|jumps [upi].
func show(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Show")
	name := line.getWord()
	if name == "" {
		return false, errors.New("show requires registers, banks, stop or jumps")
	}
	var fn func(*cpu.Processor) string
	for key, f := range showList {
		if strings.HasPrefix(key, name) {
			if fn != nil {
				return false, errors.New("show option not unique: " + name)
			}
			fn = f
		}
	}
	if fn == nil {
		return false, errors.New("unknown show option: " + name)
	}

	upi, err := line.getUPI(core)
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	for _, p := range core.Processors() {
		if upi == master.AllProcessors || p.UPI() == upi {
			fmt.Fprint(out, fn(p))
		}
	}
	return false, nil
}

// Print processor state and registers.
func showRegisters(p *cpu.Processor) string {
	state := p.State()
	var str strings.Builder
	fmt.Fprintf(&str, "Processor %02o ", state.UPI)
	if state.Running {
		str.WriteString("running\n")
	} else {
		fmt.Fprintf(&str, "stopped %s\n", state.StopReason)
	}
	str.WriteString("PAR ")
	octal.FormatHalves(&str, state.PAR.Word())
	str.WriteString("  DR ")
	octal.FormatHalves(&str, state.DR.Word())
	str.WriteString("  IKR ")
	octal.FormatHalves(&str, state.IKR.Word())
	fmt.Fprintf(&str, "  QT %d\n", state.Quantum)
	str.WriteString("Instruction ")
	octal.FormatFields(&str, uint64(state.Instruction))
	str.WriteByte('\n')

	for _, grp := range []struct {
		prefix string
		base   int
	}{
		{"X", 0}, {"A", 12}, {"R", 64}, {"EX", 96}, {"EA", 108}, {"ER", 80},
	} {
		for row := 0; row < 16; row += 4 {
			fmt.Fprintf(&str, "%s%-2d ", grp.prefix, row)
			octal.FormatWord(&str, state.GRS[grp.base+row:grp.base+row+4])
			str.WriteByte('\n')
		}
	}
	return str.String()
}

// Print base registers.
func showBanks(p *cpu.Processor) string {
	state := p.State()
	var str strings.Builder
	for i, br := range state.BR {
		if br.Void {
			fmt.Fprintf(&str, "B%-2d void\n", i)
			continue
		}
		fmt.Fprintf(&str, "B%-2d base %s lower %o upper %o", i, br.Base, br.Lower, br.Upper)
		if br.Large {
			str.WriteString(" large")
		}
		fmt.Fprintf(&str, " key %o gap %o sap %o\n", br.Lock.Value(), br.General.Value(), br.Special.Value())
	}
	for i, e := range state.ABT {
		if e.Level == 0 && e.BDI == 0 {
			continue
		}
		fmt.Fprintf(&str, "ABT%-2d L %o BDI %05o offset %06o\n", i, e.Level, e.BDI, e.Offset)
	}
	return str.String()
}

// Print why processor stopped.
func showStop(p *cpu.Processor) string {
	reason, detail := p.StopReason()
	if p.Running() {
		return fmt.Sprintf("Processor %02o running\n", p.UPI())
	}
	var str strings.Builder
	fmt.Fprintf(&str, "Processor %02o stopped %s detail ", p.UPI(), reason)
	octal.FormatWord(&str, []uint64{detail})
	str.WriteByte('\n')
	return str.String()
}

// Print jump history, which empties it.
func showJumps(p *cpu.Processor) string {
	var str strings.Builder
	for _, par := range p.JumpHistory() {
		octal.FormatHalves(&str, par)
		str.WriteByte('\n')
	}
	return str.String()
}
