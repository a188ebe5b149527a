/*
   S2200 processor stop conditions.

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
package interrupt

import (
	"errors"
	"fmt"
)

// Raised by basic mode indirect addressing, instruction must be resumed.
var ErrUnresolvedAddress = errors.New("unresolved address")

type StopReason int

const (
	StopInitial StopReason = iota
	StopCleared
	StopDebug
	StopDevelopment
	StopBreakpoint
	StopHaltJumpExecuted
	StopICSBaseRegisterInvalid
	StopICSOverflow
	StopInitiateAutoRecovery
	StopL0BaseRegisterInvalid
	StopPanelHalt
	StopInterruptHandlerHardwareFailure
	StopInterruptHandlerOffsetOutOfRange
	StopInterruptHandlerInvalidBankType
	StopInterruptHandlerInvalidLevelBDI
)

var stopNames = [...]string{
	StopInitial:                          "Initial",
	StopCleared:                          "Cleared",
	StopDebug:                            "Debug",
	StopDevelopment:                      "Development",
	StopBreakpoint:                       "Breakpoint",
	StopHaltJumpExecuted:                 "HaltJumpExecuted",
	StopICSBaseRegisterInvalid:           "ICSBaseRegisterInvalid",
	StopICSOverflow:                      "ICSOverflow",
	StopInitiateAutoRecovery:             "InitiateAutoRecovery",
	StopL0BaseRegisterInvalid:            "L0BaseRegisterInvalid",
	StopPanelHalt:                        "PanelHalt",
	StopInterruptHandlerHardwareFailure:  "InterruptHandlerHardwareFailure",
	StopInterruptHandlerOffsetOutOfRange: "InterruptHandlerOffsetOutOfRange",
	StopInterruptHandlerInvalidBankType:  "InterruptHandlerInvalidBankType",
	StopInterruptHandlerInvalidLevelBDI:  "InterruptHandlerInvalidLevelBDI",
}

func (r StopReason) String() string {
	if r >= 0 && int(r) < len(stopNames) {
		return stopNames[r]
	}
	return fmt.Sprintf("StopReason(%d)", int(r))
}

// Processor stop with reason and detail word.
type Stop struct {
	Reason StopReason
	Detail uint64
}

func NewStop(reason StopReason, detail uint64) *Stop {
	return &Stop{Reason: reason, Detail: detail & 0_777777_777777}
}

func (s *Stop) Error() string {
	return fmt.Sprintf("processor stop %s detail %012o", s.Reason.String(), s.Detail)
}

// Return the stop carried by err, if any.
func AsStop(err error) (*Stop, bool) {
	var s *Stop
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}
