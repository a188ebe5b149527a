/*
   S2200 messages to the simulation core.

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
package master

// Packet message types.
const (
	Start     = 1 + iota // Start processor at its current state.
	Stop                 // Stop processor after current cycle.
	Clear                // Clear processor to initial state.
	Continue             // Resume a stopped processor.
	Step                 // Execute a single instruction.
	TimeClock            // Timer tick.
	Console              // Unsolicited console input.
	Quit                 // Shut down the simulation.
)

// UPI value addressing every processor.
const AllProcessors = ^uint64(0)

// Message sent to the simulation core.
type Packet struct {
	Msg  int    // Message type.
	UPI  uint64 // Processor the message is for.
	Text string // Console text.
}

// Return true if packet addresses processor upi.
func (p Packet) For(upi uint64) bool {
	return p.UPI == AllProcessors || p.UPI == upi
}

var names = map[int]string{
	Start:     "start",
	Stop:      "stop",
	Clear:     "clear",
	Continue:  "continue",
	Step:      "step",
	TimeClock: "timeclock",
	Console:   "console",
	Quit:      "quit",
}

func (p Packet) String() string {
	if n, ok := names[p.Msg]; ok {
		return n
	}
	return "unknown"
}
