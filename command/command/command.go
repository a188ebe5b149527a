/*
   Operator console.

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
package command

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Last status message posted by a processor.
type Status struct {
	First  string
	Second string
}

// Operator console receiving operating system messages.
type Console struct {
	lock   sync.Mutex
	out    io.Writer
	status map[uint64]Status
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out, status: map[uint64]Status{}}
}

// Record status lines, shown by show status.
func (c *Console) StatusMessage(upi uint64, first, second string) {
	c.lock.Lock()
	c.status[upi] = Status{First: first, Second: second}
	c.lock.Unlock()
	slog.Debug("Console status", "upi", upi, "first", first, "second", second)
}

// Print a read only message.
func (c *Console) ReadOnlyMessage(upi uint64, text string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	fmt.Fprintf(c.out, "%02o: %s\n", upi, text)
}

// Last status of processor upi.
func (c *Console) Status(upi uint64) (Status, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	st, ok := c.status[upi]
	return st, ok
}
