/*
   Debug option configuration tests.

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
	"strings"
	"testing"

	config "github.com/rcornwell/S2200/config/configparser"
	"github.com/rcornwell/S2200/emu/core"
)

func TestDebugCPU(t *testing.T) {
	core.ResetSettings()
	defer core.ResetSettings()

	if err := config.LoadConfig(strings.NewReader("DEBUG CPU inst,bank\nDEBUG CPU IRQ\n")); err != nil {
		t.Fatalf("Debug line failed: %v", err)
	}
	if got := core.Settings().Debug; got != "INST,BANK,IRQ" {
		t.Errorf("Debug Got: '%s' Expected: 'INST,BANK,IRQ'", got)
	}
}

func TestDebugErrors(t *testing.T) {
	core.ResetSettings()
	defer core.ResetSettings()

	for _, line := range []string{
		"DEBUG CPU\n",
		"DEBUG CPU TRACE\n",
		"DEBUG CPU INST=yes\n",
		"DEBUG TAPE INST\n",
	} {
		if err := config.LoadConfig(strings.NewReader(line)); err == nil {
			t.Errorf("Line accepted: %s", line)
		}
	}
	if got := core.Settings().Debug; got != "" {
		t.Errorf("Debug set by bad lines: '%s'", got)
	}
}
