/*
   S2200 dayclock tick source.

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
package timer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rcornwell/S2200/emu/master"
)

// Default interval between dayclock ticks.
const DefaultInterval = 10 * time.Millisecond

type Timer struct {
	wg       sync.WaitGroup
	master   chan<- master.Packet
	interval time.Duration
	enable   chan bool     // Enable or disable timer.
	done     chan struct{} // Stop timer task.
	once     sync.Once
}

// Create timer sending TimeClock packets to the master channel every interval.
// The timer starts disabled.
func NewTimer(masterChannel chan<- master.Packet, interval time.Duration) *Timer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	timer := &Timer{
		master:   masterChannel,
		interval: interval,
		enable:   make(chan bool, 1),
		done:     make(chan struct{}),
	}
	timer.wg.Add(1)
	go timer.run()
	return timer
}

// Start delivering ticks.
func (timer *Timer) Start() {
	timer.enable <- true
}

// Stop delivering ticks.
func (timer *Timer) Stop() {
	timer.enable <- false
}

// Shutdown timer task.
func (timer *Timer) Shutdown() {
	timer.once.Do(func() { close(timer.done) })
	done := make(chan struct{})
	go func() {
		timer.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for timer to finish.")
	}
}

func (timer *Timer) run() {
	defer timer.wg.Done()
	ticker := time.NewTicker(timer.interval)
	defer ticker.Stop()
	running := false

	for {
		select {
		case <-ticker.C:
			if !running {
				continue
			}
			// Drop the tick if the core is busy, the next one will do.
			select {
			case timer.master <- master.Packet{Msg: master.TimeClock, UPI: master.AllProcessors}:
			case <-timer.done:
				return
			default:
			}
		case running = <-timer.enable:
			if running {
				ticker.Reset(timer.interval)
			}
		case <-timer.done:
			return
		}
	}
}
