/*
   S2200 core emulator loop.

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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rcornwell/S2200/emu/arbiter"
	"github.com/rcornwell/S2200/emu/bank"
	"github.com/rcornwell/S2200/emu/cpu"
	"github.com/rcornwell/S2200/emu/master"
	"github.com/rcornwell/S2200/emu/memory"
	"github.com/rcornwell/S2200/emu/sysc"
	"github.com/rcornwell/S2200/emu/timer"
)

var ErrNoProcessor = errors.New("no processor with UPI")

// Processor set sharing one storage unit.
type Core struct {
	Master   chan master.Packet // Messages from the operator.
	unit     *memory.Unit
	msp      *memory.MSP
	arb      *arbiter.Arbiter
	services *sysc.Services
	procs    []*cpu.Processor
	timer    *timer.Timer
	interval time.Duration

	lock   sync.Mutex
	group  *errgroup.Group
	cancel context.CancelFunc
}

// Build processor set described by cfg. Console receives operating system
// messages and may be nil.
func New(cfg Config, console sysc.Console) (*Core, error) {
	msp, err := memory.NewMSP(MSPUPI, cfg.Memory)
	if err != nil {
		return nil, err
	}
	core := &Core{
		Master:   make(chan master.Packet, 16),
		unit:     memory.NewUnit(msp),
		msp:      msp,
		arb:      arbiter.New(),
		interval: cfg.TickInterval,
	}
	core.services = sysc.New(core.unit, console)

	for _, upi := range cfg.Processors {
		if _, err := core.Processor(upi); err == nil {
			return nil, fmt.Errorf("processor UPI %o defined twice", upi)
		}
		p := cpu.New(upi, core.unit, core.arb, core.services)
		if cfg.SingleStep {
			p.SetRunMode(cpu.SingleInstruction)
		}
		if cfg.Debug != "" {
			if err := p.Debug(cfg.Debug); err != nil {
				return nil, err
			}
		}
		core.procs = append(core.procs, p)
	}
	if len(core.procs) == 0 {
		return nil, errors.New("no processors configured")
	}
	slog.Info("Processor set created", "processors", len(core.procs), "memory", cfg.Memory)
	return core, nil
}

// Run processors and the message loop until ctx is done or Quit is received.
func (core *Core) Start(ctx context.Context) {
	core.lock.Lock()
	defer core.lock.Unlock()
	if core.group != nil {
		return
	}
	ctx, core.cancel = context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(ctx)
	core.group = group

	for _, p := range core.procs {
		group.Go(func() error {
			return p.Run(gctx)
		})
	}
	group.Go(func() error {
		return core.dispatch(gctx)
	})

	core.timer = timer.NewTimer(core.Master, core.interval)
	core.timer.Start()
}

// Wait for all loops to finish.
func (core *Core) Wait() error {
	core.lock.Lock()
	group := core.group
	core.lock.Unlock()
	if group == nil {
		return nil
	}
	return group.Wait()
}

// Shut down processors and wait for them.
func (core *Core) Stop() error {
	slog.Info("Shutting down processors")
	core.lock.Lock()
	cancel := core.cancel
	core.lock.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	core.timer.Shutdown()

	done := make(chan error, 1)
	go func() {
		done <- core.Wait()
	}()
	select {
	case err := <-done:
		return err
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for processors to finish.")
		return context.DeadlineExceeded
	}
}

// Route messages from the operator to processors and system services.
func (core *Core) dispatch(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case pkt := <-core.Master:
			if pkt.Msg == master.Quit {
				core.cancel()
				return nil
			}
			core.processPacket(ctx, pkt)
		}
	}
}

// Process a packet sent to system simulation.
func (core *Core) processPacket(ctx context.Context, pkt master.Packet) {
	if pkt.Msg == master.Console {
		core.services.Reply(pkt.Text)
		return
	}
	for _, p := range core.procs {
		if !pkt.For(p.UPI()) {
			continue
		}
		if pkt.Msg == master.TimeClock {
			// Ticks are dropped when a processor is behind.
			select {
			case p.Inbox() <- pkt:
			default:
			}
			continue
		}
		select {
		case p.Inbox() <- pkt:
		case <-ctx.Done():
			return
		}
	}
}

// Queue message for the processors.
func (core *Core) Send(pkt master.Packet) {
	core.Master <- pkt
}

// Processor with UPI.
func (core *Core) Processor(upi uint64) (*cpu.Processor, error) {
	for _, p := range core.procs {
		if p.UPI() == upi {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w %o", ErrNoProcessor, upi)
}

// All processors in configuration order.
func (core *Core) Processors() []*cpu.Processor {
	return core.procs
}

// System services shared by the processors.
func (core *Core) Services() *sysc.Services {
	return core.services
}

// Read words of fixed or dynamic storage.
func (core *Core) Examine(segment, offset uint64, buf []uint64) error {
	return core.unit.ReadRange(bank.NewAbsoluteAddress(MSPUPI, segment, offset), buf)
}

// Write words of fixed or dynamic storage.
func (core *Core) Deposit(segment, offset uint64, words ...uint64) error {
	return core.unit.WriteRange(bank.NewAbsoluteAddress(MSPUPI, segment, offset), words)
}
