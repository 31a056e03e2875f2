// Package scheduler drives a CHIP-8 machine in real time and connects it to
// the render, audio and input collaborators of a frontend.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// DefaultRate is the default instruction rate in instructions per second.
const DefaultRate = 500

// maxCatchUp is the maximum number of instructions executed in one cycle.
const maxCatchUp = 4

var errInvalidRate = errors.New("instruction rate must be positive")

// Renderer receives the framebuffer whenever it changed.
type Renderer interface {
	Render(frame chip8.Frame) error
}

// Beeper is notified when the sound timer runs out. Implementations must not
// block.
type Beeper interface {
	Beep()
}

// Beepers notifies every contained beeper in order.
type Beepers []Beeper

// Beep notifies all beepers.
func (b Beepers) Beep() {
	for _, beeper := range b {
		beeper.Beep()
	}
}

// Input is polled once per cycle and forwards pending events to the
// controller. Implementations must not block.
type Input interface {
	Poll(ctl Controller) error
}

// Controller is the set of signals an input source can send.
type Controller interface {
	KeyDown(key int)
	KeyUp(key int)
	Pause()
	Resume()
	TogglePause()
	Stop()
}

// Machine is the part of the virtual machine the scheduler drives.
type Machine interface {
	Step() error
	UpdateTimers() bool
	Dirty() bool
	ClearDirty()
	Frame() chip8.Frame
	KeyDown(key int)
	KeyUp(key int)
}

// Scheduler runs the cycle loop of a machine. It is not safe for concurrent
// use, the collaborators are called synchronously from Run.
type Scheduler struct {
	logger   *log.Logger
	machine  Machine
	renderer Renderer
	beeper   Beeper
	input    Input
	clock    chip8.Clock

	interval time.Duration
	lastStep time.Time
	paused   bool
	stopped  bool

	cycles int
	steps  int
}

// Option configures a scheduler on construction.
type Option func(*Scheduler)

// WithClock sets the clock that is sampled once per cycle by Run.
func WithClock(clock chip8.Clock) Option {
	return func(s *Scheduler) {
		s.clock = clock
	}
}

// New returns a scheduler executing rate instructions per second.
func New(logger *log.Logger, machine Machine, renderer Renderer, beeper Beeper, input Input,
	rate int, options ...Option) (*Scheduler, error) {

	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", errInvalidRate, rate)
	}

	s := &Scheduler{
		logger:   logger,
		machine:  machine,
		renderer: renderer,
		beeper:   beeper,
		input:    input,
		clock:    chip8.SystemClock{},
		interval: time.Second / time.Duration(rate),
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// Run executes cycles until the scheduler is stopped, the context is
// cancelled or a cycle fails. Cancellation and stop are not errors.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug("Scheduler started", log.Stringer("interval", s.interval))
	defer func() {
		s.logger.Debug("Scheduler stopped",
			log.Int("cycles", s.cycles),
			log.Int("instructions", s.steps))
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := s.Cycle(s.clock.Now()); err != nil {
			return err
		}
		if s.stopped {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Cycle performs a single scheduler cycle at the given time. Input is always
// polled, one instruction is executed for every instruction interval that
// passed since the last one if the machine is not paused. The sound timer
// running out notifies the beeper and a changed framebuffer is rendered.
func (s *Scheduler) Cycle(now time.Time) error {
	s.cycles++

	if err := s.input.Poll(s); err != nil {
		return fmt.Errorf("polling input: %w", err)
	}
	if s.stopped {
		return nil
	}

	if !s.paused {
		if err := s.step(now); err != nil {
			s.stopped = true
			return err
		}
		if s.machine.UpdateTimers() {
			s.beeper.Beep()
		}
	}

	if s.machine.Dirty() {
		if err := s.renderer.Render(s.machine.Frame()); err != nil {
			return fmt.Errorf("rendering frame: %w", err)
		}
		s.machine.ClearDirty()
	}
	return nil
}

// step executes one instruction per instruction interval that passed since
// the last executed one. Partial intervals carry over to the next cycle. A
// scheduler that fell more than maxCatchUp intervals behind executes
// maxCatchUp instructions and continues from now.
func (s *Scheduler) step(now time.Time) error {
	due := 1
	if s.lastStep.IsZero() {
		s.lastStep = now
	} else {
		due = int(now.Sub(s.lastStep) / s.interval)
		if due > maxCatchUp {
			due = maxCatchUp
			s.lastStep = now
		} else {
			s.lastStep = s.lastStep.Add(time.Duration(due) * s.interval)
		}
	}

	for range due {
		if err := s.machine.Step(); err != nil {
			return fmt.Errorf("stepping machine: %w", err)
		}
		s.steps++
	}
	return nil
}

// KeyDown forwards a key press to the machine.
func (s *Scheduler) KeyDown(key int) {
	s.machine.KeyDown(key)
}

// KeyUp forwards a key release to the machine.
func (s *Scheduler) KeyUp(key int) {
	s.machine.KeyUp(key)
}

// Pause stops instruction execution, input is still polled.
func (s *Scheduler) Pause() {
	if s.paused {
		return
	}
	s.paused = true
	s.logger.Info("Paused")
}

// Resume continues instruction execution after a pause.
func (s *Scheduler) Resume() {
	if !s.paused {
		return
	}
	s.paused = false
	s.lastStep = time.Time{}
	s.logger.Info("Resumed")
}

// TogglePause pauses a running scheduler or resumes a paused one.
func (s *Scheduler) TogglePause() {
	if s.paused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Stop ends the cycle loop after the current cycle.
func (s *Scheduler) Stop() {
	s.stopped = true
}

// Paused returns whether instruction execution is paused.
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Stopped returns whether the scheduler was stopped.
func (s *Scheduler) Stopped() bool {
	return s.stopped
}

// Instructions returns the number of instructions executed.
func (s *Scheduler) Instructions() int {
	return s.steps
}
