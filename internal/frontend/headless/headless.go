// Package headless implements a frontend without any output. Input is
// scripted, it is used to run programs unattended and in tests.
package headless

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/scheduler"
	"github.com/retroenv/retrogolib/log"
)

// Event is a scripted key event, delivered on the poll with the given
// 1-based number.
type Event struct {
	Poll int
	Key  int
	Down bool
}

// Headless is a frontend that records frames and beeps.
type Headless struct {
	logger    *log.Logger
	events    []Event
	stopAfter int

	polls  int
	frames int
	beeps  int
	last   chip8.Frame
}

// Option configures a headless frontend.
type Option func(*Headless)

// WithEvents schedules key events.
func WithEvents(events ...Event) Option {
	return func(h *Headless) {
		h.events = append(h.events, events...)
	}
}

// WithStopAfter stops the scheduler on the given poll.
func WithStopAfter(polls int) Option {
	return func(h *Headless) {
		h.stopAfter = polls
	}
}

// New returns a headless frontend.
func New(logger *log.Logger, options ...Option) *Headless {
	h := &Headless{logger: logger}
	for _, option := range options {
		option(h)
	}
	return h
}

// Render stores the frame.
func (h *Headless) Render(frame chip8.Frame) error {
	h.frames++
	h.last = frame
	return nil
}

// Beep counts the beep.
func (h *Headless) Beep() {
	h.beeps++
	h.logger.Debug("Beep")
}

// Poll delivers the scripted events of this poll.
func (h *Headless) Poll(ctl scheduler.Controller) error {
	h.polls++

	for _, event := range h.events {
		if event.Poll != h.polls {
			continue
		}
		if event.Down {
			ctl.KeyDown(event.Key)
		} else {
			ctl.KeyUp(event.Key)
		}
	}

	if h.stopAfter > 0 && h.polls >= h.stopAfter {
		ctl.Stop()
	}
	return nil
}

// Close logs a summary of the run.
func (h *Headless) Close() error {
	h.logger.Debug("Headless frontend closed",
		log.Int("polls", h.polls),
		log.Int("frames", h.frames),
		log.Int("beeps", h.beeps))
	return nil
}

// Frames returns the number of rendered frames.
func (h *Headless) Frames() int {
	return h.frames
}

// Beeps returns the number of beeps.
func (h *Headless) Beeps() int {
	return h.beeps
}

// LastFrame returns the last rendered frame.
func (h *Headless) LastFrame() chip8.Frame {
	return h.last
}
