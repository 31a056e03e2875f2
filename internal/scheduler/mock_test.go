package scheduler

import (
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// mockClock is a manually advanced clock shared by machine and test.
type mockClock struct {
	now time.Time
}

func (c *mockClock) Now() time.Time {
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// mockRenderer records rendered frames.
type mockRenderer struct {
	frames []chip8.Frame
	err    error
}

func (r *mockRenderer) Render(frame chip8.Frame) error {
	r.frames = append(r.frames, frame)
	return r.err
}

// mockBeeper counts beeps.
type mockBeeper struct {
	beeps int
}

func (b *mockBeeper) Beep() {
	b.beeps++
}

// mockInput runs the scripted action of the current poll, if any.
type mockInput struct {
	polls   int
	actions map[int]func(ctl Controller)
	err     error
}

func (i *mockInput) Poll(ctl Controller) error {
	i.polls++
	if action, ok := i.actions[i.polls]; ok {
		action(ctl)
	}
	return i.err
}

type testEnv struct {
	clock     *mockClock
	machine   *chip8.Machine
	renderer  *mockRenderer
	beeper    *mockBeeper
	input     *mockInput
	scheduler *Scheduler
}

func newTestEnv(t *testing.T, program []byte) *testEnv {
	t.Helper()

	logger := log.NewTestLogger(t)
	env := &testEnv{
		clock:    &mockClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		renderer: &mockRenderer{},
		beeper:   &mockBeeper{},
		input:    &mockInput{actions: map[int]func(ctl Controller){}},
	}

	var err error
	env.machine, err = chip8.New(logger, program, chip8.WithClock(env.clock), chip8.WithSeed(1))
	assert.NoError(t, err)

	env.scheduler, err = New(logger, env.machine, env.renderer, env.beeper, env.input,
		DefaultRate, WithClock(env.clock))
	assert.NoError(t, err)
	return env
}

// cycle advances the clock by one instruction interval and runs a cycle.
func (e *testEnv) cycle(t *testing.T) {
	t.Helper()
	e.clock.Advance(e.scheduler.interval)
	assert.NoError(t, e.scheduler.Cycle(e.clock.Now()))
}
