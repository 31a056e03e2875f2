package chip8

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// mockClock is a manually advanced clock.
type mockClock struct {
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{
		now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (c *mockClock) Now() time.Time {
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// mockLoader returns fixed program bytes or a fixed error.
type mockLoader struct {
	program []byte
	err     error
}

func (l mockLoader) LoadProgram() ([]byte, error) {
	return l.program, l.err
}

// newTestMachine creates a machine with a mock clock and a fixed random seed.
func newTestMachine(t *testing.T, program []byte, options ...Option) (*Machine, *mockClock) {
	t.Helper()

	clock := newMockClock()
	options = append([]Option{WithClock(clock), WithSeed(1)}, options...)

	m, err := New(log.NewTestLogger(t), program, options...)
	assert.NoError(t, err)
	return m, clock
}

// steps executes the given number of instructions.
func steps(t *testing.T, m *Machine, count int) {
	t.Helper()

	for range count {
		assert.NoError(t, m.Step())
	}
}
