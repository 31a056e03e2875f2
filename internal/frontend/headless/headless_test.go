package headless

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type mockController struct {
	down    []int
	up      []int
	stopped bool
}

func (c *mockController) KeyDown(key int) { c.down = append(c.down, key) }
func (c *mockController) KeyUp(key int)   { c.up = append(c.up, key) }
func (c *mockController) Pause()          {}
func (c *mockController) Resume()         {}
func (c *mockController) TogglePause()    {}
func (c *mockController) Stop()           { c.stopped = true }

func TestHeadless_Poll(t *testing.T) {
	h := New(log.NewTestLogger(t),
		WithEvents(
			Event{Poll: 2, Key: 5, Down: true},
			Event{Poll: 3, Key: 5},
		),
		WithStopAfter(4))
	ctl := &mockController{}

	assert.NoError(t, h.Poll(ctl))
	assert.Len(t, ctl.down, 0)

	assert.NoError(t, h.Poll(ctl))
	assert.Len(t, ctl.down, 1)
	assert.Equal(t, 5, ctl.down[0])

	assert.NoError(t, h.Poll(ctl))
	assert.Len(t, ctl.up, 1)
	assert.False(t, ctl.stopped)

	assert.NoError(t, h.Poll(ctl))
	assert.True(t, ctl.stopped)
}

func TestHeadless_RenderAndBeep(t *testing.T) {
	h := New(log.NewTestLogger(t))

	var frame chip8.Frame
	frame[0] = true
	assert.NoError(t, h.Render(frame))
	h.Beep()
	h.Beep()

	assert.Equal(t, 1, h.Frames())
	assert.Equal(t, 2, h.Beeps())
	last := h.LastFrame()
	assert.True(t, last.Pixel(0, 0))
	assert.NoError(t, h.Close())
}
