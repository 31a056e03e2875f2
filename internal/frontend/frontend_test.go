package frontend

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrogolib/assert"
)

type mockController struct {
	down    []int
	up      []int
	toggles int
	stops   int
}

func (c *mockController) KeyDown(key int) { c.down = append(c.down, key) }
func (c *mockController) KeyUp(key int)   { c.up = append(c.up, key) }
func (c *mockController) Pause()          {}
func (c *mockController) Resume()         {}
func (c *mockController) TogglePause()    { c.toggles++ }
func (c *mockController) Stop()           { c.stops++ }

func TestKeyEvent(t *testing.T) {
	km := keymap.Default()
	ctl := &mockController{}

	assert.True(t, KeyEvent(ctl, km, "W", true))
	assert.True(t, KeyEvent(ctl, km, "w", false))
	assert.Len(t, ctl.down, 1)
	assert.Equal(t, 5, ctl.down[0])
	assert.Len(t, ctl.up, 1)
	assert.Equal(t, 5, ctl.up[0])

	assert.True(t, KeyEvent(ctl, km, "F1", true))
	assert.True(t, KeyEvent(ctl, km, "F1", false))
	assert.Equal(t, 1, ctl.toggles)

	assert.True(t, KeyEvent(ctl, km, "Escape", true))
	assert.Equal(t, 1, ctl.stops)

	assert.False(t, KeyEvent(ctl, km, "Left Shift", true))
	assert.Len(t, ctl.down, 1)
}
