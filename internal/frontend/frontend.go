// Package frontend contains the contract shared by the frontends that
// render the display, play the beep and read the keyboard.
package frontend

import (
	"io"

	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/scheduler"
)

// Frontend is a render, audio and input collaborator of the scheduler.
// Close releases the resources of the frontend.
type Frontend interface {
	scheduler.Renderer
	scheduler.Beeper
	scheduler.Input
	io.Closer
}

// KeyEvent forwards a press or release of the named physical key to the
// controller according to the keymap. It returns false for unbound keys.
// Pause and quit bindings only act on the press.
func KeyEvent(ctl scheduler.Controller, km *keymap.Keymap, name string, down bool) bool {
	binding, ok := km.Lookup(name)
	if !ok {
		return false
	}

	switch binding.Action {
	case keymap.ActionKey:
		if down {
			ctl.KeyDown(binding.Key)
		} else {
			ctl.KeyUp(binding.Key)
		}
	case keymap.ActionPause:
		if down {
			ctl.TogglePause()
		}
	case keymap.ActionQuit:
		if down {
			ctl.Stop()
		}
	}
	return true
}
