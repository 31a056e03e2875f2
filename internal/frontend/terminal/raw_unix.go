//go:build !windows

package terminal

import (
	"fmt"

	"github.com/pkg/term/termios"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sys/unix"
)

// makeRaw puts the terminal into raw mode with reads returning immediately,
// with or without input. The returned function restores the previous mode.
func makeRaw(fd uintptr) (func() error, error) {
	var attr unix.Termios
	if err := termios.Tcgetattr(fd, &attr); err != nil {
		return nil, fmt.Errorf("%w: %w", errNotTerminal, err)
	}
	previous := attr

	termios.Cfmakeraw(&attr)
	attr.Cc[unix.VMIN] = 0
	attr.Cc[unix.VTIME] = 0
	if err := termios.Tcsetattr(fd, termios.TCSANOW, &attr); err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}

	return func() error {
		return termios.Tcsetattr(fd, termios.TCSANOW, &previous)
	}, nil
}

// checkGeometry warns if the output terminal can not show the whole display.
func checkGeometry(logger *log.Logger, fd uintptr) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		logger.Debug("Reading terminal geometry failed", log.Err(err))
		return
	}
	if int(ws.Col) < chip8.DisplayWidth || int(ws.Row) < textRows {
		logger.Warn("Terminal is smaller than the display",
			log.Int("columns", int(ws.Col)),
			log.Int("rows", int(ws.Row)))
	}
}
