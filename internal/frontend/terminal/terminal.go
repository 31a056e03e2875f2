// Package terminal implements a frontend that renders the display with
// Unicode half blocks into an ANSI terminal and reads the keyboard in raw
// mode.
//
// Terminals only report key presses, a key is therefore held down until no
// repeat of it was received for the hold duration.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/scheduler"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// DefaultHold is the time a key stays pressed after its last repeat.
const DefaultHold = 150 * time.Millisecond

const (
	textRows = chip8.DisplayHeight / 2

	escClear      = "\x1b[2J"
	escHome       = "\x1b[H"
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?25h"
	bell          = "\a"

	keyInterrupt = 0x03
)

var errNotTerminal = errors.New("input is not a terminal")

// Terminal is a frontend for ANSI terminals.
type Terminal struct {
	logger *log.Logger
	keymap *keymap.Keymap
	clock  chip8.Clock
	hold   time.Duration

	in  io.Reader
	out io.Writer

	restore  func() error
	readBuf  []byte
	held     map[string]time.Time
	rendered strings.Builder
}

// New switches the input terminal into raw mode and returns the frontend.
// The terminal mode is restored by Close.
func New(logger *log.Logger, km *keymap.Keymap, in, out *os.File) (*Terminal, error) {
	restore, err := makeRaw(in.Fd())
	if err != nil {
		return nil, err
	}

	t := newTerminal(logger, km, in, out, chip8.SystemClock{})
	t.restore = restore
	checkGeometry(logger, out.Fd())

	if _, err := io.WriteString(out, escClear+escHideCursor); err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("writing to terminal: %w", err)
	}
	return t, nil
}

func newTerminal(logger *log.Logger, km *keymap.Keymap, in io.Reader, out io.Writer, clock chip8.Clock) *Terminal {
	return &Terminal{
		logger:  logger,
		keymap:  km,
		clock:   clock,
		hold:    DefaultHold,
		in:      in,
		out:     out,
		readBuf: make([]byte, 64),
		held:    make(map[string]time.Time),
	}
}

// Render draws the frame at the top left corner of the terminal, two pixel
// rows per text row.
func (t *Terminal) Render(frame chip8.Frame) error {
	t.rendered.Reset()
	t.rendered.WriteString(escHome)
	renderFrame(&t.rendered, &frame)

	if _, err := io.WriteString(t.out, t.rendered.String()); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

func renderFrame(sb *strings.Builder, frame *chip8.Frame) {
	for row := range textRows {
		if row > 0 {
			sb.WriteString("\r\n")
		}
		for x := range chip8.DisplayWidth {
			top := frame.Pixel(x, 2*row)
			bottom := frame.Pixel(x, 2*row+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
	}
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() {
	if _, err := io.WriteString(t.out, bell); err != nil {
		t.logger.Error("Ringing terminal bell failed", log.Err(err))
	}
}

// Poll reads the pending input without blocking, presses the bound keys and
// releases keys whose hold time expired.
func (t *Terminal) Poll(ctl scheduler.Controller) error {
	n, err := t.in.Read(t.readBuf)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading from terminal: %w", err)
	}

	now := t.clock.Now()
	pressed := set.New[string]()
	for _, name := range decodeKeys(t.readBuf[:n]) {
		if name == interruptName {
			ctl.Stop()
			continue
		}
		pressed.Add(name)

		if _, ok := t.held[name]; !ok {
			if !frontend.KeyEvent(ctl, t.keymap, name, true) {
				t.logger.Debug("Unbound key", log.String("key", name))
				continue
			}
		}
		t.held[name] = now
	}

	for name, last := range t.held {
		if pressed.Contains(name) || now.Sub(last) < t.hold {
			continue
		}
		delete(t.held, name)
		frontend.KeyEvent(ctl, t.keymap, name, false)
	}
	return nil
}

// Close restores the terminal mode and the cursor.
func (t *Terminal) Close() error {
	var errs []error
	if _, err := io.WriteString(t.out, escShowCursor+"\r\n"); err != nil {
		errs = append(errs, fmt.Errorf("writing to terminal: %w", err))
	}
	if t.restore != nil {
		if err := t.restore(); err != nil {
			errs = append(errs, fmt.Errorf("restoring terminal mode: %w", err))
		}
	}
	return errors.Join(errs...)
}
