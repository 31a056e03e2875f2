// Package sdlwindow implements a frontend that renders the display into a
// scaled SDL window, plays the beep on the default audio device and reads
// the keyboard through SDL key events.
//
// SDL expects to be called from the main thread, the caller has to lock the
// calling goroutine to its OS thread.
package sdlwindow

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/scheduler"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const audioBufferSamples = 512

// SDL is a frontend using an SDL window and audio device.
type SDL struct {
	logger *log.Logger
	keymap *keymap.Keymap
	scale  int32

	window   *sdl.Window
	renderer *sdl.Renderer
	rects    []sdl.Rect

	audioDevice sdl.AudioDeviceID
	beep        []byte
}

// New opens a window of the display size multiplied by scale. A missing
// audio device is not an error, the beep is disabled in that case.
func New(logger *log.Logger, km *keymap.Keymap, title string, scale int, beep audio.Sample) (*SDL, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	s := &SDL{
		logger: logger,
		keymap: km,
		scale:  int32(scale),
		rects:  make([]sdl.Rect, 0, chip8.DisplaySize),
	}

	var err error
	s.window, err = sdl.CreateWindow(title,
		int32(sdl.WINDOWPOS_CENTERED), int32(sdl.WINDOWPOS_CENTERED),
		chip8.DisplayWidth*s.scale, chip8.DisplayHeight*s.scale,
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	s.renderer, err = sdl.CreateRenderer(s.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	if err := s.openAudio(beep); err != nil {
		logger.Warn("Audio disabled", log.Err(err))
	}
	return s, nil
}

func (s *SDL) openAudio(beep audio.Sample) error {
	spec := &sdl.AudioSpec{
		Freq:     int32(beep.Rate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  audioBufferSamples,
	}

	var err error
	var obtained sdl.AudioSpec
	s.audioDevice, err = sdl.OpenAudioDevice("", false, spec, &obtained, 0)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}

	s.beep = beep.Bytes()
	sdl.PauseAudioDevice(s.audioDevice, false)
	return nil
}

// Render draws the lit pixels as scaled white squares on black.
func (s *SDL) Render(frame chip8.Frame) error {
	s.rects = pixelRects(s.rects[:0], &frame, s.scale)

	if err := s.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}
	if err := s.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if err := s.renderer.SetDrawColor(255, 255, 255, 255); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}
	if len(s.rects) > 0 {
		if err := s.renderer.FillRects(s.rects); err != nil {
			return fmt.Errorf("drawing pixels: %w", err)
		}
	}
	s.renderer.Present()
	return nil
}

// pixelRects appends a scaled rectangle for every lit pixel of the frame.
func pixelRects(rects []sdl.Rect, frame *chip8.Frame, scale int32) []sdl.Rect {
	for y := range chip8.DisplayHeight {
		for x := range chip8.DisplayWidth {
			if !frame.Pixel(x, y) {
				continue
			}
			rects = append(rects, sdl.Rect{
				X: int32(x) * scale,
				Y: int32(y) * scale,
				W: scale,
				H: scale,
			})
		}
	}
	return rects
}

// Beep queues the beep sample on the audio device.
func (s *SDL) Beep() {
	if s.audioDevice == 0 {
		return
	}
	if err := sdl.QueueAudio(s.audioDevice, s.beep); err != nil {
		s.logger.Error("Playing beep failed", log.Err(err))
	}
}

// Poll processes all pending SDL events.
func (s *SDL) Poll(ctl scheduler.Controller) error {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			ctl.Stop()

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}
			name := sdl.GetKeyName(ev.Keysym.Sym)
			if !frontend.KeyEvent(ctl, s.keymap, name, ev.Type == sdl.KEYDOWN) {
				s.logger.Debug("Unbound key", log.String("key", name))
			}
		}
	}
	return nil
}

// Close releases the audio device, the window and SDL.
func (s *SDL) Close() error {
	var errs []error
	if s.audioDevice != 0 {
		sdl.CloseAudioDevice(s.audioDevice)
	}
	if s.renderer != nil {
		if err := s.renderer.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("destroying renderer: %w", err))
		}
	}
	if s.window != nil {
		if err := s.window.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("destroying window: %w", err))
		}
	}
	sdl.Quit()
	return errors.Join(errs...)
}
