package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// drawLoop draws glyph 0 and loops forever.
var drawLoop = []byte{
	0xA0, 0x00, // LD I, 0x000
	0xD0, 0x05, // DRW V0, V0, 5
	0x12, 0x04, // JP 0x204
}

func TestNew(t *testing.T) {
	p := New(log.NewTestLogger(t))

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
}

func TestCreateMachine(t *testing.T) {
	tests := []struct {
		name      string
		opts      options.Program
		wantQuirk chip8.ShiftQuirk
	}{
		{
			name:      "detected from extension",
			opts:      options.Program{Parameters: options.Parameters{Input: "game.ch8"}},
			wantQuirk: chip8.ShiftVY,
		},
		{
			name:      "detected chip48 extension",
			opts:      options.Program{Parameters: options.Parameters{Input: "game.c48"}},
			wantQuirk: chip8.ShiftVX,
		},
		{
			name: "explicit quirk",
			opts: options.Program{
				Parameters: options.Parameters{Input: "game.ch8"},
				Flags:      options.Flags{Quirk: "chip48"},
			},
			wantQuirk: chip8.ShiftVX,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(log.NewTestLogger(t))
			machine, err := p.CreateMachine(loader.Bytes(drawLoop), tt.opts)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantQuirk, machine.ShiftQuirk())
			assert.Equal(t, drawLoop[0], machine.ReadMemory(chip8.ProgramStart))
		})
	}
}

func TestCreateMachine_Errors(t *testing.T) {
	p := New(log.NewTestLogger(t))

	_, err := p.CreateMachine(loader.Bytes(make([]byte, chip8.MaxProgramSize+1)), options.Program{})
	assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))
	assert.ErrorContains(t, err, "loading program")

	missing := filepath.Join(t.TempDir(), "missing.ch8")
	_, err = p.CreateMachine(loader.New(missing), options.Program{})
	assert.True(t, errors.Is(err, chip8.ErrProgramNotFound))
}

func TestCreateMachine_Seed(t *testing.T) {
	// RND V0, 0xFF; RND V1, 0xFF
	program := []byte{0xC0, 0xFF, 0xC1, 0xFF}
	opts := options.Program{
		Flags:   options.Flags{Seed: 1234},
		SeedSet: true,
	}

	p := New(log.NewTestLogger(t))
	a, err := p.CreateMachine(loader.Bytes(program), opts)
	assert.NoError(t, err)
	b, err := p.CreateMachine(loader.Bytes(program), opts)
	assert.NoError(t, err)

	for range 2 {
		assert.NoError(t, a.Step())
		assert.NoError(t, b.Step())
	}
	assert.Equal(t, a.Registers().V, b.Registers().V)
}

func TestExecuteWithFrontend(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)
	opts := options.Program{
		Parameters: options.Parameters{Input: "draw.ch8"},
		Flags:      options.Flags{Frontend: options.FrontendHeadless, Rate: 1000, Quiet: true},
	}

	machine, err := p.CreateMachine(loader.Bytes(drawLoop), opts)
	assert.NoError(t, err)

	fe := headless.New(logger, headless.WithStopAfter(50))
	result, err := p.ExecuteWithFrontend(context.Background(), machine, fe, opts, audio.DefaultBeep())
	assert.NoError(t, err)
	assert.True(t, result.Instructions >= 2)
	assert.True(t, fe.Frames() >= 1)

	frame := fe.LastFrame()
	assert.Equal(t, 14, frame.Lit())
}

func TestExecuteWithFrontend_Record(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)
	record := filepath.Join(t.TempDir(), "beeps.wav")
	opts := options.Program{
		Parameters: options.Parameters{Input: "beep.ch8", Record: record},
		Flags:      options.Flags{Frontend: options.FrontendHeadless, Rate: 1000},
	}

	// LD V0, 1; LD ST, V0; JP 0x204
	program := []byte{0x60, 0x01, 0xF0, 0x18, 0x12, 0x04}
	machine, err := p.CreateMachine(loader.Bytes(program), opts)
	assert.NoError(t, err)

	fe := headless.New(logger, headless.WithStopAfter(100))
	beep := audio.Tone(8000, 440, 10*time.Millisecond)
	result, err := p.ExecuteWithFrontend(context.Background(), machine, fe, opts, beep)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Beeps)
	assert.Equal(t, 1, fe.Beeps())

	_, err = os.Stat(record)
	assert.NoError(t, err)
	recorded, err := audio.Load(record)
	assert.NoError(t, err)
	assert.True(t, len(recorded.Data) >= len(beep.Data))
}

func TestExecuteWithFrontend_InvalidRate(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	machine, err := p.CreateMachine(loader.Bytes(drawLoop), options.Program{})
	assert.NoError(t, err)

	_, err = p.ExecuteWithFrontend(context.Background(), machine, headless.New(logger), options.Program{}, audio.DefaultBeep())
	assert.ErrorContains(t, err, "creating scheduler")
}

func TestExecute_Errors(t *testing.T) {
	dir := t.TempDir()
	program := filepath.Join(dir, "draw.ch8")
	assert.NoError(t, os.WriteFile(program, drawLoop, 0600))

	tests := []struct {
		name        string
		opts        options.Program
		errContains string
	}{
		{
			name:        "missing program",
			opts:        options.Program{Parameters: options.Parameters{Input: filepath.Join(dir, "missing.ch8")}},
			errContains: "program not found",
		},
		{
			name: "missing keymap",
			opts: options.Program{
				Parameters: options.Parameters{Input: program, Keymap: filepath.Join(dir, "missing.map")},
			},
			errContains: "loading keymap",
		},
		{
			name: "unsupported beep format",
			opts: options.Program{
				Parameters: options.Parameters{Input: program, Beep: filepath.Join(dir, "beep.ogg")},
			},
			errContains: "loading beep sample",
		},
		{
			name: "unsupported frontend",
			opts: options.Program{
				Parameters: options.Parameters{Input: program},
				Flags:      options.Flags{Frontend: "vga"},
			},
			errContains: "unsupported frontend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(log.NewTestLogger(t))
			_, err := p.Execute(context.Background(), tt.opts)
			assert.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestExecute_Headless(t *testing.T) {
	program := filepath.Join(t.TempDir(), "draw.ch8")
	assert.NoError(t, os.WriteFile(program, drawLoop, 0600))

	opts := options.Program{
		Parameters: options.Parameters{Input: program},
		Flags:      options.Flags{Frontend: options.FrontendHeadless, Rate: 1000},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(log.NewTestLogger(t))
	result, err := p.Execute(ctx, opts)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Instructions)
}
