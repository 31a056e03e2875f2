package detector

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name      string
		quirkOpt  string
		inputFile string
		wantQuirk chip8.ShiftQuirk
	}{
		{
			name:      "explicit cosmac quirk option",
			quirkOpt:  "cosmac",
			inputFile: "game.sc8",
			wantQuirk: chip8.ShiftVY,
		},
		{
			name:      "explicit chip48 quirk option",
			quirkOpt:  "chip48",
			inputFile: "game.ch8",
			wantQuirk: chip8.ShiftVX,
		},
		{
			name:      "detect from .ch8 extension",
			inputFile: "game.ch8",
			wantQuirk: chip8.ShiftVY,
		},
		{
			name:      "detect from .c48 extension",
			inputFile: "game.c48",
			wantQuirk: chip8.ShiftVX,
		},
		{
			name:      "detect from uppercase .SC8 extension",
			inputFile: "/roms/GAME.SC8",
			wantQuirk: chip8.ShiftVX,
		},
		{
			name:      "unknown extension",
			inputFile: "game.bin",
			wantQuirk: chip8.ShiftVY,
		},
		{
			name:      "invalid quirk option falls back to extension",
			quirkOpt:  "xo",
			inputFile: "game.c48",
			wantQuirk: chip8.ShiftVX,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: options.Parameters{Input: tt.inputFile},
				Flags:      options.Flags{Quirk: tt.quirkOpt},
			}
			assert.Equal(t, tt.wantQuirk, d.Detect(opts))
		})
	}
}
