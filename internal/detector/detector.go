// Package detector handles shift quirk detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles shift quirk detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new quirk detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the shift quirk from options or file auto-detection.
// It first checks if a quirk is explicitly specified in options, otherwise
// attempts to detect the quirk from the input filename extension.
func (d *Detector) Detect(opts options.Program) chip8.ShiftQuirk {
	quirk, err := chip8.ParseShiftQuirk(opts.Quirk)
	if opts.Quirk != "" && err == nil {
		return quirk
	}

	quirk = d.detectFromFile(opts.Input)
	d.logger.Debug("Auto-detected shift quirk",
		log.Stringer("quirk", quirk),
		log.String("file", opts.Input))
	return quirk
}

// detectFromFile determines the shift quirk based on file extension.
func (d *Detector) detectFromFile(filename string) chip8.ShiftQuirk {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".c48", ".sc8":
		// CHIP-48 and SCHIP programs expect the shift in place
		return chip8.ShiftVX
	default:
		return chip8.ShiftVY
	}
}
