// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// LoadKeymap returns the keymap stored in the given file or the default
// keymap if no file is given.
func LoadKeymap(logger *log.Logger, path string) (*keymap.Keymap, error) {
	if path == "" {
		return keymap.Default(), nil
	}

	km, err := keymap.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading keymap: %w", err)
	}
	logger.Debug("Keymap loaded",
		log.String("file", path),
		log.Int("bindings", km.Len()))
	return km, nil
}

// LoadBeep returns the sample stored in the given file or the generated
// default tone if no file is given.
func LoadBeep(logger *log.Logger, path string) (audio.Sample, error) {
	if path == "" {
		return audio.DefaultBeep(), nil
	}

	sample, err := audio.Load(path)
	if err != nil {
		return audio.Sample{}, fmt.Errorf("loading beep sample: %w", err)
	}
	logger.Debug("Beep sample loaded",
		log.String("file", path),
		log.Int("rate", sample.Rate),
		log.Stringer("duration", sample.Duration()))
	return sample, nil
}
