// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/scheduler"
)

const (
	defaultScale = 10
	maxScale     = 64
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.SeedSet = true
		}
	})

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <program to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(options.Frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(options.Frontends, ", "))
	}

	if opts.Quirk != "" {
		quirk, err := chip8.ParseShiftQuirk(opts.Quirk)
		if err != nil {
			return err
		}
		opts.Quirk = quirk.String()
	}

	if opts.Rate <= 0 {
		return fmt.Errorf("invalid instruction rate %d, must be positive", opts.Rate)
	}
	if opts.Scale <= 0 || opts.Scale > maxScale {
		return fmt.Errorf("invalid scale factor %d, must be between 1 and %d", opts.Scale, maxScale)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input program file")
	flags.StringVar(&opts.Keymap, "keymap", "", "name of a keyboard mapping file, the 1234/QWER/ASDF/ZXCV layout is used if no name given")
	flags.StringVar(&opts.Beep, "beep", "", "name of a .wav or .mp3 file to play as beep, a generated tone is used if no name given")
	flags.StringVar(&opts.Record, "record", "", "name of a .wav file to record the beeps to")
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendSDL, "frontend to run the program with (sdl/terminal/headless)")
	flags.StringVar(&opts.Quirk, "quirk", "", "shift instruction quirk (cosmac/chip48) - if not detected from file extension")
	flags.IntVar(&opts.Rate, "rate", scheduler.DefaultRate, "number of instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", defaultScale, "output scale factor of the display")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, time based if not set")
	flags.BoolVar(&opts.StatsView, "statsview", false, "serve runtime statistics charts, requires a build with the statsview tag")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
