// Package pipeline orchestrates the interpreter setup and run stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/sdlwindow"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/scheduler"
	"github.com/retroenv/retrogolib/log"
)

const windowTitle = "retrochip8"

// Result summarizes a finished run.
type Result struct {
	Instructions int
	Beeps        int
}

// Pipeline orchestrates the complete interpreter workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
}

// New creates a new interpreter pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
	}
}

// Execute loads the program and its assets, opens the configured frontend
// and runs the program until it is stopped or the context is cancelled.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) (Result, error) {
	machine, err := p.CreateMachine(loader.New(opts.Input), opts)
	if err != nil {
		return Result{}, err
	}

	km, err := config.LoadKeymap(p.logger, opts.Keymap)
	if err != nil {
		return Result{}, err
	}
	beep, err := config.LoadBeep(p.logger, opts.Beep)
	if err != nil {
		return Result{}, err
	}

	fe, err := p.createFrontend(opts, km, beep)
	if err != nil {
		return Result{}, fmt.Errorf("creating frontend: %w", err)
	}

	result, err := p.ExecuteWithFrontend(ctx, machine, fe, opts, beep)
	if closeErr := fe.Close(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("closing frontend: %w", closeErr))
	}
	return result, err
}

// CreateMachine creates the virtual machine for the program supplied by the
// loader, configured by the options.
func (p *Pipeline) CreateMachine(programLoader chip8.ProgramLoader, opts options.Program) (*chip8.Machine, error) {
	quirk := p.detector.Detect(opts)

	machineOptions := []chip8.Option{
		chip8.WithShiftQuirk(quirk),
		chip8.WithTrace(opts.Trace && opts.Debug),
	}
	if opts.SeedSet {
		machineOptions = append(machineOptions, chip8.WithSeed(opts.Seed))
	}

	machine, err := chip8.NewFromLoader(p.logger, programLoader, machineOptions...)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return machine, nil
}

// ExecuteWithFrontend runs a created machine with the given frontend.
// This is useful for testing and programmatic usage where the program is
// already in memory. The frontend is not closed.
func (p *Pipeline) ExecuteWithFrontend(ctx context.Context, machine *chip8.Machine, fe frontend.Frontend,
	opts options.Program, beep audio.Sample) (Result, error) {

	beepers := scheduler.Beepers{fe}
	var recorder *audio.Recorder
	if opts.Record != "" {
		recorder = audio.NewRecorder(p.logger, chip8.SystemClock{}, opts.Record, beep)
		beepers = append(beepers, recorder)
	}

	sched, err := scheduler.New(p.logger, machine, fe, beepers, fe, opts.Rate)
	if err != nil {
		return Result{}, fmt.Errorf("creating scheduler: %w", err)
	}

	p.printInfo(opts, machine)

	err = sched.Run(ctx)
	if err != nil {
		err = fmt.Errorf("running program: %w", err)
	}

	result := Result{Instructions: sched.Instructions()}
	if recorder != nil {
		result.Beeps = recorder.Beeps()
		if recErr := recorder.Close(); recErr != nil {
			err = errors.Join(err, fmt.Errorf("saving recording: %w", recErr))
		}
	}
	return result, err
}

// createFrontend opens the frontend selected by the options.
func (p *Pipeline) createFrontend(opts options.Program, km *keymap.Keymap, beep audio.Sample) (frontend.Frontend, error) {
	switch opts.Frontend {
	case options.FrontendSDL:
		title := fmt.Sprintf("%s - %s", windowTitle, filepath.Base(opts.Input))
		return sdlwindow.New(p.logger, km, title, opts.Scale, beep)

	case options.FrontendTerminal:
		return terminal.New(p.logger, km, os.Stdin, os.Stdout)

	case options.FrontendHeadless:
		return headless.New(p.logger), nil

	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}

// printInfo prints information about the program being run.
func (p *Pipeline) printInfo(opts options.Program, machine *chip8.Machine) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Stringer("shift_quirk", machine.ShiftQuirk()),
		log.Int("rate", opts.Rate),
		log.String("frontend", opts.Frontend),
	)
}
