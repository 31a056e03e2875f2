// Package options contains the program options.
package options

// Positional contains positional arguments.
type Positional struct {
	File string `arg:"positional" usage:"CHIP-8 program to run"`
}

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input program file"`
	Keymap string `flag:"keymap" usage:"keyboard mapping file (default: 1234/QWER/ASDF/ZXCV layout)"`
	Beep   string `flag:"beep" usage:"beep sample file (.wav or .mp3)"`
	Record string `flag:"record" usage:"record the beeps to a .wav file"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend  string `flag:"frontend" usage:"frontend: sdl, terminal, headless" default:"sdl"`
	Quirk     string `flag:"quirk" usage:"shift quirk: cosmac, chip48 (default: detect from file extension)"`
	Rate      int    `flag:"rate" usage:"instructions per second" default:"500"`
	Scale     int    `flag:"scale" usage:"output scale factor" default:"10"`
	Seed      uint64 `flag:"seed" usage:"random number generator seed (default: time based)"`
	StatsView bool   `flag:"statsview" usage:"serve runtime statistics charts"`
	Trace     bool   `flag:"trace" usage:"log every executed instruction, requires -debug"`
	Debug     bool   `flag:"debug" usage:"enable debug logging"`
	Quiet     bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags

	SeedSet bool // seed was passed explicitly
}

// Frontend names.
const (
	FrontendSDL      = "sdl"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Frontends lists the supported frontend names.
var Frontends = []string{FrontendSDL, FrontendTerminal, FrontendHeadless}
