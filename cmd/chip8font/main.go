// Package main implements a tool that prints the built-in CHIP-8 font and
// generates a program that displays all glyphs
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/chip8"
)

var (
	version = "dev"
	commit  = ""
)

const (
	glyphSpacing  = 8
	glyphsPerLine = 8
)

type optionFlags struct {
	output string
	quiet  bool
}

func main() {
	options := readArguments()

	if !options.quiet {
		fmt.Printf("chip8font %s\n\n", app.VersionString(version, commit))
		printFont(os.Stdout)
	}

	if options.output == "" {
		return
	}
	if err := os.WriteFile(options.output, fontProgram(), 0644); err != nil {
		fmt.Println(fmt.Errorf("writing program failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.StringVar(&options.output, "o", "", "name of the .ch8 file to write a program to that displays all glyphs")
	flags.BoolVar(&options.quiet, "q", false, "do not print the font")

	if err := flags.Parse(os.Args[1:]); err != nil || flags.NArg() > 0 {
		fmt.Printf("usage: chip8font [options]\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	return options
}

// printFont prints every glyph with its memory address.
func printFont(w io.Writer) {
	var sb strings.Builder
	for digit := range uint8(chip8.GlyphCount) {
		fmt.Fprintf(&sb, "%X at 0x%03X\n", digit, chip8.GlyphAddress(digit))
		for _, row := range chip8.Glyph(digit) {
			for col := range 4 {
				if row&(0x80>>col) != 0 {
					sb.WriteString("##")
				} else {
					sb.WriteString("..")
				}
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	_, _ = io.WriteString(w, sb.String())
}

// fontProgram returns a program that draws all glyphs in two lines and
// loops forever.
func fontProgram() []byte {
	var program []byte
	for digit := range byte(chip8.GlyphCount) {
		x := digit % glyphsPerLine * glyphSpacing
		y := digit / glyphsPerLine * glyphSpacing
		program = append(program,
			0x60, digit, // LD V0, digit
			0x61, x,     // LD V1, x
			0x62, y,     // LD V2, y
			0xF0, 0x29,  // LD F, V0
			0xD1, 0x25,  // DRW V1, V2, 5
		)
	}

	loop := uint16(chip8.ProgramStart + len(program))
	program = append(program, 0x10|byte(loop>>8), byte(loop)) // JP loop
	return program
}
