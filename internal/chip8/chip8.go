package chip8

import (
	"errors"
	"fmt"
	"strings"
)

// CHIP-8 memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// MaxAddress is the highest valid address in memory. Addresses computed by
	// instructions are masked with it.
	MaxAddress = MemorySize - 1

	// ProgramStart is the memory address where programs are loaded and
	// execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// StackSize is the maximum number of nested subroutine calls.
	StackSize = 16

	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16

	// FlagRegister is the index of the register that receives carry, borrow,
	// shifted out bits and sprite collisions.
	FlagRegister = 0xF

	// KeyCount is the number of keys on the keypad.
	KeyCount = 16
)

// Errors returned by machine construction.
var (
	ErrProgramTooLarge   = errors.New("program too large")
	ErrProgramNotFound   = errors.New("program not found")
	ErrProgramUnreadable = errors.New("program unreadable")
)

// Errors returned by Step for fatal run-time conditions.
var (
	ErrStackOverflow  = errors.New("call stack overflow")
	ErrStackUnderflow = errors.New("call stack underflow")
)

// ShiftQuirk selects the source register of the 8XY6 and 8XYE shift
// instructions.
type ShiftQuirk int

const (
	// ShiftVY shifts Vy and stores the result in Vx, as the COSMAC VIP
	// interpreter did.
	ShiftVY ShiftQuirk = iota
	// ShiftVX shifts Vx in place and ignores Vy, as CHIP-48 and most later
	// interpreters do.
	ShiftVX
)

// Shift quirk names as accepted by ParseShiftQuirk.
const (
	ShiftVYName = "cosmac"
	ShiftVXName = "chip48"
)

func (q ShiftQuirk) String() string {
	switch q {
	case ShiftVY:
		return ShiftVYName
	case ShiftVX:
		return ShiftVXName
	default:
		return fmt.Sprintf("ShiftQuirk(%d)", int(q))
	}
}

// ParseShiftQuirk returns the shift quirk for the given name.
func ParseShiftQuirk(name string) (ShiftQuirk, error) {
	switch strings.ToLower(name) {
	case ShiftVYName, "chip8", "vip":
		return ShiftVY, nil
	case ShiftVXName, "schip":
		return ShiftVX, nil
	default:
		return ShiftVY, fmt.Errorf("unsupported shift quirk '%s', valid options: %s, %s",
			name, ShiftVYName, ShiftVXName)
	}
}
