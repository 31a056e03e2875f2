package chip8

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// ProgramLoader supplies the program bytes for a machine.
// Implementations wrap ErrProgramNotFound, ErrProgramUnreadable or
// ErrProgramTooLarge in the returned error if the program can not be
// supplied.
type ProgramLoader interface {
	LoadProgram() ([]byte, error)
}

// Registers is a snapshot of the register file.
type Registers struct {
	V  [RegisterCount]uint8
	I  uint16
	PC uint16
	SP int
}

// Machine is the CHIP-8 virtual machine. It is not safe for concurrent use,
// all methods are expected to be called from the scheduler goroutine.
type Machine struct {
	logger *log.Logger
	clock  Clock
	rng    *rand.Rand
	quirk  ShiftQuirk
	trace  bool

	memory [MemorySize]byte
	v      [RegisterCount]uint8
	i      uint16
	pc     uint16

	stack   Stack
	delay   Timer
	sound   Timer
	display Display
	keypad  Keypad
}

// Option configures a machine on construction.
type Option func(*Machine)

// WithClock sets the clock that is sampled by the timers.
func WithClock(clock Clock) Option {
	return func(m *Machine) {
		m.clock = clock
	}
}

// WithSeed seeds the random source of the machine with a fixed value.
func WithSeed(seed uint64) Option {
	return func(m *Machine) {
		m.rng = newRandom(seed)
	}
}

// WithShiftQuirk selects the source register of the shift instructions.
func WithShiftQuirk(quirk ShiftQuirk) Option {
	return func(m *Machine) {
		m.quirk = quirk
	}
}

// WithTrace enables debug logging of every executed instruction.
func WithTrace(enabled bool) Option {
	return func(m *Machine) {
		m.trace = enabled
	}
}

// New returns a machine with the font and the given program loaded. It
// returns an error wrapping ErrProgramTooLarge if the program does not fit
// into memory.
func New(logger *log.Logger, program []byte, options ...Option) (*Machine, error) {
	if len(program) > MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes, %d bytes available",
			ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	m := &Machine{
		logger: logger,
		clock:  SystemClock{},
		pc:     ProgramStart,
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = newRandom(uint64(time.Now().UnixNano()))
	}

	copy(m.memory[FontAddress:], font[:])
	copy(m.memory[ProgramStart:], program)

	now := m.clock.Now()
	m.delay.Set(0, now)
	m.sound.Set(0, now)
	m.display.Clear()

	m.logger.Debug("Machine initialized",
		log.Int("program_size", len(program)),
		log.Stringer("shift_quirk", m.quirk))
	return m, nil
}

// NewFromLoader returns a machine running the program supplied by the
// loader. Loader errors are returned unchanged.
func NewFromLoader(logger *log.Logger, loader ProgramLoader, options ...Option) (*Machine, error) {
	program, err := loader.LoadProgram()
	if err != nil {
		return nil, err
	}
	return New(logger, program, options...)
}

func newRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// Registers returns a snapshot of the register file.
func (m *Machine) Registers() Registers {
	return Registers{
		V:  m.v,
		I:  m.i,
		PC: m.pc,
		SP: m.stack.Len(),
	}
}

// ReadMemory returns the byte at the given address. The address wraps around
// at the end of memory.
func (m *Machine) ReadMemory(address uint16) byte {
	return m.memory[address&MaxAddress]
}

// ShiftQuirk returns the configured shift quirk.
func (m *Machine) ShiftQuirk() ShiftQuirk {
	return m.quirk
}

// Frame returns a snapshot of the framebuffer.
func (m *Machine) Frame() Frame {
	return m.display.Frame()
}

// Dirty returns whether the framebuffer changed since the last ClearDirty.
func (m *Machine) Dirty() bool {
	return m.display.Dirty()
}

// ClearDirty marks the framebuffer as delivered to the renderer.
func (m *Machine) ClearDirty() {
	m.display.ClearDirty()
}

// DelayTimer returns the delay timer ticks as of the last update.
func (m *Machine) DelayTimer() uint8 {
	return m.delay.Ticks()
}

// SoundTimer returns the sound timer ticks as of the last update.
func (m *Machine) SoundTimer() uint8 {
	return m.sound.Ticks()
}

// UpdateTimers decays both timers according to the elapsed real time and
// returns true if the sound timer reached zero as a result.
func (m *Machine) UpdateTimers() bool {
	now := m.clock.Now()
	m.delay.Update(now)

	if m.sound.Update(now) > 0 && m.sound.Ticks() == 0 {
		return true
	}
	return false
}

// KeyDown marks the key as pressed. Key codes outside of 0-15 are logged and
// ignored.
func (m *Machine) KeyDown(key int) {
	if !m.validKey(key) {
		return
	}
	m.keypad.Press(uint8(key))
}

// KeyUp marks the key as released. Key codes outside of 0-15 are logged and
// ignored.
func (m *Machine) KeyUp(key int) {
	if !m.validKey(key) {
		return
	}
	m.keypad.Release(uint8(key))
}

// IsKeyDown returns whether the key is currently pressed.
func (m *Machine) IsKeyDown(key uint8) bool {
	return m.keypad.IsDown(key)
}

// Waiting returns whether the machine is blocked in a key read instruction.
func (m *Machine) Waiting() bool {
	return m.keypad.Waiting()
}

func (m *Machine) validKey(key int) bool {
	if key < 0 || key >= KeyCount {
		m.logger.Warn("Ignoring out of range key code", log.Int("key", key))
		return false
	}
	return true
}
