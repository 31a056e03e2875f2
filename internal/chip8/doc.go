// Package chip8 implements the CHIP-8 virtual machine core.
//
// # Architecture Overview
//
// CHIP-8 is an interpreted bytecode from the 1970s designed for simple games on
// early microcomputers. The machine emulated by this package has:
//   - 4KB of flat memory (0x000-MaxAddress)
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - a 16-bit index register I and a 16-bit program counter
//   - a call stack holding up to StackSize return addresses
//   - delay and sound timers decaying at 60Hz in real time
//   - a 64x32 monochrome framebuffer
//   - a 16-key hexadecimal keypad
//
// # Memory Layout
//
//	0x000-0x04F: Built-in hexadecimal font, 5 bytes per glyph
//	0x050-0x1FF: Unused interpreter area
//	0x200-0xFFF: Program and data area
//
// # Execution
//
// Step fetches, decodes and executes exactly one instruction. Timing is not the
// concern of the machine: a scheduler calls Step at the configured instruction
// rate and UpdateTimers once per cycle. Timers sample the injected Clock, so
// their decay is independent of how often the machine is stepped.
//
// The blocking key read instruction (FX0A) never suspends. While no key has
// been latched the instruction selects itself as the next instruction, so the
// scheduler keeps cycling and polling input.
//
// # Usage Example
//
//	m, err := chip8.New(logger, rom, chip8.WithShiftQuirk(chip8.ShiftVX))
//	if err != nil {
//		return fmt.Errorf("creating machine: %w", err)
//	}
//	for {
//		if err := m.Step(); err != nil {
//			return err
//		}
//		if m.Dirty() {
//			render(m.Frame())
//			m.ClearDirty()
//		}
//	}
//
// # Limitations
//
// Only the original instruction set is supported. SCHIP and XO-CHIP extensions,
// scrolling and high resolution modes are not implemented.
package chip8
