package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Step fetches the instruction at the program counter, executes it and
// advances the program counter.
//
// Unknown opcodes are logged and skipped. A call stack overflow or underflow
// is returned as error, the failing instruction has no effect in that case.
func (m *Machine) Step() error {
	pc := m.pc & MaxAddress
	op := NewOpcode(m.memory[pc], m.memory[(pc+1)&MaxAddress])

	if m.trace {
		m.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Stringer("opcode", op),
			log.String("mnemonic", op.Mnemonic()))
	}

	next, err := m.execute(op, pc)
	if err != nil {
		return fmt.Errorf("executing opcode %s at 0x%03X: %w", op, pc, err)
	}

	m.pc = next & MaxAddress
	return nil
}

// execute runs a single instruction and returns the address of the next
// instruction to execute.
func (m *Machine) execute(op Opcode, pc uint16) (uint16, error) {
	next := pc + opcodeSize

	switch op.Family() {
	case 0x0:
		return m.executeSystem(op, pc)

	// 1NNN - JP addr
	case 0x1:
		next = op.NNN()

	// 2NNN - CALL addr
	case 0x2:
		if err := m.stack.Push(pc); err != nil {
			return pc, err
		}
		next = op.NNN()

	// 3XKK - SE Vx, byte
	case 0x3:
		if m.v[op.X()] == op.KK() {
			next = pc + 2*opcodeSize
		}

	// 4XKK - SNE Vx, byte
	case 0x4:
		if m.v[op.X()] != op.KK() {
			next = pc + 2*opcodeSize
		}

	// 5XY0 - SE Vx, Vy
	case 0x5:
		if op.N() != 0 {
			m.reportUnknown(op)
			break
		}
		if m.v[op.X()] == m.v[op.Y()] {
			next = pc + 2*opcodeSize
		}

	// 6XKK - LD Vx, byte
	case 0x6:
		m.v[op.X()] = op.KK()

	// 7XKK - ADD Vx, byte
	case 0x7:
		m.v[op.X()] += op.KK()

	case 0x8:
		m.executeALU(op)

	// 9XY0 - SNE Vx, Vy
	case 0x9:
		if op.N() != 0 {
			m.reportUnknown(op)
			break
		}
		if m.v[op.X()] != m.v[op.Y()] {
			next = pc + 2*opcodeSize
		}

	// ANNN - LD I, addr
	case 0xA:
		m.i = op.NNN()

	// BNNN - JP V0, addr
	case 0xB:
		next = op.NNN() + uint16(m.v[0])

	// CXKK - RND Vx, byte
	case 0xC:
		m.v[op.X()] = uint8(m.rng.UintN(256)) & op.KK()

	// DXYN - DRW Vx, Vy, nibble
	case 0xD:
		m.draw(op)

	case 0xE:
		next = m.executeKeySkip(op, pc)

	case 0xF:
		next = m.executeMisc(op, pc)
	}

	return next, nil
}

// executeSystem handles the 0x0 family.
func (m *Machine) executeSystem(op Opcode, pc uint16) (uint16, error) {
	switch op.KK() {
	// 00E0 - CLS
	case 0xE0:
		m.display.Clear()

	// 00EE - RET
	case 0xEE:
		address, err := m.stack.Pop()
		if err != nil {
			return pc, err
		}
		return address + opcodeSize, nil

	default:
		m.reportUnknown(op)
	}
	return pc + opcodeSize, nil
}

// executeALU handles the 0x8 register to register family. The flag register
// is written before the result register, a result in VF therefore replaces
// the flag.
func (m *Machine) executeALU(op Opcode) {
	x, y := op.X(), op.Y()

	switch op.N() {
	// 8XY0 - LD Vx, Vy
	case 0x0:
		m.v[x] = m.v[y]

	// 8XY1 - OR Vx, Vy
	case 0x1:
		m.v[x] |= m.v[y]

	// 8XY2 - AND Vx, Vy
	case 0x2:
		m.v[x] &= m.v[y]

	// 8XY3 - XOR Vx, Vy
	case 0x3:
		m.v[x] ^= m.v[y]

	// 8XY4 - ADD Vx, Vy, VF = carry
	case 0x4:
		result := uint16(m.v[x]) + uint16(m.v[y])
		m.v[FlagRegister] = boolToFlag(result > 0xFF)
		m.v[x] = uint8(result)

	// 8XY5 - SUB Vx, Vy, VF = NOT borrow
	case 0x5:
		result := m.v[x] - m.v[y]
		m.v[FlagRegister] = boolToFlag(m.v[x] > m.v[y])
		m.v[x] = result

	// 8XY6 - SHR Vx {, Vy}, VF = shifted out bit
	case 0x6:
		source := m.shiftSource(x, y)
		m.v[FlagRegister] = source & 0x01
		m.v[x] = source >> 1

	// 8XY7 - SUBN Vx, Vy, VF = NOT borrow
	case 0x7:
		result := m.v[y] - m.v[x]
		m.v[FlagRegister] = boolToFlag(m.v[y] > m.v[x])
		m.v[x] = result

	// 8XYE - SHL Vx {, Vy}, VF = shifted out bit
	case 0xE:
		source := m.shiftSource(x, y)
		m.v[FlagRegister] = source >> 7
		m.v[x] = source << 1

	default:
		m.reportUnknown(op)
	}
}

// shiftSource returns the operand of a shift instruction for the configured
// shift quirk.
func (m *Machine) shiftSource(x, y uint8) uint8 {
	if m.quirk == ShiftVX {
		return m.v[x]
	}
	return m.v[y]
}

// draw executes DXYN. Sprite rows are read from I onwards, addresses wrap
// around at the end of memory.
func (m *Machine) draw(op Opcode) {
	var rows [15]byte
	n := int(op.N())
	for row := range n {
		rows[row] = m.memory[(m.i+uint16(row))&MaxAddress]
	}

	collision := m.display.DrawSprite(int(m.v[op.X()]), int(m.v[op.Y()]), rows[:n])
	m.v[FlagRegister] = boolToFlag(collision)
}

// executeKeySkip handles the 0xE family.
func (m *Machine) executeKeySkip(op Opcode, pc uint16) uint16 {
	next := pc + opcodeSize

	switch op.KK() {
	// EX9E - SKP Vx
	case 0x9E:
		if m.keypad.IsDown(m.v[op.X()]) {
			next += opcodeSize
		}

	// EXA1 - SKNP Vx
	case 0xA1:
		if !m.keypad.IsDown(m.v[op.X()]) {
			next += opcodeSize
		}

	default:
		m.reportUnknown(op)
	}
	return next
}

// executeMisc handles the 0xF family.
func (m *Machine) executeMisc(op Opcode, pc uint16) uint16 {
	x := op.X()

	switch op.KK() {
	// FX07 - LD Vx, DT
	case 0x07:
		m.delay.Update(m.clock.Now())
		m.v[x] = m.delay.Ticks()

	// FX0A - LD Vx, K
	case 0x0A:
		key, ok := m.keypad.resolveWait()
		if !ok {
			return pc
		}
		m.v[x] = key

	// FX15 - LD DT, Vx
	case 0x15:
		m.delay.Set(m.v[x], m.clock.Now())

	// FX18 - LD ST, Vx
	case 0x18:
		m.sound.Set(m.v[x], m.clock.Now())

	// FX1E - ADD I, Vx
	case 0x1E:
		m.i += uint16(m.v[x])

	// FX29 - LD F, Vx
	case 0x29:
		m.i = GlyphAddress(m.v[x])

	// FX33 - LD B, Vx
	case 0x33:
		value := m.v[x]
		m.memory[m.i&MaxAddress] = value / 100
		m.memory[(m.i+1)&MaxAddress] = value / 10 % 10
		m.memory[(m.i+2)&MaxAddress] = value % 10

	// FX55 - LD [I], Vx, I is not modified
	case 0x55:
		for reg := range uint16(x) + 1 {
			m.memory[(m.i+reg)&MaxAddress] = m.v[reg]
		}

	// FX65 - LD Vx, [I], I is not modified
	case 0x65:
		for reg := range uint16(x) + 1 {
			m.v[reg] = m.memory[(m.i+reg)&MaxAddress]
		}

	default:
		m.reportUnknown(op)
	}
	return pc + opcodeSize
}

func (m *Machine) reportUnknown(op Opcode) {
	high, low := op.Bytes()
	m.logger.Warn("Unknown opcode",
		log.Hex("high", high),
		log.Hex("low", low),
		log.Hex("pc", m.pc))
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
