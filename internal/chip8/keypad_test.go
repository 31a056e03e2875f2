package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeyLatch(t *testing.T) {
	var l KeyLatch
	assert.True(t, l.Empty())

	_, ok := l.Take()
	assert.False(t, ok)

	l.Set(7)
	l.Set(9)
	assert.False(t, l.Empty())

	key, ok := l.Take()
	assert.True(t, ok)
	assert.Equal(t, uint8(7), key)
	assert.True(t, l.Empty())

	l.Set(3)
	l.Reset()
	_, ok = l.Take()
	assert.False(t, ok)
}

func TestKeypad_PressOnlyLatchesWhileWaiting(t *testing.T) {
	var k Keypad

	k.Press(4)
	assert.True(t, k.IsDown(4))
	assert.False(t, k.Waiting())

	_, ok := k.resolveWait()
	assert.False(t, ok)
	assert.True(t, k.Waiting())

	// the key pressed before the wait started does not resolve it
	_, ok = k.resolveWait()
	assert.False(t, ok)

	k.Release(4)
	assert.False(t, k.IsDown(4))
	k.Press(0xB)

	key, ok := k.resolveWait()
	assert.True(t, ok)
	assert.Equal(t, uint8(0xB), key)
	assert.False(t, k.Waiting())
}

func TestMachine_WaitForKey(t *testing.T) {
	// LD V3, K; LD V4, 1
	program := []byte{0xF3, 0x0A, 0x64, 0x01}
	m, _ := newTestMachine(t, program)

	steps(t, m, 5)
	regs := m.Registers()
	assert.Equal(t, uint16(ProgramStart), regs.PC)
	assert.Equal(t, uint8(0), regs.V[3])
	assert.True(t, m.Waiting())

	m.KeyDown(5)
	steps(t, m, 1)
	regs = m.Registers()
	assert.Equal(t, uint16(ProgramStart+2), regs.PC)
	assert.Equal(t, uint8(5), regs.V[3])
	assert.False(t, m.Waiting())

	steps(t, m, 1)
	assert.Equal(t, uint8(1), m.Registers().V[4])
}

func TestMachine_WaitForKeyFirstPressWins(t *testing.T) {
	// LD V0, K; LD V1, K
	program := []byte{0xF0, 0x0A, 0xF1, 0x0A}
	m, _ := newTestMachine(t, program)

	steps(t, m, 1)
	m.KeyDown(2)
	m.KeyDown(9)
	steps(t, m, 1)
	assert.Equal(t, uint8(2), m.Registers().V[0])

	// the second read starts with an empty latch even though keys are held
	steps(t, m, 2)
	assert.True(t, m.Waiting())
	assert.Equal(t, uint16(ProgramStart+2), m.Registers().PC)

	m.KeyUp(2)
	m.KeyDown(0xE)
	steps(t, m, 1)
	assert.Equal(t, uint8(0xE), m.Registers().V[1])
}
