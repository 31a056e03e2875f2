package chip8

// KeyLatch holds at most one key code. It is filled by a key press while the
// machine waits for a key and consumed exactly once by the waiting
// instruction.
type KeyLatch struct {
	key  uint8
	full bool
}

// Set stores the key if the latch is empty. A latch that already holds a key
// keeps the first one.
func (l *KeyLatch) Set(key uint8) {
	if l.full {
		return
	}
	l.key = key
	l.full = true
}

// Take returns the latched key and empties the latch.
func (l *KeyLatch) Take() (uint8, bool) {
	if !l.full {
		return 0, false
	}
	key := l.key
	l.Reset()
	return key, true
}

// Reset empties the latch.
func (l *KeyLatch) Reset() {
	l.key = 0
	l.full = false
}

// Empty returns whether the latch holds no key.
func (l *KeyLatch) Empty() bool {
	return !l.full
}

type keyWaitState int

const (
	keyWaitIdle keyWaitState = iota
	keyWaitWaiting
)

// Keypad tracks the 16 hexadecimal keys and the state of the blocking key
// read instruction.
type Keypad struct {
	down  [KeyCount]bool
	latch KeyLatch
	state keyWaitState
}

// Press marks the key as down. While a key read is pending the key is also
// latched for it.
func (k *Keypad) Press(key uint8) {
	k.down[key] = true
	if k.state == keyWaitWaiting {
		k.latch.Set(key)
	}
}

// Release marks the key as up.
func (k *Keypad) Release(key uint8) {
	k.down[key] = false
}

// IsDown returns whether the key is currently pressed. Only the low nibble of
// key is used.
func (k *Keypad) IsDown(key uint8) bool {
	return k.down[key&0x0F]
}

// Waiting returns whether a key read instruction is pending.
func (k *Keypad) Waiting() bool {
	return k.state == keyWaitWaiting
}

// resolveWait advances the key read state machine. It returns the latched
// key and true once a key is available, otherwise the instruction has to be
// executed again.
func (k *Keypad) resolveWait() (uint8, bool) {
	if k.state == keyWaitIdle {
		k.state = keyWaitWaiting
		k.latch.Reset()
		return 0, false
	}

	key, ok := k.latch.Take()
	if !ok {
		return 0, false
	}
	k.state = keyWaitIdle
	return key, true
}
