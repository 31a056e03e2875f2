package chip8

import "fmt"

// Stack is the bounded call stack holding subroutine return addresses.
type Stack struct {
	entries [StackSize]uint16
	sp      int
}

// Push stores the address on top of the stack.
// It returns ErrStackOverflow if the stack is full, the stack is not modified
// in that case.
func (s *Stack) Push(address uint16) error {
	if s.sp == len(s.entries) {
		return fmt.Errorf("%w: maximum depth %d reached", ErrStackOverflow, len(s.entries))
	}
	s.entries[s.sp] = address
	s.sp++
	return nil
}

// Pop removes and returns the address on top of the stack.
// It returns ErrStackUnderflow if the stack is empty.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.entries[s.sp], nil
}

// Len returns the number of addresses on the stack.
func (s *Stack) Len() int {
	return s.sp
}
