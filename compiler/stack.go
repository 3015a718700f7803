package compiler

import "errors"

// MaxLoopDepth is the capacity of the bracket stack, which bounds how
// deeply loops may nest.
const MaxLoopDepth = 512

var (
	// ErrStackOverflow is returned by Push when the stack is full.
	ErrStackOverflow = errors.New("bracket stack overflow")

	// ErrStackUnderflow is returned by Pop when the stack is empty.
	ErrStackUnderflow = errors.New("bracket stack underflow")
)

// BracketStack is a fixed-capacity LIFO of instruction indexes. The
// compiler pushes the index of each pending loop start and pops it when the
// matching loop end is reached. It is transient compile-time state: a
// successful compilation always leaves it empty.
type BracketStack struct {
	ptr     uint32
	entries [MaxLoopDepth]uint16
}

// Push adds an index to the top of the stack.
func (s *BracketStack) Push(index uint16) error {
	if s.ptr >= MaxLoopDepth {
		return ErrStackOverflow
	}
	s.entries[s.ptr] = index
	s.ptr++
	return nil
}

// Pop removes and returns the index on top of the stack.
func (s *BracketStack) Pop() (uint16, error) {
	if s.ptr == 0 {
		return 0, ErrStackUnderflow
	}
	s.ptr--
	return s.entries[s.ptr], nil
}

// IsEmpty reports whether the stack holds no entries.
func (s *BracketStack) IsEmpty() bool {
	return s.ptr == 0
}

// IsFull reports whether the stack is at capacity.
func (s *BracketStack) IsFull() bool {
	return s.ptr == MaxLoopDepth
}
