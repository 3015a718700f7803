// Package op defines opcodes used by the whynot compiler and virtual machine.
package op

// Code is an integer opcode that indicates an operation to execute.
//
// The zero value is Terminate, so a zero-initialized instruction array is a
// valid program that halts immediately. The compiler relies on this: slots
// beyond the compiled program length act as an end-of-program sentinel.
type Code uint8

const (
	Terminate Code = iota
	IncrementPointer
	DecrementPointer
	IncrementCell
	DecrementCell
	Output
	Input
	JumpIfZero
	JumpIfNonZero
)

// Info contains information about an opcode.
type Info struct {
	Code   Code
	Name   string
	Symbol rune // source symbol, 0 for Terminate
	// HasOperand indicates whether the instruction operand is meaningful.
	// Only the two jump opcodes carry an operand: the index of the
	// matching loop delimiter.
	HasOperand bool
}

var infos = make([]Info, 256)

func init() {
	type opInfo struct {
		op         Code
		name       string
		symbol     rune
		hasOperand bool
	}
	ops := []opInfo{
		{Terminate, "TERMINATE", 0, false},
		{IncrementPointer, "INC_POINTER", '>', false},
		{DecrementPointer, "DEC_POINTER", '<', false},
		{IncrementCell, "INC_CELL", '+', false},
		{DecrementCell, "DEC_CELL", '-', false},
		{Output, "OUTPUT", '.', false},
		{Input, "INPUT", ',', false},
		{JumpIfZero, "JUMP_IF_ZERO", '[', true},
		{JumpIfNonZero, "JUMP_IF_NON_ZERO", ']', true},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:       o.op,
			Name:       o.name,
			Symbol:     o.symbol,
			HasOperand: o.hasOperand,
		}
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(op Code) Info {
	return infos[op]
}

// String returns the opcode's name, or "UNKNOWN" for an unrecognized code.
func (c Code) String() string {
	info := infos[c]
	if info.Name == "" {
		return "UNKNOWN"
	}
	return info.Name
}

// FromSymbol returns the opcode for a source symbol. The second return value
// is false if the symbol is not part of the language, in which case the
// symbol is a comment character.
func FromSymbol(symbol rune) (Code, bool) {
	switch symbol {
	case '>':
		return IncrementPointer, true
	case '<':
		return DecrementPointer, true
	case '+':
		return IncrementCell, true
	case '-':
		return DecrementCell, true
	case '.':
		return Output, true
	case ',':
		return Input, true
	case '[':
		return JumpIfZero, true
	case ']':
		return JumpIfNonZero, true
	default:
		return Terminate, false
	}
}
