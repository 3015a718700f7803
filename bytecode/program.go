// Package bytecode provides an immutable representation of compiled whynot
// programs.
//
// This package defines the output of compilation: a fixed-capacity
// instruction array with resolved jump operands. A Program is created once
// by the compiler and is then safe for read-only execution by any number of
// virtual machines. Index-based access is used for all collections and no
// mutation methods exist.
package bytecode

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/whynot-lang/whynot/op"
)

// MaxInstructions is the fixed capacity of a program's instruction array.
// Every program occupies exactly this many slots; slots beyond the compiled
// length keep the zero-value Terminate instruction, which acts as an
// implicit end-of-program sentinel.
const MaxInstructions = 4096

// Instruction pairs an operator with its operand. The operand is meaningful
// only for the two jump opcodes, where it holds the index of the matching
// loop delimiter.
type Instruction struct {
	Operator op.Code
	Operand  uint16
}

// Program is a compiled whynot program. It is immutable after creation and
// safe for concurrent use.
type Program struct {
	instructions [MaxInstructions]Instruction
	count        int
	source       string
	filename     string
}

// ProgramParams contains parameters for creating a new Program.
type ProgramParams struct {
	// Instructions is the full fixed-capacity instruction array, including
	// the trailing Terminate instruction.
	Instructions [MaxInstructions]Instruction

	// Count is the number of compiled instructions, including the trailing
	// Terminate instruction.
	Count int

	// Source is the original source text.
	Source string

	// Filename is the name of the source file, if any.
	Filename string
}

// NewProgram creates a new immutable Program from the given parameters.
// The instruction array is passed by value, so the Program owns its own
// copy and later caller mutation cannot affect it.
func NewProgram(params ProgramParams) *Program {
	return &Program{
		instructions: params.Instructions,
		count:        params.Count,
		source:       params.Source,
		filename:     params.Filename,
	}
}

// InstructionCount returns the number of compiled instructions, including
// the trailing Terminate instruction.
func (p *Program) InstructionCount() int {
	return p.count
}

// InstructionAt returns the instruction at the given index. Indexes up to
// MaxInstructions-1 are valid; positions beyond the compiled length hold
// the Terminate sentinel.
func (p *Program) InstructionAt(index int) Instruction {
	return p.instructions[index]
}

// Instructions returns a copy of the full instruction array.
func (p *Program) Instructions() [MaxInstructions]Instruction {
	return p.instructions
}

// Source returns the original source text.
func (p *Program) Source() string {
	return p.source
}

// Filename returns the name of the source file, if any.
func (p *Program) Filename() string {
	return p.filename
}

// Validate checks that every jump instruction participates in a mutually
// consistent pair: a JumpIfZero's operand must be the index of a
// JumpIfNonZero whose operand points back at it, and vice versa. The
// compiler establishes this linkage; Validate exists so that callers
// holding a hand-built or deserialized Program can verify it. All
// violations are reported, not just the first.
func (p *Program) Validate() error {
	var result error
	for i := 0; i < MaxInstructions; i++ {
		ins := p.instructions[i]
		if ins.Operator == op.JumpIfZero || ins.Operator == op.JumpIfNonZero {
			if int(ins.Operand) >= MaxInstructions {
				result = multierror.Append(result, fmt.Errorf(
					"jump at %d targets %d, beyond the instruction array",
					i, ins.Operand))
				continue
			}
		}
		switch ins.Operator {
		case op.JumpIfZero:
			target := p.instructions[ins.Operand]
			if target.Operator != op.JumpIfNonZero {
				result = multierror.Append(result, fmt.Errorf(
					"jump at %d targets %s at %d, want JUMP_IF_NON_ZERO",
					i, target.Operator, ins.Operand))
			} else if int(target.Operand) != i {
				result = multierror.Append(result, fmt.Errorf(
					"jump pair %d<->%d is not mutual: %d links back to %d",
					i, ins.Operand, ins.Operand, target.Operand))
			}
		case op.JumpIfNonZero:
			target := p.instructions[ins.Operand]
			if target.Operator != op.JumpIfZero {
				result = multierror.Append(result, fmt.Errorf(
					"jump at %d targets %s at %d, want JUMP_IF_ZERO",
					i, target.Operator, ins.Operand))
			} else if int(target.Operand) != i {
				result = multierror.Append(result, fmt.Errorf(
					"jump pair %d<->%d is not mutual: %d links back to %d",
					i, ins.Operand, ins.Operand, target.Operand))
			}
		}
	}
	return result
}
