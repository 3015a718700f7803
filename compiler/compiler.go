// Package compiler translates whynot source text into the corresponding
// bytecode.
//
// Compilation is a single scan over the source. Each recognized symbol
// occupies one slot in the program's fixed-capacity instruction array; any
// other character is a comment and consumes no slot. Loop delimiters are
// resolved as they are scanned: the index of each pending `[` is held on a
// bounded bracket stack until the matching `]` arrives, at which point the
// two instructions are linked by writing each one's index into the other's
// operand. The result is that every jump pair is mutually consistent the
// moment compilation succeeds, with no separate patch pass.
package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/whynot-lang/whynot/bytecode"
	"github.com/whynot-lang/whynot/op"
)

var (
	// ErrUnmatchedLoopStart is returned when the source ends with one or
	// more `[` still unmatched.
	ErrUnmatchedLoopStart = errors.New("unmatched loop start")

	// ErrUnmatchedLoopEnd is returned when a `]` appears with no pending
	// loop start to match it.
	ErrUnmatchedLoopEnd = errors.New("unmatched loop end")

	// ErrNestingTooDeep is returned when loops nest more than MaxLoopDepth
	// levels deep.
	ErrNestingTooDeep = errors.New("loop nesting too deep")

	// ErrProgramTooLarge is returned when the source contains too many
	// instructions to leave room for the trailing Terminate.
	ErrProgramTooLarge = errors.New("program too large")
)

// Compiler translates source text into a bytecode Program.
type Compiler struct {
	filename string
	stack    BracketStack
}

// Option is a configuration function for a Compiler.
type Option func(*Compiler)

// WithFilename sets the source filename recorded on the compiled program.
func WithFilename(filename string) Option {
	return func(c *Compiler) {
		c.filename = filename
	}
}

// New creates and returns a new Compiler.
func New(options ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Compile compiles the given source text and returns an immutable Program.
// This is the standard entry point for compiling code that will be executed.
func Compile(source string, options ...Option) (*bytecode.Program, error) {
	return New(options...).Compile(source)
}

// Compile compiles the given source text. The compiler may be reused for
// subsequent compilations whether or not this one succeeds.
func (c *Compiler) Compile(source string) (*bytecode.Program, error) {
	c.stack = BracketStack{}

	var instructions [bytecode.MaxInstructions]bytecode.Instruction
	pc := uint16(0)

	for _, symbol := range strings.TrimSpace(source) {
		if pc >= bytecode.MaxInstructions {
			break
		}
		switch symbol {
		case '>':
			instructions[pc].Operator = op.IncrementPointer
		case '<':
			instructions[pc].Operator = op.DecrementPointer
		case '+':
			instructions[pc].Operator = op.IncrementCell
		case '-':
			instructions[pc].Operator = op.DecrementCell
		case '.':
			instructions[pc].Operator = op.Output
		case ',':
			instructions[pc].Operator = op.Input
		case '[':
			instructions[pc].Operator = op.JumpIfZero
			if err := c.stack.Push(pc); err != nil {
				return nil, fmt.Errorf("%w: %d levels", ErrNestingTooDeep, MaxLoopDepth)
			}
		case ']':
			start, err := c.stack.Pop()
			if err != nil {
				return nil, ErrUnmatchedLoopEnd
			}
			instructions[pc].Operator = op.JumpIfNonZero
			instructions[pc].Operand = start
			instructions[start].Operand = pc
		default:
			// Comment character: cancel out the increment below so the
			// slot is reused. The subtraction wraps when pc is zero,
			// which the increment immediately undoes.
			pc--
		}
		pc++
	}

	if !c.stack.IsEmpty() {
		return nil, ErrUnmatchedLoopStart
	}
	if pc == bytecode.MaxInstructions {
		return nil, ErrProgramTooLarge
	}
	instructions[pc].Operator = op.Terminate

	return bytecode.NewProgram(bytecode.ProgramParams{
		Instructions: instructions,
		Count:        int(pc) + 1,
		Source:       source,
		Filename:     c.filename,
	}), nil
}
