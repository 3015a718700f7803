// Package vm provides a Machine that executes compiled whynot programs.
package vm

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/whynot-lang/whynot/bytecode"
	"github.com/whynot-lang/whynot/op"
)

const (
	// TapeSize is the number of cells on the memory tape. A run fails when
	// the data pointer lands on this bound.
	TapeSize = 65535

	// DefaultContextCheckInterval is the number of instructions between
	// checks of ctx.Done(). Set to 0 to disable.
	DefaultContextCheckInterval = 1000
)

var (
	// ErrTapeExhausted is returned when the data pointer reaches the end
	// of the memory tape.
	ErrTapeExhausted = errors.New("tape exhausted")

	// ErrInvalidRune is returned when an output instruction encounters a
	// cell value that is not a valid Unicode scalar value. The run cannot
	// continue past this point.
	ErrInvalidRune = errors.New("cell is not a valid Unicode scalar value")

	// ErrInputExhausted is returned when an input instruction cannot read
	// the two bytes it requires. The run cannot continue past this point.
	ErrInputExhausted = errors.New("input exhausted")

	// ErrUnrecognizedOperator is returned when the machine fetches an
	// operator outside the defined opcode set. It should be unreachable
	// for a compiler-produced program.
	ErrUnrecognizedOperator = errors.New("unrecognized operator")
)

// Machine executes a compiled program against a fixed-size memory tape.
// A Machine may execute its program repeatedly, but only one run may be in
// progress at a time. The tape is zeroed at the start of each run.
type Machine struct {
	pc      uint16 // program counter
	ptr     uint32 // data pointer
	steps   int64
	tape    [TapeSize]uint16
	program *bytecode.Program

	stdin  io.Reader
	stdout io.Writer
	logger zerolog.Logger

	running  bool
	runMutex sync.Mutex

	// contextCheckInterval is the number of instructions between checks of
	// ctx.Done(). A value of 0 disables the checks entirely.
	contextCheckInterval int
}

// New creates a new Machine for the given program.
func New(program *bytecode.Program, options ...Option) *Machine {
	m := &Machine{
		program:              program,
		stdin:                os.Stdin,
		stdout:               os.Stdout,
		logger:               zerolog.Nop(),
		contextCheckInterval: DefaultContextCheckInterval,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Run executes the program until it terminates or fails. All machine state
// (tape, data pointer, program counter) is reset first, so each call is an
// independent run.
func (m *Machine) Run(ctx context.Context) error {
	if err := m.start(); err != nil {
		return err
	}
	defer m.stop()

	start := time.Now()
	err := m.eval(ctx)
	m.logger.Debug().
		Int64("steps", m.steps).
		Dur("elapsed", time.Since(start)).
		Err(err).
		Msg("run complete")
	return err
}

func (m *Machine) start() error {
	m.runMutex.Lock()
	defer m.runMutex.Unlock()
	if m.running {
		return fmt.Errorf("machine is already running")
	}
	m.running = true
	m.pc = 0
	m.ptr = 0
	m.steps = 0
	m.tape = [TapeSize]uint16{}
	return nil
}

func (m *Machine) stop() {
	m.runMutex.Lock()
	defer m.runMutex.Unlock()
	m.running = false
}

// Cell returns the value of the tape cell at the given index. It reflects
// the state left behind by the most recent run.
func (m *Machine) Cell(index int) uint16 {
	return m.tape[index]
}

// Pointer returns the data pointer left behind by the most recent run.
func (m *Machine) Pointer() uint32 {
	return m.ptr
}

// Steps returns the number of instructions executed by the most recent run.
func (m *Machine) Steps() int64 {
	return m.steps
}

func (m *Machine) eval(ctx context.Context) error {
	instructions := m.program.Instructions()

	var sinceCheck int
	checkInterval := m.contextCheckInterval
	doneChan := ctx.Done()

	for {
		if int(m.pc) >= bytecode.MaxInstructions {
			// Unreachable for a compiler-produced program: the trailing
			// Terminate stops sequential advance, and no jump can target
			// an index this large.
			return fmt.Errorf("program counter %d out of range", m.pc)
		}

		ins := instructions[m.pc]
		if ins.Operator == op.Terminate || m.ptr >= TapeSize {
			break
		}

		if checkInterval > 0 && doneChan != nil {
			sinceCheck++
			if sinceCheck >= checkInterval {
				sinceCheck = 0
				select {
				case <-doneChan:
					return ctx.Err()
				default:
				}
			}
		}

		switch ins.Operator {
		case op.IncrementPointer:
			m.ptr++
		case op.DecrementPointer:
			m.ptr--
		case op.IncrementCell:
			m.tape[m.ptr]++
		case op.DecrementCell:
			m.tape[m.ptr]--
		case op.Output:
			if err := m.emit(m.tape[m.ptr]); err != nil {
				return err
			}
		case op.Input:
			var buf [2]byte
			if _, err := io.ReadFull(m.stdin, buf[:]); err != nil {
				return fmt.Errorf("%w: %s", ErrInputExhausted, err)
			}
			m.tape[m.ptr] = binary.BigEndian.Uint16(buf[:])
		case op.JumpIfZero:
			if m.tape[m.ptr] == 0 {
				m.pc = ins.Operand
			}
		case op.JumpIfNonZero:
			if m.tape[m.ptr] != 0 {
				m.pc = ins.Operand
			}
		default:
			return fmt.Errorf("%w: %d", ErrUnrecognizedOperator, ins.Operator)
		}

		// The program counter advances after every instruction, taken
		// jumps included. Jump operands point at the matching delimiter
		// itself, so a taken jump resumes one past it.
		m.pc++
		m.steps++
	}

	if m.ptr == TapeSize {
		return ErrTapeExhausted
	}
	return nil
}

// emit writes the cell value to the machine's output as a single Unicode
// scalar value. Surrogate code points are not scalar values and fail the
// run.
func (m *Machine) emit(value uint16) error {
	r := rune(value)
	if !utf8.ValidRune(r) {
		return fmt.Errorf("%w: %#04x", ErrInvalidRune, value)
	}
	_, err := io.WriteString(m.stdout, string(r))
	return err
}
