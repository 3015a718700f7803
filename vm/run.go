package vm

import (
	"bytes"
	"context"

	"github.com/whynot-lang/whynot/bytecode"
	"github.com/whynot-lang/whynot/compiler"
)

// Run executes the given program in a new Machine.
func Run(ctx context.Context, program *bytecode.Program, options ...Option) error {
	return New(program, options...).Run(ctx)
}

// Compile the given source and return a Machine ready to run it, with
// output captured in the returned buffer. Used for testing.
func newMachine(source string, options ...Option) (*Machine, *bytes.Buffer, error) {
	program, err := compiler.Compile(source)
	if err != nil {
		return nil, nil, err
	}
	var out bytes.Buffer
	options = append([]Option{WithStdout(&out)}, options...)
	return New(program, options...), &out, nil
}

// Compile and run the given source, returning its output. Used for testing.
func run(ctx context.Context, source string, options ...Option) (string, error) {
	m, out, err := newMachine(source, options...)
	if err != nil {
		return "", err
	}
	if err := m.Run(ctx); err != nil {
		return out.String(), err
	}
	return out.String(), nil
}
