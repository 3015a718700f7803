// Package whynot implements a two-stage toolchain for a minimal esoteric
// language: a compiler that translates source text into a fixed-capacity
// instruction array with resolved jump targets, and a virtual machine that
// executes the result against a bounded memory tape.
//
// Most callers only need the package-level functions:
//
//	err := whynot.Eval(ctx, "+++.")
//
// The compiler and vm packages expose the two stages individually for
// callers that want to compile once and run repeatedly, or inspect the
// compiled program.
package whynot

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/whynot-lang/whynot/bytecode"
	"github.com/whynot-lang/whynot/compiler"
	"github.com/whynot-lang/whynot/vm"
)

// Option configures a whynot compilation or execution.
type Option func(*options)

type options struct {
	filename      string
	stdin         io.Reader
	stdout        io.Writer
	logger        *zerolog.Logger
	checkInterval *int
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) compilerOpts() []compiler.Option {
	var opts []compiler.Option
	if o.filename != "" {
		opts = append(opts, compiler.WithFilename(o.filename))
	}
	return opts
}

func (o *options) vmOpts() []vm.Option {
	var opts []vm.Option
	if o.stdin != nil {
		opts = append(opts, vm.WithStdin(o.stdin))
	}
	if o.stdout != nil {
		opts = append(opts, vm.WithStdout(o.stdout))
	}
	if o.logger != nil {
		opts = append(opts, vm.WithLogger(*o.logger))
	}
	if o.checkInterval != nil {
		opts = append(opts, vm.WithContextCheckInterval(*o.checkInterval))
	}
	return opts
}

// WithFilename sets the source filename recorded on the compiled program.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithStdin sets the reader consulted by input instructions.
func WithStdin(r io.Reader) Option {
	return func(o *options) {
		o.stdin = r
	}
}

// WithStdout sets the writer that receives output instructions.
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// WithLogger sets a logger for run diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithContextCheckInterval sets how often the virtual machine checks
// ctx.Done(), in instructions.
func WithContextCheckInterval(interval int) Option {
	return func(o *options) {
		o.checkInterval = &interval
	}
}

// Compile translates the given source text into an immutable Program.
func Compile(source string, opts ...Option) (*bytecode.Program, error) {
	o := collectOptions(opts...)
	return compiler.Compile(source, o.compilerOpts()...)
}

// Eval compiles and runs the given source text.
func Eval(ctx context.Context, source string, opts ...Option) error {
	o := collectOptions(opts...)
	program, err := compiler.Compile(source, o.compilerOpts()...)
	if err != nil {
		return err
	}
	return vm.Run(ctx, program, o.vmOpts()...)
}
