package vm

import (
	"io"

	"github.com/rs/zerolog"
)

// Option is a configuration function for a Machine.
type Option func(*Machine)

// WithStdin sets the reader consulted by input instructions. The default is
// os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(m *Machine) {
		m.stdin = r
	}
}

// WithStdout sets the writer that receives output instructions. The default
// is os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(m *Machine) {
		m.stdout = w
	}
}

// WithLogger sets a logger for run diagnostics. Logging is disabled by
// default.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithContextCheckInterval sets how often the machine checks ctx.Done()
// during execution. The interval is specified in number of instructions. A
// value of 0 disables the checks, in which case a run is only interruptible
// at input instructions via the reader. The default is
// DefaultContextCheckInterval.
//
// Lower values provide more responsive cancellation but may slightly impact
// performance due to more frequent checks.
func WithContextCheckInterval(interval int) Option {
	return func(m *Machine) {
		m.contextCheckInterval = interval
	}
}
