package vm

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/whynot-lang/whynot/compiler"
)

func TestEmptyProgram(t *testing.T) {
	out, err := run(context.Background(), "")
	require.Nil(t, err)
	require.Equal(t, "", out)
}

func TestOutputEtx(t *testing.T) {
	out, err := run(context.Background(), "+++.")
	require.Nil(t, err)
	require.Equal(t, "\x03", out)
}

func TestOutputLetter(t *testing.T) {
	// 10 * 7 + 2 = 72 = 'H'
	out, err := run(context.Background(), "++++++++++[>+++++++<-]>++.")
	require.Nil(t, err)
	require.Equal(t, "H", out)
}

func TestSimpleLoop(t *testing.T) {
	m, _, err := newMachine("++[-]")
	require.Nil(t, err)
	require.Nil(t, m.Run(context.Background()))
	require.Equal(t, uint16(0), m.Cell(0))
}

func TestNestedLoops(t *testing.T) {
	// 2 * 2 * 2 = 8 in the third cell. Nested loops only work if a taken
	// jump lands one instruction past the delimiter it targets.
	m, _, err := newMachine("++[>++[>++<-]<-]")
	require.Nil(t, err)
	require.Nil(t, m.Run(context.Background()))
	require.Equal(t, uint16(0), m.Cell(0))
	require.Equal(t, uint16(0), m.Cell(1))
	require.Equal(t, uint16(8), m.Cell(2))
}

func TestCellArithmeticWraps(t *testing.T) {
	// A decrement from zero wraps to the maximum cell value, and one
	// increment wraps it back.
	m, _, err := newMachine("-")
	require.Nil(t, err)
	require.Nil(t, m.Run(context.Background()))
	require.Equal(t, uint16(65535), m.Cell(0))

	m, _, err = newMachine("-+")
	require.Nil(t, err)
	require.Nil(t, m.Run(context.Background()))
	require.Equal(t, uint16(0), m.Cell(0))
}

func TestPointerUnderflowEndsRun(t *testing.T) {
	// Decrementing the pointer below zero wraps it far past the tape
	// bound, which ends the run without touching the exhaustion case.
	m, _, err := newMachine("<+")
	require.Nil(t, err)
	require.Nil(t, m.Run(context.Background()))
	require.Equal(t, uint16(0), m.Cell(0))
	require.Equal(t, uint32(0xffffffff), m.Pointer())
}

func TestTapeExhaustion(t *testing.T) {
	// March the pointer to the end of the tape.
	_, err := run(context.Background(), "-[>-]")
	require.ErrorIs(t, err, ErrTapeExhausted)
}

func TestInput(t *testing.T) {
	out, err := run(context.Background(), ",.",
		WithStdin(bytes.NewReader([]byte{0x00, 0x41})))
	require.Nil(t, err)
	require.Equal(t, "A", out)
}

func TestInputBigEndian(t *testing.T) {
	m, _, err := newMachine(",", WithStdin(bytes.NewReader([]byte{0x01, 0x02})))
	require.Nil(t, err)
	require.Nil(t, m.Run(context.Background()))
	require.Equal(t, uint16(0x0102), m.Cell(0))
}

func TestInputExhausted(t *testing.T) {
	_, err := run(context.Background(), ",",
		WithStdin(bytes.NewReader([]byte{0x41})))
	require.ErrorIs(t, err, ErrInputExhausted)

	_, err = run(context.Background(), ",", WithStdin(bytes.NewReader(nil)))
	require.ErrorIs(t, err, ErrInputExhausted)
}

func TestOutputSurrogateFails(t *testing.T) {
	// 0xD800 is a surrogate code point, not a Unicode scalar value.
	_, err := run(context.Background(), ",.",
		WithStdin(bytes.NewReader([]byte{0xD8, 0x00})))
	require.ErrorIs(t, err, ErrInvalidRune)
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Loops forever: the cell stays at one, so the backward jump is
	// always taken.
	_, err := run(ctx, "+[]", WithContextCheckInterval(10))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMachineRunsAreIndependent(t *testing.T) {
	m, out, err := newMachine("+++.")
	require.Nil(t, err)

	require.Nil(t, m.Run(context.Background()))
	require.Equal(t, uint16(3), m.Cell(0))

	// The tape is zeroed between runs, so the second run produces the
	// same output rather than accumulating.
	require.Nil(t, m.Run(context.Background()))
	require.Equal(t, uint16(3), m.Cell(0))
	require.Equal(t, "\x03\x03", out.String())
}

func TestStepsCounted(t *testing.T) {
	m, _, err := newMachine("+++")
	require.Nil(t, err)
	require.Nil(t, m.Run(context.Background()))
	require.Equal(t, int64(3), m.Steps())
}

func BenchmarkRun(b *testing.B) {
	program, err := compiler.Compile("-[>-]<[-]")
	if err != nil {
		b.Fatal(err)
	}
	m := New(program)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.Run(context.Background()); err != ErrTapeExhausted {
			b.Fatal(err)
		}
	}
}

func TestRunConvenience(t *testing.T) {
	program, err := compiler.Compile("+.")
	require.Nil(t, err)

	var out strings.Builder
	require.Nil(t, Run(context.Background(), program, WithStdout(&out)))
	require.Equal(t, "\x01", out.String())
}
