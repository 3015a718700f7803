package dis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whynot-lang/whynot/compiler"
)

func TestDisassemble(t *testing.T) {
	program, err := compiler.Compile("+[-].")
	require.Nil(t, err)

	listing := Disassemble(program)
	require.Len(t, listing, 6)

	require.Equal(t, Instruction{Offset: 0, Name: "INC_CELL", Symbol: "+"}, listing[0])
	require.Equal(t, Instruction{Offset: 1, Name: "JUMP_IF_ZERO", Operand: "3", Symbol: "["}, listing[1])
	require.Equal(t, Instruction{Offset: 2, Name: "DEC_CELL", Symbol: "-"}, listing[2])
	require.Equal(t, Instruction{Offset: 3, Name: "JUMP_IF_NON_ZERO", Operand: "1", Symbol: "]"}, listing[3])
	require.Equal(t, Instruction{Offset: 4, Name: "OUTPUT", Symbol: "."}, listing[4])
	require.Equal(t, Instruction{Offset: 5, Name: "TERMINATE"}, listing[5])
}

func TestPrint(t *testing.T) {
	program, err := compiler.Compile("+[-]")
	require.Nil(t, err)

	var buf bytes.Buffer
	Print(Disassemble(program), &buf)

	result := buf.String()
	for _, want := range []string{
		"OFFSET", "OPCODE", "OPERAND", "SYMBOL",
		"JUMP_IF_ZERO", "JUMP_IF_NON_ZERO", "TERMINATE",
	} {
		require.True(t, strings.Contains(result, want), want)
	}

	// Top border, header, separator, five instruction rows, bottom border.
	lines := strings.Count(strings.TrimSpace(result), "\n") + 1
	require.Equal(t, 9, lines)
}
