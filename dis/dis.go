// Package dis supports disassembling compiled whynot programs into a
// human-readable listing.
package dis

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/whynot-lang/whynot/bytecode"
	"github.com/whynot-lang/whynot/op"
)

// Instruction is one entry in a disassembled listing.
type Instruction struct {
	Offset  int
	Name    string
	Operand string // empty when the operand is not meaningful
	Symbol  string // source symbol, empty for Terminate
}

// Disassemble returns a listing of the program's compiled instructions,
// including the trailing Terminate.
func Disassemble(program *bytecode.Program) []Instruction {
	count := program.InstructionCount()
	listing := make([]Instruction, 0, count)
	for i := 0; i < count; i++ {
		ins := program.InstructionAt(i)
		info := op.GetInfo(ins.Operator)
		entry := Instruction{Offset: i, Name: info.Name}
		if info.HasOperand {
			entry.Operand = strconv.Itoa(int(ins.Operand))
		}
		if info.Symbol != 0 {
			entry.Symbol = string(info.Symbol)
		}
		listing = append(listing, entry)
	}
	return listing
}

// Print writes a table containing the given instructions to the writer.
func Print(listing []Instruction, w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"OFFSET", "OPCODE", "OPERAND", "SYMBOL"})
	for _, ins := range listing {
		tw.AppendRow(table.Row{ins.Offset, ins.Name, ins.Operand, ins.Symbol})
	}
	tw.Render()
}
