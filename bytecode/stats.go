package bytecode

import "github.com/whynot-lang/whynot/op"

// Stats contains statistics about a compiled program. This is useful for
// auditing a program before execution.
type Stats struct {
	// InstructionCount is the number of compiled instructions, including
	// the trailing Terminate instruction.
	InstructionCount int

	// LoopCount is the number of loop pairs in the program.
	LoopCount int

	// SourceBytes is the size of the original source text in bytes.
	SourceBytes int
}

// Stats returns statistics about the program.
func (p *Program) Stats() Stats {
	var loops int
	for i := 0; i < p.count; i++ {
		if p.instructions[i].Operator == op.JumpIfZero {
			loops++
		}
	}
	return Stats{
		InstructionCount: p.count,
		LoopCount:        loops,
		SourceBytes:      len(p.source),
	}
}
