package vm

import (
	"fmt"

	"github.com/harukamm/elvm/internal/ir"
)

// traceStep writes one line describing the about-to-execute
// instruction when tracing is enabled (see internal/config's
// execution.trace knob).
func (m *Interpreter) traceStep(inst ir.Instruction) {
	if m.trace == nil {
		return
	}
	fmt.Fprintf(m.trace, "%06d %-5s dst=%s src=%s jmp=%s\n",
		m.pc, inst.Op, inst.Dst, inst.Src, inst.Jmp)
}
