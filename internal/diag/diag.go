// Package diag prints a resolved ir.Module for inspection: its text
// segment, its data segment, its entry point and the reserved _edata
// offset, one instruction or word per line.
package diag

import (
	"fmt"
	"io"

	"github.com/harukamm/elvm/internal/ir"
)

// DumpModule writes the text segment, the data segment and the entry
// point of m to w, one instruction or word per line.
func DumpModule(w io.Writer, m *ir.Module) {
	DumpText(w, m.Text)
	DumpData(w, m.Data)
	fmt.Fprintf(w, "entry: %d\n", m.Entry)
	fmt.Fprintf(w, "_edata: %d\n", m.EData)
}

// DumpText writes one line per instruction.
func DumpText(w io.Writer, text []ir.Instruction) {
	for i, inst := range text {
		fmt.Fprintf(w, "%d-th,%s dst: %s src: %s jmp: %s\n",
			i, inst.Op, inst.Dst, inst.Src, inst.Jmp)
	}
}

// DumpData writes one line per data word.
func DumpData(w io.Writer, data []ir.Data) {
	for i, d := range data {
		fmt.Fprintf(w, "[%d] %d\n", i, d)
	}
}
