// Package vm implements the interpreter: a fetch/decode/execute loop
// over a resolved ir.Module, six registers, a flat word-addressable
// memory, and byte-oriented standard I/O.
package vm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/harukamm/elvm/internal/ir"
)

// Fault is a runtime error: out-of-range pc, out-of-range memory
// address, or an unencoded/unset opcode. Run returns *Fault instead of
// calling panic or os.Exit.
type Fault struct {
	PC  int
	Msg string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("pc %d: %s", f.PC, f.Msg)
}

func fault(pc int, format string, args ...any) error {
	return &Fault{PC: pc, Msg: fmt.Sprintf(format, args...)}
}

// Interpreter owns the VM state for one execution: registers, memory,
// program counter, and the byte streams EXIT/GETC/PUTC drive. Its
// memory size defaults to ir.WordMod (2^24 words) but is configurable.
type Interpreter struct {
	regs   [ir.NumRegisters]uint32
	mem    []uint32
	pc     int
	loaded []ir.Instruction

	in  *bufio.Reader
	out *bufio.Writer

	// trace, when non-nil, receives one line per fetched instruction.
	trace io.Writer
}

// DefaultMemoryWords is the word-addressable memory size the
// interpreter defaults to absent an overriding configuration.
const DefaultMemoryWords = ir.WordMod

// New builds an Interpreter with the given memory size (pass
// DefaultMemoryWords absent an overriding configuration), reading
// GETC input from in and writing PUTC output to out. trace may be nil.
func New(memWords int, in io.Reader, out io.Writer, trace io.Writer) *Interpreter {
	return &Interpreter{
		mem:   make([]uint32, memWords),
		in:    bufio.NewReader(in),
		out:   bufio.NewWriter(out),
		trace: trace,
	}
}

// Registers returns a snapshot of the register file, for diagnostics
// and tests.
func (m *Interpreter) Registers() [ir.NumRegisters]uint32 {
	return m.regs
}

// PC returns the current program counter.
func (m *Interpreter) PC() int {
	return m.pc
}

// Memory returns the live backing memory slice. Callers must not
// retain it past the next Run call.
func (m *Interpreter) Memory() []uint32 {
	return m.mem
}

// Load resets the interpreter and installs module: registers and
// memory are zeroed, the module's Data image is copied into memory
// starting at address 0, and pc is set to the module's Entry, before
// the fetch loop begins.
func (m *Interpreter) Load(module *ir.Module) error {
	if len(module.Data) > len(m.mem) {
		return fmt.Errorf("module data image (%d words) exceeds memory size (%d words)", len(module.Data), len(m.mem))
	}
	for i := range m.regs {
		m.regs[i] = 0
	}
	for i := range m.mem {
		m.mem[i] = 0
	}
	for i, d := range module.Data {
		m.mem[i] = uint32(d)
	}
	m.loaded = module.Text
	m.pc = module.Entry
	return nil
}

func (m *Interpreter) value(v ir.Value) uint32 {
	if v.Type == ir.REG {
		return m.regs[v.Reg]
	}
	return v.Imm
}
