package vm

import (
	"errors"
	"io"

	"github.com/harukamm/elvm/internal/ir"
)

// Run launches the fetch/decode/execute loop at the current pc and
// runs until EXIT: after executing the instruction at pc, pc advances
// to the branch target if one was taken, otherwise to pc+1. There is
// no implicit halt at end of text; an out-of-range pc is a *Fault.
func (m *Interpreter) Run() error {
	defer m.out.Flush()

	for {
		if m.pc < 0 || m.pc >= len(m.text()) {
			return fault(m.pc, "program counter out of range")
		}
		inst := m.text()[m.pc]
		m.traceStep(inst)

		branched, err := m.step(inst)
		if err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
		if !branched {
			m.pc++
		}
	}
}

// errExit is returned internally by step to unwind Run on EXIT without
// treating it as a fault.
var errExit = errors.New("exit")

// step executes one instruction and reports whether it branched (and
// so should not fall through to pc+1).
func (m *Interpreter) step(inst ir.Instruction) (branched bool, err error) {
	switch inst.Op {
	case ir.MOV:
		m.regs[inst.Dst.Reg] = m.value(inst.Src)

	case ir.ADD:
		m.regs[inst.Dst.Reg] = addMod(m.regs[inst.Dst.Reg], m.value(inst.Src))

	case ir.SUB:
		m.regs[inst.Dst.Reg] = subMod(m.regs[inst.Dst.Reg], m.value(inst.Src))

	case ir.LOAD:
		addr := m.value(inst.Src)
		if int(addr) >= len(m.mem) {
			return false, fault(m.pc, "load address %d out of range", addr)
		}
		m.regs[inst.Dst.Reg] = m.mem[addr]

	case ir.STORE:
		addr := m.value(inst.Dst)
		if int(addr) >= len(m.mem) {
			return false, fault(m.pc, "store address %d out of range", addr)
		}
		m.mem[addr] = m.regs[inst.Src.Reg]

	case ir.EQ, ir.NE, ir.LT, ir.GT, ir.LE, ir.GE:
		m.regs[inst.Dst.Reg] = boolWord(compare(inst.Op, m.regs[inst.Dst.Reg], m.value(inst.Src)))

	case ir.JMP:
		m.pc = int(m.value(inst.Jmp))
		branched = true

	case ir.JEQ, ir.JNE, ir.JLT, ir.JGT, ir.JLE, ir.JGE:
		if compare(conditionOf(inst.Op), m.regs[inst.Dst.Reg], m.value(inst.Src)) {
			m.pc = int(m.value(inst.Jmp))
			branched = true
		}

	case ir.PUTC:
		if err := m.out.WriteByte(byte(m.value(inst.Src))); err != nil {
			return false, err
		}

	case ir.GETC:
		b, err := m.in.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				m.regs[inst.Src.Reg] = 0
				break
			}
			return false, err
		}
		m.regs[inst.Src.Reg] = uint32(b)

	case ir.EXIT:
		return false, errExit

	case ir.DUMP:
		// diagnostic hook; no-op in the interpreter proper.

	default:
		return false, fault(m.pc, "unencoded opcode %v", inst.Op)
	}
	return branched, nil
}

// addMod and subMod implement the 2^24 modular arithmetic domain:
// ((x op y) + 2^24) mod 2^24, which handles subtraction underflow
// symmetrically with overflow.
func addMod(a, b uint32) uint32 {
	return (a + b) & ir.WordMask
}

func subMod(a, b uint32) uint32 {
	return (a - b) & ir.WordMask
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// conditionOf maps a conditional jump opcode to the comparison it
// gates on.
func conditionOf(op ir.Op) ir.Op {
	switch op {
	case ir.JEQ:
		return ir.EQ
	case ir.JNE:
		return ir.NE
	case ir.JLT:
		return ir.LT
	case ir.JGT:
		return ir.GT
	case ir.JLE:
		return ir.LE
	case ir.JGE:
		return ir.GE
	default:
		return op
	}
}

// compare evaluates one of the six comparison predicates over the
// 24-bit word domain. Values are already reduced into [0, 2^24) and
// compared as unsigned magnitudes, which native uint32 comparison
// gives directly.
func compare(op ir.Op, lhs, rhs uint32) bool {
	switch op {
	case ir.EQ:
		return lhs == rhs
	case ir.NE:
		return lhs != rhs
	case ir.LT:
		return lhs < rhs
	case ir.GT:
		return lhs > rhs
	case ir.LE:
		return lhs <= rhs
	case ir.GE:
		return lhs >= rhs
	default:
		return false
	}
}

func (m *Interpreter) text() []ir.Instruction {
	return m.loaded
}
