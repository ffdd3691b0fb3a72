package parser

import (
	"strconv"

	"github.com/harukamm/elvm/internal/ir"
	"github.com/harukamm/elvm/internal/reader"
)

// Parse tokenizes and parses EIR source into an unresolved Program.
// Label operands are left tagged ir.LAB; Link resolves them.
func Parse(r *reader.Reader) (*Program, error) {
	p := newProgram()
	for {
		r.SkipSpaces()
		if r.IsEnd() {
			return p, nil
		}
		if r.Accept(".data") {
			key, err := readSectionKey(r)
			if err != nil {
				return nil, err
			}
			if err := parseDataBody(r, p.section(key)); err != nil {
				return nil, err
			}
			continue
		}
		start := r.GetPos()
		r.Accept(".text") // optional; segment is .text by default
		if err := parseTextBody(r, p); err != nil {
			return nil, err
		}
		if r.GetPos() == start {
			return nil, errf(r.Line(), "unexpected input starting with %q", string(r.Peek()))
		}
	}
}

// readSectionKey reads the optional nonnegative integer following
// ".data"; a missing or non-numeric token leaves the cursor untouched
// and defaults the key to 0.
func readSectionKey(r *reader.Reader) (int, error) {
	saved := r.GetPos()
	word := r.TokenWord()
	if word != "" && isDigits(word) {
		n, err := strconv.Atoi(word)
		if err != nil {
			return 0, errf(r.Line(), "malformed section number %q", word)
		}
		return n, nil
	}
	r.SetPos(saved)
	return 0, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseTextBody parses instructions and label declarations until it
// hits a token it cannot interpret as either, at which point it
// rewinds and returns, letting Parse's segment dispatcher try again
// (as a ".data" header, most likely).
func parseTextBody(r *reader.Reader, p *Program) error {
	for {
		if err := consumeInstructions(r, p); err != nil {
			return err
		}
		if r.IsEnd() {
			return nil
		}
		saved := r.GetPos()
		label := r.TokenWord()
		if !r.Accept(":") {
			r.SetPos(saved)
			return nil
		}
		if _, exists := p.TextLabels[label]; exists {
			return errf(r.Line(), "text label redeclared: %s", label)
		}
		p.TextLabels[label] = len(p.Instructions)
	}
}

// consumeInstructions parses a maximal run of instructions, skipping
// comment-like directives (#, .loc, .file, and a nested .text) ahead
// of each one.
func consumeInstructions(r *reader.Reader, p *Program) error {
	for {
		for r.Accept("#") || r.Accept(".loc") || r.Accept(".file") || r.Accept(".text") {
			r.SkipUntilRet()
		}
		if r.IsEnd() {
			return nil
		}
		saved := r.GetPos()
		word := r.TokenWord()
		if r.Accept(":") {
			r.SetPos(saved)
			return nil
		}
		op := ir.LookupOp(word)
		if op == ir.OpUnset {
			r.SetPos(saved)
			return nil
		}
		inst, err := parseInstruction(r, op)
		if err != nil {
			return err
		}
		p.Instructions = append(p.Instructions, inst)
	}
}

// parseInstruction reads the operand list for op, having already
// consumed the opcode mnemonic.
func parseInstruction(r *reader.Reader, op ir.Op) (ir.Instruction, error) {
	switch op {
	case ir.MOV, ir.ADD, ir.SUB, ir.LOAD, ir.STORE:
		return parseTwoOperand(r, op)
	case ir.EQ, ir.NE, ir.LT, ir.GT, ir.LE, ir.GE:
		return parseTwoOperand(r, op)
	case ir.JMP:
		return parseJump(r, op)
	case ir.JEQ, ir.JNE, ir.JLT, ir.JGT, ir.JLE, ir.JGE:
		return parseJump(r, op)
	case ir.PUTC:
		v, err := readValue(r)
		if err != nil {
			return ir.Instruction{}, err
		}
		if v.Type == ir.LAB {
			return ir.Instruction{}, errf(r.Line(), "putc operand must not be a label")
		}
		return ir.Instruction{Op: op, Src: v}, nil
	case ir.GETC:
		v, err := readValue(r)
		if err != nil {
			return ir.Instruction{}, err
		}
		if v.Type != ir.REG {
			return ir.Instruction{}, errf(r.Line(), "getc operand must be a register")
		}
		return ir.Instruction{Op: op, Src: v}, nil
	case ir.EXIT, ir.DUMP:
		return ir.Instruction{Op: op}, nil
	default:
		return ir.Instruction{}, errf(r.Line(), "unhandled opcode %s", op)
	}
}

// parseTwoOperand handles MOV/ADD/SUB/LOAD/STORE/comparisons, all of
// which share the "op dst, src" surface syntax. STORE's first operand
// is the value register and its second is the address, so the two are
// swapped into Instruction.Dst/Src: Dst always names where the
// instruction writes, Src where it reads, regardless of their order on
// the line.
func parseTwoOperand(r *reader.Reader, op ir.Op) (ir.Instruction, error) {
	v1, err := readValue(r)
	if err != nil {
		return ir.Instruction{}, err
	}
	if err := r.Expect(","); err != nil {
		return ir.Instruction{}, err
	}
	v2, err := readValue(r)
	if err != nil {
		return ir.Instruction{}, err
	}
	if v2.Type == ir.LAB && op != ir.MOV {
		return ir.Instruction{}, errf(r.Line(), "%s: only mov may take a label operand", op)
	}

	if op == ir.STORE {
		if v2.Type == ir.LAB {
			return ir.Instruction{}, errf(r.Line(), "store: address operand must not be a label")
		}
		if v1.Type != ir.REG {
			return ir.Instruction{}, errf(r.Line(), "store: value operand must be a register")
		}
		return ir.Instruction{Op: op, Dst: v2, Src: v1}, nil
	}

	if v1.Type != ir.REG {
		return ir.Instruction{}, errf(r.Line(), "%s: first operand must be a register", op)
	}
	return ir.Instruction{Op: op, Dst: v1, Src: v2}, nil
}

// parseJump handles JMP (jump-only) and the six Jcc variants (jump
// plus a dst, src comparison pair).
func parseJump(r *reader.Reader, op ir.Op) (ir.Instruction, error) {
	jv, err := readValue(r)
	if err != nil {
		return ir.Instruction{}, err
	}
	if jv.Type == ir.IMM {
		return ir.Instruction{}, errf(r.Line(), "%s: jump target must not be a literal code index", op)
	}
	inst := ir.Instruction{Op: op, Jmp: jv}
	if op == ir.JMP {
		return inst, nil
	}
	if err := r.Expect(","); err != nil {
		return ir.Instruction{}, err
	}
	dst, err := readValue(r)
	if err != nil {
		return ir.Instruction{}, err
	}
	if dst.Type != ir.REG {
		return ir.Instruction{}, errf(r.Line(), "%s: comparison register operand must be a register", op)
	}
	if err := r.Expect(","); err != nil {
		return ir.Instruction{}, err
	}
	src, err := readValue(r)
	if err != nil {
		return ir.Instruction{}, err
	}
	if src.Type == ir.LAB {
		return ir.Instruction{}, errf(r.Line(), "%s: comparison source must not be a label", op)
	}
	inst.Dst = dst
	inst.Src = src
	return inst, nil
}

// readValue parses one operand: an optionally-signed decimal integer
// (reduced mod 2^24, so negatives wrap to large residues), a register
// name, or a bare identifier treated as a label reference.
func readValue(r *reader.Reader) (ir.Value, error) {
	r.SkipSpaces()
	minus := !r.IsEnd() && r.Peek() == '-'
	if minus {
		r.Getc()
	}
	word := r.TokenWord()
	if word == "" {
		return ir.Value{}, errf(r.Line(), "expected an operand")
	}
	if word[0] >= '0' && word[0] <= '9' {
		for i := 0; i < len(word); i++ {
			if word[i] < '0' || word[i] > '9' {
				return ir.Value{}, errf(r.Line(), "malformed integer literal %q", word)
			}
		}
		n, err := strconv.ParseUint(word, 10, 64)
		if err != nil {
			return ir.Value{}, errf(r.Line(), "integer literal out of range: %q", word)
		}
		v := int64(n)
		if minus {
			v = -v
		}
		return ir.ImmValue(uint32(uint64(v) & ir.WordMask)), nil
	}
	if minus {
		return ir.Value{}, errf(r.Line(), "'-' may only prefix a decimal literal, got %q", word)
	}
	if reg, ok := ir.RegisterByName(word); ok {
		return ir.RegValue(reg), nil
	}
	return ir.LabelValue(word), nil
}
