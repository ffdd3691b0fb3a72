package parser

import (
	"github.com/harukamm/elvm/internal/ir"
	"github.com/harukamm/elvm/internal/reader"
)

// parseDataBody parses label declarations and .string/.long items into
// section until it reaches a token that is neither, at which point it
// rewinds and returns so Parse's segment dispatcher can try again.
func parseDataBody(r *reader.Reader, section *dataSection) error {
	for !r.IsEnd() {
		saved := r.GetPos()
		label := r.TokenWord()
		declared := r.Accept(":")
		if declared {
			if _, exists := section.labels[label]; exists {
				return errf(r.Line(), "data label redeclared: %s", label)
			}
			section.labels[label] = len(section.items)
		} else {
			r.SetPos(saved)
		}

		n, err := parseTypeVals(r, section)
		if err != nil {
			return err
		}
		if n == 0 && !declared {
			return nil
		}
	}
	return nil
}

// parseTypeVals reads as many ".string"/".long" items as appear in a
// row and returns how many it consumed.
func parseTypeVals(r *reader.Reader, section *dataSection) (int, error) {
	n := 0
	for !r.IsEnd() {
		switch {
		case r.Accept(".string"):
			s, err := r.Literal()
			if err != nil {
				return 0, err
			}
			for i := 0; i < len(s); i++ {
				section.items = append(section.items, tempDatum{val: uint32(s[i])})
			}
		case r.Accept(".long"):
			v, err := readValue(r)
			if err != nil {
				return 0, err
			}
			switch v.Type {
			case ir.IMM:
				section.items = append(section.items, tempDatum{val: v.Imm})
			case ir.LAB:
				section.items = append(section.items, tempDatum{isLabel: true, label: v.Label})
			default:
				return 0, errf(r.Line(), ".long operand must be an integer or a label")
			}
		default:
			return n, nil
		}
		n++
		r.SkipSpaces()
	}
	return n, nil
}
