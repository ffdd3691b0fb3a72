// Package ir defines the data model shared by the parser, linker and
// interpreter: registers, values, opcodes, instructions and the
// resolved Module they compose into.
package ir

// Register names one of the six general-purpose registers. Encoding
// order is part of the contract: register files are indexed by
// ordinal, A through SP.
type Register int

const (
	A Register = iota
	B
	C
	D
	BP
	SP
)

// NumRegisters is the size of a register file.
const NumRegisters = int(SP) + 1

func (r Register) String() string {
	switch r {
	case A:
		return "A"
	case B:
		return "B"
	case C:
		return "C"
	case D:
		return "D"
	case BP:
		return "BP"
	case SP:
		return "SP"
	default:
		return "none"
	}
}

// IsRegisterName reports whether s names one of the six registers.
func IsRegisterName(s string) bool {
	_, ok := registerNames[s]
	return ok
}

// RegisterByName looks up a register by its EIR source name.
func RegisterByName(s string) (Register, bool) {
	r, ok := registerNames[s]
	return r, ok
}

var registerNames = map[string]Register{
	"A":  A,
	"B":  B,
	"C":  C,
	"D":  D,
	"BP": BP,
	"SP": SP,
}
