// Package parser implements the EIR parser and linker: it drives an
// internal/reader.Reader to build an unresolved Program (instructions
// whose label operands carry ir.LAB values, plus per-section data
// buckets), then resolves that Program into an ir.Module. Every label
// is recorded by offset as it is declared, and every reference to it
// is patched once the full program has been seen.
package parser

import "github.com/harukamm/elvm/internal/ir"

// tempDatum is one pre-link data-segment entry: either a literal word
// or a reference to a label that will be resolved at link time.
type tempDatum struct {
	isLabel bool
	val     uint32
	label   string
}

// dataSection is one numbered `.data N` bucket: its own label
// namespace and its own ordered list of temp data entries, to be
// concatenated with its siblings in ascending key order by the linker.
type dataSection struct {
	key    int
	labels map[string]int
	items  []tempDatum
}

func newDataSection(key int) *dataSection {
	return &dataSection{key: key, labels: make(map[string]int)}
}

// Program is the parser's output: the unresolved text segment plus
// every data section seen, keyed by section number. Some Values in
// Program.Instructions carry ir.LAB; Link resolves every one of them.
type Program struct {
	Instructions []ir.Instruction
	TextLabels   map[string]int
	sections     map[int]*dataSection
	sectionOrder []int
}

func newProgram() *Program {
	return &Program{
		TextLabels: make(map[string]int),
		sections:   make(map[int]*dataSection),
	}
}

// section returns the bucket for key, creating it (and recording its
// first-seen order) if this is the first time key is mentioned.
func (p *Program) section(key int) *dataSection {
	if s, ok := p.sections[key]; ok {
		return s
	}
	s := newDataSection(key)
	p.sections[key] = s
	p.sectionOrder = append(p.sectionOrder, key)
	return s
}
