package parser

import (
	"sort"

	"github.com/harukamm/elvm/internal/ir"
	"github.com/harukamm/elvm/internal/reader"
)

// Link resolves a parsed Program into an executable ir.Module:
// concatenate data sections, install _edata, resolve data words,
// resolve text labels, pick the entry point, append the trailing
// sentinel word.
func Link(p *Program) (*ir.Module, error) {
	dataLabels, data, err := concatenateDataSections(p)
	if err != nil {
		return nil, err
	}

	dataLabels["_edata"] = len(data)
	edata := len(data)

	if err := resolveTextLabels(p.Instructions, p.TextLabels, dataLabels); err != nil {
		return nil, err
	}

	entry := 0
	if idx, ok := p.TextLabels["main"]; ok {
		entry = idx
	}

	data = append(data, ir.Data(len(data)+1))

	if entry < 0 || entry >= len(p.Instructions) {
		return nil, errf(0, "entry point %d out of range for a %d-instruction text segment", entry, len(p.Instructions))
	}

	return &ir.Module{
		Text:  p.Instructions,
		Data:  data,
		Entry: entry,
		EData: edata,
	}, nil
}

// concatenateDataSections orders sections ascending by key, rebases
// each section's local label offsets to their position in the final
// image, binds _edata to the total data length, and resolves every
// tempDatum's value (a literal word is copied as-is; a label reference
// is looked up once the full cross-section label map is known).
func concatenateDataSections(p *Program) (map[string]int, []ir.Data, error) {
	keys := append([]int(nil), p.sectionOrder...)
	sort.Ints(keys)

	labels := make(map[string]int)
	var allItems []tempDatum
	base := 0
	for _, key := range keys {
		s := p.sections[key]
		for name, offset := range s.labels {
			if _, exists := labels[name]; exists {
				return nil, nil, errf(0, "data label %q declared in more than one section", name)
			}
			labels[name] = base + offset
		}
		allItems = append(allItems, s.items...)
		base += len(s.items)
	}
	labels["_edata"] = base

	data := make([]ir.Data, len(allItems))
	for i, item := range allItems {
		if !item.isLabel {
			data[i] = ir.Data(item.val)
			continue
		}
		idx, ok := labels[item.label]
		if !ok {
			return nil, nil, errf(0, "undefined data label: %s", item.label)
		}
		data[i] = ir.Data(idx)
	}
	return labels, data, nil
}

// resolveTextLabels replaces every LAB-tagged Jmp or Mov-src operand
// with its resolved IMM index, in place.
func resolveTextLabels(text []ir.Instruction, textLabels, dataLabels map[string]int) error {
	for i := range text {
		inst := &text[i]
		switch inst.Op {
		case ir.JMP, ir.JEQ, ir.JNE, ir.JLT, ir.JGT, ir.JLE, ir.JGE:
			if inst.Jmp.Type == ir.LAB {
				idx, ok := textLabels[inst.Jmp.Label]
				if !ok {
					return errf(0, "undefined text label: %s", inst.Jmp.Label)
				}
				if idx >= len(text) {
					return errf(0, "jump target %s lies past the last instruction", inst.Jmp.Label)
				}
				inst.Jmp = ir.ImmValue(uint32(idx))
			}
		case ir.MOV:
			if inst.Src.Type == ir.LAB {
				name := inst.Src.Label
				if idx, ok := dataLabels[name]; ok {
					inst.Src = ir.ImmValue(uint32(idx))
				} else if idx, ok := textLabels[name]; ok {
					inst.Src = ir.ImmValue(uint32(idx))
				} else {
					return errf(0, "undefined label: %s", name)
				}
			}
		}
	}
	return nil
}

// Load parses and links src in one step, for callers (the CLI's run
// and link subcommands) that don't need the intermediate Program.
func Load(src []byte) (*ir.Module, error) {
	prog, err := Parse(reader.New(src))
	if err != nil {
		return nil, err
	}
	return Link(prog)
}
