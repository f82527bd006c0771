package extract

import (
	"fmt"
	"strings"

	"recipegraph/internal"
)

type SmithingExtractor struct{}

func (SmithingExtractor) Type() internal.TransformationType { return internal.Smithing }

func (SmithingExtractor) Selector() string { return ".mcui-Smithing_Table" }

func (SmithingExtractor) Extract(el Element) ([]internal.Draft, error) {
	inputs := el.slotsIn(".mcui-input .invslot")
	outputs := el.slotsIn(".mcui-output .invslot")
	if len(inputs) < 2 || len(inputs) > 3 {
		return nil, fmt.Errorf("smithing: %d ingredients: %w", len(inputs), internal.ErrMalformed)
	}
	if len(outputs) != 1 {
		return nil, fmt.Errorf("smithing: %d result slots: %w", len(outputs), internal.ErrMalformed)
	}
	correlate(inputs, outputs)

	meta := internal.Metadata{Smithing: &internal.SmithingInfo{Pattern: smithingPattern(inputs)}}
	return []internal.Draft{el.draft(internal.Smithing, inputs, outputs, meta)}, nil
}

func smithingPattern(inputs []internal.Slot) string {
	for _, s := range inputs {
		for _, it := range s.Alternatives {
			switch {
			case strings.Contains(it.Key, "netherite upgrade"):
				return internal.SmithingUpgrade
			case strings.Contains(it.Key, "armor trim"):
				return internal.SmithingTrim
			}
		}
	}
	return internal.SmithingOther
}
