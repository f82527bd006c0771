package extract

import (
	"fmt"

	"recipegraph/internal"
)

// FurnaceExtractor covers the furnace, blast furnace and smoker. They share a
// widget: one ingredient, one fuel and one result. Fuel is not modelled.
type FurnaceExtractor struct {
	Kind internal.TransformationType
}

func (f FurnaceExtractor) Type() internal.TransformationType { return f.Kind }

func (f FurnaceExtractor) Selector() string {
	switch f.Kind {
	case internal.BlastFurnace:
		return ".mcui-Blast_Furnace"
	case internal.Smoker:
		return ".mcui-Smoker"
	default:
		return ".mcui-Furnace"
	}
}

func (f FurnaceExtractor) Extract(el Element) ([]internal.Draft, error) {
	inputs := el.slotsIn(".mcui-input .invslot")
	outputs := el.slotsIn(".mcui-output .invslot")
	if len(inputs) != 1 || len(outputs) != 1 {
		return nil, fmt.Errorf("%s: want 1 ingredient and 1 result, got %d and %d: %w",
			f.Kind, len(inputs), len(outputs), internal.ErrMalformed)
	}
	correlate(inputs, outputs)
	return []internal.Draft{el.draft(f.Kind, inputs, outputs, internal.Metadata{})}, nil
}
