package extract

import (
	"fmt"

	"recipegraph/internal"
)

// GrindstoneExtractor reads the two-slot grindstone widget. Two filled slots
// combine (repair); a single filled slot strips enchantments.
type GrindstoneExtractor struct{}

func (GrindstoneExtractor) Type() internal.TransformationType { return internal.Grindstone }

func (GrindstoneExtractor) Selector() string { return ".mcui-Grindstone" }

func (GrindstoneExtractor) Extract(el Element) ([]internal.Draft, error) {
	if total := len(el.Doc.FindIn(el.Handle, ".mcui-input .invslot")); total != 2 {
		return nil, fmt.Errorf("grindstone: %d input slots: %w", total, internal.ErrMalformed)
	}
	inputs := el.slotsIn(".mcui-input .invslot")
	outputs := el.slotsIn(".mcui-output .invslot")
	if len(inputs) == 0 || len(outputs) != 1 {
		return nil, fmt.Errorf("grindstone: %d ingredients, %d results: %w", len(inputs), len(outputs), internal.ErrMalformed)
	}
	correlate(inputs, outputs)

	action := internal.GrindstoneDisenchant
	if len(inputs) == 2 {
		action = internal.GrindstoneRepair
	}
	meta := internal.Metadata{Grindstone: &internal.GrindstoneInfo{Action: action}}
	return []internal.Draft{el.draft(internal.Grindstone, inputs, outputs, meta)}, nil
}
