package extract

import (
	"fmt"

	"recipegraph/internal"
)

// CraftingExtractor reads crafting table widgets. Grid positions are dropped;
// only the multiset of filled slots is kept.
type CraftingExtractor struct{}

func (CraftingExtractor) Type() internal.TransformationType { return internal.Crafting }

func (CraftingExtractor) Selector() string { return ".mcui-Crafting_Table" }

func (CraftingExtractor) Extract(el Element) ([]internal.Draft, error) {
	inputs := el.slotsIn(".mcui-input .invslot")
	outputs := el.slotsIn(".mcui-output .invslot")
	if len(inputs) == 0 {
		return nil, fmt.Errorf("crafting: no ingredients: %w", internal.ErrMalformed)
	}
	if len(outputs) != 1 {
		return nil, fmt.Errorf("crafting: %d result slots: %w", len(outputs), internal.ErrMalformed)
	}
	correlate(inputs, outputs)

	var meta internal.Metadata
	if el.Doc.HasClass(el.Handle, "mcui-shapeless") || el.has(".mcui-shapeless") {
		meta.SetExtra("shapeless", true)
	}
	return []internal.Draft{el.draft(internal.Crafting, inputs, outputs, meta)}, nil
}
