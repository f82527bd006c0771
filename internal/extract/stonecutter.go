package extract

import (
	"fmt"

	"recipegraph/internal"
)

// StonecutterExtractor emits one draft per selectable result. The results of
// a stonecutter are choices, not a lockstep animation, so they are split here
// instead of being resolved as alternatives.
type StonecutterExtractor struct{}

func (StonecutterExtractor) Type() internal.TransformationType { return internal.Stonecutter }

func (StonecutterExtractor) Selector() string { return ".mcui-Stonecutter" }

func (StonecutterExtractor) Extract(el Element) ([]internal.Draft, error) {
	inputs := el.slotsIn(".mcui-input .invslot")
	if len(inputs) != 1 {
		return nil, fmt.Errorf("stonecutter: %d ingredients: %w", len(inputs), internal.ErrMalformed)
	}

	candidates := []internal.Item{}
	for _, s := range el.slotsIn(".mcui-output .invslot") {
		candidates = append(candidates, s.Alternatives...)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("stonecutter: no results: %w", internal.ErrMalformed)
	}

	drafts := make([]internal.Draft, 0, len(candidates))
	for _, out := range candidates {
		in := []internal.Slot{{Alternatives: append([]internal.Item(nil), inputs[0].Alternatives...)}}
		drafts = append(drafts, el.draft(internal.Stonecutter, in, []internal.Slot{internal.Single(out)}, internal.Metadata{}))
	}
	return drafts, nil
}
