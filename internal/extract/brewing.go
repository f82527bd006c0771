package extract

import (
	"errors"

	"recipegraph/internal"
)

// BrewingExtractor reads brewing tables: base potion plus ingredient gives
// the result potion. Every row is one independent step of a brewing chain.
type BrewingExtractor struct{}

func (BrewingExtractor) Type() internal.TransformationType { return internal.Brewing }

func (BrewingExtractor) Selector() string { return "table.wikitable" }

func (BrewingExtractor) Extract(el Element) ([]internal.Draft, error) {
	t := el.readTable()
	ingredient := findHeaderIndex(t.headers, []string{"ingredient", "reagent"})
	base := findHeaderIndex(t.headers, []string{"base", "input", "from"}, ingredient)
	result := findHeaderIndex(t.headers, []string{"result", "output", "produce"}, ingredient, base)
	if ingredient < 0 || base < 0 || result < 0 {
		return nil, nil
	}

	drafts := []internal.Draft{}
	var errs []error
	for _, row := range t.rows {
		baseItems := el.cellItems(pickCell(row, base))
		ingredientItems := el.cellItems(pickCell(row, ingredient))
		resultItems := el.cellItems(pickCell(row, result))
		if len(baseItems) == 0 || len(ingredientItems) == 0 || len(resultItems) == 0 {
			errs = append(errs, rowError(row, "incomplete brewing step"))
			continue
		}

		inputs := []internal.Slot{{Alternatives: baseItems}, {Alternatives: ingredientItems}}
		outputs := []internal.Slot{{Alternatives: resultItems}}
		correlate(inputs, outputs)
		drafts = append(drafts, el.draft(internal.Brewing, inputs, outputs, internal.Metadata{}))
	}
	return drafts, errors.Join(errs...)
}
