package extract

import (
	"errors"

	"recipegraph/internal"
	"recipegraph/internal/util"
)

// CompostLevel stands in for the composter's fill level, which is what a
// composting step produces.
var CompostLevel = internal.NewItem("Compost Level", "")

type CompostingExtractor struct{}

func (CompostingExtractor) Type() internal.TransformationType { return internal.Composting }

func (CompostingExtractor) Selector() string { return "table.wikitable" }

func (CompostingExtractor) Extract(el Element) ([]internal.Draft, error) {
	t := el.readTable()
	chance := findHeaderIndex(t.headers, []string{"chance", "probability", "level increase"})
	item := findHeaderIndex(t.headers, []string{"item", "material", "block"}, chance)
	if chance < 0 || item < 0 {
		return nil, nil
	}

	drafts := []internal.Draft{}
	var errs []error
	for _, row := range t.rows {
		items := el.cellItems(pickCell(row, item))
		if len(items) == 0 {
			errs = append(errs, rowError(row, "no compostable item"))
			continue
		}
		p, ok := util.ParseChance(el.cellText(row, chance))
		if !ok || p == 0 {
			errs = append(errs, rowError(row, "unreadable chance %q", el.cellText(row, chance)))
			continue
		}

		for _, it := range items {
			meta := internal.Metadata{
				Compost: &internal.CompostInfo{SuccessChance: p},
				Extra:   map[string]any{"implicit_output": true},
			}
			drafts = append(drafts, el.draft(internal.Composting,
				[]internal.Slot{internal.Single(it)}, []internal.Slot{internal.Single(CompostLevel)}, meta))
		}
	}
	return drafts, errors.Join(errs...)
}
