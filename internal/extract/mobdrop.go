package extract

import (
	"errors"

	"recipegraph/internal"
	"recipegraph/internal/util"
)

// MobDropExtractor reads drop tables. The mob is not an item: it is kept in
// metadata and the transformation has no inputs. Each dropped item is its own
// transformation.
type MobDropExtractor struct{}

func (MobDropExtractor) Type() internal.TransformationType { return internal.MobDrop }

func (MobDropExtractor) Selector() string { return "table.wikitable" }

func (MobDropExtractor) Extract(el Element) ([]internal.Draft, error) {
	t := el.readTable()
	chance := findHeaderIndex(t.headers, []string{"chance", "probability", "rate"})
	item := findHeaderIndex(t.headers, []string{"item", "drop"}, chance)
	if item < 0 {
		return nil, nil
	}
	mob := findHeaderIndex(t.headers, []string{"mob", "source", "entity"}, chance, item)
	condition := findHeaderIndex(t.headers, []string{"condition", "requirement", "when"}, chance, item, mob)

	drafts := []internal.Draft{}
	var errs []error
	for _, row := range t.rows {
		dropped := el.cellItems(pickCell(row, item))
		if len(dropped) == 0 {
			errs = append(errs, rowError(row, "no dropped item"))
			continue
		}

		mobName := el.Page
		if mobs := el.cellItems(pickCell(row, mob)); len(mobs) > 0 {
			mobName = mobs[0].Name
		}
		info := internal.DropInfo{Mob: mobName, Condition: el.cellText(row, condition)}
		var extra map[string]any
		if text := el.cellText(row, chance); text != "" {
			if p, ok := util.ParseChance(text); ok {
				info.Probability = util.FloatPtr(p)
			} else {
				extra = map[string]any{"chance_text": text}
			}
		}

		for _, it := range dropped {
			meta := internal.Metadata{Drop: &info, Extra: extra}
			drafts = append(drafts, el.draft(internal.MobDrop, nil, []internal.Slot{internal.Single(it)}, meta.Clone()))
		}
	}
	return drafts, errors.Join(errs...)
}
