package extract

import (
	"errors"

	"recipegraph/internal"
)

// TradingExtractor reads villager trade tables. What the villager wants
// becomes the inputs (one slot per wanted item), what it gives the output.
// Profession and level stay in metadata.
type TradingExtractor struct{}

func (TradingExtractor) Type() internal.TransformationType { return internal.Trading }

func (TradingExtractor) Selector() string { return "table.wikitable" }

func (TradingExtractor) Extract(el Element) ([]internal.Draft, error) {
	t := el.readTable()
	wants := findHeaderIndex(t.headers, []string{"wanted", "price", "cost"})
	gives := findHeaderIndex(t.headers, []string{"given", "offer", "sells"}, wants)
	if wants < 0 || gives < 0 {
		return nil, nil
	}
	level := findHeaderIndex(t.headers, []string{"level", "tier"}, wants, gives)
	profession := findHeaderExact(t.headers, []string{"profession", "villager", "villager profession", "trader"}, wants, gives)
	wantQty := findHeaderIndexAfter(t.headers, []string{"quantity", "amount"}, wants)
	if wantQty > gives {
		wantQty = -1
	}
	giveQty := findHeaderIndexAfter(t.headers, []string{"quantity", "amount"}, gives)

	drafts := []internal.Draft{}
	var errs []error
	for _, row := range t.rows {
		wanted := el.cellItems(pickCell(row, wants))
		given := el.cellItems(pickCell(row, gives))
		if len(wanted) == 0 || len(given) == 0 {
			errs = append(errs, rowError(row, "trade without wanted or given item"))
			continue
		}

		info := &internal.TradeInfo{
			Profession:     firstNonEmpty(el.cellText(row, profession), el.Heading, el.Page),
			Level:          firstNonEmpty(el.cellText(row, level), row.group),
			OutputQuantity: el.cellText(row, giveQty),
		}
		if q := el.cellText(row, wantQty); q != "" {
			info.InputQuantities = []string{q}
		}

		inputs := make([]internal.Slot, 0, len(wanted))
		for _, it := range wanted {
			inputs = append(inputs, internal.Single(it))
		}
		outputs := []internal.Slot{{Alternatives: given}}
		correlate(inputs, outputs)
		drafts = append(drafts, el.draft(internal.Trading, inputs, outputs, internal.Metadata{Trade: info}))
	}
	return drafts, errors.Join(errs...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
