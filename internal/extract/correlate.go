package extract

import (
	"strings"

	"recipegraph/internal"
)

// correlate marks which multi-valued slots of one recipe vary together.
//
// The wiki animates every slot of a widget on one clock, so a slot list that
// changes with the result (dyed wool, colored glass) describes one recipe per
// frame rather than a free combination. When the result slot is multi-valued,
// every multi-valued slot joins its group. Otherwise slots showing the very
// same alternative sequence (the four plank slots of a crafting table) are
// grouped with each other, and any remaining multi-valued slot is independent.
func correlate(inputs, outputs []internal.Slot) {
	multi := []*internal.Slot{}
	outputMulti := false
	for i := range inputs {
		if inputs[i].MultiValued() {
			multi = append(multi, &inputs[i])
		}
	}
	for i := range outputs {
		if outputs[i].MultiValued() {
			multi = append(multi, &outputs[i])
			outputMulti = true
		}
	}
	if len(multi) == 0 {
		return
	}

	if outputMulti {
		for _, s := range multi {
			s.Group = 1
		}
		return
	}

	counts := map[string]int{}
	for _, s := range multi {
		counts[sequenceKey(*s)]++
	}
	groups := map[string]int{}
	next := 1
	for _, s := range multi {
		key := sequenceKey(*s)
		if counts[key] < 2 {
			continue
		}
		if _, ok := groups[key]; !ok {
			groups[key] = next
			next++
		}
		s.Group = groups[key]
	}
}

func sequenceKey(s internal.Slot) string {
	keys := make([]string, 0, len(s.Alternatives))
	for _, it := range s.Alternatives {
		keys = append(keys, it.Key)
	}
	return strings.Join(keys, "\x1f")
}
