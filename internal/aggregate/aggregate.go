// Package aggregate merges item references across the whole corpus. It is a
// single-goroutine reduction and must only see results once every page has
// been processed.
package aggregate

import (
	"encoding/json"
	"strings"

	"recipegraph/internal"
)

type Aggregator struct {
	items []*internal.Item
	byKey map[string]*internal.Item
	seen  map[string]struct{}
	ts    []internal.Transformation

	Duplicates int
}

func New() *Aggregator {
	return &Aggregator{
		byKey: map[string]*internal.Item{},
		seen:  map[string]struct{}{},
	}
}

// Add canonicalizes the item references of ts in order. The first reference
// to a key becomes the canonical item and keeps its name and URL.
//
// URLs are the one exception to first-seen wins: when the first reference
// has no URL, the first later reference that has one fills it in. A URL that
// is already set is never replaced.
//
// A transformation identical to one already added is dropped.
func (a *Aggregator) Add(ts ...internal.Transformation) {
	for _, t := range ts {
		t.Inputs = a.canonical(t.Inputs)
		t.Outputs = a.canonical(t.Outputs)

		sig := signature(t)
		if _, ok := a.seen[sig]; ok {
			a.Duplicates++
			continue
		}
		a.seen[sig] = struct{}{}
		a.ts = append(a.ts, t)
	}
}

// Result returns the canonical items in first-seen order and the
// transformations referencing them.
func (a *Aggregator) Result() ([]*internal.Item, []internal.Transformation) {
	return a.items, a.ts
}

func (a *Aggregator) canonical(refs []*internal.Item) []*internal.Item {
	out := make([]*internal.Item, 0, len(refs))
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		c, ok := a.byKey[ref.Key]
		if !ok {
			item := *ref
			c = &item
			a.byKey[ref.Key] = c
			a.items = append(a.items, c)
		} else if c.URL == "" && ref.URL != "" {
			c.URL = ref.URL
		}
		out = append(out, c)
	}
	return out
}

func signature(t internal.Transformation) string {
	var b strings.Builder
	b.WriteString(string(t.Type))
	b.WriteString("|")
	for _, it := range t.Inputs {
		b.WriteString(it.Key)
		b.WriteString(";")
	}
	b.WriteString("|")
	for _, it := range t.Outputs {
		b.WriteString(it.Key)
		b.WriteString(";")
	}
	b.WriteString("|")
	b.WriteString(t.CategoryString())
	b.WriteString("|")
	meta, _ := json.Marshal(t.Metadata.Map())
	b.Write(meta)
	return b.String()
}
