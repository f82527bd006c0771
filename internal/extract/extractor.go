// Package extract turns recipe widgets and recipe tables of a wiki page into
// transformation drafts, one extractor per transformation type.
//
// Extractors never fail a page. A widget that does not have the expected
// shape yields no drafts and an error wrapping internal.ErrMalformed; a table
// yields the drafts of its good rows together with an error describing the
// rows it skipped. Tables whose headers do not belong to the extractor's type
// are ignored without error.
package extract

import (
	"net/url"
	"strings"

	"recipegraph/internal"
	"recipegraph/internal/dom"
)

// Element is one candidate recipe element together with what the classifier
// found out about it.
type Element struct {
	Doc      *dom.Document
	Handle   dom.Handle
	Page     string
	Category *string
	// Heading is the raw text of the nearest enclosing heading.
	Heading string
	BaseURL string
}

type Extractor interface {
	Type() internal.TransformationType
	Selector() string
	Extract(el Element) ([]internal.Draft, error)
}

type Registry struct {
	byType map[internal.TransformationType]Extractor
}

func NewRegistry(extractors ...Extractor) *Registry {
	r := &Registry{byType: map[internal.TransformationType]Extractor{}}
	for _, e := range extractors {
		r.byType[e.Type()] = e
	}
	return r
}

func Default() *Registry {
	return NewRegistry(
		CraftingExtractor{},
		FurnaceExtractor{Kind: internal.Smelting},
		FurnaceExtractor{Kind: internal.BlastFurnace},
		FurnaceExtractor{Kind: internal.Smoker},
		SmithingExtractor{},
		StonecutterExtractor{},
		GrindstoneExtractor{},
		TradingExtractor{},
		MobDropExtractor{},
		BrewingExtractor{},
		CompostingExtractor{},
	)
}

func (r *Registry) ForType(t internal.TransformationType) (Extractor, bool) {
	e, ok := r.byType[t]
	return e, ok
}

func (el Element) draft(t internal.TransformationType, inputs, outputs []internal.Slot, meta internal.Metadata) internal.Draft {
	return internal.Draft{Type: t, Inputs: inputs, Outputs: outputs, Category: el.Category, Metadata: meta}
}

// item reads one item reference. The link title is preferred, then the image
// alt text, then the tooltip attribute, then plain text.
func (el Element) item(h dom.Handle) (internal.Item, bool) {
	doc := el.Doc
	name, href := "", ""
	if links := doc.FindIn(h, "a[title]"); len(links) > 0 {
		name, _ = doc.Attr(links[0], "title")
		href, _ = doc.Attr(links[0], "href")
	} else if doc.Tag(h) == "a" {
		name, _ = doc.Attr(h, "title")
		href, _ = doc.Attr(h, "href")
	}
	if strings.TrimSpace(name) == "" {
		if imgs := doc.FindIn(h, "img[alt]"); len(imgs) > 0 {
			name, _ = doc.Attr(imgs[0], "alt")
			name = strings.TrimSuffix(strings.TrimSuffix(name, ".png"), ".gif")
		}
	}
	if strings.TrimSpace(name) == "" {
		name, _ = doc.Attr(h, "data-minetip-title")
	}
	if strings.TrimSpace(name) == "" {
		name = doc.Text(h)
	}
	it := internal.NewItem(name, el.resolveURL(href))
	return it, it.Key != ""
}

func (el Element) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	base, err := url.Parse(el.BaseURL)
	if err != nil || el.BaseURL == "" {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

// slot reads the alternatives of one inventory slot. Animated slots list
// several invslot-item children; an empty slot has none.
func (el Element) slot(h dom.Handle) (internal.Slot, bool) {
	var s internal.Slot
	for _, ih := range el.Doc.FindIn(h, ".invslot-item") {
		if it, ok := el.item(ih); ok {
			s.Alternatives = append(s.Alternatives, it)
		}
	}
	return s, len(s.Alternatives) > 0
}

// slotsIn reads every non-empty slot matched by selector inside the element.
func (el Element) slotsIn(selector string) []internal.Slot {
	out := []internal.Slot{}
	for _, h := range el.Doc.FindIn(el.Handle, selector) {
		if s, ok := el.slot(h); ok {
			out = append(out, s)
		}
	}
	return out
}

func (el Element) has(selector string) bool {
	return len(el.Doc.FindIn(el.Handle, selector)) > 0
}
