// Package dom gives read-only, handle-based access to a parsed wiki page.
//
// Element nodes are numbered in document order when the page is loaded.
// Parent, sibling and child relations are kept as handle arrays, so tree
// walks never touch the underlying nodes and the document is never mutated.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"recipegraph/internal/util"
)

// Handle identifies one element of a Document.
type Handle int

const None Handle = -1

type Document struct {
	Title string

	doc      *goquery.Document
	nodes    []*html.Node
	index    map[*html.Node]Handle
	parent   []Handle
	prev     []Handle
	children [][]Handle
}

func Parse(title string, r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", title, err)
	}
	return FromGoquery(title, doc), nil
}

func ParseString(title, markup string) (*Document, error) {
	return Parse(title, strings.NewReader(markup))
}

func FromGoquery(title string, doc *goquery.Document) *Document {
	d := &Document{Title: title, doc: doc, index: map[*html.Node]Handle{}}
	for _, root := range doc.Nodes {
		d.walk(root, None)
	}
	return d
}

func (d *Document) walk(n *html.Node, parent Handle) {
	owner := parent
	if n.Type == html.ElementNode {
		h := Handle(len(d.nodes))
		d.nodes = append(d.nodes, n)
		d.index[n] = h
		d.parent = append(d.parent, parent)
		d.children = append(d.children, nil)
		prev := None
		if parent != None && len(d.children[parent]) > 0 {
			prev = d.children[parent][len(d.children[parent])-1]
		}
		d.prev = append(d.prev, prev)
		if parent != None {
			d.children[parent] = append(d.children[parent], h)
		}
		owner = h
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.walk(c, owner)
	}
}

func (d *Document) Len() int {
	return len(d.nodes)
}

func (d *Document) valid(h Handle) bool {
	return h >= 0 && int(h) < len(d.nodes)
}

// Find returns the handles of every element matching selector, in document order.
func (d *Document) Find(selector string) []Handle {
	return d.handles(d.doc.Find(selector))
}

// FindIn returns the descendants of h matching selector, in document order.
func (d *Document) FindIn(h Handle, selector string) []Handle {
	if !d.valid(h) {
		return nil
	}
	return d.handles(d.Selection(h).Find(selector))
}

// Selection wraps a single element for goquery traversal.
func (d *Document) Selection(h Handle) *goquery.Selection {
	if !d.valid(h) {
		return d.doc.Selection.Slice(0, 0)
	}
	return d.doc.Selection.FindNodes(d.nodes[h])
}

func (d *Document) handles(sel *goquery.Selection) []Handle {
	out := make([]Handle, 0, sel.Length())
	for _, n := range sel.Nodes {
		if h, ok := d.index[n]; ok {
			out = append(out, h)
		}
	}
	return out
}

func (d *Document) Tag(h Handle) string {
	if !d.valid(h) {
		return ""
	}
	return d.nodes[h].Data
}

// Text is the element's text content with whitespace collapsed.
func (d *Document) Text(h Handle) string {
	if !d.valid(h) {
		return ""
	}
	return util.NormalizeSpaces(d.Selection(h).Text())
}

func (d *Document) Attr(h Handle, name string) (string, bool) {
	if !d.valid(h) {
		return "", false
	}
	for _, a := range d.nodes[h].Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (d *Document) HasClass(h Handle, class string) bool {
	value, ok := d.Attr(h, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(value) {
		if c == class {
			return true
		}
	}
	return false
}

func (d *Document) Parent(h Handle) Handle {
	if !d.valid(h) {
		return None
	}
	return d.parent[h]
}

// Ancestors returns the chain of enclosing elements, nearest first.
func (d *Document) Ancestors(h Handle) []Handle {
	out := []Handle{}
	for p := d.Parent(h); p != None; p = d.parent[p] {
		out = append(out, p)
	}
	return out
}

// PrevSiblings returns the element siblings before h, nearest first.
func (d *Document) PrevSiblings(h Handle) []Handle {
	out := []Handle{}
	if !d.valid(h) {
		return out
	}
	for s := d.prev[h]; s != None; s = d.prev[s] {
		out = append(out, s)
	}
	return out
}

func (d *Document) Children(h Handle) []Handle {
	if !d.valid(h) {
		return nil
	}
	return append([]Handle(nil), d.children[h]...)
}
