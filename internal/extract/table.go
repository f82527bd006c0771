package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"recipegraph/internal"
	"recipegraph/internal/dom"
)

var reLetter = regexp.MustCompile(`\pL`)

type tableRow struct {
	index int
	cells []dom.Handle
	// group is the text of the last full-width header row above this row,
	// e.g. a villager level.
	group string
}

type table struct {
	headers []string
	rows    []tableRow
}

type span struct {
	cell dom.Handle
	left int
}

// readTable lays the rows of a wiki table out on a grid, repeating rowspan
// and colspan cells into every position they cover. The first row is the
// header when it holds th cells.
func (el Element) readTable() table {
	doc := el.Doc
	var grid [][]dom.Handle
	var headerOnly []bool
	pending := map[int]span{}

	for _, tr := range doc.FindIn(el.Handle, "tr") {
		if el.owningTable(tr) != el.Handle {
			continue
		}
		cells := []dom.Handle{}
		allHeader := true
		for _, c := range doc.Children(tr) {
			switch doc.Tag(c) {
			case "th":
				cells = append(cells, c)
			case "td":
				cells = append(cells, c)
				allHeader = false
			}
		}

		row := []dom.Handle{}
		col, ci := 0, 0
		for {
			if p, ok := pending[col]; ok {
				row = append(row, p.cell)
				if p.left--; p.left == 0 {
					delete(pending, col)
				} else {
					pending[col] = p
				}
				col++
				continue
			}
			if ci >= len(cells) {
				if pendingAfter(pending, col) {
					row = append(row, dom.None)
					col++
					continue
				}
				break
			}
			c := cells[ci]
			ci++
			rs, cs := spanAttr(doc, c, "rowspan"), spanAttr(doc, c, "colspan")
			for k := 0; k < cs; k++ {
				row = append(row, c)
				if rs > 1 {
					pending[col] = span{cell: c, left: rs - 1}
				}
				col++
			}
		}
		grid = append(grid, row)
		headerOnly = append(headerOnly, allHeader && len(cells) > 0)
	}

	t := table{}
	if len(grid) == 0 || !headerOnly[0] {
		return t
	}
	for _, c := range grid[0] {
		t.headers = append(t.headers, strings.ToLower(doc.Text(c)))
	}

	group := ""
	for i := 1; i < len(grid); i++ {
		if headerOnly[i] {
			if distinct(grid[i]) == 1 {
				group = doc.Text(grid[i][0])
			}
			continue
		}
		t.rows = append(t.rows, tableRow{index: i, cells: grid[i], group: group})
	}
	return t
}

func (el Element) owningTable(h dom.Handle) dom.Handle {
	for _, a := range el.Doc.Ancestors(h) {
		if el.Doc.Tag(a) == "table" {
			return a
		}
	}
	return dom.None
}

func pendingAfter(pending map[int]span, col int) bool {
	for c := range pending {
		if c > col {
			return true
		}
	}
	return false
}

func spanAttr(doc *dom.Document, h dom.Handle, name string) int {
	v, ok := doc.Attr(h, name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	if n > 64 {
		return 64
	}
	return n
}

func distinct(cells []dom.Handle) int {
	seen := map[dom.Handle]struct{}{}
	for _, c := range cells {
		seen[c] = struct{}{}
	}
	return len(seen)
}

// findHeaderIndex returns the first column whose header contains one of the
// probes, skipping the listed columns.
func findHeaderIndex(headers []string, probes []string, skip ...int) int {
	for i, h := range headers {
		if contains(skip, i) {
			continue
		}
		for _, probe := range probes {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

// findHeaderExact returns the first column whose whole header is one of the
// names, skipping the listed columns.
func findHeaderExact(headers []string, names []string, skip ...int) int {
	for i, h := range headers {
		if contains(skip, i) {
			continue
		}
		for _, name := range names {
			if strings.TrimSpace(h) == name {
				return i
			}
		}
	}
	return -1
}

// findHeaderIndexAfter is findHeaderIndex restricted to columns after `after`.
func findHeaderIndexAfter(headers []string, probes []string, after int) int {
	if after < 0 {
		return -1
	}
	for i := after + 1; i < len(headers); i++ {
		for _, probe := range probes {
			if strings.Contains(headers[i], probe) {
				return i
			}
		}
	}
	return -1
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func pickCell(row tableRow, idx int) dom.Handle {
	if idx >= 0 && idx < len(row.cells) {
		return row.cells[idx]
	}
	return dom.None
}

func (el Element) cellText(row tableRow, idx int) string {
	h := pickCell(row, idx)
	if h == dom.None {
		return ""
	}
	return el.Doc.Text(h)
}

// cellItems reads the items shown in a table cell: inventory sprites when
// present, otherwise the item links, otherwise the cell text if it names
// something. Footnote links and file links are ignored.
func (el Element) cellItems(h dom.Handle) []internal.Item {
	if h == dom.None {
		return nil
	}
	doc := el.Doc
	out := []internal.Item{}
	seen := map[string]struct{}{}
	add := func(it internal.Item) {
		if _, ok := seen[it.Key]; ok {
			return
		}
		seen[it.Key] = struct{}{}
		out = append(out, it)
	}

	if sprites := doc.FindIn(h, ".invslot-item"); len(sprites) > 0 {
		for _, s := range sprites {
			if it, ok := el.item(s); ok {
				add(it)
			}
		}
		return out
	}

	for _, a := range doc.FindIn(h, "a[title]") {
		title, _ := doc.Attr(a, "title")
		if strings.Contains(title, ":") || el.inFootnote(a, h) {
			continue
		}
		if it, ok := el.item(a); ok {
			add(it)
		}
	}
	if len(out) > 0 {
		return out
	}

	if text := doc.Text(h); reLetter.MatchString(text) {
		add(internal.NewItem(text, ""))
	}
	return out
}

func (el Element) inFootnote(h, cell dom.Handle) bool {
	for _, a := range el.Doc.Ancestors(h) {
		if a == cell {
			return false
		}
		if el.Doc.Tag(a) == "sup" || el.Doc.HasClass(a, "reference") {
			return true
		}
	}
	return false
}

func rowError(row tableRow, format string, args ...any) error {
	return fmt.Errorf("row %d: %s: %w", row.index, fmt.Sprintf(format, args...), internal.ErrMalformed)
}
