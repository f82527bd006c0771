// Package resolve expands drafts with multi-valued slots into concrete
// transformations.
package resolve

import (
	"fmt"

	"recipegraph/internal"
)

type Result struct {
	Transformations []internal.Transformation
	Warnings        []string
}

type Resolver struct {
	maxExpansions int
}

// New returns a resolver that emits at most maxExpansions transformations
// per draft.
func New(maxExpansions int) *Resolver {
	if maxExpansions < 1 {
		maxExpansions = 1
	}
	return &Resolver{maxExpansions: maxExpansions}
}

type slotRef struct {
	output bool
	index  int
}

// axis is one dimension of the expansion: a correlation group whose slots
// advance together, or a single independent multi-valued slot.
type axis struct {
	slots  []slotRef
	length int
	// group is the correlation group of the axis, 0 for an independent slot.
	group int
}

// Resolve turns one draft into its concrete transformations. Correlated
// slots are zipped by position, independent multi-valued slots are combined
// freely, and single-valued slots pass through. The first axis is the
// outermost loop, so output order follows source order.
func (r *Resolver) Resolve(d internal.Draft) Result {
	res := Result{}
	for _, s := range append(append([]internal.Slot{}, d.Inputs...), d.Outputs...) {
		if len(s.Alternatives) == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: empty slot, draft skipped", d.Type))
			return res
		}
	}

	axes, warnings := buildAxes(d)
	res.Warnings = append(res.Warnings, warnings...)

	total := 1
	truncated := false
	for _, a := range axes {
		if total > r.maxExpansions/a.length {
			truncated = true
			total = r.maxExpansions
			break
		}
		total *= a.length
	}
	if truncated {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%s: expansion exceeds %d combinations, truncated", d.Type, r.maxExpansions))
	}

	chosen := map[slotRef]int{}
	for ai, a := range axes {
		for _, ref := range a.slots {
			chosen[ref] = ai
		}
	}

	hasAlternatives := d.HasAlternatives()
	idx := make([]int, len(axes))
	for n := 0; n < total; n++ {
		pick := func(slots []internal.Slot, output bool) []*internal.Item {
			out := make([]*internal.Item, 0, len(slots))
			for i, s := range slots {
				k := 0
				if ai, ok := chosen[slotRef{output: output, index: i}]; ok {
					k = idx[ai]
				}
				it := s.Alternatives[k]
				out = append(out, &it)
			}
			return out
		}

		meta := d.Metadata.Clone()
		meta.HasAlternatives = hasAlternatives
		tr, err := internal.NewTransformation(d.Type, pick(d.Inputs, false), pick(d.Outputs, true), d.Category, meta)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("invalid transformation: %v", err))
			return res
		}
		res.Transformations = append(res.Transformations, tr)

		for ai := len(idx) - 1; ai >= 0; ai-- {
			idx[ai]++
			if idx[ai] < axes[ai].length {
				break
			}
			idx[ai] = 0
		}
	}
	return res
}

func buildAxes(d internal.Draft) ([]axis, []string) {
	var axes []axis
	var warnings []string
	byGroup := map[int]int{}
	longest := map[int]int{}

	visit := func(slots []internal.Slot, output bool) {
		for i, s := range slots {
			ref := slotRef{output: output, index: i}
			n := len(s.Alternatives)
			switch {
			case s.Group > 0:
				ai, ok := byGroup[s.Group]
				if !ok {
					byGroup[s.Group] = len(axes)
					longest[s.Group] = n
					axes = append(axes, axis{slots: []slotRef{ref}, length: n, group: s.Group})
					continue
				}
				axes[ai].slots = append(axes[ai].slots, ref)
				axes[ai].length = min(axes[ai].length, n)
				longest[s.Group] = max(longest[s.Group], n)
			case n > 1:
				axes = append(axes, axis{slots: []slotRef{ref}, length: n})
			}
		}
	}
	visit(d.Inputs, false)
	visit(d.Outputs, true)

	for _, a := range axes {
		if a.group > 0 && longest[a.group] != a.length {
			warnings = append(warnings, fmt.Sprintf("%s: correlated group %d slots differ in length (%d vs %d), using %d",
				d.Type, a.group, a.length, longest[a.group], a.length))
		}
	}
	return axes, warnings
}
