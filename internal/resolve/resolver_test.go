package resolve

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipegraph/internal"
)

func slotOf(group int, names ...string) internal.Slot {
	s := internal.Slot{Group: group}
	for _, n := range names {
		s.Alternatives = append(s.Alternatives, internal.NewItem(n, ""))
	}
	return s
}

func numbered(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", prefix, i)
	}
	return out
}

func names(items []*internal.Item) []string {
	out := []string{}
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestCorrelatedTruncation(t *testing.T) {
	d := internal.Draft{
		Type:    internal.Crafting,
		Inputs:  []internal.Slot{slotOf(1, numbered("Dye", 16)...), internal.Single(internal.NewItem("Wool", ""))},
		Outputs: []internal.Slot{slotOf(1, numbered("Colored Wool", 15)...)},
	}
	res := New(4096).Resolve(d)

	require.Len(t, res.Transformations, 15)
	require.Len(t, res.Warnings, 1)
	for k, tr := range res.Transformations {
		assert.Equal(t, fmt.Sprintf("Dye %d", k), tr.Inputs[0].Name)
		assert.Equal(t, "Wool", tr.Inputs[1].Name)
		assert.Equal(t, fmt.Sprintf("Colored Wool %d", k), tr.Outputs[0].Name)
		assert.True(t, tr.Metadata.HasAlternatives)
	}
}

func TestUnequalGroupWarningsFollowSlotOrder(t *testing.T) {
	d := internal.Draft{
		Type: internal.Crafting,
		Inputs: []internal.Slot{
			slotOf(3, "A", "B", "C"),
			slotOf(1, "D", "E"),
			slotOf(2, "F", "G", "H"),
			slotOf(3, "I", "J"),
			slotOf(1, "K", "L", "M"),
			slotOf(2, "N", "O"),
		},
		Outputs: []internal.Slot{internal.Single(internal.NewItem("Out", ""))},
	}

	for i := 0; i < 20; i++ {
		res := New(4096).Resolve(d)
		require.Len(t, res.Transformations, 8)
		require.Len(t, res.Warnings, 3)
		assert.Contains(t, res.Warnings[0], "group 3")
		assert.Contains(t, res.Warnings[1], "group 1")
		assert.Contains(t, res.Warnings[2], "group 2")
	}
}

func TestCorrelatedEqualLengths(t *testing.T) {
	category := "dyed_wool"
	d := internal.Draft{
		Type:     internal.Crafting,
		Inputs:   []internal.Slot{slotOf(1, "Red Dye", "Blue Dye", "Green Dye")},
		Outputs:  []internal.Slot{slotOf(1, "Red Wool", "Blue Wool", "Green Wool")},
		Category: &category,
	}
	res := New(4096).Resolve(d)

	require.Len(t, res.Transformations, 3)
	assert.Empty(t, res.Warnings)
	for _, tr := range res.Transformations {
		assert.True(t, tr.Metadata.HasAlternatives)
		assert.Equal(t, "dyed_wool", tr.CategoryString())
	}
}

func TestIndependentCartesianOrder(t *testing.T) {
	d := internal.Draft{
		Type:    internal.Crafting,
		Inputs:  []internal.Slot{slotOf(0, "A1", "A2"), slotOf(0, "B1", "B2", "B3")},
		Outputs: []internal.Slot{internal.Single(internal.NewItem("Out", ""))},
	}
	res := New(4096).Resolve(d)

	require.Len(t, res.Transformations, 6)
	got := []string{}
	for _, tr := range res.Transformations {
		got = append(got, fmt.Sprint(names(tr.Inputs)))
	}
	assert.Equal(t, []string{
		"[A1 B1]", "[A1 B2]", "[A1 B3]",
		"[A2 B1]", "[A2 B2]", "[A2 B3]",
	}, got)
}

func TestExpansionCeiling(t *testing.T) {
	d := internal.Draft{
		Type:    internal.Crafting,
		Inputs:  []internal.Slot{slotOf(0, numbered("A", 100)...), slotOf(0, numbered("B", 100)...), slotOf(0, numbered("C", 100)...)},
		Outputs: []internal.Slot{internal.Single(internal.NewItem("Out", ""))},
	}
	res := New(50).Resolve(d)

	assert.Len(t, res.Transformations, 50)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "truncated")
}

func TestSingleValuedPassThrough(t *testing.T) {
	d := internal.Draft{
		Type:    internal.Smelting,
		Inputs:  []internal.Slot{internal.Single(internal.NewItem("Iron Ore", "/w/Iron_Ore"))},
		Outputs: []internal.Slot{internal.Single(internal.NewItem("Iron Ingot", ""))},
	}
	res := New(10).Resolve(d)

	require.Len(t, res.Transformations, 1)
	tr := res.Transformations[0]
	assert.False(t, tr.Metadata.HasAlternatives)
	assert.Equal(t, "/w/Iron_Ore", tr.Inputs[0].URL)
	assert.Nil(t, tr.Category)
}

func TestMetadataIsCopiedPerTransformation(t *testing.T) {
	d := internal.Draft{
		Type:     internal.MobDrop,
		Outputs:  []internal.Slot{slotOf(0, "Bone", "Arrow")},
		Metadata: internal.Metadata{Drop: &internal.DropInfo{Mob: "Skeleton"}, Extra: map[string]any{"page": "Skeleton"}},
	}
	res := New(10).Resolve(d)

	require.Len(t, res.Transformations, 2)
	res.Transformations[0].Metadata.Drop.Mob = "Stray"
	res.Transformations[0].Metadata.Extra["page"] = "Stray"
	assert.Equal(t, "Skeleton", res.Transformations[1].Metadata.Drop.Mob)
	assert.Equal(t, "Skeleton", res.Transformations[1].Metadata.Extra["page"])
	assert.Equal(t, "Skeleton", d.Metadata.Drop.Mob)
	assert.Empty(t, res.Transformations[1].Inputs)
}

func TestDeterministic(t *testing.T) {
	d := internal.Draft{
		Type:    internal.Crafting,
		Inputs:  []internal.Slot{slotOf(1, "a", "b", "c"), slotOf(0, "x", "y"), slotOf(1, "d", "e", "f")},
		Outputs: []internal.Slot{internal.Single(internal.NewItem("Out", ""))},
	}
	r := New(100)
	first := r.Resolve(d)
	second := r.Resolve(d)

	require.Len(t, first.Transformations, 6)
	for i := range first.Transformations {
		assert.Equal(t, names(first.Transformations[i].Inputs), names(second.Transformations[i].Inputs))
	}
	assert.Equal(t, []string{"a", "x", "d"}, names(first.Transformations[0].Inputs))
	assert.Equal(t, []string{"a", "y", "d"}, names(first.Transformations[1].Inputs))
	assert.Equal(t, []string{"b", "x", "e"}, names(first.Transformations[2].Inputs))
}

func TestInvalidDraftsWarn(t *testing.T) {
	res := New(10).Resolve(internal.Draft{
		Type:    internal.Crafting,
		Inputs:  []internal.Slot{{}},
		Outputs: []internal.Slot{internal.Single(internal.NewItem("Out", ""))},
	})
	assert.Empty(t, res.Transformations)
	assert.Len(t, res.Warnings, 1)

	res = New(10).Resolve(internal.Draft{
		Type:    internal.Trading,
		Inputs:  []internal.Slot{internal.Single(internal.NewItem("Emerald", ""))},
		Outputs: []internal.Slot{internal.Single(internal.NewItem("Bread", ""))},
	})
	assert.Empty(t, res.Transformations)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "profession")
}
