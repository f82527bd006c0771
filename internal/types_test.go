package internal

import "testing"

func item(name string) *Item {
	it := NewItem(name, "")
	return &it
}

func TestItemKey(t *testing.T) {
	cases := map[string]string{
		"  Oak   Planks ":           "oak planks",
		"OAK PLANKS":                "oak planks",
		"\uff2f\uff41\uff4b Planks": "oak planks",
		"Oak\u00a0Planks":           "oak planks",
	}
	for in, want := range cases {
		if got := ItemKey(in); got != want {
			t.Fatalf("ItemKey(%q)=%q want %q", in, got, want)
		}
	}
	if it := NewItem("  Oak   Planks ", " /w/Oak_Planks "); it.Name != "Oak Planks" || it.URL != "/w/Oak_Planks" {
		t.Fatalf("item=%+v", it)
	}
}

func TestParseTransformationType(t *testing.T) {
	got, err := ParseTransformationType(" blast_furnace ")
	if err != nil || got != BlastFurnace {
		t.Fatalf("got=%q err=%v", got, err)
	}
	if _, err := ParseTransformationType("FISHING"); err == nil {
		t.Fatal("expected error")
	}
}

func TestTransformationValidate(t *testing.T) {
	if _, err := NewTransformation(Crafting, []*Item{item("Stick")}, nil, nil, Metadata{}); err == nil {
		t.Fatal("outputs must be non-empty")
	}
	if _, err := NewTransformation(Crafting, nil, []*Item{item("Stick")}, nil, Metadata{}); err == nil {
		t.Fatal("crafting inputs must be non-empty")
	}
	if _, err := NewTransformation(Crafting, []*Item{item("  ")}, []*Item{item("Stick")}, nil, Metadata{}); err == nil {
		t.Fatal("empty item reference accepted")
	}
	drop := Metadata{Drop: &DropInfo{Mob: "Zombie"}}
	if _, err := NewTransformation(MobDrop, nil, []*Item{item("Rotten Flesh")}, nil, drop); err != nil {
		t.Fatalf("mob drop without inputs: %v", err)
	}
}

func TestMetadataValidate(t *testing.T) {
	bad := -0.5
	cases := []struct {
		name string
		t    TransformationType
		meta Metadata
		ok   bool
	}{
		{"trade ok", Trading, Metadata{Trade: &TradeInfo{Profession: "Farmer"}}, true},
		{"trade missing profession", Trading, Metadata{Trade: &TradeInfo{}}, false},
		{"variant mismatch", Crafting, Metadata{Compost: &CompostInfo{SuccessChance: 0.3}}, false},
		{"drop bad probability", MobDrop, Metadata{Drop: &DropInfo{Mob: "Zombie", Probability: &bad}}, false},
		{"compost zero", Composting, Metadata{Compost: &CompostInfo{}}, false},
		{"compost ok", Composting, Metadata{Compost: &CompostInfo{SuccessChance: 1}}, true},
		{"smithing unknown", Smithing, Metadata{Smithing: &SmithingInfo{Pattern: "polish"}}, false},
		{"grindstone ok", Grindstone, Metadata{Grindstone: &GrindstoneInfo{Action: GrindstoneRepair}}, true},
		{"grindstone missing", Grindstone, Metadata{}, false},
		{"plain", Smelting, Metadata{Extra: map[string]any{"note": "x"}}, true},
	}
	for _, tc := range cases {
		err := tc.meta.Validate(tc.t)
		if (err == nil) != tc.ok {
			t.Fatalf("%s: err=%v", tc.name, err)
		}
	}
}

func TestMetadataMapAndClone(t *testing.T) {
	p := 0.025
	m := Metadata{
		HasAlternatives: true,
		Drop:            &DropInfo{Mob: "Zombie", Probability: &p, Condition: "Killed by player"},
		Extra:           map[string]any{"chance_text": "2.5%"},
	}
	flat := m.Map()
	if flat["has_alternatives"] != true || flat["mob"] != "Zombie" || flat["probability"] != 0.025 || flat["condition"] != "Killed by player" {
		t.Fatalf("map=%v", flat)
	}

	c := m.Clone()
	*c.Drop.Probability = 1
	c.Extra["chance_text"] = "all"
	if *m.Drop.Probability != 0.025 || m.Extra["chance_text"] != "2.5%" {
		t.Fatal("clone shares state")
	}

	trade := Metadata{Trade: &TradeInfo{Profession: "Farmer", InputQuantities: []string{"20", ""}, OutputQuantity: "1"}}.Map()
	if trade["input_1_quantity"] != "20" || trade["output_quantity"] != "1" {
		t.Fatalf("trade=%v", trade)
	}
	if _, ok := trade["input_2_quantity"]; ok {
		t.Fatal("empty quantity exported")
	}
}

func TestSlotHelpers(t *testing.T) {
	s := Slot{Alternatives: []Item{NewItem("Red Dye", ""), NewItem("Blue Dye", "")}}
	if !s.MultiValued() || len(s.Names()) != 2 {
		t.Fatalf("slot=%+v", s)
	}
	d := Draft{Inputs: []Slot{Single(NewItem("Wool", ""))}, Outputs: []Slot{s}}
	if !d.HasAlternatives() {
		t.Fatal("expected alternatives")
	}
}
