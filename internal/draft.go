package internal

// Slot is one ingredient or result position. A slot with several
// alternatives is multi-valued; Group > 0 ties it to the other slots of the
// same group, which must be selected in lockstep.
type Slot struct {
	Alternatives []Item
	Group        int
}

func Single(item Item) Slot {
	return Slot{Alternatives: []Item{item}}
}

func (s Slot) MultiValued() bool {
	return len(s.Alternatives) > 1
}

func (s Slot) Names() []string {
	out := make([]string, 0, len(s.Alternatives))
	for _, it := range s.Alternatives {
		out = append(out, it.Name)
	}
	return out
}

// Draft is a transformation whose slots may still be multi-valued.
type Draft struct {
	Type     TransformationType
	Inputs   []Slot
	Outputs  []Slot
	Category *string
	Metadata Metadata
}

func (d Draft) HasAlternatives() bool {
	for _, s := range d.Inputs {
		if s.MultiValued() {
			return true
		}
	}
	for _, s := range d.Outputs {
		if s.MultiValued() {
			return true
		}
	}
	return false
}
