package internal

import (
	"fmt"
	"maps"
	"strings"
)

const (
	SmithingUpgrade = "upgrade"
	SmithingTrim    = "trim"
	SmithingOther   = "other"

	GrindstoneDisenchant = "disenchant"
	GrindstoneRepair     = "repair"
)

type TradeInfo struct {
	Profession      string
	Level           string
	InputQuantities []string
	OutputQuantity  string
}

type DropInfo struct {
	Mob         string
	Probability *float64
	Condition   string
}

type CompostInfo struct {
	SuccessChance float64
}

type SmithingInfo struct {
	Pattern string
}

type GrindstoneInfo struct {
	Action string
}

// Metadata holds the per-type fields of a transformation. At most the variant
// matching the transformation type is set; Extra carries auxiliary fields.
type Metadata struct {
	HasAlternatives bool
	Trade           *TradeInfo
	Drop            *DropInfo
	Compost         *CompostInfo
	Smithing        *SmithingInfo
	Grindstone      *GrindstoneInfo
	Extra           map[string]any
}

func (m Metadata) Validate(t TransformationType) error {
	set := map[TransformationType]bool{
		Trading:    m.Trade != nil,
		MobDrop:    m.Drop != nil,
		Composting: m.Compost != nil,
		Smithing:   m.Smithing != nil,
		Grindstone: m.Grindstone != nil,
	}
	for variant, present := range set {
		if present && variant != t {
			return fmt.Errorf("%s: metadata carries %s fields", t, variant)
		}
	}

	switch t {
	case Trading:
		if m.Trade == nil || strings.TrimSpace(m.Trade.Profession) == "" {
			return fmt.Errorf("%s: profession is required", t)
		}
	case MobDrop:
		if m.Drop == nil || strings.TrimSpace(m.Drop.Mob) == "" {
			return fmt.Errorf("%s: mob is required", t)
		}
		if p := m.Drop.Probability; p != nil && (*p < 0 || *p > 1) {
			return fmt.Errorf("%s: probability %v out of range", t, *p)
		}
	case Composting:
		if m.Compost == nil || m.Compost.SuccessChance <= 0 || m.Compost.SuccessChance > 1 {
			return fmt.Errorf("%s: success_chance must be in (0, 1]", t)
		}
	case Smithing:
		if m.Smithing == nil {
			return fmt.Errorf("%s: pattern is required", t)
		}
		switch m.Smithing.Pattern {
		case SmithingUpgrade, SmithingTrim, SmithingOther:
		default:
			return fmt.Errorf("%s: unknown pattern %q", t, m.Smithing.Pattern)
		}
	case Grindstone:
		if m.Grindstone == nil {
			return fmt.Errorf("%s: action is required", t)
		}
		if m.Grindstone.Action != GrindstoneDisenchant && m.Grindstone.Action != GrindstoneRepair {
			return fmt.Errorf("%s: unknown action %q", t, m.Grindstone.Action)
		}
	}
	return nil
}

// Clone returns a deep copy, so that every transformation owns its metadata.
func (m Metadata) Clone() Metadata {
	out := m
	if m.Trade != nil {
		trade := *m.Trade
		trade.InputQuantities = append([]string(nil), m.Trade.InputQuantities...)
		out.Trade = &trade
	}
	if m.Drop != nil {
		drop := *m.Drop
		if m.Drop.Probability != nil {
			p := *m.Drop.Probability
			drop.Probability = &p
		}
		out.Drop = &drop
	}
	if m.Compost != nil {
		c := *m.Compost
		out.Compost = &c
	}
	if m.Smithing != nil {
		s := *m.Smithing
		out.Smithing = &s
	}
	if m.Grindstone != nil {
		g := *m.Grindstone
		out.Grindstone = &g
	}
	if m.Extra != nil {
		out.Extra = maps.Clone(m.Extra)
	}
	return out
}

func (m *Metadata) SetExtra(key string, value any) {
	if m.Extra == nil {
		m.Extra = map[string]any{}
	}
	m.Extra[key] = value
}

// Map flattens the metadata into the open string-keyed form used by exports.
func (m Metadata) Map() map[string]any {
	out := map[string]any{}
	for k, v := range m.Extra {
		out[k] = v
	}
	if m.HasAlternatives {
		out["has_alternatives"] = true
	}
	if m.Trade != nil {
		out["profession"] = m.Trade.Profession
		if m.Trade.Level != "" {
			out["level"] = m.Trade.Level
		}
		for i, q := range m.Trade.InputQuantities {
			if q != "" {
				out[fmt.Sprintf("input_%d_quantity", i+1)] = q
			}
		}
		if m.Trade.OutputQuantity != "" {
			out["output_quantity"] = m.Trade.OutputQuantity
		}
	}
	if m.Drop != nil {
		out["mob"] = m.Drop.Mob
		if m.Drop.Probability != nil {
			out["probability"] = *m.Drop.Probability
		}
		if m.Drop.Condition != "" {
			out["condition"] = m.Drop.Condition
		}
	}
	if m.Compost != nil {
		out["success_chance"] = m.Compost.SuccessChance
	}
	if m.Smithing != nil {
		out["pattern"] = m.Smithing.Pattern
	}
	if m.Grindstone != nil {
		out["action"] = m.Grindstone.Action
	}
	return out
}
