package internal

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type TransformationType string

const (
	Crafting     TransformationType = "CRAFTING"
	Smelting     TransformationType = "SMELTING"
	BlastFurnace TransformationType = "BLAST_FURNACE"
	Smoker       TransformationType = "SMOKER"
	Smithing     TransformationType = "SMITHING"
	Stonecutter  TransformationType = "STONECUTTER"
	Trading      TransformationType = "TRADING"
	MobDrop      TransformationType = "MOB_DROP"
	Brewing      TransformationType = "BREWING"
	Composting   TransformationType = "COMPOSTING"
	Grindstone   TransformationType = "GRINDSTONE"
)

var AllTypes = []TransformationType{
	Crafting, Smelting, BlastFurnace, Smoker, Smithing, Stonecutter,
	Trading, MobDrop, Brewing, Composting, Grindstone,
}

// ErrMalformed marks an element whose markup does not have the shape its
// extractor expects. Callers skip the element.
var ErrMalformed = errors.New("malformed recipe element")

func ParseTransformationType(value string) (TransformationType, error) {
	v := TransformationType(strings.ToUpper(strings.TrimSpace(value)))
	for _, t := range AllTypes {
		if t == v {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown transformation type: %q", value)
}

// ItemlessInputs reports whether the type's subject is not an item.
func (t TransformationType) ItemlessInputs() bool {
	return t == MobDrop
}

type Item struct {
	Name string
	Key  string
	URL  string
}

func NewItem(name, url string) Item {
	name = strings.Join(strings.Fields(name), " ")
	return Item{Name: name, Key: ItemKey(name), URL: strings.TrimSpace(url)}
}

// ItemKey is the canonical key two item references must share to be merged.
func ItemKey(name string) string {
	s := norm.NFKC.String(name)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

type Transformation struct {
	Type     TransformationType
	Inputs   []*Item
	Outputs  []*Item
	Category *string
	Metadata Metadata
}

func NewTransformation(t TransformationType, inputs, outputs []*Item, category *string, meta Metadata) (Transformation, error) {
	tr := Transformation{Type: t, Inputs: inputs, Outputs: outputs, Category: category, Metadata: meta}
	if err := tr.Validate(); err != nil {
		return Transformation{}, err
	}
	return tr, nil
}

func (t Transformation) Validate() error {
	if len(t.Outputs) == 0 {
		return fmt.Errorf("%s: no outputs", t.Type)
	}
	if len(t.Inputs) == 0 && !t.Type.ItemlessInputs() {
		return fmt.Errorf("%s: no inputs", t.Type)
	}
	for _, it := range append(append([]*Item{}, t.Inputs...), t.Outputs...) {
		if it == nil || it.Key == "" {
			return fmt.Errorf("%s: empty item reference", t.Type)
		}
	}
	return t.Metadata.Validate(t.Type)
}

func (t Transformation) CategoryString() string {
	if t.Category == nil {
		return ""
	}
	return *t.Category
}
