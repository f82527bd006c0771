package pipeline

import (
	"encoding/json"
	"fmt"

	"recipegraph/internal"
)

// Encode flattens canonical items and transformations into export records.
func Encode(items []*internal.Item, ts []internal.Transformation) ([]internal.ItemRecord, []internal.TransformationRecord, error) {
	itemRecords := make([]internal.ItemRecord, 0, len(items))
	for _, it := range items {
		itemRecords = append(itemRecords, internal.ItemRecord{Name: it.Name, URL: it.URL})
	}

	records := make([]internal.TransformationRecord, 0, len(ts))
	for i, t := range ts {
		inputs, err := encodeRefs(t.Inputs)
		if err != nil {
			return nil, nil, fmt.Errorf("transformation %d inputs: %w", i, err)
		}
		outputs, err := encodeRefs(t.Outputs)
		if err != nil {
			return nil, nil, fmt.Errorf("transformation %d outputs: %w", i, err)
		}
		meta, err := json.Marshal(t.Metadata.Map())
		if err != nil {
			return nil, nil, fmt.Errorf("transformation %d metadata: %w", i, err)
		}
		var category *string
		if t.Category != nil {
			c := *t.Category
			category = &c
		}
		records = append(records, internal.TransformationRecord{
			Type:     string(t.Type),
			Inputs:   inputs,
			Outputs:  outputs,
			Category: category,
			Metadata: string(meta),
		})
	}
	return itemRecords, records, nil
}

func encodeRefs(refs []*internal.Item) (string, error) {
	out := make([]internal.ItemRecord, 0, len(refs))
	for _, it := range refs {
		out = append(out, internal.ItemRecord{Name: it.Name, URL: it.URL})
	}
	blob, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(blob), nil
}
