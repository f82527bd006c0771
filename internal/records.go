package internal

import "time"

// ItemRecord is the flat export form of a canonical item.
type ItemRecord struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TransformationRecord is the flat export form of a transformation. Inputs
// and Outputs are JSON arrays of item records, Metadata a JSON object.
type TransformationRecord struct {
	Type     string
	Inputs   string
	Outputs  string
	Category *string
	Metadata string
}

type RunSummary struct {
	ID              string
	StartedAt       time.Time
	FinishedAt      time.Time
	Pages           int
	MissingPages    int
	Elements        int
	Excluded        int
	Malformed       int
	Drafts          int
	Transformations int
	Duplicates      int
	Items           int
	Warnings        int
}
