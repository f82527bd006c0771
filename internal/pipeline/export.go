package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"recipegraph/internal"
)

const (
	ItemsSheet           = "items"
	TransformationsSheet = "transformations"
)

// ExportXLSX writes the records as two flat sheets.
func ExportXLSX(items []internal.ItemRecord, ts []internal.TransformationRecord, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ItemsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(TransformationsSheet); err != nil {
		return err
	}

	writeHeader(f, ItemsSheet, []string{"name", "url"})
	for i, it := range items {
		set := rowSetter(f, ItemsSheet, i+2)
		set(1, it.Name)
		set(2, it.URL)
	}

	writeHeader(f, TransformationsSheet, []string{"type", "inputs", "outputs", "category", "metadata"})
	for i, t := range ts {
		set := rowSetter(f, TransformationsSheet, i+2)
		set(1, t.Type)
		set(2, t.Inputs)
		set(3, t.Outputs)
		set(4, derefString(t.Category))
		set(5, t.Metadata)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	set := rowSetter(f, sheet, 1)
	for i, h := range headers {
		set(i+1, h)
	}
}

func rowSetter(f *excelize.File, sheet string, row int) func(col int, value any) {
	return func(col int, value any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, value)
	}
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
