package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fixitfast/adminseed/internal/admin"
)

// SheetName is the single worksheet holding the credential rows.
const SheetName = "Credentials"

const maxColumnWidth = 50

// WriteXLSX writes the credential sheet as a spreadsheet with auto-sized
// columns.
func WriteXLSX(path string, accounts []admin.Account) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	widths := make([]int, len(admin.ExportColumns))
	writeRow := func(rowNum int, values []string) error {
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
			if len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		return f.SetSheetRow(SheetName, cell, &cells)
	}

	if err := writeRow(1, admin.ExportColumns); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	for i, acc := range accounts {
		if err := writeRow(i+2, acc.ExportRow()); err != nil {
			return fmt.Errorf("write row for %s: %w", acc.Username, err)
		}
	}

	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		w := width + 2
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		if err := f.SetColWidth(SheetName, name, name, float64(w)); err != nil {
			return fmt.Errorf("size column %s: %w", name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write xlsx export: %w", err)
	}
	return nil
}
