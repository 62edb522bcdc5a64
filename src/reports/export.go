package reports

import (
	"fmt"
	"io"

	excelize "github.com/xuri/excelize/v2"
)

const exportSheet = "Report"

// WriteXLSX renders res as a single-sheet workbook with a header row.
func WriteXLSX(w io.Writer, res *Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(res.Columns))
	for i, c := range res.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range res.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if len(res.Columns) > 0 {
		last, err := excelize.ColumnNumberToName(len(res.Columns))
		if err != nil {
			return err
		}
		if err := f.AutoFilter(exportSheet, "A1:"+last+"1", nil); err != nil {
			return fmt.Errorf("adding filter: %w", err)
		}
	}

	return f.Write(w)
}
