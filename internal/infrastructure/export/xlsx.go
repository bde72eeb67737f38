// Package export renders tabular report data as XLSX workbooks.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Table is one worksheet. Columns are snake_case keys; the header row shows
// them title-cased.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

var titleCaser = cases.Title(language.English)

// HeaderLabel turns "payment_method" into "Payment Method".
func HeaderLabel(column string) string {
	return titleCaser.String(strings.ReplaceAll(column, "_", " "))
}

// WriteXLSX writes t as a single-sheet workbook to w.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if t.Name != "" && t.Name != sheet {
		if err := f.SetSheetName(sheet, t.Name); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
		sheet = t.Name
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = HeaderLabel(c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if len(t.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
