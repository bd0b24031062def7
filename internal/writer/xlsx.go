package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/assembly-converter/internal/models"
)

// Sheet names used by XLSXWriter.
const (
	SheetConstituencies = "Constituencies"
	SheetDistricts      = "Districts"
	SheetParties        = "Parties"
)

// XLSXWriter writes the records, districts and parties to separate sheets.
type XLSXWriter struct{}

// WriteToFile writes the workbook to the given path.
func (w *XLSXWriter) WriteToFile(path string, a *models.Assembly) error {
	f, err := w.build(a)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

// Write writes the workbook to out.
func (w *XLSXWriter) Write(out io.Writer, a *models.Assembly) error {
	f, err := w.build(a)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(a *models.Assembly) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetConstituencies); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	headers := []interface{}{"No.", "Constituency", "Name", "Party", "Alliance", "Remarks", "District", "Constituency_No"}
	rows := make([][]interface{}, 0, len(a.Records))
	for _, rec := range a.Records {
		var no interface{}
		if rec.ConstituencyNo != nil {
			no = *rec.ConstituencyNo
		}
		rows = append(rows, []interface{}{
			rec.Sequence, rec.Constituency, rec.Name, rec.Party,
			rec.Alliance, rec.Remarks, rec.District, no,
		})
	}
	if err := writeSheet(f, SheetConstituencies, headers, rows, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	for _, list := range []struct {
		sheet  string
		header string
		values []string
	}{
		{SheetDistricts, "District", a.Districts},
		{SheetParties, "Party", a.Parties},
	} {
		if _, err := f.NewSheet(list.sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet: %w", err)
		}
		rows := make([][]interface{}, 0, len(list.values))
		for _, v := range list.values {
			rows = append(rows, []interface{}{v})
		}
		if err := writeSheet(f, list.sheet, []interface{}{list.header}, rows, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headers []interface{}, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, 20); err != nil {
			return fmt.Errorf("failed to size %s column %s: %w", sheet, col, err)
		}
	}
	return nil
}
