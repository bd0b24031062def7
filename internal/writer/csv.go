package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/insightdelivered/assembly-converter/internal/models"
)

// CSVWriter writes constituency records to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes records to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, a *models.Assembly) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, a)
}

// Write writes records in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, a *models.Assembly) error {
	writer := csv.NewWriter(out)

	// Write metadata as comments (CSV header rows)
	if w.IncludeHeader {
		if a.Page != "" {
			writer.Write([]string{"# Page", a.Page})
		}
		if a.Source != "" {
			writer.Write([]string{"# Source", string(a.Source)})
		}
		writer.Write([]string{"# Districts", strconv.Itoa(len(a.Districts))})
		writer.Write([]string{"# Parties", strconv.Itoa(len(a.Parties))})
	}

	header := []string{"No.", "Constituency", "Name", "Party", "Alliance", "Remarks", "District", "Constituency_No"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range a.Records {
		row := []string{
			rec.Sequence,
			rec.Constituency,
			rec.Name,
			rec.Party,
			rec.Alliance,
			rec.Remarks,
			rec.District,
			formatNumber(rec.ConstituencyNo),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatNumber(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
