package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/assembly-converter/internal/models"
)

// JSONWriter writes the dataset as {"constituencies", "districts", "parties"}.
type JSONWriter struct {
	// Indent defaults to two spaces; set Compact for a single line.
	Indent  string
	Compact bool
}

// WriteToFile writes the dataset to a JSON file at the given path.
func (w *JSONWriter) WriteToFile(path string, a *models.Assembly) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, a)
}

// Write encodes the dataset to out.
func (w *JSONWriter) Write(out io.Writer, a *models.Assembly) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if !w.Compact {
		indent := w.Indent
		if indent == "" {
			indent = "  "
		}
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
