package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/assembly-converter/internal/models"
	"github.com/insightdelivered/assembly-converter/internal/parser"
)

// ReadFile loads raw rows from a saved API response.
func ReadFile(path string) ([]models.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	return ReadRows(f)
}

// ReadRows decodes either a wikitable2json tables array (the first table is
// used) or a bare array of row objects.
func ReadRows(r io.Reader) ([]models.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	keyed, err := DecodeKeyed(data)
	if err != nil {
		return nil, err
	}
	return parser.DecodeRows(keyed)
}

// DecodeKeyed unwraps the accepted JSON shapes into keyed row objects.
func DecodeKeyed(data []byte) ([]map[string]string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("expected a JSON array")
	}

	var probe []json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if len(probe) == 0 {
		return []map[string]string{}, nil
	}

	first := bytes.TrimSpace(probe[0])
	if len(first) > 0 && first[0] == '[' {
		var tables [][]map[string]string
		if err := json.Unmarshal(data, &tables); err != nil {
			return nil, fmt.Errorf("invalid table array: %w", err)
		}
		return tables[0], nil
	}

	var rows []map[string]string
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("invalid row array: %w", err)
	}
	return rows, nil
}
