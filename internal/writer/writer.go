package writer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/assembly-converter/internal/models"
)

// Format is an output format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// FileWriter writes a dataset to a path.
type FileWriter interface {
	WriteToFile(path string, a *models.Assembly) error
}

// StreamWriter writes a dataset to an io.Writer.
type StreamWriter interface {
	FileWriter
	Write(out io.Writer, a *models.Assembly) error
}

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unknown format %q. Supported: json, csv, xlsx, sqlite", s)
	}
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".xlsx":
		return FormatXLSX
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatJSON
	}
}

// Extension returns the file extension written for f.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatXLSX:
		return ".xlsx"
	case FormatSQLite:
		return ".db"
	default:
		return ".json"
	}
}

// New returns the writer for the given format.
func New(f Format, includeHeader bool) (FileWriter, error) {
	switch f {
	case FormatJSON:
		return &JSONWriter{}, nil
	case FormatCSV:
		return &CSVWriter{IncludeHeader: includeHeader}, nil
	case FormatXLSX:
		return &XLSXWriter{}, nil
	case FormatSQLite:
		return &SQLiteWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %q", f)
	}
}
