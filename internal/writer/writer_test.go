package writer

import (
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"csv", FormatCSV, false},
		{"excel", FormatXLSX, false},
		{"sqlite3", FormatSQLite, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q): got %q, %v, want %q", tt.input, got, err, tt.want)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"out.csv":  FormatCSV,
		"out.XLSX": FormatXLSX,
		"out.db":   FormatSQLite,
		"out.json": FormatJSON,
		"out":      FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q): got %q, want %q", path, got, want)
		}
		if f := FormatFromPath(path); f.Extension() == "" {
			t.Errorf("Extension for %q is empty", path)
		}
	}
}

func TestNew(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatCSV, FormatXLSX, FormatSQLite} {
		if _, err := New(f, true); err != nil {
			t.Errorf("New(%q): unexpected error: %v", f, err)
		}
	}
	if _, err := New("pdf", true); err == nil {
		t.Error("expected error for unsupported format")
	}
}
