package parser

import (
	"errors"
	"testing"

	"github.com/insightdelivered/assembly-converter/internal/models"
)

func fullRow(seq string) map[string]string {
	return map[string]string{
		"No.":          seq,
		"Constituency": "Mairang",
		"Name":         "A",
		"Party":        "NPP",
		"Alliance":     "NDA",
		"Remarks":      "",
	}
}

func TestDecodeRows(t *testing.T) {
	in := []map[string]string{fullRow("1"), fullRow("2")}
	in[1]["Extra"] = "ignored"

	rows, err := DecodeRows(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	want := models.RawRow{Sequence: "2", Constituency: "Mairang", Name: "A", Party: "NPP", Alliance: "NDA"}
	if rows[1] != want {
		t.Errorf("rows[1]: got %+v, want %+v", rows[1], want)
	}
}

func TestDecodeRows_Malformed(t *testing.T) {
	bad := fullRow("2")
	delete(bad, "Party")
	delete(bad, "Remarks")

	_, err := DecodeRows([]map[string]string{fullRow("1"), bad})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrMalformedRow) {
		t.Errorf("expected ErrMalformedRow, got %v", err)
	}

	var mre *MalformedRowError
	if !errors.As(err, &mre) {
		t.Fatalf("expected *MalformedRowError, got %T", err)
	}
	if mre.Index != 1 {
		t.Errorf("Index: got %d, want 1", mre.Index)
	}
	if len(mre.Missing) != 2 || mre.Missing[0] != "Party" || mre.Missing[1] != "Remarks" {
		t.Errorf("Missing: got %v, want [Party Remarks]", mre.Missing)
	}
}

func TestDecodeRows_Empty(t *testing.T) {
	rows, err := DecodeRows(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows: got %d, want 0", len(rows))
	}
}
