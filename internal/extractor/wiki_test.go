package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/insightdelivered/assembly-converter/internal/models"
)

const articleHTML = `<html><body>
<table class="wikitable"><tr><th>Party</th><th>Seats</th></tr><tr><td>NPP</td><td>26</td></tr></table>
<table class="wikitable sortable">
<tbody>
<tr><th>No.</th><th>Constituency</th><th>Name</th><th>Party</th><th>Alliance</th><th>Remarks</th></tr>
<tr><th colspan="6">West Jaintia Hills district</th></tr>
<tr><td>1</td><td>Nartiang</td><td>Sniawbhalang Dhar<sup class="reference">[1]</sup></td><td>NPP</td><td rowspan="2">MDA</td><td></td></tr>
<tr><td>2</td><td>Jowai</td><td>Wailadmiki
  Shylla</td><td>NPP</td><td></td></tr>
<tr><th colspan="6">Ri Bhoi district</th></tr>
<tr><td>13</td><td>Jirang</td><td>Sosthenes Sohtun</td><td>NPP</td><td>MDA</td><td></td></tr>
</tbody>
</table>
</body></html>`

func TestParseHTMLTable(t *testing.T) {
	keyed, err := ParseHTMLTable(strings.NewReader(articleHTML), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []map[string]string{
		{"No.": "West Jaintia Hills district", "Constituency": "West Jaintia Hills district", "Name": "West Jaintia Hills district", "Party": "West Jaintia Hills district", "Alliance": "West Jaintia Hills district", "Remarks": "West Jaintia Hills district"},
		{"No.": "1", "Constituency": "Nartiang", "Name": "Sniawbhalang Dhar", "Party": "NPP", "Alliance": "MDA", "Remarks": ""},
		{"No.": "2", "Constituency": "Jowai", "Name": "Wailadmiki Shylla", "Party": "NPP", "Alliance": "MDA", "Remarks": ""},
		{"No.": "Ri Bhoi district", "Constituency": "Ri Bhoi district", "Name": "Ri Bhoi district", "Party": "Ri Bhoi district", "Alliance": "Ri Bhoi district", "Remarks": "Ri Bhoi district"},
		{"No.": "13", "Constituency": "Jirang", "Name": "Sosthenes Sohtun", "Party": "NPP", "Alliance": "MDA", "Remarks": ""},
	}
	if diff := cmp.Diff(want, keyed); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHTMLTable_Missing(t *testing.T) {
	_, err := ParseHTMLTable(strings.NewReader(articleHTML), 5)
	if !errors.Is(err, ErrNoTable) {
		t.Errorf("expected ErrNoTable, got %v", err)
	}
}

func TestParseHTMLTable_HeaderOverRowspan(t *testing.T) {
	html := `<table class="wikitable">
<tr><th>No.</th><th>Constituency</th><th>Name</th><th>Party</th><th>Alliance</th><th>Remarks</th></tr>
<tr><td>12</td><td>A</td><td>N</td><td>NPP</td><td rowspan="2">MDA</td><td></td></tr>
<tr><th colspan="6">Ri Bhoi district</th></tr>
<tr><td>1</td><td>B</td><td>M</td><td>INC</td><td>UPA</td><td>x</td></tr>
</table>`

	keyed, err := ParseHTMLTable(strings.NewReader(html), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keyed) != 3 {
		t.Fatalf("rows: got %d, want 3", len(keyed))
	}

	want := map[string]string{"No.": "1", "Constituency": "B", "Name": "M", "Party": "INC", "Alliance": "UPA", "Remarks": "x"}
	if diff := cmp.Diff(want, keyed[2]); diff != "" {
		t.Errorf("row after header mismatch (-want +got):\n%s", diff)
	}
	if keyed[1]["Alliance"] != "Ri Bhoi district" {
		t.Errorf("header Alliance: got %q", keyed[1]["Alliance"])
	}
}

func TestWikiClient_Fetch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	c := NewWikiClient(Options{WikiBaseURL: srv.URL})
	rows, err := c.Fetch(context.Background(), "11th_Meghalaya_Assembly", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/wiki/11th_Meghalaya_Assembly" {
		t.Errorf("path: got %q, want %q", gotPath, "/wiki/11th_Meghalaya_Assembly")
	}
	if len(rows) != 5 {
		t.Fatalf("rows: got %d, want 5", len(rows))
	}
	want := models.RawRow{Sequence: "13", Constituency: "Jirang", Name: "Sosthenes Sohtun", Party: "NPP", Alliance: "MDA"}
	if rows[4] != want {
		t.Errorf("rows[4]: got %+v, want %+v", rows[4], want)
	}
}

func TestWikiClient_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewWikiClient(Options{WikiBaseURL: srv.URL})
	_, err := c.Fetch(context.Background(), "Page", 2)
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("expected ErrUnexpectedStatus, got %v", err)
	}
}
