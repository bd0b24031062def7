package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/insightdelivered/assembly-converter/internal/models"
	"github.com/insightdelivered/assembly-converter/internal/parser"
)

const apiResponse = `[[
  {"No.":"West Jaintia Hills district","Constituency":"West Jaintia Hills district","Name":"West Jaintia Hills district","Party":"West Jaintia Hills district","Alliance":"West Jaintia Hills district","Remarks":"West Jaintia Hills district"},
  {"No.":"1","Constituency":"Nartiang","Name":"Sniawbhalang Dhar","Party":"NPP","Alliance":"MDA","Remarks":""},
  {"No.":"2","Constituency":"Jowai","Name":"Wailadmiki Shylla","Party":"NPP","Alliance":"MDA","Remarks":""}
]]`

func TestAPIClient_Fetch(t *testing.T) {
	var gotPath, gotTable, gotKeyRows string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTable = r.URL.Query().Get("table")
		gotKeyRows = r.URL.Query().Get("keyRows")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(apiResponse))
	}))
	defer srv.Close()

	c := NewAPIClient(Options{APIBaseURL: srv.URL})
	rows, err := c.Fetch(context.Background(), "11th_Meghalaya_Assembly", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/11th_Meghalaya_Assembly" {
		t.Errorf("path: got %q, want %q", gotPath, "/api/11th_Meghalaya_Assembly")
	}
	if gotTable != "2" || gotKeyRows != "1" {
		t.Errorf("query: got table=%q keyRows=%q, want 2 and 1", gotTable, gotKeyRows)
	}
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(rows))
	}
	if !parser.IsGroupRow(rows[0]) {
		t.Errorf("rows[0] should be a district header: %+v", rows[0])
	}
	if rows[2].Constituency != "Jowai" {
		t.Errorf("rows[2].Constituency: got %q, want %q", rows[2].Constituency, "Jowai")
	}
	if c.Source() != models.SourceAPI {
		t.Errorf("Source: got %q, want %q", c.Source(), models.SourceAPI)
	}
}

func TestAPIClient_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "page not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewAPIClient(Options{APIBaseURL: srv.URL})
	_, err := c.Fetch(context.Background(), "Missing_Page", 2)
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestAPIClient_NoTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewAPIClient(Options{APIBaseURL: srv.URL})
	_, err := c.Fetch(context.Background(), "Page", 9)
	if !errors.Is(err, ErrNoTable) {
		t.Errorf("expected ErrNoTable, got %v", err)
	}
}

func TestAPIClient_MalformedRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[{"No.":"1","Constituency":"Nartiang"}]]`))
	}))
	defer srv.Close()

	c := NewAPIClient(Options{APIBaseURL: srv.URL})
	_, err := c.Fetch(context.Background(), "Page", 2)
	if !errors.Is(err, parser.ErrMalformedRow) {
		t.Errorf("expected ErrMalformedRow, got %v", err)
	}
}

func TestAPIClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(apiResponse))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewAPIClient(Options{APIBaseURL: srv.URL})
	if _, err := c.Fetch(ctx, "Page", 2); err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		source  models.Source
		want    models.Source
		wantErr bool
	}{
		{source: models.SourceAPI, want: models.SourceAPI},
		{source: "", want: models.SourceAPI},
		{source: models.SourceWiki, want: models.SourceWiki},
		{source: "ftp", wantErr: true},
	}

	for _, tt := range tests {
		f, err := New(tt.source, Options{})
		if tt.wantErr {
			if err == nil {
				t.Errorf("New(%q): expected error, got nil", tt.source)
			}
			continue
		}
		if err != nil {
			t.Errorf("New(%q): unexpected error: %v", tt.source, err)
			continue
		}
		if f.Source() != tt.want {
			t.Errorf("New(%q).Source(): got %q, want %q", tt.source, f.Source(), tt.want)
		}
	}
}
