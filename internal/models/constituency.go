package models

// RawRow is one row of the assembly table exactly as the source delivers it.
// District header rows echo the district name into all six fields.
type RawRow struct {
	Sequence     string `json:"No."`
	Constituency string `json:"Constituency"`
	Name         string `json:"Name"`
	Party        string `json:"Party"`
	Alliance     string `json:"Alliance"`
	Remarks      string `json:"Remarks"`
}

// Fields returns the six fields in table column order.
func (r RawRow) Fields() [6]string {
	return [6]string{r.Sequence, r.Constituency, r.Name, r.Party, r.Alliance, r.Remarks}
}

// Column keys used by the source table header row.
const (
	ColSequence     = "No."
	ColConstituency = "Constituency"
	ColName         = "Name"
	ColParty        = "Party"
	ColAlliance     = "Alliance"
	ColRemarks      = "Remarks"
)

// Columns lists the source header keys in table order.
var Columns = []string{ColSequence, ColConstituency, ColName, ColParty, ColAlliance, ColRemarks}

// RowKind is the classification of a raw row.
type RowKind int

const (
	RowData  RowKind = iota // a constituency record
	RowGroup                // a district header row
)

func (k RowKind) String() string {
	switch k {
	case RowGroup:
		return "group"
	default:
		return "data"
	}
}

// ConstituencyRecord is a data row tagged with its district and parsed number.
type ConstituencyRecord struct {
	RawRow
	District string `json:"District"`
	// ConstituencyNo is nil when the sequence label is not a number.
	ConstituencyNo *int `json:"Constituency_No"`
}

// Assembly is the normalized result of reducing one assembly table.
type Assembly struct {
	Records   []ConstituencyRecord `json:"constituencies"`
	Districts []string             `json:"districts"`
	Parties   []string             `json:"parties"`

	// Provenance, set by the caller after reduction.
	Page   string `json:"-"`
	Source Source `json:"-"`

	// Diagnostics, not part of the serialized dataset.
	GroupRows  int `json:"-"` // district header rows consumed
	Ungrouped  int `json:"-"` // records seen before any district header
	Unnumbered int `json:"-"` // records whose sequence label did not parse

	// Trace is filled only when the Reducer runs with Trace set.
	Trace []RowTrace `json:"-"`
}

// Source identifies where a raw table was retrieved from.
type Source string

const (
	SourceAPI  Source = "api"
	SourceWiki Source = "wiki"
	SourceFile Source = "file"
)
