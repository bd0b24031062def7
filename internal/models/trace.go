package models

// RowTrace records what the reducer did with one input row.
type RowTrace struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"`     // "group" or "data"
	District string `json:"district"` // current district after the row
	Number   *int   `json:"number,omitempty"`
}
