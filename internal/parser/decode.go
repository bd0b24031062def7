package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/insightdelivered/assembly-converter/internal/models"
)

// ErrMalformedRow is wrapped by every MalformedRowError.
var ErrMalformedRow = errors.New("malformed row")

// MalformedRowError reports a source row that lacks one of the six columns.
type MalformedRowError struct {
	Index   int
	Missing []string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d: missing column(s) %s", e.Index, strings.Join(e.Missing, ", "))
}

func (e *MalformedRowError) Unwrap() error { return ErrMalformedRow }

// DecodeRow converts one keyed source row. Keys beyond the six known
// columns are ignored.
func DecodeRow(index int, m map[string]string) (models.RawRow, error) {
	var missing []string
	get := func(col string) string {
		v, ok := m[col]
		if !ok {
			missing = append(missing, col)
		}
		return v
	}

	row := models.RawRow{
		Sequence:     get(models.ColSequence),
		Constituency: get(models.ColConstituency),
		Name:         get(models.ColName),
		Party:        get(models.ColParty),
		Alliance:     get(models.ColAlliance),
		Remarks:      get(models.ColRemarks),
	}
	if len(missing) > 0 {
		return models.RawRow{}, &MalformedRowError{Index: index, Missing: missing}
	}
	return row, nil
}

// DecodeRows converts keyed source rows, stopping at the first malformed one.
func DecodeRows(rows []map[string]string) ([]models.RawRow, error) {
	out := make([]models.RawRow, 0, len(rows))
	for i, m := range rows {
		row, err := DecodeRow(i, m)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}
