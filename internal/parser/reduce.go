package parser

import (
	"github.com/insightdelivered/assembly-converter/internal/models"
)

// Reducer folds a raw assembly table into tagged constituency records.
type Reducer struct {
	// Classifier defaults to DefaultClassifier when nil.
	Classifier Classifier
	// Trace records a RowTrace per input row.
	Trace bool
}

// Reduce runs the default Reducer over rows.
func Reduce(rows []models.RawRow) *models.Assembly {
	return (&Reducer{}).Reduce(rows)
}

// reductionState is the fold accumulator. Each step returns a new value;
// the previous state is never read again.
type reductionState struct {
	group      string // "" until the first header row
	grouped    bool
	records    []models.ConstituencyRecord
	groupRows  int
	ungrouped  int
	unnumbered int
}

func (s reductionState) step(kind models.RowKind, row models.RawRow) reductionState {
	if kind == models.RowGroup {
		s.group = groupLabel(row)
		s.grouped = true
		s.groupRows++
		return s
	}

	rec := models.ConstituencyRecord{
		RawRow:         row,
		District:       s.group,
		ConstituencyNo: parseNumber(row.Sequence),
	}
	if !s.grouped {
		s.ungrouped++
	}
	if rec.ConstituencyNo == nil {
		s.unnumbered++
	}
	s.records = append(s.records, rec)
	return s
}

// Reduce classifies every row in order. Header rows set the current district,
// data rows become records carrying it. Districts and parties are listed in
// the order they first appear among the records.
func (r *Reducer) Reduce(rows []models.RawRow) *models.Assembly {
	c := r.Classifier
	if c == nil {
		c = DefaultClassifier
	}

	var trace []models.RowTrace
	state := reductionState{records: make([]models.ConstituencyRecord, 0, len(rows))}
	for i, row := range rows {
		kind := c.Classify(row)
		state = state.step(kind, row)

		if r.Trace {
			t := models.RowTrace{Index: i, Kind: kind.String(), District: state.group}
			if kind == models.RowData {
				t.Number = state.records[len(state.records)-1].ConstituencyNo
			}
			trace = append(trace, t)
		}
	}

	return &models.Assembly{
		Records:    state.records,
		Districts:  uniqueBy(state.records, func(rec models.ConstituencyRecord) string { return rec.District }),
		Parties:    uniqueBy(state.records, func(rec models.ConstituencyRecord) string { return rec.Party }),
		GroupRows:  state.groupRows,
		Ungrouped:  state.ungrouped,
		Unnumbered: state.unnumbered,
		Trace:      trace,
	}
}
