package parser

import (
	"github.com/insightdelivered/assembly-converter/internal/models"
)

// FieldEqualityClassifier treats a row as a district header when all six of
// its fields hold the same string. The scraping API echoes a merged header
// cell into every column, so that is the only signal the table carries.
//
// A data row whose six fields happen to coincide is misclassified as a header.
type FieldEqualityClassifier struct{}

func (FieldEqualityClassifier) Classify(row models.RawRow) models.RowKind {
	if IsGroupRow(row) {
		return models.RowGroup
	}
	return models.RowData
}

// IsGroupRow reports whether every field of row equals the sequence label.
func IsGroupRow(row models.RawRow) bool {
	fields := row.Fields()
	for _, f := range fields[1:] {
		if f != fields[0] {
			return false
		}
	}
	return true
}

// groupLabel returns the district carried by a header row. All fields are
// equal by definition, the sequence column is the one read.
func groupLabel(row models.RawRow) string {
	return row.Sequence
}
