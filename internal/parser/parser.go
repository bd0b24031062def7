package parser

import (
	"github.com/insightdelivered/assembly-converter/internal/models"
)

// Classifier decides whether a raw row is a district header or a data row.
type Classifier interface {
	Classify(row models.RawRow) models.RowKind
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(row models.RawRow) models.RowKind

func (f ClassifierFunc) Classify(row models.RawRow) models.RowKind {
	return f(row)
}

// DefaultClassifier is the rule used by Reduce.
var DefaultClassifier Classifier = FieldEqualityClassifier{}
