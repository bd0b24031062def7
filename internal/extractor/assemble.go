package extractor

import (
	"context"

	"github.com/insightdelivered/assembly-converter/internal/models"
	"github.com/insightdelivered/assembly-converter/internal/parser"
)

// Assemble fetches one table and reduces it to an Assembly. A nil reducer
// means the default one.
func Assemble(ctx context.Context, f Fetcher, page string, table int, r *parser.Reducer) (*models.Assembly, error) {
	rows, err := f.Fetch(ctx, page, table)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = &parser.Reducer{}
	}
	a := r.Reduce(rows)
	a.Page = page
	a.Source = f.Source()
	return a, nil
}
