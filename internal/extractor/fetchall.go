package extractor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/insightdelivered/assembly-converter/internal/models"
)

// PageRows holds the rows fetched for one page.
type PageRows struct {
	Page string
	Rows []models.RawRow
}

// FetchAll fetches the same table from several pages, at most limit at a
// time. Results keep the order of pages; the first error cancels the rest.
func FetchAll(ctx context.Context, f Fetcher, pages []string, table, limit int) ([]PageRows, error) {
	out := make([]PageRows, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			rows, err := f.Fetch(gctx, page, table)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", page, err)
			}
			out[i] = PageRows{Page: page, Rows: rows}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
