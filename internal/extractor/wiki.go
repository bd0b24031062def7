package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/insightdelivered/assembly-converter/internal/models"
	"github.com/insightdelivered/assembly-converter/internal/parser"
)

// WikiClient reads tables straight from the article HTML. Merged cells are
// expanded into every column and row they cover, so a district header with
// colspan comes out with the same text in all six fields, as the API gives it.
type WikiClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewWikiClient creates a Wikipedia HTML client.
func NewWikiClient(opts Options) *WikiClient {
	limit := rate.Inf
	if opts.MinInterval > 0 {
		limit = rate.Every(opts.MinInterval)
	}
	base := opts.WikiBaseURL
	if base == "" {
		base = "https://en.wikipedia.org"
	}
	return &WikiClient{
		baseURL:    strings.TrimRight(base, "/"),
		userAgent:  opts.userAgent(),
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		logger:     opts.logger(),
	}
}

func (c *WikiClient) Source() models.Source {
	return models.SourceWiki
}

// Fetch downloads the article and extracts the table-th wikitable.
func (c *WikiClient) Fetch(ctx context.Context, page string, table int) ([]models.RawRow, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	fullURL := fmt.Sprintf("%s/wiki/%s", c.baseURL, url.PathEscape(page))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("fetching article", zap.String("url", fullURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	keyed, err := ParseHTMLTable(resp.Body, table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", page, err)
	}
	rows, err := parser.DecodeRows(keyed)
	if err != nil {
		return nil, fmt.Errorf("decode %s table %d: %w", page, table, err)
	}
	return rows, nil
}

// ParseHTMLTable reads the table-th (1-based) "wikitable" of an HTML document.
// The first row supplies the keys of every following row.
func ParseHTMLTable(r io.Reader, table int) ([]map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	tables := doc.Find("table.wikitable")
	if table < 1 || table > tables.Length() {
		return nil, fmt.Errorf("%w: table %d of %d", ErrNoTable, table, tables.Length())
	}

	grid := expandGrid(tables.Eq(table - 1))
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: table %d is empty", ErrNoTable, table)
	}

	keys := grid[0]
	out := make([]map[string]string, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		m := make(map[string]string, len(keys))
		for i, key := range keys {
			if i < len(cells) {
				m[key] = cells[i]
			}
		}
		out = append(out, m)
	}
	return out, nil
}

type spanned struct {
	text string
	left int
}

// expandGrid flattens a table into rows of cell text, repeating each
// colspan/rowspan cell into every slot it covers. Rows without cells are
// dropped.
func expandGrid(tbl *goquery.Selection) [][]string {
	carry := map[int]*spanned{}
	var grid [][]string

	tbl.Children().ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		col := 0

		fillCarried := func() {
			for {
				sp, ok := carry[col]
				if !ok {
					return
				}
				row = append(row, sp.text)
				sp.left--
				if sp.left == 0 {
					delete(carry, col)
				}
				col++
			}
		}

		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			fillCarried()
			text := cellText(cell)
			colspan := spanAttr(cell, "colspan")
			rowspan := spanAttr(cell, "rowspan")
			for i := 0; i < colspan; i++ {
				// A wide cell overlapping a pending rowspan uses up that row of it.
				if sp, ok := carry[col]; ok {
					sp.left--
					if sp.left == 0 {
						delete(carry, col)
					}
				}
				row = append(row, text)
				if rowspan > 1 {
					carry[col] = &spanned{text: text, left: rowspan - 1}
				}
				col++
			}
		})
		fillCarried()

		if len(row) > 0 {
			grid = append(grid, row)
		}
	})
	return grid
}

// cellText returns the visible text of a cell without footnote markers.
func cellText(cell *goquery.Selection) string {
	cell.Find("sup.reference, style, .sortkey").Remove()
	return strings.Join(strings.Fields(cell.Text()), " ")
}

func spanAttr(cell *goquery.Selection, name string) int {
	v, ok := cell.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
