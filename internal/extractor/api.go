package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/insightdelivered/assembly-converter/internal/models"
	"github.com/insightdelivered/assembly-converter/internal/parser"
)

// APIClient reads tables through the wikitable2json API, which returns the
// tables of a Wikipedia article as JSON with the first row used as keys.
type APIClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewAPIClient creates a wikitable2json client.
func NewAPIClient(opts Options) *APIClient {
	limit := rate.Inf
	if opts.MinInterval > 0 {
		limit = rate.Every(opts.MinInterval)
	}
	base := opts.APIBaseURL
	if base == "" {
		base = "https://www.wikitable2json.com"
	}
	return &APIClient{
		baseURL:    strings.TrimRight(base, "/"),
		userAgent:  opts.userAgent(),
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		logger:     opts.logger(),
	}
}

func (c *APIClient) Source() models.Source {
	return models.SourceAPI
}

// Fetch retrieves and decodes one table.
func (c *APIClient) Fetch(ctx context.Context, page string, table int) ([]models.RawRow, error) {
	keyed, err := c.FetchKeyed(ctx, page, table)
	if err != nil {
		return nil, err
	}
	rows, err := parser.DecodeRows(keyed)
	if err != nil {
		return nil, fmt.Errorf("decode %s table %d: %w", page, table, err)
	}
	return rows, nil
}

// FetchKeyed retrieves one table as keyed row objects, undecoded.
func (c *APIClient) FetchKeyed(ctx context.Context, page string, table int) ([]map[string]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	params := url.Values{}
	params.Set("table", strconv.Itoa(table))
	params.Set("keyRows", "1")
	fullURL := fmt.Sprintf("%s/api/%s?%s", c.baseURL, url.PathEscape(page), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching table", zap.String("url", fullURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tables [][]map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&tables); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: %s table %d", ErrNoTable, page, table)
	}

	c.logger.Debug("table fetched", zap.String("page", page), zap.Int("rows", len(tables[0])))
	return tables[0], nil
}
