package extractor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/insightdelivered/assembly-converter/internal/models"
)

var (
	// ErrUnexpectedStatus is returned when an upstream answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected upstream status")
	// ErrNoTable is returned when the requested table is absent from the page.
	ErrNoTable = errors.New("table not found")
)

// Fetcher retrieves the raw rows of one table of one assembly page.
// Tables are numbered from 1, in page order.
type Fetcher interface {
	Fetch(ctx context.Context, page string, table int) ([]models.RawRow, error)
	Source() models.Source
}

// Options configures the network fetchers.
type Options struct {
	APIBaseURL  string
	WikiBaseURL string
	Timeout     time.Duration
	// MinInterval is the minimum spacing between upstream requests.
	MinInterval time.Duration
	UserAgent   string
	Logger      *zap.Logger
}

// New returns the fetcher for the given source.
func New(source models.Source, opts Options) (Fetcher, error) {
	switch source {
	case models.SourceAPI, "":
		return NewAPIClient(opts), nil
	case models.SourceWiki:
		return NewWikiClient(opts), nil
	default:
		return nil, fmt.Errorf("unsupported source: %q", source)
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) userAgent() string {
	if o.UserAgent == "" {
		return "assembly-converter/1.0"
	}
	return o.UserAgent
}
