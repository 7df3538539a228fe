package collector

import (
	"context"

	"DowntrendAnalyzer/internal/model"
)

// Fetcher defines the interface for fetching daily price data.
type Fetcher interface {
	FetchDaily(ctx context.Context, symbol string) (model.DailySeries, error)
	Name() string
}
