package collector

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"DowntrendAnalyzer/internal/calculator"
	"DowntrendAnalyzer/internal/model"
	"DowntrendAnalyzer/internal/trend"
)

// MockFetcher returns fixed data for development and testing.
type MockFetcher struct {
	Data model.DailySeries
	Err  error

	Calls []string // symbols requested, in order
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDaily(_ context.Context, symbol string) (model.DailySeries, error) {
	m.Calls = append(m.Calls, symbol)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Data, nil
}

// Collector orchestrates data fetching and trend analysis for one symbol.
type Collector struct {
	Fetcher Fetcher
	Log     *logrus.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, log *logrus.Logger) *Collector {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Collector{Fetcher: fetcher, Log: log}
}

// FetchSeries fetches the daily series and its sorted date range.
func (c *Collector) FetchSeries(ctx context.Context, symbol string) (model.DailySeries, *model.DateRange, error) {
	data, err := c.Fetcher.FetchDaily(ctx, symbol)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch daily series: %w", err)
	}
	dr, err := calculator.AnalyzeDateRange(data)
	if err != nil {
		return nil, nil, fmt.Errorf("analyze date range: %w", err)
	}
	c.Log.WithFields(logrus.Fields{
		"symbol": symbol,
		"days":   dr.NumDays,
		"span":   dr.Span,
	}).Debug("collected daily data")
	return data, dr, nil
}

// Collect fetches the daily series for symbol and segments it into
// downward trends.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.TrendReport, error) {
	data, dr, err := c.FetchSeries(ctx, symbol)
	if err != nil {
		return nil, err
	}
	latest, err := calculator.LatestRecord(data, dr)
	if err != nil {
		return nil, fmt.Errorf("latest record: %w", err)
	}
	trends, err := trend.Segment(data, dr.Dates)
	if err != nil {
		return nil, fmt.Errorf("segment trends: %w", err)
	}
	c.Log.WithFields(logrus.Fields{"symbol": symbol, "trends": len(trends)}).Info("analysis complete")

	return &model.TrendReport{
		Symbol: symbol,
		Source: c.Fetcher.Name(),
		Range:  *dr,
		Latest: latest,
		Trends: trends,
	}, nil
}
