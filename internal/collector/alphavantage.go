package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"DowntrendAnalyzer/internal/model"
)

// DefaultBaseURL is the RapidAPI gateway for AlphaVantage.
const DefaultBaseURL = "https://alpha-vantage.p.rapidapi.com/query"

const timeSeriesKey = "Time Series (Daily)"

// AlphaVantageConfig configures an AlphaVantageFetcher.
type AlphaVantageConfig struct {
	BaseURL    string
	APIKey     string
	APIHost    string // RapidAPI host; empty means direct AlphaVantage with an apikey parameter
	OutputSize string // "compact" or "full"
	Proxy      string
	Timeout    time.Duration
}

// AlphaVantageFetcher implements Fetcher using the TIME_SERIES_DAILY endpoint.
type AlphaVantageFetcher struct {
	cfg    AlphaVantageConfig
	Client *http.Client
	Log    *logrus.Logger
}

// NewAlphaVantageFetcher creates a fetcher with optional proxy support.
func NewAlphaVantageFetcher(cfg AlphaVantageConfig, log *logrus.Logger) *AlphaVantageFetcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.OutputSize == "" {
		cfg.OutputSize = "compact"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	transport := &http.Transport{}
	if cfg.Proxy != "" {
		if u, err := url.Parse(cfg.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(u)
		} else {
			log.WithError(err).Warn("ignoring malformed proxy url")
		}
	}
	return &AlphaVantageFetcher{
		cfg: cfg,
		Client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		Log: log,
	}
}

func (f *AlphaVantageFetcher) Name() string {
	if f.cfg.APIHost != "" {
		return "alphavantage-rapidapi"
	}
	return "alphavantage"
}

// avDaily is the response structure of TIME_SERIES_DAILY. AlphaVantage
// reports most failures with a 200 status and one of the message fields.
type avDaily struct {
	TimeSeries   map[string]model.DailyRecord `json:"Time Series (Daily)"`
	ErrorMessage string                       `json:"Error Message"`
	Note         string                       `json:"Note"`
	Information  string                       `json:"Information"`
	Message      string                       `json:"message"` // RapidAPI gateway errors
}

func (f *AlphaVantageFetcher) FetchDaily(ctx context.Context, symbol string) (model.DailySeries, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_DAILY")
	q.Set("symbol", symbol)
	q.Set("outputsize", f.cfg.OutputSize)
	q.Set("datatype", "json")
	if f.cfg.APIHost == "" {
		q.Set("apikey", f.cfg.APIKey)
	}
	endpoint := f.cfg.BaseURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.cfg.APIHost != "" {
		req.Header.Set("X-RapidAPI-Key", f.cfg.APIKey)
		req.Header.Set("X-RapidAPI-Host", f.cfg.APIHost)
	}

	entry := f.Log.WithFields(logrus.Fields{"symbol": symbol, "source": f.Name()})
	entry.Debug("requesting daily time series")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			entry.WithError(err).Warn("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	entry.WithFields(logrus.Fields{"status": resp.StatusCode, "bytes": len(body)}).Debug("response received")

	var daily avDaily
	decodeErr := json.Unmarshal(body, &daily)

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if decodeErr == nil && daily.Message != "" {
			msg = daily.Message
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, &APIError{Message: fmt.Sprintf("decode response: %v", decodeErr)}
	}

	switch {
	case daily.ErrorMessage != "":
		return nil, &APIError{Message: daily.ErrorMessage}
	case daily.TimeSeries != nil:
	case daily.Note != "":
		return nil, &APIError{Message: daily.Note}
	case daily.Information != "":
		return nil, &APIError{Message: daily.Information}
	default:
		return nil, &APIError{Message: fmt.Sprintf("response has no %q object", timeSeriesKey)}
	}

	entry.WithField("days", len(daily.TimeSeries)).Info("fetched daily time series")
	return model.DailySeries(daily.TimeSeries), nil
}
