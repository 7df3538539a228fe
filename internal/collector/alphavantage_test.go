package collector

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dailyBody = `{
	"Meta Data": {
		"1. Information": "Daily Prices (open, high, low, close) and Volumes",
		"2. Symbol": "AAPL",
		"3. Last Refreshed": "2022-08-30",
		"4. Output Size": "Compact",
		"5. Time Zone": "US/Eastern"
	},
	"Time Series (Daily)": {
		"2022-08-30": {
			"1. open": "162.1300",
			"2. high": "162.5600",
			"3. low": "157.7200",
			"4. close": "158.9100",
			"5. volume": "77906197"
		},
		"2022-08-29": {
			"1. open": "161.1450",
			"2. high": "162.9000",
			"3. low": "159.8200",
			"4. close": "161.3800",
			"5. volume": "73313953"
		}
	}
}`

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestAlphaVantageFetcher_RapidAPI(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		assert.Equal(t, "TIME_SERIES_DAILY", q.Get("function"))
		assert.Equal(t, "AAPL", q.Get("symbol"))
		assert.Equal(t, "compact", q.Get("outputsize"))
		assert.Equal(t, "json", q.Get("datatype"))
		assert.Empty(t, q.Get("apikey"))
		assert.Equal(t, "secret", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, "alpha-vantage.p.rapidapi.com", r.Header.Get("X-RapidAPI-Host"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(dailyBody))
	}))
	defer server.Close()

	f := NewAlphaVantageFetcher(AlphaVantageConfig{
		BaseURL: server.URL,
		APIKey:  "secret",
		APIHost: "alpha-vantage.p.rapidapi.com",
	}, quietLogger())
	assert.Equal(t, "alphavantage-rapidapi", f.Name())

	data, err := f.FetchDaily(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, data, 2)
	rec := data["2022-08-29"]
	assert.Equal(t, "161.1450", rec.Open)
	assert.Equal(t, "162.9000", rec.High)
	assert.Equal(t, "159.8200", rec.Low)
	assert.Equal(t, "161.3800", rec.Close)
	assert.Equal(t, "73313953", rec.Volume)
}

func TestAlphaVantageFetcher_DirectAPIKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "direct-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "full", r.URL.Query().Get("outputsize"))
		assert.Empty(t, r.Header.Get("X-RapidAPI-Key"))
		_, _ = w.Write([]byte(dailyBody))
	}))
	defer server.Close()

	f := NewAlphaVantageFetcher(AlphaVantageConfig{
		BaseURL:    server.URL,
		APIKey:     "direct-key",
		OutputSize: "full",
	}, quietLogger())
	assert.Equal(t, "alphavantage", f.Name())

	data, err := f.FetchDaily(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Len(t, data, 2)
}

func TestAlphaVantageFetcher_APIErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		want       string
	}{
		{"invalid symbol", 200, `{"Error Message": "Invalid API call."}`, 0, "Invalid API call."},
		{"rate limited", 200, `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`, 0, "call frequency"},
		{"premium", 200, `{"Information": "This is a premium endpoint."}`, 0, "premium endpoint"},
		{"missing series", 200, `{"Meta Data": {}}`, 0, `no "Time Series (Daily)" object`},
		{"not json", 200, `<html>oops</html>`, 0, "decode response"},
		{"gateway forbidden", 403, `{"message":"You are not subscribed to this API."}`, 403, "not subscribed"},
		{"server error", 500, `internal error`, 500, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			f := NewAlphaVantageFetcher(AlphaVantageConfig{BaseURL: server.URL, APIKey: "k", APIHost: "h"}, quietLogger())
			_, err := f.FetchDaily(context.Background(), "AAPL")
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Contains(t, apiErr.Error(), tt.want)
			assert.False(t, errors.Is(err, ErrNetwork))
		})
	}
}

func TestAlphaVantageFetcher_EmptySeriesIsNotAnAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Time Series (Daily)": {}}`))
	}))
	defer server.Close()

	f := NewAlphaVantageFetcher(AlphaVantageConfig{BaseURL: server.URL, APIKey: "k", APIHost: "h"}, quietLogger())
	data, err := f.FetchDaily(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestAlphaVantageFetcher_NetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	f := NewAlphaVantageFetcher(AlphaVantageConfig{BaseURL: url, APIKey: "k", APIHost: "h"}, quietLogger())
	_, err := f.FetchDaily(context.Background(), "AAPL")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestAlphaVantageFetcher_ContextTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	f := NewAlphaVantageFetcher(AlphaVantageConfig{BaseURL: server.URL, APIKey: "k", APIHost: "h"}, quietLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := f.FetchDaily(ctx, "AAPL")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestNewAlphaVantageFetcher_Defaults(t *testing.T) {
	f := NewAlphaVantageFetcher(AlphaVantageConfig{APIKey: "k", Proxy: "http://127.0.0.1:8080"}, nil)
	assert.Equal(t, DefaultBaseURL, f.cfg.BaseURL)
	assert.Equal(t, "compact", f.cfg.OutputSize)
	assert.Equal(t, 30*time.Second, f.Client.Timeout)
	require.NotNil(t, f.Client.Transport)
	assert.NotNil(t, f.Client.Transport.(*http.Transport).Proxy)
	assert.NotNil(t, f.Log)
}
