package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"DowntrendAnalyzer/internal/collector"
)

// DefaultPath is the credentials file looked up in the working directory.
const DefaultPath = "keys.json"

// ErrMissingFile is returned by Load when the credentials file does not exist.
var ErrMissingFile = errors.New("credentials file does not exist")

// Config holds all application configuration. The file may be JSON or YAML;
// the two RapidAPI keys keep the header names used by the gateway.
type Config struct {
	APIKey     string     `json:"X-RapidAPI-Key" yaml:"X-RapidAPI-Key"`
	APIHost    string     `json:"X-RapidAPI-Host" yaml:"X-RapidAPI-Host"`
	DataSource DataSource `json:"data_source" yaml:"data_source"`
	Timeout    string     `json:"timeout" yaml:"timeout"`
	Proxy      string     `json:"proxy" yaml:"proxy"`
	LogLevel   string     `json:"log_level" yaml:"log_level"`
	Debug      bool       `json:"debug" yaml:"debug"`
}

// DataSource describes the price API endpoint.
type DataSource struct {
	BaseURL    string `json:"base_url" yaml:"base_url"`
	OutputSize string `json:"output_size" yaml:"output_size"`
	Symbol     string `json:"symbol" yaml:"symbol"`
}

// Path returns the credentials file path, honouring KEYS_PATH.
func Path() string {
	if v := os.Getenv("KEYS_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are not an error; variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads config from the credentials file, then applies environment
// variable overrides and defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Try YAML first, fall back to JSON (tab-indented JSON is not valid YAML)
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = &Config{}
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", jerr)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("RAPIDAPI_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("RAPIDAPI_HOST"); v != "" {
		cfg.APIHost = v
	}
	if v := os.Getenv("ALPHAVANTAGE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		cfg.Timeout = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}

	// Defaults
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = collector.DefaultBaseURL
	}
	if cfg.DataSource.OutputSize == "" {
		cfg.DataSource.OutputSize = "compact"
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "AAPL"
	}
	if cfg.Timeout == "" {
		cfg.Timeout = "30s"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("X-RapidAPI-Key is required")
	}
	u, err := url.Parse(c.DataSource.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("data_source.base_url %q is not a valid url", c.DataSource.BaseURL)
	}
	if c.APIHost == "" && strings.HasSuffix(u.Hostname(), "rapidapi.com") {
		return fmt.Errorf("X-RapidAPI-Host is required")
	}
	switch c.DataSource.OutputSize {
	case "compact", "full":
	default:
		return fmt.Errorf("data_source.output_size must be compact or full, got %q", c.DataSource.OutputSize)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// RequestTimeout returns the bound on the price API call.
func (c *Config) RequestTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive")
	}
	return d, nil
}

// Fetcher returns the AlphaVantage fetcher settings.
func (c *Config) Fetcher() collector.AlphaVantageConfig {
	timeout, _ := c.RequestTimeout()
	return collector.AlphaVantageConfig{
		BaseURL:    c.DataSource.BaseURL,
		APIKey:     c.APIKey,
		APIHost:    c.APIHost,
		OutputSize: c.DataSource.OutputSize,
		Proxy:      c.Proxy,
		Timeout:    timeout,
	}
}
