package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"DowntrendAnalyzer/internal/collector"
	"DowntrendAnalyzer/internal/config"
)

// FetcherFactory builds the price fetcher from the loaded config.
type FetcherFactory func(cfg collector.AlphaVantageConfig, log *logrus.Logger) collector.Fetcher

func alphaVantage(cfg collector.AlphaVantageConfig, log *logrus.Logger) collector.Fetcher {
	return collector.NewAlphaVantageFetcher(cfg, log)
}

type options struct {
	configPath string
	logLevel   string
	debug      bool

	newFetcher FetcherFactory
}

// NewRootCmd builds the downtrend command tree. A nil factory selects the
// AlphaVantage fetcher.
func NewRootCmd(newFetcher FetcherFactory) *cobra.Command {
	if newFetcher == nil {
		newFetcher = alphaVantage
	}
	opts := &options{newFetcher: newFetcher}

	root := &cobra.Command{
		Use:   "downtrend [SYMBOL]",
		Short: "Find downward price trends in a stock's daily history",
		Long: `downtrend fetches the daily price series of a stock symbol and reports
every run of consecutive days whose average price fell, with its length,
total price drop and how trading volume moved along it.

Credentials are read from keys.json (X-RapidAPI-Key, X-RapidAPI-Host).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.Path(), "path to credentials file (JSON or YAML)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "print the collected date range and debug logs")

	root.AddCommand(newLatestCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command and exits 1 on any error.
func Execute() {
	if err := NewRootCmd(nil).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads config and builds the logger. Flags win over the file.
func (o *options) setup(errOut io.Writer) (*config.Config, *logrus.Logger, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		if errors.Is(err, config.ErrMissingFile) {
			return nil, nil, fmt.Errorf("%w; please add it with the following params: X-RapidAPI-Key, X-RapidAPI-Host", err)
		}
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	log := logrus.New()
	log.SetOutput(errOut)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	if cfg.Debug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	return cfg, log, nil
}

func symbolArg(cfg *config.Config, args []string) string {
	if len(args) == 1 && args[0] != "" {
		return args[0]
	}
	return cfg.DataSource.Symbol
}
