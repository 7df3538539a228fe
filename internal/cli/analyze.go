package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"DowntrendAnalyzer/internal/collector"
	"DowntrendAnalyzer/internal/reporter"
)

func runAnalyze(cmd *cobra.Command, opts *options, args []string) error {
	cfg, log, err := opts.setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	symbol := symbolArg(cfg, args)
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return err
	}

	col := collector.NewCollector(opts.newFetcher(cfg.Fetcher(), log), log)
	log.WithFields(logrus.Fields{"symbol": symbol, "source": col.Fetcher.Name()}).Debug("starting analysis")

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	report, err := col.Collect(ctx, symbol)
	if err != nil {
		return err
	}
	return reporter.NewConsole(cmd.OutOrStdout(), cfg.Debug).Report(report)
}
