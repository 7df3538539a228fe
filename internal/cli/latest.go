package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"DowntrendAnalyzer/internal/calculator"
	"DowntrendAnalyzer/internal/collector"
	"DowntrendAnalyzer/internal/reporter"
)

func newLatestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "latest [SYMBOL]",
		Short: "Print the newest day's prices and volume",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			data, dr, err := col.FetchSeries(ctx, symbol)
			if err != nil {
				return err
			}
			rec, err := calculator.LatestRecord(data, dr)
			if err != nil {
				return fmt.Errorf("latest record: %w", err)
			}
			return reporter.NewConsole(cmd.OutOrStdout(), cfg.Debug).Latest(symbol, dr, rec)
		},
	}
}
