package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetcompute/core/market"
	"github.com/kilianp07/fleetcompute/pkg/export"
)

var (
	historyMinutes int
	historyStats   bool
	historyFormat  string
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Simulated ERCOT price commands",
}

var priceNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Print the current price and trend",
	Args:  cobra.NoArgs,
	RunE: evaluate(func(cmd *cobra.Command, now time.Time) error {
		return export.WriteJSON(cmd.OutOrStdout(), market.Current(now))
	}),
}

var priceHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Print one price per minute for the last N minutes",
	Args:  cobra.NoArgs,
	RunE: evaluate(func(cmd *cobra.Command, now time.Time) error {
		format, err := export.ParseFormat(historyFormat)
		if err != nil {
			return err
		}
		points := market.History(now, historyMinutes)
		if historyStats {
			return export.WriteJSON(cmd.OutOrStdout(), market.Summarize(points))
		}
		return export.Prices(cmd.OutOrStdout(), format, points)
	}),
}

func init() {
	priceHistoryCmd.Flags().IntVarP(&historyMinutes, "minutes", "m", market.DefaultHistoryMinutes, "window length, clamped to [1,120]")
	priceHistoryCmd.Flags().BoolVar(&historyStats, "stats", false, "print min/max/mean/stddev instead of the points")
	priceHistoryCmd.Flags().StringVarP(&historyFormat, "format", "f", "json", "output format: json or csv")
	priceCmd.AddCommand(priceNowCmd, priceHistoryCmd)
	rootCmd.AddCommand(priceCmd)
}
