package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetcompute/core/economics"
	"github.com/kilianp07/fleetcompute/core/fleet"
	"github.com/kilianp07/fleetcompute/pkg/export"
)

var fleetFormat string

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Fleet related commands",
}

var fleetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List simulated vehicles",
	Args:  cobra.NoArgs,
	RunE: evaluate(func(cmd *cobra.Command, now time.Time) error {
		vehicles := fleet.List(now)
		if fleetFormat != "table" {
			format, err := export.ParseFormat(fleetFormat)
			if err != nil {
				return err
			}
			return export.Vehicles(cmd.OutOrStdout(), format, vehicles)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		if _, err := fmt.Fprintln(w, "ID\tSTATUS\tCOMPANY\tHUB\tLOAD\tLAT\tLNG"); err != nil {
			return err
		}
		for _, v := range vehicles {
			hub := v.HubID
			if hub == "" {
				hub = "-"
			}
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%.4f\t%.4f\n",
				v.ID, v.Status, v.Company, hub, v.ComputeLoad, v.Lat, v.Lng); err != nil {
				return err
			}
		}
		return w.Flush()
	}),
}

var fleetEconomicsCmd = &cobra.Command{
	Use:   "economics",
	Short: "Print the marketplace economics summary",
	Args:  cobra.NoArgs,
	RunE: evaluate(func(cmd *cobra.Command, now time.Time) error {
		return export.WriteJSON(cmd.OutOrStdout(), economics.Summary(now))
	}),
}

func init() {
	fleetLsCmd.Flags().StringVarP(&fleetFormat, "format", "f", "table", "output format: table, json or csv")
	fleetCmd.AddCommand(fleetLsCmd, fleetEconomicsCmd)
	rootCmd.AddCommand(fleetCmd)
}
