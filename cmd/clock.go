package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var atFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&atFlag, "at", "", "evaluate at this RFC3339 instant instead of now")
}

// evalTime returns the instant selected with --at, or the current time.
func evalTime() (time.Time, error) {
	if atFlag == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, atFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at: %w", err)
	}
	return t.UTC(), nil
}

// evaluate wraps a command body needing the evaluation instant.
func evaluate(fn func(cmd *cobra.Command, now time.Time) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		now, err := evalTime()
		if err != nil {
			return err
		}
		return fn(cmd, now)
	}
}
