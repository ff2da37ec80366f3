package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const summaryRounding = 10 * time.Millisecond

// runCmd executes a single scan run.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the daily scan once",
	Long: `Runs one full scan: load tickers, fetch daily history, compute
signals, rank, write CSV/HTML reports and send the mail notification.

Example:
  go run ./cmd/scan run`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	summary, err := a.pipeline.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Scan finished: %d ranked, %d skipped (%s)\n",
		summary.Ranked, summary.Skipped, summary.Duration.Round(summaryRounding))
	fmt.Printf("  CSV:  %s\n", summary.CSVPath)
	fmt.Printf("  HTML: %s\n", summary.HTMLPath)
	return nil
}
