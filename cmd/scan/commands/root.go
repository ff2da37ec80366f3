package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scan",
	Short: "Daily stock scan - technical signals, ranking and mail report",
	Long: `Daily Stock Scan CLI

Scans a ticker watchlist for 5/20 MA golden crosses, volume spikes and
distance from the 60-day average, ranks the results and writes CSV/HTML
reports with an optional mail notification.

Usage:
  go run ./cmd/scan [command]

Examples:
  go run ./cmd/scan run
  go run ./cmd/scan schedule`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
