package main

import (
	"os"

	"github.com/hsulin/stockscan/cmd/scan/commands"
)

// main is the entry point for the scanner CLI:
// go run ./cmd/scan [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
