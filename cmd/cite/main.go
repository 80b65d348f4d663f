// Package main provides the cite CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cite",
	Short: "Fetch citation metadata for URLs and DOIs",
	Long: `cite retrieves bibliographic citation metadata for a URL or DOI.

It queries Wikipedia's Citoid service and, when a translation server is
configured, can fetch from both sources side by side for comparison.

Core features:
  - URL and DOI input with automatic endpoint routing
  - Citation formats: zotero, mediawiki, mediawiki-basefields, bibtex
  - Byte-identical export to .json / .bib files
  - DOI extraction from local PDFs
  - Local query history
  - A small web UI (cite serve)

All commands output JSON by default for agent integration.
Use --human flag for human-readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env if present (for ZOTERO_API_URL / ZOTERO_API_KEY)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
