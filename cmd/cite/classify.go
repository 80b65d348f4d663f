package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmik-network/citefetch/internal/classify"
)

func init() {
	rootCmd.AddCommand(classifyCmd)
}

var classifyCmd = &cobra.Command{
	Use:   "classify <url-or-doi>",
	Short: "Show how an input would be routed",
	Long: `Show the routing decision for an input without any network call.

DOI-shaped strings (10.NNNN/suffix, optionally behind doi: or a doi.org
URL) route to the identifier endpoint; everything else is treated as a URL.

Examples:
  cite classify 10.2307/4486062
  cite classify https://arxiv.org/abs/2301.00001 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	d, err := classify.Classify(args[0])
	if err != nil {
		exitWithError(ExitDataError, "empty input: enter a URL or DOI")
	}

	if humanOutput {
		fmt.Printf("kind:  %s\nvalue: %s\n", d.Kind, d.Value)
	} else {
		outputJSON(d)
	}
	return nil
}
