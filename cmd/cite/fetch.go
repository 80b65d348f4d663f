package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cosmik-network/citefetch/internal/citation"
	"github.com/cosmik-network/citefetch/internal/citoid"
	"github.com/cosmik-network/citefetch/internal/classify"
	"github.com/cosmik-network/citefetch/internal/config"
	"github.com/cosmik-network/citefetch/internal/history"
	"github.com/cosmik-network/citefetch/internal/pdf"
	"github.com/cosmik-network/citefetch/internal/translator"
)

var (
	fetchFormat  string
	fetchCompare bool
	fetchOut     string
	fetchPDF     string
	fetchSource  string
)

func init() {
	fetchCmd.Flags().StringVar(&fetchFormat, "format", "", "Citation format: "+citation.FormatNames())
	fetchCmd.Flags().BoolVar(&fetchCompare, "compare", false, "Also query the configured translation server")
	fetchCmd.Flags().StringVar(&fetchOut, "out", "", "Write the response body to a file (byte-identical to upstream)")
	fetchCmd.Flags().StringVar(&fetchPDF, "pdf", "", "Extract the DOI from a local PDF instead of passing input")
	fetchCmd.Flags().StringVar(&fetchSource, "source", string(citation.SourceCitoid), "Source whose body --out exports: citoid or translator")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [url-or-doi]",
	Short: "Fetch citation metadata for a URL or DOI",
	Long: `Fetch citation metadata for a URL or DOI.

DOI-shaped input is routed to the identifier endpoint, everything else is
treated as a URL. The upstream response is returned unmodified; --out
writes it byte-identical to a file.

With --compare and configured translator credentials (ZOTERO_API_URL /
ZOTERO_API_KEY, or the zotero table in ~/.config/cite/config.yml), the
translation server is queried as well and both results are shown
independently.

Examples:
  cite fetch https://arxiv.org/abs/2301.00001
  cite fetch 10.1038/nature12373 --format bibtex
  cite fetch 10.1038/nature12373 --format bibtex --out paper.bib
  cite fetch https://example.com/article --compare --human
  cite fetch --pdf paper.pdf --format zotero`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

// SourceResult is the per-source portion of the fetch output. An upstream
// non-2xx keeps its status and verbatim body; Error is set only for local
// failures (timeout, DNS, refused connection).
type SourceResult struct {
	Source      citation.Source `json:"source"`
	OK          bool            `json:"ok"`
	StatusCode  int             `json:"status_code,omitempty"`
	ContentType string          `json:"content_type,omitempty"`
	RequestURL  string          `json:"request_url,omitempty"`
	Body        string          `json:"body,omitempty"`
	Error       string          `json:"error,omitempty"`

	// raw keeps the unmodified upstream bytes for --out export.
	raw []byte
}

// FetchResult is the JSON output for cite fetch.
type FetchResult struct {
	Input   string          `json:"input"`
	Kind    classify.Kind   `json:"kind"`
	Format  citation.Format `json:"format"`
	Results []SourceResult  `json:"results"`
	OutPath string          `json:"out_path,omitempty"`
}

func runFetch(cmd *cobra.Command, args []string) error {
	input, exitCode := fetchInput(args)
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	decision, err := classify.Classify(input)
	if err != nil {
		exitWithError(ExitDataError, "empty input: enter a URL or DOI")
	}

	format := resolveFormat()
	creds := config.ResolveCredentials()

	compare := fetchCompare
	if compare && !creds.Enabled() {
		// Comparison needs translator credentials; fall back to the
		// single source rather than failing the whole query.
		warn("comparison disabled: no translator server configured (set %s or the zotero table in %s)",
			config.EnvAPIURL, config.GlobalConfigPath())
		compare = false
	}

	ctx := context.Background()
	results := []SourceResult{
		sourceResult(func() (*citation.Result, error) {
			return citoid.NewClient().Fetch(ctx, decision.Value, format)
		}, citation.SourceCitoid),
	}

	if compare {
		tc, err := translator.NewClient(creds)
		if err != nil {
			exitWithError(ExitConfigError, "translator client: %v", err)
		}
		results = append(results, sourceResult(func() (*citation.Result, error) {
			return tc.Fetch(ctx, decision)
		}, citation.SourceTranslator))
	}

	recordHistory(decision, format, results)

	out := FetchResult{
		Input:   decision.Value,
		Kind:    decision.Kind,
		Format:  format,
		Results: results,
	}

	if fetchOut != "" {
		path, err := exportResult(results, fetchOut)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		out.OutPath = path
	}

	if humanOutput {
		printFetchHuman(out)
	} else {
		outputJSON(out)
	}

	os.Exit(fetchExitCode(results))
	return nil
}

// fetchInput resolves the query input from the positional argument or,
// with --pdf, from a DOI found in a local PDF.
func fetchInput(args []string) (string, int) {
	if fetchPDF != "" {
		if len(args) > 0 {
			exitWithError(ExitError, "provide either an input argument or --pdf, not both")
		}
		doi, err := pdf.ExtractDOI(fetchPDF)
		if err != nil {
			exitWithError(ExitError, "reading %s: %v", fetchPDF, err)
		}
		if doi == "" {
			exitWithError(ExitDataError, "no DOI found in %s", fetchPDF)
		}
		return doi, 0
	}

	if len(args) == 0 {
		exitWithError(ExitDataError, "enter a URL or DOI (or use --pdf)")
	}
	return args[0], 0
}

// resolveFormat picks the citation format from the flag, then the global
// config default, then zotero.
func resolveFormat() citation.Format {
	name := fetchFormat
	if name == "" {
		if cfg, err := config.LoadGlobalConfig(); err == nil {
			name = cfg.DefaultFormat
		}
	}
	if name == "" {
		return citation.FormatZotero
	}

	format, err := citation.ParseFormat(name)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return format
}

// sourceResult runs one upstream call and converts the outcome. Failures
// are captured per source so one source never suppresses the other.
func sourceResult(call func() (*citation.Result, error), source citation.Source) SourceResult {
	res, err := call()
	if err != nil {
		return SourceResult{Source: source, Error: err.Error()}
	}
	return SourceResult{
		Source:      res.Source,
		OK:          res.OK(),
		StatusCode:  res.StatusCode,
		ContentType: res.ContentType,
		RequestURL:  res.RequestURL,
		Body:        res.PrettyBody(),
		raw:         res.Body,
	}
}

// fetchExitCode maps the per-source outcomes to an exit code. Any 2xx
// means success; otherwise an upstream non-2xx outranks a local failure
// so the status the user saw is reflected.
func fetchExitCode(results []SourceResult) int {
	code := ExitError
	for _, r := range results {
		if r.OK {
			return ExitSuccess
		}
		if r.StatusCode != 0 {
			code = ExitUpstreamError
		}
	}
	return code
}

// exportResult writes the selected source's raw body to path. The bytes
// written are exactly the bytes received upstream.
func exportResult(results []SourceResult, path string) (string, error) {
	for _, r := range results {
		if string(r.Source) != fetchSource {
			continue
		}
		if r.Error != "" {
			return "", fmt.Errorf("cannot export %s result: %s", r.Source, r.Error)
		}
		if !r.OK {
			return "", fmt.Errorf("cannot export %s result: upstream status %d", r.Source, r.StatusCode)
		}
		if err := os.WriteFile(path, r.raw, 0644); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no result from source %q to export", fetchSource)
}

// recordHistory logs query metadata (never response bodies). History
// failures are warnings, not errors.
func recordHistory(d classify.Decision, format citation.Format, results []SourceResult) {
	dbPath := config.HistoryDBPath()
	if dbPath == "" {
		return
	}

	store, err := history.Open(dbPath)
	if err != nil {
		warn("history unavailable: %v", err)
		return
	}
	defer store.Close()

	for _, r := range results {
		entry := history.Entry{
			Input:      d.Value,
			Kind:       string(d.Kind),
			Format:     string(format),
			Source:     string(r.Source),
			StatusCode: r.StatusCode,
		}
		if err := store.Record(entry); err != nil {
			warn("recording history: %v", err)
			return
		}
	}
}

// printFetchHuman prints the fetch result in human-readable format.
func printFetchHuman(out FetchResult) {
	fmt.Printf("Input: %s (%s)\nFormat: %s\n", out.Input, out.Kind, out.Format)

	for _, r := range out.Results {
		fmt.Printf("\n--- %s ---\n", r.Source)
		if r.Error != "" {
			fmt.Printf("failed: %s\n", r.Error)
			continue
		}
		fmt.Printf("Request: %s\nStatus:  %d\n\n%s\n", r.RequestURL, r.StatusCode, r.Body)
	}

	if out.OutPath != "" {
		fmt.Printf("\nSaved to %s\n", out.OutPath)
	}
}
