package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/cosmik-network/citefetch/internal/citation"
	"github.com/cosmik-network/citefetch/internal/citoid"
	"github.com/cosmik-network/citefetch/internal/config"
	"github.com/cosmik-network/citefetch/internal/server"
	"github.com/cosmik-network/citefetch/internal/translator"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI",
	Long: `Run a local web server with an HTML form, a JSON API
(GET /api/citation?q=...&format=...&compare=1), and a download endpoint
(GET /download?q=...&format=...).

Comparison mode appears in the UI only when translator credentials are
configured.

Examples:
  cite serve
  cite serve --addr 127.0.0.1:9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	defaultFormat := citation.FormatZotero
	if cfg, err := config.LoadGlobalConfig(); err == nil && cfg.DefaultFormat != "" {
		if f, err := citation.ParseFormat(cfg.DefaultFormat); err == nil {
			defaultFormat = f
		}
	}

	var translatorClient *translator.Client
	creds := config.ResolveCredentials()
	if creds.Enabled() {
		tc, err := translator.NewClient(creds)
		if err != nil {
			exitWithError(ExitConfigError, "translator client: %v", err)
		}
		translatorClient = tc
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(citoid.NewClient(), translatorClient, defaultFormat)

	fmt.Fprintf(os.Stderr, "listening on %s (comparison mode: %v)\n", serveAddr, translatorClient != nil)
	if err := srv.Router().Run(serveAddr); err != nil {
		exitWithError(ExitError, "server: %v", err)
	}
	return nil
}
