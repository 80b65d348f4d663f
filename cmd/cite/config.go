package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmik-network/citefetch/internal/citation"
	"github.com/cosmik-network/citefetch/internal/config"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global configuration",
	Long: `Manage the global configuration file (~/.config/cite/config.yml).

Keys:
  zotero.api_url   Translation server base URL (enables --compare)
  zotero.api_key   Translation server API key
  default_format   Citation format used when --format is omitted

Environment variables ZOTERO_API_URL and ZOTERO_API_KEY take precedence
over the file.`,
}

// ConfigResponse is the response for config get.
type ConfigResponse struct {
	Path          string `json:"path"`
	ZoteroAPIURL  string `json:"zotero_api_url,omitempty"`
	ZoteroAPIKey  string `json:"zotero_api_key,omitempty"`
	DefaultFormat string `json:"default_format,omitempty"`
}

// UpdateResponse is the response for config set.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the global configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigGet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	resp := ConfigResponse{
		Path:          config.GlobalConfigPath(),
		ZoteroAPIURL:  cfg.Zotero.APIURL,
		ZoteroAPIKey:  cfg.Zotero.APIKey,
		DefaultFormat: cfg.DefaultFormat,
	}

	if humanOutput {
		fmt.Printf("config file: %s\n", resp.Path)
		fmt.Printf("  zotero.api_url:  %s\n", orUnset(resp.ZoteroAPIURL))
		fmt.Printf("  zotero.api_key:  %s\n", orUnset(resp.ZoteroAPIKey))
		fmt.Printf("  default_format:  %s\n", orUnset(resp.DefaultFormat))
	} else {
		outputJSON(resp)
	}
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a global configuration value",
	Long: `Set a global configuration value.

Examples:
  cite config set zotero.api_url http://localhost:1969
  cite config set zotero.api_key secret123
  cite config set default_format bibtex`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	switch key {
	case "zotero.api_url":
		cfg.Zotero.APIURL = value
	case "zotero.api_key":
		cfg.Zotero.APIKey = value
	case "default_format":
		format, err := citation.ParseFormat(value)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		cfg.DefaultFormat = string(format)
	default:
		exitWithError(ExitError, "unknown config key: %s (valid: zotero.api_url, zotero.api_key, default_format)", key)
	}

	if err := config.SaveGlobalConfig(cfg); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("set %s\n", key)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}
