package config

import (
	"os"
	"path/filepath"
	"testing"
)

// setConfigHome points XDG_CONFIG_HOME at a temp dir and clears the
// credential env vars and config cache for the duration of the test.
func setConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvAPIKey, "")
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)
	return dir
}

func TestLoadGlobalConfig_MissingFile(t *testing.T) {
	setConfigHome(t)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error: %v", err)
	}
	if cfg.Zotero.APIURL != "" || cfg.Zotero.APIKey != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadGlobalConfig_ReadsZoteroTable(t *testing.T) {
	dir := setConfigHome(t)

	configDir := filepath.Join(dir, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "zotero:\n  api_url: https://translate.example.org\n  api_key: secret123\ndefault_format: bibtex\n"
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error: %v", err)
	}
	if cfg.Zotero.APIURL != "https://translate.example.org" {
		t.Errorf("api_url = %q", cfg.Zotero.APIURL)
	}
	if cfg.Zotero.APIKey != "secret123" {
		t.Errorf("api_key = %q", cfg.Zotero.APIKey)
	}
	if cfg.DefaultFormat != "bibtex" {
		t.Errorf("default_format = %q", cfg.DefaultFormat)
	}
}

func TestSaveGlobalConfig_RoundTrip(t *testing.T) {
	setConfigHome(t)

	saved := &GlobalConfig{
		Zotero:        ZoteroConfig{APIURL: "http://localhost:1969", APIKey: "k"},
		DefaultFormat: "zotero",
	}
	if err := SaveGlobalConfig(saved); err != nil {
		t.Fatalf("SaveGlobalConfig() error: %v", err)
	}

	ResetGlobalConfigCache()
	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error: %v", err)
	}
	if cfg.Zotero.APIURL != saved.Zotero.APIURL || cfg.Zotero.APIKey != saved.Zotero.APIKey {
		t.Errorf("round trip mismatch: %+v", cfg.Zotero)
	}
}

func TestResolveCredentials_EnvWins(t *testing.T) {
	setConfigHome(t)

	// File credentials present
	if err := SaveGlobalConfig(&GlobalConfig{
		Zotero: ZoteroConfig{APIURL: "http://from-file", APIKey: "file-key"},
	}); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvAPIURL, "http://from-env")
	t.Setenv(EnvAPIKey, "env-key")

	creds := ResolveCredentials()
	if creds.APIURL != "http://from-env" || creds.APIKey != "env-key" {
		t.Errorf("ResolveCredentials() = %+v, want env values", creds)
	}
}

func TestResolveCredentials_FileFallback(t *testing.T) {
	setConfigHome(t)

	if err := SaveGlobalConfig(&GlobalConfig{
		Zotero: ZoteroConfig{APIURL: "http://from-file", APIKey: "file-key"},
	}); err != nil {
		t.Fatal(err)
	}

	creds := ResolveCredentials()
	if creds.APIURL != "http://from-file" || creds.APIKey != "file-key" {
		t.Errorf("ResolveCredentials() = %+v, want file values", creds)
	}
	if !creds.Enabled() {
		t.Error("Enabled() = false with api_url set")
	}
}

func TestCredentials_AbsenceDisablesComparison(t *testing.T) {
	setConfigHome(t)

	creds := ResolveCredentials()
	if creds.Enabled() {
		t.Errorf("Enabled() = true with no configuration: %+v", creds)
	}
}
