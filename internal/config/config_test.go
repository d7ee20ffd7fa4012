package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"catalogage/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("GOOGLE_BOOKS_API_KEY", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "catalogage", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "catalogage")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "catalog.db") {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath())
	}
	if cfg.LockPath() != filepath.Join(wantData, "catalogage.lock") {
		t.Fatalf("unexpected lock path %q", cfg.LockPath())
	}
	if !cfg.Lookup.Enabled {
		t.Fatal("expected lookup enabled by default")
	}
	if cfg.Lookup.BaseURL != config.Default().Lookup.BaseURL {
		t.Fatalf("unexpected lookup base url %q", cfg.Lookup.BaseURL)
	}
	if cfg.LookupTimeout().Seconds() != 10 {
		t.Fatalf("unexpected lookup timeout %v", cfg.LookupTimeout())
	}
	if !cfg.CommitOnSwitch() {
		t.Fatal("expected commit-on-switch by default")
	}
	if cfg.Import.Strict {
		t.Fatal("expected lenient import by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadProjectFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	project := t.TempDir()
	t.Chdir(project)

	dataDir := filepath.Join(project, "data")
	contents := "[paths]\ndata_dir = \"" + filepath.ToSlash(dataDir) + "\"\n"
	if err := os.WriteFile(filepath.Join(project, "catalogage.toml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected project config to be found")
	}
	if filepath.Base(resolved) != "catalogage.toml" {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Paths.DataDir != dataDir {
		t.Fatalf("unexpected data dir %q", cfg.Paths.DataDir)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "catalogage.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Lookup struct {
			APIKey            string  `toml:"api_key"`
			BaseURL           string  `toml:"base_url"`
			TimeoutSeconds    int     `toml:"timeout_seconds"`
			RequestsPerSecond float64 `toml:"requests_per_second"`
		} `toml:"lookup"`
		Editing struct {
			SwitchPolicy string `toml:"switch_policy"`
		} `toml:"editing"`
		Import struct {
			Strict bool `toml:"strict"`
		} `toml:"import"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "books")
	custom.Lookup.APIKey = " abc123 "
	custom.Lookup.BaseURL = "https://example.com/books/v1/"
	custom.Lookup.TimeoutSeconds = 3
	custom.Lookup.RequestsPerSecond = 5
	custom.Editing.SwitchPolicy = "Cancel"
	custom.Import.Strict = true
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.DataDir != filepath.Join(tempDir, "books") {
		t.Fatalf("unexpected data dir %q", cfg.Paths.DataDir)
	}
	if cfg.Lookup.APIKey != "abc123" {
		t.Fatalf("expected trimmed API key, got %q", cfg.Lookup.APIKey)
	}
	if cfg.Lookup.BaseURL != "https://example.com/books/v1" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Lookup.BaseURL)
	}
	if cfg.Lookup.TimeoutSeconds != 3 || cfg.Lookup.RequestsPerSecond != 5 {
		t.Fatalf("unexpected lookup settings %+v", cfg.Lookup)
	}
	if cfg.CommitOnSwitch() {
		t.Fatal("expected cancel switch policy")
	}
	if !cfg.Import.Strict {
		t.Fatal("expected strict import")
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Logging.Format)
	}
}

func TestAPIKeyFallsBackToEnvironment(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "catalogage.toml")
	if err := os.WriteFile(configPath, []byte("[lookup]\nenabled = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GOOGLE_BOOKS_API_KEY", "env-key")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Lookup.APIKey != "env-key" {
		t.Fatalf("expected API key from env, got %q", cfg.Lookup.APIKey)
	}

	if err := os.WriteFile(configPath, []byte("[lookup]\napi_key = \"file-key\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err = config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Lookup.APIKey != "file-key" {
		t.Fatalf("expected file API key to win, got %q", cfg.Lookup.APIKey)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "catalogage.toml")
	if err := os.WriteFile(configPath, []byte("[lookup]\nbogus = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "switch_policy") {
		t.Fatalf("sample config missing editing section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.DataDir, "catalogage") {
		t.Fatalf("expected data dir to contain catalogage, got %q", cfg.Paths.DataDir)
	}
	if cfg.Editing.SwitchPolicy != config.SwitchPolicyCommit {
		t.Fatalf("unexpected sample switch policy %q", cfg.Editing.SwitchPolicy)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := map[string]func(*config.Config){
		"timeout":      func(c *config.Config) { c.Lookup.TimeoutSeconds = -1 },
		"rate":         func(c *config.Config) { c.Lookup.RequestsPerSecond = -2 },
		"base url":     func(c *config.Config) { c.Lookup.BaseURL = "not a url" },
		"policy":       func(c *config.Config) { c.Editing.SwitchPolicy = "ask" },
		"level":        func(c *config.Config) { c.Logging.Level = "verbose" },
		"missing data": func(c *config.Config) { c.Paths.DataDir = "" },
	}
	for name, mutate := range cases {
		cfg := config.Default()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}

	cfg := config.Default()
	cfg.Lookup.Enabled = false
	cfg.Lookup.BaseURL = "not a url"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled lookup should not validate base url: %v", err)
	}
}
