package testsupport

import (
	"path/filepath"
	"testing"

	"catalogage/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Lookups are disabled unless WithLookupServer is applied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Lookup.Enabled = false
	cfgVal.Lookup.APIKey = ""
	cfgVal.Lookup.RequestsPerSecond = 100

	builder := &configBuilder{
		t:   t,
		cfg: &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLookupServer enables lookups against baseURL (typically an httptest server).
func WithLookupServer(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Lookup.Enabled = true
		b.cfg.Lookup.BaseURL = baseURL
	}
}

// WithSwitchPolicy overrides the inline edit switch policy.
func WithSwitchPolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Editing.SwitchPolicy = policy
	}
}

// WithStrictImport turns on strict import validation.
func WithStrictImport() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Import.Strict = true
	}
}
