package testsupport

import (
	"path/filepath"
	"testing"

	"lapse/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DestDir = filepath.Join(base, "timelapses")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Catalog.Enabled = true
	cfgVal.Catalog.Path = filepath.Join(base, "catalog.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithGapThreshold overrides the sequence gap threshold on the test config.
func WithGapThreshold(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Import.GapThreshold = n
	}
}

// WithPrefix overrides the destination directory prefix on the test config.
func WithPrefix(prefix string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Import.Prefix = prefix
	}
}

// WithVerify enables checksum verification of copied files.
func WithVerify() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Import.Verify = true
	}
}

// WithCatalogDisabled turns off import history persistence.
func WithCatalogDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DestDir)
}
