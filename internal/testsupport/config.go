package testsupport

import (
	"path/filepath"
	"testing"

	"vitrine/internal/config"
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
	cfgVal.Identity.Creator = "test-creator"
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.ContentStore.Backend = "memory"
	cfgVal.Ledger.DBPath = filepath.Join(base, "data", "ledger.db")

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

// WithCreator sets the acting identity on the test config.
func WithCreator(creator string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Identity.Creator = creator
	}
}

// WithGateway switches the content store to a gateway backend at url.
func WithGateway(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.ContentStore.Backend = "gateway"
		b.cfg.ContentStore.GatewayURL = url
	}
}

// WithRemixFee sets the remix fee on the test config.
func WithRemixFee(amount int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Publish.RemixFee = amount
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
