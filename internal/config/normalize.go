package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeContentStore()
	c.normalizeLedger()
	c.normalizeLogging()
	c.Identity.Creator = strings.TrimSpace(c.Identity.Creator)
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeContentStore() {
	c.ContentStore.Backend = strings.ToLower(strings.TrimSpace(c.ContentStore.Backend))
	if c.ContentStore.Backend == "" {
		c.ContentStore.Backend = defaultContentStoreBackend
	}
	c.ContentStore.GatewayURL = strings.TrimRight(strings.TrimSpace(c.ContentStore.GatewayURL), "/")
	if c.ContentStore.GatewayURL == "" {
		c.ContentStore.GatewayURL = defaultGatewayURL
	}
	if c.ContentStore.TimeoutSeconds <= 0 {
		c.ContentStore.TimeoutSeconds = defaultContentStoreTimeout
	}
}

func (c *Config) normalizeLedger() {
	c.Ledger.Backend = strings.ToLower(strings.TrimSpace(c.Ledger.Backend))
	if c.Ledger.Backend == "" {
		c.Ledger.Backend = defaultLedgerBackend
	}
	if strings.TrimSpace(c.Ledger.DBPath) == "" {
		c.Ledger.DBPath = filepath.Join(c.Paths.DataDir, "ledger.db")
	} else if expanded, err := expandPath(c.Ledger.DBPath); err == nil {
		c.Ledger.DBPath = expanded
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
