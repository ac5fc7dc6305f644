package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateIdentity(); err != nil {
		return err
	}
	if err := c.validateContentStore(); err != nil {
		return err
	}
	if err := c.validateLedger(); err != nil {
		return err
	}
	if err := c.validatePublish(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateIdentity() error {
	if c.Identity.Creator == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/vitrine/config.toml"
		}
		return fmt.Errorf("identity.creator is required. Edit %s (create with 'vitrine config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateContentStore() error {
	switch c.ContentStore.Backend {
	case "gateway":
		if c.ContentStore.GatewayURL == "" {
			return errors.New("content_store.gateway_url must be set for the gateway backend")
		}
		if !strings.HasPrefix(c.ContentStore.GatewayURL, "http://") && !strings.HasPrefix(c.ContentStore.GatewayURL, "https://") {
			return fmt.Errorf("content_store.gateway_url must be an http(s) URL, got %q", c.ContentStore.GatewayURL)
		}
	case "memory":
	default:
		return fmt.Errorf("content_store.backend must be \"gateway\" or \"memory\", got %q", c.ContentStore.Backend)
	}
	return nil
}

func (c *Config) validateLedger() error {
	switch c.Ledger.Backend {
	case "local":
		if strings.TrimSpace(c.Ledger.DBPath) == "" {
			return errors.New("ledger.db_path must be set for the local backend")
		}
	default:
		return fmt.Errorf("ledger.backend must be \"local\", got %q", c.Ledger.Backend)
	}
	return nil
}

func (c *Config) validatePublish() error {
	if c.Publish.RemixFee < 0 {
		return errors.New("publish.remix_fee must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
