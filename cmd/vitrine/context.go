package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"vitrine/internal/config"
	"vitrine/internal/contentstore"
	"vitrine/internal/ledger"
	"vitrine/internal/logging"
	"vitrine/internal/publish"
	"vitrine/internal/workspace"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configPathFlag() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// env bundles the collaborators a publish-side command needs. The ledger
// handle must be released via close once the command finishes.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    contentstore.Store
	ledger   *ledger.Store
	session  *ledger.Session
	pipeline *publish.Pipeline
	tracker  *workspace.Tracker
}

func (e *env) close() {
	if e.ledger != nil {
		e.ledger.Close()
	}
}

// withEnv opens the configured collaborators, runs fn, and releases them.
func (c *commandContext) withEnv(fn func(*env) error) error {
	e, err := c.buildEnv()
	if err != nil {
		return err
	}
	defer e.close()
	return fn(e)
}

func (c *commandContext) buildEnv() (*env, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	store, err := buildContentStore(cfg)
	if err != nil {
		return nil, err
	}

	ledgerStore, err := ledger.Open(cfg.Ledger.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	session := ledgerStore.Session(cfg.Identity.Creator)

	pipeline := publish.New(store, session, logger, publish.Options{
		Actor:            cfg.Identity.Creator,
		RemixFee:         cfg.Publish.RemixFee,
		DefaultRemixable: cfg.Publish.DefaultRemixable,
	})

	return &env{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		ledger:   ledgerStore,
		session:  session,
		pipeline: pipeline,
		tracker:  workspace.NewTracker(cfg.Paths.DataDir),
	}, nil
}

func buildContentStore(cfg *config.Config) (contentstore.Store, error) {
	switch cfg.ContentStore.Backend {
	case "memory":
		return contentstore.NewMemory(), nil
	case "gateway":
		return contentstore.NewGateway(contentstore.GatewayOptions{
			BaseURL: cfg.ContentStore.GatewayURL,
			Timeout: time.Duration(cfg.ContentStore.TimeoutSeconds) * time.Second,
		}), nil
	default:
		return nil, fmt.Errorf("unknown content store backend %q", cfg.ContentStore.Backend)
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
