package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"lapse/internal/catalog"
	"lapse/internal/config"
	"lapse/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
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

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil || cfg == nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Writer: os.Stderr,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// openCatalog returns the history store, or nil when the catalog is
// disabled or unavailable. Catalog problems never block a command.
func (c *commandContext) openCatalog() *catalog.Store {
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil || !cfg.Catalog.Enabled {
		return nil
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		c.ensureLogger().Warn("import history unavailable", logging.Error(err))
		return nil
	}
	return store
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
