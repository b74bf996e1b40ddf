package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateImport(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateImport() error {
	if c.Import.GapThreshold < 1 {
		return errors.New("import.gap_threshold must be positive")
	}
	if c.Import.MinFreeMiB < 0 {
		return errors.New("import.min_free_mib must be >= 0")
	}
	if c.Import.Prefix != "" && strings.ContainsAny(c.Import.Prefix, "/\\") {
		return fmt.Errorf("import.prefix %q must not contain path separators", c.Import.Prefix)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.Enabled && strings.TrimSpace(c.Catalog.Path) == "" {
		return errors.New("catalog.path must be set when catalog.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
