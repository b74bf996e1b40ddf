package config

import (
	"fmt"
	"strings"
)

// normalize trims and expands user-supplied values so the rest of the
// program only ever sees absolute paths and lowercase extensions.
func (c *Config) normalize() error {
	var err error

	c.Paths.DestDir = strings.TrimSpace(c.Paths.DestDir)
	if c.Paths.DestDir != "" {
		if c.Paths.DestDir, err = expandPath(c.Paths.DestDir); err != nil {
			return err
		}
	}

	c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir)
	if c.Paths.LogDir == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}

	c.Catalog.Path = strings.TrimSpace(c.Catalog.Path)
	if c.Catalog.Path == "" {
		c.Catalog.Path = defaultCatalogPath
	}
	if c.Catalog.Path, err = expandPath(c.Catalog.Path); err != nil {
		return err
	}

	c.Import.Prefix = strings.TrimSpace(c.Import.Prefix)

	if len(c.Import.Extensions) == 0 {
		c.Import.Extensions = append([]string(nil), defaultExtensions...)
	}
	for i, ext := range c.Import.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			return fmt.Errorf("import.extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Import.Extensions[i] = ext
	}

	c.Watch.Device = strings.TrimSpace(c.Watch.Device)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
