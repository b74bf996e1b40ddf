package config

const (
	defaultLogDir      = "~/.local/share/lapse/logs"
	defaultCatalogPath = "~/.local/share/lapse/catalog.db"
	defaultPrefix      = "timelapse"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"

	// defaultGapThreshold is the largest jump between consecutive filename
	// sequence numbers still treated as one timelapse run. Camera firmware
	// occasionally skips a handful of frames; anything bigger marks a new run.
	defaultGapThreshold = 5

	// defaultMinFreeMiB is headroom required on the destination filesystem
	// beyond the byte size of the sequence being exported.
	defaultMinFreeMiB = 64
)

var defaultExtensions = []string{".jpg", ".jpeg"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Import: Import{
			Prefix:       defaultPrefix,
			GapThreshold: defaultGapThreshold,
			Extensions:   append([]string(nil), defaultExtensions...),
			MinFreeMiB:   defaultMinFreeMiB,
		},
		Catalog: Catalog{
			Enabled: true,
			Path:    defaultCatalogPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
