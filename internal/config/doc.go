// Package config loads, normalizes, and validates the lapse configuration
// file. Values are TOML; CLI flags override individual fields after Load.
package config
