// Package config manages the goradius encoding profile using koanf/v2.
//
// Supports YAML files and environment variables; command-line flags are
// not read by this package.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dantte-lp/goradius/internal/raddict"
)

// -------------------------------------------------------------------------
// Configuration Structures
// -------------------------------------------------------------------------

// Config holds the complete goradius encoding profile.
type Config struct {
	Metrics MetricsConfig  `koanf:"metrics"`
	Log     LogConfig      `koanf:"log"`
	RADIUS  RADIUSConfig   `koanf:"radius"`
	Vendors []VendorConfig `koanf:"vendors"`
}

// MetricsConfig holds the Prometheus metrics endpoint configuration.
type MetricsConfig struct {
	// Addr is the HTTP listen address for the metrics endpoint (e.g., ":9100").
	Addr string `koanf:"addr"`
	// Path is the URL path for the metrics endpoint (e.g., "/metrics").
	Path string `koanf:"path"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	// Format is the log output format: "json" or "text".
	Format string `koanf:"format"`
}

// RADIUSConfig holds the shared secret and default packet code the
// encoding profile applies to the fixture AVP lists it encodes.
type RADIUSConfig struct {
	// Secret is the shared secret used by the encryption kernels (C1).
	Secret string `koanf:"secret"`
	// DefaultCode is the RADIUS code (Access-Request=1, Access-Accept=2, ...)
	// applied when a fixture doesn't specify one.
	DefaultCode uint8 `koanf:"default_code"`
}

// VendorConfig describes one enterprise's inner VSA header widths,
// overlaid on top of raddict.DefaultVendors().
type VendorConfig struct {
	Number      uint32 `koanf:"number"`
	Name        string `koanf:"name"`
	TypeWidth   int    `koanf:"type_width"`
	LengthWidth int    `koanf:"length_width"`
}

// VendorTable merges the configured vendor overrides on top of
// raddict.DefaultVendors(), so a profile can add or override enterprise
// numbers without losing the Cisco/Microsoft/WiMAX built-ins.
func (c *Config) VendorTable() raddict.StaticVendorTable {
	table := raddict.DefaultVendors()
	for _, v := range c.Vendors {
		table[v.Number] = raddict.Vendor{
			Number: v.Number, Name: v.Name,
			TypeWidth: v.TypeWidth, LengthWidth: v.LengthWidth,
		}
	}
	return table
}

// -------------------------------------------------------------------------
// Defaults
// -------------------------------------------------------------------------

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Metrics: MetricsConfig{
			Addr: ":9100",
			Path: "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		RADIUS: RADIUSConfig{
			DefaultCode: CodeAccessRequest,
		},
	}
}

// CodeAccessRequest mirrors internal/radius.CodeAccessRequest without
// importing the encoder package, so config stays a leaf dependency.
const CodeAccessRequest = 1

// -------------------------------------------------------------------------
// Loader
// -------------------------------------------------------------------------

// envPrefix is the environment variable prefix for goradius configuration.
// Variables are named RADENCODE_<section>_<key>, e.g., RADENCODE_RADIUS_SECRET.
const envPrefix = "RADENCODE_"

// Load reads configuration from a YAML file at path, overlays environment
// variable overrides (RADENCODE_ prefix), and merges on top of
// DefaultConfig(). Missing fields inherit defaults.
//
// Environment variable mapping:
//
//	RADENCODE_RADIUS_SECRET       -> radius.secret
//	RADENCODE_RADIUS_DEFAULT_CODE -> radius.default_code
//	RADENCODE_METRICS_ADDR        -> metrics.addr
//	RADENCODE_METRICS_PATH        -> metrics.path
//	RADENCODE_LOG_LEVEL           -> log.level
//	RADENCODE_LOG_FORMAT          -> log.format
//
// Uses koanf/v2 with file + env providers and YAML parser.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load config from %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config from %s: %w", path, err)
	}

	return cfg, nil
}

// envKeyMapper transforms RADENCODE_RADIUS_SECRET -> radius.secret.
// Strips the RADENCODE_ prefix, lowercases, and replaces the first _ (the
// section separator) with ., so RADENCODE_RADIUS_DEFAULT_CODE becomes
// radius.default_code.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.Replace(s, "_", ".", 1)
}

// loadDefaults marshals the default config into koanf as the base layer.
func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"metrics.addr":        defaults.Metrics.Addr,
		"metrics.path":        defaults.Metrics.Path,
		"log.level":           defaults.Log.Level,
		"log.format":          defaults.Log.Format,
		"radius.secret":       defaults.RADIUS.Secret,
		"radius.default_code": defaults.RADIUS.DefaultCode,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Validation
// -------------------------------------------------------------------------

// Validation errors.
var (
	// ErrEmptyMetricsAddr indicates the metrics listen address is empty.
	ErrEmptyMetricsAddr = errors.New("metrics.addr must not be empty")

	// ErrEmptySecret indicates the shared secret is empty.
	ErrEmptySecret = errors.New("radius.secret must not be empty")

	// ErrInvalidVendorWidths indicates a configured vendor has a
	// type_width/length_width combination outside {1,2,4}/{0,1,2}.
	ErrInvalidVendorWidths = errors.New("vendor type_width/length_width out of range")

	// ErrDuplicateVendor indicates two vendor entries share an enterprise number.
	ErrDuplicateVendor = errors.New("duplicate vendor number")
)

// Validate checks the configuration for logical errors.
// Returns the first validation error encountered.
func Validate(cfg *Config) error {
	if cfg.Metrics.Addr == "" {
		return ErrEmptyMetricsAddr
	}
	if cfg.RADIUS.Secret == "" {
		return ErrEmptySecret
	}
	if err := validateVendors(cfg.Vendors); err != nil {
		return err
	}
	return nil
}

// validateVendors checks each configured vendor override for correctness.
func validateVendors(vendors []VendorConfig) error {
	seen := make(map[uint32]struct{}, len(vendors))

	for i, v := range vendors {
		switch v.TypeWidth {
		case 1, 2, 4:
		default:
			return fmt.Errorf("vendors[%d] type_width %d: %w", i, v.TypeWidth, ErrInvalidVendorWidths)
		}
		switch v.LengthWidth {
		case 0, 1, 2:
		default:
			return fmt.Errorf("vendors[%d] length_width %d: %w", i, v.LengthWidth, ErrInvalidVendorWidths)
		}

		if _, dup := seen[v.Number]; dup {
			return fmt.Errorf("vendors[%d] number %d: %w", i, v.Number, ErrDuplicateVendor)
		}
		seen[v.Number] = struct{}{}
	}

	return nil
}

// -------------------------------------------------------------------------
// Log Level Parsing
// -------------------------------------------------------------------------

// ParseLogLevel maps a configuration log level string to the corresponding
// slog.Level. Unknown values default to slog.LevelInfo.
//
// Recognized values: "debug", "info", "warn", "error" (case-insensitive).
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
