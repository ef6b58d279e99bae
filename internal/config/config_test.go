package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dantte-lp/goradius/internal/config"
	"github.com/dantte-lp/goradius/internal/raddict"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, ":9100")
	}

	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/metrics")
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}

	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "json")
	}

	if cfg.RADIUS.DefaultCode != config.CodeAccessRequest {
		t.Errorf("RADIUS.DefaultCode = %d, want %d", cfg.RADIUS.DefaultCode, config.CodeAccessRequest)
	}

	// Defaults fail validation because the secret is empty; a real
	// profile must always supply one.
	if err := config.Validate(cfg); !errors.Is(err, config.ErrEmptySecret) {
		t.Errorf("Validate(DefaultConfig()) = %v, want ErrEmptySecret", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	t.Parallel()

	yamlContent := `
radius:
  secret: "testing123"
  default_code: 2
metrics:
  addr: ":9200"
  path: "/custom-metrics"
log:
  level: "debug"
  format: "text"
vendors:
  - number: 12345
    name: example
    type_width: 2
    length_width: 1
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.RADIUS.Secret != "testing123" {
		t.Errorf("RADIUS.Secret = %q, want %q", cfg.RADIUS.Secret, "testing123")
	}

	if cfg.RADIUS.DefaultCode != 2 {
		t.Errorf("RADIUS.DefaultCode = %d, want %d", cfg.RADIUS.DefaultCode, 2)
	}

	if cfg.Metrics.Addr != ":9200" {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, ":9200")
	}

	if cfg.Metrics.Path != "/custom-metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/custom-metrics")
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}

	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "text")
	}

	if len(cfg.Vendors) != 1 || cfg.Vendors[0].Number != 12345 {
		t.Fatalf("Vendors = %+v, want one entry with number 12345", cfg.Vendors)
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	t.Parallel()

	// Partial YAML: only override radius.secret and log.level.
	// Everything else should inherit from defaults.
	yamlContent := `
radius:
  secret: "shh"
log:
  level: "warn"
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	// Overridden values.
	if cfg.RADIUS.Secret != "shh" {
		t.Errorf("RADIUS.Secret = %q, want %q", cfg.RADIUS.Secret, "shh")
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}

	// Default values should be preserved.
	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("Metrics.Addr = %q, want default %q", cfg.Metrics.Addr, ":9100")
	}

	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want default %q", cfg.Metrics.Path, "/metrics")
	}

	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want default %q", cfg.Log.Format, "json")
	}

	if cfg.RADIUS.DefaultCode != config.CodeAccessRequest {
		t.Errorf("RADIUS.DefaultCode = %d, want default %d", cfg.RADIUS.DefaultCode, config.CodeAccessRequest)
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr error
	}{
		{
			name: "empty metrics addr",
			modify: func(cfg *config.Config) {
				cfg.RADIUS.Secret = "x"
				cfg.Metrics.Addr = ""
			},
			wantErr: config.ErrEmptyMetricsAddr,
		},
		{
			name: "empty secret",
			modify: func(cfg *config.Config) {
				cfg.RADIUS.Secret = ""
			},
			wantErr: config.ErrEmptySecret,
		},
		{
			name: "invalid vendor type width",
			modify: func(cfg *config.Config) {
				cfg.RADIUS.Secret = "x"
				cfg.Vendors = []config.VendorConfig{{Number: 1, TypeWidth: 3, LengthWidth: 1}}
			},
			wantErr: config.ErrInvalidVendorWidths,
		},
		{
			name: "invalid vendor length width",
			modify: func(cfg *config.Config) {
				cfg.RADIUS.Secret = "x"
				cfg.Vendors = []config.VendorConfig{{Number: 1, TypeWidth: 1, LengthWidth: 3}}
			},
			wantErr: config.ErrInvalidVendorWidths,
		},
		{
			name: "duplicate vendor number",
			modify: func(cfg *config.Config) {
				cfg.RADIUS.Secret = "x"
				cfg.Vendors = []config.VendorConfig{
					{Number: 9, TypeWidth: 1, LengthWidth: 1},
					{Number: 9, TypeWidth: 1, LengthWidth: 1},
				}
			},
			wantErr: config.ErrDuplicateVendor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.modify(cfg)

			err := config.Validate(cfg)
			if err == nil {
				t.Fatal("Validate() returned nil, want error")
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "DEBUG", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "WARN", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "Error", want: slog.LevelError},
		{input: "unknown", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "trace", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := config.ParseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/path/config.yml")
	if err == nil {
		t.Fatal("Load() returned nil error for nonexistent file")
	}
}

func TestVendorTableOverlaysDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.RADIUS.Secret = "x"
	cfg.Vendors = []config.VendorConfig{
		{Number: 9, Name: "cisco-wide", TypeWidth: 2, LengthWidth: 2},
		{Number: 424242, Name: "custom", TypeWidth: 1, LengthWidth: 1},
	}

	table := cfg.VendorTable()

	cisco, ok := table.Lookup(9)
	if !ok {
		t.Fatal("VendorTable() lost the built-in Cisco entry")
	}
	if cisco.TypeWidth != 2 || cisco.LengthWidth != 2 {
		t.Errorf("Cisco override = %+v, want TypeWidth=2 LengthWidth=2", cisco)
	}

	if _, ok := table.Lookup(raddict.WiMAXEnterpriseNumber); !ok {
		t.Error("VendorTable() lost the built-in WiMAX entry")
	}

	if _, ok := table.Lookup(424242); !ok {
		t.Error("VendorTable() did not add the custom vendor entry")
	}
}

// -------------------------------------------------------------------------
// Environment Variable Override Tests
// -------------------------------------------------------------------------

func TestLoadEnvOverrides(t *testing.T) {
	// Environment variable tests cannot be parallel because they modify
	// process-wide state (os.Setenv).

	yamlContent := `
radius:
  secret: "fromyaml"
log:
  level: "info"
`
	path := writeTemp(t, yamlContent)

	t.Setenv("RADENCODE_RADIUS_SECRET", "fromenv")
	t.Setenv("RADENCODE_LOG_LEVEL", "debug")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.RADIUS.Secret != "fromenv" {
		t.Errorf("RADIUS.Secret = %q, want %q (from env)", cfg.RADIUS.Secret, "fromenv")
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q (from env)", cfg.Log.Level, "debug")
	}
}

func TestLoadEnvOverridesMetrics(t *testing.T) {
	yamlContent := `
radius:
  secret: "x"
metrics:
  addr: ":9100"
  path: "/metrics"
`
	path := writeTemp(t, yamlContent)

	t.Setenv("RADENCODE_METRICS_ADDR", ":9200")
	t.Setenv("RADENCODE_METRICS_PATH", "/custom")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Metrics.Addr != ":9200" {
		t.Errorf("Metrics.Addr = %q, want %q (from env)", cfg.Metrics.Addr, ":9200")
	}

	if cfg.Metrics.Path != "/custom" {
		t.Errorf("Metrics.Path = %q, want %q (from env)", cfg.Metrics.Path, "/custom")
	}
}

// writeTemp creates a temporary YAML file and returns its path.
// The file is automatically cleaned up when the test finishes.
func writeTemp(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "radencode.yml")

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	return path
}
