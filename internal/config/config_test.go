package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("compiled-in defaults failed validation: %v", err)
	}
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.Rates.EU.Currency != "EUR" || cfg.Rates.UA.Currency != "USD" {
		t.Errorf("unexpected currencies: eu=%s ua=%s", cfg.Rates.EU.Currency, cfg.Rates.UA.Currency)
	}
	if sum := cfg.Activity.Sum(); sum < 0.999 || sum > 1.001 {
		t.Errorf("activity weights sum = %f, want 1.0", sum)
	}
	if cfg.BaseHours.Small.Typical != 160 || cfg.BaseHours.XLarge.Typical != 2000 {
		t.Errorf("unexpected base hours: small=%+v xlarge=%+v",
			cfg.BaseHours.Small, cfg.BaseHours.XLarge)
	}
	if cfg.Calibration.MinSamples != 3 {
		t.Errorf("calibration min samples = %d, want 3", cfg.Calibration.MinSamples)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "weights off by too much",
			mutate:  func(c *Config) { c.Activity.Development = 0.6 },
			wantErr: "sum to 1.0",
		},
		{
			name:    "inverted hour triple",
			mutate:  func(c *Config) { c.BaseHours.Medium = HourTriple{Min: 700, Typical: 420, Max: 240} },
			wantErr: "min < typical < max",
		},
		{
			name:    "ua band above eu band",
			mutate:  func(c *Config) { c.Rates.UA = RateBand{Min: 100, Max: 200, Currency: "USD"} },
			wantErr: "strictly above",
		},
		{
			name:    "zero commit cadence",
			mutate:  func(c *Config) { c.Historical.CommitsPerActiveDay = 0 },
			wantErr: "must be positive",
		},
		{
			name:    "inverted calibration bounds",
			mutate:  func(c *Config) { c.Calibration.MinAdjustment = 3.0 },
			wantErr: "min_adjustment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadPartialFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repoaudit.toml")
	content := `
[rates.eu]
min = 70.0
max = 110.0
currency = "EUR"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Rates.EU.Min != 70 || cfg.Rates.EU.Max != 110 {
		t.Errorf("eu band not overridden: %+v", cfg.Rates.EU)
	}
	// Untouched sections keep their defaults.
	if cfg.Rates.UA.Min != 30 {
		t.Errorf("ua band lost its default: %+v", cfg.Rates.UA)
	}
	if cfg.BaseHours.Medium.Typical != 420 {
		t.Errorf("base hours lost their default: %+v", cfg.BaseHours.Medium)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repoaudit.toml")
	content := `
[activity]
analysis = 0.9
design = 0.9
development = 0.9
qa = 0.9
documentation = 0.9
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for broken weights")
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repoaudit.toml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("written defaults failed to load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("round-tripped config differs from defaults:\ngot  %+v\nwant %+v", cfg, Default())
	}

	if err := WriteDefault(path); err == nil {
		t.Fatal("expected error when overwriting an existing file")
	}
}
