// Package config holds the estimation configuration: regional rate bands,
// activity split weights, per-tier base hours, and the historical estimator
// bands. The configuration is loaded once at startup and treated as
// immutable; every knob has a compiled-in default so the tool runs with no
// config file at all.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "repoaudit.toml"

// RateBand is an hourly rate range in a single currency.
type RateBand struct {
	Min      float64 `json:"min" toml:"min" mapstructure:"min"`
	Max      float64 `json:"max" toml:"max" mapstructure:"max"`
	Currency string  `json:"currency" toml:"currency" mapstructure:"currency"`
}

// RatesConfig holds the regional rate bands used for cost conversion.
type RatesConfig struct {
	EU RateBand `json:"eu" toml:"eu" mapstructure:"eu"`
	UA RateBand `json:"ua" toml:"ua" mapstructure:"ua"`
}

// ActivityWeights is the proportional split of estimated hours into the five
// activity buckets. The weights must sum to 1.0.
type ActivityWeights struct {
	Analysis      float64 `json:"analysis" toml:"analysis" mapstructure:"analysis"`
	Design        float64 `json:"design" toml:"design" mapstructure:"design"`
	Development   float64 `json:"development" toml:"development" mapstructure:"development"`
	QA            float64 `json:"qa" toml:"qa" mapstructure:"qa"`
	Documentation float64 `json:"documentation" toml:"documentation" mapstructure:"documentation"`
}

// Sum returns the total of all five weights.
func (w ActivityWeights) Sum() float64 {
	return w.Analysis + w.Design + w.Development + w.QA + w.Documentation
}

// HourTriple is a min/typical/max base-hours band for one complexity tier.
type HourTriple struct {
	Min     float64 `json:"min" toml:"min" mapstructure:"min"`
	Typical float64 `json:"typical" toml:"typical" mapstructure:"typical"`
	Max     float64 `json:"max" toml:"max" mapstructure:"max"`
}

// BaseHoursConfig maps each complexity tier to its base-hours band.
type BaseHoursConfig struct {
	Small  HourTriple `json:"small" toml:"small" mapstructure:"small"`
	Medium HourTriple `json:"medium" toml:"medium" mapstructure:"medium"`
	Large  HourTriple `json:"large" toml:"large" mapstructure:"large"`
	XLarge HourTriple `json:"xlarge" toml:"xlarge" mapstructure:"xlarge"`
}

// HistoricalConfig holds the bands used by the git-velocity estimator.
type HistoricalConfig struct {
	CommitsPerActiveDay float64 `json:"commits_per_active_day" toml:"commits_per_active_day" mapstructure:"commits_per_active_day"`
	HoursPerDayMin      float64 `json:"hours_per_day_min" toml:"hours_per_day_min" mapstructure:"hours_per_day_min"`
	HoursPerDayMax      float64 `json:"hours_per_day_max" toml:"hours_per_day_max" mapstructure:"hours_per_day_max"`
	HoursPerPersonMonth float64 `json:"hours_per_person_month" toml:"hours_per_person_month" mapstructure:"hours_per_person_month"`
	MinCommits          int     `json:"min_commits" toml:"min_commits" mapstructure:"min_commits"`
	MinAuthors          int     `json:"min_authors" toml:"min_authors" mapstructure:"min_authors"`
	HighCommits         int     `json:"high_commits" toml:"high_commits" mapstructure:"high_commits"`
	HighAuthors         int     `json:"high_authors" toml:"high_authors" mapstructure:"high_authors"`
}

// CalibrationConfig bounds the feedback-loop adjustment.
type CalibrationConfig struct {
	MinSamples    int     `json:"min_samples" toml:"min_samples" mapstructure:"min_samples"`
	MinAdjustment float64 `json:"min_adjustment" toml:"min_adjustment" mapstructure:"min_adjustment"`
	MaxAdjustment float64 `json:"max_adjustment" toml:"max_adjustment" mapstructure:"max_adjustment"`
}

// Config is the complete repoaudit configuration.
type Config struct {
	Rates       RatesConfig       `json:"rates" toml:"rates" mapstructure:"rates"`
	Activity    ActivityWeights   `json:"activity" toml:"activity" mapstructure:"activity"`
	BaseHours   BaseHoursConfig   `json:"base_hours" toml:"base_hours" mapstructure:"base_hours"`
	Historical  HistoricalConfig  `json:"historical" toml:"historical" mapstructure:"historical"`
	Calibration CalibrationConfig `json:"calibration" toml:"calibration" mapstructure:"calibration"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Rates: RatesConfig{
			EU: RateBand{Min: 60, Max: 95, Currency: "EUR"},
			UA: RateBand{Min: 30, Max: 50, Currency: "USD"},
		},
		Activity: ActivityWeights{
			Analysis:      0.10,
			Design:        0.15,
			Development:   0.45,
			QA:            0.20,
			Documentation: 0.10,
		},
		BaseHours: BaseHoursConfig{
			Small:  HourTriple{Min: 80, Typical: 160, Max: 280},
			Medium: HourTriple{Min: 240, Typical: 420, Max: 700},
			Large:  HourTriple{Min: 600, Typical: 1000, Max: 1600},
			XLarge: HourTriple{Min: 1200, Typical: 2000, Max: 3200},
		},
		Historical: HistoricalConfig{
			CommitsPerActiveDay: 3,
			HoursPerDayMin:      4,
			HoursPerDayMax:      6,
			HoursPerPersonMonth: 160,
			MinCommits:          20,
			MinAuthors:          2,
			HighCommits:         100,
			HighAuthors:         3,
		},
		Calibration: CalibrationConfig{
			MinSamples:    3,
			MinAdjustment: 0.5,
			MaxAdjustment: 2.0,
		},
	}
}

// Load reads configuration from the given path, or from repoaudit.toml in
// the working directory when path is empty. A missing file is not an error
// in that case: the defaults apply. An explicitly named file must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("repoaudit")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && (errors.As(err, &notFound) || os.IsNotExist(err)) {
			cfg := Default()
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal on top of the defaults so partial files only override
	// the keys they set.
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the structural invariants the estimators rely on.
func (c *Config) Validate() error {
	if diff := c.Activity.Sum() - 1.0; diff > 0.001 || diff < -0.001 {
		return fmt.Errorf("activity weights must sum to 1.0, got %.3f", c.Activity.Sum())
	}

	triples := map[string]HourTriple{
		"small":  c.BaseHours.Small,
		"medium": c.BaseHours.Medium,
		"large":  c.BaseHours.Large,
		"xlarge": c.BaseHours.XLarge,
	}
	for tier, t := range triples {
		if !(t.Min < t.Typical && t.Typical < t.Max) {
			return fmt.Errorf("base hours for %s must satisfy min < typical < max", tier)
		}
	}

	if c.Rates.EU.Min <= c.Rates.UA.Min || c.Rates.EU.Max <= c.Rates.UA.Max {
		return fmt.Errorf("eu rate band must be strictly above ua rate band")
	}

	if c.Historical.CommitsPerActiveDay <= 0 {
		return fmt.Errorf("commits_per_active_day must be positive")
	}
	if c.Historical.HoursPerDayMin > c.Historical.HoursPerDayMax {
		return fmt.Errorf("hours_per_day_min must not exceed hours_per_day_max")
	}

	if c.Calibration.MinAdjustment > c.Calibration.MaxAdjustment {
		return fmt.Errorf("calibration min_adjustment must not exceed max_adjustment")
	}
	return nil
}

// WriteDefault writes the compiled-in defaults as a TOML config file.
// Fails if the file already exists.
func WriteDefault(path string) error {
	if path == "" {
		path = DefaultFileName
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	data, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
