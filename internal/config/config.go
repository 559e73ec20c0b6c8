// Package config provides configuration management for the analyzer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Engine      EngineConfig      `mapstructure:"engine"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
	Data        DataConfig        `mapstructure:"data"`
	UI          UIConfig          `mapstructure:"ui"`
}

// EngineConfig holds the payoff and Greeks tunables.
type EngineConfig struct {
	RiskFreeRate     float64 `mapstructure:"risk_free_rate"`
	LongTargetRatio  float64 `mapstructure:"long_target_ratio"`
	ShortTargetRatio float64 `mapstructure:"short_target_ratio"`
	CurveLowFactor   float64 `mapstructure:"curve_low_factor"`
	CurveHighFactor  float64 `mapstructure:"curve_high_factor"`
	ChartSamples     int     `mapstructure:"chart_samples"`
	TableRows        int     `mapstructure:"table_rows"`
}

// DiagnosticsConfig holds the rule-band boundaries. Observed variants of
// the strategy disagree on some of these, so they are configuration
// rather than literals.
type DiagnosticsConfig struct {
	MinDays              int     `mapstructure:"min_days"`
	PreferredDays        int     `mapstructure:"preferred_days"`
	MoneynessFail        float64 `mapstructure:"moneyness_fail"`
	MoneynessWarn        float64 `mapstructure:"moneyness_warn"`
	LongDeltaExcellent   float64 `mapstructure:"long_delta_excellent"`
	LongDeltaGood        float64 `mapstructure:"long_delta_good"`
	LongDeltaCaution     float64 `mapstructure:"long_delta_caution"`
	ShortDeltaAssignment float64 `mapstructure:"short_delta_assignment"`
	ShortDeltaNear       float64 `mapstructure:"short_delta_near"`
	ShortDeltaIdealLow   float64 `mapstructure:"short_delta_ideal_low"`
	ShortDeltaIdealHigh  float64 `mapstructure:"short_delta_ideal_high"`
}

// DataConfig holds market-data retrieval configuration.
type DataConfig struct {
	CacheTTLMinutes       int    `mapstructure:"cache_ttl_minutes"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
	BaseURL               string `mapstructure:"base_url"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/pmcc-analyzer"
	}
	return filepath.Join(home, ".config", "pmcc-analyzer")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			RiskFreeRate:     0.045,
			LongTargetRatio:  0.60,
			ShortTargetRatio: 1.15,
			CurveLowFactor:   0.7,
			CurveHighFactor:  1.3,
			ChartSamples:     100,
			TableRows:        11,
		},
		Diagnostics: DiagnosticsConfig{
			MinDays:              180,
			PreferredDays:        365,
			MoneynessFail:        0.9,
			MoneynessWarn:        0.8,
			LongDeltaExcellent:   0.90,
			LongDeltaGood:        0.80,
			LongDeltaCaution:     0.70,
			ShortDeltaAssignment: 0.60,
			ShortDeltaNear:       0.50,
			ShortDeltaIdealLow:   0.20,
			ShortDeltaIdealHigh:  0.45,
		},
		Data: DataConfig{
			CacheTTLMinutes:       5,
			RequestTimeoutSeconds: 30,
		},
		UI: UIConfig{
			ColorEnabled: true,
			DateFormat:   "2006-01-02",
		},
	}
}

// Load loads configuration from the specified directory. If configDir is
// empty, uses the default config directory. A missing config file is not
// an error: a template is written and the defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		if err := createTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("writing config template: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("engine.risk_free_rate", cfg.Engine.RiskFreeRate)
	v.SetDefault("engine.long_target_ratio", cfg.Engine.LongTargetRatio)
	v.SetDefault("engine.short_target_ratio", cfg.Engine.ShortTargetRatio)
	v.SetDefault("engine.curve_low_factor", cfg.Engine.CurveLowFactor)
	v.SetDefault("engine.curve_high_factor", cfg.Engine.CurveHighFactor)
	v.SetDefault("engine.chart_samples", cfg.Engine.ChartSamples)
	v.SetDefault("engine.table_rows", cfg.Engine.TableRows)
	v.SetDefault("diagnostics.min_days", cfg.Diagnostics.MinDays)
	v.SetDefault("diagnostics.preferred_days", cfg.Diagnostics.PreferredDays)
	v.SetDefault("diagnostics.moneyness_fail", cfg.Diagnostics.MoneynessFail)
	v.SetDefault("diagnostics.moneyness_warn", cfg.Diagnostics.MoneynessWarn)
	v.SetDefault("diagnostics.long_delta_excellent", cfg.Diagnostics.LongDeltaExcellent)
	v.SetDefault("diagnostics.long_delta_good", cfg.Diagnostics.LongDeltaGood)
	v.SetDefault("diagnostics.long_delta_caution", cfg.Diagnostics.LongDeltaCaution)
	v.SetDefault("diagnostics.short_delta_assignment", cfg.Diagnostics.ShortDeltaAssignment)
	v.SetDefault("diagnostics.short_delta_near", cfg.Diagnostics.ShortDeltaNear)
	v.SetDefault("diagnostics.short_delta_ideal_low", cfg.Diagnostics.ShortDeltaIdealLow)
	v.SetDefault("diagnostics.short_delta_ideal_high", cfg.Diagnostics.ShortDeltaIdealHigh)
	v.SetDefault("data.cache_ttl_minutes", cfg.Data.CacheTTLMinutes)
	v.SetDefault("data.request_timeout_seconds", cfg.Data.RequestTimeoutSeconds)
	v.SetDefault("data.base_url", cfg.Data.BaseURL)
	v.SetDefault("ui.color_enabled", cfg.UI.ColorEnabled)
	v.SetDefault("ui.date_format", cfg.UI.DateFormat)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PMCC_RISK_FREE_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Engine.RiskFreeRate = rate
		}
	}
	if v := os.Getenv("PMCC_DATA_BASE_URL"); v != "" {
		cfg.Data.BaseURL = v
	}
	if v := os.Getenv("PMCC_CACHE_TTL_MINUTES"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			cfg.Data.CacheTTLMinutes = ttl
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Engine.RiskFreeRate < 0 || c.Engine.RiskFreeRate > 1 {
		return fmt.Errorf("risk_free_rate must be between 0 and 1")
	}
	if c.Engine.LongTargetRatio <= 0 || c.Engine.LongTargetRatio >= 1 {
		return fmt.Errorf("long_target_ratio must be in (0, 1)")
	}
	if c.Engine.ShortTargetRatio <= 1 {
		return fmt.Errorf("short_target_ratio must be above 1")
	}
	if c.Engine.CurveLowFactor <= 0 || c.Engine.CurveLowFactor >= c.Engine.CurveHighFactor {
		return fmt.Errorf("curve factors must satisfy 0 < low < high")
	}
	if c.Engine.ChartSamples < 2 || c.Engine.TableRows < 2 {
		return fmt.Errorf("sample counts must be at least 2")
	}
	if c.Diagnostics.MinDays < 0 || c.Diagnostics.MinDays > c.Diagnostics.PreferredDays {
		return fmt.Errorf("diagnostics days must satisfy 0 <= min_days <= preferred_days")
	}
	if c.Diagnostics.MoneynessWarn >= c.Diagnostics.MoneynessFail {
		return fmt.Errorf("moneyness_warn must be below moneyness_fail")
	}
	if c.Diagnostics.ShortDeltaIdealLow >= c.Diagnostics.ShortDeltaIdealHigh {
		return fmt.Errorf("short_delta_ideal_low must be below short_delta_ideal_high")
	}
	if c.Data.CacheTTLMinutes < 0 {
		return fmt.Errorf("cache_ttl_minutes must be non-negative")
	}
	if c.Data.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive")
	}
	return nil
}
