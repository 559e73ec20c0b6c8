package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# PMCC Analyzer Configuration

[engine]
# Annualized risk-free rate used for Greeks
risk_free_rate = 0.045
# Default long-leg strike target as a fraction of spot (deep ITM)
long_target_ratio = 0.60
# Default short-leg strike target as a fraction of spot (above market)
short_target_ratio = 1.15
# Payoff sweep bounds as fractions of spot
curve_low_factor = 0.7
curve_high_factor = 1.3
# Sample counts for the chart sweep and the terminal table
chart_samples = 100
table_rows = 11

[diagnostics]
# Long-leg days-to-expiry bands
min_days = 180
preferred_days = 365
# Long-leg moneyness (strike/spot) bands
moneyness_warn = 0.8
moneyness_fail = 0.9
# Long-leg delta bands
long_delta_excellent = 0.90
long_delta_good = 0.80
long_delta_caution = 0.70
# Short-leg delta bands
short_delta_assignment = 0.60
short_delta_near = 0.50
short_delta_ideal_low = 0.20
short_delta_ideal_high = 0.45

[data]
# Quote cache staleness window in minutes
cache_ttl_minutes = 5
# HTTP request timeout in seconds
request_timeout_seconds = 30
# Override the market-data endpoint (empty = Yahoo Finance)
base_url = ""

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"
`

// createTemplateConfig writes the default config template so users have
// something to edit.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}
