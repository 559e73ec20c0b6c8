// Package cli provides the command-line interface for the analyzer.
package cli

import (
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pmcc-analyzer/internal/config"
	"pmcc-analyzer/internal/engine"
	"pmcc-analyzer/internal/logging"
	"pmcc-analyzer/internal/marketdata"
	"pmcc-analyzer/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-30"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Provider marketdata.Provider
	Store    store.PositionStore
}

// EngineParams maps the loaded configuration onto engine tunables.
func (a *App) EngineParams() engine.Params {
	p := engine.DefaultParams()
	p.RiskFreeRate = a.Config.Engine.RiskFreeRate
	p.CurveLowFactor = a.Config.Engine.CurveLowFactor
	p.CurveHighFactor = a.Config.Engine.CurveHighFactor
	p.ChartSamples = a.Config.Engine.ChartSamples
	p.TableRows = a.Config.Engine.TableRows
	d := a.Config.Diagnostics
	p.Thresholds = engine.Thresholds{
		MinDays:              d.MinDays,
		PreferredDays:        d.PreferredDays,
		MoneynessFail:        d.MoneynessFail,
		MoneynessWarn:        d.MoneynessWarn,
		LongDeltaExcellent:   d.LongDeltaExcellent,
		LongDeltaGood:        d.LongDeltaGood,
		LongDeltaCaution:     d.LongDeltaCaution,
		ShortDeltaAssignment: d.ShortDeltaAssignment,
		ShortDeltaNear:       d.ShortDeltaNear,
		ShortDeltaIdealLow:   d.ShortDeltaIdealLow,
		ShortDeltaIdealHigh:  d.ShortDeltaIdealHigh,
	}
	return p
}

// RequestTimeout is the per-fetch timeout for provider calls.
func (a *App) RequestTimeout() time.Duration {
	return time.Duration(a.Config.Data.RequestTimeoutSeconds) * time.Second
}

// NewRootCmd creates the root command for the CLI. configDir is the
// directory holding config.toml and the slot database; empty means the
// default.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger, configDir string) *cobra.Command {
	if configDir == "" {
		configDir = config.DefaultConfigDir()
	}
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// UI knobs: fatih/color honors the global switch, dates the layout.
	if !cfg.UI.ColorEnabled {
		color.NoColor = true
	}
	if cfg.UI.DateFormat != "" {
		dateLayout = cfg.UI.DateFormat
	}

	// Market data: Yahoo behind the caller-owned staleness cache.
	var yahooOpts []marketdata.YahooOption
	if cfg.Data.BaseURL != "" {
		yahooOpts = append(yahooOpts, marketdata.WithBaseURL(cfg.Data.BaseURL))
	}
	ttl := time.Duration(cfg.Data.CacheTTLMinutes) * time.Minute
	app.Provider = marketdata.NewCachingProvider(marketdata.NewYahooClient(yahooOpts...), ttl)

	// Position-slot store
	dbPath := filepath.Join(configDir, "pmcc.db")
	positionStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, slot commands unavailable")
	} else {
		app.Store = positionStore
		logger.Debug().Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "pmcc",
		Short: "PMCC Analyzer - diagonal call-spread decision support",
		Long: `PMCC Analyzer evaluates Poor Man's Covered Call positions: a deep ITM
long-dated call financing a short near-dated OTM call.

It fetches live option chains, resolves executable premiums, computes
cost, breakeven, the expiry P&L curve and per-leg Greeks, and grades the
chosen strikes and expiries.

Use 'pmcc help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/pmcc-analyzer)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newExpiriesCmd(app))
	rootCmd.AddCommand(newChainCmd(app))
	rootCmd.AddCommand(newSlotCmd(app))

	return rootCmd
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := app.NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("PMCC Analyzer v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := app.NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Engine Configuration")
	output.Printf("  Risk-Free Rate:   %.3f\n", cfg.Engine.RiskFreeRate)
	output.Printf("  Long Target:      %.2f x spot\n", cfg.Engine.LongTargetRatio)
	output.Printf("  Short Target:     %.2f x spot\n", cfg.Engine.ShortTargetRatio)
	output.Printf("  Curve Sweep:      %.2f - %.2f x spot\n", cfg.Engine.CurveLowFactor, cfg.Engine.CurveHighFactor)
	output.Printf("  Samples:          %d chart / %d table\n", cfg.Engine.ChartSamples, cfg.Engine.TableRows)
	output.Println()

	output.Bold("Diagnostics Bands")
	output.Printf("  Days:             fail < %d, pass >= %d\n", cfg.Diagnostics.MinDays, cfg.Diagnostics.PreferredDays)
	output.Printf("  Moneyness:        warn > %.2f, fail > %.2f\n", cfg.Diagnostics.MoneynessWarn, cfg.Diagnostics.MoneynessFail)
	output.Printf("  Long Delta:       %.2f / %.2f / %.2f\n", cfg.Diagnostics.LongDeltaCaution, cfg.Diagnostics.LongDeltaGood, cfg.Diagnostics.LongDeltaExcellent)
	output.Printf("  Short Delta:      ideal %.2f-%.2f, near %.2f, assignment %.2f\n",
		cfg.Diagnostics.ShortDeltaIdealLow, cfg.Diagnostics.ShortDeltaIdealHigh,
		cfg.Diagnostics.ShortDeltaNear, cfg.Diagnostics.ShortDeltaAssignment)
	output.Println()

	output.Bold("Market Data")
	output.Printf("  Cache TTL:        %d min\n", cfg.Data.CacheTTLMinutes)
	output.Printf("  Request Timeout:  %d s\n", cfg.Data.RequestTimeoutSeconds)
	if cfg.Data.BaseURL != "" {
		output.Printf("  Base URL:         %s\n", cfg.Data.BaseURL)
	}

	return nil
}
