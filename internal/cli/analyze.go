package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pmcc-analyzer/internal/engine"
	"pmcc-analyzer/internal/errors"
	"pmcc-analyzer/internal/logging"
	"pmcc-analyzer/internal/marketdata"
	"pmcc-analyzer/internal/models"
)

// legSpec is a partially specified leg: zero values mean "use defaults".
type legSpec struct {
	expiry time.Time
	strike float64
}

func newAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <symbol>",
		Short: "Analyze a PMCC position",
		Long: `Analyze a Poor Man's Covered Call position for a symbol.

By default the long leg targets the last listed expiry and a strike near
60% of spot, the short leg the second listed expiry and a strike near
115% of spot. Override any of them with flags.

When market data is unavailable, pass --manual together with --spot,
--long-premium and --short-premium to analyze a hand-entered position.`,
		Example: `  pmcc analyze NVDA
  pmcc analyze NVDA --long-strike 80 --short-strike 150
  pmcc analyze NVDA --long-expiry 2028-01-21 --short-expiry 2026-10-16
  pmcc analyze NVDA --manual --spot 100 --long-strike 80 --short-strike 130 \
      --long-premium 25 --short-premium 5 --long-expiry 2028-01-21 --short-expiry 2026-10-16`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			symbol := strings.ToUpper(args[0])
			logger := logging.WithSymbol(app.Logger, symbol)

			manual, _ := cmd.Flags().GetBool("manual")

			var pos *models.PMCCPosition
			var err error
			if manual {
				pos, err = positionFromFlags(cmd, symbol)
				if err != nil {
					output.Error("Invalid manual position: %v", err)
					return err
				}
			} else {
				ctx, cancel := context.WithTimeout(cmd.Context(), app.RequestTimeout())
				defer cancel()

				long, short, err2 := legSpecsFromFlags(cmd)
				if err2 != nil {
					return err2
				}
				pos, err = app.resolveLivePosition(ctx, logger, symbol, long, short)
				if err != nil {
					if errors.Is(err, errors.ErrDataUnavailable) {
						output.Error("Market data unavailable: %v", err)
						output.Dim("Enter the position by hand with --manual (see 'pmcc help analyze').")
					}
					return err
				}
				if note := marketNote(time.Now()); note != "" {
					output.Dim("%s", note)
				}
			}

			report, err := engine.Analyze(*pos, app.EngineParams(), time.Now())
			if err != nil {
				output.Error("Analysis failed: %v", err)
				return err
			}
			logging.LogAnalysis(logger, symbol, report.NetDebit, report.Breakeven, report.Diagnostics.IsSafe)

			if output.IsJSON() {
				return output.JSON(report)
			}
			noChart, _ := cmd.Flags().GetBool("no-chart")
			renderReport(output, report, !noChart)
			return nil
		},
	}

	cmd.Flags().String("long-expiry", "", "long-leg expiry (YYYY-MM-DD)")
	cmd.Flags().String("short-expiry", "", "short-leg expiry (YYYY-MM-DD)")
	cmd.Flags().Float64("long-strike", 0, "long-leg strike (snaps to nearest listed)")
	cmd.Flags().Float64("short-strike", 0, "short-leg strike (snaps to nearest listed)")
	cmd.Flags().Bool("no-chart", false, "skip the ASCII payoff chart")
	cmd.Flags().Bool("manual", false, "analyze a hand-entered position without market access")
	cmd.Flags().Float64("spot", 0, "underlying price (manual mode)")
	cmd.Flags().Float64("long-premium", 0, "long-leg premium paid (manual mode)")
	cmd.Flags().Float64("short-premium", 0, "short-leg premium received (manual mode)")
	cmd.Flags().Float64("long-iv", 0, "long-leg implied volatility, e.g. 0.35 (manual mode)")
	cmd.Flags().Float64("short-iv", 0, "short-leg implied volatility (manual mode)")

	return cmd
}

// legSpecsFromFlags parses the optional expiry/strike overrides.
func legSpecsFromFlags(cmd *cobra.Command) (long, short legSpec, err error) {
	parse := func(flag string) (time.Time, error) {
		s, _ := cmd.Flags().GetString(flag)
		if s == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --%s: use YYYY-MM-DD", flag)
		}
		return t, nil
	}

	if long.expiry, err = parse("long-expiry"); err != nil {
		return
	}
	if short.expiry, err = parse("short-expiry"); err != nil {
		return
	}
	long.strike, _ = cmd.Flags().GetFloat64("long-strike")
	short.strike, _ = cmd.Flags().GetFloat64("short-strike")
	return
}

// positionFromFlags builds a position for manual mode.
func positionFromFlags(cmd *cobra.Command, symbol string) (*models.PMCCPosition, error) {
	long, short, err := legSpecsFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	if long.expiry.IsZero() || short.expiry.IsZero() {
		return nil, fmt.Errorf("manual mode requires --long-expiry and --short-expiry")
	}

	spot, _ := cmd.Flags().GetFloat64("spot")
	longPremium, _ := cmd.Flags().GetFloat64("long-premium")
	shortPremium, _ := cmd.Flags().GetFloat64("short-premium")
	longIV, _ := cmd.Flags().GetFloat64("long-iv")
	shortIV, _ := cmd.Flags().GetFloat64("short-iv")

	return &models.PMCCPosition{
		Symbol:          symbol,
		UnderlyingPrice: spot,
		LongLeg: models.OptionLeg{
			Strike:     long.strike,
			Premium:    longPremium,
			Expiry:     long.expiry,
			Side:       models.SideLong,
			ImpliedVol: longIV,
		},
		ShortLeg: models.OptionLeg{
			Strike:     short.strike,
			Premium:    shortPremium,
			Expiry:     short.expiry,
			Side:       models.SideShort,
			ImpliedVol: shortIV,
		},
	}, nil
}

// resolveLivePosition fetches quotes and resolves both legs. Empty spec
// fields fall back to the default expiry picks (last listed for the long
// leg, second listed for the short) and the target-ratio strikes.
func (app *App) resolveLivePosition(ctx context.Context, logger zerolog.Logger, symbol string, long, short legSpec) (*models.PMCCPosition, error) {
	started := time.Now()
	info, err := app.Provider.GetSpotAndExpiries(ctx, symbol)
	logging.LogFetch(logger, "spot", symbol, time.Since(started), err)
	if err != nil {
		return nil, err
	}

	longExpiry, err := pickExpiry(info.Expiries, long.expiry, len(info.Expiries)-1)
	if err != nil {
		return nil, err
	}
	shortDefault := 0
	if len(info.Expiries) > 1 {
		shortDefault = 1
	}
	shortExpiry, err := pickExpiry(info.Expiries, short.expiry, shortDefault)
	if err != nil {
		return nil, err
	}

	longLeg, err := app.resolveLeg(ctx, logger, symbol, info.Price, longExpiry, long.strike,
		models.SideLong, app.Config.Engine.LongTargetRatio)
	if err != nil {
		return nil, err
	}
	shortLeg, err := app.resolveLeg(ctx, logger, symbol, info.Price, shortExpiry, short.strike,
		models.SideShort, app.Config.Engine.ShortTargetRatio)
	if err != nil {
		return nil, err
	}

	return &models.PMCCPosition{
		Symbol:          symbol,
		UnderlyingPrice: info.Price,
		LongLeg:         *longLeg,
		ShortLeg:        *shortLeg,
	}, nil
}

// resolveLeg fetches one chain and turns it into a resolved leg. A
// requested strike snaps to the nearest listed one; zero means the
// target-ratio default.
func (app *App) resolveLeg(ctx context.Context, logger zerolog.Logger, symbol string, spot float64, expiry time.Time, requestedStrike float64, side models.LegSide, targetRatio float64) (*models.OptionLeg, error) {
	started := time.Now()
	chain, err := app.Provider.GetCallChain(ctx, symbol, expiry)
	logging.LogFetch(logger, "chain", symbol, time.Since(started), err)
	if err != nil {
		return nil, err
	}

	strikes := marketdata.Strikes(chain)
	var strike float64
	if requestedStrike > 0 {
		strike, err = engine.NearestStrike(strikes, requestedStrike)
	} else {
		strike, err = engine.SelectDefaultStrike(strikes, spot, targetRatio)
	}
	if err != nil {
		return nil, errors.NewDataError("strikes", symbol,
			fmt.Sprintf("expiry %s", expiry.Format("2006-01-02")), err)
	}

	quote, ok := marketdata.QuoteForStrike(chain, strike)
	if !ok {
		return nil, errors.NewDataError("quote", symbol,
			fmt.Sprintf("no quote at strike %.2f", strike), nil)
	}

	return &models.OptionLeg{
		Strike:     strike,
		Premium:    engine.ResolvePremium(quote, engine.PremiumFieldFor(side)),
		Expiry:     expiry,
		Side:       side,
		ImpliedVol: quote.ImpliedVolatility,
	}, nil
}

// pickExpiry matches a requested calendar date against the listed
// expiries, or falls back to the listed expiry at defaultIdx.
func pickExpiry(expiries []time.Time, requested time.Time, defaultIdx int) (time.Time, error) {
	if len(expiries) == 0 {
		return time.Time{}, errors.NewDataError("expiries", "", "no listed expiries", nil)
	}
	if requested.IsZero() {
		if defaultIdx >= len(expiries) {
			defaultIdx = len(expiries) - 1
		}
		return expiries[defaultIdx], nil
	}
	for _, e := range expiries {
		if sameDay(e, requested) {
			return e, nil
		}
	}
	return time.Time{}, errors.NewDataError("expiries", "",
		fmt.Sprintf("expiry %s is not listed", requested.Format("2006-01-02")), nil)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
