package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pmcc-analyzer/internal/logging"
)

func newExpiriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "expiries <symbol>",
		Short: "List option expiries for a symbol",
		Example: `  pmcc expiries NVDA
  pmcc expiries LEU --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			symbol := strings.ToUpper(args[0])
			ctx, cancel := context.WithTimeout(cmd.Context(), app.RequestTimeout())
			defer cancel()

			started := time.Now()
			info, err := app.Provider.GetSpotAndExpiries(ctx, symbol)
			logging.LogFetch(logging.WithSymbol(app.Logger, symbol), "spot", symbol, time.Since(started), err)
			if err != nil {
				output.Error("Failed to fetch expiries: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(info)
			}

			output.Bold("%s - %s", symbol, FormatPrice(info.Price))
			if note := marketNote(time.Now()); note != "" {
				output.Dim("  %s", note)
			}
			output.Printf("  %d listed expiries:\n", len(info.Expiries))
			now := time.Now()
			for i, e := range info.Expiries {
				days := int(e.Sub(now).Hours() / 24)
				output.Printf("  [%2d] %s  (%d days)\n", i, FormatDate(e), days)
			}
			return nil
		},
	}
}

func newChainCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain <symbol>",
		Short: "Display the call chain for one expiry",
		Example: `  pmcc chain NVDA --expiry 2026-10-16
  pmcc chain NVDA --expiry 2026-10-16 --strikes 15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			symbol := strings.ToUpper(args[0])
			expiryStr, _ := cmd.Flags().GetString("expiry")
			around, _ := cmd.Flags().GetInt("strikes")

			ctx, cancel := context.WithTimeout(cmd.Context(), app.RequestTimeout())
			defer cancel()

			logger := logging.WithSymbol(app.Logger, symbol)
			info, err := app.Provider.GetSpotAndExpiries(ctx, symbol)
			if err != nil {
				output.Error("Failed to fetch symbol data: %v", err)
				return err
			}

			var requested time.Time
			if expiryStr != "" {
				requested, err = time.Parse("2006-01-02", expiryStr)
				if err != nil {
					output.Error("Invalid expiry format. Use YYYY-MM-DD")
					return err
				}
			}
			expiry, err := pickExpiry(info.Expiries, requested, 0)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			started := time.Now()
			chain, err := app.Provider.GetCallChain(ctx, symbol, expiry)
			logging.LogFetch(logger, "chain", symbol, time.Since(started), err)
			if err != nil {
				output.Error("Failed to fetch chain: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"symbol": symbol,
					"spot":   info.Price,
					"expiry": expiry,
					"calls":  chain,
				})
			}

			output.Bold("Call Chain - %s", symbol)
			if note := marketNote(time.Now()); note != "" {
				output.Dim("  %s", note)
			}
			output.Printf("  Spot: %s  Expiry: %s  (%d contracts)\n\n",
				FormatPrice(info.Price), FormatDate(expiry), len(chain))
			renderQuoteTable(output, chain, info.Price, around)
			if around > 0 && len(chain) > around {
				output.Dim(fmt.Sprintf("  showing %d strikes around ATM; use --strikes 0 for all", around))
			}
			return nil
		},
	}

	cmd.Flags().String("expiry", "", "expiry date (YYYY-MM-DD); defaults to the nearest")
	cmd.Flags().Int("strikes", 20, "number of strikes to show around ATM (0 = all)")

	return cmd
}
