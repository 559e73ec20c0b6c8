package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pmcc-analyzer/internal/engine"
	"pmcc-analyzer/internal/errors"
	"pmcc-analyzer/internal/logging"
	"pmcc-analyzer/internal/models"
)

func newSlotCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Saved position slots",
		Long: `Manage named position slots.

A resolved slot stores symbol, expiries and strikes; loading it re-queries
live quotes and snaps to the nearest listed strikes. A frozen slot
(--freeze) also stores spot and both premiums, so it can be re-analyzed
without market access.`,
	}

	cmd.AddCommand(newSlotSaveCmd(app))
	cmd.AddCommand(newSlotLoadCmd(app))
	cmd.AddCommand(newSlotListCmd(app))
	cmd.AddCommand(newSlotDeleteCmd(app))

	return cmd
}

func requireStore(app *App, output *Output) error {
	if app.Store == nil {
		output.Error("Position store unavailable")
		return fmt.Errorf("position store unavailable")
	}
	return nil
}

func newSlotSaveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name> <symbol>",
		Short: "Save a position slot",
		Example: `  pmcc slot save nvda-base NVDA --long-strike 80 --short-strike 150
  pmcc slot save nvda-snap NVDA --freeze`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if err := requireStore(app, output); err != nil {
				return err
			}
			name := args[0]
			symbol := strings.ToUpper(args[1])
			freeze, _ := cmd.Flags().GetBool("freeze")

			ctx, cancel := context.WithTimeout(cmd.Context(), app.RequestTimeout())
			defer cancel()

			long, short, err := legSpecsFromFlags(cmd)
			if err != nil {
				return err
			}
			logger := logging.WithSymbol(app.Logger, symbol)
			pos, err := app.resolveLivePosition(ctx, logger, symbol, long, short)
			if err != nil {
				output.Error("Failed to resolve position: %v", err)
				return err
			}

			slot := &models.PositionSlot{
				Name:        name,
				Kind:        models.SlotResolved,
				Symbol:      symbol,
				LongExpiry:  pos.LongLeg.Expiry,
				ShortExpiry: pos.ShortLeg.Expiry,
				LongStrike:  pos.LongLeg.Strike,
				ShortStrike: pos.ShortLeg.Strike,
			}
			if freeze {
				slot.Kind = models.SlotFrozen
				slot.SpotPrice = pos.UnderlyingPrice
				slot.LongPremium = pos.LongLeg.Premium
				slot.ShortPremium = pos.ShortLeg.Premium
				slot.LongIV = pos.LongLeg.ImpliedVol
				slot.ShortIV = pos.ShortLeg.ImpliedVol
			}

			if err := app.Store.SaveSlot(ctx, slot); err != nil {
				output.Error("Failed to save slot: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(slot)
			}
			output.Success("✓ Saved %s slot %q: %s %s/%s",
				slot.Kind, name, symbol,
				FormatPrice(slot.LongStrike), FormatPrice(slot.ShortStrike))
			return nil
		},
	}

	cmd.Flags().String("long-expiry", "", "long-leg expiry (YYYY-MM-DD)")
	cmd.Flags().String("short-expiry", "", "short-leg expiry (YYYY-MM-DD)")
	cmd.Flags().Float64("long-strike", 0, "long-leg strike (snaps to nearest listed)")
	cmd.Flags().Float64("short-strike", 0, "short-leg strike (snaps to nearest listed)")
	cmd.Flags().Bool("freeze", false, "store a self-contained snapshot with premiums")

	return cmd
}

func newSlotLoadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Load and analyze a saved slot",
		Long: `Load a saved slot and run the full analysis.

A frozen slot is analyzed from its stored snapshot. A resolved slot
re-queries live quotes using the stored expiries and snaps to the listed
strikes nearest the stored ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if err := requireStore(app, output); err != nil {
				return err
			}
			name := args[0]

			ctx, cancel := context.WithTimeout(cmd.Context(), app.RequestTimeout())
			defer cancel()

			slot, err := app.Store.GetSlot(ctx, name)
			if err != nil {
				output.Error("Failed to load slot: %v", err)
				return err
			}

			var pos models.PMCCPosition
			if slot.Kind == models.SlotFrozen {
				pos = slot.Position()
				output.Dim("Frozen snapshot from %s; no live quotes used.", FormatDate(slot.UpdatedAt))
			} else {
				logger := logging.WithSymbol(app.Logger, slot.Symbol)
				resolved, err := app.resolveLivePosition(ctx, logger, slot.Symbol,
					legSpec{expiry: slot.LongExpiry, strike: slot.LongStrike},
					legSpec{expiry: slot.ShortExpiry, strike: slot.ShortStrike})
				if err != nil {
					if errors.Is(err, errors.ErrDataUnavailable) {
						output.Error("Market data unavailable: %v", err)
						output.Dim("Frozen slots can be analyzed offline; this one is resolved-only.")
					}
					return err
				}
				pos = *resolved
			}

			report, err := engine.Analyze(pos, app.EngineParams(), time.Now())
			if err != nil {
				output.Error("Analysis failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(report)
			}
			noChart, _ := cmd.Flags().GetBool("no-chart")
			renderReport(output, report, !noChart)
			return nil
		},
	}

	cmd.Flags().Bool("no-chart", false, "skip the ASCII payoff chart")

	return cmd
}

func newSlotListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if err := requireStore(app, output); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), app.RequestTimeout())
			defer cancel()

			slots, err := app.Store.ListSlots(ctx)
			if err != nil {
				output.Error("Failed to list slots: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(slots)
			}

			if len(slots) == 0 {
				output.Dim("No saved slots.")
				return nil
			}

			output.Printf("%-15s %-9s %-7s %-11s %-11s %10s %10s\n",
				"Name", "Kind", "Symbol", "Long Exp", "Short Exp", "Long K", "Short K")
			output.Println(strings.Repeat("─", 78))
			for _, s := range slots {
				output.Printf("%-15s %-9s %-7s %-11s %-11s %10s %10s\n",
					s.Name, s.Kind, s.Symbol,
					FormatDate(s.LongExpiry), FormatDate(s.ShortExpiry),
					FormatPrice(s.LongStrike), FormatPrice(s.ShortStrike))
			}
			return nil
		},
	}
}

func newSlotDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if err := requireStore(app, output); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), app.RequestTimeout())
			defer cancel()

			if err := app.Store.DeleteSlot(ctx, args[0]); err != nil {
				output.Error("Failed to delete slot: %v", err)
				return err
			}
			output.Success("✓ Deleted slot %q", args[0])
			return nil
		},
	}
}
