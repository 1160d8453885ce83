package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"tourpricing/internal/domain"
	"tourpricing/internal/modules/quote"
	"tourpricing/internal/pkg/dates"
)

var (
	quoteFile    string
	quoteVariant int64
	quoteMarkup  string
	quoteFormat  string
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price an itinerary file or a stored variant",
	Long: `Price an itinerary and print the cost breakdown.

The itinerary file has the same JSON shape as POST /api/v1/quotes.

Examples:
  ratectl quote --file itinerary.json
  ratectl quote --file itinerary.json --markup 12.5 --format json
  ratectl quote --variant 3`,
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVarP(&quoteFile, "file", "f", "", "itinerary JSON file")
	quoteCmd.Flags().Int64Var(&quoteVariant, "variant", 0, "price a stored variant instead of a file")
	quoteCmd.Flags().StringVarP(&quoteMarkup, "markup", "m", "", "markup percentage (default from the request, variant or config)")
	quoteCmd.Flags().StringVar(&quoteFormat, "format", "cli", "output format (cli, json)")
	quoteCmd.MarkFlagsMutuallyExclusive("file", "variant")
	quoteCmd.MarkFlagsOneRequired("file", "variant")
}

func runQuote(cmd *cobra.Command, args []string) error {
	var markup *decimal.Decimal
	if quoteMarkup != "" {
		m, err := decimal.NewFromString(quoteMarkup)
		if err != nil {
			return fmt.Errorf("--markup: %w", err)
		}
		markup = &m
	}

	svc, err := openServices()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	var result *domain.PricingResult
	if quoteVariant > 0 {
		result, err = svc.quotes.QuoteVariant(ctx, quoteVariant, markup)
	} else {
		var req quote.QuoteRequest
		req, err = readQuoteRequest(quoteFile)
		if err != nil {
			return err
		}
		if markup == nil {
			markup = req.MarkupPercentage
		}
		days, verr := req.Itinerary()
		if verr != nil {
			return verr
		}
		result, err = svc.quotes.QuoteItinerary(ctx, days, markup)
	}
	if err != nil {
		return err
	}

	if quoteFormat == "json" {
		return printJSON(result)
	}
	printQuote(result)
	return nil
}

func readQuoteRequest(path string) (quote.QuoteRequest, error) {
	var req quote.QuoteRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("read itinerary: %w", err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("parse itinerary %s: %w", path, err)
	}
	return req, nil
}

func printQuote(r *domain.PricingResult) {
	for _, day := range r.Breakdown {
		fmt.Printf("Day %d  %s  %s\n", day.DayNumber, dates.Format(day.Date), day.DayTotal.String())
		for _, l := range day.RoomLines {
			if l.Warning != "" {
				fmt.Printf("  ⚠ %s\n", l.Warning)
				continue
			}
			fmt.Printf("  room  rt=%d occ=%d mp=%d  %d x %s = %s\n",
				l.RoomTypeID, l.OccupancyTypeID, l.MealPlanID, l.Quantity, l.UnitPrice.String(), l.LineTotal.String())
		}
		for _, l := range day.TransportLines {
			if l.Warning != "" {
				fmt.Printf("  ⚠ %s\n", l.Warning)
				continue
			}
			fmt.Printf("  transport vt=%d %s  %d x %s = %s\n",
				l.VehicleTypeID, l.BillingMode, l.Quantity, l.UnitPrice.String(), l.LineTotal.String())
		}
	}
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("Accommodation: %s\n", r.AccommodationTotal.String())
	fmt.Printf("Transport:     %s\n", r.TransportTotal.String())
	fmt.Printf("Base price:    %s\n", r.BasePrice.String())
	fmt.Printf("Markup:        %s%% = %s\n", r.MarkupPercentage.String(), r.MarkupAmount.String())
	fmt.Printf("Total:         %s\n", r.TotalCost.String())
	if len(r.Warnings) > 0 {
		fmt.Printf("\n%d warning(s): totals exclude unpriced items\n", len(r.Warnings))
	}
}
