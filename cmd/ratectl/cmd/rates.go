package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"tourpricing/internal/domain"
	"tourpricing/internal/modules/rates"
	"tourpricing/internal/pkg/dates"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Rate period management",
}

var ratesInsertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert a rate period, splitting whatever it overlaps",
	Long: `Insert a rate period for one attribute key.

Existing active periods of the same key that overlap the new range are
replaced; their uncovered remainders are kept at their old price.
Use --dry-run to print the split plan without writing.`,
	RunE: runRatesInsert,
}

var ratesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the periods of an attribute key",
	RunE:  runRatesList,
}

var ratesResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the price of an attribute key on a date",
	RunE:  runRatesResolve,
}

var (
	rateKind      string
	rateSubject   int64
	rateRoomType  int64
	rateOccupancy int64
	rateMealPlan  int64
	rateStart     string
	rateEnd       string
	ratePrice     string
	rateDate      string
	rateDryRun    bool
	rateInactive  bool
)

func init() {
	rootCmd.AddCommand(ratesCmd)
	ratesCmd.AddCommand(ratesInsertCmd, ratesListCmd, ratesResolveCmd)

	for _, c := range []*cobra.Command{ratesInsertCmd, ratesListCmd, ratesResolveCmd} {
		c.Flags().StringVar(&rateKind, "kind", string(domain.SubjectHotel), "rate kind (hotel, transport)")
		c.Flags().Int64Var(&rateSubject, "subject", 0, "hotel or vehicle type id [REQUIRED]")
		c.Flags().Int64Var(&rateRoomType, "room-type", 0, "room type id (hotel rates)")
		c.Flags().Int64Var(&rateOccupancy, "occupancy", 0, "occupancy type id (hotel rates)")
		c.Flags().Int64Var(&rateMealPlan, "meal-plan", 0, "meal plan id (hotel rates)")
		c.MarkFlagRequired("subject")
	}

	ratesInsertCmd.Flags().StringVar(&rateStart, "start", "", "first day, YYYY-MM-DD [REQUIRED]")
	ratesInsertCmd.Flags().StringVar(&rateEnd, "end", "", "last day inclusive, YYYY-MM-DD [REQUIRED]")
	ratesInsertCmd.Flags().StringVar(&ratePrice, "price", "", "price per night or per vehicle [REQUIRED]")
	ratesInsertCmd.Flags().BoolVar(&rateDryRun, "dry-run", false, "print the split plan, no database writes")
	ratesInsertCmd.MarkFlagRequired("start")
	ratesInsertCmd.MarkFlagRequired("end")
	ratesInsertCmd.MarkFlagRequired("price")

	ratesListCmd.Flags().BoolVar(&rateInactive, "all", false, "include inactive periods")

	ratesResolveCmd.Flags().StringVar(&rateDate, "date", "", "date to price, YYYY-MM-DD [REQUIRED]")
	ratesResolveCmd.MarkFlagRequired("date")
}

func rateKey() domain.AttributeKey {
	return domain.AttributeKey{
		Kind:            domain.SubjectKind(rateKind),
		SubjectID:       rateSubject,
		RoomTypeID:      rateRoomType,
		OccupancyTypeID: rateOccupancy,
		MealPlanID:      rateMealPlan,
	}
}

func runRatesInsert(cmd *cobra.Command, args []string) error {
	start, err := dates.Parse(rateStart)
	if err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	end, err := dates.Parse(rateEnd)
	if err != nil {
		return fmt.Errorf("--end: %w", err)
	}
	price, err := decimal.NewFromString(ratePrice)
	if err != nil {
		return fmt.Errorf("--price: %w", err)
	}

	svc, err := openServices()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	p := domain.RatePeriod{
		AttributeKey: rateKey(),
		StartDate:    start,
		EndDate:      end,
		Price:        price,
		IsActive:     true,
	}

	var plan *rates.SplitPlan
	if rateDryRun {
		plan, err = svc.rates.PlanInsert(ctx, p)
	} else {
		plan, err = svc.rates.Insert(ctx, p)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Key:     %s\n", p.AttributeKey)
	fmt.Printf("Dry-run: %t\n\n", rateDryRun)
	fmt.Printf("Deleted: %v\n", plan.PeriodsToDelete)
	printPeriods(plan.PeriodsToCreate)
	return nil
}

func runRatesList(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	periods, err := svc.rates.List(ctx, rateKey(), rateInactive)
	if err != nil {
		return err
	}
	if len(periods) == 0 {
		fmt.Println("no periods")
		return nil
	}
	printPeriods(periods)
	return nil
}

func runRatesResolve(cmd *cobra.Command, args []string) error {
	date, err := dates.Parse(rateDate)
	if err != nil {
		return fmt.Errorf("--date: %w", err)
	}

	svc, err := openServices()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	res, err := svc.rates.Resolve(ctx, date, rateKey())
	if err != nil {
		return err
	}
	if !res.Covered() {
		fmt.Printf("✗ no rate for %s on %s\n", res.Key, dates.Format(date))
		return nil
	}
	fmt.Printf("✓ %s on %s: %s (period %d, %s..%s)\n",
		res.Key, dates.Format(date), res.Period.Price.String(), res.Period.ID,
		dates.Format(res.Period.StartDate), dates.Format(res.Period.EndDate))
	return nil
}

func printPeriods(periods []domain.RatePeriod) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTART\tEND\tPRICE\tACTIVE")
	for _, p := range periods {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", p.ID, dates.Format(p.StartDate), dates.Format(p.EndDate), p.Price.String(), p.IsActive)
	}
	w.Flush()
}
