package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"tourpricing/internal/modules/snapshot"
)

var (
	snapQuery    int64
	snapVariants []int64
	snapAppend   bool
	snapMarkup   string
	snapFormat   string
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Variant snapshot management",
}

var snapshotsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Freeze variants of a query",
	Long: `Freeze the given variants of a query.

By default the new snapshots replace the query's current set; readers see
either the old set or the new one, never a mix. With --append they are
added to the current set instead.`,
	RunE: runSnapshotsCreate,
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current snapshots of a query",
	RunE:  runSnapshotsList,
}

var snapshotsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete every snapshot of a query",
	RunE:  runSnapshotsDelete,
}

var snapshotsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report snapshot rows left without their parent snapshot",
	Long: `Count hotel, pricing and component snapshot rows whose parent row no
longer exists. The command fails when any are found.`,
	RunE: runSnapshotsCheck,
}

func init() {
	rootCmd.AddCommand(snapshotsCmd)
	snapshotsCmd.AddCommand(snapshotsCreateCmd, snapshotsListCmd, snapshotsDeleteCmd, snapshotsCheckCmd)

	for _, c := range []*cobra.Command{snapshotsCreateCmd, snapshotsListCmd, snapshotsDeleteCmd} {
		c.Flags().Int64VarP(&snapQuery, "query", "q", 0, "query id [REQUIRED]")
		c.MarkFlagRequired("query")
	}

	snapshotsCreateCmd.Flags().Int64SliceVar(&snapVariants, "variant", nil, "variant id to freeze, repeatable [REQUIRED]")
	snapshotsCreateCmd.Flags().BoolVar(&snapAppend, "append", false, "add to the current set instead of replacing it")
	snapshotsCreateCmd.MarkFlagRequired("variant")

	snapshotsListCmd.Flags().StringVarP(&snapMarkup, "markup", "m", "", "display prices with this markup percentage instead of the frozen one")
	snapshotsListCmd.Flags().StringVar(&snapFormat, "format", "cli", "output format (cli, json)")
}

func runSnapshotsCreate(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	res, err := svc.snaps.CreateSnapshots(ctx, snapQuery, snapVariants, !snapAppend)
	if err != nil {
		fmt.Printf("✗ snapshot creation failed, nothing was written: %v\n", err)
		return err
	}
	fmt.Printf("✓ %d snapshot(s) created for query %d (generation %d)\n", res.Count, snapQuery, res.Generation)
	return nil
}

func runSnapshotsList(cmd *cobra.Command, args []string) error {
	var markup *decimal.Decimal
	if snapMarkup != "" {
		m, err := decimal.NewFromString(snapMarkup)
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

	snaps, err := svc.snaps.GetSnapshots(ctx, snapQuery)
	if err != nil {
		return err
	}
	if snapFormat == "json" {
		return printJSON(snaps)
	}
	if len(snaps) == 0 {
		fmt.Println("no snapshots")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SNAPSHOT\tVARIANT\tNAME\tGEN\tHOTELS\tMARKUP")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%d\t%s%%\n", s.ID, s.SourceVariantID, s.Name, s.Generation, len(s.Hotels), s.MarkupPercentage.String())
	}
	w.Flush()

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRICING\tBASE\tMARKUP\tTOTAL")
	for _, d := range snapshot.ApplyMarkup(snaps, markup, svc.snaps.Precision()) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.PricingSnapshotID, d.Price.Base.String(), d.Price.Amount.String(), d.Price.Total.String())
	}
	return w.Flush()
}

func runSnapshotsDelete(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	n, err := svc.snaps.DeleteSnapshots(ctx, snapQuery)
	if err != nil {
		return err
	}
	fmt.Printf("✓ %d snapshot(s) deleted for query %d\n", n, snapQuery)
	return nil
}

func runSnapshotsCheck(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	n, err := svc.snaps.CountOrphans(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Printf("✗ %d orphaned snapshot row(s)\n", n)
		return fmt.Errorf("%d orphaned snapshot rows", n)
	}
	fmt.Println("✓ no orphaned snapshot rows")
	return nil
}
