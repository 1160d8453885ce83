// Package cmd provides the ratectl commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tourpricing/internal/config"
	"tourpricing/internal/database"
	"tourpricing/internal/logging"
	"tourpricing/internal/modules/quote"
	"tourpricing/internal/modules/rates"
	"tourpricing/internal/modules/snapshot"
	"tourpricing/internal/modules/variant"
)

var (
	databaseURL string
	verbose     bool
	timeout     time.Duration

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ratectl",
	Short: "Operate the tour pricing store",
	Long: `ratectl manages rate periods, itinerary quotes and variant snapshots
directly against the pricing database.

Examples:
  ratectl migrate
  ratectl seed
  ratectl rates insert --kind hotel --subject 1 --room-type 1 --occupancy 1 --meal-plan 1 \
      --start 2025-06-01 --end 2025-06-30 --price 4500
  ratectl quote --file itinerary.json --markup 10
  ratectl snapshots create --query 1 --variant 1 --variant 2`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database", "", "database DSN (default is DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "timeout for a single command")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}

	lc := logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Output:      "stderr",
		Development: !cfg.IsProduction(),
	}
	if verbose {
		lc.Level = "debug"
	}
	log, err = logging.Initialize(lc)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	return nil
}

// services is the wiring the API server builds, minus HTTP.
type services struct {
	db       *gorm.DB
	rates    *rates.Service
	variants *variant.Service
	quotes   *quote.Service
	snaps    *snapshot.Service
}

func openServices() (*services, error) {
	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	rs := rates.NewService(db, rates.Options{
		Precision:  cfg.CurrencyPrecision,
		MaxRetries: cfg.RateInsertMaxRetries,
		Logger:     log,
	})
	vs := variant.NewService(db, cfg.CurrencyPrecision, log)
	agg := quote.NewAggregator(rs.Resolver(), cfg.CurrencyPrecision, log)

	return &services{
		db:       db,
		rates:    rs,
		variants: vs,
		quotes:   quote.NewService(agg, vs.Repository(), cfg.DefaultMarkupPercent, log),
		snaps:    snapshot.NewService(db, cfg.CurrencyPrecision, log),
	}, nil
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(cfg.DatabaseURL, log)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		fmt.Println("✓ schema is up to date")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ratectl version 0.1.0")
	},
}
