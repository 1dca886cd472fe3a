// Command seed loads categories and nominees from a YAML fixture file into
// PostgreSQL.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"vetting/internal/platform/config"
	"vetting/internal/platform/logger"
	"vetting/internal/platform/postgres"
	"vetting/internal/vetting/fixtures"
	categorystore "vetting/internal/vetting/store/category"
	nomineestore "vetting/internal/vetting/store/nominee"
)

type options struct {
	file        string
	databaseURL string
	dryRun      bool
	migrate     bool
}

func main() {
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Load vetting fixtures into PostgreSQL",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "fixtures.yaml", "fixture file to load")
	cmd.Flags().StringVar(&opts.databaseURL, "database-url", os.Getenv("VETTING_DATABASE_URL"), "PostgreSQL connection URL")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate the fixture file without writing")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", true, "apply the schema before loading")
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, opts *options) error {
	log := logger.New(os.Getenv("VETTING_LOG_LEVEL"))

	file, err := fixtures.LoadFile(opts.file)
	if err != nil {
		return err
	}
	categories, nominees, err := file.Models()
	if err != nil {
		return err
	}
	if opts.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d categories, %d nominees (dry run)\n", opts.file, len(categories), len(nominees))
		return nil
	}
	if opts.databaseURL == "" {
		return fmt.Errorf("--database-url or VETTING_DATABASE_URL is required")
	}

	db, err := postgres.Open(ctx, config.DatabaseConfig{URL: opts.databaseURL, MaxOpenConns: 2, MaxIdleConns: 1})
	if err != nil {
		return err
	}
	defer db.Close()

	if opts.migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	sum, err := file.Apply(ctx, categorystore.NewPostgres(db), nomineestore.NewPostgres(db))
	if err != nil {
		return err
	}
	log.Info("fixtures loaded", "file", opts.file, "categories", sum.Categories, "nominees", sum.Nominees)
	fmt.Fprintf(cmd.OutOrStdout(), "loaded %d categories and %d nominees\n", sum.Categories, sum.Nominees)
	return nil
}
