package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vendhub/vendhub-backend/internal/imports"
	"github.com/vendhub/vendhub-backend/internal/ingest"
	"github.com/vendhub/vendhub-backend/pkg/config"
	"github.com/vendhub/vendhub-backend/pkg/db"
	"github.com/vendhub/vendhub-backend/pkg/enums"
	"github.com/vendhub/vendhub-backend/pkg/logger"
	"github.com/vendhub/vendhub-backend/pkg/migrate"
)

var (
	importFile   string
	importSource string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Run a sales export through the reconciliation pipeline",
	Long: `Reads a CSV export from disk and runs it through the same pipeline the
API uses, against the database named in the environment. Row errors are
printed on the receipt but do not abort the batch.`,
	Example: `  vendhubctl import --file march.csv --source vendor_a
  vendhubctl import --file legacy/q1.csv --source vendor_b -v`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "path to the CSV export (required)")
	importCmd.Flags().StringVar(&importSource, "source", "", "export layout, vendor_a or vendor_b (required)")
	importCmd.MarkFlagRequired("file")
	importCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	source, err := enums.ParseDataSource(strings.TrimSpace(importSource))
	if err != nil {
		return err
	}

	content, err := os.ReadFile(importFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", importFile, err)
	}

	// .env is optional here; operators usually export the variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := logger.ParseLevel(cfg.App.LogLevel)
	if verbose {
		level = zerolog.DebugLevel
	}
	// Logs go to stderr so the receipt on stdout pipes cleanly.
	logg := logger.New(logger.Options{
		ServiceName: "vendhubctl",
		Level:       level,
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return fmt.Errorf("running dev migrations: %w", err)
	}

	ingestService, err := ingest.NewService(dbClient, ingest.NewRepository(dbClient.DB()), logg, nil)
	if err != nil {
		return err
	}
	importService, err := imports.NewService(imports.NewRepository(dbClient.DB()), ingestService, logg, cfg.Ingest.MaxErrorLines)
	if err != nil {
		return err
	}

	result, err := importService.Run(ctx, imports.RunInput{
		Filename:   filepath.Base(importFile),
		DataSource: source,
		CSVContent: string(content),
	})
	if err != nil {
		return err
	}

	printReceipt(cmd.OutOrStdout(), result)
	return nil
}

func printReceipt(w io.Writer, result *imports.RunResult) {
	fmt.Fprintf(w, "Import:    %s\n", result.Import.ID)
	fmt.Fprintf(w, "Status:    %s\n", result.Import.Status)
	fmt.Fprintf(w, "Total:     %d\n", result.Batch.Total)
	fmt.Fprintf(w, "Processed: %d\n", result.Batch.Processed)
	fmt.Fprintf(w, "Failed:    %d\n", result.Batch.Failed)
	if len(result.Batch.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, line := range result.Batch.Errors {
			fmt.Fprintf(w, "  - %s\n", line)
		}
	}
}
