package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"maeum/internal/amqp"
	"maeum/internal/backend"
	"maeum/internal/cli"
	"maeum/internal/config"
	"maeum/internal/log"
	"maeum/internal/sheets"
	gsheet "maeum/internal/sheets/google"
	"maeum/internal/sheets/memory"
	"maeum/internal/worker"
)

func main() {
	var (
		configPath string
		backfill   bool
	)

	rootCmd := &cobra.Command{
		Use:           "maeum-export-worker",
		Short:         "Export saved journal records to Google Sheets",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, backfill)
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", os.Getenv("MAEUM_CONFIG"), "YAML config file")
	rootCmd.Flags().BoolVar(&backfill, "backfill", false, "export every stored record before consuming")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath string, backfill bool) error {
	cli.LoadEnvFile()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg.LogLevel)
	logger.Info("Starting maeum-export-worker")

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.ValidateExport(); err != nil {
		return err
	}

	ctx, cancel := cli.GracefulShutdown(context.Background(), logger, 30*time.Second, nil)
	defer cancel()

	exporter, err := newExporter(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize exporter: %w", err)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		return fmt.Errorf("initialize AMQP client: %w", err)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(exporter, 0, logger)

	if backfill {
		if err := runBackfill(ctx, cfg, logger, exportWorker); err != nil {
			// Don't exit - new events are still worth consuming
			logger.Error("Failed startup backfill", log.FieldError, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeRecordSaved(gctx, exportWorker.HandleRecordSaved)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("message consumption failed: %w", err)
	}
	logger.Info("Worker shutdown complete")
	return nil
}

// newExporter builds the Google Sheets exporter, or an in-memory one for dry
// runs when no spreadsheet is configured.
func newExporter(ctx context.Context, cfg *config.Config, logger *log.Logger) (sheets.RecordExporter, error) {
	if !cfg.SheetsEnabled() {
		logger.Warn("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided, exporting to memory")
		return memory.New(), nil
	}

	client, err := gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		SheetName:       cfg.GoogleSheetName,
		CredentialsFile: cfg.GoogleServiceAccountFile,
		CredentialsJSON: cfg.GoogleServiceAccountJSON,
	}, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	return client, nil
}

// runBackfill exports the records of the configured store, for recovering
// from events published while the worker was down.
func runBackfill(ctx context.Context, cfg *config.Config, logger *log.Logger, w *worker.ExportWorker) error {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	// The worker only reads; it never publishes.
	backendCfg.AMQPURL = ""

	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Warn("Failed to close store", log.FieldError, err)
		}
	}()

	return w.Backfill(ctx, result.Store.Load(ctx))
}
