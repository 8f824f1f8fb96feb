package worker

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"maeum/internal/amqp"
	"maeum/internal/core"
	"maeum/internal/log"
	"maeum/internal/sheets"
)

const defaultBackfillWorkers = 4

// ExportWorker copies saved records into the export sheet.
type ExportWorker struct {
	exporter sheets.RecordExporter
	workers  int
	logger   *log.Logger
}

func NewExportWorker(exporter sheets.RecordExporter, workers int, logger *log.Logger) *ExportWorker {
	if workers < 1 {
		workers = defaultBackfillWorkers
	}
	return &ExportWorker{
		exporter: exporter,
		workers:  workers,
		logger:   log.OrDiscard(logger).WithComponent(log.ComponentWorker),
	}
}

// HandleRecordSaved processes a single record saved message from AMQP. A
// message-scoped logger in ctx is preferred over the worker's own.
func (w *ExportWorker) HandleRecordSaved(ctx context.Context, msg *amqp.RecordSavedMessage) error {
	logger := log.FromContextOr(ctx, w.logger.With(log.FieldMessageID, msg.ID, log.FieldDate, msg.Record.Date))
	logger.InfoContext(ctx, "Processing record saved message")

	ref, err := w.export(ctx, msg.Record)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Successfully exported record", log.FieldRowRef, ref)
	return nil
}

// Backfill exports every record, for recovering from missed messages or
// worker downtime. Records are exported concurrently; the first failure
// cancels the rest.
func (w *ExportWorker) Backfill(ctx context.Context, records []core.Record) error {
	if len(records) == 0 {
		w.logger.InfoContext(ctx, "No records to backfill")
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)

	for _, rec := range records {
		g.Go(func() error {
			_, err := w.export(gctx, rec)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("backfill: %w", err)
	}

	w.logger.InfoContext(ctx, "Backfill completed", log.FieldCount, len(records))
	return nil
}

func (w *ExportWorker) export(ctx context.Context, rec core.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := rec.Validate(); err != nil {
		return "", errors.Join(fmt.Errorf("record %q", rec.Date), err)
	}

	ref, err := w.exporter.Export(ctx, rec)
	w.logger.Op(ctx, log.OpExport, err, log.FieldDate, rec.Date)
	if err != nil {
		return "", fmt.Errorf("export record %s: %w", rec.Date, err)
	}
	return ref, nil
}
