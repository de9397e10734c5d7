package worker

import (
	"context"
	"errors"
	"fmt"

	"saveit/internal/amqp"
	"saveit/internal/export"
	"saveit/internal/log"
	"saveit/internal/storage"
)

// ExportWorker mirrors ledger writes into an external spreadsheet. It reacts
// to change events from AMQP and sweeps the pending backlog as a backup in
// case messages are lost.
type ExportWorker struct {
	storage   *storage.SQLiteRepository
	ledger    export.Ledger
	batchSize int
	logger    *log.Logger
}

func NewExportWorker(storage *storage.SQLiteRepository, ledger export.Ledger, batchSize int) *ExportWorker {
	return &ExportWorker{
		storage:   storage,
		ledger:    ledger,
		batchSize: batchSize,
		logger:    log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker),
	}
}

// HandleChange processes a single change event from AMQP.
func (w *ExportWorker) HandleChange(ctx context.Context, event *amqp.ChangeEvent) error {
	w.logger.InfoContext(ctx, "Processing change event",
		"type", event.Type,
		"id", event.ID)

	switch event.Type {
	case amqp.TransactionCreated:
		return w.exportTransaction(ctx, event.ID)
	case amqp.TransactionDeleted:
		return w.removeTransaction(ctx, event.ID)
	case amqp.BudgetUpserted, amqp.BudgetDeleted:
		// Budgets live only in local storage.
		return nil
	default:
		w.logger.WarnContext(ctx, "Unknown change event type, dropping", "type", event.Type, "id", event.ID)
		return nil
	}
}

// ProcessPending exports transactions that have not reached the ledger yet.
// This is a backup mechanism in case AMQP messages are lost.
func (w *ExportWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.PendingExportTransactions(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	w.logger.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	for _, p := range pending {
		if err := w.exportTransaction(ctx, p.ID); err != nil {
			w.logger.ErrorContext(ctx, "Failed to export pending transaction", "id", p.ID, log.FieldError, err)
			continue
		}
	}

	return nil
}

// StartupCheck drains a larger pending backlog once at worker startup to
// recover from downtime.
func (w *ExportWorker) StartupCheck(ctx context.Context) error {
	pending, err := w.storage.PendingExportTransactions(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}

	if len(pending) == 0 {
		w.logger.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	w.logger.InfoContext(ctx, "Found pending transactions on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, p := range pending {
		if err := w.exportTransaction(ctx, p.ID); err != nil {
			w.logger.ErrorContext(ctx, "Failed to export transaction during startup", "id", p.ID, log.FieldError, err)
			errorCount++
			continue
		}
		successCount++
	}

	w.logger.InfoContext(ctx, "Startup export completed",
		"total", len(pending),
		"exported", successCount,
		"errors", errorCount)

	return nil
}

func (w *ExportWorker) exportTransaction(ctx context.Context, id int64) error {
	t, err := w.storage.TransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted before the export ran, nothing to mirror.
			w.logger.InfoContext(ctx, "Transaction gone before export, skipping", "id", id)
			return nil
		}
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	ref, err := w.ledger.Append(ctx, t)
	if err != nil {
		if markErr := w.storage.MarkExportError(ctx, id); markErr != nil {
			w.logger.ErrorContext(ctx, "Failed to mark export error", "id", id, log.FieldError, markErr)
		}
		return fmt.Errorf("append to ledger: %w", err)
	}

	if err := w.storage.MarkExported(ctx, id); err != nil {
		// The row is in the ledger; only the local flag is stale.
		w.logger.ErrorContext(ctx, "Failed to mark as exported", "id", id, log.FieldError, err)
	}

	w.logger.InfoContext(ctx, "Successfully exported transaction",
		"id", id,
		log.FieldSheetsRef, ref,
		log.FieldTitle, t.Title,
		log.FieldAmountCents, t.Amount.Cents)

	return nil
}

func (w *ExportWorker) removeTransaction(ctx context.Context, id int64) error {
	if err := w.ledger.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete from ledger: %w", err)
	}

	w.logger.InfoContext(ctx, "Removed transaction from ledger", "id", id)
	return nil
}
