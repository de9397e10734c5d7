package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// PendingExport is the minimal row shape the export worker sweeps for.
type PendingExport struct {
	ID         int64
	DateMillis int64
}

// PendingExportTransactions lists transactions that have not yet been
// mirrored to the external export, oldest first.
func (r *SQLiteRepository) PendingExportTransactions(ctx context.Context, limit int) ([]PendingExport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date_ms FROM transactions
		 WHERE export_state = ? ORDER BY date_ms ASC, id ASC LIMIT ?`,
		ExportPending, limit)
	if err != nil {
		return nil, fmt.Errorf("pending export transactions: %w", err)
	}
	defer rows.Close()

	var out []PendingExport
	for rows.Next() {
		var p PendingExport
		if err := rows.Scan(&p.ID, &p.DateMillis); err != nil {
			return nil, fmt.Errorf("scan pending export: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkExported records that a transaction reached the export.
func (r *SQLiteRepository) MarkExported(ctx context.Context, id int64) error {
	if err := r.setExportState(ctx, id, ExportDone); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction marked as exported", "id", id)
	return nil
}

// MarkExportError flags a transaction whose export attempt failed so the
// periodic sweep does not retry it blindly.
func (r *SQLiteRepository) MarkExportError(ctx context.Context, id int64) error {
	if err := r.setExportState(ctx, id, ExportError); err != nil {
		return err
	}
	slog.WarnContext(ctx, "Transaction marked with export error", "id", id)
	return nil
}

func (r *SQLiteRepository) setExportState(ctx context.Context, id, state int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET export_state = ? WHERE id = ?`, state, id)
	if err != nil {
		return fmt.Errorf("set export state: %w", err)
	}
	return nil
}
