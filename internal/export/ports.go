package export

import (
	"context"

	"saveit/internal/core"
)

// Ports for outbound ledger adapters.
type (
	// LedgerWriter appends a transaction row to the external ledger.
	LedgerWriter interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	// LedgerDeleter removes the row for a previously exported transaction.
	LedgerDeleter interface {
		Delete(ctx context.Context, transactionID int64) error
	}

	// Ledger combines the write-side ports an export worker needs.
	Ledger interface {
		LedgerWriter
		LedgerDeleter
	}
)
