// Package mirror defines the port for the external spreadsheet copy of the
// ledger. Storage stays the source of truth; the mirror is written behind the
// request path by the sync worker.
package mirror

import (
	"context"

	"fintrack/internal/core"
)

type Writer interface {
	UpsertExpense(ctx context.Context, userID string, e core.Expense) error
	UpsertWorkEntry(ctx context.Context, userID string, e core.WorkEntry) error
	// Delete removes the mirrored row for an entity, if present. Deleting a
	// row that was never mirrored is not an error.
	Delete(ctx context.Context, entity, id string) error
}
