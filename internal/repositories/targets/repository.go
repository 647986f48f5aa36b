// Package targets persists savings goals and debts together with their
// append-only contribution ledger.
package targets

import (
	"context"

	"github.com/akarpov/savingsbot/internal/models"
)

// Repository is the storage contract for targets and their ledger.
//
// Implementations must return common.ErrNotFound for missing rows and
// common.ErrDuplicateName when (user, name) uniqueness is violated.
type Repository interface {
	Create(ctx context.Context, t *models.Target) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Target, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Target, error)
	Delete(ctx context.Context, id int64) error
	SetNotified90(ctx context.Context, id int64) error

	// AddAmount increments current_amount. Callers pairing it with
	// InsertLedgerEntry must run both inside one transaction.
	AddAmount(ctx context.Context, id int64, amount float64) error
	InsertLedgerEntry(ctx context.Context, e *models.LedgerEntry) error
	RecentEntries(ctx context.Context, targetID int64, limit int) ([]models.LedgerEntry, error)

	// History returns every ledger entry joined with its target, ordered
	// by target name then entry time. Feeds the export report.
	History(ctx context.Context, userID int64) ([]models.ExportRow, error)
}
