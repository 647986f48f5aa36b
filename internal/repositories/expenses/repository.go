// Package expenses persists the append-only spend log.
package expenses

import (
	"context"

	"github.com/akarpov/savingsbot/internal/models"
)

// Repository is the storage contract for expenses.
type Repository interface {
	Insert(ctx context.Context, e *models.Expense) (int64, error)

	// ListSince returns expenses recorded at or after the given
	// timestamp (persisted format). An empty since means all time.
	ListSince(ctx context.Context, userID int64, since string) ([]models.Expense, error)

	// TotalsSince returns per-currency spend totals within the window.
	TotalsSince(ctx context.Context, userID int64, since string) (map[string]float64, error)
}
