// Package budgets persists spending limits keyed by (user, category, currency).
package budgets

import (
	"context"

	"github.com/akarpov/savingsbot/internal/models"
)

// Repository is the storage contract for budgets.
type Repository interface {
	// Upsert inserts the budget or, when (user, category, currency)
	// already exists, overwrites amount and period on the existing row.
	// current_spent is never touched by an upsert.
	Upsert(ctx context.Context, b *models.Budget) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Budget, error)
	Find(ctx context.Context, userID int64, category models.BudgetCategory, currency string) (*models.Budget, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Budget, error)

	// AddSpent increments current_spent. It is never decremented and
	// never reset by a period rollover.
	AddSpent(ctx context.Context, id int64, amount float64) error
}
