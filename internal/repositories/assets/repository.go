// Package assets persists directly-mutated holdings (no ledger).
package assets

import (
	"context"

	"github.com/akarpov/savingsbot/internal/models"
)

// Repository is the storage contract for assets.
type Repository interface {
	// Upsert inserts the asset or, when (user, name, currency) already
	// exists, overwrites amount and asset_type on the existing row.
	// Returns the id of the row written.
	Upsert(ctx context.Context, a *models.Asset) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Asset, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Asset, error)

	// AddAmount applies a signed delta to the balance and bumps
	// updated_at. Negative resulting balances are permitted.
	AddAmount(ctx context.Context, id int64, delta float64, updatedAt string) error
}
