// Package payments persists payment trackers and their append-only history.
package payments

import (
	"context"

	"github.com/akarpov/savingsbot/internal/models"
)

// Repository is the storage contract for payment trackers. Same aggregate
// rules as the targets repository: AddAmount paired with InsertRecord must
// run inside one transaction.
type Repository interface {
	Create(ctx context.Context, p *models.Payment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Payment, error)
	Delete(ctx context.Context, id int64) error
	SetNotified90(ctx context.Context, id int64) error

	AddAmount(ctx context.Context, id int64, amount float64) error
	InsertRecord(ctx context.Context, rec *models.PaymentRecord) error
	RecentRecords(ctx context.Context, paymentID int64, limit int) ([]models.PaymentRecord, error)
}
