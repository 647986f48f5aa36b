package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akarpov/savingsbot/internal/dbx"
	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/repositories/payments"
)

// PaymentService manages payment trackers. Record follows the same
// atomic ledger+aggregate contract as TargetService.Contribute.
type PaymentService interface {
	Create(ctx context.Context, p *models.Payment) (*models.Payment, error)
	Get(ctx context.Context, id int64) (*models.Payment, error)
	List(ctx context.Context, userID int64) ([]models.Payment, error)
	Delete(ctx context.Context, id int64) error

	Record(ctx context.Context, paymentID int64, amount float64) (*models.Payment, error)
	MarkNotified90(ctx context.Context, id int64) error
	RecentRecords(ctx context.Context, paymentID int64, limit int) ([]models.PaymentRecord, error)
}

type paymentService struct {
	db   *sql.DB
	repo payments.Repository
	now  func() string
}

// NewPaymentService returns a PaymentService backed by the given database.
func NewPaymentService(db *sql.DB) PaymentService {
	return &paymentService{db: db, repo: payments.NewSQLiteRepository(db), now: models.Now}
}

func (s *paymentService) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	p.CreatedAt = s.now()
	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *paymentService) Get(ctx context.Context, id int64) (*models.Payment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *paymentService) List(ctx context.Context, userID int64) ([]models.Payment, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *paymentService) Delete(ctx context.Context, id int64) error {
	// History rows go with the payment via ON DELETE CASCADE.
	return s.repo.Delete(ctx, id)
}

func (s *paymentService) Record(ctx context.Context, paymentID int64, amount float64) (*models.Payment, error) {
	paidAt := s.now()
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := payments.NewSQLiteRepository(tx)
		if err := r.InsertRecord(ctx, &models.PaymentRecord{PaymentID: paymentID, Amount: amount, PaidAt: paidAt}); err != nil {
			return err
		}
		return r.AddAmount(ctx, paymentID, amount)
	})
	if err != nil {
		return nil, fmt.Errorf("payment record failed: %w", err)
	}
	return s.repo.GetByID(ctx, paymentID)
}

func (s *paymentService) MarkNotified90(ctx context.Context, id int64) error {
	return s.repo.SetNotified90(ctx, id)
}

func (s *paymentService) RecentRecords(ctx context.Context, paymentID int64, limit int) ([]models.PaymentRecord, error) {
	return s.repo.RecentRecords(ctx, paymentID, limit)
}
