// Package services holds the business layer: entity lifecycles and the
// derived-state rules coupling ledgers to their aggregates.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akarpov/savingsbot/internal/dbx"
	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/repositories/targets"
)

// TargetService manages goals and debts and their contribution ledger.
type TargetService interface {
	Create(ctx context.Context, userID int64, name string, amount float64, currency string, kind models.TargetKind) (*models.Target, error)
	Get(ctx context.Context, id int64) (*models.Target, error)
	List(ctx context.Context, userID int64) ([]models.Target, error)
	Delete(ctx context.Context, id int64) error

	// Contribute atomically appends one ledger entry and increments the
	// target's current_amount by the same value, then returns the updated
	// target. Both writes commit together or neither does.
	Contribute(ctx context.Context, targetID int64, amount float64) (*models.Target, error)

	// MarkNotified90 permanently sets the one-shot 90% flag.
	MarkNotified90(ctx context.Context, id int64) error

	RecentEntries(ctx context.Context, targetID int64, limit int) ([]models.LedgerEntry, error)
}

type targetService struct {
	db   *sql.DB
	repo targets.Repository
	now  func() string
}

// NewTargetService returns a TargetService backed by the given database.
func NewTargetService(db *sql.DB) TargetService {
	return &targetService{db: db, repo: targets.NewSQLiteRepository(db), now: models.Now}
}

func (s *targetService) Create(ctx context.Context, userID int64, name string, amount float64, currency string, kind models.TargetKind) (*models.Target, error) {
	t := &models.Target{
		UserID:       userID,
		Name:         name,
		TargetAmount: amount,
		Currency:     currency,
		Kind:         kind,
		CreatedAt:    s.now(),
	}
	id, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *targetService) Get(ctx context.Context, id int64) (*models.Target, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *targetService) List(ctx context.Context, userID int64) ([]models.Target, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *targetService) Delete(ctx context.Context, id int64) error {
	// Ledger rows go with the target via ON DELETE CASCADE.
	return s.repo.Delete(ctx, id)
}

func (s *targetService) Contribute(ctx context.Context, targetID int64, amount float64) (*models.Target, error) {
	savedAt := s.now()
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := targets.NewSQLiteRepository(tx)
		if err := r.InsertLedgerEntry(ctx, &models.LedgerEntry{TargetID: targetID, Amount: amount, SavedAt: savedAt}); err != nil {
			return err
		}
		return r.AddAmount(ctx, targetID, amount)
	})
	if err != nil {
		return nil, fmt.Errorf("contribution failed: %w", err)
	}
	return s.repo.GetByID(ctx, targetID)
}

func (s *targetService) MarkNotified90(ctx context.Context, id int64) error {
	return s.repo.SetNotified90(ctx, id)
}

func (s *targetService) RecentEntries(ctx context.Context, targetID int64, limit int) ([]models.LedgerEntry, error) {
	return s.repo.RecentEntries(ctx, targetID, limit)
}
