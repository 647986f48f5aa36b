package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akarpov/savingsbot/internal/common"
	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/repositories/assets"
)

// DeltaOp selects the direction of an asset balance adjustment.
type DeltaOp string

const (
	DeltaAdd      DeltaOp = "add"
	DeltaSubtract DeltaOp = "subtract"
)

// AssetService manages directly-mutated holdings. Assets have no ledger:
// the deliberate asymmetry from targets.
type AssetService interface {
	// Upsert creates the asset, or updates amount and type when the
	// (user, name, currency) identity already exists.
	Upsert(ctx context.Context, userID int64, name string, amount float64, currency, assetType string) (*models.Asset, error)
	Get(ctx context.Context, id int64) (*models.Asset, error)
	List(ctx context.Context, userID int64) ([]models.Asset, error)

	// ApplyDelta adjusts the balance by magnitude in the given direction
	// and bumps updated_at. Non-positive magnitudes are rejected.
	// The resulting balance may go negative; no floor is enforced.
	ApplyDelta(ctx context.Context, id int64, magnitude float64, op DeltaOp) (*models.Asset, error)
}

type assetService struct {
	db   *sql.DB
	repo assets.Repository
	now  func() string
}

// NewAssetService returns an AssetService backed by the given database.
func NewAssetService(db *sql.DB) AssetService {
	return &assetService{db: db, repo: assets.NewSQLiteRepository(db), now: models.Now}
}

func (s *assetService) Upsert(ctx context.Context, userID int64, name string, amount float64, currency, assetType string) (*models.Asset, error) {
	now := s.now()
	a := &models.Asset{
		UserID:    userID,
		Name:      name,
		Amount:    amount,
		Currency:  currency,
		AssetType: assetType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.repo.Upsert(ctx, a)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *assetService) Get(ctx context.Context, id int64) (*models.Asset, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *assetService) List(ctx context.Context, userID int64) ([]models.Asset, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *assetService) ApplyDelta(ctx context.Context, id int64, magnitude float64, op DeltaOp) (*models.Asset, error) {
	if magnitude <= 0 {
		return nil, fmt.Errorf("%w: delta must be positive", common.ErrInvalidAmount)
	}
	delta := magnitude
	if op == DeltaSubtract {
		delta = -magnitude
	}
	if err := s.repo.AddAmount(ctx, id, delta, s.now()); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
