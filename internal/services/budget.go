package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akarpov/savingsbot/internal/common"
	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/repositories/budgets"
)

// BudgetService manages spending limits and their running spend totals.
type BudgetService interface {
	// Upsert creates or reconfigures a budget for (user, category,
	// currency). current_spent survives a reconfiguration.
	Upsert(ctx context.Context, userID int64, category models.BudgetCategory, amount float64, currency string, period models.BudgetPeriod) (*models.Budget, error)
	List(ctx context.Context, userID int64) ([]models.Budget, error)

	// ApplySpend increments current_spent on the budget matching the
	// exact (user, category, currency) triple and returns the updated
	// budget. The absence of a match is not an error: the boolean is
	// false and the budget nil.
	ApplySpend(ctx context.Context, userID int64, category models.BudgetCategory, currency string, amount float64) (*models.Budget, bool, error)
}

type budgetService struct {
	db   *sql.DB
	repo budgets.Repository
}

// NewBudgetService returns a BudgetService backed by the given database.
func NewBudgetService(db *sql.DB) BudgetService {
	return &budgetService{db: db, repo: budgets.NewSQLiteRepository(db)}
}

func (s *budgetService) Upsert(ctx context.Context, userID int64, category models.BudgetCategory, amount float64, currency string, period models.BudgetPeriod) (*models.Budget, error) {
	b := &models.Budget{
		UserID:   userID,
		Category: category,
		Amount:   amount,
		Currency: currency,
		Period:   period,
	}
	id, err := s.repo.Upsert(ctx, b)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *budgetService) List(ctx context.Context, userID int64) ([]models.Budget, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *budgetService) ApplySpend(ctx context.Context, userID int64, category models.BudgetCategory, currency string, amount float64) (*models.Budget, bool, error) {
	b, err := s.repo.Find(ctx, userID, category, currency)
	if errors.Is(err, common.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := s.repo.AddSpent(ctx, b.ID, amount); err != nil {
		return nil, false, err
	}
	updated, err := s.repo.GetByID(ctx, b.ID)
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}
