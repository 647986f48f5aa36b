package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/repositories/expenses"
)

// Window is a report time range anchored at "now".
type Window string

const (
	WindowToday Window = "today"
	WindowWeek  Window = "7d"
	WindowMonth Window = "30d"
	WindowAll   Window = "all"
)

// Since returns the inclusive lower bound of the window in the persisted
// timestamp format. WindowAll returns "" which compares below every
// timestamp.
func (w Window) Since(now time.Time) string {
	switch w {
	case WindowToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Format(models.TimeLayout)
	case WindowWeek:
		return now.AddDate(0, 0, -7).Format(models.TimeLayout)
	case WindowMonth:
		return now.AddDate(0, 0, -30).Format(models.TimeLayout)
	default:
		return ""
	}
}

// Label returns the human-readable window name used in report headers.
func (w Window) Label() string {
	switch w {
	case WindowToday:
		return "today"
	case WindowWeek:
		return "last 7 days"
	case WindowMonth:
		return "last 30 days"
	default:
		return "all time"
	}
}

// ExpenseService records spends and produces windowed totals.
type ExpenseService interface {
	Record(ctx context.Context, userID int64, amount float64, currency, reason string, category models.BudgetCategory) (*models.Expense, error)
	ListWindow(ctx context.Context, userID int64, w Window) ([]models.Expense, error)
	Totals(ctx context.Context, userID int64, w Window) (map[string]float64, error)
}

type expenseService struct {
	db      *sql.DB
	repo    expenses.Repository
	nowTime func() time.Time
}

// NewExpenseService returns an ExpenseService backed by the given database.
func NewExpenseService(db *sql.DB) ExpenseService {
	return &expenseService{db: db, repo: expenses.NewSQLiteRepository(db), nowTime: time.Now}
}

func (s *expenseService) Record(ctx context.Context, userID int64, amount float64, currency, reason string, category models.BudgetCategory) (*models.Expense, error) {
	e := &models.Expense{
		UserID:   userID,
		Amount:   amount,
		Currency: currency,
		Reason:   reason,
		Category: category,
		SpentAt:  s.nowTime().Format(models.TimeLayout),
	}
	id, err := s.repo.Insert(ctx, e)
	if err != nil {
		return nil, err
	}
	e.ID = id
	return e, nil
}

func (s *expenseService) ListWindow(ctx context.Context, userID int64, w Window) ([]models.Expense, error) {
	return s.repo.ListSince(ctx, userID, w.Since(s.nowTime()))
}

func (s *expenseService) Totals(ctx context.Context, userID int64, w Window) (map[string]float64, error) {
	return s.repo.TotalsSince(ctx, userID, w.Since(s.nowTime()))
}
