package services

import (
	"context"
	"database/sql"

	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/repositories/targets"
)

// Export is the material consumed by the export renderer: the flat history
// plus per-currency and per-kind summary aggregates.
type Export struct {
	Rows []models.ExportRow

	// TotalSaved and TotalPaid sum ledger amounts per currency for goals
	// and debts respectively. Different currencies are never summed
	// together.
	TotalSaved map[string]float64
	TotalPaid  map[string]float64

	GoalCount int
	DebtCount int
}

// ReportService assembles export material from the entity store.
type ReportService interface {
	Export(ctx context.Context, userID int64) (*Export, error)
}

type reportService struct {
	db   *sql.DB
	repo targets.Repository
}

// NewReportService returns a ReportService backed by the given database.
func NewReportService(db *sql.DB) ReportService {
	return &reportService{db: db, repo: targets.NewSQLiteRepository(db)}
}

func (s *reportService) Export(ctx context.Context, userID int64) (*Export, error) {
	rows, err := s.repo.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	e := &Export{
		Rows:       rows,
		TotalSaved: make(map[string]float64),
		TotalPaid:  make(map[string]float64),
	}
	for _, row := range rows {
		switch row.Kind {
		case models.KindGoal:
			e.TotalSaved[row.Currency] += row.Amount
		case models.KindDebt:
			e.TotalPaid[row.Currency] += row.Amount
		}
	}
	for _, t := range all {
		switch t.Kind {
		case models.KindGoal:
			e.GoalCount++
		case models.KindDebt:
			e.DebtCount++
		}
	}
	return e, nil
}
