package expenses

import (
	"context"
	"fmt"

	"github.com/akarpov/savingsbot/internal/dbx"
	"github.com/akarpov/savingsbot/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, e *models.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, amount, currency, reason, category, spent_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Amount, e.Currency, e.Reason, e.Category, e.SpentAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) ListSince(ctx context.Context, userID int64, since string) ([]models.Expense, error) {
	// The persisted timestamp format sorts chronologically, so a plain
	// string comparison bounds the window.
	query := `SELECT id, user_id, amount, currency, reason, category, spent_at
			FROM expenses WHERE user_id = ? AND spent_at >= ? ORDER BY spent_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to select expenses: %w", err)
	}
	defer rows.Close()

	var result []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Currency, &e.Reason, &e.Category, &e.SpentAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) TotalsSince(ctx context.Context, userID int64, since string) (map[string]float64, error) {
	query := `SELECT currency, SUM(amount) FROM expenses
			WHERE user_id = ? AND spent_at >= ? GROUP BY currency`
	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to select expense totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var currency string
		var total float64
		if err := rows.Scan(&currency, &total); err != nil {
			return nil, err
		}
		totals[currency] = total
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return totals, nil
}
