package budgets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akarpov/savingsbot/internal/common"
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

func (r *SQLiteRepository) Upsert(ctx context.Context, b *models.Budget) (int64, error) {
	query := `INSERT INTO budgets (user_id, category, amount, currency, period, current_spent)
			VALUES (?, ?, ?, ?, ?, 0)
			ON CONFLICT(user_id, category, currency) DO UPDATE SET
				amount = excluded.amount,
				period = excluded.period`
	_, err := r.db.ExecContext(ctx, query, b.UserID, b.Category, b.Amount, b.Currency, b.Period)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert budget: %w", err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx,
		`SELECT id FROM budgets WHERE user_id = ? AND category = ? AND currency = ?`,
		b.UserID, b.Category, b.Currency).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to read back budget id: %w", err)
	}
	return id, nil
}

const budgetColumns = `id, user_id, category, amount, currency, period, current_spent`

func scanBudget(row interface{ Scan(dest ...any) error }) (*models.Budget, error) {
	var b models.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount, &b.Currency, &b.Period, &b.CurrentSpent)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Budget, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = ?`, id)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select budget: %w", err)
	}
	return b, nil
}

func (r *SQLiteRepository) Find(ctx context.Context, userID int64, category models.BudgetCategory, currency string) (*models.Budget, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = ? AND category = ? AND currency = ?`,
		userID, category, currency)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select budget: %w", err)
	}
	return b, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID int64) ([]models.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE user_id = ? ORDER BY category, currency`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select budgets: %w", err)
	}
	defer rows.Close()

	var result []models.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) AddSpent(ctx context.Context, id int64, amount float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET current_spent = current_spent + ? WHERE id = ?`, amount, id)
	if err != nil {
		return fmt.Errorf("failed to update current spent: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}
