package assets

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

func (r *SQLiteRepository) Upsert(ctx context.Context, a *models.Asset) (int64, error) {
	query := `INSERT INTO assets (user_id, name, amount, currency, asset_type, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(user_id, name, currency) DO UPDATE SET
				amount = excluded.amount,
				asset_type = excluded.asset_type,
				updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		a.UserID, a.Name, a.Amount, a.Currency, a.AssetType, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert asset: %w", err)
	}

	// LastInsertId is unreliable on the conflict path; read the row back.
	var id int64
	err = r.db.QueryRowContext(ctx,
		`SELECT id FROM assets WHERE user_id = ? AND name = ? AND currency = ?`,
		a.UserID, a.Name, a.Currency).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to read back asset id: %w", err)
	}
	return id, nil
}

const assetColumns = `id, user_id, name, amount, currency, asset_type, created_at, updated_at`

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Asset, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = ?`, id)
	var a models.Asset
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Amount, &a.Currency, &a.AssetType, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select asset: %w", err)
	}
	return &a, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID int64) ([]models.Asset, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select assets: %w", err)
	}
	defer rows.Close()

	var result []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Amount, &a.Currency, &a.AssetType, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) AddAmount(ctx context.Context, id int64, delta float64, updatedAt string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assets SET amount = amount + ?, updated_at = ? WHERE id = ?`,
		delta, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update asset amount: %w", err)
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
