package targets

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

func (r *SQLiteRepository) Create(ctx context.Context, t *models.Target) (int64, error) {
	query := `INSERT INTO targets (user_id, name, target_amount, current_amount, currency, kind, notified_90_percent, created_at)
			VALUES (?, ?, ?, 0, ?, ?, 0, ?)`
	res, err := r.db.ExecContext(ctx, query, t.UserID, t.Name, t.TargetAmount, t.Currency, t.Kind, t.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return 0, common.ErrDuplicateName
		}
		return 0, fmt.Errorf("failed to insert target: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}
	return id, nil
}

const targetColumns = `id, user_id, name, target_amount, current_amount, currency, kind, notified_90_percent, created_at`

func scanTarget(row interface{ Scan(dest ...any) error }) (*models.Target, error) {
	var t models.Target
	var notified int
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.TargetAmount, &t.CurrentAmount, &t.Currency, &t.Kind, &notified, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Notified90 = notified != 0
	return &t, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Target, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+targetColumns+` FROM targets WHERE id = ?`, id)
	t, err := scanTarget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select target: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID int64) ([]models.Target, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+targetColumns+` FROM targets WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select targets: %w", err)
	}
	defer rows.Close()

	var result []models.Target
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM targets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete target: %w", err)
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

func (r *SQLiteRepository) SetNotified90(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE targets SET notified_90_percent = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to set notified flag: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) AddAmount(ctx context.Context, id int64, amount float64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE targets SET current_amount = current_amount + ? WHERE id = ?`, amount, id)
	if err != nil {
		return fmt.Errorf("failed to update current amount: %w", err)
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

func (r *SQLiteRepository) InsertLedgerEntry(ctx context.Context, e *models.LedgerEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ledger_entries (target_id, amount, saved_at) VALUES (?, ?, ?)`,
		e.TargetID, e.Amount, e.SavedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrNotFound
		}
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) RecentEntries(ctx context.Context, targetID int64, limit int) ([]models.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, target_id, amount, saved_at FROM ledger_entries WHERE target_id = ? ORDER BY saved_at DESC, id DESC LIMIT ?`,
		targetID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select ledger entries: %w", err)
	}
	defer rows.Close()

	var result []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.ID, &e.TargetID, &e.Amount, &e.SavedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) History(ctx context.Context, userID int64) ([]models.ExportRow, error) {
	query := `SELECT t.name, t.kind, t.target_amount, t.currency, l.amount, l.saved_at
			FROM targets t JOIN ledger_entries l ON t.id = l.target_id
			WHERE t.user_id = ?
			ORDER BY t.name, l.saved_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select history: %w", err)
	}
	defer rows.Close()

	var result []models.ExportRow
	for rows.Next() {
		var row models.ExportRow
		if err := rows.Scan(&row.Name, &row.Kind, &row.TargetAmount, &row.Currency, &row.Amount, &row.SavedAt); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
