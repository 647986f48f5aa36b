package payments

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

func (r *SQLiteRepository) Create(ctx context.Context, p *models.Payment) (int64, error) {
	query := `INSERT INTO payments (user_id, name, recipient, target_amount, current_amount, currency, payment_amount, payment_frequency, notified_90_percent, created_at)
			VALUES (?, ?, ?, ?, 0, ?, ?, ?, 0, ?)`
	res, err := r.db.ExecContext(ctx, query,
		p.UserID, p.Name, p.Recipient, p.TargetAmount, p.Currency, p.PaymentAmount, p.PaymentFrequency, p.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return 0, common.ErrDuplicateName
		}
		return 0, fmt.Errorf("failed to insert payment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}
	return id, nil
}

const paymentColumns = `id, user_id, name, recipient, target_amount, current_amount, currency, payment_amount, payment_frequency, notified_90_percent, created_at`

func scanPayment(row interface{ Scan(dest ...any) error }) (*models.Payment, error) {
	var p models.Payment
	var notified int
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Recipient, &p.TargetAmount, &p.CurrentAmount,
		&p.Currency, &p.PaymentAmount, &p.PaymentFrequency, &notified, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Notified90 = notified != 0
	return &p, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select payment: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID int64) ([]models.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select payments: %w", err)
	}
	defer rows.Close()

	var result []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
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
	_, err := r.db.ExecContext(ctx, `UPDATE payments SET notified_90_percent = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to set notified flag: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) AddAmount(ctx context.Context, id int64, amount float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET current_amount = current_amount + ? WHERE id = ?`, amount, id)
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

func (r *SQLiteRepository) InsertRecord(ctx context.Context, rec *models.PaymentRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payment_records (payment_id, amount, paid_at) VALUES (?, ?, ?)`,
		rec.PaymentID, rec.Amount, rec.PaidAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrNotFound
		}
		return fmt.Errorf("failed to insert payment record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) RecentRecords(ctx context.Context, paymentID int64, limit int) ([]models.PaymentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, payment_id, amount, paid_at FROM payment_records WHERE payment_id = ? ORDER BY paid_at DESC, id DESC LIMIT ?`,
		paymentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select payment records: %w", err)
	}
	defer rows.Close()

	var result []models.PaymentRecord
	for rows.Next() {
		var rec models.PaymentRecord
		if err := rows.Scan(&rec.ID, &rec.PaymentID, &rec.Amount, &rec.PaidAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
