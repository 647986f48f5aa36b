package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/savingsbot/internal/common"
	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/storage"
)

func newTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestTargetCreateAndDuplicate(t *testing.T) {
	db := newTestDB(t, "svc_target_create")
	svc := NewTargetService(db)
	ctx := context.Background()

	tgt, err := svc.Create(ctx, 1, "Vacation", 1000, "USD", models.KindGoal)
	require.NoError(t, err)
	assert.Equal(t, "Vacation", tgt.Name)
	assert.NotEmpty(t, tgt.CreatedAt)

	_, err = svc.Create(ctx, 1, "Vacation", 500, "EUR", models.KindDebt)
	assert.True(t, errors.Is(err, common.ErrDuplicateName))

	// Same name under another user is fine.
	_, err = svc.Create(ctx, 2, "Vacation", 500, "EUR", models.KindGoal)
	assert.NoError(t, err)
}

func TestContributeKeepsLedgerAndAggregateInSync(t *testing.T) {
	db := newTestDB(t, "svc_contribute")
	svc := NewTargetService(db)
	ctx := context.Background()

	tgt, err := svc.Create(ctx, 1, "Vacation", 1000, "USD", models.KindGoal)
	require.NoError(t, err)

	updated, err := svc.Contribute(ctx, tgt.ID, 300)
	require.NoError(t, err)
	assert.Equal(t, 300.0, updated.CurrentAmount)

	updated, err = svc.Contribute(ctx, tgt.ID, 250)
	require.NoError(t, err)
	assert.Equal(t, 550.0, updated.CurrentAmount)

	entries, err := svc.RecentEntries(ctx, tgt.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var sum float64
	for _, e := range entries {
		sum += e.Amount
	}
	assert.Equal(t, updated.CurrentAmount, sum, "aggregate must equal ledger sum")
}

func TestContributeMissingTargetLeavesNoOrphans(t *testing.T) {
	db := newTestDB(t, "svc_contribute_missing")
	svc := NewTargetService(db)
	ctx := context.Background()

	_, err := svc.Contribute(ctx, 999, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM ledger_entries`).Scan(&n))
	assert.Equal(t, 0, n, "failed contribution must not leave a ledger row")
}

func TestDeleteCascadesLedger(t *testing.T) {
	db := newTestDB(t, "svc_delete_cascade")
	svc := NewTargetService(db)
	ctx := context.Background()

	tgt, err := svc.Create(ctx, 1, "Vacation", 1000, "USD", models.KindGoal)
	require.NoError(t, err)
	_, err = svc.Contribute(ctx, tgt.ID, 300)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, tgt.ID))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM ledger_entries`).Scan(&n))
	assert.Equal(t, 0, n)

	assert.True(t, errors.Is(svc.Delete(ctx, tgt.ID), common.ErrNotFound))
}

func TestMarkNotified90(t *testing.T) {
	db := newTestDB(t, "svc_notified")
	svc := NewTargetService(db)
	ctx := context.Background()

	tgt, err := svc.Create(ctx, 1, "Vacation", 100, "USD", models.KindGoal)
	require.NoError(t, err)
	require.False(t, tgt.Notified90)

	require.NoError(t, svc.MarkNotified90(ctx, tgt.ID))

	tgt, err = svc.Get(ctx, tgt.ID)
	require.NoError(t, err)
	assert.True(t, tgt.Notified90)
}

func TestExportAggregates(t *testing.T) {
	db := newTestDB(t, "svc_export")
	targets := NewTargetService(db)
	reports := NewReportService(db)
	ctx := context.Background()

	g, err := targets.Create(ctx, 1, "Vacation", 1000, "USD", models.KindGoal)
	require.NoError(t, err)
	d, err := targets.Create(ctx, 1, "Loan", 500, "EUR", models.KindDebt)
	require.NoError(t, err)

	_, err = targets.Contribute(ctx, g.ID, 300)
	require.NoError(t, err)
	_, err = targets.Contribute(ctx, g.ID, 250)
	require.NoError(t, err)
	_, err = targets.Contribute(ctx, d.ID, 100)
	require.NoError(t, err)

	rep, err := reports.Export(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rep.Rows, 3)
	assert.Equal(t, 550.0, rep.TotalSaved["USD"])
	assert.Equal(t, 100.0, rep.TotalPaid["EUR"])
	assert.Equal(t, 1, rep.GoalCount)
	assert.Equal(t, 1, rep.DebtCount)
}
