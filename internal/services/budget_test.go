package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/savingsbot/internal/models"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.ParseInLocation(models.TimeLayout, s, time.Local)
	require.NoError(t, err)
	return v
}

func TestBudgetUpsertKeepsSpent(t *testing.T) {
	db := newTestDB(t, "svc_budget_upsert")
	svc := NewBudgetService(db)
	ctx := context.Background()

	b, err := svc.Upsert(ctx, 1, models.CategoryFood, 100, "USD", models.PeriodMonthly)
	require.NoError(t, err)

	_, matched, err := svc.ApplySpend(ctx, 1, models.CategoryFood, "USD", 40)
	require.NoError(t, err)
	require.True(t, matched)

	// Reconfiguring the limit must not reset the running spend.
	b2, err := svc.Upsert(ctx, 1, models.CategoryFood, 200, "USD", models.PeriodWeekly)
	require.NoError(t, err)
	assert.Equal(t, b.ID, b2.ID)
	assert.Equal(t, 200.0, b2.Amount)
	assert.Equal(t, models.PeriodWeekly, b2.Period)
	assert.Equal(t, 40.0, b2.CurrentSpent)
}

func TestApplySpendMatchesExactTriple(t *testing.T) {
	db := newTestDB(t, "svc_budget_spend")
	svc := NewBudgetService(db)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, 1, models.CategoryFood, 100, "USD", models.PeriodMonthly)
	require.NoError(t, err)

	b, matched, err := svc.ApplySpend(ctx, 1, models.CategoryFood, "USD", 30)
	require.NoError(t, err)
	require.True(t, matched)
	assert.Equal(t, 30.0, b.CurrentSpent)

	// Wrong currency, wrong category, wrong user: silently no-op.
	for _, tc := range []struct {
		userID   int64
		category models.BudgetCategory
		currency string
	}{
		{1, models.CategoryFood, "EUR"},
		{1, models.CategoryTransport, "USD"},
		{2, models.CategoryFood, "USD"},
	} {
		_, matched, err := svc.ApplySpend(ctx, tc.userID, tc.category, tc.currency, 30)
		require.NoError(t, err)
		assert.False(t, matched)
	}

	bs, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, bs, 1)
	assert.Equal(t, 30.0, bs[0].CurrentSpent)
}

func TestAssetUpsertIdentityAndDelta(t *testing.T) {
	db := newTestDB(t, "svc_asset")
	svc := NewAssetService(db)
	ctx := context.Background()

	a, err := svc.Upsert(ctx, 1, "Cash", 100, "USD", "cash")
	require.NoError(t, err)

	// Same (user, name, currency): overwrite in place.
	a2, err := svc.Upsert(ctx, 1, "Cash", 250, "USD", "savings")
	require.NoError(t, err)
	assert.Equal(t, a.ID, a2.ID)
	assert.Equal(t, 250.0, a2.Amount)
	assert.Equal(t, "savings", a2.AssetType)

	// Different currency is a different asset.
	a3, err := svc.Upsert(ctx, 1, "Cash", 50, "EUR", "cash")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, a3.ID)

	a2, err = svc.ApplyDelta(ctx, a.ID, 50, DeltaAdd)
	require.NoError(t, err)
	assert.Equal(t, 300.0, a2.Amount)

	// Balances may go negative.
	a2, err = svc.ApplyDelta(ctx, a.ID, 1000, DeltaSubtract)
	require.NoError(t, err)
	assert.Equal(t, -700.0, a2.Amount)

	_, err = svc.ApplyDelta(ctx, a.ID, 0, DeltaAdd)
	assert.Error(t, err, "zero magnitude is rejected")
}

func TestExpenseWindowTotals(t *testing.T) {
	db := newTestDB(t, "svc_expense")
	svc := NewExpenseService(db).(*expenseService)
	ctx := context.Background()

	// Pin the clock so window boundaries are deterministic.
	base := mustTime(t, "2026-09-01 12:00:00")
	svc.nowTime = func() time.Time { return base }

	record := func(amount float64, currency, spentAt string) {
		_, err := db.ExecContext(ctx,
			`INSERT INTO expenses (user_id, amount, currency, reason, category, spent_at) VALUES (1, ?, ?, 'x', 'food', ?)`,
			amount, currency, spentAt)
		require.NoError(t, err)
	}
	record(10, "USD", "2026-09-01 09:00:00") // today
	record(20, "USD", "2026-08-28 09:00:00") // this week
	record(40, "USD", "2026-08-10 09:00:00") // this month
	record(80, "EUR", "2026-01-01 09:00:00") // long ago

	totals, err := svc.Totals(ctx, 1, WindowToday)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"USD": 10}, totals)

	totals, err = svc.Totals(ctx, 1, WindowWeek)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"USD": 30}, totals)

	totals, err = svc.Totals(ctx, 1, WindowMonth)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"USD": 70}, totals)

	totals, err = svc.Totals(ctx, 1, WindowAll)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"USD": 70, "EUR": 80}, totals)
}
