package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/savingsbot/internal/models"
)

func TestEvaluateTarget(t *testing.T) {
	tests := []struct {
		name     string
		kind     models.TargetKind
		current  float64
		notified bool
		want     Kind
		none     bool
		setsFlag bool
	}{
		{name: "goal below thresholds", kind: models.KindGoal, current: 50, none: true},
		{name: "goal at 90 first time", kind: models.KindGoal, current: 90, want: KindAlmostThere, setsFlag: true},
		{name: "goal at 90 already notified", kind: models.KindGoal, current: 95, notified: true, none: true},
		{name: "goal at 100", kind: models.KindGoal, current: 100, want: KindGoalReached},
		{name: "goal over 100 repeats even when notified", kind: models.KindGoal, current: 150, notified: true, want: KindGoalReached},
		{name: "debt at 90 stays quiet", kind: models.KindDebt, current: 95, none: true},
		{name: "debt at 100", kind: models.KindDebt, current: 120, want: KindDebtCleared},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := EvaluateTarget(&models.Target{
				Name:          "x",
				Kind:          tt.kind,
				TargetAmount:  100,
				CurrentAmount: tt.current,
				Notified90:    tt.notified,
			})
			if tt.none {
				assert.Nil(t, a)
				return
			}
			require.NotNil(t, a)
			assert.Equal(t, tt.want, a.Kind)
			assert.Equal(t, tt.setsFlag, a.SetNotified90)
		})
	}
}

func TestEvaluatePaymentUsesGoalRules(t *testing.T) {
	a := EvaluatePayment(&models.Payment{Name: "rent", TargetAmount: 100, CurrentAmount: 92})
	require.NotNil(t, a)
	assert.Equal(t, KindAlmostThere, a.Kind)
	assert.True(t, a.SetNotified90)

	a = EvaluatePayment(&models.Payment{Name: "rent", TargetAmount: 100, CurrentAmount: 92, Notified90: true})
	assert.Nil(t, a)
}

func TestEvaluateBudget(t *testing.T) {
	b := &models.Budget{Category: models.CategoryFood, Currency: "USD", Amount: 100}

	b.CurrentSpent = 50
	assert.Nil(t, EvaluateBudget(b))

	b.CurrentSpent = 80
	a := EvaluateBudget(b)
	require.NotNil(t, a)
	assert.Equal(t, KindBudgetWarning, a.Kind)
	assert.False(t, a.SetNotified90, "budget alerts are always repeatable")

	b.CurrentSpent = 120
	a = EvaluateBudget(b)
	require.NotNil(t, a)
	assert.Equal(t, KindBudgetExceeded, a.Kind)
}

func TestZeroTargetAmountNeverAlerts(t *testing.T) {
	assert.Nil(t, EvaluateTarget(&models.Target{Kind: models.KindGoal, TargetAmount: 0, CurrentAmount: 500}))
	assert.Nil(t, EvaluateBudget(&models.Budget{Amount: 0, CurrentSpent: 500}))
}
