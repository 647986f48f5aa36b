// Package alerts evaluates progress and budget thresholds after each state
// change and decides whether an alert should be emitted.
package alerts

import (
	"fmt"

	"github.com/akarpov/savingsbot/internal/models"
)

type Kind string

const (
	KindGoalReached    Kind = "goal_reached"
	KindAlmostThere    Kind = "almost_there"
	KindDebtCleared    Kind = "debt_cleared"
	KindBudgetExceeded Kind = "budget_exceeded"
	KindBudgetWarning  Kind = "budget_warning"
)

// Alert is a user-facing notification decision. SetNotified90 asks the
// caller to permanently set the one-shot 90% flag on the evaluated entity;
// alerts without it may fire again on every subsequent evaluation.
type Alert struct {
	Kind          Kind
	Text          string
	SetNotified90 bool
}

// EvaluateTarget applies the progress thresholds to a goal or debt.
// Goals: >=100% always alerts (repeatable); >=90% alerts once, guarded by
// the one-shot flag. Debts: >=100% alerts every time, no flag — the
// asymmetry is deliberate.
func EvaluateTarget(t *models.Target) *Alert {
	return evaluateProgress(t.Name, t.Kind, t.Progress(), t.Notified90)
}

// EvaluatePayment applies the goal rules to a payment tracker, which
// carries the same one-shot flag.
func EvaluatePayment(p *models.Payment) *Alert {
	return evaluateProgress(p.Name, models.KindGoal, p.Progress(), p.Notified90)
}

func evaluateProgress(name string, kind models.TargetKind, progress float64, notified bool) *Alert {
	switch {
	case kind == models.KindGoal && progress >= 100:
		return &Alert{
			Kind: KindGoalReached,
			Text: fmt.Sprintf("🎉 GOAL REACHED! 🎉\nYou hit your target for '%s'.", name),
		}
	case kind == models.KindGoal && progress >= 90 && !notified:
		return &Alert{
			Kind:          KindAlmostThere,
			Text:          fmt.Sprintf("🔥 Almost there! Over 90%% of the way to '%s'.", name),
			SetNotified90: true,
		}
	case kind == models.KindDebt && progress >= 100:
		return &Alert{
			Kind: KindDebtCleared,
			Text: fmt.Sprintf("✅ DEBT CLEARED! ✅\nYou paid off '%s'. You are free.", name),
		}
	}
	return nil
}

// EvaluateBudget applies the spend thresholds: >=100% exceeded, >=80%
// warning. Both are repeatable; budgets carry no one-shot flag.
func EvaluateBudget(b *models.Budget) *Alert {
	pct := b.SpentPercent()
	switch {
	case pct >= 100:
		return &Alert{
			Kind: KindBudgetExceeded,
			Text: fmt.Sprintf("🚨 Budget exceeded for %s (%s): %.0f%% of the limit spent.", b.Category, b.Currency, pct),
		}
	case pct >= 80:
		return &Alert{
			Kind: KindBudgetWarning,
			Text: fmt.Sprintf("⚠️ Heads up: %s budget (%s) is at %.0f%%.", b.Category, b.Currency, pct),
		}
	}
	return nil
}
