package dialog

import (
	"context"

	"github.com/google/uuid"

	"github.com/akarpov/savingsbot/internal/format"
	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/moneyx"
)

const badAmountText = "That doesn't look like a number to me. Try something like 250 or 1,250.50."

func (e *Engine) startGoal(chatID int64) *Outcome {
	e.put(chatID, stateGoalName, &targetDraft{Kind: models.KindGoal})
	return textOutcome("A new goal! Let's see if this one sticks. What are we saving for?")
}

func (e *Engine) startDebt(chatID int64) *Outcome {
	e.put(chatID, stateDebtName, &targetDraft{Kind: models.KindDebt})
	return textOutcome("Facing it head on, I respect that. What should we call this debt?")
}

func (e *Engine) targetName(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*targetDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new goal")
	}
	if input == "" {
		return textOutcome("A name, please. Even a bad one.")
	}
	d.Name = input
	next := stateGoalAmount
	if d.Kind == models.KindDebt {
		next = stateDebtAmount
	}
	e.put(chatID, next, d)
	return textOutcome("'" + input + "', got it. What's the total amount?")
}

func (e *Engine) targetAmount(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*targetDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new goal")
	}
	amount, err := moneyx.Parse(input)
	if err != nil {
		return textOutcome(badAmountText)
	}
	d.Amount = amount
	next := stateGoalCurrency
	if d.Kind == models.KindDebt {
		next = stateDebtCurrency
	}
	e.put(chatID, next, d)
	return textOutcome("And the currency? (USD, EUR, RSD...)")
}

func (e *Engine) targetCurrencyAndSave(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*targetDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new goal")
	}
	currency, ok := normalizeCurrency(input)
	if !ok {
		return textOutcome("A currency code, please. Three-ish letters, like USD.")
	}

	t, err := e.deps.Targets.Create(ctx, chatID, d.Name, d.Amount, currency, d.Kind)
	if isDuplicate(err) {
		// The collision is resolved outside the dialogue: no in-place retry.
		e.sessions.Clear(chatID)
		return textOutcome("You already have '" + d.Name + "'. Start over with a different name.")
	}
	if err != nil {
		return e.failTerminal(ctx, chatID, "create target", err)
	}

	e.sessions.Clear(chatID)
	if t.Kind == models.KindDebt {
		return textOutcome("Debt '" + t.Name + "' is on the books: " +
			moneyx.Format(t.TargetAmount) + " " + t.Currency + ". Time to chip away at it with 'add'.")
	}
	return textOutcome("Goal '" + t.Name + "' locked in: " +
		moneyx.Format(t.TargetAmount) + " " + t.Currency + ". Feed it with 'add'.")
}

func (e *Engine) viewAll(ctx context.Context, chatID int64) *Outcome {
	e.sessions.Clear(chatID)
	ts, err := e.deps.Targets.List(ctx, chatID)
	if err != nil {
		return e.failTerminal(ctx, chatID, "list targets", err)
	}
	return textOutcome(format.TargetList(ts))
}

func (e *Engine) export(ctx context.Context, chatID int64) *Outcome {
	e.sessions.Clear(chatID)
	rep, err := e.deps.Reports.Export(ctx, chatID)
	if err != nil {
		return e.failTerminal(ctx, chatID, "export", err)
	}
	if len(rep.Rows) == 0 {
		return textOutcome("Nothing to export yet. Make some history first.")
	}

	data, err := format.ExportCSV(rep.Rows)
	if err != nil {
		return e.failTerminal(ctx, chatID, "export csv", err)
	}
	return &Outcome{Document: &Document{
		Name:    "savings_export_" + uuid.NewString()[:8] + ".csv",
		Data:    data,
		Caption: format.ExportSummary(rep),
	}}
}

// normalizeCurrency upper-cases a currency code and rejects junk that would
// pollute the per-currency grouping.
func normalizeCurrency(s string) (string, bool) {
	c := ""
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if r < 'A' || r > 'Z' {
			return "", false
		}
		c += string(r)
	}
	if len(c) < 2 || len(c) > 6 {
		return "", false
	}
	return c, true
}
