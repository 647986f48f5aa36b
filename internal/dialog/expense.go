package dialog

import (
	"context"
	"strings"

	"github.com/akarpov/savingsbot/internal/alerts"
	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/moneyx"
)

func (e *Engine) startExpense(chatID int64) *Outcome {
	e.put(chatID, stateExpenseAmount, &expenseDraft{})
	return textOutcome("Spending again? Fine. How much?")
}

func (e *Engine) expenseAmount(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*expenseDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new expense")
	}
	amount, err := moneyx.Parse(input)
	if err != nil {
		return textOutcome(badAmountText)
	}
	d.Amount = amount
	e.put(chatID, stateExpenseCurrency, d)
	return textOutcome("In what currency?")
}

func (e *Engine) expenseCurrency(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*expenseDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new expense")
	}
	currency, ok := normalizeCurrency(input)
	if !ok {
		return textOutcome("A currency code, please. Three-ish letters, like USD.")
	}
	d.Currency = currency
	e.put(chatID, stateExpenseReason, d)
	return textOutcome("And what was it for this time?")
}

func (e *Engine) expenseReason(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*expenseDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new expense")
	}
	if input == "" {
		return textOutcome("Give me a reason. 'Stuff' is technically acceptable.")
	}
	d.Reason = input
	e.put(chatID, stateExpenseCategory, d)
	return textOutcome("Which category? (" + categoryList() + ")\nAnything else lands in 'other'.")
}

func (e *Engine) expenseCategoryAndSave(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*expenseDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new expense")
	}
	category := models.ParseCategory(input)

	_, err := e.deps.Expenses.Record(ctx, chatID, d.Amount, d.Currency, d.Reason, category)
	if err != nil {
		return e.failTerminal(ctx, chatID, "record expense", err)
	}
	e.sessions.Clear(chatID)

	o := textOutcome("Noted: " + moneyx.Format(d.Amount) + " " + d.Currency +
		" on '" + d.Reason + "' (" + string(category) + "). Your wallet felt that.")

	// Budget aggregation is best-effort after the expense is durable: a
	// failed increment loses the running total, not the expense.
	b, matched, err := e.deps.Budgets.ApplySpend(ctx, chatID, category, d.Currency, d.Amount)
	if err != nil {
		e.deps.Log.Error(ctx, "budget spend update failed", "chat_id", chatID, "category", string(category), "error", err)
		return o
	}
	if matched {
		if alert := alerts.EvaluateBudget(b); alert != nil {
			o.addText(alert.Text)
		}
	}
	return o
}

func categoryList() string {
	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
