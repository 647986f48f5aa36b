package dialog

import (
	"context"

	"github.com/akarpov/savingsbot/internal/format"
	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/moneyx"
)

func (e *Engine) startBudget(chatID int64) *Outcome {
	e.put(chatID, stateBudgetCategory, &budgetDraft{})
	return textOutcome("Setting limits, how adult of you. Which category? (" + categoryList() + ")")
}

func (e *Engine) budgetCategory(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*budgetDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new budget")
	}
	d.Category = models.ParseCategory(input)
	e.put(chatID, stateBudgetAmount, d)
	return textOutcome("'" + string(d.Category) + "' it is. What's the spending limit?")
}

func (e *Engine) budgetAmount(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*budgetDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new budget")
	}
	amount, err := moneyx.Parse(input)
	if err != nil {
		return textOutcome(badAmountText)
	}
	d.Amount = amount
	e.put(chatID, stateBudgetCurrency, d)
	return textOutcome("Currency?")
}

func (e *Engine) budgetCurrency(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*budgetDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new budget")
	}
	currency, ok := normalizeCurrency(input)
	if !ok {
		return textOutcome("A currency code, please. Three-ish letters, like USD.")
	}
	d.Currency = currency
	e.put(chatID, stateBudgetPeriod, d)
	return textOutcome("Weekly or monthly?")
}

func (e *Engine) budgetPeriodAndSave(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*budgetDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new budget")
	}
	period := models.ParsePeriod(input)

	b, err := e.deps.Budgets.Upsert(ctx, chatID, d.Category, d.Amount, d.Currency, period)
	if err != nil {
		return e.failTerminal(ctx, chatID, "upsert budget", err)
	}

	e.sessions.Clear(chatID)
	return textOutcome("Budget set: " + moneyx.Format(b.Amount) + " " + b.Currency + " " +
		string(b.Period) + " on " + string(b.Category) + ". I'll be watching.")
}

func (e *Engine) listBudgets(ctx context.Context, chatID int64) *Outcome {
	e.sessions.Clear(chatID)
	bs, err := e.deps.Budgets.List(ctx, chatID)
	if err != nil {
		return e.failTerminal(ctx, chatID, "list budgets", err)
	}
	return textOutcome(format.BudgetList(bs))
}
