package dialog

import (
	"context"

	"github.com/akarpov/savingsbot/internal/alerts"
	"github.com/akarpov/savingsbot/internal/format"
	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/moneyx"
)

func (e *Engine) startContribute(ctx context.Context, chatID int64) *Outcome {
	return e.startSelector(ctx, chatID, stateAddSelect, e.targetItems,
		"Nothing to add to yet. Start with 'new goal' or 'new debt'.")
}

func (e *Engine) contributeSelected(ctx context.Context, chatID int64, ev callbackEvent) *Outcome {
	id, err := ev.itemID64()
	if err != nil {
		return textOutcome(tryAgainText)
	}
	t, err := e.deps.Targets.Get(ctx, id)
	if isNotFound(err) {
		return e.notFound(chatID, "goal or debt")
	}
	if err != nil {
		return e.failTerminal(ctx, chatID, "load target", err)
	}

	e.put(chatID, stateAddAmount, &contributeDraft{TargetID: t.ID})
	verb := "putting toward"
	if t.Kind == models.KindDebt {
		verb = "paying off"
	}
	return textOutcome("How much are we " + verb + " '" + t.Name + "'?")
}

func (e *Engine) contributeAmountAndSave(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*contributeDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "add")
	}
	amount, err := moneyx.Parse(input)
	if err != nil {
		return textOutcome(badAmountText)
	}

	t, err := e.deps.Targets.Contribute(ctx, d.TargetID, amount)
	if isNotFound(err) {
		return e.notFound(chatID, "goal or debt")
	}
	if err != nil {
		return e.failTerminal(ctx, chatID, "contribute", err)
	}
	e.sessions.Clear(chatID)

	o := textOutcome("Logged " + moneyx.Format(amount) + " " + t.Currency +
		" toward '" + t.Name + "'.\n" + format.ProgressBar(t.Progress()))

	if alert := alerts.EvaluateTarget(t); alert != nil {
		if alert.SetNotified90 {
			if err := e.deps.Targets.MarkNotified90(ctx, t.ID); err != nil {
				// The alert still goes out; it may fire once more later.
				e.deps.Log.Error(ctx, "mark notified failed", "target_id", t.ID, "error", err)
			}
		}
		o.addText(alert.Text)
	}
	return o
}

func (e *Engine) startDelete(ctx context.Context, chatID int64) *Outcome {
	return e.startSelector(ctx, chatID, stateDeleteSelect, e.targetItems,
		"Nothing to delete. Your slate is already clean.")
}

func (e *Engine) deleteSelected(ctx context.Context, chatID int64, ev callbackEvent) *Outcome {
	id, err := ev.itemID64()
	if err != nil {
		return textOutcome(tryAgainText)
	}
	t, err := e.deps.Targets.Get(ctx, id)
	if isNotFound(err) {
		return e.notFound(chatID, "goal or debt")
	}
	if err != nil {
		return e.failTerminal(ctx, chatID, "load target", err)
	}
	if err := e.deps.Targets.Delete(ctx, t.ID); err != nil {
		if isNotFound(err) {
			return e.notFound(chatID, "goal or debt")
		}
		return e.failTerminal(ctx, chatID, "delete target", err)
	}

	e.sessions.Clear(chatID)
	return textOutcome("Poof! '" + t.Name + "' and its entire history are gone. No take-backs.")
}

func (e *Engine) startProgress(ctx context.Context, chatID int64) *Outcome {
	return e.startSelector(ctx, chatID, stateProgressSelect, e.targetItems,
		"Nothing to show progress on. Try 'new goal' first.")
}

func (e *Engine) progressSelected(ctx context.Context, chatID int64, ev callbackEvent) *Outcome {
	id, err := ev.itemID64()
	if err != nil {
		return textOutcome(tryAgainText)
	}
	t, err := e.deps.Targets.Get(ctx, id)
	if isNotFound(err) {
		return e.notFound(chatID, "goal or debt")
	}
	if err != nil {
		return e.failTerminal(ctx, chatID, "load target", err)
	}
	entries, err := e.deps.Targets.RecentEntries(ctx, t.ID, 5)
	if err != nil {
		return e.failTerminal(ctx, chatID, "load entries", err)
	}

	e.sessions.Clear(chatID)
	return textOutcome(format.TargetProgress(t, entries))
}
