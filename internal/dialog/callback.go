package dialog

import (
	"context"
	"fmt"

	"github.com/akarpov/savingsbot/internal/format"
	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/services"
)

const tryAgainText = "I couldn't make sense of that button. Please try again."
const expiredMenuText = "That menu has expired. Send the command again."

// HandleCallback processes a button press: either a page navigation or an
// item selection. Navigation re-renders the keyboard in place and never
// changes the dialogue's logical state.
func (e *Engine) HandleCallback(ctx context.Context, chatID int64, payload string) *Outcome {
	unlock := e.sessions.LockChat(chatID)
	defer unlock()

	ev, err := decodeCallback(payload)
	if err != nil {
		e.deps.Log.Warn(ctx, "bad callback payload", "chat_id", chatID, "payload", payload, "error", err)
		return textOutcome(tryAgainText)
	}

	sess, ok := e.sessions.Get(chatID)
	if !ok {
		return textOutcome(expiredMenuText)
	}

	expected, ok := selectorPrefix(sess.State)
	if !ok {
		return textOutcome("I wasn't expecting a button press right now.")
	}
	if ev.Prefix != expected {
		// Stale button from an earlier, superseded keyboard.
		return textOutcome(expiredMenuText)
	}

	if ev.Nav {
		return e.renderPage(ctx, chatID, sess.State, ev.Page)
	}
	return e.selected(ctx, chatID, sess, ev)
}

// selectorPrefix maps a selector state to the payload prefix its keyboard
// was issued with.
func selectorPrefix(s State) (string, bool) {
	switch s {
	case stateAddSelect:
		return prefixAddTo, true
	case stateDeleteSelect:
		return prefixDelete, true
	case stateProgressSelect:
		return prefixProgress, true
	case stateAssetUpdateSelect:
		return prefixAssetUpd, true
	case statePaySelect:
		return prefixPayTo, true
	case statePaymentDeleteSelect:
		return prefixPayDelete, true
	case stateReportWindow:
		return prefixReport, true
	}
	return "", false
}

// renderPage re-fetches the backing list and re-renders the requested page.
// Idempotent: repeating the same navigation yields the same keyboard.
func (e *Engine) renderPage(ctx context.Context, chatID int64, state State, page int) *Outcome {
	prefix, _ := selectorPrefix(state)

	var items []selectorItem
	var err error
	switch state {
	case stateAddSelect, stateDeleteSelect, stateProgressSelect:
		items, err = e.targetItems(ctx, chatID)
	case stateAssetUpdateSelect:
		items, err = e.assetItems(ctx, chatID)
	case statePaySelect, statePaymentDeleteSelect:
		items, err = e.paymentItems(ctx, chatID)
	case stateReportWindow:
		// The window menu fits on one page; nothing to navigate.
		return textOutcome(tryAgainText)
	}
	if err != nil {
		return e.failTerminal(ctx, chatID, "render page", err)
	}
	if len(items) == 0 {
		e.sessions.Clear(chatID)
		return textOutcome("Nothing left to select.")
	}

	return &Outcome{Replies: []Reply{{
		Text:     "Which one are we looking at?",
		Keyboard: selectorKeyboard(items, prefix, e.deps.PageSize, page),
	}}}
}

func (e *Engine) selected(ctx context.Context, chatID int64, sess *Session, ev callbackEvent) *Outcome {
	switch sess.State {
	case stateAddSelect:
		return e.contributeSelected(ctx, chatID, ev)
	case stateDeleteSelect:
		return e.deleteSelected(ctx, chatID, ev)
	case stateProgressSelect:
		return e.progressSelected(ctx, chatID, ev)
	case stateAssetUpdateSelect:
		return e.assetUpdateSelected(ctx, chatID, ev)
	case statePaySelect:
		return e.paySelected(ctx, chatID, ev)
	case statePaymentDeleteSelect:
		return e.paymentDeleteSelected(ctx, chatID, ev)
	case stateReportWindow:
		return e.reportWindowSelected(ctx, chatID, ev)
	}
	return textOutcome(tryAgainText)
}

// --- selector item sources ---

func (e *Engine) targetItems(ctx context.Context, chatID int64) ([]selectorItem, error) {
	ts, err := e.deps.Targets.List(ctx, chatID)
	if err != nil {
		return nil, err
	}
	items := make([]selectorItem, 0, len(ts))
	for _, t := range ts {
		emoji := "🎯"
		if t.Kind == models.KindDebt {
			emoji = "⛓️"
		}
		items = append(items, selectorItem{
			ID:    fmt.Sprintf("%d", t.ID),
			Label: fmt.Sprintf("%s %s (%s)", emoji, t.Name, t.Currency),
		})
	}
	return items, nil
}

func (e *Engine) assetItems(ctx context.Context, chatID int64) ([]selectorItem, error) {
	as, err := e.deps.Assets.List(ctx, chatID)
	if err != nil {
		return nil, err
	}
	items := make([]selectorItem, 0, len(as))
	for _, a := range as {
		items = append(items, selectorItem{
			ID:    fmt.Sprintf("%d", a.ID),
			Label: fmt.Sprintf("💼 %s (%s)", a.Name, a.Currency),
		})
	}
	return items, nil
}

func (e *Engine) paymentItems(ctx context.Context, chatID int64) ([]selectorItem, error) {
	ps, err := e.deps.Payments.List(ctx, chatID)
	if err != nil {
		return nil, err
	}
	items := make([]selectorItem, 0, len(ps))
	for _, p := range ps {
		items = append(items, selectorItem{
			ID:    fmt.Sprintf("%d", p.ID),
			Label: fmt.Sprintf("💸 %s → %s (%s)", p.Name, p.Recipient, p.Currency),
		})
	}
	return items, nil
}

// startSelector enters a selector state after fetching its backing list.
// An empty list terminates the flow immediately instead of rendering an
// empty page.
func (e *Engine) startSelector(ctx context.Context, chatID int64, state State, fetch func(context.Context, int64) ([]selectorItem, error), emptyText string) *Outcome {
	items, err := fetch(ctx, chatID)
	if err != nil {
		return e.failTerminal(ctx, chatID, "start selector", err)
	}
	if len(items) == 0 {
		e.sessions.Clear(chatID)
		return textOutcome(emptyText)
	}

	prefix, _ := selectorPrefix(state)
	e.put(chatID, state, nil)
	return &Outcome{Replies: []Reply{{
		Text:     "Which one are we looking at?",
		Keyboard: selectorKeyboard(items, prefix, e.deps.PageSize, 0),
	}}}
}

// --- report window menu ---

func (e *Engine) startExpenseReport(chatID int64) *Outcome {
	e.put(chatID, stateReportWindow, nil)
	kb := Keyboard{
		{{Label: "Today", Data: encodeSelect(prefixReport, string(services.WindowToday))}},
		{{Label: "Last 7 days", Data: encodeSelect(prefixReport, string(services.WindowWeek))}},
		{{Label: "Last 30 days", Data: encodeSelect(prefixReport, string(services.WindowMonth))}},
		{{Label: "All time", Data: encodeSelect(prefixReport, string(services.WindowAll))}},
	}
	return &Outcome{Replies: []Reply{{Text: "Which period?", Keyboard: kb}}}
}

func (e *Engine) reportWindowSelected(ctx context.Context, chatID int64, ev callbackEvent) *Outcome {
	var w services.Window
	switch services.Window(ev.ItemID) {
	case services.WindowToday, services.WindowWeek, services.WindowMonth, services.WindowAll:
		w = services.Window(ev.ItemID)
	default:
		return textOutcome(tryAgainText)
	}

	totals, err := e.deps.Expenses.Totals(ctx, chatID, w)
	if err != nil {
		return e.failTerminal(ctx, chatID, "expense totals", err)
	}
	e.sessions.Clear(chatID)
	return textOutcome(format.ExpenseTotals(w.Label(), totals))
}
