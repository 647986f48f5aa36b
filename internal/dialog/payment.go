package dialog

import (
	"context"
	"strings"

	"github.com/akarpov/savingsbot/internal/alerts"
	"github.com/akarpov/savingsbot/internal/format"
	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/moneyx"
)

func (e *Engine) startPayment(chatID int64) *Outcome {
	e.put(chatID, statePaymentName, &paymentDraft{})
	return textOutcome("A new payment to track. What should we call it?")
}

func (e *Engine) paymentName(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*paymentDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new payment")
	}
	if input == "" {
		return textOutcome("A name, please.")
	}
	d.Name = input
	e.put(chatID, statePaymentRecipient, d)
	return textOutcome("Who gets the money?")
}

func (e *Engine) paymentRecipient(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*paymentDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new payment")
	}
	if input == "" {
		return textOutcome("A recipient, please.")
	}
	d.Recipient = input
	e.put(chatID, statePaymentAmount, d)
	return textOutcome("What's the total amount owed to " + input + "?")
}

func (e *Engine) paymentAmount(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*paymentDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new payment")
	}
	amount, err := moneyx.Parse(input)
	if err != nil {
		return textOutcome(badAmountText)
	}
	d.TargetAmount = amount
	e.put(chatID, statePaymentCurrency, d)
	return textOutcome("Currency?")
}

func (e *Engine) paymentCurrency(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*paymentDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new payment")
	}
	currency, ok := normalizeCurrency(input)
	if !ok {
		return textOutcome("A currency code, please. Three-ish letters, like USD.")
	}
	d.Currency = currency
	e.put(chatID, statePaymentSuggested, d)
	return textOutcome("How much per installment? Send 'skip' if there's no fixed amount.")
}

func (e *Engine) paymentSuggested(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*paymentDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new payment")
	}
	if strings.EqualFold(input, "skip") {
		d.SuggestedAmount = 0
		e.put(chatID, statePaymentFrequency, d)
		return textOutcome("No fixed amount, living dangerously. How often do you pay? (monthly, weekly, whenever...)")
	}
	amount, err := moneyx.Parse(input)
	if err != nil {
		return textOutcome("A number or 'skip', please.")
	}
	d.SuggestedAmount = amount
	e.put(chatID, statePaymentFrequency, d)
	return textOutcome("How often? (monthly, weekly, whenever...)")
}

func (e *Engine) paymentFrequencyAndSave(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*paymentDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new payment")
	}

	p, err := e.deps.Payments.Create(ctx, &models.Payment{
		UserID:           chatID,
		Name:             d.Name,
		Recipient:        d.Recipient,
		TargetAmount:     d.TargetAmount,
		Currency:         d.Currency,
		PaymentAmount:    d.SuggestedAmount,
		PaymentFrequency: strings.ToLower(input),
	})
	if isDuplicate(err) {
		e.sessions.Clear(chatID)
		return textOutcome("You already track a payment called '" + d.Name + "'. Start over with a different name.")
	}
	if err != nil {
		return e.failTerminal(ctx, chatID, "create payment", err)
	}

	e.sessions.Clear(chatID)
	return textOutcome("Payment '" + p.Name + "' to " + p.Recipient + " is on the books: " +
		moneyx.Format(p.TargetAmount) + " " + p.Currency + ". Chip away with 'pay'.")
}

func (e *Engine) startPay(ctx context.Context, chatID int64) *Outcome {
	return e.startSelector(ctx, chatID, statePaySelect, e.paymentItems,
		"Nothing to pay. Enjoy it while it lasts.")
}

func (e *Engine) paySelected(ctx context.Context, chatID int64, ev callbackEvent) *Outcome {
	id, err := ev.itemID64()
	if err != nil {
		return textOutcome(tryAgainText)
	}
	p, err := e.deps.Payments.Get(ctx, id)
	if isNotFound(err) {
		return e.notFound(chatID, "payment")
	}
	if err != nil {
		return e.failTerminal(ctx, chatID, "load payment", err)
	}

	e.put(chatID, statePayAmount, &payDraft{PaymentID: p.ID})
	prompt := "How much are you paying toward '" + p.Name + "'?"
	if p.PaymentAmount > 0 {
		prompt += " (usual: " + moneyx.Format(p.PaymentAmount) + " " + p.Currency + ")"
	}
	return textOutcome(prompt)
}

func (e *Engine) payAmountAndSave(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*payDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "pay")
	}
	amount, err := moneyx.Parse(input)
	if err != nil {
		return textOutcome(badAmountText)
	}

	p, err := e.deps.Payments.Record(ctx, d.PaymentID, amount)
	if isNotFound(err) {
		return e.notFound(chatID, "payment")
	}
	if err != nil {
		return e.failTerminal(ctx, chatID, "record payment", err)
	}
	e.sessions.Clear(chatID)

	o := textOutcome("Paid " + moneyx.Format(amount) + " " + p.Currency +
		" toward '" + p.Name + "'.\n" + format.ProgressBar(p.Progress()))

	if alert := alerts.EvaluatePayment(p); alert != nil {
		if alert.SetNotified90 {
			if err := e.deps.Payments.MarkNotified90(ctx, p.ID); err != nil {
				e.deps.Log.Error(ctx, "mark notified failed", "payment_id", p.ID, "error", err)
			}
		}
		o.addText(alert.Text)
	}
	return o
}

func (e *Engine) startPaymentDelete(ctx context.Context, chatID int64) *Outcome {
	return e.startSelector(ctx, chatID, statePaymentDeleteSelect, e.paymentItems,
		"No payments to delete.")
}

func (e *Engine) paymentDeleteSelected(ctx context.Context, chatID int64, ev callbackEvent) *Outcome {
	id, err := ev.itemID64()
	if err != nil {
		return textOutcome(tryAgainText)
	}
	p, err := e.deps.Payments.Get(ctx, id)
	if isNotFound(err) {
		return e.notFound(chatID, "payment")
	}
	if err != nil {
		return e.failTerminal(ctx, chatID, "load payment", err)
	}
	if err := e.deps.Payments.Delete(ctx, p.ID); err != nil {
		if isNotFound(err) {
			return e.notFound(chatID, "payment")
		}
		return e.failTerminal(ctx, chatID, "delete payment", err)
	}

	e.sessions.Clear(chatID)
	return textOutcome("Payment '" + p.Name + "' and its history are gone.")
}

func (e *Engine) listPayments(ctx context.Context, chatID int64) *Outcome {
	e.sessions.Clear(chatID)
	ps, err := e.deps.Payments.List(ctx, chatID)
	if err != nil {
		return e.failTerminal(ctx, chatID, "list payments", err)
	}
	return textOutcome(format.PaymentList(ps))
}
