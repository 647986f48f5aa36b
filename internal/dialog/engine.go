package dialog

import (
	"context"
	"errors"
	"strings"

	"github.com/akarpov/savingsbot/internal/common"
	"github.com/akarpov/savingsbot/internal/logging"
	"github.com/akarpov/savingsbot/internal/services"
)

// ReminderSetter schedules the daily reminder for a chat, replacing any
// existing one.
type ReminderSetter interface {
	Set(chatID int64, hour, minute int)
}

// Deps collects everything the engine calls out to.
type Deps struct {
	Targets   services.TargetService
	Assets    services.AssetService
	Budgets   services.BudgetService
	Expenses  services.ExpenseService
	Payments  services.PaymentService
	Reports   services.ReportService
	Reminders ReminderSetter
	Log       logging.Logger
	PageSize  int
}

// Engine is the per-conversation finite state machine. Each inbound action
// looks up the chat's session, runs the current state's handler, and either
// re-prompts, advances, or terminates. Terminal states perform exactly one
// durable write and clear the session; every failure path also clears it,
// so a session is never left straddling two states.
type Engine struct {
	deps     Deps
	sessions *SessionStore
}

// NewEngine builds an Engine. PageSize defaults to 5 when unset.
func NewEngine(d Deps) *Engine {
	if d.PageSize <= 0 {
		d.PageSize = 5
	}
	return &Engine{deps: d, sessions: NewSessionStore()}
}

const cancelledText = "Fine, whatever. Mission aborted."

const manualText = "Here's the command deck. Let's make some magic happen (or at least track it).\n\n" +
	"🎯 Goals & Debts\n  - new goal\n  - new debt\n  - view all\n  - add\n  - progress\n  - delete\n\n" +
	"💰 Spending\n  - new expense\n  - expenses\n  - new budget\n  - budgets\n\n" +
	"💼 Assets\n  - new asset\n  - update asset\n  - assets\n\n" +
	"💸 Payments\n  - new payment\n  - pay\n  - payments\n  - delete payment\n\n" +
	"🛠️ Utilities\n  - set reminder\n  - export\n  - cancel"

// HandleMessage processes a free-text reply from the chat. Entry commands
// are recognized even mid-flow and supersede the in-flight session.
func (e *Engine) HandleMessage(ctx context.Context, chatID int64, text string) *Outcome {
	unlock := e.sessions.LockChat(chatID)
	defer unlock()

	cmd := strings.ToLower(strings.TrimSpace(text))
	cmd = strings.TrimPrefix(cmd, "/")

	switch cmd {
	case "start", "help":
		return textOutcome(manualText)
	case "cancel":
		e.sessions.Clear(chatID)
		return textOutcome(cancelledText)

	case "new goal":
		return e.startGoal(chatID)
	case "new debt":
		return e.startDebt(chatID)
	case "add":
		return e.startContribute(ctx, chatID)
	case "delete":
		return e.startDelete(ctx, chatID)
	case "progress":
		return e.startProgress(ctx, chatID)
	case "view all":
		return e.viewAll(ctx, chatID)
	case "export":
		return e.export(ctx, chatID)

	case "new expense":
		return e.startExpense(chatID)
	case "expenses":
		return e.startExpenseReport(chatID)
	case "new budget":
		return e.startBudget(chatID)
	case "budgets":
		return e.listBudgets(ctx, chatID)

	case "new asset":
		return e.startAsset(chatID)
	case "update asset":
		return e.startAssetUpdate(ctx, chatID)
	case "assets":
		return e.listAssets(ctx, chatID)

	case "new payment":
		return e.startPayment(chatID)
	case "pay":
		return e.startPay(ctx, chatID)
	case "delete payment":
		return e.startPaymentDelete(ctx, chatID)
	case "payments":
		return e.listPayments(ctx, chatID)

	case "set reminder":
		return e.startReminder(chatID)
	}

	if sess, ok := e.sessions.Get(chatID); ok {
		return e.advance(ctx, chatID, sess, strings.TrimSpace(text))
	}

	return textOutcome("I don't know what '" + strings.TrimSpace(text) + "' means. Stick to the script.\n\n" + manualText)
}

// advance runs the active state's reply handler. Selector states only
// accept button presses, so free text re-prompts in place.
func (e *Engine) advance(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	switch sess.State {
	case stateGoalName, stateDebtName:
		return e.targetName(ctx, chatID, sess, input)
	case stateGoalAmount, stateDebtAmount:
		return e.targetAmount(ctx, chatID, sess, input)
	case stateGoalCurrency, stateDebtCurrency:
		return e.targetCurrencyAndSave(ctx, chatID, sess, input)

	case stateAddAmount:
		return e.contributeAmountAndSave(ctx, chatID, sess, input)

	case stateExpenseAmount:
		return e.expenseAmount(ctx, chatID, sess, input)
	case stateExpenseCurrency:
		return e.expenseCurrency(ctx, chatID, sess, input)
	case stateExpenseReason:
		return e.expenseReason(ctx, chatID, sess, input)
	case stateExpenseCategory:
		return e.expenseCategoryAndSave(ctx, chatID, sess, input)

	case stateAssetName:
		return e.assetName(ctx, chatID, sess, input)
	case stateAssetAmount:
		return e.assetAmount(ctx, chatID, sess, input)
	case stateAssetCurrency:
		return e.assetCurrency(ctx, chatID, sess, input)
	case stateAssetType:
		return e.assetTypeAndSave(ctx, chatID, sess, input)
	case stateAssetUpdateDelta:
		return e.assetDeltaAndSave(ctx, chatID, sess, input)

	case stateBudgetCategory:
		return e.budgetCategory(ctx, chatID, sess, input)
	case stateBudgetAmount:
		return e.budgetAmount(ctx, chatID, sess, input)
	case stateBudgetCurrency:
		return e.budgetCurrency(ctx, chatID, sess, input)
	case stateBudgetPeriod:
		return e.budgetPeriodAndSave(ctx, chatID, sess, input)

	case statePaymentName:
		return e.paymentName(ctx, chatID, sess, input)
	case statePaymentRecipient:
		return e.paymentRecipient(ctx, chatID, sess, input)
	case statePaymentAmount:
		return e.paymentAmount(ctx, chatID, sess, input)
	case statePaymentCurrency:
		return e.paymentCurrency(ctx, chatID, sess, input)
	case statePaymentSuggested:
		return e.paymentSuggested(ctx, chatID, sess, input)
	case statePaymentFrequency:
		return e.paymentFrequencyAndSave(ctx, chatID, sess, input)

	case statePayAmount:
		return e.payAmountAndSave(ctx, chatID, sess, input)

	case stateReminderTime:
		return e.reminderTime(ctx, chatID, sess, input)

	case stateAddSelect, stateDeleteSelect, stateProgressSelect,
		stateAssetUpdateSelect, statePaySelect, statePaymentDeleteSelect,
		stateReportWindow:
		return textOutcome("Use the buttons above, or send 'cancel' to abort.")
	}

	// Unknown state means the session is corrupt; drop it.
	e.deps.Log.Error(ctx, "session in unknown state", "chat_id", chatID, "state", int(sess.State))
	e.sessions.Clear(chatID)
	return textOutcome("I lost track of our conversation. Please start again.")
}

// Reset drops the chat's session. The router calls it when recovering from
// a panic so the chat never stays wedged mid-flow.
func (e *Engine) Reset(chatID int64) {
	e.sessions.Clear(chatID)
}

// put installs a new session for the chat, superseding any previous flow.
func (e *Engine) put(chatID int64, state State, draft any) {
	e.sessions.Put(chatID, &Session{State: state, Draft: draft})
}

// failTerminal logs err, clears the session and reports a generic failure.
// Used for taxonomy class 5: the store is fully updated or fully
// unchanged, never half-mutated.
func (e *Engine) failTerminal(ctx context.Context, chatID int64, op string, err error) *Outcome {
	e.deps.Log.Error(ctx, "terminal write failed", "op", op, "chat_id", chatID, "error", err)
	e.sessions.Clear(chatID)
	return textOutcome("An unexpected error occurred while saving. Please try again.")
}

// lostContext handles taxonomy class 3: a later step references state the
// session no longer holds.
func (e *Engine) lostContext(ctx context.Context, chatID int64, flow string) *Outcome {
	e.deps.Log.Warn(ctx, "conversation context lost", "flow", flow, "chat_id", chatID)
	e.sessions.Clear(chatID)
	return textOutcome("It seems I forgot what we were talking about. Please start the '" + flow + "' command again.")
}

// notFound handles taxonomy class 4: the selected entity vanished between
// selection and the terminal write.
func (e *Engine) notFound(chatID int64, what string) *Outcome {
	e.sessions.Clear(chatID)
	return textOutcome("That " + what + " no longer exists. Nothing was changed.")
}

func isNotFound(err error) bool  { return errors.Is(err, common.ErrNotFound) }
func isDuplicate(err error) bool { return errors.Is(err, common.ErrDuplicateName) }
