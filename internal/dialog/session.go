package dialog

import (
	"sync"

	"github.com/akarpov/savingsbot/internal/models"
)

// State identifies the dialogue step a conversation is waiting on.
type State int

const (
	stateNone State = iota

	stateGoalName
	stateGoalAmount
	stateGoalCurrency

	stateDebtName
	stateDebtAmount
	stateDebtCurrency

	stateAddSelect
	stateAddAmount

	stateDeleteSelect
	stateProgressSelect

	stateExpenseAmount
	stateExpenseCurrency
	stateExpenseReason
	stateExpenseCategory

	stateAssetName
	stateAssetAmount
	stateAssetCurrency
	stateAssetType

	stateAssetUpdateSelect
	stateAssetUpdateDelta

	stateBudgetCategory
	stateBudgetAmount
	stateBudgetCurrency
	stateBudgetPeriod

	statePaymentName
	statePaymentRecipient
	statePaymentAmount
	statePaymentCurrency
	statePaymentSuggested
	statePaymentFrequency

	statePaySelect
	statePayAmount

	statePaymentDeleteSelect

	stateReminderTime

	stateReportWindow
)

// Drafts hold the fields a flow has collected so far. One typed draft per
// dialogue kind instead of a loosely-typed scratch map, so a skipped or
// misordered step cannot produce a stringly-keyed lookup error.

type targetDraft struct {
	Kind   models.TargetKind
	Name   string
	Amount float64
}

type contributeDraft struct {
	TargetID int64
}

type expenseDraft struct {
	Amount   float64
	Currency string
	Reason   string
}

type assetDraft struct {
	Name     string
	Amount   float64
	Currency string
}

type assetUpdateDraft struct {
	AssetID int64
}

type budgetDraft struct {
	Category models.BudgetCategory
	Amount   float64
	Currency string
}

type paymentDraft struct {
	Name            string
	Recipient       string
	TargetAmount    float64
	Currency        string
	SuggestedAmount float64
}

type payDraft struct {
	PaymentID int64
}

// Session is the transient per-chat conversation state. It exists only
// while a dialogue is in flight; terminal states, cancellation and
// supersession all remove it.
type Session struct {
	State State
	Draft any
}

// SessionStore keeps at most one active Session per chat and serializes
// handling for a chat through per-chat locks, closing the race between a
// reply and a concurrently arriving second message.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	locks    map[int64]*sync.Mutex
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// LockChat acquires the chat's handler lock and returns the unlock func.
func (s *SessionStore) LockChat(chatID int64) func() {
	s.mu.Lock()
	l, ok := s.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[chatID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *SessionStore) Get(chatID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	return sess, ok
}

// Put installs the chat's session, superseding any previous one.
func (s *SessionStore) Put(chatID int64, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = sess
}

func (s *SessionStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
