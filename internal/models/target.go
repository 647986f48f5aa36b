// Package models holds the persisted entity shapes shared by repositories,
// services and the dialogue layer.
package models

import "time"

// TimeLayout is the persisted timestamp format. Naive local time; the
// string representation sorts chronologically.
const TimeLayout = "2006-01-02 15:04:05"

// Now returns the current local time in the persisted format.
func Now() string {
	return time.Now().Format(TimeLayout)
}

type TargetKind string

const (
	KindGoal TargetKind = "goal"
	KindDebt TargetKind = "debt"
)

// Target is a savings goal or a debt. CurrentAmount always equals the sum
// of the target's ledger entries; every mutation of it is paired with
// exactly one ledger insert in the same transaction.
type Target struct {
	ID            int64
	UserID        int64
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	Currency      string
	Kind          TargetKind
	Notified90    bool
	CreatedAt     string
}

// Progress returns completion as a percentage. A non-positive target
// amount yields 0 to avoid division errors.
func (t *Target) Progress() float64 {
	if t.TargetAmount <= 0 {
		return 0
	}
	return t.CurrentAmount / t.TargetAmount * 100
}

// LedgerEntry is one contribution toward a Target. Append-only; rows are
// removed only by the parent's cascade delete.
type LedgerEntry struct {
	ID       int64
	TargetID int64
	Amount   float64
	SavedAt  string
}

// ExportRow is one line of the export report: a ledger entry joined with
// its parent target.
type ExportRow struct {
	Name         string
	Kind         TargetKind
	TargetAmount float64
	Currency     string
	Amount       float64
	SavedAt      string
}
