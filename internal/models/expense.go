package models

// Expense is one recorded spend. Append-only; feeds budget aggregation and
// period-windowed reports by timestamp range.
type Expense struct {
	ID       int64
	UserID   int64
	Amount   float64
	Currency string
	Reason   string
	Category BudgetCategory
	SpentAt  string
}
