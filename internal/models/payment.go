package models

// Payment tracks money owed to a recipient, with the same ledger-backed
// aggregate contract as Target. PaymentAmount and PaymentFrequency are a
// suggested recurring payment; they are advisory and never enforced.
type Payment struct {
	ID               int64
	UserID           int64
	Name             string
	Recipient        string
	TargetAmount     float64
	CurrentAmount    float64
	Currency         string
	PaymentAmount    float64
	PaymentFrequency string
	Notified90       bool
	CreatedAt        string
}

// Progress returns completion as a percentage, 0 for a non-positive target.
func (p *Payment) Progress() float64 {
	if p.TargetAmount <= 0 {
		return 0
	}
	return p.CurrentAmount / p.TargetAmount * 100
}

// PaymentRecord is one recorded payment toward a Payment. Append-only.
type PaymentRecord struct {
	ID        int64
	PaymentID int64
	Amount    float64
	PaidAt    string
}
