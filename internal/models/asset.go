package models

// Asset is a directly-mutated holding. Unlike Target there is no ledger:
// deltas change Amount in place and bump UpdatedAt. Identity for upserts
// is (UserID, Name, Currency).
type Asset struct {
	ID        int64
	UserID    int64
	Name      string
	Amount    float64
	Currency  string
	AssetType string
	CreatedAt string
	UpdatedAt string
}
