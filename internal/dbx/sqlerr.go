package dbx

import "strings"

// IsUniqueViolation reports whether err came from a violated UNIQUE
// constraint. The sqlite driver exposes no typed error for this, so the
// check is textual.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err came from a violated FOREIGN KEY
// constraint, e.g. inserting a ledger entry for a deleted target.
func IsForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
