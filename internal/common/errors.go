// Package common defines shared sentinel errors used across the bot's
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("duplicate name")

	// Dialogue-level errors.
	ErrBadPayload = errors.New("malformed callback payload")

	// Validation errors (recovered locally by re-prompting).
	ErrInvalidAmount = errors.New("invalid amount")
)
