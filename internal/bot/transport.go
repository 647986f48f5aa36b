// Package bot connects the dialogue engine to a chat transport: it drains
// inbound updates, gates them against the allow-list, and renders engine
// outcomes back through the transport.
package bot

import (
	"context"

	"github.com/akarpov/savingsbot/internal/dialog"
)

// Update is one inbound event, either a text message or a button press.
// A non-empty CallbackID marks a button press.
type Update struct {
	ChatID       int64
	Text         string
	CallbackID   string
	CallbackData string
}

func (u Update) IsCallback() bool { return u.CallbackID != "" }

// Transport abstracts the chat backend so the router and tests never touch
// the Telegram API directly.
type Transport interface {
	// Updates returns a channel of inbound events. The implementation
	// closes it once ctx is cancelled.
	Updates(ctx context.Context) <-chan Update

	SendMessage(ctx context.Context, chatID int64, text string, kb dialog.Keyboard) error

	// AnswerCallback acknowledges a button press so the client stops
	// showing a spinner.
	AnswerCallback(ctx context.Context, callbackID string) error

	SendDocument(ctx context.Context, chatID int64, doc dialog.Document) error
}
