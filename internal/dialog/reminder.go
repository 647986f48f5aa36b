package dialog

import (
	"context"
	"fmt"
	"time"
)

func (e *Engine) startReminder(chatID int64) *Outcome {
	e.put(chatID, stateReminderTime, nil)
	return textOutcome("When should I nag you every day? Send a time like 21:00.")
}

func (e *Engine) reminderTime(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	t, err := time.Parse("15:04", input)
	if err != nil {
		return textOutcome("That's not a time I understand. 24-hour format, like 09:30 or 21:00.")
	}

	if e.deps.Reminders == nil {
		e.sessions.Clear(chatID)
		return textOutcome("Reminders aren't available right now.")
	}
	e.deps.Reminders.Set(chatID, t.Hour(), t.Minute())

	e.sessions.Clear(chatID)
	return textOutcome(fmt.Sprintf("Done. Expect me at %02d:%02d every day. You asked for this.", t.Hour(), t.Minute()))
}
