// Package scheduler runs the daily reminder dispatcher. One reminder per
// chat; setting a new time replaces the old one.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/akarpov/savingsbot/internal/logging"
)

// Notifier delivers a reminder message to a chat.
type Notifier func(ctx context.Context, chatID int64, text string)

const reminderText = "🔔 Daily check-in! Did you put anything aside today? " +
	"Your goals aren't going to fund themselves. Use 'add' if you did something right."

type job struct {
	hour, minute int
	lastFired    string // "2006-01-02" of the last delivery
}

// Scheduler checks the clock every tick and fires each chat's reminder at
// most once per calendar day, at or after the configured time.
type Scheduler struct {
	mu   sync.Mutex
	jobs map[int64]*job

	tick   time.Duration
	notify Notifier
	log    logging.Logger
	now    func() time.Time
}

func New(tick time.Duration, notify Notifier, log logging.Logger) *Scheduler {
	if tick <= 0 {
		tick = 30 * time.Second
	}
	return &Scheduler{
		jobs:   make(map[int64]*job),
		tick:   tick,
		notify: notify,
		log:    log,
		now:    time.Now,
	}
}

// Set installs or replaces the chat's daily reminder time.
func (s *Scheduler) Set(chatID int64, hour, minute int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[chatID] = &job{hour: hour, minute: minute}
}

// Run blocks, dispatching due reminders every tick until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	t := time.NewTicker(s.tick)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.dispatch(ctx)
		}
	}
}

func (s *Scheduler) dispatch(ctx context.Context) {
	now := s.now()
	day := now.Format("2006-01-02")

	var due []int64
	s.mu.Lock()
	for chatID, j := range s.jobs {
		if j.lastFired == day {
			continue
		}
		scheduled := time.Date(now.Year(), now.Month(), now.Day(), j.hour, j.minute, 0, 0, now.Location())
		if now.Before(scheduled) {
			continue
		}
		j.lastFired = day
		due = append(due, chatID)
	}
	s.mu.Unlock()

	// Delivery happens outside the lock; a slow transport must not stall Set.
	for _, chatID := range due {
		s.log.Debug(ctx, "reminder due", "chat_id", chatID)
		s.notify(ctx, chatID, reminderText)
	}
}
