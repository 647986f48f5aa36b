package scheduler

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/akarpov/savingsbot/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type capture struct {
	mu    sync.Mutex
	chats []int64
}

func (c *capture) notify(_ context.Context, chatID int64, _ string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chats = append(c.chats, chatID)
}

func (c *capture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.chats)
}

func newTestScheduler(c *capture) *Scheduler {
	return New(time.Hour, c.notify, logging.NewJSON(io.Discard))
}

func TestFiresOncePerDay(t *testing.T) {
	c := &capture{}
	s := newTestScheduler(c)
	s.Set(7, 9, 30)

	s.now = func() time.Time { return time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local) }
	s.dispatch(context.Background())
	require.Equal(t, 1, c.count())
	assert.Equal(t, int64(7), c.chats[0])

	// Same day, later tick: no repeat.
	s.now = func() time.Time { return time.Date(2026, 9, 1, 18, 0, 0, 0, time.Local) }
	s.dispatch(context.Background())
	assert.Equal(t, 1, c.count())

	// Next day: fires again.
	s.now = func() time.Time { return time.Date(2026, 9, 2, 9, 31, 0, 0, time.Local) }
	s.dispatch(context.Background())
	assert.Equal(t, 2, c.count())
}

func TestNotDueBeforeScheduledTime(t *testing.T) {
	c := &capture{}
	s := newTestScheduler(c)
	s.Set(7, 9, 30)

	s.now = func() time.Time { return time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local) }
	s.dispatch(context.Background())
	assert.Equal(t, 0, c.count())
}

func TestSetReplacesExisting(t *testing.T) {
	c := &capture{}
	s := newTestScheduler(c)
	s.Set(7, 9, 30)
	s.Set(7, 20, 0)

	s.now = func() time.Time { return time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local) }
	s.dispatch(context.Background())
	assert.Equal(t, 0, c.count(), "old 09:30 slot must be gone")

	s.now = func() time.Time { return time.Date(2026, 9, 1, 20, 5, 0, 0, time.Local) }
	s.dispatch(context.Background())
	assert.Equal(t, 1, c.count())
}

func TestRunStopsOnCancel(t *testing.T) {
	c := &capture{}
	s := New(time.Millisecond, c.notify, logging.NewJSON(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
