package bot

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/savingsbot/internal/auth"
	"github.com/akarpov/savingsbot/internal/dialog"
	"github.com/akarpov/savingsbot/internal/logging"
	"github.com/akarpov/savingsbot/internal/services"
	"github.com/akarpov/savingsbot/internal/storage"
)

type sentMessage struct {
	chatID int64
	text   string
	kb     dialog.Keyboard
}

type fakeTransport struct {
	mu       sync.Mutex
	ch       chan Update
	sent     []sentMessage
	docs     []dialog.Document
	answered []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{ch: make(chan Update)}
}

func (f *fakeTransport) Updates(ctx context.Context) <-chan Update { return f.ch }

func (f *fakeTransport) SendMessage(ctx context.Context, chatID int64, text string, kb dialog.Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, kb: kb})
	return nil
}

func (f *fakeTransport) AnswerCallback(ctx context.Context, callbackID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answered = append(f.answered, callbackID)
	return nil
}

func (f *fakeTransport) SendDocument(ctx context.Context, chatID int64, doc dialog.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs = append(f.docs, doc)
	return nil
}

func (f *fakeTransport) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestRouter(t *testing.T, name string, allow *auth.Allowlist) (*Router, *fakeTransport) {
	t.Helper()
	db, err := storage.Open(context.Background(), "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logging.NewJSON(io.Discard)
	engine := dialog.NewEngine(dialog.Deps{
		Targets:  services.NewTargetService(db),
		Assets:   services.NewAssetService(db),
		Budgets:  services.NewBudgetService(db),
		Expenses: services.NewExpenseService(db),
		Payments: services.NewPaymentService(db),
		Reports:  services.NewReportService(db),
		Log:      log,
		PageSize: 5,
	})

	ft := newFakeTransport()
	return NewRouter(engine, ft, allow, log), ft
}

func TestRouterHandlesMessage(t *testing.T) {
	r, ft := newTestRouter(t, "router_msg", auth.New(nil))

	r.handle(context.Background(), Update{ChatID: 1, Text: "help"})

	require.Len(t, ft.sent, 1)
	assert.Equal(t, int64(1), ft.sent[0].chatID)
	assert.Contains(t, ft.sent[0].text, "command deck")
}

func TestRouterAnswersCallback(t *testing.T) {
	r, ft := newTestRouter(t, "router_cb", auth.New(nil))

	r.handle(context.Background(), Update{ChatID: 1, CallbackID: "cb-1", CallbackData: "add_to_1"})

	assert.Equal(t, []string{"cb-1"}, ft.answered)
	require.Len(t, ft.sent, 1)
	assert.Contains(t, ft.sent[0].text, "expired")
}

func TestRouterRejectsUnlistedChat(t *testing.T) {
	r, ft := newTestRouter(t, "router_deny", auth.New([]int64{5}))

	r.handle(context.Background(), Update{ChatID: 1, Text: "help"})
	assert.Empty(t, ft.sent)

	r.handle(context.Background(), Update{ChatID: 5, Text: "help"})
	assert.Len(t, ft.sent, 1)
}

func TestRouterRunDrainsUntilClose(t *testing.T) {
	r, ft := newTestRouter(t, "router_run", auth.New(nil))

	done := make(chan struct{})
	go func() {
		r.Run(context.Background())
		close(done)
	}()

	ft.ch <- Update{ChatID: 1, Text: "help"}
	require.Eventually(t, func() bool { return ft.sentCount() == 1 }, time.Second, 10*time.Millisecond)

	close(ft.ch)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after channel close")
	}
}
