package bot

import (
	"context"

	"github.com/google/uuid"

	"github.com/akarpov/savingsbot/internal/auth"
	"github.com/akarpov/savingsbot/internal/dialog"
	"github.com/akarpov/savingsbot/internal/logging"
)

// Router drains the transport and feeds the engine. One goroutine per
// update; per-chat ordering is enforced by the engine's chat locks.
type Router struct {
	engine    *dialog.Engine
	transport Transport
	allow     *auth.Allowlist
	log       logging.Logger
}

func NewRouter(engine *dialog.Engine, transport Transport, allow *auth.Allowlist, log logging.Logger) *Router {
	return &Router{engine: engine, transport: transport, allow: allow, log: log}
}

// Run blocks until the transport's update channel closes.
func (r *Router) Run(ctx context.Context) {
	for u := range r.transport.Updates(ctx) {
		go r.handle(ctx, u)
	}
}

func (r *Router) handle(ctx context.Context, u Update) {
	log := r.log.With("update_id", uuid.NewString(), "chat_id", u.ChatID)

	defer func() {
		if rec := recover(); rec != nil {
			// Never leave the chat wedged mid-flow.
			log.Error(ctx, "panic while handling update", "panic", rec)
			r.engine.Reset(u.ChatID)
			r.send(ctx, log, u.ChatID, &dialog.Outcome{
				Replies: []dialog.Reply{{Text: "Something went sideways on my end. Let's start over."}},
			})
		}
	}()

	if !r.allow.Allowed(u.ChatID) {
		log.Warn(ctx, "chat not on allow-list")
		if u.IsCallback() {
			_ = r.transport.AnswerCallback(ctx, u.CallbackID)
		}
		return
	}

	var out *dialog.Outcome
	if u.IsCallback() {
		if err := r.transport.AnswerCallback(ctx, u.CallbackID); err != nil {
			log.Warn(ctx, "answer callback failed", "error", err)
		}
		out = r.engine.HandleCallback(ctx, u.ChatID, u.CallbackData)
	} else {
		out = r.engine.HandleMessage(ctx, u.ChatID, u.Text)
	}

	r.send(ctx, log, u.ChatID, out)
}

func (r *Router) send(ctx context.Context, log logging.Logger, chatID int64, out *dialog.Outcome) {
	if out == nil {
		return
	}
	for _, reply := range out.Replies {
		if err := r.transport.SendMessage(ctx, chatID, reply.Text, reply.Keyboard); err != nil {
			log.Error(ctx, "send message failed", "error", err)
		}
	}
	if out.Document != nil {
		if err := r.transport.SendDocument(ctx, chatID, *out.Document); err != nil {
			log.Error(ctx, "send document failed", "error", err)
		}
	}
}
