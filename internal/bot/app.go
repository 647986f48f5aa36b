package bot

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akarpov/savingsbot/internal/auth"
	"github.com/akarpov/savingsbot/internal/config"
	"github.com/akarpov/savingsbot/internal/dialog"
	"github.com/akarpov/savingsbot/internal/logging"
	"github.com/akarpov/savingsbot/internal/scheduler"
	"github.com/akarpov/savingsbot/internal/services"
	"github.com/akarpov/savingsbot/internal/storage"
)

// App owns the process lifecycle: storage, services, the dialogue engine,
// the reminder scheduler and the update router.
type App struct {
	config    *config.Config
	transport Transport
	logger    logging.Logger
}

func NewApp(cfg *config.Config, transport Transport, logger logging.Logger) *App {
	return &App{config: cfg, transport: transport, logger: logger}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until the context is cancelled or a termination signal
// arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "dsn", app.config.DatabaseDSN)
	app.initSignalHandler(cancelFunc)

	db, err := storage.Open(ctx, app.config.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	sched := scheduler.New(app.config.SchedulerTick, func(ctx context.Context, chatID int64, text string) {
		if err := app.transport.SendMessage(ctx, chatID, text, nil); err != nil {
			app.logger.Error(ctx, "reminder delivery failed", "chat_id", chatID, "error", err)
		}
	}, app.logger)

	engine := dialog.NewEngine(dialog.Deps{
		Targets:   services.NewTargetService(db),
		Assets:    services.NewAssetService(db),
		Budgets:   services.NewBudgetService(db),
		Expenses:  services.NewExpenseService(db),
		Payments:  services.NewPaymentService(db),
		Reports:   services.NewReportService(db),
		Reminders: sched,
		Log:       app.logger,
		PageSize:  app.config.PageSize,
	})

	router := NewRouter(engine, app.transport, auth.New(app.config.AllowedChatIDs), app.logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sched.Run(ctx)
	}()

	router.Run(ctx)
	cancelFunc()
	wg.Wait()

	app.logger.Info(ctx, "app stopped")
	return nil
}
