package main

import (
	"context"
	"log"
	"os"

	"github.com/akarpov/savingsbot/internal/bot"
	"github.com/akarpov/savingsbot/internal/config"
	"github.com/akarpov/savingsbot/internal/logging"
	"github.com/akarpov/savingsbot/internal/telegram"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stdout)

	tg, err := telegram.New(cfg.TelegramToken, logger)
	if err != nil {
		log.Printf("telegram init: %v", err)
		return
	}

	app := bot.NewApp(cfg, tg, logger)
	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
