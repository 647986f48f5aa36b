// Package config handles configuration for the bot, including defaults,
// JSON overlay, and command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the savings bot.
//
// Fields:
//   - TelegramToken: bot API token for the chat transport.
//   - DatabaseDSN: SQLite DSN (a file path, or ":memory:" for tests).
//   - AllowedChatIDs: chat ids permitted to talk to the bot. An empty list
//     leaves the bot open to everyone.
//   - PageSize: number of items per page in selection keyboards.
//   - SchedulerTick: how often the reminder dispatcher checks the clock.
type Config struct {
	TelegramToken  string
	DatabaseDSN    string
	AllowedChatIDs []int64
	PageSize       int
	SchedulerTick  time.Duration
}

// LoadDefaults populates Config with development defaults. The Telegram
// token is taken from the TELEGRAM_BOT_TOKEN environment variable when set.
func (c *Config) LoadDefaults() {
	c.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	c.DatabaseDSN = "savings_bot.db"
	c.AllowedChatIDs = nil
	c.PageSize = 5
	c.SchedulerTick = 30 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
