package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/akarpov/savingsbot/internal/flagx"
	"github.com/akarpov/savingsbot/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "30s" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	TelegramToken  string         `json:"telegram_token"`
	DatabaseDSN    string         `json:"database_dsn"`
	AllowedChatIDs []int64        `json:"allowed_chat_ids"`
	PageSize       int            `json:"page_size"`
	SchedulerTick  timex.Duration `json:"scheduler_tick"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. Unset fields keep
// their current values. An unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.TelegramToken != "" {
		config.TelegramToken = c.TelegramToken
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if len(c.AllowedChatIDs) > 0 {
		config.AllowedChatIDs = c.AllowedChatIDs
	}
	if c.PageSize > 0 {
		config.PageSize = c.PageSize
	}
	if c.SchedulerTick > 0 {
		config.SchedulerTick = time.Duration(c.SchedulerTick)
	}
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}
