package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")

	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "env-token", cfg.TelegramToken)
	assert.Equal(t, "savings_bot.db", cfg.DatabaseDSN)
	assert.Empty(t, cfg.AllowedChatIDs)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.SchedulerTick)
}

func TestParseJson_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	body := map[string]any{
		"telegram_token":   "json-token",
		"database_dsn":     "json.db",
		"allowed_chat_ids": []int64{1, 2},
		"page_size":        7,
		"scheduler_tick":   "45s",
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	oldArgs := os.Args
	os.Args = []string{"bot", "-c", path}
	t.Cleanup(func() { os.Args = oldArgs })

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "json-token", cfg.TelegramToken)
	assert.Equal(t, "json.db", cfg.DatabaseDSN)
	assert.Equal(t, []int64{1, 2}, cfg.AllowedChatIDs)
	assert.Equal(t, 7, cfg.PageSize)
	assert.Equal(t, 45*time.Second, cfg.SchedulerTick)
}

func TestParseFlags_Overrides(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"bot", "-d", "flag.db", "-u", "10,20", "-p", "3", "-i", "60"}
	t.Cleanup(func() { os.Args = oldArgs })

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "flag.db", cfg.DatabaseDSN)
	assert.Equal(t, []int64{10, 20}, cfg.AllowedChatIDs)
	assert.Equal(t, 3, cfg.PageSize)
	assert.Equal(t, time.Minute, cfg.SchedulerTick)
}

func TestParseChatIDs_Invalid(t *testing.T) {
	_, err := parseChatIDs("1,abc")
	assert.Error(t, err)
}
