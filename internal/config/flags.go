package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/akarpov/savingsbot/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-t string   Telegram bot token
//	-d string   SQLite DSN (database file path)
//	-u string   comma-separated allowed chat ids
//	-p int      page size for selection keyboards
//	-i int      scheduler tick, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-t", "-d", "-u", "-p", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.TelegramToken, "t", config.TelegramToken, "telegram bot token")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	allowed := fs.String("u", "", "comma-separated allowed chat ids")
	fs.IntVar(&config.PageSize, "p", config.PageSize, "page size for selection keyboards")
	tickSeconds := fs.Int("i", int(config.SchedulerTick.Seconds()), "scheduler tick (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *allowed != "" {
		ids, err := parseChatIDs(*allowed)
		if err != nil {
			panic(err)
		}
		config.AllowedChatIDs = ids
	}
	config.SchedulerTick = secondsToDuration(*tickSeconds)
}

func parseChatIDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
