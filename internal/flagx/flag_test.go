package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	args := []string{"-d", "bot.db", "-x", "nope", "-t", "token"}
	got := FilterArgs(args, []string{"-d", "-t"})
	assert.Equal(t, []string{"-d", "bot.db", "-t", "token"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	args := []string{"--database=bot.db", "--other=1"}
	got := FilterArgs(args, []string{"--database"})
	assert.Equal(t, []string{"--database=bot.db"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	args := []string{"-v", "-d", "bot.db"}
	got := FilterArgs(args, []string{"-v"})
	assert.Equal(t, []string{"-v"}, got)
}

func TestFilterArgs_Empty(t *testing.T) {
	got := FilterArgs(nil, []string{"-d"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
