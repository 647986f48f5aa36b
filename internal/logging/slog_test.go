package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON_WritesRecords(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf)
	ctx := context.Background()

	log.Info(ctx, "hello", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "v", rec["k"])
	assert.Equal(t, "INFO", rec["level"])
}

func TestWith_AddsFieldsToChildren(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf).With("chat_id", float64(42))
	ctx := context.Background()

	log.Warn(ctx, "careful")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, float64(42), rec["chat_id"])
	assert.Equal(t, "WARN", rec["level"])
}
