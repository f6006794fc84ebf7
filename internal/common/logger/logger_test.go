package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogger_InfoFields(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter("order-service", &buf)

	lg.Info("order_created", map[string]any{"order_id": "abc"})

	entry := decode(t, &buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "order-service", entry["service"])
	assert.Equal(t, "order_created", entry["action"])
	assert.Equal(t, "order_created", entry["message"])
	assert.Equal(t, "abc", entry["order_id"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "hostname")
}

func TestLogger_ErrorCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter("api", &buf)
	ctx := WithRequestID(context.Background(), "req-42")

	lg.ErrorCtx(ctx, "db_failed", errors.New("boom"), nil)

	entry := decode(t, &buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "req-42", entry["request_id"])
	errField, ok := entry["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "boom", errField["msg"])
	assert.NotContains(t, errField, "message")
	assert.Equal(t, "db_failed", entry["message"])
}

func TestLogger_DebugSuppressedAtInfo(t *testing.T) {
	SetLevel("info")
	var buf bytes.Buffer
	NewWithWriter("api", &buf).Debug("noise", nil)
	assert.Zero(t, buf.Len())

	SetLevel("debug")
	defer SetLevel("info")
	NewWithWriter("api", &buf).Debug("noise", nil)
	assert.NotZero(t, buf.Len())
}
