package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedLogger_OutputShape(t *testing.T) {
	tests := []struct {
		name      string
		log       func(ul *UnifiedLogger)
		wantLevel string
		wantMsg   string
	}{
		{
			name:      "should emit lowercase info level",
			log:       func(ul *UnifiedLogger) { ul.Info("ranking started") },
			wantLevel: "info",
			wantMsg:   "ranking started",
		},
		{
			name:      "should emit lowercase warn level",
			log:       func(ul *UnifiedLogger) { ul.Warn("source rate limited") },
			wantLevel: "warn",
			wantMsg:   "source rate limited",
		},
		{
			name:      "should emit lowercase error level",
			log:       func(ul *UnifiedLogger) { ul.Error("fetch failed") },
			wantLevel: "error",
			wantMsg:   "fetch failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ul := NewUnifiedLoggerWithLevel(&buf, "rank-estimator", "debug")

			tt.log(ul)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.wantMsg, entry["msg"])
			assert.Equal(t, "rank-estimator", entry["service"])
			assert.Contains(t, entry, "time")
		})
	}
}

func TestUnifiedLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	ul := NewUnifiedLoggerWithLevel(&buf, "rank-estimator", "info")

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithOperation(ctx, "POST /api/v1/rankings")
	ctx = WithRequesterID(ctx, "user-9")

	ul.WithContext(ctx).Info("processing")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "POST /api/v1/rankings", entry["operation"])
	assert.Equal(t, "user-9", entry["requester_id"])
}

func TestUnifiedLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	ul := NewUnifiedLoggerWithLevel(&buf, "rank-estimator", "warn")

	ul.Debug("hidden")
	ul.Info("hidden too")
	assert.Zero(t, buf.Len())

	ul.Warn("visible")
	assert.NotZero(t, buf.Len())
}

func TestRequesterIDFromContext(t *testing.T) {
	assert.Empty(t, RequesterIDFromContext(context.Background()))

	ctx := WithRequesterID(context.Background(), "user-1")
	assert.Equal(t, "user-1", RequesterIDFromContext(ctx))
}
