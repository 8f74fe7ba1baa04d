package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/couchcryptid/storm-data-cyclone-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		level     string
		enabled   slog.Level
		suppressed slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"WARN", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(&config.Config{LogLevel: tt.level, LogFormat: "text"})
			require.NotNil(t, logger)
			assert.Same(t, logger, slog.Default())
			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
			assert.False(t, logger.Enabled(context.Background(), tt.suppressed))
		})
	}
}

func TestNewMetricsForTesting_Unregistered(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()
	a.Polls.WithLabelValues("success").Inc()
	assert.NotSame(t, a.Polls, b.Polls)
}
