package speech

import (
	"context"
	"testing"

	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/observability/zaplogger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogSpeaker_LogsUtterance(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewLogSpeaker(zaplogger.New(zap.New(core)))

	require.NoError(t, s.Speak(context.Background(), "Showing inventory"))

	entries := logs.FilterMessage("speak").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Showing inventory", entries[0].ContextMap()["text"])
}

func TestCapability(t *testing.T) {
	assert.True(t, Capability(true).Supported())
	assert.False(t, Capability(false).Supported())
}
