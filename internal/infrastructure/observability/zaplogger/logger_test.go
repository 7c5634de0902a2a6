package zaplogger

import (
	"errors"
	"testing"

	"github.com/Zhima-Mochi/streetsmart/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WritesFixedAndDynamicFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := New(zap.New(core), observability.F("component", "test"))

	log.With(observability.F("request_id", "r-1")).Warn("payment_rejected",
		observability.F("error", errors.New("payment: in flight")),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "payment_rejected", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "test", fields["component"])
	assert.Equal(t, "r-1", fields["request_id"])
	assert.Equal(t, "payment: in flight", fields["error"])
}
