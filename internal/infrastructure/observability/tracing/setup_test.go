package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetup_NoopWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), "streetsmart", "test", " ")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_ShutdownFlushesWithUnreachableEndpoint(t *testing.T) {
	// Non-routable address: nothing is exported, shutdown must still succeed.
	shutdown, err := Setup(context.Background(), "streetsmart", "test", "http://192.0.2.1:4318")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
