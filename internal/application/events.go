package application

import (
	"context"
	"time"

	domoutbox "github.com/Zhima-Mochi/streetsmart/internal/domain/outbox"
	"github.com/Zhima-Mochi/streetsmart/internal/observability"
	"github.com/Zhima-Mochi/streetsmart/internal/observability/logctx"
)

const publishTimeout = 300 * time.Millisecond

// Publish hands a re-render signal to the bus. It is best effort: a failure is
// logged and returned; the persisted change stands.
func Publish(ctx context.Context, publisher domoutbox.Publisher, fallback observability.Logger, e domoutbox.Event) error {
	if publisher == nil || e == nil {
		return nil
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := publisher.Publish(pubCtx, e); err != nil {
		logctx.FromOr(ctx, fallback).Warn("event_publish_failed",
			observability.F("event", e.EventName()),
			observability.F("error", err.Error()),
		)
		return err
	}
	return nil
}
