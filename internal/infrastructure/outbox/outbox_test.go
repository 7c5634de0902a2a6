package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domoutbox "github.com/Zhima-Mochi/streetsmart/internal/domain/outbox"
	"github.com/Zhima-Mochi/streetsmart/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct{ name string }

func (e testEvent) EventName() string { return e.name }

func TestBus_DeliversToEverySubscriber(t *testing.T) {
	bus := NewBus(nil, observability.Nop())
	bus.Start(context.Background())

	var mu sync.Mutex
	var got []string
	var wg sync.WaitGroup
	wg.Add(2)
	record := func(tag string) domoutbox.Handler {
		return func(_ context.Context, e domoutbox.Event) error {
			mu.Lock()
			got = append(got, tag+":"+e.EventName())
			mu.Unlock()
			wg.Done()
			return nil
		}
	}
	bus.Subscribe("inventory.changed", record("a"))
	bus.Subscribe("inventory.changed", record("b"))

	require.NoError(t, bus.Publish(context.Background(), testEvent{name: "inventory.changed"}))
	wg.Wait()
	bus.Stop(context.Background())

	assert.ElementsMatch(t, []string{"a:inventory.changed", "b:inventory.changed"}, got)
}

func TestBus_HandlerPanicDoesNotStopDispatch(t *testing.T) {
	bus := NewBus(nil, nil)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	delivered := make(chan struct{})
	bus.Subscribe("boom", func(context.Context, domoutbox.Event) error { panic("handler bug") })
	bus.Subscribe("ok", func(context.Context, domoutbox.Event) error {
		close(delivered)
		return errors.New("handled with error")
	})

	require.NoError(t, bus.Publish(context.Background(), testEvent{name: "boom"}))
	require.NoError(t, bus.Publish(context.Background(), testEvent{name: "ok"}))

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("event after a panicking handler was not delivered")
	}
}

func TestBus_PublishAfterStop(t *testing.T) {
	bus := NewBus(nil, nil)
	bus.Start(context.Background())
	bus.Stop(context.Background())
	bus.Stop(context.Background())

	err := bus.Publish(context.Background(), testEvent{name: "ledger.changed"})
	assert.ErrorIs(t, err, ErrStopped)
	assert.NoError(t, bus.Publish(context.Background(), nil))
}

func TestBus_StopDrainsQueuedEvents(t *testing.T) {
	bus := NewBus(nil, nil)

	var mu sync.Mutex
	count := 0
	bus.Subscribe("ledger.changed", func(context.Context, domoutbox.Event) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, bus.Publish(context.Background(), testEvent{name: "ledger.changed"}))
	}
	bus.Start(context.Background())
	bus.Stop(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, count)
}
