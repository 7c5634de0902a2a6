package httppresentation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	dominv "github.com/Zhima-Mochi/streetsmart/internal/domain/inventory"
	domledger "github.com/Zhima-Mochi/streetsmart/internal/domain/ledger"
	domoutbox "github.com/Zhima-Mochi/streetsmart/internal/domain/outbox"
	dompay "github.com/Zhima-Mochi/streetsmart/internal/domain/payment"
	"github.com/Zhima-Mochi/streetsmart/internal/observability"
	"github.com/Zhima-Mochi/streetsmart/internal/observability/logctx"
	workerpresentation "github.com/Zhima-Mochi/streetsmart/internal/presentation/worker"
)

const (
	componentEventStream = "event_stream"
	clientBuffer         = 16
	keepAliveInterval    = 25 * time.Second
)

// streamedEvents are the re-render signals forwarded to browsers.
var streamedEvents = []string{
	dominv.ChangedEvent{}.EventName(),
	domledger.RecordedEvent{}.EventName(),
	dompay.StatusChangedEvent{}.EventName(),
}

type frame struct {
	name string
	data []byte
}

// EventStream relays bus events to connected browsers as server-sent events.
// Slow clients miss frames instead of holding up the bus.
type EventStream struct {
	mu        sync.Mutex
	clients   map[chan frame]struct{}
	done      chan struct{}
	closeOnce sync.Once
	log       observability.Logger
	sent      observability.Counter
}

func NewEventStream(sub domoutbox.Subscriber, logger observability.Logger, tel observability.Observability) *EventStream {
	if tel == nil {
		tel = observability.Nop()
	}
	if logger == nil {
		logger = tel.Logger()
	}
	s := &EventStream{
		clients: make(map[chan frame]struct{}),
		done:    make(chan struct{}),
		log:     logger.With(observability.F("component", componentEventStream)),
		sent:    tel.Metrics().Counter(observability.MEventPublish),
	}
	if sub != nil {
		for _, name := range streamedEvents {
			sub.Subscribe(name, s.handle)
		}
	}
	return s
}

func (s *EventStream) handle(ctx context.Context, e domoutbox.Event) error {
	_, logger := workerpresentation.WithEventContext(ctx, s.log, e, map[string]string{"consumer": componentEventStream})

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode %s: %w", e.EventName(), err)
	}
	f := frame{name: e.EventName(), data: data}

	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for ch := range s.clients {
		select {
		case ch <- f:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		logger.Warn("sse_frame_dropped", observability.F("clients", dropped))
	}
	s.sent.Add(float64(len(s.clients)-dropped),
		observability.L("event", f.name),
		observability.L("outcome", "streamed"),
	)
	return nil
}

// Close ends every open stream, e.g. when the HTTP server shuts down.
func (s *EventStream) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Clients reports how many browsers are connected.
func (s *EventStream) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *EventStream) attach() chan frame {
	ch := make(chan frame, clientBuffer)
	s.mu.Lock()
	s.clients[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *EventStream) detach(ch chan frame) {
	s.mu.Lock()
	delete(s.clients, ch)
	s.mu.Unlock()
}

func (s *EventStream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	logger := logctx.FromOr(r.Context(), s.log)

	ch := s.attach()
	defer s.detach(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		logger.Warn("sse_flush_unsupported", observability.F("error", err.Error()))
		return
	}
	logger.Info("sse_client_connected")

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			logger.Info("sse_client_disconnected")
			return
		case <-s.done:
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
		case f := <-ch:
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", f.name, f.data); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
