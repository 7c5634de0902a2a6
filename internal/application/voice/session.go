package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Zhima-Mochi/streetsmart/internal/domain/speech"
	domvoice "github.com/Zhima-Mochi/streetsmart/internal/domain/voice"
	"github.com/Zhima-Mochi/streetsmart/internal/observability"
)

var (
	ErrVoiceUnsupported = errors.New("voice: speech recognition is not supported")
	ErrInvalidEvent     = errors.New("voice: unknown engine event")
)

// EngineEvent is one callback from the recognition engine. Transcript is set
// for results, Error for errors.
type EngineEvent struct {
	Type       domvoice.EngineEvent `json:"type"`
	Transcript string               `json:"transcript,omitempty"`
	Error      string               `json:"error,omitempty"`
}

// SessionSnapshot is the assistant panel state.
type SessionSnapshot struct {
	Supported  bool                  `json:"supported"`
	State      domvoice.SessionState `json:"state"`
	Message    string                `json:"message"`
	Transcript string                `json:"transcript,omitempty"`
}

// Session owns the single recognition session of an application context.
type Session struct {
	assistant *Assistant
	input     speech.Input
	log       observability.Logger
	warnOnce  sync.Once

	mu         sync.Mutex
	state      domvoice.SessionState
	detail     string
	transcript string
}

func NewSession(assistant *Assistant, input speech.Input, logger observability.Logger) *Session {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Session{
		assistant: assistant,
		input:     input,
		log:       logger.With(observability.F("service", voiceService)),
		state:     domvoice.SessionIdle,
	}
}

// Supported reports whether the recognition engine is available. The first
// negative answer is logged as a warning; later ones are silent.
func (s *Session) Supported() bool {
	if s.input != nil && s.input.Supported() {
		return true
	}
	s.warnOnce.Do(func() {
		s.log.Warn("speech_recognition_unsupported")
	})
	return false
}

// HandleEvent applies an engine callback. Results are dispatched to the
// assistant; the returned Outcome is nil for other events.
func (s *Session) HandleEvent(ctx context.Context, evt EngineEvent, view View) (*Outcome, error) {
	if !s.Supported() {
		return nil, ErrVoiceUnsupported
	}
	if !evt.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEvent, evt.Type)
	}

	s.mu.Lock()
	s.state = s.state.Next(evt.Type)
	switch evt.Type {
	case domvoice.EventError:
		s.detail = strings.TrimSpace(evt.Error)
	case domvoice.EventResult:
		s.transcript = evt.Transcript
	case domvoice.EventStart:
		s.detail = ""
	}
	s.mu.Unlock()

	switch evt.Type {
	case domvoice.EventStart:
		if err := view.Speak(ctx, phraseActivated); err != nil {
			return nil, fmt.Errorf("voice: speak: %w", err)
		}
	case domvoice.EventError:
		s.log.Warn("speech_recognition_error", observability.F("error", evt.Error))
	case domvoice.EventResult:
		return s.assistant.Handle(ctx, evt.Transcript, view)
	}
	return nil, nil
}

func (s *Session) Snapshot() SessionSnapshot {
	supported := s.Supported()
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionSnapshot{
		Supported:  supported,
		State:      s.state,
		Message:    domvoice.StatusMessage(s.state, s.detail),
		Transcript: s.transcript,
	}
}
