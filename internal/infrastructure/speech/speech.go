// Package speech provides the server-side speech adapters. Synthesis and
// recognition happen in the browser; here utterances are logged and the
// recognition capability is a configuration switch.
package speech

import (
	"context"

	"github.com/Zhima-Mochi/streetsmart/internal/observability"
	"github.com/Zhima-Mochi/streetsmart/internal/observability/logctx"
)

// LogSpeaker writes each utterance as an info line.
type LogSpeaker struct {
	log observability.Logger
}

func NewLogSpeaker(logger observability.Logger) *LogSpeaker {
	return &LogSpeaker{log: logger}
}

func (s *LogSpeaker) Speak(ctx context.Context, text string) error {
	logctx.FromOr(ctx, s.log).Info("speak", observability.F("text", text))
	return nil
}

// Capability reports a fixed recognition availability.
type Capability bool

func (c Capability) Supported() bool { return bool(c) }
