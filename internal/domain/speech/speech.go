// Package speech holds the ports for the host-provided speech capabilities.
package speech

import "context"

// Output speaks a line of text (speech synthesis).
type Output interface {
	Speak(ctx context.Context, text string) error
}

// Input describes the speech recognition engine. Recognition itself runs on
// the host; the service only needs to know whether it is available.
type Input interface {
	Supported() bool
}

type nopOutput struct{}

func (nopOutput) Speak(context.Context, string) error { return nil }

// Silent returns an Output that drops every line.
func Silent() Output { return nopOutput{} }
