package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionState_Next(t *testing.T) {
	s := SessionIdle
	s = s.Next(EventStart)
	assert.Equal(t, SessionListening, s)
	s = s.Next(EventResult)
	assert.Equal(t, SessionListening, s)
	s = s.Next(EventError)
	assert.Equal(t, SessionError, s)
	s = s.Next(EventEnd)
	assert.Equal(t, SessionIdle, s)
	// recoverable: the user may retry after an error
	assert.Equal(t, SessionListening, SessionError.Next(EventStart))
	assert.Equal(t, SessionIdle, SessionState("").Next(EventResult))
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "Error: not-allowed", StatusMessage(SessionError, "not-allowed"))
	assert.Equal(t, "Listening... Speak now", StatusMessage(SessionListening, ""))
	assert.Equal(t, "Click to start voice interaction", StatusMessage(SessionIdle, ""))
}

func TestEngineEvent_Valid(t *testing.T) {
	assert.True(t, EventResult.Valid())
	assert.False(t, EngineEvent("pause").Valid())
}
