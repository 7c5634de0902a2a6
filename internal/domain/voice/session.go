package voice

// SessionState is the recognition engine status shown by the assistant panel.
type SessionState string

const (
	SessionIdle      SessionState = "idle"
	SessionListening SessionState = "listening"
	SessionError     SessionState = "error"
)

// EngineEvent is a lifecycle callback from the speech recognition engine.
type EngineEvent string

const (
	EventStart  EngineEvent = "start"
	EventResult EngineEvent = "result"
	EventError  EngineEvent = "error"
	EventEnd    EngineEvent = "end"
)

func (e EngineEvent) Valid() bool {
	switch e {
	case EventStart, EventResult, EventError, EventEnd:
		return true
	}
	return false
}

// Next returns the state after evt. Results keep the current state; an error
// is recoverable because the engine always follows it with end, and a later
// start resumes listening.
func (s SessionState) Next(evt EngineEvent) SessionState {
	switch evt {
	case EventStart:
		return SessionListening
	case EventError:
		return SessionError
	case EventEnd:
		return SessionIdle
	default:
		if s == "" {
			return SessionIdle
		}
		return s
	}
}

// StatusMessage is the panel text for a state. detail is the engine error code.
func StatusMessage(s SessionState, detail string) string {
	switch s {
	case SessionListening:
		return "Listening... Speak now"
	case SessionError:
		return "Error: " + detail
	default:
		return "Click to start voice interaction"
	}
}
