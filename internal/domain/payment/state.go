package payment

import "time"

// Session tracks the single payment flow shown by the view.
type Session struct {
	state     sessionState
	Recipient string
	Amount    float64
	UpdatedAt time.Time
}

func NewSession(now time.Time) *Session {
	return &Session{state: readyState{}, UpdatedAt: now.UTC()}
}

func (s *Session) Status() Status { return s.current().Status() }

// Submit moves into processing. It fails with ErrInFlight while a payment is processing.
func (s *Session) Submit(v Validated, now time.Time) error {
	next, err := s.current().OnSubmit()
	if err != nil {
		return err
	}
	s.Recipient, s.Amount = v.Recipient, v.Amount
	s.transition(next, now)
	return nil
}

func (s *Session) Resolve(success bool, now time.Time) error {
	next, err := s.current().OnResolved(success)
	if err != nil {
		return err
	}
	s.transition(next, now)
	return nil
}

// Reset returns to ready from any state.
func (s *Session) Reset(now time.Time) {
	s.Recipient, s.Amount = "", 0
	s.transition(readyState{}, now)
}

func (s *Session) current() sessionState {
	if s.state == nil {
		return readyState{}
	}
	return s.state
}

func (s *Session) transition(next sessionState, now time.Time) {
	s.state = next
	s.UpdatedAt = now.UTC()
}

// sessionState implements the state pattern for the payment lifecycle.
type sessionState interface {
	Status() Status
	OnSubmit() (sessionState, error)
	OnResolved(success bool) (sessionState, error)
}

type readyState struct{}

func (readyState) Status() Status                        { return StatusReady }
func (readyState) OnSubmit() (sessionState, error)       { return processingState{}, nil }
func (readyState) OnResolved(bool) (sessionState, error) { return nil, ErrInvalidStateTransition }

type processingState struct{}

func (processingState) Status() Status                  { return StatusProcessing }
func (processingState) OnSubmit() (sessionState, error) { return nil, ErrInFlight }

func (processingState) OnResolved(success bool) (sessionState, error) {
	if success {
		return successState{}, nil
	}
	return failureState{}, nil
}

// A finished payment stays on screen until the reset; a new submission may
// start right away.
type successState struct{}

func (successState) Status() Status                        { return StatusSuccess }
func (successState) OnSubmit() (sessionState, error)       { return processingState{}, nil }
func (successState) OnResolved(bool) (sessionState, error) { return nil, ErrInvalidStateTransition }

type failureState struct{}

func (failureState) Status() Status                        { return StatusFailure }
func (failureState) OnSubmit() (sessionState, error)       { return processingState{}, nil }
func (failureState) OnResolved(bool) (sessionState, error) { return nil, ErrInvalidStateTransition }
