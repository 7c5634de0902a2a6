package voice

import (
	"context"
	"errors"
	"testing"
	"time"

	dominv "github.com/Zhima-Mochi/streetsmart/internal/domain/inventory"
	domvoice "github.com/Zhima-Mochi/streetsmart/internal/domain/voice"
	"github.com/Zhima-Mochi/streetsmart/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeView struct {
	spoken  []string
	actions []string
	failOn  string
}

func (v *fakeView) Speak(_ context.Context, text string) error {
	v.spoken = append(v.spoken, text)
	return nil
}

func (v *fakeView) OpenDialog(_ context.Context, d Dialog) error {
	return v.act("open:" + string(d))
}

func (v *fakeView) ScrollTo(_ context.Context, s Section) error {
	return v.act("scroll:" + string(s))
}

func (v *fakeView) FilterInventory(_ context.Context, q string) error {
	return v.act("filter:" + q)
}

func (v *fakeView) act(a string) error {
	if v.failOn == a {
		return errors.New("view gone")
	}
	v.actions = append(v.actions, a)
	return nil
}

type staticInventory struct{ items []dominv.Item }

func (s staticInventory) Search(_ context.Context, term string) (dominv.SearchResult, error) {
	return dominv.Search(s.items, term), nil
}

func (s staticInventory) Stats(context.Context) (dominv.Stats, error) {
	return dominv.Summarize(s.items), nil
}

func sampleInventory() staticInventory {
	now := time.Now()
	return staticInventory{items: []dominv.Item{
		{ID: "1", Name: "Laptop", Price: 45000, Quantity: 5, Category: "electronics", CreatedAt: now},
		{ID: "2", Name: "Smartphone", Price: 25000, Quantity: 10, Category: "electronics", CreatedAt: now},
		{ID: "3", Name: "T-Shirt", Price: 500, Quantity: 50, Category: "clothing", CreatedAt: now},
	}}
}

func TestAssistant_Dispatch(t *testing.T) {
	a := NewAssistant(sampleInventory(), "en-US", nil)

	tests := []struct {
		name       string
		transcript string
		intent     domvoice.Intent
		spoken     string
		actions    []string
	}{
		{"add item", "Please ADD ITEM now", domvoice.IntentAddItem, "Opening add item form", []string{"open:add-item"}},
		{"view inventory", "show inventory", domvoice.IntentViewInventory, "Showing inventory", []string{"scroll:inventory"}},
		{"view transactions", "view transactions", domvoice.IntentViewTransactions, "Showing transactions", []string{"scroll:transactions"}},
		{"make payment", "upi payment", domvoice.IntentMakePayment, "Opening payment form", []string{"scroll:payments"}},
		{"search hit", "search item laptop", domvoice.IntentSearchItem, "Found 1 items matching laptop", []string{"filter:laptop"}},
		{"search category", "search electronics item", domvoice.IntentSearchItem, "Found 2 items matching electronics", []string{"filter:electronics"}},
		{"search miss", "search item xyz", domvoice.IntentSearchItem, "No items found matching xyz", nil},
		{"count", "what is the total inventory", domvoice.IntentTotalInventoryCount, "Total inventory items: 65", nil},
		{"value", "inventory value please", domvoice.IntentTotalInventoryValue, "Total inventory value: ₹500,000.00", nil},
		{"help", "commands", domvoice.IntentHelp, phraseHelp, nil},
		{"unrecognized", "play some music", domvoice.IntentUnrecognized, phraseUnrecognized, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := &fakeView{}
			out, err := a.Handle(context.Background(), tt.transcript, view)
			require.NoError(t, err)
			assert.Equal(t, tt.intent, out.Command.Intent)
			assert.Equal(t, tt.spoken, out.Spoken)
			assert.Equal(t, []string{tt.spoken}, view.spoken)
			assert.Equal(t, tt.actions, view.actions)
		})
	}
}

func TestAssistant_ViewFailureIsReported(t *testing.T) {
	a := NewAssistant(sampleInventory(), "en-US", nil)
	view := &fakeView{failOn: "scroll:inventory"}

	out, err := a.Handle(context.Background(), "view inventory", view)
	require.Error(t, err)
	assert.Equal(t, "Showing inventory", out.Spoken)
}

type mockInventory struct{ mock.Mock }

func (m *mockInventory) Search(ctx context.Context, term string) (dominv.SearchResult, error) {
	args := m.Called(ctx, term)
	return args.Get(0).(dominv.SearchResult), args.Error(1)
}

func (m *mockInventory) Stats(ctx context.Context) (dominv.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(dominv.Stats), args.Error(1)
}

func TestAssistant_SearchErrorSpeaksNothing(t *testing.T) {
	inv := &mockInventory{}
	inv.On("Search", mock.Anything, "pen").Return(dominv.SearchResult{}, errors.New("store down"))
	a := NewAssistant(inv, "en-IN", nil)
	view := &fakeView{}

	_, err := a.Handle(context.Background(), "search item pen", view)
	require.Error(t, err)
	assert.Empty(t, view.spoken)
	inv.AssertExpectations(t)
}

func TestAssistant_BadLocaleFallsBack(t *testing.T) {
	a := NewAssistant(sampleInventory(), "not a locale!!", nil)
	out, err := a.Handle(context.Background(), "inventory count", &fakeView{})
	require.NoError(t, err)
	assert.Equal(t, "Total inventory items: 65", out.Spoken)
}

type capability bool

func (c capability) Supported() bool { return bool(c) }

type countingLogger struct {
	observability.Logger
	warns int
}

func (l *countingLogger) With(...observability.Field) observability.Logger { return l }
func (l *countingLogger) Warn(string, ...observability.Field)              { l.warns++ }

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession(NewAssistant(sampleInventory(), "en-US", nil), capability(true), nil)
	view := &fakeView{}
	ctx := context.Background()

	snap := s.Snapshot()
	assert.Equal(t, domvoice.SessionIdle, snap.State)
	assert.Equal(t, "Click to start voice interaction", snap.Message)

	out, err := s.HandleEvent(ctx, EngineEvent{Type: domvoice.EventStart}, view)
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Equal(t, []string{phraseActivated}, view.spoken)
	assert.Equal(t, "Listening... Speak now", s.Snapshot().Message)

	out, err = s.HandleEvent(ctx, EngineEvent{Type: domvoice.EventResult, Transcript: "show transactions"}, view)
	require.NoError(t, err)
	assert.Equal(t, domvoice.IntentViewTransactions, out.Command.Intent)
	assert.Equal(t, domvoice.SessionListening, s.Snapshot().State)
	assert.Equal(t, "show transactions", s.Snapshot().Transcript)

	_, err = s.HandleEvent(ctx, EngineEvent{Type: domvoice.EventError, Error: "no-speech"}, view)
	require.NoError(t, err)
	snap = s.Snapshot()
	assert.Equal(t, domvoice.SessionError, snap.State)
	assert.Equal(t, "Error: no-speech", snap.Message)

	_, err = s.HandleEvent(ctx, EngineEvent{Type: domvoice.EventEnd}, view)
	require.NoError(t, err)
	assert.Equal(t, domvoice.SessionIdle, s.Snapshot().State)

	// Errors are recoverable.
	_, err = s.HandleEvent(ctx, EngineEvent{Type: domvoice.EventStart}, view)
	require.NoError(t, err)
	assert.Equal(t, domvoice.SessionListening, s.Snapshot().State)
}

func TestSession_RejectsUnknownEvent(t *testing.T) {
	s := NewSession(NewAssistant(sampleInventory(), "en-US", nil), capability(true), nil)

	_, err := s.HandleEvent(context.Background(), EngineEvent{Type: "pause"}, &fakeView{})
	assert.ErrorIs(t, err, ErrInvalidEvent)
	assert.Equal(t, domvoice.SessionIdle, s.Snapshot().State)
}

func TestSession_UnsupportedWarnsOnce(t *testing.T) {
	logger := &countingLogger{}
	s := NewSession(NewAssistant(sampleInventory(), "en-US", nil), capability(false), logger)
	view := &fakeView{}

	for i := 0; i < 3; i++ {
		_, err := s.HandleEvent(context.Background(), EngineEvent{Type: domvoice.EventStart}, view)
		assert.ErrorIs(t, err, ErrVoiceUnsupported)
	}
	assert.False(t, s.Snapshot().Supported)
	assert.Equal(t, 1, logger.warns)
	assert.Empty(t, view.spoken)
}
