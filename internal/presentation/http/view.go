package httppresentation

import (
	"context"

	appvoice "github.com/Zhima-Mochi/streetsmart/internal/application/voice"
	"github.com/Zhima-Mochi/streetsmart/internal/domain/speech"
)

// ViewAction is a UI instruction returned to the browser.
type ViewAction struct {
	Type   string `json:"type"`
	Target string `json:"target"`
}

const (
	actionOpenDialog      = "open_dialog"
	actionScrollTo        = "scroll_to"
	actionFilterInventory = "filter_inventory"
)

// recordingView collects what the assistant did during one request so the
// browser can replay it. Spoken lines are forwarded to the server speaker too.
type recordingView struct {
	speaker speech.Output
	spoken  []string
	actions []ViewAction
}

var _ appvoice.View = (*recordingView)(nil)

func newRecordingView(speaker speech.Output) *recordingView {
	return &recordingView{speaker: speaker, spoken: []string{}, actions: []ViewAction{}}
}

func (v *recordingView) Speak(ctx context.Context, text string) error {
	v.spoken = append(v.spoken, text)
	return v.speaker.Speak(ctx, text)
}

func (v *recordingView) OpenDialog(_ context.Context, d appvoice.Dialog) error {
	v.actions = append(v.actions, ViewAction{Type: actionOpenDialog, Target: string(d)})
	return nil
}

func (v *recordingView) ScrollTo(_ context.Context, s appvoice.Section) error {
	v.actions = append(v.actions, ViewAction{Type: actionScrollTo, Target: string(s)})
	return nil
}

func (v *recordingView) FilterInventory(_ context.Context, query string) error {
	v.actions = append(v.actions, ViewAction{Type: actionFilterInventory, Target: query})
	return nil
}
