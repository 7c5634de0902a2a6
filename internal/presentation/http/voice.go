package httppresentation

import (
	"net/http"

	appvoice "github.com/Zhima-Mochi/streetsmart/internal/application/voice"
	domvoice "github.com/Zhima-Mochi/streetsmart/internal/domain/voice"
)

type voiceCommandRequest struct {
	Transcript string `json:"transcript"`
}

type voiceResponse struct {
	Command *domvoice.Command         `json:"command,omitempty"`
	Spoken  []string                  `json:"spoken"`
	Actions []ViewAction              `json:"actions"`
	Session *appvoice.SessionSnapshot `json:"session,omitempty"`
}

func (h *Handler) handleVoiceCommand(w http.ResponseWriter, r *http.Request) {
	var req voiceCommandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	view := newRecordingView(h.svc.Speaker)
	out, err := h.svc.Assistant.Handle(r.Context(), req.Transcript, view)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, voiceResponse{Command: &out.Command, Spoken: view.spoken, Actions: view.actions})
}

func (h *Handler) handleVoiceEvent(w http.ResponseWriter, r *http.Request) {
	var evt appvoice.EngineEvent
	if err := decodeJSON(r, &evt); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	view := newRecordingView(h.svc.Speaker)
	out, err := h.svc.Voice.HandleEvent(r.Context(), evt, view)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	snap := h.svc.Voice.Snapshot()
	resp := voiceResponse{Spoken: view.spoken, Actions: view.actions, Session: &snap}
	if out != nil {
		resp.Command = &out.Command
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleVoiceSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Voice.Snapshot())
}
