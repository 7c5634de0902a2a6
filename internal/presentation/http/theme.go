package httppresentation

import (
	"net/http"

	domtheme "github.com/Zhima-Mochi/streetsmart/internal/domain/theme"
)

type themeBody struct {
	Theme string `json:"theme"`
}

func (h *Handler) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Theme.Get(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: string(t)})
}

func (h *Handler) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	t, err := domtheme.Parse(req.Theme)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.svc.Theme.Set(r.Context(), t); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: string(t)})
}

func (h *Handler) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Theme.Toggle(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: string(t)})
}
