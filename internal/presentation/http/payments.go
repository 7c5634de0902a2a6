package httppresentation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	dompay "github.com/Zhima-Mochi/streetsmart/internal/domain/payment"
	"github.com/Zhima-Mochi/streetsmart/internal/observability"
	"github.com/Zhima-Mochi/streetsmart/internal/observability/logctx"
)

// formAmount accepts the amount as a JSON number or string and keeps its text,
// so validation sees exactly what the form held.
type formAmount string

func (a *formAmount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = formAmount(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		*a = formAmount(n.String())
	}
	return nil
}

type submitPaymentRequest struct {
	Recipient   string     `json:"recipient"`
	Amount      formAmount `json:"amount"`
	Description string     `json:"description"`
}

func (h *Handler) handleSubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req submitPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.svc.Payments.Submit(r.Context(), dompay.Request{
		Recipient:   req.Recipient,
		Amount:      string(req.Amount),
		Description: req.Description,
	})
	if err != nil && result == nil {
		writeDomainError(w, err)
		return
	}
	if err != nil {
		// The payment resolved as a failure; the result says so.
		logctx.FromOr(r.Context(), h.log).Warn("payment_record_failed", observability.F("error", err.Error()))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handlePaymentStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Payments.Status())
}
