package httppresentation

import (
	"net/http"

	appledger "github.com/Zhima-Mochi/streetsmart/internal/application/ledger"
	domledger "github.com/Zhima-Mochi/streetsmart/internal/domain/ledger"
)

type listTransactionsResponse struct {
	Filter       domledger.Window        `json:"filter"`
	Transactions []domledger.Transaction `json:"transactions"`
}

func (h *Handler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	window, err := domledger.ParseWindow(r.URL.Query().Get("filter"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	txs, err := h.svc.Ledger.Filter(r.Context(), window)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listTransactionsResponse{Filter: window, Transactions: txs})
}

func (h *Handler) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req appledger.RecordCommand
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	tx, err := h.svc.Ledger.Record(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}
