package httppresentation

import (
	"net/http"

	appinv "github.com/Zhima-Mochi/streetsmart/internal/application/inventory"
	dominv "github.com/Zhima-Mochi/streetsmart/internal/domain/inventory"
)

type listInventoryResponse struct {
	Items []dominv.Item `json:"items"`
}

type updateItemResponse struct {
	Updated bool         `json:"updated"`
	Item    *dominv.Item `json:"item,omitempty"`
}

type deleteItemResponse struct {
	Deleted bool `json:"deleted"`
}

func (h *Handler) handleListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Inventory.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listInventoryResponse{Items: items})
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req appinv.AddCommand
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	item, err := h.svc.Inventory.Add(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var patch dominv.Patch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	item, found, err := h.svc.Inventory.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updateItemResponse{Updated: found, Item: item})
}

func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	removed, err := h.svc.Inventory.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteItemResponse{Deleted: removed})
}

func (h *Handler) handleSearchInventory(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Inventory.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleInventoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Inventory.Stats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
