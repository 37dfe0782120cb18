package handlers

import (
	"github.com/diewo77/cobranzas/internal/httpx"
	"github.com/diewo77/cobranzas/internal/store"
	"net/http"
)

// StorageHandler exposes replica bookkeeping: what is stored, when it was
// refreshed, and a way to wipe it.
type StorageHandler struct {
	Store *store.Store
}

func NewStorageHandler(st *store.Store) *StorageHandler {
	return &StorageHandler{Store: st}
}

// Info: GET /api/storage-info
func (h *StorageHandler) Info(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Store.Counts()
	if err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "storage_error", err.Error())
		return
	}
	payload := map[string]any{
		"counts":    counts,
		"last_sync": nil,
	}
	if v, ok, err := h.Store.GetMetadata("last_sync"); err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "storage_error", err.Error())
		return
	} else if ok {
		payload["last_sync"] = v
	}
	if v, ok, _ := h.Store.GetMetadata("cache_version"); ok {
		payload["cache_version"] = v
	}
	httpx.JSON(w, http.StatusOK, payload)
}

// Clear: DELETE /api/local-data. Metadata goes too, so a later storage-info
// reports empty counts and a null last_sync.
func (h *StorageHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.ClearAll(true); err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "storage_error", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cleared": true})
}
