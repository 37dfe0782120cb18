package handlers

import (
	"github.com/diewo77/cobranzas/internal/httpx"
	"github.com/diewo77/cobranzas/internal/remote"
	"github.com/diewo77/cobranzas/internal/syncer"
	"encoding/json"
	"errors"
	"net/http"
)

// SyncHandler triggers replica refreshes and reports their progress.
type SyncHandler struct {
	Syncer *syncer.Syncer
}

func NewSyncHandler(s *syncer.Syncer) *SyncHandler {
	return &SyncHandler{Syncer: s}
}

// Start: POST /api/sync with a UserInfo body. Returns 409 while another sync
// is in flight and 401 when the remote rejects the credentials.
func (h *SyncHandler) Start(w http.ResponseWriter, r *http.Request) {
	var user syncer.UserInfo
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if user.SellerCode == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", "codigo_vendedor_profit is required")
		return
	}

	result, err := h.Syncer.Run(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, syncer.ErrSyncInProgress):
			httpx.JSONError(w, http.StatusConflict, "sync_in_progress", nil)
		case errors.Is(err, remote.ErrUnauthorized):
			httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		default:
			httpx.JSONError(w, http.StatusBadGateway, "sync_failed", err.Error())
		}
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// Progress: GET /api/sync/progress
func (h *SyncHandler) Progress(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"running":  h.Syncer.Running(),
		"progress": h.Syncer.LastProgress(),
	})
}
