package handlers

import (
	"github.com/diewo77/cobranzas/internal/aggregate"
	"github.com/diewo77/cobranzas/internal/httpx"
	"net/http"
	"time"
)

// SituationHandler serves the dashboard aggregates computed from the replica.
type SituationHandler struct {
	Engine *aggregate.Engine
}

func NewSituationHandler(engine *aggregate.Engine) *SituationHandler {
	return &SituationHandler{Engine: engine}
}

// asOfFrom reads the optional as_of query parameter (YYYY-MM-DD) so the view
// layer and tests can pin the evaluation date; default is today.
func asOfFrom(r *http.Request) time.Time {
	if v := r.URL.Query().Get("as_of"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
	}
	return time.Now()
}

// Global: GET /api/situacion?co_ven=V01,V02
func (h *SituationHandler) Global(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Engine.SellerSummary(r.URL.Query().Get("co_ven"), asOfFrom(r))
	if err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "storage_error", err.Error())
		return
	}
	trend, err := h.Engine.SalesTrend()
	if err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "storage_error", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"situacion":      summary,
		"ventas_por_mes": trend,
	})
}

// Client: GET /api/clientes/{code}/resumen
func (h *SituationHandler) Client(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Engine.ClientSummary(r.PathValue("code"), asOfFrom(r))
	if err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "storage_error", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

// Events: GET /api/clientes/{code}/eventos
func (h *SituationHandler) Events(w http.ResponseWriter, r *http.Request) {
	views, err := h.Engine.ClientEvents(r.PathValue("code"), asOfFrom(r))
	if err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "storage_error", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

// Pending: GET /api/clientes/{code}/pendientes
func (h *SituationHandler) Pending(w http.ResponseWriter, r *http.Request) {
	views, err := h.Engine.ClientPending(r.PathValue("code"), asOfFrom(r))
	if err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "storage_error", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

// Document: GET /api/documentos/{id}
func (h *SituationHandler) Document(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Engine.DocumentDetail(r.PathValue("id"), asOfFrom(r))
	if err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "storage_error", err.Error())
		return
	}
	if detail == nil {
		httpx.JSONError(w, http.StatusNotFound, "document_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}
