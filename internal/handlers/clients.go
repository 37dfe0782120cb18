package handlers

import (
	"github.com/diewo77/cobranzas/internal/httpx"
	"github.com/diewo77/cobranzas/internal/query"
	"net/http"
	"strconv"
)

// ClientsHandler serves the filtered client list from the replica.
type ClientsHandler struct {
	Engine *query.Engine
}

func NewClientsHandler(engine *query.Engine) *ClientsHandler {
	return &ClientsHandler{Engine: engine}
}

// List: GET /api/clientes?search=&lastQuarterSales=&overdueDebt=&totalDebt=
// &daysSinceLastInvoice=&orderBy=&order=&limit=&page=
func (h *ClientsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := query.Filters{
		Search:           q.Get("search"),
		LastQuarterSales: q.Get("lastQuarterSales"),
		OverdueDebt:      q.Get("overdueDebt"),
		TotalDebt:        q.Get("totalDebt"),
		DaysSinceInvoice: q.Get("daysSinceLastInvoice"),
		OrderBy:          q.Get("orderBy"),
		Descending:       q.Get("order") == "desc",
	}
	limit := 50
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	f.Limit = limit
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			f.Offset = (n - 1) * limit
		}
	}

	clients, err := h.Engine.Search(f)
	if err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "storage_error", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items": clients,
		"total": len(clients),
		"limit": limit,
	})
}
