package server

import (
	"github.com/diewo77/cobranzas/internal/aggregate"
	"github.com/diewo77/cobranzas/internal/handlers"
	"github.com/diewo77/cobranzas/internal/httpx"
	"github.com/diewo77/cobranzas/internal/logger"
	"github.com/diewo77/cobranzas/internal/query"
	"github.com/diewo77/cobranzas/internal/store"
	"github.com/diewo77/cobranzas/internal/syncer"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux    *http.ServeMux
	store  *store.Store
	syncer *syncer.Syncer
	log    zerolog.Logger
}

// NewApp creates a new application with all routes configured.
func NewApp(st *store.Store, sy *syncer.Syncer) *App {
	app := &App{
		mux:    http.NewServeMux(),
		store:  st,
		syncer: sy,
		log:    logger.WithComponent("http"),
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	a.mux.ServeHTTP(w, r)
	a.log.Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Dur("elapsed", time.Since(start)).
		Msg("request")
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	sh := handlers.NewSituationHandler(aggregate.New(a.store))
	ch := handlers.NewClientsHandler(query.New(a.store))
	yh := handlers.NewSyncHandler(a.syncer)
	gh := handlers.NewStorageHandler(a.store)

	a.mux.HandleFunc("GET /health", a.health)
	a.mux.HandleFunc("GET /healthz", a.health)

	a.mux.HandleFunc("GET /api/situacion", sh.Global)
	a.mux.HandleFunc("GET /api/clientes", ch.List)
	a.mux.HandleFunc("GET /api/clientes/{code}/resumen", sh.Client)
	a.mux.HandleFunc("GET /api/clientes/{code}/eventos", sh.Events)
	a.mux.HandleFunc("GET /api/clientes/{code}/pendientes", sh.Pending)
	a.mux.HandleFunc("GET /api/documentos/{id}", sh.Document)

	a.mux.HandleFunc("POST /api/sync", yh.Start)
	a.mux.HandleFunc("GET /api/sync/progress", yh.Progress)

	a.mux.HandleFunc("DELETE /api/local-data", gh.Clear)
	a.mux.HandleFunc("GET /api/storage-info", gh.Info)
}

// health probes the replica connection so load balancers see storage outages.
func (a *App) health(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Conn().Exec("SELECT 1").Error; err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "storage_error", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
