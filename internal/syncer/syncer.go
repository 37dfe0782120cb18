package syncer

import (
	"github.com/diewo77/cobranzas/internal/logger"
	"github.com/diewo77/cobranzas/internal/models"
	"github.com/diewo77/cobranzas/internal/store"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrSyncInProgress is returned when a second sync is attempted while one is
// running. Policy is fail-fast, not queue.
var ErrSyncInProgress = errors.New("sync_in_progress")

// Remote is the slice of the remote API the orchestrator needs.
type Remote interface {
	FetchDocuments(ctx context.Context, sellerCode string) ([]models.Document, error)
	FetchEvents(ctx context.Context, sellerCode string) ([]models.Event, error)
	FetchClients(ctx context.Context, clientCodes []string) ([]models.Client, error)
	FetchSellers(ctx context.Context) ([]models.Seller, error)
	FetchDocumentLines(ctx context.Context, sellerCode string) ([]models.DocumentLine, error)
	FetchMonthlySales(ctx context.Context, sellerCode string) ([]models.MonthlySale, error)
}

// UserInfo identifies who the replica was synced for.
type UserInfo struct {
	Username     string `json:"username"`
	FullName     string `json:"nombre_completo"`
	SellerCode   string `json:"codigo_vendedor_profit"`
	CacheVersion string `json:"cache_version,omitempty"`
}

// Progress is the side-channel notification emitted after each stage.
type Progress struct {
	Step       string `json:"step"`
	Current    int    `json:"current"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// Result summarizes a completed sync.
type Result struct {
	ClientsImported   int       `json:"clientes_imported"`
	SellersImported   int       `json:"vendedores_imported"`
	DocumentsImported int       `json:"documentos_imported"`
	EventsImported    int       `json:"eventos_imported"`
	LinesImported     int       `json:"renglones_imported"`
	MonthsImported    int       `json:"meses_imported"`
	Timestamp         time.Time `json:"timestamp"`
}

// Syncer refreshes the whole local replica from the remote service in one
// guarded, all-or-nothing operation.
type Syncer struct {
	remote Remote
	store  *store.Store
	notify func(Progress)
	log    zerolog.Logger

	mu   sync.Mutex
	last Progress
	lmu  sync.Mutex
}

// New builds a Syncer. notify may be nil when no progress consumer exists.
func New(remote Remote, st *store.Store, notify func(Progress)) *Syncer {
	return &Syncer{
		remote: remote,
		store:  st,
		notify: notify,
		log:    logger.WithComponent("syncer"),
	}
}

func (s *Syncer) step(name string, current int) {
	p := Progress{Step: name, Current: current, Total: 100, Percentage: current}
	s.lmu.Lock()
	s.last = p
	s.lmu.Unlock()
	s.log.Info().Str("step", name).Int("pct", current).Msg("sync progress")
	if s.notify != nil {
		s.notify(p)
	}
}

// LastProgress returns the most recent progress notification.
func (s *Syncer) LastProgress() Progress {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	return s.last
}

// Running reports whether a sync is currently in flight.
func (s *Syncer) Running() bool {
	if s.mu.TryLock() {
		s.mu.Unlock()
		return false
	}
	return true
}

// Run executes the full-replace sync for the given user. Fetch failures abort
// before the replica is touched; the write phase is one transaction, so a
// write failure also leaves the previous replica intact.
func (s *Syncer) Run(ctx context.Context, user UserInfo) (Result, error) {
	if !s.mu.TryLock() {
		return Result{}, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	s.step("Obteniendo documentos...", 0)
	documents, err := s.remote.FetchDocuments(ctx, user.SellerCode)
	if err != nil {
		return Result{}, fmt.Errorf("fetch documents: %w", err)
	}

	s.step("Obteniendo eventos...", 5)
	events, err := s.remote.FetchEvents(ctx, user.SellerCode)
	if err != nil {
		return Result{}, fmt.Errorf("fetch events: %w", err)
	}

	s.step("Obteniendo clientes...", 10)
	clients, err := s.remote.FetchClients(ctx, clientCodesOf(documents))
	if err != nil {
		return Result{}, fmt.Errorf("fetch clients: %w", err)
	}
	for i := range clients {
		clients[i].Contacts = models.Contacts{synthesizeContact(clients[i])}
	}

	s.step("Obteniendo vendedores...", 20)
	sellers, err := s.remote.FetchSellers(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch sellers: %w", err)
	}

	s.step("Obteniendo renglones de documentos...", 30)
	lines, err := s.remote.FetchDocumentLines(ctx, user.SellerCode)
	if err != nil {
		return Result{}, fmt.Errorf("fetch document lines: %w", err)
	}

	s.step("Obteniendo ventas mensuales...", 40)
	monthSales, err := s.remote.FetchMonthlySales(ctx, user.SellerCode)
	if err != nil {
		return Result{}, fmt.Errorf("fetch monthly sales: %w", err)
	}

	now := time.Now()
	metadata := map[string]string{
		"last_sync":                  now.Format(time.RFC3339),
		"total_clientes":             strconv.Itoa(len(clients)),
		"total_vendedores":           strconv.Itoa(len(sellers)),
		"total_documentos":           strconv.Itoa(len(documents)),
		"total_eventos":              strconv.Itoa(len(events)),
		"total_renglones_documentos": strconv.Itoa(len(lines)),
		"total_ventas_mensuales":     strconv.Itoa(len(monthSales)),
		"user_name":                  user.Username,
		"nombre_completo":            user.FullName,
		"codigo_vendedor_profit":     user.SellerCode,
	}
	if user.CacheVersion != "" {
		metadata["cache_version"] = user.CacheVersion
	}

	s.step("Guardando datos locales...", 50)
	snap := store.Snapshot{
		Clients:      clients,
		Sellers:      sellers,
		Documents:    documents,
		Events:       events,
		Lines:        lines,
		MonthlySales: monthSales,
		Metadata:     metadata,
	}
	if err := s.store.ReplaceAll(snap); err != nil {
		return Result{}, fmt.Errorf("write replica: %w", err)
	}

	s.step("Importación completada", 100)
	return Result{
		ClientsImported:   len(clients),
		SellersImported:   len(sellers),
		DocumentsImported: len(documents),
		EventsImported:    len(events),
		LinesImported:     len(lines),
		MonthsImported:    len(monthSales),
		Timestamp:         now,
	}, nil
}

// clientCodesOf derives the distinct client codes referenced by a document
// set, sorted for deterministic requests.
func clientCodesOf(documents []models.Document) []string {
	seen := map[string]bool{}
	var codes []string
	for _, d := range documents {
		if d.ClientCode == "" || seen[d.ClientCode] {
			continue
		}
		seen[d.ClientCode] = true
		codes = append(codes, d.ClientCode)
	}
	sort.Strings(codes)
	return codes
}
