package aggregate

import (
	"github.com/diewo77/cobranzas/internal/models"
	"github.com/diewo77/cobranzas/internal/store"
	"fmt"
	"math"
	"sort"
	"time"
)

// Engine computes financial aggregates from the replica. It never mutates
// the store; the as-of date is always injected so results are reproducible.
type Engine struct {
	store *store.Store
}

func New(st *store.Store) *Engine { return &Engine{store: st} }

// SellerSummary computes the global situation for a seller scope (one code
// or a comma-joined list; empty scope covers the whole replica).
func (e *Engine) SellerSummary(sellerCodes string, asOf time.Time) (Summary, error) {
	documents, err := e.store.DocumentsBySellers(sellerCodes)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(documents, asOf), nil
}

// ClientSummary is the per-client variant, extended with the presentation
// figures the client card shows.
type ClientSummary struct {
	Summary
	ClientCode       string  `json:"co_cli"`
	ClientName       string  `json:"cli_des"`
	TaxID            string  `json:"rif"`
	AvgInvoiceAmount float64 `json:"promedio_monto_factura"`
	DaysSinceInvoice int     `json:"dias_ult_fact"`
}

func (e *Engine) ClientSummary(clientCode string, asOf time.Time) (ClientSummary, error) {
	documents, err := e.store.DocumentsByClient(clientCode)
	if err != nil {
		return ClientSummary{}, err
	}
	out := ClientSummary{
		Summary:    Summarize(documents, asOf),
		ClientCode: clientCode,
		ClientName: placeholderName("Cliente", clientCode),
	}
	if client, err := e.store.ClientByCode(clientCode); err != nil {
		return ClientSummary{}, err
	} else if client != nil {
		out.ClientName = client.Name
		out.TaxID = client.TaxID
		out.DaysSinceInvoice = client.DaysSinceInvoice
	}

	var invoiceTotal float64
	var invoiceCount int
	for _, d := range documents {
		if d.Voided || d.Type != models.TypeInvoice {
			continue
		}
		invoiceTotal += d.NetAmount
		invoiceCount++
	}
	if invoiceCount > 0 {
		out.AvgInvoiceAmount = invoiceTotal / float64(invoiceCount)
	}
	return out, nil
}

// DocumentView is a listing row: a document annotated with the computed
// overdue figures and its presentation metadata.
type DocumentView struct {
	models.Document
	ClientName      string          `json:"cliente_nombre"`
	DiasVencimiento int             `json:"dias_vencimiento"`
	EstaVencido     bool            `json:"esta_vencido"`
	TypeMeta        models.TypeMeta `json:"tipo_meta"`
}

const eventWindowDays = 90

// ClientEvents returns the client's non-voided activity issued within the
// last 90 days, newest first.
func (e *Engine) ClientEvents(clientCode string, asOf time.Time) ([]DocumentView, error) {
	events, err := e.store.EventsByClient(clientCode)
	if err != nil {
		return nil, err
	}
	name, err := e.clientName(clientCode)
	if err != nil {
		return nil, err
	}
	out := []DocumentView{}
	for _, ev := range events {
		if ev.Voided {
			continue
		}
		if ev.IssueDate.IsZero() || ev.IssueDate.DaysSince(asOf) > eventWindowDays {
			continue
		}
		out = append(out, annotate(models.Document{
			ID: ev.ID, Type: ev.Type, Number: ev.Number,
			ClientCode: ev.ClientCode, SellerCode: ev.SellerCode,
			IssueDate: ev.IssueDate, DueDate: ev.DueDate,
			NetAmount: ev.NetAmount, Balance: ev.Balance,
			Voided: ev.Voided, Company: ev.Company,
		}, name, asOf))
	}
	sortByIssueDesc(out)
	return out, nil
}

// ClientPending returns the client's non-settled documents regardless of
// age, newest first.
func (e *Engine) ClientPending(clientCode string, asOf time.Time) ([]DocumentView, error) {
	documents, err := e.store.DocumentsByClient(clientCode)
	if err != nil {
		return nil, err
	}
	name, err := e.clientName(clientCode)
	if err != nil {
		return nil, err
	}
	out := []DocumentView{}
	for _, d := range documents {
		if d.Voided || d.Settled() {
			continue
		}
		out = append(out, annotate(d, name, asOf))
	}
	sortByIssueDesc(out)
	return out, nil
}

// DocumentDetail resolves one document with its line items.
type DocumentDetail struct {
	DocumentView
	SellerName string                `json:"vendedor_nombre"`
	Lines      []models.DocumentLine `json:"renglones"`
}

func (e *Engine) DocumentDetail(id string, asOf time.Time) (*DocumentDetail, error) {
	doc, err := e.store.DocumentByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	name, err := e.clientName(doc.ClientCode)
	if err != nil {
		return nil, err
	}
	sellerName := placeholderName("Vendedor", doc.SellerCode)
	if seller, err := e.store.SellerByCode(doc.SellerCode); err != nil {
		return nil, err
	} else if seller != nil {
		sellerName = seller.Name
	}
	lineKey := fmt.Sprintf("%d-%s-%s", doc.Company, doc.Type, doc.Number)
	lines, err := e.store.LinesByDocument(lineKey)
	if err != nil {
		return nil, err
	}
	return &DocumentDetail{
		DocumentView: annotate(*doc, name, asOf),
		SellerName:   sellerName,
		Lines:        lines,
	}, nil
}

// SalesTrend returns the latest three monthly sales figures in calendar
// order for the dashboard chart.
func (e *Engine) SalesTrend() ([]models.MonthlySale, error) {
	months, err := e.store.MonthlySales()
	if err != nil {
		return nil, err
	}
	if len(months) > 3 {
		months = months[len(months)-3:]
	}
	return months, nil
}

func (e *Engine) clientName(clientCode string) (string, error) {
	client, err := e.store.ClientByCode(clientCode)
	if err != nil {
		return "", err
	}
	// Dangling references must not break listings.
	if client == nil {
		return placeholderName("Cliente", clientCode), nil
	}
	return client.Name, nil
}

func placeholderName(kind, code string) string {
	return fmt.Sprintf("%s %s", kind, code)
}

func annotate(d models.Document, clientName string, asOf time.Time) DocumentView {
	view := DocumentView{
		Document:   d,
		ClientName: clientName,
		TypeMeta:   models.MetaForType(d.Type),
	}
	if !d.DueDate.IsZero() {
		days := d.DueDate.DaysSince(asOf)
		view.DiasVencimiento = int(math.Max(0, float64(days)))
		view.EstaVencido = days >= 0 && !d.Settled()
	}
	return view
}

func sortByIssueDesc(views []DocumentView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].IssueDate.After(views[j].IssueDate.Time)
	})
}
