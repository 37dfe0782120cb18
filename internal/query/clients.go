package query

import (
	"github.com/diewo77/cobranzas/internal/models"
	"github.com/diewo77/cobranzas/internal/store"
	"sort"
	"strings"
)

// Amount bucket keys. Each bucket is a half-open range except the first,
// which includes both ends: lessTen is [0,10], tenToHundred (10,100], and
// so on up to moreTenThousand (10000,∞).
const (
	BucketAll                   = ""
	BucketLessTen               = "lessTen"
	BucketTenToHundred          = "tenToHundred"
	BucketHundredToThousand     = "hundredToThousand"
	BucketThousandToTenThousand = "thousandToTenThousand"
	BucketMoreTenThousand       = "moreTenThousand"
)

// Day bucket keys over days-since-last-invoice, all ranges inclusive.
const (
	DaysZeroToSeven      = "zeroToSeven"
	DaysEightToFourteen  = "eightToFourteen"
	DaysFifteenToThirty  = "fifteenToThirty"
	DaysThirtyOneToSixty = "thirtyOneToSixty"
	DaysSixtyOneToNinety = "sixtyOneToNinety"
)

// Order field keys; they match the filterable columns.
const (
	OrderLastQuarterSales = "ventas_ultimo_trimestre"
	OrderOverdue          = "vencido"
	OrderTotal            = "total"
	OrderDaysSinceInvoice = "dias_ult_fact"
)

// Filters describes one client-list query. Zero values mean "no filter".
type Filters struct {
	Search           string
	LastQuarterSales string
	OverdueDebt      string
	TotalDebt        string
	DaysSinceInvoice string
	OrderBy          string
	Descending       bool
	Limit            int
	Offset           int
}

// Engine answers client-list queries entirely against the replica.
type Engine struct {
	store *store.Store
}

func New(st *store.Store) *Engine { return &Engine{store: st} }

// Search applies name search, bucket filters, ordering and pagination. A
// search term shorter than three characters is treated as no search at all;
// the caller decides whether to debounce, not this engine.
func (e *Engine) Search(f Filters) ([]models.Client, error) {
	clients, err := e.store.Clients()
	if err != nil {
		return nil, err
	}
	out := []models.Client{}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	for _, c := range clients {
		if len(term) >= 3 && !strings.Contains(strings.ToLower(c.Name), term) {
			continue
		}
		if !amountInBucket(c.LastQuarterSales, f.LastQuarterSales) {
			continue
		}
		if !amountInBucket(c.Overdue, f.OverdueDebt) {
			continue
		}
		if !amountInBucket(c.Total, f.TotalDebt) {
			continue
		}
		if !daysInBucket(c.DaysSinceInvoice, f.DaysSinceInvoice) {
			continue
		}
		out = append(out, c)
	}

	orderClients(out, f.OrderBy, f.Descending)

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []models.Client{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func amountInBucket(v float64, bucket string) bool {
	switch bucket {
	case BucketAll, "all":
		return true
	case BucketLessTen:
		return v >= 0 && v <= 10
	case BucketTenToHundred:
		return v > 10 && v <= 100
	case BucketHundredToThousand:
		return v > 100 && v <= 1000
	case BucketThousandToTenThousand:
		return v > 1000 && v <= 10000
	case BucketMoreTenThousand:
		return v > 10000
	default:
		// Unknown bucket keys filter nothing rather than everything.
		return true
	}
}

func daysInBucket(d int, bucket string) bool {
	switch bucket {
	case BucketAll, "all":
		return true
	case DaysZeroToSeven:
		return d >= 0 && d <= 7
	case DaysEightToFourteen:
		return d >= 8 && d <= 14
	case DaysFifteenToThirty:
		return d >= 15 && d <= 30
	case DaysThirtyOneToSixty:
		return d >= 31 && d <= 60
	case DaysSixtyOneToNinety:
		return d >= 61 && d <= 90
	default:
		return true
	}
}

func orderClients(clients []models.Client, orderBy string, descending bool) {
	key := func(c models.Client) float64 {
		switch orderBy {
		case OrderLastQuarterSales:
			return c.LastQuarterSales
		case OrderOverdue:
			return c.Overdue
		case OrderTotal:
			return c.Total
		default:
			// Default ordering: days since last invoice, ascending.
			return float64(c.DaysSinceInvoice)
		}
	}
	sort.SliceStable(clients, func(i, j int) bool {
		ki, kj := key(clients[i]), key(clients[j])
		if ki != kj {
			if descending {
				return ki > kj
			}
			return ki < kj
		}
		// Deterministic tie-break by display name.
		return clients[i].Name < clients[j].Name
	})
}
