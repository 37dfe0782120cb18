package query

import (
	"github.com/diewo77/cobranzas/internal/db"
	"github.com/diewo77/cobranzas/internal/models"
	"github.com/diewo77/cobranzas/internal/store"
	"testing"
)

func setupEngine(t *testing.T, clients []models.Client) *Engine {
	t.Helper()
	conn, err := db.ConnectAndMigrate("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	st := store.New(conn)
	if err := st.PutClients(clients); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return New(st)
}

func names(clients []models.Client) []string {
	out := make([]string, len(clients))
	for i, c := range clients {
		out[i] = c.Name
	}
	return out
}

func TestSearch_ShortTermMatchesEverything(t *testing.T) {
	e := setupEngine(t, []models.Client{
		{Code: "C1", Name: "Bodega Luna"},
		{Code: "C2", Name: "Farmacia Sol"},
	})
	got, err := e.Search(Filters{Search: "bo"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("terms under three characters must not filter, got %v", names(got))
	}
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	e := setupEngine(t, []models.Client{
		{Code: "C1", Name: "Bodega Luna"},
		{Code: "C2", Name: "Farmacia Sol"},
	})
	got, err := e.Search(Filters{Search: "LUNA"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Code != "C1" {
		t.Errorf("got %v, want only Bodega Luna", names(got))
	}
}

func TestSearch_AmountBucketBoundaries(t *testing.T) {
	e := setupEngine(t, []models.Client{
		{Code: "A", Name: "A", Total: 10},    // inside lessTen
		{Code: "B", Name: "B", Total: 10.01}, // outside lessTen
		{Code: "C", Name: "C", Total: 100},
		{Code: "D", Name: "D", Total: 10000},
		{Code: "E", Name: "E", Total: 10000.01},
	})

	tests := []struct {
		bucket string
		want   []string
	}{
		{BucketLessTen, []string{"A"}},
		{BucketTenToHundred, []string{"B", "C"}},
		{BucketThousandToTenThousand, []string{"D"}},
		{BucketMoreTenThousand, []string{"E"}},
		{"bogus-bucket", []string{"A", "B", "C", "D", "E"}},
	}
	for _, tt := range tests {
		t.Run(tt.bucket, func(t *testing.T) {
			got, err := e.Search(Filters{TotalDebt: tt.bucket})
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("bucket %s: got %v, want %v", tt.bucket, names(got), tt.want)
			}
			for i := range tt.want {
				if got[i].Code != tt.want[i] {
					t.Errorf("bucket %s: got %v, want %v", tt.bucket, names(got), tt.want)
				}
			}
		})
	}
}

func TestSearch_DayBuckets(t *testing.T) {
	e := setupEngine(t, []models.Client{
		{Code: "A", Name: "A", DaysSinceInvoice: 7},
		{Code: "B", Name: "B", DaysSinceInvoice: 8},
		{Code: "C", Name: "C", DaysSinceInvoice: 30},
		{Code: "D", Name: "D", DaysSinceInvoice: 61},
	})
	got, err := e.Search(Filters{DaysSinceInvoice: DaysEightToFourteen})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Code != "B" {
		t.Errorf("got %v, want only B", names(got))
	}
	got, err = e.Search(Filters{DaysSinceInvoice: DaysFifteenToThirty})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Code != "C" {
		t.Errorf("got %v, want only C (30 inclusive)", names(got))
	}
}

func TestSearch_OrderingAndTieBreak(t *testing.T) {
	e := setupEngine(t, []models.Client{
		{Code: "C1", Name: "Zeta", Overdue: 100},
		{Code: "C2", Name: "Alfa", Overdue: 100},
		{Code: "C3", Name: "Mitad", Overdue: 50},
	})
	got, err := e.Search(Filters{OrderBy: OrderOverdue, Descending: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := []string{"Alfa", "Zeta", "Mitad"}
	for i := range want {
		if got[i].Name != want[i] {
			t.Fatalf("order = %v, want %v (name breaks amount ties)", names(got), want)
		}
	}
}

func TestSearch_DefaultOrderIsDaysAscending(t *testing.T) {
	e := setupEngine(t, []models.Client{
		{Code: "C1", Name: "Viejo", DaysSinceInvoice: 40},
		{Code: "C2", Name: "Reciente", DaysSinceInvoice: 2},
	})
	got, err := e.Search(Filters{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got[0].Name != "Reciente" {
		t.Errorf("default order wrong: %v", names(got))
	}
}

func TestSearch_Pagination(t *testing.T) {
	e := setupEngine(t, []models.Client{
		{Code: "C1", Name: "A", DaysSinceInvoice: 1},
		{Code: "C2", Name: "B", DaysSinceInvoice: 2},
		{Code: "C3", Name: "C", DaysSinceInvoice: 3},
	})
	got, err := e.Search(Filters{Limit: 2})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 || got[0].Name != "A" {
		t.Errorf("first page = %v", names(got))
	}
	got, err = e.Search(Filters{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Name != "C" {
		t.Errorf("second page = %v", names(got))
	}
	got, err = e.Search(Filters{Limit: 2, Offset: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("past-the-end page must be empty, got %v", names(got))
	}
}
