package store

import (
	"github.com/diewo77/cobranzas/internal/db"
	"github.com/diewo77/cobranzas/internal/models"
	"errors"
	"testing"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	conn, err := db.ConnectAndMigrate("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return New(conn)
}

func TestPutDocuments_AssignsKeyAndUpserts(t *testing.T) {
	st := setupStore(t)
	if err := st.PutDocuments([]models.Document{
		{Type: "FACT", Number: "100", Balance: 500},
	}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := st.DocumentByID("FACT_100")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Balance != 500 {
		t.Fatalf("document not stored: %+v", got)
	}

	// Same key again must update, not duplicate.
	if err := st.PutDocuments([]models.Document{
		{Type: "FACT", Number: "100", Balance: 250},
	}); err != nil {
		t.Fatalf("re-put: %v", err)
	}
	docs, err := st.Documents()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 || docs[0].Balance != 250 {
		t.Fatalf("upsert failed: %+v", docs)
	}
}

func TestClientRoundTripWithContacts(t *testing.T) {
	st := setupStore(t)
	c := models.Client{
		Code: "C1", Name: "Bodega Luna", TaxID: "J-1234",
		Contacts: models.Contacts{{
			ID: -1, ClientID: "C1", Name: "Bodega Luna",
			Phones: []models.Phone{{ID: -1, Phone: "0414-5551234", PhoneType: "main"}},
		}},
	}
	if err := st.PutClients([]models.Client{c}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := st.ClientByCode("C1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("client not found")
	}
	if len(got.Contacts) != 1 || len(got.Contacts[0].Phones) != 1 {
		t.Fatalf("contacts not round-tripped: %+v", got.Contacts)
	}
	if got.Contacts[0].Phones[0].Phone != "0414-5551234" {
		t.Errorf("phone = %q", got.Contacts[0].Phones[0].Phone)
	}
}

func TestLookupMissingReturnsNilNotError(t *testing.T) {
	st := setupStore(t)
	c, err := st.ClientByCode("nope")
	if err != nil || c != nil {
		t.Errorf("ClientByCode = %v, %v; want nil, nil", c, err)
	}
	d, err := st.DocumentByID("nope")
	if err != nil || d != nil {
		t.Errorf("DocumentByID = %v, %v; want nil, nil", d, err)
	}
}

func TestReplaceAll_SwapsSnapshot(t *testing.T) {
	st := setupStore(t)
	if err := st.PutDocuments([]models.Document{{Type: "FACT", Number: "old", Balance: 1}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	snap := Snapshot{
		Clients:   []models.Client{{Code: "C1", Name: "Nueva"}},
		Documents: []models.Document{{Type: "FACT", Number: "new", Balance: 2}},
		Metadata:  map[string]string{"last_sync": "2025-03-15T00:00:00Z"},
	}
	if err := st.ReplaceAll(snap); err != nil {
		t.Fatalf("replace: %v", err)
	}

	docs, err := st.Documents()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "FACT_new" {
		t.Fatalf("old snapshot survived: %+v", docs)
	}
	if v, ok, _ := st.GetMetadata("last_sync"); !ok || v != "2025-03-15T00:00:00Z" {
		t.Errorf("metadata not written: %q %v", v, ok)
	}
}

func TestClearAll(t *testing.T) {
	st := setupStore(t)
	if err := st.PutClients([]models.Client{{Code: "C1"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := st.SetMetadata("last_sync", "x"); err != nil {
		t.Fatalf("meta: %v", err)
	}

	if err := st.ClearAll(true); err != nil {
		t.Fatalf("clear: %v", err)
	}
	counts, err := st.Counts()
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	for table, n := range counts {
		if n != 0 {
			t.Errorf("%s not cleared: %d rows", table, n)
		}
	}
	if _, ok, _ := st.GetMetadata("last_sync"); ok {
		t.Error("metadata survived full clear")
	}
}

func TestClearAll_KeepMetadata(t *testing.T) {
	st := setupStore(t)
	if err := st.SetMetadata("last_sync", "x"); err != nil {
		t.Fatalf("meta: %v", err)
	}
	if err := st.ClearAll(false); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := st.GetMetadata("last_sync"); !ok {
		t.Error("metadata must survive entity-only clear")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	first, err := Open("file:open-idempotent?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	second, err := Open("file:some-other-dsn?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if first != second {
		t.Error("Open must return the same handle on repeat calls")
	}
}

func TestReplaceAll_FailureKeepsPreviousReplica(t *testing.T) {
	st := setupStore(t)
	if err := st.PutDocuments([]models.Document{{Type: "FACT", Number: "old", Balance: 1}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Breaking one table makes the transactional replace fail mid-way.
	if err := st.Conn().Exec("DROP TABLE monthly_sales").Error; err != nil {
		t.Fatalf("drop: %v", err)
	}
	err := st.ReplaceAll(Snapshot{
		Documents: []models.Document{{Type: "FACT", Number: "new", Balance: 2}},
	})
	if err == nil {
		t.Fatal("expected replace failure")
	}
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("err = %v, want ErrStorageUnavailable wrap", err)
	}

	docs, listErr := st.Documents()
	if listErr != nil {
		t.Fatalf("list: %v", listErr)
	}
	if len(docs) != 1 || docs[0].ID != "FACT_old" {
		t.Fatalf("previous replica lost after failed replace: %+v", docs)
	}
}

func TestStorageErrWrapsSentinel(t *testing.T) {
	err := storageErr("op", errors.New("boom"))
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("storageErr must wrap ErrStorageUnavailable, got %v", err)
	}
	if storageErr("op", nil) != nil {
		t.Error("nil error must stay nil")
	}
}
