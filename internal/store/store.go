package store

import (
	"github.com/diewo77/cobranzas/internal/db"
	"github.com/diewo77/cobranzas/internal/logger"
	"github.com/diewo77/cobranzas/internal/models"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStorageUnavailable marks failures of the local store itself (missing
// file permissions, full disk, broken connection). Callers distinguish it
// from transport errors because it means offline mode is broken, not just
// the network.
var ErrStorageUnavailable = errors.New("storage_unavailable")

// Store is the local replica of the remote system of record. It is the sole
// mutator of the entity collections; the aggregation and query engines only
// read from it.
type Store struct {
	conn *gorm.DB
	log  zerolog.Logger
}

func New(conn *gorm.DB) *Store {
	return &Store{conn: conn, log: logger.WithComponent("store")}
}

var (
	openMu sync.Mutex
	shared *Store
)

// Open returns the process-wide store handle, creating the database on first
// use. Calling it again is a no-op returning the existing handle.
func Open(dsn string) (*Store, error) {
	openMu.Lock()
	defer openMu.Unlock()
	if shared != nil {
		return shared, nil
	}
	conn, err := db.ConnectAndMigrate(dsn)
	if err != nil {
		return nil, storageErr("open replica", err)
	}
	shared = New(conn)
	return shared, nil
}

// Conn exposes the underlying handle for read-only engine queries.
func (s *Store) Conn() *gorm.DB { return s.conn }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %v", op, ErrStorageUnavailable, err)
}

// Snapshot is one full remote pull, written atomically by ReplaceAll.
type Snapshot struct {
	Clients      []models.Client
	Sellers      []models.Seller
	Documents    []models.Document
	Events       []models.Event
	Lines        []models.DocumentLine
	MonthlySales []models.MonthlySale
	Metadata     map[string]string
}

const putBatchSize = 200

func upsert[T any](tx *gorm.DB, records []T) error {
	if len(records) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(records, putBatchSize).Error
}

// ReplaceAll clears every entity collection and writes the snapshot inside a
// single transaction, so a failed write leaves the previous replica intact.
func (s *Store) ReplaceAll(snap Snapshot) error {
	err := s.conn.Transaction(func(tx *gorm.DB) error {
		if err := clearEntities(tx, true); err != nil {
			return err
		}
		for i := range snap.Documents {
			if snap.Documents[i].ID == "" {
				snap.Documents[i].ID = snap.Documents[i].Key()
			}
		}
		for i := range snap.Events {
			if snap.Events[i].ID == "" {
				snap.Events[i].ID = snap.Events[i].Key()
			}
		}
		if err := upsert(tx, snap.Clients); err != nil {
			return err
		}
		if err := upsert(tx, snap.Sellers); err != nil {
			return err
		}
		if err := upsert(tx, snap.Documents); err != nil {
			return err
		}
		if err := upsert(tx, snap.Events); err != nil {
			return err
		}
		if err := upsert(tx, snap.Lines); err != nil {
			return err
		}
		if err := upsert(tx, snap.MonthlySales); err != nil {
			return err
		}
		now := time.Now()
		for k, v := range snap.Metadata {
			meta := models.SyncMetadata{Key: k, Value: v, Timestamp: now}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&meta).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("replica replace failed, previous contents kept")
		return storageErr("replace replica", err)
	}
	s.log.Info().
		Int("clients", len(snap.Clients)).
		Int("documents", len(snap.Documents)).
		Int("events", len(snap.Events)).
		Int("lines", len(snap.Lines)).
		Msg("replica replaced")
	return nil
}

// PutClients upserts records by primary key without deleting absent ones.
// Full wipe is a separate explicit operation (ClearAll / ReplaceAll).
func (s *Store) PutClients(records []models.Client) error {
	return storageErr("put clients", upsert(s.conn, records))
}

func (s *Store) PutSellers(records []models.Seller) error {
	return storageErr("put sellers", upsert(s.conn, records))
}

// PutDocuments assigns each record its derived type_number key before the
// upsert, mirroring the remote composite identity.
func (s *Store) PutDocuments(records []models.Document) error {
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = records[i].Key()
		}
	}
	return storageErr("put documents", upsert(s.conn, records))
}

func (s *Store) PutEvents(records []models.Event) error {
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = records[i].Key()
		}
	}
	return storageErr("put events", upsert(s.conn, records))
}

func (s *Store) PutDocumentLines(records []models.DocumentLine) error {
	return storageErr("put document lines", upsert(s.conn, records))
}

func (s *Store) PutMonthlySales(records []models.MonthlySale) error {
	return storageErr("put monthly sales", upsert(s.conn, records))
}

func clearEntities(tx *gorm.DB, includeMetadata bool) error {
	tables := []string{"clients", "sellers", "documents", "events", "document_lines", "monthly_sales"}
	if includeMetadata {
		tables = append(tables, "sync_metadata")
	}
	for _, table := range tables {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// ClearAll empties every entity collection in one transaction.
func (s *Store) ClearAll(includeMetadata bool) error {
	err := s.conn.Transaction(func(tx *gorm.DB) error {
		return clearEntities(tx, includeMetadata)
	})
	if err != nil {
		return storageErr("clear replica", err)
	}
	s.log.Info().Bool("metadata", includeMetadata).Msg("replica cleared")
	return nil
}

// SetMetadata upserts a single key/value metadata record.
func (s *Store) SetMetadata(key, value string) error {
	meta := models.SyncMetadata{Key: key, Value: value, Timestamp: time.Now()}
	err := s.conn.Clauses(clause.OnConflict{UpdateAll: true}).Create(&meta).Error
	return storageErr("set metadata", err)
}

// GetMetadata reads one metadata value; ok is false when the key is absent.
func (s *Store) GetMetadata(key string) (value string, ok bool, err error) {
	var meta models.SyncMetadata
	dbErr := s.conn.First(&meta, "key = ?", key).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if dbErr != nil {
		return "", false, storageErr("get metadata", dbErr)
	}
	return meta.Value, true, nil
}
