package store

import (
	"github.com/diewo77/cobranzas/internal/models"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Read operations are side-effect free and only see committed state.

func (s *Store) Clients() ([]models.Client, error) {
	var out []models.Client
	err := s.conn.Order("cli_des").Find(&out).Error
	return out, storageErr("list clients", err)
}

func (s *Store) ClientByCode(code string) (*models.Client, error) {
	var c models.Client
	err := s.conn.First(&c, "co_cli = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get client", err)
	}
	return &c, nil
}

func (s *Store) Sellers() ([]models.Seller, error) {
	var out []models.Seller
	err := s.conn.Order("ven_des").Find(&out).Error
	return out, storageErr("list sellers", err)
}

func (s *Store) SellerByCode(code string) (*models.Seller, error) {
	var v models.Seller
	err := s.conn.First(&v, "co_ven = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get seller", err)
	}
	return &v, nil
}

func (s *Store) Documents() ([]models.Document, error) {
	var out []models.Document
	err := s.conn.Order("fec_venc desc").Find(&out).Error
	return out, storageErr("list documents", err)
}

func (s *Store) DocumentByID(id string) (*models.Document, error) {
	var d models.Document
	err := s.conn.First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get document", err)
	}
	return &d, nil
}

func (s *Store) DocumentsByClient(clientCode string) ([]models.Document, error) {
	var out []models.Document
	err := s.conn.Where("co_cli = ?", clientCode).Order("fec_emis desc").Find(&out).Error
	return out, storageErr("list documents by client", err)
}

// DocumentsBySellers accepts a comma-joined seller code list, matching the
// scope string the remote service uses for multi-territory users.
func (s *Store) DocumentsBySellers(sellerCodes string) ([]models.Document, error) {
	codes := splitCodes(sellerCodes)
	if len(codes) == 0 {
		return s.Documents()
	}
	var out []models.Document
	err := s.conn.Where("co_ven IN ?", codes).Order("fec_venc desc").Find(&out).Error
	return out, storageErr("list documents by seller", err)
}

func (s *Store) EventsByClient(clientCode string) ([]models.Event, error) {
	var out []models.Event
	err := s.conn.Where("co_cli = ?", clientCode).Order("fec_emis desc").Find(&out).Error
	return out, storageErr("list events by client", err)
}

func (s *Store) LinesByDocument(docID string) ([]models.DocumentLine, error) {
	var out []models.DocumentLine
	err := s.conn.Where("doc_id = ?", docID).Order("reng_num").Find(&out).Error
	return out, storageErr("list document lines", err)
}

// MonthlySales returns the trend months in calendar order.
func (s *Store) MonthlySales() ([]models.MonthlySale, error) {
	var out []models.MonthlySale
	err := s.conn.Order("id").Find(&out).Error
	return out, storageErr("list monthly sales", err)
}

// Counts reports per-collection record counts for the storage-info surface.
func (s *Store) Counts() (map[string]int64, error) {
	counts := map[string]int64{}
	for table, model := range map[string]interface{}{
		"clients":        &models.Client{},
		"sellers":        &models.Seller{},
		"documents":      &models.Document{},
		"events":         &models.Event{},
		"document_lines": &models.DocumentLine{},
		"monthly_sales":  &models.MonthlySale{},
	} {
		var n int64
		if err := s.conn.Model(model).Count(&n).Error; err != nil {
			return nil, storageErr("count "+table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

func splitCodes(joined string) []string {
	var codes []string
	for _, c := range strings.Split(joined, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}
