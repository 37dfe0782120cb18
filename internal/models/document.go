package models

import (
	"fmt"
	"time"
)

// Receivable document types as coded by the remote ERP.
const (
	TypeInvoice         = "FACT"
	TypeDebitNote       = "N/DB"
	TypeCreditNote      = "N/CR"
	TypeAdvance         = "ADEL"
	TypeManualAdjustPos = "AJPM"
	TypeManualAdjustNeg = "AJNM"
	TypeAutoAdjustPos   = "AJPA"
	TypeAutoAdjustNeg   = "AJNA"
	TypeCheck           = "CHEQ"
	TypeDraft           = "GIRO"
	TypePayment         = "COB"
	TypeReturn          = "DEV"
)

// TypeMeta carries the fixed presentation metadata per document type. Only
// the view layer consumes it; the engines never branch on it.
type TypeMeta struct {
	Name   string `json:"name"`
	Letter string `json:"letter"`
	Color  string `json:"color"`
}

var typeMetas = map[string]TypeMeta{
	TypeInvoice:         {Name: "Factura", Letter: "F", Color: "#3B82F6"},
	TypeDebitNote:       {Name: "Nota de Débito", Letter: "D", Color: "#F59E0B"},
	TypeCreditNote:      {Name: "Nota de Crédito", Letter: "C", Color: "#10B981"},
	TypeAdvance:         {Name: "Adelanto", Letter: "A", Color: "#8B5CF6"},
	TypeManualAdjustPos: {Name: "Ajuste Positivo Manual", Letter: "J", Color: "#F97316"},
	TypeManualAdjustNeg: {Name: "Ajuste Negativo Manual", Letter: "J", Color: "#14B8A6"},
	TypeAutoAdjustPos:   {Name: "Ajuste Positivo Automático", Letter: "J", Color: "#F97316"},
	TypeAutoAdjustNeg:   {Name: "Ajuste Negativo Automático", Letter: "J", Color: "#14B8A6"},
	TypeCheck:           {Name: "Cheque", Letter: "Q", Color: "#6B7280"},
	TypeDraft:           {Name: "Giro", Letter: "G", Color: "#6B7280"},
	TypePayment:         {Name: "Cobro", Letter: "P", Color: "#22C55E"},
	TypeReturn:          {Name: "Devolución", Letter: "V", Color: "#EF4444"},
}

// MetaForType returns presentation metadata for a document type code. Unknown
// codes get a neutral placeholder built from the raw code.
func MetaForType(code string) TypeMeta {
	if m, ok := typeMetas[code]; ok {
		return m
	}
	letter := "?"
	if code != "" {
		letter = code[:1]
	}
	return TypeMeta{Name: code, Letter: letter, Color: "#6B7280"}
}

// Document is the replica copy of a receivable document. The store key is the
// derived type_number form so the composite remote identity collapses into a
// single primary key.
type Document struct {
	ID          string  `gorm:"primaryKey;column:id" json:"id"`
	Type        string  `gorm:"column:tipo_doc;index" json:"tipo_doc"`
	Number      string  `gorm:"column:nro_doc" json:"nro_doc"`
	ClientCode  string  `gorm:"column:co_cli;index" json:"co_cli"`
	SellerCode  string  `gorm:"column:co_ven;index" json:"co_ven"`
	IssueDate   Date    `gorm:"column:fec_emis" json:"fec_emis"`
	DueDate     Date    `gorm:"column:fec_venc;index" json:"fec_venc"`
	NetAmount   float64 `gorm:"column:monto_net" json:"monto_net"`
	GrossAmount float64 `gorm:"column:monto_bru" json:"monto_bru"`
	TaxAmount   float64 `gorm:"column:monto_imp" json:"monto_imp"`
	Balance     float64 `gorm:"column:saldo" json:"saldo"`
	Voided      bool    `gorm:"column:anulado" json:"anulado"`
	Company     int     `gorm:"column:empresa" json:"empresa"`
}

func (Document) TableName() string { return "documents" }

// Key derives the type_number primary key.
func (d Document) Key() string {
	return fmt.Sprintf("%s_%s", d.Type, d.Number)
}

// Settled reports whether nothing remains outstanding on the document.
func (d Document) Settled() bool { return d.Balance == 0 }

// Event is a recent-activity record, a superset/variant of Document kept in
// its own collection so activity listings survive the 90-day document cutoff
// applied at fetch time.
type Event struct {
	ID         string  `gorm:"primaryKey;column:id" json:"id"`
	Type       string  `gorm:"column:tipo_doc" json:"tipo_doc"`
	Number     string  `gorm:"column:nro_doc" json:"nro_doc"`
	ClientCode string  `gorm:"column:co_cli;index" json:"co_cli"`
	SellerCode string  `gorm:"column:co_ven;index" json:"co_ven"`
	IssueDate  Date    `gorm:"column:fec_emis" json:"fec_emis"`
	DueDate    Date    `gorm:"column:fec_venc" json:"fec_venc"`
	NetAmount  float64 `gorm:"column:monto_net" json:"monto_net"`
	Balance    float64 `gorm:"column:saldo" json:"saldo"`
	Voided     bool    `gorm:"column:anulado" json:"anulado"`
	Company    int     `gorm:"column:empresa" json:"empresa"`
}

func (Event) TableName() string { return "events" }

func (e Event) Key() string {
	return fmt.Sprintf("%s_%s", e.Type, e.Number)
}

// DocumentLine belongs to exactly one document via DocID.
type DocumentLine struct {
	ID          string  `gorm:"primaryKey;column:id" json:"id"`
	DocID       string  `gorm:"column:doc_id;index" json:"doc_id"`
	Company     int     `gorm:"column:empresa" json:"empresa"`
	Type        string  `gorm:"column:tipo_doc" json:"tipo_doc"`
	Number      string  `gorm:"column:nro_doc" json:"nro_doc"`
	SellerCode  string  `gorm:"column:co_ven" json:"co_ven"`
	LineNumber  int     `gorm:"column:reng_num" json:"reng_num"`
	ProductCode string  `gorm:"column:co_art" json:"co_art"`
	Description string  `gorm:"column:art_des" json:"art_des"`
	Quantity    float64 `gorm:"column:total_art" json:"total_art"`
	UnitPrice   float64 `gorm:"column:prec_vta" json:"prec_vta"`
	Subtotal    float64 `gorm:"column:total" json:"total"`
	SaleUnit    string  `gorm:"column:uni_venta" json:"uni_venta"`
}

func (DocumentLine) TableName() string { return "document_lines" }

// MonthlySale holds one month of sales for the trend chart; at most one
// record per month id ("01".."12").
type MonthlySale struct {
	ID     string  `gorm:"primaryKey;column:id" json:"id"`
	Month  string  `gorm:"column:mes;index" json:"mes"`
	Amount float64 `gorm:"column:monto" json:"monto"`
}

func (MonthlySale) TableName() string { return "monthly_sales" }

// SyncMetadata is a key/value record with a last-write timestamp.
type SyncMetadata struct {
	Key       string    `gorm:"primaryKey;column:key" json:"key"`
	Value     string    `gorm:"column:value" json:"value"`
	Timestamp time.Time `gorm:"column:timestamp" json:"timestamp"`
}

func (SyncMetadata) TableName() string { return "sync_metadata" }
