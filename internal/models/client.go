package models

// Client is the replica copy of a remote client record. Overwritten wholesale
// on each sync; never edited locally.
type Client struct {
	Code             string  `gorm:"primaryKey;column:co_cli" json:"co_cli"`
	Name             string  `gorm:"column:cli_des;index" json:"cli_des"`
	TaxID            string  `gorm:"column:rif" json:"rif"`
	TaxID2           string  `gorm:"column:rif2" json:"rif2"`
	Phones           string  `gorm:"column:telefonos" json:"telefonos"`
	Email            string  `gorm:"column:email" json:"email"`
	Address          string  `gorm:"column:direccion" json:"direccion"`
	City             string  `gorm:"column:ciudad" json:"ciudad"`
	Zip              string  `gorm:"column:zip" json:"zip"`
	Country          string  `gorm:"column:co_pais" json:"co_pais"`
	SellerCode       string  `gorm:"column:co_ven;index" json:"co_ven"`
	PaymentTerm      string  `gorm:"column:plaz_pag" json:"plaz_pag"`
	DaysSinceInvoice int     `gorm:"column:dias_ult_fact" json:"dias_ult_fact"`
	AvgDaysBetween   int     `gorm:"column:dias_promedio_emision" json:"dias_promedio_emision"`
	Net              float64 `gorm:"column:neto" json:"neto"`
	Credits          float64 `gorm:"column:creditos" json:"creditos"`
	Overdue          float64 `gorm:"column:vencido" json:"vencido"`
	Total            float64 `gorm:"column:total" json:"total"`
	LastQuarterSales float64 `gorm:"column:ventas_ultimo_trimestre" json:"ventas_ultimo_trimestre"`

	// Contacts are synthesized at sync time from the flat phone/email/address
	// columns; the remote service has no contact entity of its own.
	Contacts Contacts `gorm:"serializer:json" json:"contacts"`
}

func (Client) TableName() string { return "clients" }

type Contacts []Contact

// Contact mirrors the contact card shape the view layer renders.
type Contact struct {
	ID        int      `json:"id"`
	ClientID  string   `json:"client_id"`
	Name      string   `json:"name"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Phones    []Phone  `json:"phones"`
	Emails    []Mail   `json:"emails"`
	Addresses []Postal `json:"addresses"`
}

type Phone struct {
	ID        int    `json:"id"`
	Phone     string `json:"phone"`
	PhoneType string `json:"phone_type"`
}

type Mail struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	MailType string `json:"mail_type"`
}

type Postal struct {
	ID        int    `json:"id"`
	Address   string `json:"address"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	CountryID int    `json:"country_id"`
}

// Seller is the replica copy of a remote sales representative.
type Seller struct {
	Code   string `gorm:"primaryKey;column:co_ven" json:"co_ven"`
	Name   string `gorm:"column:ven_des" json:"ven_des"`
	Cedula string `gorm:"column:cedula" json:"cedula"`
	Phones string `gorm:"column:telefonos" json:"telefonos"`
	Email  string `gorm:"column:email" json:"email"`
}

func (Seller) TableName() string { return "sellers" }
