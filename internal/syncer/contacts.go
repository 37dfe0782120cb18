package syncer

import (
	"github.com/diewo77/cobranzas/internal/models"
	"strings"
)

// synthesizeContact derives one contact card per client from its flat
// phone/email/address columns. The remote service has no contact entity, so
// the replica builds the shape the view layer renders. Blank fields produce
// no sub-record.
func synthesizeContact(c models.Client) models.Contact {
	contact := models.Contact{
		ID:       -1,
		ClientID: c.Code,
		Name:     c.Name,
	}
	if strings.TrimSpace(c.Phones) != "" {
		contact.Phones = []models.Phone{{ID: -1, Phone: c.Phones, PhoneType: "work"}}
	}
	if strings.TrimSpace(c.Email) != "" {
		contact.Emails = []models.Mail{{ID: -1, Email: c.Email, MailType: "work"}}
	}
	if strings.TrimSpace(c.Address) != "" {
		contact.Addresses = []models.Postal{{
			ID:        -1,
			Address:   c.Address,
			State:     stateForCity(c.City),
			Zipcode:   c.Zip,
			CountryID: 1,
		}}
	}
	return contact
}
