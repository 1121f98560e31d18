package customer

import (
	"fmt"
	"strings"

	"github.com/shopfront/backend/internal/domain/shared"
)

// Customer represents a storefront customer. The canonical phone number is
// the primary dedup key; a customer may carry several email addresses.
type Customer struct {
	shared.BaseEntity
	Code            string // sequential human-readable code (CUST-<n>)
	Name            string
	Emails          []string
	Phone           string
	AddressLine1    string
	AddressLine2    string
	City            string
	State           string
	PostalCode      string
	Country         string
	Notes           string
	NewsletterOptIn bool
	Archived        bool
}

// NewCustomer creates a new customer
func NewCustomer(code, name, phone string) (*Customer, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Customer code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Customer phone cannot be empty")
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		Phone:      phone,
		Emails:     make([]string, 0),
	}, nil
}

// FormatCode renders the sequential customer code for a numeric sequence
func FormatCode(seq int64) string {
	return fmt.Sprintf("CUST-%d", seq)
}

// AddEmail appends an email address, ignoring duplicates (case-insensitive)
func (c *Customer) AddEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	for _, existing := range c.Emails {
		if existing == email {
			return nil
		}
	}
	c.Emails = append(c.Emails, email)
	c.Touch()
	return nil
}

// PrimaryEmail returns the first known email address, or empty
func (c *Customer) PrimaryEmail() string {
	if len(c.Emails) == 0 {
		return ""
	}
	return c.Emails[0]
}

// SetAddress updates the customer's address fields
func (c *Customer) SetAddress(line1, line2, city, state, postalCode, country string) {
	c.AddressLine1 = line1
	c.AddressLine2 = line2
	c.City = city
	c.State = state
	c.PostalCode = postalCode
	c.Country = country
	c.Touch()
}

// SubscribeNewsletter opts the customer into the newsletter
func (c *Customer) SubscribeNewsletter() {
	c.NewsletterOptIn = true
	c.Touch()
}

// Archive marks the customer as archived
func (c *Customer) Archive() {
	c.Archived = true
	c.Touch()
}
