package models

import (
	"encoding/json"

	"github.com/shopfront/backend/internal/domain/customer"
)

// CustomerModel is the persistence model for the Customer domain entity.
// Email addresses are kept as a JSON array; the canonical phone carries the
// dedup unique index.
type CustomerModel struct {
	BaseModel
	Code            string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name            string `gorm:"type:varchar(200);not null"`
	Emails          string `gorm:"type:jsonb;not null;default:'[]'"`
	Phone           string `gorm:"type:varchar(50);not null;uniqueIndex"`
	AddressLine1    string `gorm:"type:varchar(200)"`
	AddressLine2    string `gorm:"type:varchar(200)"`
	City            string `gorm:"type:varchar(100)"`
	State           string `gorm:"type:varchar(100)"`
	PostalCode      string `gorm:"type:varchar(20)"`
	Country         string `gorm:"type:varchar(100)"`
	Notes           string `gorm:"type:text"`
	NewsletterOptIn bool   `gorm:"not null;default:false;index"`
	Archived        bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *customer.Customer {
	var emails []string
	if m.Emails != "" {
		// a malformed column value degrades to no emails rather than failing
		_ = json.Unmarshal([]byte(m.Emails), &emails)
	}
	if emails == nil {
		emails = make([]string, 0)
	}

	return &customer.Customer{
		BaseEntity:      m.BaseModel.ToDomain(),
		Code:            m.Code,
		Name:            m.Name,
		Emails:          emails,
		Phone:           m.Phone,
		AddressLine1:    m.AddressLine1,
		AddressLine2:    m.AddressLine2,
		City:            m.City,
		State:           m.State,
		PostalCode:      m.PostalCode,
		Country:         m.Country,
		Notes:           m.Notes,
		NewsletterOptIn: m.NewsletterOptIn,
		Archived:        m.Archived,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *customer.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Code = c.Code
	m.Name = c.Name
	emails, _ := json.Marshal(c.Emails)
	m.Emails = string(emails)
	m.Phone = c.Phone
	m.AddressLine1 = c.AddressLine1
	m.AddressLine2 = c.AddressLine2
	m.City = c.City
	m.State = c.State
	m.PostalCode = c.PostalCode
	m.Country = c.Country
	m.Notes = c.Notes
	m.NewsletterOptIn = c.NewsletterOptIn
	m.Archived = c.Archived
}
