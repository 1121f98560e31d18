package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopfront/backend/internal/domain/customer"
	"github.com/shopfront/backend/internal/infrastructure/csvimport"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name            string   `json:"name" binding:"required,min=1,max=200"`
	Phone           string   `json:"phone" binding:"required,phone"`
	Emails          []string `json:"emails" binding:"omitempty,dive,email"`
	AddressLine1    string   `json:"address_line1" binding:"max=200"`
	AddressLine2    string   `json:"address_line2" binding:"max=200"`
	City            string   `json:"city" binding:"max=100"`
	State           string   `json:"state" binding:"max=100"`
	PostalCode      string   `json:"postal_code" binding:"max=20"`
	Country         string   `json:"country" binding:"max=100"`
	Notes           string   `json:"notes"`
	NewsletterOptIn bool     `json:"newsletter_opt_in"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name            *string   `json:"name" binding:"omitempty,min=1,max=200"`
	Phone           *string   `json:"phone" binding:"omitempty,phone"`
	Emails          *[]string `json:"emails" binding:"omitempty,dive,email"`
	AddressLine1    *string   `json:"address_line1" binding:"omitempty,max=200"`
	AddressLine2    *string   `json:"address_line2" binding:"omitempty,max=200"`
	City            *string   `json:"city" binding:"omitempty,max=100"`
	State           *string   `json:"state" binding:"omitempty,max=100"`
	PostalCode      *string   `json:"postal_code" binding:"omitempty,max=20"`
	Country         *string   `json:"country" binding:"omitempty,max=100"`
	Notes           *string   `json:"notes"`
	NewsletterOptIn *bool     `json:"newsletter_opt_in"`
	Archived        *bool     `json:"archived"`
}

// BulkDeleteRequest deletes a set of customers
type BulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Emails          []string  `json:"emails"`
	Phone           string    `json:"phone"`
	AddressLine1    string    `json:"address_line1,omitempty"`
	AddressLine2    string    `json:"address_line2,omitempty"`
	City            string    `json:"city,omitempty"`
	State           string    `json:"state,omitempty"`
	PostalCode      string    `json:"postal_code,omitempty"`
	Country         string    `json:"country,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	NewsletterOptIn bool      `json:"newsletter_opt_in"`
	Archived        bool      `json:"archived"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ImportResult summarizes a CSV import run
type ImportResult struct {
	Imported int                  `json:"imported"`
	Skipped  int                  `json:"skipped"`
	Errors   []csvimport.RowError `json:"errors,omitempty"`
}

// ToCustomerResponse converts a domain customer to its response shape
func ToCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:              c.ID,
		Code:            c.Code,
		Name:            c.Name,
		Emails:          c.Emails,
		Phone:           c.Phone,
		AddressLine1:    c.AddressLine1,
		AddressLine2:    c.AddressLine2,
		City:            c.City,
		State:           c.State,
		PostalCode:      c.PostalCode,
		Country:         c.Country,
		Notes:           c.Notes,
		NewsletterOptIn: c.NewsletterOptIn,
		Archived:        c.Archived,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
