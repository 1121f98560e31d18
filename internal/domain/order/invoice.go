package order

import (
	"encoding/base64"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/shopfront/backend/internal/domain/shared"
)

// invoiceRetention is how long generated invoice PDFs are kept before the
// cleanup job removes them.
const invoiceRetentionMonths = 3

// Invoice holds a generated PDF invoice for an order. The PDF is stored
// base64-encoded and expires three months after generation.
type Invoice struct {
	shared.BaseEntity
	Number    string
	OrderID   uuid.UUID
	PDFBase64 string
	ExpiresAt time.Time
}

// NewInvoice creates an invoice record from freshly rendered PDF bytes
func NewInvoice(orderID uuid.UUID, number string, pdf []byte, now time.Time) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(pdf) == 0 {
		return nil, shared.NewDomainError("INVALID_INVOICE_PDF", "Invoice PDF cannot be empty")
	}
	return &Invoice{
		BaseEntity: shared.NewBaseEntity(),
		Number:     number,
		OrderID:    orderID,
		PDFBase64:  base64.StdEncoding.EncodeToString(pdf),
		ExpiresAt:  now.AddDate(0, invoiceRetentionMonths, 0),
	}, nil
}

// PDF decodes the stored base64 PDF content
func (i *Invoice) PDF() ([]byte, error) {
	return base64.StdEncoding.DecodeString(i.PDFBase64)
}

// Expired reports whether the invoice is past its retention window
func (i *Invoice) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// GenerateInvoiceNumber produces an invoice number of the form
// INV-<yearmonth>-<4-digit-random>. The number is not guaranteed unique;
// the database unique index surfaces collisions as a conflict.
func GenerateInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%s-%04d", now.Format("200601"), rand.IntN(10000))
}
