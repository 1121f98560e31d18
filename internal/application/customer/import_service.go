package customer

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/customer"
	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/csvimport"
)

// Required headers for the two import formats. Matching is case-insensitive;
// any extra columns are ignored.
var (
	customerRequiredHeaders = []string{"name", "phone"}
	orderRequiredHeaders    = []string{"customer_name", "phone", "title", "quantity", "unit_price"}
)

// ImportService handles bulk CSV import of customers and orders, plus the
// customer CSV export
type ImportService struct {
	customerRepo customer.Repository
	orderRepo    order.Repository
	logger       *zap.Logger
}

// NewImportService creates a new import service
func NewImportService(customerRepo customer.Repository, orderRepo order.Repository, logger *zap.Logger) *ImportService {
	return &ImportService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		logger:       logger,
	}
}

// ImportCustomers parses a customer CSV and creates one customer per valid
// row. Rows that fail validation are reported with their 1-indexed row
// number and create nothing; valid rows are still imported.
func (s *ImportService) ImportCustomers(ctx context.Context, r io.Reader) (*ImportResult, error) {
	parser, err := csvimport.NewParser(r)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if err := parser.RequireHeaders(customerRequiredHeaders...); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for {
		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			var rowErr csvimport.RowError
			if errors.As(err, &rowErr) {
				result.Errors = append(result.Errors, rowErr)
				result.Skipped++
				continue
			}
			return nil, err
		}
		if row.IsEmpty() {
			continue
		}

		if rowErr := s.importCustomerRow(ctx, row); rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			result.Skipped++
			continue
		}
		result.Imported++
	}

	s.logger.Info("customer import finished",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *ImportService) importCustomerRow(ctx context.Context, row *csvimport.Row) *csvimport.RowError {
	name := row.Get("name")
	phone := row.Get("phone")
	if name == "" {
		return rowErrPtr(row.LineNumber, "name", csvimport.ErrCodeRequiredField, "name is required")
	}
	if phone == "" {
		return rowErrPtr(row.LineNumber, "phone", csvimport.ErrCodeRequiredField, "phone is required")
	}

	exists, err := s.customerRepo.ExistsByPhone(ctx, phone)
	if err != nil {
		return rowErrPtr(row.LineNumber, "phone", csvimport.ErrCodeInvalidValue, err.Error())
	}
	if exists {
		return rowErrPtr(row.LineNumber, "phone", csvimport.ErrCodeDuplicateInFile, "a customer with this phone already exists")
	}

	code, err := s.customerRepo.NextCode(ctx)
	if err != nil {
		return rowErrPtr(row.LineNumber, "", csvimport.ErrCodeInvalidValue, err.Error())
	}
	c, err := customer.NewCustomer(code, name, phone)
	if err != nil {
		return rowErrPtr(row.LineNumber, "", csvimport.ErrCodeInvalidValue, err.Error())
	}
	if email := row.Get("email"); email != "" {
		if err := c.AddEmail(email); err != nil {
			return rowErrPtr(row.LineNumber, "email", csvimport.ErrCodeInvalidValue, "invalid email address")
		}
	}
	c.SetAddress(
		row.Get("address_line1"),
		row.Get("address_line2"),
		row.Get("city"),
		row.Get("state"),
		row.Get("postal_code"),
		row.Get("country"),
	)
	c.Notes = row.Get("notes")
	if optIn := strings.ToLower(row.Get("newsletter_opt_in")); optIn == "true" || optIn == "yes" || optIn == "1" {
		c.SubscribeNewsletter()
	}

	if err := s.customerRepo.Save(ctx, c); err != nil {
		return rowErrPtr(row.LineNumber, "", csvimport.ErrCodeInvalidValue, err.Error())
	}
	return nil
}

// ImportOrders parses an order CSV, one single-item order per row. Customers
// are deduplicated by phone the same way checkout does it.
func (s *ImportService) ImportOrders(ctx context.Context, r io.Reader) (*ImportResult, error) {
	parser, err := csvimport.NewParser(r)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if err := parser.RequireHeaders(orderRequiredHeaders...); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for {
		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			var rowErr csvimport.RowError
			if errors.As(err, &rowErr) {
				result.Errors = append(result.Errors, rowErr)
				result.Skipped++
				continue
			}
			return nil, err
		}
		if row.IsEmpty() {
			continue
		}

		if rowErr := s.importOrderRow(ctx, row); rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			result.Skipped++
			continue
		}
		result.Imported++
	}

	s.logger.Info("order import finished",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *ImportService) importOrderRow(ctx context.Context, row *csvimport.Row) *csvimport.RowError {
	for _, h := range orderRequiredHeaders {
		if row.Get(h) == "" {
			return rowErrPtr(row.LineNumber, h, csvimport.ErrCodeRequiredField, h+" is required")
		}
	}

	quantity, err := strconv.Atoi(row.Get("quantity"))
	if err != nil || quantity < 1 {
		return rowErrPtr(row.LineNumber, "quantity", csvimport.ErrCodeInvalidValue, "quantity must be a positive integer")
	}
	unitPrice, err := decimal.NewFromString(row.Get("unit_price"))
	if err != nil || unitPrice.IsNegative() {
		return rowErrPtr(row.LineNumber, "unit_price", csvimport.ErrCodeInvalidValue, "unit_price must be a non-negative amount")
	}

	payment := order.PaymentUnpaid
	if raw := strings.ToLower(row.Get("payment_status")); raw != "" {
		payment = order.PaymentStatus(raw)
		if !payment.IsValid() {
			return rowErrPtr(row.LineNumber, "payment_status", csvimport.ErrCodeInvalidValue, "payment_status must be 'prepaid' or 'unpaid'")
		}
	}

	c, rowErr := s.resolveCustomer(ctx, row)
	if rowErr != nil {
		return rowErr
	}

	number, err := s.orderRepo.GenerateNumber(ctx)
	if err != nil {
		return rowErrPtr(row.LineNumber, "", csvimport.ErrCodeInvalidValue, err.Error())
	}
	addr := order.Address{
		Line1:      row.Get("address_line1"),
		Line2:      row.Get("address_line2"),
		City:       row.Get("city"),
		State:      row.Get("state"),
		PostalCode: row.Get("postal_code"),
		Country:    row.Get("country"),
		Phone:      c.Phone,
	}
	o, err := order.NewOrder(number, c.Code, c.Name, c.PrimaryEmail(), payment, addr)
	if err != nil {
		return rowErrPtr(row.LineNumber, "", csvimport.ErrCodeInvalidValue, err.Error())
	}
	if _, err := o.AddItem(row.Get("title"), row.Get("size"), quantity, unitPrice); err != nil {
		return rowErrPtr(row.LineNumber, "title", csvimport.ErrCodeInvalidValue, err.Error())
	}

	shipment, err := order.NewShipment(o)
	if err != nil {
		return rowErrPtr(row.LineNumber, "", csvimport.ErrCodeInvalidValue, err.Error())
	}
	if err := s.orderRepo.SaveWithShipment(ctx, o, shipment); err != nil {
		return rowErrPtr(row.LineNumber, "", csvimport.ErrCodeInvalidValue, err.Error())
	}
	return nil
}

func (s *ImportService) resolveCustomer(ctx context.Context, row *csvimport.Row) (*customer.Customer, *csvimport.RowError) {
	phone := row.Get("phone")
	c, err := s.customerRepo.FindByPhone(ctx, phone)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, rowErrPtr(row.LineNumber, "phone", csvimport.ErrCodeInvalidValue, err.Error())
	}
	if c == nil {
		code, err := s.customerRepo.NextCode(ctx)
		if err != nil {
			return nil, rowErrPtr(row.LineNumber, "", csvimport.ErrCodeInvalidValue, err.Error())
		}
		c, err = customer.NewCustomer(code, row.Get("customer_name"), phone)
		if err != nil {
			return nil, rowErrPtr(row.LineNumber, "", csvimport.ErrCodeInvalidValue, err.Error())
		}
	}
	if email := row.Get("email"); email != "" {
		if err := c.AddEmail(email); err != nil {
			return nil, rowErrPtr(row.LineNumber, "email", csvimport.ErrCodeInvalidValue, "invalid email address")
		}
	}
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, rowErrPtr(row.LineNumber, "", csvimport.ErrCodeInvalidValue, err.Error())
	}
	return c, nil
}

var exportHeaders = []string{
	"code", "name", "phone", "email",
	"address_line1", "address_line2", "city", "state", "postal_code", "country",
	"notes", "newsletter_opt_in", "created_at",
}

// ExportCustomers streams all customers matching the filter as CSV
func (s *ImportService) ExportCustomers(ctx context.Context, w io.Writer, filter shared.Filter) error {
	// Page 0 disables pagination in the repository layer.
	filter.Page = 0
	filter.PageSize = 0
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders); err != nil {
		return err
	}
	for i := range customers {
		c := &customers[i]
		record := []string{
			c.Code,
			c.Name,
			c.Phone,
			strings.Join(c.Emails, ";"),
			c.AddressLine1,
			c.AddressLine2,
			c.City,
			c.State,
			c.PostalCode,
			c.Country,
			c.Notes,
			strconv.FormatBool(c.NewsletterOptIn),
			c.CreatedAt.Format("2006-01-02"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func rowErrPtr(row int, column, code, message string) *csvimport.RowError {
	e := csvimport.NewRowError(row, column, code, message)
	return &e
}
