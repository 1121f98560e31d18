package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopfront/backend/internal/domain/customer"
	"github.com/shopfront/backend/internal/domain/shared"
)

// CustomerService provides back-office customer management
type CustomerService struct {
	customerRepo customer.Repository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo customer.Repository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create registers a customer from the back office. The phone number must not
// collide with an existing customer.
func (s *CustomerService) Create(ctx context.Context, req *CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByPhone(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_PHONE", "A customer with this phone number already exists")
	}

	code, err := s.customerRepo.NextCode(ctx)
	if err != nil {
		return nil, err
	}

	c, err := customer.NewCustomer(code, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	for _, email := range req.Emails {
		if err := c.AddEmail(email); err != nil {
			return nil, err
		}
	}
	c.SetAddress(req.AddressLine1, req.AddressLine2, req.City, req.State, req.PostalCode, req.Country)
	c.Notes = req.Notes
	if req.NewsletterOptIn {
		c.SubscribeNewsletter()
	}

	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

// Get returns a customer by ID
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

// GetByCode returns a customer by its sequential code
func (s *CustomerService) GetByCode(ctx context.Context, code string) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

// List returns customers matching the filter, paginated
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*CustomerResponse], error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update applies a partial update to a customer
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *UpdateCustomerRequest) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
		}
		c.Name = *req.Name
	}
	if req.Phone != nil && *req.Phone != c.Phone {
		exists, err := s.customerRepo.ExistsByPhone(ctx, *req.Phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_PHONE", "A customer with this phone number already exists")
		}
		c.Phone = *req.Phone
	}
	if req.Emails != nil {
		c.Emails = c.Emails[:0]
		for _, email := range *req.Emails {
			if err := c.AddEmail(email); err != nil {
				return nil, err
			}
		}
	}
	if req.AddressLine1 != nil {
		c.AddressLine1 = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		c.AddressLine2 = *req.AddressLine2
	}
	if req.City != nil {
		c.City = *req.City
	}
	if req.State != nil {
		c.State = *req.State
	}
	if req.PostalCode != nil {
		c.PostalCode = *req.PostalCode
	}
	if req.Country != nil {
		c.Country = *req.Country
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.NewsletterOptIn != nil {
		c.NewsletterOptIn = *req.NewsletterOptIn
	}
	if req.Archived != nil {
		c.Archived = *req.Archived
	}
	c.Touch()

	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.customerRepo.Delete(ctx, id)
}

// BulkDelete removes a set of customers and reports how many were deleted
func (s *CustomerService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.customerRepo.BulkDelete(ctx, ids)
}
