package customer

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/customer"
	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/csvimport"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCode(ctx context.Context, code string) (*customer.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]customer.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) FindSubscribed(ctx context.Context) ([]customer.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) NextCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithShipment(ctx context.Context, o *order.Order, sh *order.Shipment) error {
	args := m.Called(ctx, o, sh)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GenerateNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func newTestCustomer(t *testing.T, code, name, phone string) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(code, name, phone)
	require.NoError(t, err)
	return c
}

func TestCustomerService_Create(t *testing.T) {
	repo := new(MockCustomerRepository)
	repo.On("ExistsByPhone", mock.Anything, "+919812345678").Return(false, nil)
	repo.On("NextCode", mock.Anything).Return("CUST-12", nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*customer.Customer")).Return(nil)

	service := NewCustomerService(repo)
	resp, err := service.Create(context.Background(), &CreateCustomerRequest{
		Name:            "Arjun Mehta",
		Phone:           "+919812345678",
		Emails:          []string{"Arjun@Example.com"},
		City:            "Pune",
		NewsletterOptIn: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "CUST-12", resp.Code)
	assert.Equal(t, []string{"arjun@example.com"}, resp.Emails)
	assert.True(t, resp.NewsletterOptIn)
	repo.AssertExpectations(t)
}

func TestCustomerService_Create_DuplicatePhone(t *testing.T) {
	repo := new(MockCustomerRepository)
	repo.On("ExistsByPhone", mock.Anything, "+919812345678").Return(true, nil)

	service := NewCustomerService(repo)
	_, err := service.Create(context.Background(), &CreateCustomerRequest{
		Name:  "Arjun Mehta",
		Phone: "+919812345678",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_PHONE", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerService_Update_PhoneCollision(t *testing.T) {
	existing := newTestCustomer(t, "CUST-3", "Arjun Mehta", "+919812345678")
	newPhone := "+919899999999"

	repo := new(MockCustomerRepository)
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("ExistsByPhone", mock.Anything, newPhone).Return(true, nil)

	service := NewCustomerService(repo)
	_, err := service.Update(context.Background(), existing.ID, &UpdateCustomerRequest{Phone: &newPhone})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_PHONE", domainErr.Code)
}

func TestCustomerService_Update_Archive(t *testing.T) {
	existing := newTestCustomer(t, "CUST-3", "Arjun Mehta", "+919812345678")
	archived := true

	repo := new(MockCustomerRepository)
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	service := NewCustomerService(repo)
	resp, err := service.Update(context.Background(), existing.ID, &UpdateCustomerRequest{Archived: &archived})

	require.NoError(t, err)
	assert.True(t, resp.Archived)
	repo.AssertExpectations(t)
}

func TestCustomerService_List(t *testing.T) {
	c1 := newTestCustomer(t, "CUST-1", "Arjun Mehta", "+919812345678")
	c2 := newTestCustomer(t, "CUST-2", "Priya Nair", "+919811111111")

	repo := new(MockCustomerRepository)
	filter := shared.DefaultFilter()
	repo.On("FindAll", mock.Anything, filter).Return([]customer.Customer{*c1, *c2}, nil)
	repo.On("Count", mock.Anything, filter).Return(int64(2), nil)

	service := NewCustomerService(repo)
	page, err := service.List(context.Background(), filter)

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, "CUST-2", page.Items[1].Code)
}

func TestImportService_ImportCustomers(t *testing.T) {
	csv := "Name,Phone,Email,City\n" +
		"Arjun Mehta,+919812345678,arjun@example.com,Pune\n" +
		",+919811111111,,\n" +
		"Priya Nair,,priya@example.com,Kochi\n" +
		"Rohan Das,+919822222222,not-an-email,Delhi\n"

	repo := new(MockCustomerRepository)
	repo.On("ExistsByPhone", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	repo.On("NextCode", mock.Anything).Return("CUST-5", nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*customer.Customer")).Return(nil)

	service := NewImportService(repo, new(MockOrderRepository), zap.NewNop())
	result, err := service.ImportCustomers(context.Background(), strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Errors, 3)
	// header is row 1, data rows start at 2
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, "name", result.Errors[0].Column)
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Equal(t, "phone", result.Errors[1].Column)
	assert.Equal(t, 5, result.Errors[2].Row)
	assert.Equal(t, "email", result.Errors[2].Column)
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestImportService_ImportCustomers_MissingHeaders(t *testing.T) {
	csv := "Name,Email\nArjun Mehta,arjun@example.com\n"

	service := NewImportService(new(MockCustomerRepository), new(MockOrderRepository), zap.NewNop())
	_, err := service.ImportCustomers(context.Background(), strings.NewReader(csv))

	require.Error(t, err)
	var missing *csvimport.MissingHeadersError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"phone"}, missing.Missing)
}

func TestImportService_ImportCustomers_DuplicatePhoneSkipped(t *testing.T) {
	csv := "name,phone\nArjun Mehta,+919812345678\n"

	repo := new(MockCustomerRepository)
	repo.On("ExistsByPhone", mock.Anything, "+919812345678").Return(true, nil)

	service := NewImportService(repo, new(MockOrderRepository), zap.NewNop())
	result, err := service.ImportCustomers(context.Background(), strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestImportService_ImportOrders(t *testing.T) {
	csv := "customer_name,phone,title,quantity,unit_price,size,payment_status\n" +
		"Arjun Mehta,+919812345678,Linen Shirt,2,1499.00,M,prepaid\n" +
		"Priya Nair,+919811111111,Chinos,zero,1999.00,32,unpaid\n"

	customerRepo := new(MockCustomerRepository)
	customerRepo.On("FindByPhone", mock.Anything, "+919812345678").Return(nil, shared.ErrNotFound)
	customerRepo.On("NextCode", mock.Anything).Return("CUST-7", nil)
	customerRepo.On("Save", mock.Anything, mock.AnythingOfType("*customer.Customer")).Return(nil)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GenerateNumber", mock.Anything).Return("ORD-202608-0101", nil)
	orderRepo.On("SaveWithShipment", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.CustomerCode == "CUST-7" && len(o.Items) == 1 && o.Total.Equal(decimalFromString(t, "2998.00"))
	}), mock.AnythingOfType("*order.Shipment")).Return(nil)

	service := NewImportService(customerRepo, orderRepo, zap.NewNop())
	result, err := service.ImportOrders(context.Background(), strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, "quantity", result.Errors[0].Column)
	orderRepo.AssertExpectations(t)
}

func TestImportService_ExportCustomers(t *testing.T) {
	c := newTestCustomer(t, "CUST-1", "Arjun Mehta", "+919812345678")
	require.NoError(t, c.AddEmail("arjun@example.com"))
	c.SetAddress("12 MG Road", "", "Pune", "Maharashtra", "411001", "India")

	repo := new(MockCustomerRepository)
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 0 && f.PageSize == 0
	})).Return([]customer.Customer{*c}, nil)

	service := NewImportService(repo, new(MockOrderRepository), zap.NewNop())
	var buf strings.Builder
	err := service.ExportCustomers(context.Background(), &buf, shared.DefaultFilter())

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "code,name,phone,email"))
	assert.Contains(t, lines[1], "CUST-1")
	assert.Contains(t, lines[1], "arjun@example.com")
	assert.Contains(t, lines[1], "Pune")
}
