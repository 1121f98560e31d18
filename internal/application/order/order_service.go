package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
)

// OrderService handles order CRUD for the back office
type OrderService struct {
	orderRepo    order.Repository
	shipmentRepo order.ShipmentRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository, shipmentRepo order.ShipmentRepository) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		shipmentRepo: shipmentRepo,
	}
}

// Create creates an order together with its pending shipment
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	number, err := s.orderRepo.GenerateNumber(ctx)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(number, req.CustomerCode, req.CustomerName, req.Email,
		order.PaymentStatus(req.PaymentStatus), toAddress(req.Address))
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if _, err := o.AddItem(item.Title, item.Size, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	if req.Discount != nil {
		if err := o.ApplyDiscount(*req.Discount, req.CouponCode); err != nil {
			return nil, err
		}
	}

	shipment, err := order.NewShipment(o)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithShipment(ctx, o, shipment); err != nil {
		return nil, err
	}

	return ToOrderResponse(o), nil
}

// Get returns one order by ID
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// GetByNumber returns one order by its order number
func (s *OrderService) GetByNumber(ctx context.Context, number string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// List returns a page of orders
func (s *OrderService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, len(orders))
	for i := range orders {
		items[i] = *ToOrderResponse(&orders[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update updates mutable fields of an order. The shipment row mirrors the
// order, so both are written together.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		o.CustomerName = *req.CustomerName
	}
	if req.Email != nil {
		o.Email = *req.Email
	}
	if req.Address != nil {
		o.ShippingAddress = toAddress(*req.Address)
	}
	if req.Items != nil {
		o.Items = o.Items[:0]
		for _, item := range *req.Items {
			if _, err := o.AddItem(item.Title, item.Size, item.Quantity, item.UnitPrice); err != nil {
				return nil, err
			}
		}
		if err := o.ApplyDiscount(o.Discount, o.CouponCode); err != nil {
			return nil, err
		}
	}
	if req.Archived != nil && *req.Archived {
		o.Archive()
	}
	o.Touch()

	shipment, err := s.shipmentRepo.FindByOrderID(ctx, o.ID)
	if err != nil {
		if err != shared.ErrNotFound {
			return nil, err
		}
		if shipment, err = order.NewShipment(o); err != nil {
			return nil, err
		}
	}
	shipment.SyncWith(o)

	if err := s.orderRepo.SaveWithShipment(ctx, o, shipment); err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// Delete removes an order
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.orderRepo.Delete(ctx, id)
}

// BulkDelete removes a set of orders and reports how many went away
func (s *OrderService) BulkDelete(ctx context.Context, req BulkDeleteRequest) (int64, error) {
	return s.orderRepo.BulkDelete(ctx, req.IDs)
}

// GetShipment returns the shipment for an order
func (s *OrderService) GetShipment(ctx context.Context, orderID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToShipmentResponse(shipment), nil
}

// ListShipments returns a page of shipments
func (s *OrderService) ListShipments(ctx context.Context, filter shared.Filter) (*shared.Paginated[ShipmentResponse], error) {
	shipments, err := s.shipmentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.shipmentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ShipmentResponse, len(shipments))
	for i := range shipments {
		items[i] = *ToShipmentResponse(&shipments[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

func toAddress(a AddressRequest) order.Address {
	return order.Address{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
	}
}
