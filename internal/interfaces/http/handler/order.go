package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/shopfront/backend/internal/application/order"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
)

// OrderHandler handles back-office order and shipment endpoints
type OrderHandler struct {
	BaseHandler
	orderService  *orderapp.OrderService
	statusService *orderapp.StatusService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService, statusService *orderapp.StatusService) *OrderHandler {
	return &OrderHandler{orderService: orderService, statusService: statusService}
}

// Create handles POST /admin/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /admin/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByNumber handles GET /admin/orders/number/:number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	resp, err := h.orderService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// orderListRequest adds order-specific filters to the common list params
type orderListRequest struct {
	dto.ListRequest
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	CustomerCode  string `form:"customer_code"`
	CouponCode    string `form:"coupon_code"`
	Archived      *bool  `form:"archived"`
}

// List handles GET /admin/orders
func (h *OrderHandler) List(c *gin.Context) {
	var req orderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	filter.Filters = map[string]interface{}{}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.PaymentStatus != "" {
		filter.Filters["payment_status"] = req.PaymentStatus
	}
	if req.CustomerCode != "" {
		filter.Filters["customer_code"] = req.CustomerCode
	}
	if req.CouponCode != "" {
		filter.Filters["coupon_code"] = req.CouponCode
	}
	if req.Archived != nil {
		filter.Filters["archived"] = *req.Archived
	}

	page, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// Update handles PUT /admin/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Transition handles POST /admin/orders/:id/status
func (h *OrderHandler) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.statusService.Transition(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Invoice handles GET /admin/orders/:id/invoice, returning the PDF as an
// attachment
func (h *OrderHandler) Invoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	number, pdf, err := h.statusService.GetInvoicePDF(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", number+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Delete handles DELETE /admin/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// BulkDelete handles POST /admin/orders/bulk-delete
func (h *OrderHandler) BulkDelete(c *gin.Context) {
	var req orderapp.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deleted, err := h.orderService.BulkDelete(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": deleted})
}

// GetShipment handles GET /admin/orders/:id/shipment
func (h *OrderHandler) GetShipment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.orderService.GetShipment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// shipmentListRequest adds shipment filters to the common list params
type shipmentListRequest struct {
	dto.ListRequest
	Status       string `form:"status"`
	Carrier      string `form:"carrier"`
	CustomerCode string `form:"customer_code"`
}

// ListShipments handles GET /admin/shipments
func (h *OrderHandler) ListShipments(c *gin.Context) {
	var req shipmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	filter.Filters = map[string]interface{}{}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.Carrier != "" {
		filter.Filters["carrier"] = req.Carrier
	}
	if req.CustomerCode != "" {
		filter.Filters["customer_code"] = req.CustomerCode
	}

	page, err := h.orderService.ListShipments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// RegisterRoutes wires the order endpoints into the admin group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.POST("/bulk-delete", h.BulkDelete)
		orders.GET("/number/:number", h.GetByNumber)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)
		orders.POST("/:id/status", h.Transition)
		orders.GET("/:id/invoice", h.Invoice)
		orders.GET("/:id/shipment", h.GetShipment)
	}
	rg.GET("/shipments", h.ListShipments)
}
