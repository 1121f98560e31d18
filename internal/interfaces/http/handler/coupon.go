package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	promoapp "github.com/shopfront/backend/internal/application/promo"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
)

// CouponHandler handles back-office coupon endpoints
type CouponHandler struct {
	BaseHandler
	couponService *promoapp.CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(couponService *promoapp.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// Create handles POST /admin/coupons
func (h *CouponHandler) Create(c *gin.Context) {
	var req promoapp.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.couponService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /admin/coupons/:id
func (h *CouponHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID format")
		return
	}

	resp, err := h.couponService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// couponListRequest adds coupon filters to the common list params
type couponListRequest struct {
	dto.ListRequest
	Type         string `form:"type" binding:"omitempty,oneof=global individual"`
	Active       *bool  `form:"active"`
	CustomerCode string `form:"customer_code"`
}

// List handles GET /admin/coupons
func (h *CouponHandler) List(c *gin.Context) {
	var req couponListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	filter.Filters = map[string]interface{}{}
	if req.Type != "" {
		filter.Filters["type"] = req.Type
	}
	if req.Active != nil {
		filter.Filters["active"] = *req.Active
	}
	if req.CustomerCode != "" {
		filter.Filters["customer_code"] = req.CustomerCode
	}

	page, err := h.couponService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// Update handles PUT /admin/coupons/:id
func (h *CouponHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID format")
		return
	}

	var req promoapp.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.couponService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /admin/coupons/:id
func (h *CouponHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID format")
		return
	}

	if err := h.couponService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes wires the coupon endpoints into the admin group
func (h *CouponHandler) RegisterRoutes(rg *gin.RouterGroup) {
	coupons := rg.Group("/coupons")
	{
		coupons.POST("", h.Create)
		coupons.GET("", h.List)
		coupons.GET("/:id", h.Get)
		coupons.PUT("/:id", h.Update)
		coupons.DELETE("/:id", h.Delete)
	}
}
