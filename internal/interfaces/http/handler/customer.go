package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	customerapp "github.com/shopfront/backend/internal/application/customer"
	"github.com/shopfront/backend/internal/infrastructure/csvimport"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
)

// maxImportSize caps uploaded CSV files at 10 MiB
const maxImportSize = 10 << 20

// CustomerHandler handles back-office customer endpoints, including CSV
// import and export
type CustomerHandler struct {
	BaseHandler
	customerService *customerapp.CustomerService
	importService   *customerapp.ImportService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *customerapp.CustomerService, importService *customerapp.ImportService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, importService: importService}
}

// Create handles POST /admin/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customerService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /admin/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	resp, err := h.customerService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// customerListRequest adds customer filters to the common list params
type customerListRequest struct {
	dto.ListRequest
	Archived        *bool  `form:"archived"`
	NewsletterOptIn *bool  `form:"newsletter_opt_in"`
	City            string `form:"city"`
	State           string `form:"state"`
}

// List handles GET /admin/customers
func (h *CustomerHandler) List(c *gin.Context) {
	var req customerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	filter.Filters = map[string]interface{}{}
	if req.Archived != nil {
		filter.Filters["archived"] = *req.Archived
	}
	if req.NewsletterOptIn != nil {
		filter.Filters["newsletter_opt_in"] = *req.NewsletterOptIn
	}
	if req.City != "" {
		filter.Filters["city"] = req.City
	}
	if req.State != "" {
		filter.Filters["state"] = req.State
	}

	page, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// Update handles PUT /admin/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req customerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customerService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /admin/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// BulkDelete handles POST /admin/customers/bulk-delete
func (h *CustomerHandler) BulkDelete(c *gin.Context) {
	var req customerapp.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deleted, err := h.customerService.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": deleted})
}

// Import handles POST /admin/customers/import (multipart field "file")
func (h *CustomerHandler) Import(c *gin.Context) {
	h.runImport(c, h.importService.ImportCustomers)
}

// ImportOrders handles POST /admin/orders/import (multipart field "file")
func (h *CustomerHandler) ImportOrders(c *gin.Context) {
	h.runImport(c, h.importService.ImportOrders)
}

func (h *CustomerHandler) runImport(c *gin.Context, run func(context.Context, io.Reader) (*customerapp.ImportResult, error)) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A CSV file is required in the 'file' field")
		return
	}
	defer file.Close()

	result, err := run(c.Request.Context(), http.MaxBytesReader(c.Writer, file, maxImportSize))
	if err != nil {
		h.handleImportError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *CustomerHandler) handleImportError(c *gin.Context, err error) {
	var missing *csvimport.MissingHeadersError
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			csvimport.ErrCodeMissingHeader, missing.Error(),
			gin.H{"missing_headers": missing.Missing}))
	case errors.Is(err, csvimport.ErrEmptyFile):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(csvimport.ErrCodeEmptyFile, err.Error()))
	case errors.Is(err, csvimport.ErrInvalidEncoding):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(csvimport.ErrCodeInvalidEncoding, err.Error()))
	case errors.Is(err, csvimport.ErrMissingHeader):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(csvimport.ErrCodeMissingHeader, err.Error()))
	default:
		h.HandleError(c, err)
	}
}

// Export handles GET /admin/customers/export, streaming CSV
func (h *CustomerHandler) Export(c *gin.Context) {
	var req customerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="customers.csv"`)
	if err := h.importService.ExportCustomers(c.Request.Context(), c.Writer, req.ToFilter()); err != nil {
		// headers are already out; all we can do is log via gin's error list
		_ = c.Error(err)
	}
}

// RegisterRoutes wires the customer endpoints into the admin group
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/export", h.Export)
		customers.POST("/import", h.Import)
		customers.POST("/bulk-delete", h.BulkDelete)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
	}
	rg.POST("/orders/import", h.ImportOrders)
}
