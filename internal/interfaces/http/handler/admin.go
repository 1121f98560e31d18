package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	broadcastapp "github.com/shopfront/backend/internal/application/broadcast"
	feedbackapp "github.com/shopfront/backend/internal/application/feedback"
	reportapp "github.com/shopfront/backend/internal/application/report"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
)

// AdminHandler handles the remaining back-office endpoints: broadcast,
// analytics, and the feedback review list.
type AdminHandler struct {
	BaseHandler
	broadcastService *broadcastapp.BroadcastService
	analyticsService *reportapp.AnalyticsService
	feedbackService  *feedbackapp.FeedbackService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	broadcastService *broadcastapp.BroadcastService,
	analyticsService *reportapp.AnalyticsService,
	feedbackService *feedbackapp.FeedbackService,
) *AdminHandler {
	return &AdminHandler{
		broadcastService: broadcastService,
		analyticsService: analyticsService,
		feedbackService:  feedbackService,
	}
}

// Broadcast handles POST /admin/broadcast
func (h *AdminHandler) Broadcast(c *gin.Context) {
	var req broadcastapp.SendBroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.broadcastService.Send(c.Request.Context(), &req)
	if err != nil {
		// a cancelled run still reports what was sent
		if result != nil {
			h.Success(c, result)
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// analyticsRequest carries the summary period
type analyticsRequest struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// AnalyticsSummary handles GET /admin/analytics/summary
func (h *AdminHandler) AnalyticsSummary(c *gin.Context) {
	var req analyticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var from, to time.Time
	var err error
	if req.From != "" {
		if from, err = time.Parse(time.RFC3339, req.From); err != nil {
			if from, err = time.Parse("2006-01-02", req.From); err != nil {
				h.BadRequest(c, "'from' must be RFC3339 or YYYY-MM-DD")
				return
			}
		}
	}
	if req.To != "" {
		if to, err = time.Parse(time.RFC3339, req.To); err != nil {
			if to, err = time.Parse("2006-01-02", req.To); err != nil {
				h.BadRequest(c, "'to' must be RFC3339 or YYYY-MM-DD")
				return
			}
		}
	}

	summary, err := h.analyticsService.Summary(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// feedbackListRequest adds feedback filters to the common list params
type feedbackListRequest struct {
	dto.ListRequest
	CustomerCode     string `form:"customer_code"`
	OverallRating    int    `form:"overall_rating" binding:"omitempty,min=1,max=5"`
	MinOverallRating int    `form:"min_overall_rating" binding:"omitempty,min=1,max=5"`
}

// ListFeedback handles GET /admin/feedback
func (h *AdminHandler) ListFeedback(c *gin.Context) {
	var req feedbackListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	filter.Filters = map[string]interface{}{}
	if req.CustomerCode != "" {
		filter.Filters["customer_code"] = req.CustomerCode
	}
	if req.OverallRating > 0 {
		filter.Filters["overall_rating"] = req.OverallRating
	}
	if req.MinOverallRating > 0 {
		filter.Filters["min_overall_rating"] = req.MinOverallRating
	}

	page, err := h.feedbackService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// RegisterRoutes wires the remaining admin endpoints
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/broadcast", h.Broadcast)
	rg.GET("/analytics/summary", h.AnalyticsSummary)
	rg.GET("/feedback", h.ListFeedback)
}
