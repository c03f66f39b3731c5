package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/services"
	"github.com/kim0040/codingmaker-web-sub000/internal/middleware"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
)

// AnalyticsController handles the read-only stats endpoints
type AnalyticsController struct {
	analyticsService services.AnalyticsService
	logger           zerolog.Logger
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService services.AnalyticsService, logger zerolog.Logger) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService, logger: logger}
}

// AttendanceStats returns a month of attendance aggregates
// @Summary Attendance statistics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceStatsResponse}
// @Router /analytics/attendance [get]
func (c *AnalyticsController) AttendanceStats(ctx *gin.Context) {
	month := ctx.Query("month")
	if month == "" {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("조회 월을 지정해 주세요. (YYYY-MM)"))
		return
	}
	resp, err := c.analyticsService.AttendanceStats(ctx, month)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CommunityStats returns forum aggregates
// @Summary Community statistics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CommunityStatsResponse}
// @Router /analytics/community [get]
func (c *AnalyticsController) CommunityStats(ctx *gin.Context) {
	resp, err := c.analyticsService.CommunityStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UserStats returns user base aggregates
// @Summary User statistics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserStatsResponse}
// @Router /analytics/users [get]
func (c *AnalyticsController) UserStats(ctx *gin.Context) {
	resp, err := c.analyticsService.UserStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Dashboard returns the admin landing summary
// @Summary Dashboard summary
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse}
// @Router /analytics/dashboard [get]
func (c *AnalyticsController) Dashboard(ctx *gin.Context) {
	resp, err := c.analyticsService.Dashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
