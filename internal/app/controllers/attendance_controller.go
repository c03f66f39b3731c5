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

// selfOrModeratorTier gates reading another user's attendance history
const selfOrModeratorTier = 2

// AttendanceController handles kiosk check-in and attendance history
type AttendanceController struct {
	attendanceService services.AttendanceService
	logger            zerolog.Logger
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService, logger zerolog.Logger) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService, logger: logger}
}

// CheckIn registers a kiosk tap. The first tap of a day is an arrival,
// later taps stamp the departure time. The endpoint itself is unauthenticated
// since the kiosk holds no user session; rate limiting guards it instead.
// @Summary Kiosk check-in by tag
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body dto.CheckInRequest true "Tag"
// @Success 200 {object} dto.APIResponse{data=dto.CheckInResponse}
// @Router /attendance/checkin [post]
func (c *AttendanceController) CheckIn(ctx *gin.Context) {
	var req dto.CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.attendanceService.CheckIn(ctx, req.Tag)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ListForUser returns one user's attendance for a month. Callers may read
// their own history; reading someone else's requires tier 2 or better.
// @Summary Monthly attendance history
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceListResponse}
// @Router /attendance/user/{userId} [get]
func (c *AttendanceController) ListForUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}
	if userID != middleware.CurrentUserID(ctx) && middleware.CurrentTier(ctx) > selfOrModeratorTier {
		middleware.HandleAPIError(ctx, apperrors.NewForbiddenError("본인의 출결 기록만 조회할 수 있습니다."))
		return
	}

	month := ctx.Query("month")
	if month == "" {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("조회 월을 지정해 주세요. (YYYY-MM)"))
		return
	}

	resp, err := c.attendanceService.ListForMonth(ctx, userID, month)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
