package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/services"
	"github.com/kim0040/codingmaker-web-sub000/internal/middleware"
)

// AcademyController handles academy info operations
type AcademyController struct {
	academyService services.AcademyService
	logger         zerolog.Logger
}

// NewAcademyController creates a new AcademyController
func NewAcademyController(academyService services.AcademyService, logger zerolog.Logger) *AcademyController {
	return &AcademyController{academyService: academyService, logger: logger}
}

// GetInfo returns every academy setting. Public endpoint.
// @Summary Get academy settings
// @Tags academy
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /academy/info [get]
func (c *AcademyController) GetInfo(ctx *gin.Context) {
	info, err := c.academyService.GetInfo(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// UpdateInfo upserts a batch of academy settings
// @Summary Update academy settings
// @Tags academy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateAcademyInfoRequest true "Settings to upsert"
// @Success 200 {object} dto.APIResponse
// @Router /academy/info [put]
func (c *AcademyController) UpdateInfo(ctx *gin.Context) {
	var req dto.UpdateAcademyInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	info, err := c.academyService.UpdateInfo(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}
