package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/services"
	"github.com/kim0040/codingmaker-web-sub000/internal/middleware"
)

// FriendController handles friendship operations
type FriendController struct {
	friendService services.FriendService
	logger        zerolog.Logger
}

// NewFriendController creates a new FriendController
func NewFriendController(friendService services.FriendService, logger zerolog.Logger) *FriendController {
	return &FriendController{friendService: friendService, logger: logger}
}

// Request sends a friend request to another user
// @Summary Send a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FriendRequestRequest true "Target user"
// @Success 201 {object} dto.APIResponse
// @Router /friends/request [post]
func (c *FriendController) Request(ctx *gin.Context) {
	var req dto.FriendRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	friendship, err := c.friendService.RequestFriendship(ctx, middleware.CurrentUserID(ctx), req.FriendID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(friendship))
}

// Accept accepts a pending friend request addressed to the caller
// @Summary Accept a friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param friendshipId path int true "Friendship ID"
// @Success 200 {object} dto.APIResponse
// @Router /friends/{friendshipId}/accept [put]
func (c *FriendController) Accept(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "friendshipId")
	if !ok {
		return
	}
	friendship, err := c.friendService.AcceptFriendship(ctx, id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(friendship))
}

// List returns the caller's friendships, pending and accepted
// @Summary List friendships
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /friends [get]
func (c *FriendController) List(ctx *gin.Context) {
	friendships, err := c.friendService.ListFriendships(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(friendships))
}

// Delete removes a friendship the caller is part of
// @Summary Delete a friendship
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param friendshipId path int true "Friendship ID"
// @Success 200 {object} dto.APIResponse
// @Router /friends/{friendshipId} [delete]
func (c *FriendController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "friendshipId")
	if !ok {
		return
	}
	if err := c.friendService.DeleteFriendship(ctx, id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("친구 관계가 삭제되었습니다."))
}
