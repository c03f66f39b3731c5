package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/services"
	"github.com/kim0040/codingmaker-web-sub000/internal/middleware"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/helpers"
)

// ChatController handles chat room and message operations
type ChatController struct {
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{chatService: chatService, logger: logger}
}

// ListRooms returns the caller's chat rooms
// @Summary List chat rooms
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /chat/rooms [get]
func (c *ChatController) ListRooms(ctx *gin.Context) {
	rooms, err := c.chatService.ListRooms(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rooms))
}

// CreateRoom creates a chat room including the caller
// @Summary Create a chat room
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRoomRequest true "Room information"
// @Success 201 {object} dto.APIResponse
// @Router /chat/rooms [post]
func (c *ChatController) CreateRoom(ctx *gin.Context) {
	var req dto.CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	room, err := c.chatService.CreateRoom(ctx, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(room))
}

// ListMessages returns a page of a room's history, newest first
// @Summary List messages
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param roomId path int true "Room ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageListResponse}
// @Router /chat/rooms/{roomId}/messages [get]
func (c *ChatController) ListMessages(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "roomId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.chatService.ListMessages(ctx, id, middleware.CurrentUserID(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SendMessage posts a message to a room over REST
// @Summary Send a message
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param roomId path int true "Room ID"
// @Param request body dto.SendMessageRequest true "Message content"
// @Success 201 {object} dto.APIResponse
// @Router /chat/rooms/{roomId}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "roomId")
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	message, err := c.chatService.SendMessage(ctx, id, middleware.CurrentUserID(ctx), req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// DeleteMessage removes a message
// @Summary Delete a message
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param messageId path int true "Message ID"
// @Success 200 {object} dto.APIResponse
// @Router /chat/messages/{messageId} [delete]
func (c *ChatController) DeleteMessage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "messageId")
	if !ok {
		return
	}
	err := c.chatService.DeleteMessage(ctx, id, middleware.CurrentUserID(ctx), middleware.CurrentTier(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("메시지가 삭제되었습니다."))
}
