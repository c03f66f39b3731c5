package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/services"
	"github.com/kim0040/codingmaker-web-sub000/internal/middleware"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/helpers"
)

// CommunityController handles posts, comments and likes
type CommunityController struct {
	communityService services.CommunityService
	logger           zerolog.Logger
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService services.CommunityService, logger zerolog.Logger) *CommunityController {
	return &CommunityController{communityService: communityService, logger: logger}
}

// ListPosts returns posts newest first
// @Summary List posts
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param author query int false "Filter by author"
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse}
// @Router /community/posts [get]
func (c *CommunityController) ListPosts(ctx *gin.Context) {
	var authorID *int64
	if v := ctx.Query("author"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("작성자 필터 값이 올바르지 않습니다."))
			return
		}
		authorID = &parsed
	}

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.communityService.ListPosts(ctx, authorID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetPost returns one post with its comments
// @Summary Get a post
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 200 {object} dto.APIResponse
// @Router /community/posts/{postId} [get]
func (c *CommunityController) GetPost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "postId")
	if !ok {
		return
	}
	post, err := c.communityService.GetPost(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// CreatePost creates a post authored by the caller
// @Summary Create a post
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "Post content"
// @Success 201 {object} dto.APIResponse
// @Router /community/posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	post, err := c.communityService.CreatePost(ctx, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// DeletePost removes a post with its comments and likes
// @Summary Delete a post
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 200 {object} dto.APIResponse
// @Router /community/posts/{postId} [delete]
func (c *CommunityController) DeletePost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "postId")
	if !ok {
		return
	}
	err := c.communityService.DeletePost(ctx, id, middleware.CurrentUserID(ctx), middleware.CurrentTier(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("게시글이 삭제되었습니다."))
}

// CreateComment adds a comment on a post
// @Summary Create a comment
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Param request body dto.CreateCommentRequest true "Comment content"
// @Success 201 {object} dto.APIResponse
// @Router /community/posts/{postId}/comments [post]
func (c *CommunityController) CreateComment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "postId")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	comment, err := c.communityService.CreateComment(ctx, id, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// DeleteComment removes a comment
// @Summary Delete a comment
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Success 200 {object} dto.APIResponse
// @Router /community/comments/{commentId} [delete]
func (c *CommunityController) DeleteComment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "commentId")
	if !ok {
		return
	}
	err := c.communityService.DeleteComment(ctx, id, middleware.CurrentUserID(ctx), middleware.CurrentTier(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("댓글이 삭제되었습니다."))
}

// ToggleLike flips the caller's like on a post
// @Summary Toggle a like
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeToggleResponse}
// @Router /community/posts/{postId}/like [put]
func (c *CommunityController) ToggleLike(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "postId")
	if !ok {
		return
	}
	resp, err := c.communityService.ToggleLike(ctx, id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
