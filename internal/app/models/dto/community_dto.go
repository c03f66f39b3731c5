package dto

import "github.com/kim0040/codingmaker-web-sub000/internal/app/models"

// CreatePostRequest creates a forum post
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreateCommentRequest creates a comment on a post
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostListResponse is a paginated list of posts
type PostListResponse struct {
	Posts          []models.Post  `json:"posts"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// LikeToggleResponse reports the result of toggling a like
type LikeToggleResponse struct {
	PostID    int64 `json:"postId"`
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}
