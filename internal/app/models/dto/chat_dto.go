package dto

import "github.com/kim0040/codingmaker-web-sub000/internal/app/models"

// CreateRoomRequest creates a chat room. DM rooms must name exactly one
// other member.
type CreateRoomRequest struct {
	Name      string  `json:"name"`
	RoomType  string  `json:"roomType" binding:"required,oneof=dm group"`
	MemberIDs []int64 `json:"memberIds" binding:"required,min=1"`
}

// SendMessageRequest posts a message to a room
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// MessageListResponse is a paginated slice of a room's message history
type MessageListResponse struct {
	RoomID         int64            `json:"roomId"`
	Messages       []models.Message `json:"messages"`
	PaginationInfo PaginationInfo   `json:"pagination"`
}
