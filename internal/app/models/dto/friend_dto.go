package dto

// FriendRequestRequest asks for a friendship with another user
type FriendRequestRequest struct {
	FriendID int64 `json:"friendId" binding:"required"`
}
