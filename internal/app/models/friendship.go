package models

import "time"

// FriendshipStatus enumerates friendship states
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "PENDING"
	FriendshipAccepted FriendshipStatus = "ACCEPTED"
)

// Friendship defines a friendship edge. The schema enforces at most one row
// per unordered (user, friend) pair.
type Friendship struct {
	ID         int64            `json:"id" db:"id"`
	UserID     int64            `json:"userId" db:"user_id"`
	FriendID   int64            `json:"friendId" db:"friend_id"`
	Status     FriendshipStatus `json:"status" db:"status"`
	CreatedAt  time.Time        `json:"createdAt" db:"created_at"`
	FriendName string           `json:"friendName,omitempty"`
}
