package models

import "time"

// RoomType enumerates chat room kinds. Messages in dm rooms are encrypted
// at rest.
type RoomType string

const (
	RoomDM    RoomType = "dm"
	RoomGroup RoomType = "group"
)

// ChatRoom defines the chat room model based on the 'chat_rooms' table
type ChatRoom struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	RoomType  RoomType  `json:"roomType" db:"room_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Members   []User    `json:"members,omitempty"`
}

// Message defines a chat message. IsEncrypted flags whether Content holds an
// AES-encrypted payload; IsRead is a single boolean, not per-member.
type Message struct {
	ID          int64     `json:"id" db:"id"`
	RoomID      int64     `json:"roomId" db:"room_id"`
	SenderID    int64     `json:"senderId" db:"sender_id"`
	Content     string    `json:"content" db:"content"`
	IsEncrypted bool      `json:"isEncrypted" db:"is_encrypted"`
	IsRead      bool      `json:"isRead" db:"is_read"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	SenderName  string    `json:"senderName,omitempty"`
}
