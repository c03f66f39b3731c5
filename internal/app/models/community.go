package models

import "time"

// Post defines the forum post model based on the 'posts' table
type Post struct {
	ID           int64     `json:"id" db:"id"`
	AuthorID     int64     `json:"authorId" db:"author_id"`
	Title        string    `json:"title" db:"title"`
	Content      string    `json:"content" db:"content"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	AuthorName   string    `json:"authorName,omitempty"`
	CommentCount int64     `json:"commentCount"`
	LikeCount    int64     `json:"likeCount"`
	Comments     []Comment `json:"comments,omitempty"`
}

// Comment defines the comment model. Comments cascade away with their post.
type Comment struct {
	ID         int64     `json:"id" db:"id"`
	PostID     int64     `json:"postId" db:"post_id"`
	AuthorID   int64     `json:"authorId" db:"author_id"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	AuthorName string    `json:"authorName,omitempty"`
}

// PostLike is a join row enforcing one like per (post, user) pair via a
// unique compound key.
type PostLike struct {
	ID     int64 `json:"id" db:"id"`
	PostID int64 `json:"postId" db:"post_id"`
	UserID int64 `json:"userId" db:"user_id"`
}
