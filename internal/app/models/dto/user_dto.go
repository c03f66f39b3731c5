package dto

import "time"

// UserResponse is the decrypted user projection returned by the API
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Tag       string    `json:"tag"`
	Tier      int       `json:"tier"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserListResponse is a paginated list of users
type UserListResponse struct {
	Users          []UserResponse `json:"users"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// CreateUserRequest represents an admin user-creation request; unlike
// registration, tier and role are assignable.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,min=4"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Tag      string `json:"tag" binding:"required,min=4,max=10"`
	Tier     int    `json:"tier" binding:"required,min=1,max=5"`
	Role     string `json:"role" binding:"required"`
}

// UpdateUserRequest represents an admin user update; nil fields are left
// untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Password *string `json:"password"`
	Tier     *int    `json:"tier" binding:"omitempty,min=1,max=5"`
	Role     *string `json:"role"`
}
