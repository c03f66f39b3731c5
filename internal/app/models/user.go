package models

import (
	"time"
)

// RoleType is the user's role axis. Roles gate allow-list checks and are
// independent of the numeric tier.
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleTeacher RoleType = "TEACHER"
	RoleStudent RoleType = "STUDENT"
	RoleParent  RoleType = "PARENT"
	RoleAlumni  RoleType = "ALUMNI"
	RoleGuest   RoleType = "GUEST"
)

// ValidRole reports whether s is a known role.
func ValidRole(s string) bool {
	switch RoleType(s) {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent, RoleAlumni, RoleGuest:
		return true
	}
	return false
}

// Tier boundaries. Lower tier means more privileged; registration always
// assigns TierDefault.
const (
	TierMin     = 1
	TierMax     = 5
	TierDefault = 4
)

// User defines the user model based on the 'users' table. Name, phone and
// address are stored AES-encrypted; the tag stays cleartext for kiosk lookup.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	Name      string    `json:"name" db:"name"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	Address   string    `json:"address,omitempty" db:"address"`
	Tag       string    `json:"tag" db:"tag"`
	Tier      int       `json:"tier" db:"tier"`
	Role      RoleType  `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
