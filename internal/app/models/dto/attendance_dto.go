package dto

import (
	"time"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
)

// CheckInRequest is the kiosk check-in payload; the tag is the user's
// cleartext short code.
type CheckInRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// CheckInResponse reports whether the check-in registered an arrival or a
// departure.
type CheckInResponse struct {
	Type     models.CheckInType `json:"type"`
	UserID   int64              `json:"userId"`
	UserName string             `json:"userName"`
	Time     time.Time          `json:"time"`
	Note     string             `json:"note,omitempty"`
}

// AttendanceListResponse is a month of attendance records for one user
type AttendanceListResponse struct {
	UserID   int64               `json:"userId"`
	UserName string              `json:"userName"`
	Month    string              `json:"month"`
	Records  []models.Attendance `json:"records"`
}
