package models

import "time"

// AttendanceStatus enumerates attendance record states
type AttendanceStatus string

const (
	AttendancePresent  AttendanceStatus = "PRESENT"
	AttendanceAttended AttendanceStatus = "ATTENDED"
	AttendanceLate     AttendanceStatus = "LATE"
	AttendanceAbsent   AttendanceStatus = "ABSENT"
)

// Attendance defines an attendance record. At most one row exists per user
// per calendar day (unique on user_id + day); a same-day second check-in
// stamps the departure time into Note instead of inserting.
type Attendance struct {
	ID     int64            `json:"id" db:"id"`
	UserID int64            `json:"userId" db:"user_id"`
	Status AttendanceStatus `json:"status" db:"status"`
	Date   time.Time        `json:"date" db:"date"`
	Day    time.Time        `json:"-" db:"day"`
	Note   string           `json:"note,omitempty" db:"note"`
}

// CheckInType distinguishes the two outcomes of a kiosk check-in
type CheckInType string

const (
	CheckInArrival   CheckInType = "ARRIVAL"
	CheckInDeparture CheckInType = "DEPARTURE"
)
