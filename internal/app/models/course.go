package models

import "time"

// Course defines the course model based on the 'courses' table
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	Sections    []Section `json:"sections,omitempty"`
	// EnrolledUserIDs is populated on the course detail path only.
	EnrolledUserIDs []int64 `json:"enrolledUserIds,omitempty"`
}

// Section is an ordered group of lessons within a course. Order integers are
// maintained by explicit reorder calls; no gap filling.
type Section struct {
	ID         int64    `json:"id" db:"id"`
	CourseID   int64    `json:"courseId" db:"course_id"`
	Title      string   `json:"title" db:"title"`
	OrderIndex int      `json:"orderIndex" db:"order_index"`
	Lessons    []Lesson `json:"lessons,omitempty"`
}

// Lesson is a single ordered unit of content within a section
type Lesson struct {
	ID         int64  `json:"id" db:"id"`
	SectionID  int64  `json:"sectionId" db:"section_id"`
	Title      string `json:"title" db:"title"`
	Content    string `json:"content,omitempty" db:"content"`
	OrderIndex int    `json:"orderIndex" db:"order_index"`
}

// Enrollment links a user to a course
type Enrollment struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
