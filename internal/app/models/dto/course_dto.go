package dto

// CreateCourseRequest creates a course
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateCourseRequest updates a course; nil fields are left untouched
type UpdateCourseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// CreateSectionRequest appends a section to a course
type CreateSectionRequest struct {
	Title      string `json:"title" binding:"required"`
	OrderIndex int    `json:"orderIndex"`
}

// CreateLessonRequest appends a lesson to a section
type CreateLessonRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	OrderIndex int    `json:"orderIndex"`
}

// ReorderEntry assigns an explicit order integer to a section or lesson
type ReorderEntry struct {
	ID         int64 `json:"id" binding:"required"`
	OrderIndex int   `json:"orderIndex"`
}

// ReorderCourseRequest applies explicit order integers to sections and
// lessons of a course. No gap filling is performed.
type ReorderCourseRequest struct {
	Sections []ReorderEntry `json:"sections"`
	Lessons  []ReorderEntry `json:"lessons"`
}
