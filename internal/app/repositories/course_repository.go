package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/db"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/dberrors"
)

// CourseRepository handles database operations for courses, sections and lessons
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// GetAll retrieves courses, optionally only active ones
func (r *CourseRepository) GetAll(ctx context.Context, activeOnly bool) ([]models.Course, error) {
	query := `SELECT id, title, description, is_active, created_at FROM courses`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetByID retrieves a course with its ordered sections and lessons
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var c models.Course
	err := r.db.QueryRow(ctx,
		`SELECT id, title, description, is_active, created_at FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.Description, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	sectionRows, err := r.db.Query(ctx,
		`SELECT id, course_id, title, order_index FROM course_sections WHERE course_id = $1 ORDER BY order_index, id`, id)
	if err != nil {
		return nil, fmt.Errorf("error listing sections: %w", err)
	}
	defer sectionRows.Close()

	sectionIndex := map[int64]int{}
	for sectionRows.Next() {
		var s models.Section
		if err := sectionRows.Scan(&s.ID, &s.CourseID, &s.Title, &s.OrderIndex); err != nil {
			return nil, fmt.Errorf("error scanning section row: %w", err)
		}
		sectionIndex[s.ID] = len(c.Sections)
		c.Sections = append(c.Sections, s)
	}
	if err := sectionRows.Err(); err != nil {
		return nil, err
	}

	lessonRows, err := r.db.Query(ctx, `
		SELECT l.id, l.section_id, l.title, l.content, l.order_index
		FROM course_lessons l
		JOIN course_sections s ON l.section_id = s.id
		WHERE s.course_id = $1
		ORDER BY l.order_index, l.id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("error listing lessons: %w", err)
	}
	defer lessonRows.Close()

	for lessonRows.Next() {
		var l models.Lesson
		if err := lessonRows.Scan(&l.ID, &l.SectionID, &l.Title, &l.Content, &l.OrderIndex); err != nil {
			return nil, fmt.Errorf("error scanning lesson row: %w", err)
		}
		if idx, ok := sectionIndex[l.SectionID]; ok {
			c.Sections[idx].Lessons = append(c.Sections[idx].Lessons, l)
		}
	}
	return &c, lessonRows.Err()
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (title, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.Title, c.Description, c.IsActive).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// Update applies non-nil fields of the patch to a course
func (r *CourseRepository) Update(ctx context.Context, id int64, title, description *string, isActive *bool) error {
	course, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if title != nil {
		course.Title = *title
	}
	if description != nil {
		course.Description = *description
	}
	if isActive != nil {
		course.IsActive = *isActive
	}

	_, err = r.db.Exec(ctx,
		`UPDATE courses SET title = $2, description = $3, is_active = $4 WHERE id = $1`,
		id, course.Title, course.Description, course.IsActive)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	return nil
}

// Delete removes a course; sections, lessons and enrollments cascade
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// CreateSection appends a section to a course
func (r *CourseRepository) CreateSection(ctx context.Context, s *models.Section) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO course_sections (course_id, title, order_index)
		VALUES ($1, $2, $3)
		RETURNING id
	`, s.CourseID, s.Title, s.OrderIndex).Scan(&s.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating section: %w", err)
	}
	return nil
}

// CreateLesson appends a lesson to a section
func (r *CourseRepository) CreateLesson(ctx context.Context, l *models.Lesson) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO course_lessons (section_id, title, content, order_index)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, l.SectionID, l.Title, l.Content, l.OrderIndex).Scan(&l.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSectionNotFound
		}
		return fmt.Errorf("error creating lesson: %w", err)
	}
	return nil
}

// Reorder applies explicit order integers to sections and lessons of a course
// in one transaction. Order values are written as given; gaps are not filled.
func (r *CourseRepository) Reorder(ctx context.Context, courseID int64, sections, lessons map[int64]int) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for id, order := range sections {
			tag, err := tx.Exec(ctx,
				`UPDATE course_sections SET order_index = $3 WHERE id = $1 AND course_id = $2`,
				id, courseID, order)
			if err != nil {
				return fmt.Errorf("error reordering section %d: %w", id, err)
			}
			if tag.RowsAffected() == 0 {
				return apperrors.ErrSectionNotFound
			}
		}
		for id, order := range lessons {
			tag, err := tx.Exec(ctx, `
				UPDATE course_lessons SET order_index = $3
				WHERE id = $1 AND section_id IN (SELECT id FROM course_sections WHERE course_id = $2)
			`, id, courseID, order)
			if err != nil {
				return fmt.Errorf("error reordering lesson %d: %w", id, err)
			}
			if tag.RowsAffected() == 0 {
				return apperrors.ErrLessonNotFound
			}
		}
		return nil
	})
}

// Enroll adds a user to a course; enrolling twice is a no-op
func (r *CourseRepository) Enroll(ctx context.Context, courseID, userID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO course_enrollments (course_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (course_id, user_id) DO NOTHING
	`, courseID, userID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error enrolling user: %w", err)
	}
	return nil
}

// Unenroll removes a user from a course
func (r *CourseRepository) Unenroll(ctx context.Context, courseID, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM course_enrollments WHERE course_id = $1 AND user_id = $2`, courseID, userID)
	if err != nil {
		return fmt.Errorf("error unenrolling user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// EnrolledUserIDs returns the ids of users enrolled in a course
func (r *CourseRepository) EnrolledUserIDs(ctx context.Context, courseID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM course_enrollments WHERE course_id = $1 ORDER BY created_at`, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
