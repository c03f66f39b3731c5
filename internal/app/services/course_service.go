package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
)

// CourseService defines the interface for course, section and lesson operations
type CourseService interface {
	ListCourses(ctx context.Context, activeOnly bool) ([]models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
	CreateSection(ctx context.Context, courseID int64, req *dto.CreateSectionRequest) (*models.Section, error)
	CreateLesson(ctx context.Context, sectionID int64, req *dto.CreateLessonRequest) (*models.Lesson, error)
	Reorder(ctx context.Context, courseID int64, req *dto.ReorderCourseRequest) (*models.Course, error)
	Enroll(ctx context.Context, courseID, userID int64) error
	Unenroll(ctx context.Context, courseID, userID int64) error
}

// CourseStore is the repository surface the course service needs.
type CourseStore interface {
	GetAll(ctx context.Context, activeOnly bool) ([]models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, c *models.Course) error
	Update(ctx context.Context, id int64, title, description *string, isActive *bool) error
	Delete(ctx context.Context, id int64) error
	CreateSection(ctx context.Context, s *models.Section) error
	CreateLesson(ctx context.Context, l *models.Lesson) error
	Reorder(ctx context.Context, courseID int64, sections, lessons map[int64]int) error
	Enroll(ctx context.Context, courseID, userID int64) error
	Unenroll(ctx context.Context, courseID, userID int64) error
	EnrolledUserIDs(ctx context.Context, courseID int64) ([]int64, error)
}

type courseServiceImpl struct {
	courseRepo CourseStore
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo CourseStore, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo, logger: logger}
}

func (s *courseServiceImpl) ListCourses(ctx context.Context, activeOnly bool) ([]models.Course, error) {
	return s.courseRepo.GetAll(ctx, activeOnly)
}

// GetCourse returns a course with its sections, lessons and the ids of the
// enrolled users.
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	enrolled, err := s.courseRepo.EnrolledUserIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	course.EnrolledUserIDs = enrolled
	return course, nil
}

func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("courseID", course.ID).Str("title", course.Title).Msg("Course created")
	return course, nil
}

func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	if err := s.courseRepo.Update(ctx, id, req.Title, req.Description, req.IsActive); err != nil {
		return nil, err
	}
	return s.courseRepo.GetByID(ctx, id)
}

// DeleteCourse removes a course; sections, lessons and enrollments go with it
// through the schema's cascades.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}

func (s *courseServiceImpl) CreateSection(ctx context.Context, courseID int64, req *dto.CreateSectionRequest) (*models.Section, error) {
	section := &models.Section{
		CourseID:   courseID,
		Title:      req.Title,
		OrderIndex: req.OrderIndex,
	}
	if err := s.courseRepo.CreateSection(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *courseServiceImpl) CreateLesson(ctx context.Context, sectionID int64, req *dto.CreateLessonRequest) (*models.Lesson, error) {
	lesson := &models.Lesson{
		SectionID:  sectionID,
		Title:      req.Title,
		Content:    req.Content,
		OrderIndex: req.OrderIndex,
	}
	if err := s.courseRepo.CreateLesson(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// Reorder applies explicit order integers to a course's sections and lessons
// in one transaction, then returns the reloaded course. Order values are
// stored as given; nothing renumbers or fills gaps.
func (s *courseServiceImpl) Reorder(ctx context.Context, courseID int64, req *dto.ReorderCourseRequest) (*models.Course, error) {
	sections := make(map[int64]int, len(req.Sections))
	for _, entry := range req.Sections {
		sections[entry.ID] = entry.OrderIndex
	}
	lessons := make(map[int64]int, len(req.Lessons))
	for _, entry := range req.Lessons {
		lessons[entry.ID] = entry.OrderIndex
	}

	if err := s.courseRepo.Reorder(ctx, courseID, sections, lessons); err != nil {
		return nil, err
	}
	return s.courseRepo.GetByID(ctx, courseID)
}

func (s *courseServiceImpl) Enroll(ctx context.Context, courseID, userID int64) error {
	return s.courseRepo.Enroll(ctx, courseID, userID)
}

func (s *courseServiceImpl) Unenroll(ctx context.Context, courseID, userID int64) error {
	return s.courseRepo.Unenroll(ctx, courseID, userID)
}
