package services

import (
	"context"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
)

type fakeCourseStore struct {
	courses  map[int64]*models.Course
	enrolled map[int64][]int64
	nextID   int64
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		courses:  map[int64]*models.Course{},
		enrolled: map[int64][]int64{},
		nextID:   1,
	}
}

func (f *fakeCourseStore) GetAll(_ context.Context, activeOnly bool) ([]models.Course, error) {
	var out []models.Course
	for _, c := range f.courses {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCourseStore) Create(_ context.Context, c *models.Course) error {
	c.ID = f.nextID
	f.nextID++
	copied := *c
	f.courses[c.ID] = &copied
	return nil
}

func (f *fakeCourseStore) Update(_ context.Context, id int64, title, description *string, isActive *bool) error {
	c, ok := f.courses[id]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if title != nil {
		c.Title = *title
	}
	if description != nil {
		c.Description = *description
	}
	if isActive != nil {
		c.IsActive = *isActive
	}
	return nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseStore) CreateSection(_ context.Context, _ *models.Section) error { return nil }
func (f *fakeCourseStore) CreateLesson(_ context.Context, _ *models.Lesson) error  { return nil }

func (f *fakeCourseStore) Reorder(_ context.Context, _ int64, _, _ map[int64]int) error {
	return nil
}

func (f *fakeCourseStore) Enroll(_ context.Context, courseID, userID int64) error {
	f.enrolled[courseID] = append(f.enrolled[courseID], userID)
	return nil
}

func (f *fakeCourseStore) Unenroll(_ context.Context, courseID, userID int64) error {
	ids := f.enrolled[courseID]
	for i, id := range ids {
		if id == userID {
			f.enrolled[courseID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

func (f *fakeCourseStore) EnrolledUserIDs(_ context.Context, courseID int64) ([]int64, error) {
	return f.enrolled[courseID], nil
}

func TestGetCourseIncludesEnrolledUserIDs(t *testing.T) {
	store := newFakeCourseStore()
	svc := NewCourseService(store, zerolog.Nop())
	ctx := context.Background()

	course, err := svc.CreateCourse(ctx, &dto.CreateCourseRequest{Title: "파이썬 기초"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, userID := range []int64{4, 9} {
		if err := svc.Enroll(ctx, course.ID, userID); err != nil {
			t.Fatalf("enroll %d: %v", userID, err)
		}
	}

	detail, err := svc.GetCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if want := []int64{4, 9}; !reflect.DeepEqual(detail.EnrolledUserIDs, want) {
		t.Errorf("enrolled ids = %v, want %v", detail.EnrolledUserIDs, want)
	}

	if err := svc.Unenroll(ctx, course.ID, 4); err != nil {
		t.Fatalf("unenroll: %v", err)
	}
	detail, err = svc.GetCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("get after unenroll: %v", err)
	}
	if want := []int64{9}; !reflect.DeepEqual(detail.EnrolledUserIDs, want) {
		t.Errorf("enrolled ids = %v, want %v", detail.EnrolledUserIDs, want)
	}
}

func TestCreateCourseDefaultsToActive(t *testing.T) {
	store := newFakeCourseStore()
	svc := NewCourseService(store, zerolog.Nop())
	ctx := context.Background()

	course, err := svc.CreateCourse(ctx, &dto.CreateCourseRequest{Title: "C 언어"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !course.IsActive {
		t.Error("new course should default to active")
	}

	inactive := false
	course, err = svc.CreateCourse(ctx, &dto.CreateCourseRequest{Title: "휴강", IsActive: &inactive})
	if err != nil {
		t.Fatalf("create inactive: %v", err)
	}
	if course.IsActive {
		t.Error("explicit isActive=false should be honored")
	}
}
