package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/fieldcrypto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/helpers"
)

// AttendanceStore is the persistence surface the attendance service needs.
// *repositories.AttendanceRepository satisfies it.
type AttendanceStore interface {
	GetForDay(ctx context.Context, userID int64, day time.Time) (*models.Attendance, error)
	InsertArrival(ctx context.Context, a *models.Attendance) error
	UpdateNote(ctx context.Context, id int64, note string) error
	ListByUserAndRange(ctx context.Context, userID int64, start, end time.Time) ([]models.Attendance, error)
}

// TagUserFinder resolves kiosk tags and user ids. *repositories.UserRepository
// satisfies it.
type TagUserFinder interface {
	FindByTag(ctx context.Context, tag string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// AttendanceService defines the interface for attendance operations
type AttendanceService interface {
	CheckIn(ctx context.Context, tag string) (*dto.CheckInResponse, error)
	ListForMonth(ctx context.Context, userID int64, month string) (*dto.AttendanceListResponse, error)
}

type attendanceServiceImpl struct {
	store       AttendanceStore
	users       TagUserFinder
	cipher      *fieldcrypto.Cipher
	broadcaster Broadcaster
	now         func() time.Time
	logger      zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	store AttendanceStore,
	users TagUserFinder,
	cipher *fieldcrypto.Cipher,
	broadcaster Broadcaster,
	logger zerolog.Logger,
) AttendanceService {
	return &attendanceServiceImpl{
		store:       store,
		users:       users,
		cipher:      cipher,
		broadcaster: broadcaster,
		now:         time.Now,
		logger:      logger,
	}
}

// CheckIn performs a kiosk check-in by cleartext tag. The first check-in of
// the local calendar day creates a PRESENT row (arrival); every later
// check-in the same day rewrites the departure stamp in the row's note and
// leaves the status untouched.
func (s *attendanceServiceImpl) CheckIn(ctx context.Context, tag string) (*dto.CheckInResponse, error) {
	user, err := s.users.FindByTag(ctx, tag)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("등록되지 않은 태그입니다.")
		}
		return nil, err
	}

	name, err := s.cipher.Decrypt(user.Name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	day := helpers.LocalDay(now)

	existing, err := s.store.GetForDay(ctx, user.ID, day)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	if existing == nil {
		arrival := &models.Attendance{
			UserID: user.ID,
			Status: models.AttendancePresent,
			Date:   now,
			Day:    day,
		}
		err := s.store.InsertArrival(ctx, arrival)
		if err == nil {
			s.logger.Info().Int64("userID", user.ID).Time("at", now).Msg("Attendance arrival")

			resp := &dto.CheckInResponse{
				Type:     models.CheckInArrival,
				UserID:   user.ID,
				UserName: name,
				Time:     now,
			}
			s.broadcaster.BroadcastToAll("attendance:new-checkin", resp)
			return resp, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicateArrival) {
			return nil, err
		}
		// Lost the first-arrival race; the winner's row exists now, so this
		// call becomes a departure.
		existing, err = s.store.GetForDay(ctx, user.ID, day)
		if err != nil {
			return nil, err
		}
	}

	note := fmt.Sprintf("하원 %s", now.Format("15:04"))
	if err := s.store.UpdateNote(ctx, existing.ID, note); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Time("at", now).Msg("Attendance departure")

	resp := &dto.CheckInResponse{
		Type:     models.CheckInDeparture,
		UserID:   user.ID,
		UserName: name,
		Time:     now,
		Note:     note,
	}
	s.broadcaster.BroadcastToAll("attendance:new-checkin", resp)
	return resp, nil
}

// ListForMonth returns a user's attendance rows for a YYYY-MM month with the
// user's name decrypted.
func (s *attendanceServiceImpl) ListForMonth(ctx context.Context, userID int64, month string) (*dto.AttendanceListResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	name, err := s.cipher.Decrypt(user.Name)
	if err != nil {
		return nil, err
	}

	monthStart, err := helpers.ParseMonth(month, s.now().Location())
	if err != nil {
		return nil, apperrors.NewValidationError("조회 월 형식이 올바르지 않습니다. (YYYY-MM)")
	}
	start, end := helpers.MonthBounds(monthStart)

	records, err := s.store.ListByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	return &dto.AttendanceListResponse{
		UserID:   userID,
		UserName: name,
		Month:    month,
		Records:  records,
	}, nil
}
