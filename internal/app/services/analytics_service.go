package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/repositories"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/fieldcrypto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/helpers"
)

// recentSignupDays is the lookback window of the user stats signup series.
const recentSignupDays = 30

// AnalyticsService defines the interface for the read-only stats endpoints
type AnalyticsService interface {
	AttendanceStats(ctx context.Context, month string) (*dto.AttendanceStatsResponse, error)
	CommunityStats(ctx context.Context) (*dto.CommunityStatsResponse, error)
	UserStats(ctx context.Context) (*dto.UserStatsResponse, error)
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type analyticsServiceImpl struct {
	analyticsRepo *repositories.AnalyticsRepository
	cipher        *fieldcrypto.Cipher
	now           func() time.Time
	logger        zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(analyticsRepo *repositories.AnalyticsRepository, cipher *fieldcrypto.Cipher, logger zerolog.Logger) AnalyticsService {
	return &analyticsServiceImpl{
		analyticsRepo: analyticsRepo,
		cipher:        cipher,
		now:           time.Now,
		logger:        logger,
	}
}

// AttendanceStats aggregates a month of attendance into status counts and a
// daily series.
func (s *analyticsServiceImpl) AttendanceStats(ctx context.Context, month string) (*dto.AttendanceStatsResponse, error) {
	monthStart, err := helpers.ParseMonth(month, s.now().Location())
	if err != nil {
		return nil, apperrors.NewValidationError("조회 월 형식이 올바르지 않습니다. (YYYY-MM)")
	}
	start, end := helpers.MonthBounds(monthStart)

	type statusResult struct {
		counts map[string]int64
		err    error
	}
	statusCh := make(chan statusResult, 1)
	go func() {
		counts, err := s.analyticsRepo.AttendanceStatusCounts(ctx, start, end)
		statusCh <- statusResult{counts, err}
	}()

	daily, err := s.analyticsRepo.AttendanceDaily(ctx, start, end)
	if err != nil {
		return nil, err
	}
	status := <-statusCh
	if status.err != nil {
		return nil, status.err
	}

	return &dto.AttendanceStatsResponse{
		Month:        month,
		StatusCounts: status.counts,
		Daily:        daily,
	}, nil
}

// CommunityStats aggregates forum totals with the post count leaders, names
// decrypted.
func (s *analyticsServiceImpl) CommunityStats(ctx context.Context) (*dto.CommunityStatsResponse, error) {
	posts, comments, likes, err := s.analyticsRepo.CommunityTotals(ctx)
	if err != nil {
		return nil, err
	}

	topAuthors, err := s.analyticsRepo.TopAuthors(ctx, 5)
	if err != nil {
		return nil, err
	}
	for i := range topAuthors {
		name, err := s.cipher.Decrypt(topAuthors[i].Name)
		if err != nil {
			return nil, err
		}
		topAuthors[i].Name = name
	}

	return &dto.CommunityStatsResponse{
		TotalPosts:    posts,
		TotalComments: comments,
		TotalLikes:    likes,
		TopAuthors:    topAuthors,
	}, nil
}

// UserStats aggregates the user base by role and tier with a recent signup
// series.
func (s *analyticsServiceImpl) UserStats(ctx context.Context) (*dto.UserStatsResponse, error) {
	byRole, byTier, total, err := s.analyticsRepo.UserDistribution(ctx)
	if err != nil {
		return nil, err
	}

	since := helpers.LocalDay(s.now()).AddDate(0, 0, -recentSignupDays)
	signups, err := s.analyticsRepo.RecentSignups(ctx, since)
	if err != nil {
		return nil, err
	}

	return &dto.UserStatsResponse{
		TotalUsers:    total,
		ByRole:        byRole,
		ByTier:        byTier,
		RecentSignups: signups,
	}, nil
}

// Dashboard returns the admin landing summary for today
func (s *analyticsServiceImpl) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	return s.analyticsRepo.DashboardCounts(ctx, helpers.LocalDay(s.now()))
}
