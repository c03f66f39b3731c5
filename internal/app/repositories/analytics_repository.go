package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
)

// AnalyticsRepository runs read-only aggregate queries for the reporting
// endpoints. Everything is recomputed from source tables on each call.
type AnalyticsRepository struct {
	db *pgxpool.Pool
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// AttendanceStatusCounts groups a month's attendance rows by status
func (r *AnalyticsRepository) AttendanceStatusCounts(ctx context.Context, start, end time.Time) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*)
		FROM attendances
		WHERE date >= $1 AND date < $2
		GROUP BY status
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("error aggregating attendance status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// AttendanceDaily buckets a month's check-ins by day
func (r *AnalyticsRepository) AttendanceDaily(ctx context.Context, start, end time.Time) ([]dto.DailyCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT day::text, COUNT(*)
		FROM attendances
		WHERE date >= $1 AND date < $2
		GROUP BY day
		ORDER BY day
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("error bucketing attendance by day: %w", err)
	}
	defer rows.Close()

	var daily []dto.DailyCount
	for rows.Next() {
		var d dto.DailyCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, fmt.Errorf("error scanning daily count: %w", err)
		}
		daily = append(daily, d)
	}
	return daily, rows.Err()
}

// CommunityTotals counts posts, comments and likes
func (r *AnalyticsRepository) CommunityTotals(ctx context.Context) (posts, comments, likes int64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM posts),
			(SELECT COUNT(*) FROM comments),
			(SELECT COUNT(*) FROM post_likes)
	`).Scan(&posts, &comments, &likes)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error counting community totals: %w", err)
	}
	return posts, comments, likes, nil
}

// TopAuthors returns the users with the most posts. Names come back
// encrypted; the service decrypts them.
func (r *AnalyticsRepository) TopAuthors(ctx context.Context, limit int) ([]dto.TopAuthor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.name, COUNT(p.id) AS post_count
		FROM posts p
		JOIN users u ON p.author_id = u.id
		GROUP BY u.id, u.name
		ORDER BY post_count DESC, u.id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("error ranking authors: %w", err)
	}
	defer rows.Close()

	var authors []dto.TopAuthor
	for rows.Next() {
		var a dto.TopAuthor
		if err := rows.Scan(&a.UserID, &a.Name, &a.PostCount); err != nil {
			return nil, fmt.Errorf("error scanning author row: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// UserDistribution groups users by role and by tier
func (r *AnalyticsRepository) UserDistribution(ctx context.Context) (byRole, byTier map[string]int64, total int64, err error) {
	byRole = make(map[string]int64)
	byTier = make(map[string]int64)

	rows, err := r.db.Query(ctx, `SELECT role, tier, COUNT(*) FROM users GROUP BY role, tier`)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("error grouping users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var role string
		var tier int
		var count int64
		if err := rows.Scan(&role, &tier, &count); err != nil {
			return nil, nil, 0, fmt.Errorf("error scanning user group row: %w", err)
		}
		byRole[role] += count
		byTier[fmt.Sprintf("%d", tier)] += count
		total += count
	}
	return byRole, byTier, total, rows.Err()
}

// RecentSignups buckets registrations by day over the trailing window
func (r *AnalyticsRepository) RecentSignups(ctx context.Context, since time.Time) ([]dto.DailyCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT date_trunc('day', created_at)::date::text, COUNT(*)
		FROM users
		WHERE created_at >= $1
		GROUP BY 1
		ORDER BY 1
	`, since)
	if err != nil {
		return nil, fmt.Errorf("error bucketing signups: %w", err)
	}
	defer rows.Close()

	var daily []dto.DailyCount
	for rows.Next() {
		var d dto.DailyCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, fmt.Errorf("error scanning signup count: %w", err)
		}
		daily = append(daily, d)
	}
	return daily, rows.Err()
}

// DashboardCounts gathers the admin landing summary in one round trip
func (r *AnalyticsRepository) DashboardCounts(ctx context.Context, today time.Time) (*dto.DashboardResponse, error) {
	var d dto.DashboardResponse
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM attendances WHERE day = $1),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM posts),
			(SELECT COUNT(*) FROM courses WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM chat_messages),
			(SELECT COUNT(*) FROM friendships WHERE status = 'PENDING')
	`, today).Scan(&d.TodayArrivals, &d.TotalUsers, &d.TotalPosts,
		&d.ActiveCourses, &d.TotalMessages, &d.OpenFriendReqs)
	if err != nil {
		return nil, fmt.Errorf("error gathering dashboard counts: %w", err)
	}
	return &d, nil
}
