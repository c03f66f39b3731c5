package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/dberrors"
)

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// GetForDay retrieves the attendance row of a user for one calendar day
func (r *AttendanceRepository) GetForDay(ctx context.Context, userID int64, day time.Time) (*models.Attendance, error) {
	query := `
		SELECT id, user_id, status, date, day, note
		FROM attendances
		WHERE user_id = $1 AND day = $2
	`
	var a models.Attendance
	err := r.db.QueryRow(ctx, query, userID, day).Scan(
		&a.ID, &a.UserID, &a.Status, &a.Date, &a.Day, &a.Note,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance: %w", err)
	}
	return &a, nil
}

// InsertArrival inserts the first attendance row of the day. The unique
// (user_id, day) key makes concurrent duplicate inserts fail with
// ErrDuplicateArrival, so the first writer wins.
func (r *AttendanceRepository) InsertArrival(ctx context.Context, a *models.Attendance) error {
	query := `
		INSERT INTO attendances (user_id, status, date, day, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, a.UserID, a.Status, a.Date, a.Day, a.Note).Scan(&a.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "attendances_user_day_key") {
			return apperrors.ErrDuplicateArrival
		}
		return fmt.Errorf("error inserting attendance: %w", err)
	}
	return nil
}

// UpdateNote replaces the note of an attendance row, leaving status untouched
func (r *AttendanceRepository) UpdateNote(ctx context.Context, id int64, note string) error {
	tag, err := r.db.Exec(ctx, `UPDATE attendances SET note = $2 WHERE id = $1`, id, note)
	if err != nil {
		return fmt.Errorf("error updating attendance note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// ListByUserAndRange retrieves a user's attendance rows within [start, end)
func (r *AttendanceRepository) ListByUserAndRange(ctx context.Context, userID int64, start, end time.Time) ([]models.Attendance, error) {
	query := `
		SELECT id, user_id, status, date, day, note
		FROM attendances
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date ASC
	`
	rows, err := r.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance: %w", err)
	}
	defer rows.Close()

	var records []models.Attendance
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(&a.ID, &a.UserID, &a.Status, &a.Date, &a.Day, &a.Note); err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
