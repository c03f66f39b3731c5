package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/dberrors"
)

// FriendshipRepository handles database operations for friendships
type FriendshipRepository struct {
	db *pgxpool.Pool
}

// NewFriendshipRepository creates a new FriendshipRepository
func NewFriendshipRepository(db *pgxpool.Pool) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

// FindBetween retrieves the friendship row for an unordered user pair
func (r *FriendshipRepository) FindBetween(ctx context.Context, userID, friendID int64) (*models.Friendship, error) {
	query := `
		SELECT id, user_id, friend_id, status, created_at
		FROM friendships
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
	`
	var f models.Friendship
	err := r.db.QueryRow(ctx, query, userID, friendID).Scan(
		&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFriendshipNotFound
		}
		return nil, fmt.Errorf("error retrieving friendship: %w", err)
	}
	return &f, nil
}

// Create inserts a pending friendship request. The unordered-pair unique
// index is the backstop against duplicate edges.
func (r *FriendshipRepository) Create(ctx context.Context, f *models.Friendship) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO friendships (user_id, friend_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, f.UserID, f.FriendID, f.Status).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrFriendshipExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating friendship: %w", err)
	}
	return nil
}

// GetByID retrieves a friendship by id
func (r *FriendshipRepository) GetByID(ctx context.Context, id int64) (*models.Friendship, error) {
	var f models.Friendship
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, friend_id, status, created_at FROM friendships WHERE id = $1`, id,
	).Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFriendshipNotFound
		}
		return nil, fmt.Errorf("error retrieving friendship: %w", err)
	}
	return &f, nil
}

// Accept flips a pending friendship to accepted
func (r *FriendshipRepository) Accept(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE friendships SET status = $2 WHERE id = $1`, id, models.FriendshipAccepted)
	if err != nil {
		return fmt.Errorf("error accepting friendship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFriendshipNotFound
	}
	return nil
}

// ListForUser retrieves friendships where the user is on either side; the
// friend's (encrypted) name rides along for the service to decrypt.
func (r *FriendshipRepository) ListForUser(ctx context.Context, userID int64) ([]models.Friendship, error) {
	query := `
		SELECT f.id, f.user_id, f.friend_id, f.status, f.created_at, u.name
		FROM friendships f
		JOIN users u ON u.id = CASE WHEN f.user_id = $1 THEN f.friend_id ELSE f.user_id END
		WHERE f.user_id = $1 OR f.friend_id = $1
		ORDER BY f.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing friendships: %w", err)
	}
	defer rows.Close()

	var friendships []models.Friendship
	for rows.Next() {
		var f models.Friendship
		if err := rows.Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt, &f.FriendName); err != nil {
			return nil, fmt.Errorf("error scanning friendship row: %w", err)
		}
		friendships = append(friendships, f)
	}
	return friendships, rows.Err()
}

// Delete removes a friendship
func (r *FriendshipRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM friendships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting friendship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFriendshipNotFound
	}
	return nil
}
