package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/db"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/dberrors"
)

// PostRepository handles database operations for posts, comments and likes
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

// List retrieves posts with author names and counts, newest first
func (r *PostRepository) List(ctx context.Context, authorID *int64, offset uint64, limit int) ([]models.Post, int64, error) {
	builder := squirrel.Select(
		"p.id", "p.author_id", "p.title", "p.content", "p.created_at",
		"u.name AS author_name",
		"(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count",
		"(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id) AS like_count",
	).
		From("posts p").
		Join("users u ON p.author_id = u.id").
		OrderBy("p.created_at DESC", "p.id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	countBuilder := squirrel.Select("COUNT(*)").From("posts p").PlaceholderFormat(squirrel.Dollar)

	if authorID != nil {
		builder = builder.Where("p.author_id = ?", *authorID)
		countBuilder = countBuilder.Where("p.author_id = ?", *authorID)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building post count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting posts: %w", err)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building post list query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.CreatedAt,
			&p.AuthorName, &p.CommentCount, &p.LikeCount); err != nil {
			return nil, 0, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}

// GetByID retrieves a post with its comments
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	err := r.db.QueryRow(ctx, `
		SELECT p.id, p.author_id, p.title, p.content, p.created_at, u.name,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
			(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id)
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.CreatedAt,
		&p.AuthorName, &p.CommentCount, &p.LikeCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at, u.name
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.AuthorName); err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		p.Comments = append(p.Comments, c)
	}
	return &p, rows.Err()
}

// Create inserts a new post
func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO posts (author_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, p.AuthorID, p.Title, p.Content).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating post: %w", err)
	}
	return nil
}

// Delete removes a post; comments and likes cascade
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// CreateComment inserts a comment on a post
func (r *PostRepository) CreateComment(ctx context.Context, c *models.Comment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO comments (post_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.PostID, c.AuthorID, c.Content).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPostNotFound
		}
		return fmt.Errorf("error creating comment: %w", err)
	}
	return nil
}

// GetCommentByID retrieves a single comment
func (r *PostRepository) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	var c models.Comment
	err := r.db.QueryRow(ctx,
		`SELECT id, post_id, author_id, content, created_at FROM comments WHERE id = $1`, id,
	).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error retrieving comment: %w", err)
	}
	return &c, nil
}

// DeleteComment removes a comment
func (r *PostRepository) DeleteComment(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

// ToggleLike flips the (post, user) like inside a transaction. The unique
// key on post_likes makes each toggle atomic; under concurrent
// double-submission the last committed transaction determines the final
// state.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID int64) (liked bool, likeCount int64, err error) {
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
		if err != nil {
			return fmt.Errorf("error removing like: %w", err)
		}
		if tag.RowsAffected() == 0 {
			_, err = tx.Exec(ctx,
				`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT (post_id, user_id) DO NOTHING`,
				postID, userID)
			if err != nil {
				if dberrors.IsForeignKeyViolation(err) {
					return apperrors.ErrPostNotFound
				}
				return fmt.Errorf("error inserting like: %w", err)
			}
			liked = true
		}

		return tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID).Scan(&likeCount)
	})
	return liked, likeCount, err
}
