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
)

// ChatRepository handles database operations for chat rooms and messages
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateRoom inserts a room together with its member rows in one transaction
func (r *ChatRepository) CreateRoom(ctx context.Context, room *models.ChatRoom, memberIDs []int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO chat_rooms (name, room_type)
			VALUES ($1, $2)
			RETURNING id, created_at
		`, room.Name, room.RoomType).Scan(&room.ID, &room.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating chat room: %w", err)
		}

		for _, userID := range memberIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO chat_room_members (room_id, user_id)
				VALUES ($1, $2)
				ON CONFLICT (room_id, user_id) DO NOTHING
			`, room.ID, userID); err != nil {
				return fmt.Errorf("error adding room member %d: %w", userID, err)
			}
		}
		return nil
	})
}

// GetRoomByID retrieves a room
func (r *ChatRepository) GetRoomByID(ctx context.Context, id int64) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.db.QueryRow(ctx,
		`SELECT id, name, room_type, created_at FROM chat_rooms WHERE id = $1`, id,
	).Scan(&room.ID, &room.Name, &room.RoomType, &room.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error retrieving chat room: %w", err)
	}
	return &room, nil
}

// ListRoomsForUser retrieves the rooms the user is a member of
func (r *ChatRepository) ListRoomsForUser(ctx context.Context, userID int64) ([]models.ChatRoom, error) {
	rows, err := r.db.Query(ctx, `
		SELECT cr.id, cr.name, cr.room_type, cr.created_at
		FROM chat_rooms cr
		JOIN chat_room_members m ON m.room_id = cr.id
		WHERE m.user_id = $1
		ORDER BY cr.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing chat rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.ChatRoom
	for rows.Next() {
		var room models.ChatRoom
		if err := rows.Scan(&room.ID, &room.Name, &room.RoomType, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning chat room row: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// IsMember reports whether a user belongs to a room
func (r *ChatRepository) IsMember(ctx context.Context, roomID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM chat_room_members WHERE room_id = $1 AND user_id = $2)`,
		roomID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking room membership: %w", err)
	}
	return exists, nil
}

// CreateMessage inserts a chat message
func (r *ChatRepository) CreateMessage(ctx context.Context, m *models.Message) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO chat_messages (room_id, sender_id, content, is_encrypted)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, m.RoomID, m.SenderID, m.Content, m.IsEncrypted).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating chat message: %w", err)
	}
	return nil
}

// GetMessageByID retrieves a single message
func (r *ChatRepository) GetMessageByID(ctx context.Context, id int64) (*models.Message, error) {
	var m models.Message
	err := r.db.QueryRow(ctx, `
		SELECT id, room_id, sender_id, content, is_encrypted, is_read, created_at
		FROM chat_messages WHERE id = $1
	`, id).Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Content, &m.IsEncrypted, &m.IsRead, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("error retrieving chat message: %w", err)
	}
	return &m, nil
}

// ListMessages retrieves a room's messages with sender names, newest first
func (r *ChatRepository) ListMessages(ctx context.Context, roomID int64, offset uint64, limit int) ([]models.Message, int64, error) {
	builder := squirrel.Select(
		"m.id", "m.room_id", "m.sender_id", "m.content", "m.is_encrypted",
		"m.is_read", "m.created_at", "u.name",
	).
		From("chat_messages m").
		Join("users u ON m.sender_id = u.id").
		Where("m.room_id = ?", roomID).
		OrderBy("m.created_at DESC", "m.id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM chat_messages WHERE room_id = $1`, roomID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting chat messages: %w", err)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building message list query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing chat messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Content, &m.IsEncrypted,
			&m.IsRead, &m.CreatedAt, &m.SenderName); err != nil {
			return nil, 0, fmt.Errorf("error scanning chat message row: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, total, rows.Err()
}

// MarkRoomRead sets is_read on every message in a room not sent by the reader
func (r *ChatRepository) MarkRoomRead(ctx context.Context, roomID, readerID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE chat_messages SET is_read = TRUE WHERE room_id = $1 AND sender_id <> $2`, roomID, readerID)
	if err != nil {
		return fmt.Errorf("error marking room read: %w", err)
	}
	return nil
}

// DeleteMessage removes a message
func (r *ChatRepository) DeleteMessage(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM chat_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting chat message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}
