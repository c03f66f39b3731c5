package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/repositories"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/fieldcrypto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/helpers"
)

// ChatService defines the interface for chat room and message operations
type ChatService interface {
	ListRooms(ctx context.Context, userID int64) ([]models.ChatRoom, error)
	CreateRoom(ctx context.Context, creatorID int64, req *dto.CreateRoomRequest) (*models.ChatRoom, error)
	ListMessages(ctx context.Context, roomID, callerID int64, page, size int) (*dto.MessageListResponse, error)
	SendMessage(ctx context.Context, roomID, senderID int64, content string) (*models.Message, error)
	DeleteMessage(ctx context.Context, id, callerID int64, callerTier int) error
	IsMember(ctx context.Context, roomID, userID int64) (bool, error)
}

type chatServiceImpl struct {
	chatRepo    *repositories.ChatRepository
	userRepo    *repositories.UserRepository
	cipher      *fieldcrypto.Cipher
	broadcaster Broadcaster
	logger      zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	chatRepo *repositories.ChatRepository,
	userRepo *repositories.UserRepository,
	cipher *fieldcrypto.Cipher,
	broadcaster Broadcaster,
	logger zerolog.Logger,
) ChatService {
	return &chatServiceImpl{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		cipher:      cipher,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// ListRooms returns the rooms the user belongs to
func (s *chatServiceImpl) ListRooms(ctx context.Context, userID int64) ([]models.ChatRoom, error) {
	return s.chatRepo.ListRoomsForUser(ctx, userID)
}

// CreateRoom creates a chat room with the creator plus the named members.
// DM rooms hold exactly two people.
func (s *chatServiceImpl) CreateRoom(ctx context.Context, creatorID int64, req *dto.CreateRoomRequest) (*models.ChatRoom, error) {
	roomType := models.RoomType(req.RoomType)
	if roomType == models.RoomDM && len(req.MemberIDs) != 1 {
		return nil, apperrors.NewValidationError("1:1 채팅방은 상대방 한 명만 지정할 수 있습니다.")
	}

	memberIDs := []int64{creatorID}
	for _, id := range req.MemberIDs {
		if id == creatorID {
			continue
		}
		if _, err := s.userRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return nil, apperrors.NewNotFoundError("채팅방에 초대할 사용자를 찾을 수 없습니다.")
			}
			return nil, err
		}
		memberIDs = append(memberIDs, id)
	}

	room := &models.ChatRoom{
		Name:     req.Name,
		RoomType: roomType,
	}
	if err := s.chatRepo.CreateRoom(ctx, room, memberIDs); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("roomID", room.ID).Str("roomType", req.RoomType).Int("members", len(memberIDs)).Msg("Chat room created")
	return room, nil
}

// ListMessages returns a page of a room's history, newest first, with dm
// content decrypted and sender names resolved. Reading marks the room's
// incoming messages as read for the caller.
func (s *chatServiceImpl) ListMessages(ctx context.Context, roomID, callerID int64, page, size int) (*dto.MessageListResponse, error) {
	if err := s.requireMember(ctx, roomID, callerID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	messages, total, err := s.chatRepo.ListMessages(ctx, roomID, offset, limit)
	if err != nil {
		return nil, err
	}

	for i := range messages {
		if messages[i].IsEncrypted {
			content, err := s.cipher.Decrypt(messages[i].Content)
			if err != nil {
				return nil, err
			}
			messages[i].Content = content
		}
		name, err := s.cipher.Decrypt(messages[i].SenderName)
		if err != nil {
			return nil, err
		}
		messages[i].SenderName = name
	}

	if err := s.chatRepo.MarkRoomRead(ctx, roomID, callerID); err != nil {
		s.logger.Warn().Err(err).Int64("roomID", roomID).Msg("Failed to mark room read")
	}

	return &dto.MessageListResponse{
		RoomID:         roomID,
		Messages:       messages,
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// SendMessage persists a message and then broadcasts it to the room. DM
// content is encrypted at rest; the broadcast payload carries the cleartext.
func (s *chatServiceImpl) SendMessage(ctx context.Context, roomID, senderID int64, content string) (*models.Message, error) {
	if err := s.requireMember(ctx, roomID, senderID); err != nil {
		return nil, err
	}

	room, err := s.chatRepo.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	stored := content
	encrypted := false
	if room.RoomType == models.RoomDM {
		stored, err = s.cipher.Encrypt(content)
		if err != nil {
			return nil, err
		}
		encrypted = true
	}

	message := &models.Message{
		RoomID:      roomID,
		SenderID:    senderID,
		Content:     stored,
		IsEncrypted: encrypted,
	}
	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	sender, err := s.userRepo.FindByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	senderName, err := s.cipher.Decrypt(sender.Name)
	if err != nil {
		return nil, err
	}

	out := *message
	out.Content = content
	out.SenderName = senderName
	s.broadcaster.BroadcastToRoom(roomID, "chat:new-message", &out)

	return &out, nil
}

// DeleteMessage removes a message; allowed for the sender or a caller at
// moderator tier.
func (s *chatServiceImpl) DeleteMessage(ctx context.Context, id, callerID int64, callerTier int) error {
	message, err := s.chatRepo.GetMessageByID(ctx, id)
	if err != nil {
		return err
	}
	if message.SenderID != callerID && callerTier > moderatorTier {
		return apperrors.NewForbiddenError("본인이 보낸 메시지만 삭제할 수 있습니다.")
	}
	return s.chatRepo.DeleteMessage(ctx, id)
}

// IsMember reports whether a user belongs to a room. The realtime relay uses
// it to gate join requests.
func (s *chatServiceImpl) IsMember(ctx context.Context, roomID, userID int64) (bool, error) {
	return s.chatRepo.IsMember(ctx, roomID, userID)
}

func (s *chatServiceImpl) requireMember(ctx context.Context, roomID, userID int64) error {
	member, err := s.chatRepo.IsMember(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if !member {
		return apperrors.NewForbiddenError("채팅방에 참여한 사용자만 이용할 수 있습니다.")
	}
	return nil
}
