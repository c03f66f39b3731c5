package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/repositories"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/fieldcrypto"
)

// FriendService defines the interface for friendship operations
type FriendService interface {
	RequestFriendship(ctx context.Context, userID, friendID int64) (*models.Friendship, error)
	AcceptFriendship(ctx context.Context, id, callerID int64) (*models.Friendship, error)
	ListFriendships(ctx context.Context, userID int64) ([]models.Friendship, error)
	DeleteFriendship(ctx context.Context, id, callerID int64) error
}

type friendServiceImpl struct {
	friendshipRepo *repositories.FriendshipRepository
	userRepo       *repositories.UserRepository
	cipher         *fieldcrypto.Cipher
	logger         zerolog.Logger
}

// NewFriendService creates a new FriendService
func NewFriendService(
	friendshipRepo *repositories.FriendshipRepository,
	userRepo *repositories.UserRepository,
	cipher *fieldcrypto.Cipher,
	logger zerolog.Logger,
) FriendService {
	return &friendServiceImpl{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		cipher:         cipher,
		logger:         logger,
	}
}

// RequestFriendship creates a PENDING edge towards another user. The
// unordered pair is unique regardless of direction.
func (s *friendServiceImpl) RequestFriendship(ctx context.Context, userID, friendID int64) (*models.Friendship, error) {
	if userID == friendID {
		return nil, apperrors.NewBadRequestError("자기 자신에게는 친구 요청을 보낼 수 없습니다.")
	}

	if _, err := s.userRepo.FindByID(ctx, friendID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("요청 대상 사용자를 찾을 수 없습니다.")
		}
		return nil, err
	}

	// Friendly 409 for the common case; the unique pair index still backs
	// this up under concurrency.
	if existing, err := s.friendshipRepo.FindBetween(ctx, userID, friendID); err == nil && existing != nil {
		return nil, apperrors.NewConflictError("이미 친구 요청이 존재합니다.")
	} else if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	friendship := &models.Friendship{
		UserID:   userID,
		FriendID: friendID,
		Status:   models.FriendshipPending,
	}
	if err := s.friendshipRepo.Create(ctx, friendship); err != nil {
		if errors.Is(err, apperrors.ErrFriendshipExists) {
			return nil, apperrors.NewConflictError("이미 친구 요청이 존재합니다.")
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Int64("friendID", friendID).Msg("Friend request created")
	return friendship, nil
}

// AcceptFriendship flips a PENDING edge to ACCEPTED. Only the addressee of
// the request may accept it.
func (s *friendServiceImpl) AcceptFriendship(ctx context.Context, id, callerID int64) (*models.Friendship, error) {
	friendship, err := s.friendshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if friendship.FriendID != callerID {
		return nil, apperrors.NewForbiddenError("받은 친구 요청만 수락할 수 있습니다.")
	}
	if friendship.Status == models.FriendshipAccepted {
		return friendship, nil
	}

	if err := s.friendshipRepo.Accept(ctx, id); err != nil {
		return nil, err
	}
	friendship.Status = models.FriendshipAccepted
	return friendship, nil
}

// ListFriendships returns every edge touching the user, friend names
// decrypted.
func (s *friendServiceImpl) ListFriendships(ctx context.Context, userID int64) ([]models.Friendship, error) {
	friendships, err := s.friendshipRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range friendships {
		name, err := s.cipher.Decrypt(friendships[i].FriendName)
		if err != nil {
			return nil, err
		}
		friendships[i].FriendName = name
	}
	return friendships, nil
}

// DeleteFriendship removes an edge; either member may do so. Declining a
// request and unfriending share this path.
func (s *friendServiceImpl) DeleteFriendship(ctx context.Context, id, callerID int64) error {
	friendship, err := s.friendshipRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if friendship.UserID != callerID && friendship.FriendID != callerID {
		return apperrors.NewForbiddenError("본인의 친구 관계만 삭제할 수 있습니다.")
	}
	return s.friendshipRepo.Delete(ctx, id)
}
