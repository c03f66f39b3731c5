package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/repositories"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/auth"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/fieldcrypto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/helpers"
)

// UserService defines the interface for user management operations
type UserService interface {
	GetUser(ctx context.Context, id int64) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, role *string, tier *int, page, size int) (*dto.UserListResponse, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userServiceImpl struct {
	userRepo *repositories.UserRepository
	cipher   *fieldcrypto.Cipher
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, cipher *fieldcrypto.Cipher, logger zerolog.Logger) UserService {
	return &userServiceImpl{userRepo: userRepo, cipher: cipher, logger: logger}
}

// GetUser retrieves a single user with PII decrypted
func (s *userServiceImpl) GetUser(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp, err := decryptUser(s.cipher, user)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUsers retrieves users filtered by role and tier, paginated
func (s *userServiceImpl) ListUsers(ctx context.Context, role *string, tier *int, page, size int) (*dto.UserListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	users, total, err := s.userRepo.List(ctx, role, tier, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp, err := decryptUser(s.cipher, u)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}

	return &dto.UserListResponse{
		Users:          responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// CreateUser creates a user with an explicit tier and role. Unlike public
// registration the caller chooses both axes, so it sits behind the admin
// guard at the route level.
func (s *userServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !models.ValidRole(req.Role) {
		return nil, apperrors.NewValidationError("지원하지 않는 역할입니다.")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	encName, err := s.cipher.Encrypt(req.Name)
	if err != nil {
		return nil, err
	}
	encPhone, err := s.cipher.Encrypt(req.Phone)
	if err != nil {
		return nil, err
	}
	encAddress, err := s.cipher.Encrypt(req.Address)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Password: hashed,
		Name:     encName,
		Phone:    encPhone,
		Address:  encAddress,
		Tag:      req.Tag,
		Tier:     req.Tier,
		Role:     models.RoleType(req.Role),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			return nil, &apperrors.CustomError{Err: apperrors.ErrConflict, Message: "이미 사용 중인 아이디입니다."}
		}
		if errors.Is(err, apperrors.ErrTagAlreadyExists) {
			return nil, &apperrors.CustomError{Err: apperrors.ErrConflict, Message: "이미 등록된 태그입니다."}
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", req.Role).Int("tier", req.Tier).Msg("User created")

	resp, err := decryptUser(s.cipher, user)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateUser applies a partial update; nil request fields are left untouched
func (s *userServiceImpl) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	patch := map[string]interface{}{}

	if req.Name != nil {
		enc, err := s.cipher.Encrypt(*req.Name)
		if err != nil {
			return nil, err
		}
		patch["name"] = enc
	}
	if req.Phone != nil {
		enc, err := s.cipher.Encrypt(*req.Phone)
		if err != nil {
			return nil, err
		}
		patch["phone"] = enc
	}
	if req.Address != nil {
		enc, err := s.cipher.Encrypt(*req.Address)
		if err != nil {
			return nil, err
		}
		patch["address"] = enc
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		patch["password"] = hashed
	}
	if req.Tier != nil {
		if *req.Tier < models.TierMin || *req.Tier > models.TierMax {
			return nil, apperrors.NewValidationError("등급 값이 올바르지 않습니다.")
		}
		patch["tier"] = *req.Tier
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return nil, apperrors.NewValidationError("지원하지 않는 역할입니다.")
		}
		patch["role"] = *req.Role
	}

	if len(patch) > 0 {
		if err := s.userRepo.Update(ctx, id, patch); err != nil {
			return nil, err
		}
	}

	return s.GetUser(ctx, id)
}

// DeleteUser removes a user and, through the schema's cascades, their
// attendance, posts, friendships and chat memberships.
func (s *userServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", id).Msg("User deleted")
	return nil
}
