package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/auth"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/fieldcrypto"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Me(ctx context.Context, userID int64) (*dto.UserResponse, error)
}

// CredentialStore is the slice of the user repository the auth service needs.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type authServiceImpl struct {
	userRepo   CredentialStore
	jwtService *auth.JWTService
	cipher     *fieldcrypto.Cipher
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo CredentialStore,
	jwtService *auth.JWTService,
	cipher *fieldcrypto.Cipher,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		cipher:     cipher,
		logger:     logger,
	}
}

// Login verifies credentials and issues a signed bearer token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, &apperrors.CustomError{Err: apperrors.ErrInvalidCredentials, Message: "아이디 또는 비밀번호가 올바르지 않습니다."}
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, &apperrors.CustomError{Err: apperrors.ErrInvalidCredentials, Message: "아이디 또는 비밀번호가 올바르지 않습니다."}
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Username, user.Tier, string(user.Role))
	if err != nil {
		return nil, err
	}

	projection, err := decryptUser(s.cipher, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User logged in")

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      projection,
	}, nil
}

// Register creates a new account. The tier is fixed server-side; any tier in
// the request body is ignored.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role := req.Role
	if role == "" {
		role = string(models.RoleStudent)
	}
	if !models.ValidRole(role) {
		return nil, &apperrors.CustomError{Err: apperrors.ErrValidationFailed, Message: "올바르지 않은 역할입니다."}
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
		Tier:     models.TierDefault,
		Role:     models.RoleType(role),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUsernameAlreadyExists):
			return nil, &apperrors.CustomError{Err: apperrors.ErrConflict, Message: "이미 사용 중인 아이디입니다."}
		case errors.Is(err, apperrors.ErrTagAlreadyExists):
			return nil, &apperrors.CustomError{Err: apperrors.ErrConflict, Message: "이미 등록된 태그입니다."}
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User registered")

	projection, err := decryptUser(s.cipher, user)
	if err != nil {
		return nil, err
	}
	return &projection, nil
}

// Me returns the caller's decrypted projection
func (s *authServiceImpl) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	projection, err := decryptUser(s.cipher, user)
	if err != nil {
		return nil, err
	}
	return &projection, nil
}
