package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/repositories"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/auth"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/fieldcrypto"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin1234"
	defaultAdminTag      = "ADMIN0001"
)

// CreateDefaultData ensures a tier-1 admin account exists so a fresh
// deployment can be administered. The password must be rotated after first
// login.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cipher *fieldcrypto.Cipher, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	if _, err := userRepo.FindByUsername(ctx, defaultAdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}
	encName, err := cipher.Encrypt("관리자")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: defaultAdminUsername,
		Password: hashed,
		Name:     encName,
		Tag:      defaultAdminTag,
		Tier:     models.TierMin,
		Role:     models.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		// Someone else may have seeded concurrently.
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("username", defaultAdminUsername).Msg("Created default admin account")
	return nil
}
