package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/fieldcrypto"
)

func newUserFixture(t *testing.T) UserService {
	t.Helper()
	cipher, err := fieldcrypto.NewCipher([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}
	// Role and tier validation rejects before the repository is touched, so
	// these tests run without one.
	return NewUserService(nil, cipher, zerolog.Nop())
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc := newUserFixture(t)

	_, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Username: "u1",
		Password: "p1",
		Name:     "김학생",
		Tag:      "CARD-1",
		Tier:     3,
		Role:     "OVERLORD",
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed", err)
	}
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	svc := newUserFixture(t)

	role := "OVERLORD"
	_, err := svc.UpdateUser(context.Background(), 1, &dto.UpdateUserRequest{Role: &role})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed", err)
	}
}

func TestUpdateUserRejectsTierOutOfRange(t *testing.T) {
	svc := newUserFixture(t)

	for _, tier := range []int{0, 6} {
		badTier := tier
		_, err := svc.UpdateUser(context.Background(), 1, &dto.UpdateUserRequest{Tier: &badTier})
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("tier %d: err = %v, want ErrValidationFailed", tier, err)
		}
	}
}
