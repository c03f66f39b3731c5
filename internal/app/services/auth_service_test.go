package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/auth"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/fieldcrypto"
)

type fakeCredentialStore struct {
	byUsername map[string]*models.User
	byTag      map[string]int64
	nextID     int64
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{
		byUsername: map[string]*models.User{},
		byTag:      map[string]int64{},
		nextID:     1,
	}
}

func (f *fakeCredentialStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeCredentialStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeCredentialStore) Create(_ context.Context, user *models.User) error {
	if _, ok := f.byUsername[user.Username]; ok {
		return apperrors.ErrUsernameAlreadyExists
	}
	if _, ok := f.byTag[user.Tag]; ok {
		return apperrors.ErrTagAlreadyExists
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	copied := *user
	f.byUsername[user.Username] = &copied
	f.byTag[user.Tag] = user.ID
	return nil
}

func newAuthFixture(t *testing.T) (AuthService, *fakeCredentialStore) {
	t.Helper()
	cipher, err := fieldcrypto.NewCipher([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "test",
	})
	store := newFakeCredentialStore()
	svc := NewAuthService(store, jwtService, cipher, zerolog.Nop())
	return svc, store
}

func TestRegisterAssignsDefaultTier(t *testing.T) {
	svc, store := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "u1",
		Password: "p1",
		Name:     "Kim",
		Tag:      "1234",
		Role:     "STUDENT",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.Tier != models.TierDefault {
		t.Errorf("tier = %d, want %d", resp.Tier, models.TierDefault)
	}
	if resp.Name != "Kim" {
		t.Errorf("name = %q, want decrypted %q", resp.Name, "Kim")
	}

	// The stored row must not hold the cleartext name.
	stored := store.byUsername["u1"]
	if stored.Name == "Kim" {
		t.Error("name stored in cleartext")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthFixture(t)

	first := &dto.RegisterRequest{Username: "u1", Password: "p1", Name: "Kim", Tag: "1234"}
	if _, err := svc.Register(context.Background(), first); err != nil {
		t.Fatalf("first register: %v", err)
	}

	second := &dto.RegisterRequest{Username: "u1", Password: "p2", Name: "Lee", Tag: "5678"}
	_, err := svc.Register(context.Background(), second)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "u1", Password: "p1", Name: "Kim", Tag: "1234", Role: "OVERLORD",
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t)

	req := &dto.RegisterRequest{Username: "u1", Password: "p1", Name: "Kim", Tag: "1234", Role: "STUDENT"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "u1", Password: "p1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Error("empty token")
	}
	if resp.User.Username != "u1" || resp.User.Name != "Kim" {
		t.Errorf("projection = %+v", resp.User)
	}
	if resp.User.Tier != models.TierDefault || resp.User.Role != "STUDENT" {
		t.Errorf("tier/role = %d/%s", resp.User.Tier, resp.User.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	req := &dto.RegisterRequest{Username: "u1", Password: "p1", Name: "Kim", Tag: "1234"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, attempt := range []dto.LoginRequest{
		{Username: "u1", Password: "wrong"},
		{Username: "nobody", Password: "p1"},
	} {
		_, err := svc.Login(context.Background(), &attempt)
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("login(%s): err = %v, want ErrInvalidCredentials", attempt.Username, err)
		}
	}
}
