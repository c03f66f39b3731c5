package services

import (
	"fmt"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/fieldcrypto"
)

// decryptUser produces the API projection of a user with PII fields
// decrypted. Decrypted values are never written back to the model.
func decryptUser(cipher *fieldcrypto.Cipher, u *models.User) (dto.UserResponse, error) {
	name, err := cipher.Decrypt(u.Name)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to decrypt name for user %d: %w", u.ID, err)
	}
	phone, err := cipher.Decrypt(u.Phone)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to decrypt phone for user %d: %w", u.ID, err)
	}
	address, err := cipher.Decrypt(u.Address)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to decrypt address for user %d: %w", u.ID, err)
	}

	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      name,
		Phone:     phone,
		Address:   address,
		Tag:       u.Tag,
		Tier:      u.Tier,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}, nil
}
