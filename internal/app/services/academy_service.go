package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/app/repositories"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
)

const academyKeyPrefix = "INFO_"

// AcademyService defines the interface for academy info operations
type AcademyService interface {
	GetInfo(ctx context.Context) (map[string]string, error)
	UpdateInfo(ctx context.Context, req *dto.UpdateAcademyInfoRequest) (map[string]string, error)
}

type academyServiceImpl struct {
	academyRepo *repositories.AcademyRepository
	logger      zerolog.Logger
}

// NewAcademyService creates a new AcademyService
func NewAcademyService(academyRepo *repositories.AcademyRepository, logger zerolog.Logger) AcademyService {
	return &academyServiceImpl{academyRepo: academyRepo, logger: logger}
}

// GetInfo returns all academy settings as a key/value map
func (s *academyServiceImpl) GetInfo(ctx context.Context) (map[string]string, error) {
	entries, err := s.academyRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return toInfoMap(entries), nil
}

// UpdateInfo upserts a batch of settings and returns the resulting full map.
// Keys must follow the INFO_<NAME> convention.
func (s *academyServiceImpl) UpdateInfo(ctx context.Context, req *dto.UpdateAcademyInfoRequest) (map[string]string, error) {
	for _, entry := range req.Entries {
		if !strings.HasPrefix(entry.Key, academyKeyPrefix) || len(entry.Key) <= len(academyKeyPrefix) {
			return nil, apperrors.NewValidationError("설정 키는 INFO_ 로 시작해야 합니다.")
		}
	}

	for _, entry := range req.Entries {
		if err := s.academyRepo.Upsert(ctx, entry.Key, entry.Value); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Int("entries", len(req.Entries)).Msg("Academy info updated")

	entries, err := s.academyRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return toInfoMap(entries), nil
}

func toInfoMap(entries []models.AcademyInfo) map[string]string {
	info := make(map[string]string, len(entries))
	for _, e := range entries {
		info[e.Key] = e.Value
	}
	return info
}
