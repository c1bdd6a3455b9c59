package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/repository"
)

// SettingsService manages the storefront's key/value settings.
type SettingsService struct {
	settingRepo repository.SettingRepository
	logger      zerolog.Logger
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingRepo repository.SettingRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{
		settingRepo: settingRepo,
		logger:      logger.With().Str("service", "settings").Logger(),
	}
}

// GetAll returns every setting as a flat key/value map.
func (s *SettingsService) GetAll(ctx context.Context) (map[string]string, error) {
	settings, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load settings")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	result := make(map[string]string, len(settings))
	for _, setting := range settings {
		result[setting.Key] = setting.Value
	}
	return result, nil
}

// UpdateSettingInput contains the data for a settings upsert.
// Value is a pointer so an absent value can be told apart from an
// empty string, which is a legal value.
type UpdateSettingInput struct {
	Key   string
	Value *string
}

// Upsert creates or updates a setting. The description is only set on
// first insert.
func (s *SettingsService) Upsert(ctx context.Context, input UpdateSettingInput) error {
	if input.Key == "" {
		return ErrSettingKeyRequired
	}
	if input.Value == nil {
		return ErrSettingValueRequired
	}

	setting := domain.NewSetting(input.Key, *input.Value)
	if err := s.settingRepo.Upsert(ctx, setting); err != nil {
		s.logger.Error().Err(err).Str("key", input.Key).Msg("failed to upsert setting")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("key", input.Key).Msg("setting updated")
	return nil
}
