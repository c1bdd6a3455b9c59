package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/pkg/crypto"
	"github.com/topnotes/catalog-api/internal/repository"
)

// AdminService handles admin account provisioning. It backs the
// operator CLI; the HTTP surface never creates admins.
type AdminService struct {
	adminRepo repository.AdminRepository
	tokenRepo repository.TokenRepository
	logger    zerolog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(adminRepo repository.AdminRepository, tokenRepo repository.TokenRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		tokenRepo: tokenRepo,
		logger:    logger.With().Str("service", "admin").Logger(),
	}
}

// CreateAdminInput contains the data needed to provision an admin.
type CreateAdminInput struct {
	Name        string
	Password    string
	IsStaff     bool
	IsSuperuser bool
}

// Create provisions a new admin account.
func (s *AdminService) Create(ctx context.Context, input CreateAdminInput) (*domain.Admin, error) {
	if input.Name == "" || len(input.Name) > 255 {
		return nil, ErrInvalidAdminName
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}
	if len(input.Password) < 6 {
		return nil, ErrPasswordTooShort
	}

	exists, err := s.adminRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to check admin existence")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: name '%s'", ErrAdminAlreadyExists, input.Name)
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("%w: failed to hash password", ErrInternalError)
	}

	admin := domain.NewAdmin(input.Name, hash)
	admin.IsStaff = input.IsStaff
	admin.IsSuperuser = input.IsSuperuser

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrAdminAlreadyExists) {
			return nil, fmt.Errorf("%w: name '%s'", ErrAdminAlreadyExists, input.Name)
		}
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create admin")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("admin_id", admin.ID).
		Str("name", admin.Name).
		Bool("is_staff", admin.IsStaff).
		Bool("is_superuser", admin.IsSuperuser).
		Msg("admin created")

	return admin, nil
}

// List returns all admin accounts.
func (s *AdminService) List(ctx context.Context) ([]*domain.Admin, error) {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list admins")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return admins, nil
}

// SetPassword rotates the named admin's password and revokes its tokens.
func (s *AdminService) SetPassword(ctx context.Context, name, password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}

	admin, err := s.adminRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return ErrAdminNotFound
		}
		s.logger.Error().Err(err).Str("name", name).Msg("failed to look up admin")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return fmt.Errorf("%w: failed to hash password", ErrInternalError)
	}

	admin.SetPassword(hash)
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		s.logger.Error().Err(err).Int64("admin_id", admin.ID).Msg("failed to update admin")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if err := s.tokenRepo.DeleteByAdminID(ctx, admin.ID); err != nil {
		s.logger.Error().Err(err).Int64("admin_id", admin.ID).Msg("failed to revoke tokens")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("admin_id", admin.ID).Str("name", name).Msg("password rotated")
	return nil
}
