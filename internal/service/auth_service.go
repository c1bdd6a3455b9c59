package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/pkg/crypto"
	"github.com/topnotes/catalog-api/internal/ratelimit"
	"github.com/topnotes/catalog-api/internal/repository"
)

// AuthService handles admin authentication and token management.
type AuthService struct {
	adminRepo        repository.AdminRepository
	tokenRepo        repository.TokenRepository
	limiter          *ratelimit.Limiter
	defaultAdminName string
	logger           zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	adminRepo repository.AdminRepository,
	tokenRepo repository.TokenRepository,
	limiter *ratelimit.Limiter,
	defaultAdminName string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		adminRepo:        adminRepo,
		tokenRepo:        tokenRepo,
		limiter:          limiter,
		defaultAdminName: defaultAdminName,
		logger:           logger.With().Str("service", "auth").Logger(),
	}
}

// LoginInput contains the data needed to log in.
type LoginInput struct {
	// Name is the admin name. When empty, the configured default
	// admin name is assumed.
	Name     string
	Password string

	// ClientKey identifies the caller for rate limiting.
	ClientKey string
}

// LoginOutput contains the result of a successful login.
type LoginOutput struct {
	Token string
	Admin *domain.Admin
}

// Login verifies credentials and returns the admin's token, creating
// one if the admin does not hold one yet. Failed attempts count toward
// the client's rate limit; a successful login resets it.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if s.limiter.Blocked(ctx, input.ClientKey) {
		s.logger.Warn().Str("client", input.ClientKey).Msg("login rejected: rate limited")
		return nil, ErrTooManyAttempts
	}

	name := input.Name
	if name == "" {
		name = s.defaultAdminName
	}

	admin, err := s.authenticate(ctx, name, input.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.limiter.RecordFailure(ctx, input.ClientKey)
		}
		return nil, err
	}

	s.limiter.Reset(ctx, input.ClientKey)

	token, err := s.getOrCreateToken(ctx, admin.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("admin_id", admin.ID).Msg("failed to issue token")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("admin_id", admin.ID).
		Str("name", admin.Name).
		Msg("admin logged in")

	return &LoginOutput{Token: token.Key, Admin: admin}, nil
}

// authenticate verifies the name/password pair. Unknown names, inactive
// accounts and wrong passwords are indistinguishable to the caller.
func (s *AuthService) authenticate(ctx context.Context, name, password string) (*domain.Admin, error) {
	admin, err := s.adminRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			s.logger.Debug().Str("name", name).Msg("admin not found during login")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("name", name).Msg("failed to look up admin")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if !admin.CanAuthenticate() {
		s.logger.Debug().Str("name", name).Msg("inactive admin attempted login")
		return nil, ErrInvalidCredentials
	}

	if !crypto.CheckPassword(admin.PasswordHash, password) {
		s.logger.Debug().Str("name", name).Msg("invalid password during login")
		return nil, ErrInvalidCredentials
	}

	return admin, nil
}

// getOrCreateToken returns the admin's token, minting one if absent.
func (s *AuthService) getOrCreateToken(ctx context.Context, adminID int64) (*domain.AuthToken, error) {
	token, err := s.tokenRepo.GetByAdminID(ctx, adminID)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, domain.ErrTokenNotFound) {
		return nil, err
	}

	key, err := crypto.GenerateTokenKey()
	if err != nil {
		return nil, err
	}

	token = domain.NewAuthToken(key, adminID)
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		// Concurrent login may have won the race; use its token.
		if errors.Is(err, domain.ErrTokenAlreadyExists) {
			return s.tokenRepo.GetByAdminID(ctx, adminID)
		}
		return nil, err
	}

	return token, nil
}

// ValidateToken resolves a bearer token to its admin.
// Returns ErrInvalidToken for unknown tokens and inactive admins.
func (s *AuthService) ValidateToken(ctx context.Context, key string) (*domain.Admin, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrInvalidToken
	}

	token, err := s.tokenRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		s.logger.Error().Err(err).Msg("failed to look up token")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	admin, err := s.adminRepo.GetByID(ctx, token.AdminID)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, ErrInvalidToken
		}
		s.logger.Error().Err(err).Int64("admin_id", token.AdminID).Msg("failed to look up token admin")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if !admin.CanAuthenticate() {
		return nil, ErrInvalidToken
	}

	return admin, nil
}

// UpdatePasswordInput contains the data needed to rotate a password.
type UpdatePasswordInput struct {
	AdminID     int64
	NewPassword string
}

// UpdatePassword rotates an admin's password and revokes every token
// the admin holds, forcing re-login.
func (s *AuthService) UpdatePassword(ctx context.Context, input UpdatePasswordInput) error {
	if input.NewPassword == "" {
		return ErrPasswordRequired
	}
	if len(input.NewPassword) < 6 {
		return ErrPasswordTooShort
	}

	admin, err := s.adminRepo.GetByID(ctx, input.AdminID)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return ErrAdminNotFound
		}
		s.logger.Error().Err(err).Int64("admin_id", input.AdminID).Msg("failed to look up admin")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return fmt.Errorf("%w: failed to hash password", ErrInternalError)
	}

	admin.SetPassword(hash)
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		s.logger.Error().Err(err).Int64("admin_id", admin.ID).Msg("failed to update admin password")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if err := s.tokenRepo.DeleteByAdminID(ctx, admin.ID); err != nil {
		s.logger.Error().Err(err).Int64("admin_id", admin.ID).Msg("failed to revoke tokens")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("admin_id", admin.ID).Msg("password updated, tokens revoked")
	return nil
}
