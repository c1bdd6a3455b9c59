package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/pkg/crypto"
)

func newTestAdminService(t *testing.T) (*AdminService, *MockAdminRepository, *MockTokenRepository) {
	t.Helper()
	adminRepo := NewMockAdminRepository()
	tokenRepo := NewMockTokenRepository()
	return NewAdminService(adminRepo, tokenRepo, zerolog.Nop()), adminRepo, tokenRepo
}

func TestAdminService_Create(t *testing.T) {
	svc, _, _ := newTestAdminService(t)

	admin, err := svc.Create(context.Background(), CreateAdminInput{
		Name:     "Top Notes Admin",
		Password: "s3cret-pass",
		IsStaff:  true,
	})
	require.NoError(t, err)
	assert.NotZero(t, admin.ID)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsActive)
	assert.NotEqual(t, "s3cret-pass", admin.PasswordHash)
	assert.True(t, crypto.CheckPassword(admin.PasswordHash, "s3cret-pass"))
}

func TestAdminService_CreateValidation(t *testing.T) {
	svc, _, _ := newTestAdminService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateAdminInput{Name: "", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrInvalidAdminName)

	_, err = svc.Create(ctx, CreateAdminInput{Name: "admin", Password: ""})
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = svc.Create(ctx, CreateAdminInput{Name: "admin", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAdminService_CreateDuplicate(t *testing.T) {
	svc, _, _ := newTestAdminService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateAdminInput{Name: "admin", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateAdminInput{Name: "admin", Password: "other-pass"})
	assert.ErrorIs(t, err, ErrAdminAlreadyExists)
}

func TestAdminService_SetPassword(t *testing.T) {
	svc, adminRepo, tokenRepo := newTestAdminService(t)
	ctx := context.Background()

	admin, err := svc.Create(ctx, CreateAdminInput{Name: "admin", Password: "s3cret-pass"})
	require.NoError(t, err)

	// Simulate a held token.
	key, err := crypto.GenerateTokenKey()
	require.NoError(t, err)
	require.NoError(t, tokenRepo.Create(ctx, domain.NewAuthToken(key, admin.ID)))

	err = svc.SetPassword(ctx, "admin", "rotated-pass")
	require.NoError(t, err)

	updated, err := adminRepo.GetByName(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, crypto.CheckPassword(updated.PasswordHash, "rotated-pass"))

	_, err = tokenRepo.GetByAdminID(ctx, admin.ID)
	assert.Error(t, err, "rotation should revoke held tokens")
}

func TestAdminService_SetPasswordUnknownAdmin(t *testing.T) {
	svc, _, _ := newTestAdminService(t)

	err := svc.SetPassword(context.Background(), "nobody", "rotated-pass")
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
