package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topnotes/catalog-api/internal/cache/memory"
	"github.com/topnotes/catalog-api/internal/config"
	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/pkg/crypto"
	"github.com/topnotes/catalog-api/internal/ratelimit"
)

// MockAdminRepository is a mock implementation of repository.AdminRepository.
type MockAdminRepository struct {
	admins map[string]*domain.Admin
	nextID int64
	getErr error
}

func NewMockAdminRepository() *MockAdminRepository {
	return &MockAdminRepository{
		admins: make(map[string]*domain.Admin),
		nextID: 1,
	}
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	if _, exists := m.admins[admin.Name]; exists {
		return domain.ErrAdminAlreadyExists
	}
	admin.ID = m.nextID
	m.nextID++
	m.admins[admin.Name] = admin
	return nil
}

func (m *MockAdminRepository) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, a := range m.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (m *MockAdminRepository) GetByName(ctx context.Context, name string) (*domain.Admin, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if a, exists := m.admins[name]; exists {
		return a, nil
	}
	return nil, domain.ErrAdminNotFound
}

func (m *MockAdminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	for name, a := range m.admins {
		if a.ID == admin.ID {
			delete(m.admins, name)
			m.admins[admin.Name] = admin
			return nil
		}
	}
	return domain.ErrAdminNotFound
}

func (m *MockAdminRepository) List(ctx context.Context) ([]*domain.Admin, error) {
	var result []*domain.Admin
	for _, a := range m.admins {
		result = append(result, a)
	}
	return result, nil
}

func (m *MockAdminRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, exists := m.admins[name]
	return exists, nil
}

// MockTokenRepository is a mock implementation of repository.TokenRepository.
type MockTokenRepository struct {
	tokens    map[string]*domain.AuthToken // key -> token
	createErr error
}

func NewMockTokenRepository() *MockTokenRepository {
	return &MockTokenRepository{tokens: make(map[string]*domain.AuthToken)}
}

func (m *MockTokenRepository) Create(ctx context.Context, token *domain.AuthToken) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, t := range m.tokens {
		if t.AdminID == token.AdminID {
			return domain.ErrTokenAlreadyExists
		}
	}
	m.tokens[token.Key] = token
	return nil
}

func (m *MockTokenRepository) GetByKey(ctx context.Context, key string) (*domain.AuthToken, error) {
	if t, exists := m.tokens[key]; exists {
		return t, nil
	}
	return nil, domain.ErrTokenNotFound
}

func (m *MockTokenRepository) GetByAdminID(ctx context.Context, adminID int64) (*domain.AuthToken, error) {
	for _, t := range m.tokens {
		if t.AdminID == adminID {
			return t, nil
		}
	}
	return nil, domain.ErrTokenNotFound
}

func (m *MockTokenRepository) DeleteByAdminID(ctx context.Context, adminID int64) error {
	for key, t := range m.tokens {
		if t.AdminID == adminID {
			delete(m.tokens, key)
		}
	}
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *MockAdminRepository, *MockTokenRepository) {
	t.Helper()

	adminRepo := NewMockAdminRepository()
	tokenRepo := NewMockTokenRepository()

	cache := memory.NewCache()
	t.Cleanup(cache.Stop)

	limiter := ratelimit.NewLimiter(cache, config.RateLimitConfig{
		MaxAttempts: 5,
		Window:      900 * time.Second,
	}, zerolog.Nop())

	svc := NewAuthService(adminRepo, tokenRepo, limiter, "Top Notes Admin", zerolog.Nop())
	return svc, adminRepo, tokenRepo
}

func seedAdmin(t *testing.T, repo *MockAdminRepository, name, password string, staff bool) *domain.Admin {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)

	admin := domain.NewAdmin(name, hash)
	admin.IsStaff = staff
	require.NoError(t, repo.Create(context.Background(), admin))
	return admin
}

func TestAuthService_Login(t *testing.T) {
	svc, adminRepo, _ := newTestAuthService(t)
	seedAdmin(t, adminRepo, "Top Notes Admin", "s3cret-pass", true)

	out, err := svc.Login(context.Background(), LoginInput{
		Name:      "Top Notes Admin",
		Password:  "s3cret-pass",
		ClientKey: "1.2.3.4",
	})
	require.NoError(t, err)
	assert.Len(t, out.Token, crypto.TokenKeyLength)
	assert.Equal(t, "Top Notes Admin", out.Admin.Name)
}

func TestAuthService_LoginDefaultName(t *testing.T) {
	svc, adminRepo, _ := newTestAuthService(t)
	seedAdmin(t, adminRepo, "Top Notes Admin", "s3cret-pass", true)

	out, err := svc.Login(context.Background(), LoginInput{
		Password:  "s3cret-pass",
		ClientKey: "1.2.3.4",
	})
	require.NoError(t, err)
	assert.Equal(t, "Top Notes Admin", out.Admin.Name)
}

func TestAuthService_LoginReusesToken(t *testing.T) {
	svc, adminRepo, _ := newTestAuthService(t)
	seedAdmin(t, adminRepo, "Top Notes Admin", "s3cret-pass", true)
	ctx := context.Background()

	first, err := svc.Login(ctx, LoginInput{Password: "s3cret-pass", ClientKey: "1.2.3.4"})
	require.NoError(t, err)

	second, err := svc.Login(ctx, LoginInput{Password: "s3cret-pass", ClientKey: "1.2.3.4"})
	require.NoError(t, err)

	assert.Equal(t, first.Token, second.Token, "login should reuse the existing token")
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, adminRepo, _ := newTestAuthService(t)
	seedAdmin(t, adminRepo, "Top Notes Admin", "s3cret-pass", true)

	_, err := svc.Login(context.Background(), LoginInput{
		Password:  "wrong",
		ClientKey: "1.2.3.4",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownName(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), LoginInput{
		Name:      "nobody",
		Password:  "whatever",
		ClientKey: "1.2.3.4",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginInactiveAdmin(t *testing.T) {
	svc, adminRepo, _ := newTestAuthService(t)
	admin := seedAdmin(t, adminRepo, "Top Notes Admin", "s3cret-pass", true)
	admin.IsActive = false

	_, err := svc.Login(context.Background(), LoginInput{
		Password:  "s3cret-pass",
		ClientKey: "1.2.3.4",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials,
		"inactive accounts should be indistinguishable from bad credentials")
}

func TestAuthService_LoginRateLimited(t *testing.T) {
	svc, adminRepo, _ := newTestAuthService(t)
	seedAdmin(t, adminRepo, "Top Notes Admin", "s3cret-pass", true)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Login(ctx, LoginInput{Password: "wrong", ClientKey: "1.2.3.4"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// Sixth attempt is blocked even with the right password.
	_, err := svc.Login(ctx, LoginInput{Password: "s3cret-pass", ClientKey: "1.2.3.4"})
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	// A different client is unaffected.
	_, err = svc.Login(ctx, LoginInput{Password: "s3cret-pass", ClientKey: "5.6.7.8"})
	assert.NoError(t, err)
}

func TestAuthService_LoginResetsCounter(t *testing.T) {
	svc, adminRepo, _ := newTestAuthService(t)
	seedAdmin(t, adminRepo, "Top Notes Admin", "s3cret-pass", true)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := svc.Login(ctx, LoginInput{Password: "wrong", ClientKey: "1.2.3.4"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := svc.Login(ctx, LoginInput{Password: "s3cret-pass", ClientKey: "1.2.3.4"})
	require.NoError(t, err)

	// The successful login cleared the slate; four more failures are allowed.
	for i := 0; i < 4; i++ {
		_, err := svc.Login(ctx, LoginInput{Password: "wrong", ClientKey: "1.2.3.4"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc, adminRepo, _ := newTestAuthService(t)
	seedAdmin(t, adminRepo, "Top Notes Admin", "s3cret-pass", true)
	ctx := context.Background()

	out, err := svc.Login(ctx, LoginInput{Password: "s3cret-pass", ClientKey: "1.2.3.4"})
	require.NoError(t, err)

	admin, err := svc.ValidateToken(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "Top Notes Admin", admin.Name)
}

func TestAuthService_ValidateTokenUnknown(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.ValidateToken(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_ValidateTokenInactiveAdmin(t *testing.T) {
	svc, adminRepo, _ := newTestAuthService(t)
	admin := seedAdmin(t, adminRepo, "Top Notes Admin", "s3cret-pass", true)
	ctx := context.Background()

	out, err := svc.Login(ctx, LoginInput{Password: "s3cret-pass", ClientKey: "1.2.3.4"})
	require.NoError(t, err)

	admin.IsActive = false

	_, err = svc.ValidateToken(ctx, out.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	svc, adminRepo, tokenRepo := newTestAuthService(t)
	admin := seedAdmin(t, adminRepo, "Top Notes Admin", "s3cret-pass", true)
	ctx := context.Background()

	out, err := svc.Login(ctx, LoginInput{Password: "s3cret-pass", ClientKey: "1.2.3.4"})
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, UpdatePasswordInput{AdminID: admin.ID, NewPassword: "new-password"})
	require.NoError(t, err)

	// Old token is revoked.
	_, err = tokenRepo.GetByKey(ctx, out.Token)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)

	// Old password no longer works, new one does.
	_, err = svc.Login(ctx, LoginInput{Password: "s3cret-pass", ClientKey: "1.2.3.4"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Password: "new-password", ClientKey: "5.6.7.8"})
	assert.NoError(t, err)
}

func TestAuthService_UpdatePasswordValidation(t *testing.T) {
	svc, adminRepo, _ := newTestAuthService(t)
	admin := seedAdmin(t, adminRepo, "Top Notes Admin", "s3cret-pass", true)
	ctx := context.Background()

	err := svc.UpdatePassword(ctx, UpdatePasswordInput{AdminID: admin.ID, NewPassword: ""})
	assert.ErrorIs(t, err, ErrPasswordRequired)

	err = svc.UpdatePassword(ctx, UpdatePasswordInput{AdminID: admin.ID, NewPassword: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	err = svc.UpdatePassword(ctx, UpdatePasswordInput{AdminID: 999, NewPassword: "long enough"})
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
