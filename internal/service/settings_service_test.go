package service

import (
	"context"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topnotes/catalog-api/internal/domain"
)

// MockSettingRepository is a mock implementation of repository.SettingRepository.
type MockSettingRepository struct {
	settings map[string]*domain.Setting
	nextID   int64
}

func NewMockSettingRepository() *MockSettingRepository {
	return &MockSettingRepository{
		settings: make(map[string]*domain.Setting),
		nextID:   1,
	}
}

func (m *MockSettingRepository) GetAll(ctx context.Context) ([]*domain.Setting, error) {
	keys := make([]string, 0, len(m.settings))
	for key := range m.settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]*domain.Setting, 0, len(keys))
	for _, key := range keys {
		result = append(result, m.settings[key])
	}
	return result, nil
}

func (m *MockSettingRepository) GetByKey(ctx context.Context, key string) (*domain.Setting, error) {
	if s, exists := m.settings[key]; exists {
		return s, nil
	}
	return nil, domain.ErrSettingNotFound
}

func (m *MockSettingRepository) Upsert(ctx context.Context, setting *domain.Setting) error {
	if existing, exists := m.settings[setting.Key]; exists {
		existing.Value = setting.Value
		existing.UpdatedAt = setting.UpdatedAt
		return nil
	}
	setting.ID = m.nextID
	m.nextID++
	m.settings[setting.Key] = setting
	return nil
}

func newTestSettingsService(t *testing.T) (*SettingsService, *MockSettingRepository) {
	t.Helper()
	repo := NewMockSettingRepository()
	return NewSettingsService(repo, zerolog.Nop()), repo
}

func strPtr(s string) *string { return &s }

func TestSettingsService_Upsert(t *testing.T) {
	svc, repo := newTestSettingsService(t)
	ctx := context.Background()

	err := svc.Upsert(ctx, UpdateSettingInput{Key: "whatsapp_number", Value: strPtr("+201234567890")})
	require.NoError(t, err)

	setting, err := repo.GetByKey(ctx, "whatsapp_number")
	require.NoError(t, err)
	assert.Equal(t, "+201234567890", setting.Value)
	assert.Equal(t, "Setting for whatsapp_number", setting.Description)
}

func TestSettingsService_UpsertUpdatesValueOnly(t *testing.T) {
	svc, repo := newTestSettingsService(t)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, UpdateSettingInput{Key: "banner", Value: strPtr("old")}))

	setting, err := repo.GetByKey(ctx, "banner")
	require.NoError(t, err)
	setting.Description = "operator-edited description"

	require.NoError(t, svc.Upsert(ctx, UpdateSettingInput{Key: "banner", Value: strPtr("new")}))

	updated, err := repo.GetByKey(ctx, "banner")
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Value)
	assert.Equal(t, "operator-edited description", updated.Description,
		"upsert should not overwrite the description")
}

func TestSettingsService_UpsertValidation(t *testing.T) {
	svc, _ := newTestSettingsService(t)
	ctx := context.Background()

	err := svc.Upsert(ctx, UpdateSettingInput{Key: "", Value: strPtr("x")})
	assert.ErrorIs(t, err, ErrSettingKeyRequired)

	err = svc.Upsert(ctx, UpdateSettingInput{Key: "k", Value: nil})
	assert.ErrorIs(t, err, ErrSettingValueRequired)

	// An empty string is a legal value.
	err = svc.Upsert(ctx, UpdateSettingInput{Key: "k", Value: strPtr("")})
	assert.NoError(t, err)
}

func TestSettingsService_GetAll(t *testing.T) {
	svc, _ := newTestSettingsService(t)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, UpdateSettingInput{Key: "b_key", Value: strPtr("2")}))
	require.NoError(t, svc.Upsert(ctx, UpdateSettingInput{Key: "a_key", Value: strPtr("1")}))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a_key": "1", "b_key": "2"}, all)
}

func TestSettingsService_GetAllEmpty(t *testing.T) {
	svc, _ := newTestSettingsService(t)

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NotNil(t, all)
}
