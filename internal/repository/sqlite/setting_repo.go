package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/repository"
)

// settingRepository implements repository.SettingRepository for SQLite.
type settingRepository struct {
	db *DB
}

// NewSettingRepository creates a new SQLite setting repository.
func NewSettingRepository(db *DB) repository.SettingRepository {
	return &settingRepository{db: db}
}

// GetAll returns every setting.
func (r *settingRepository) GetAll(ctx context.Context) ([]*domain.Setting, error) {
	query := `
		SELECT id, key, value, description, created_at, updated_at
		FROM settings
		ORDER BY key ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var settings []*domain.Setting
	for rows.Next() {
		setting := &domain.Setting{}
		var createdAt, updatedAt string

		err := rows.Scan(
			&setting.ID,
			&setting.Key,
			&setting.Value,
			&setting.Description,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}

		setting.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		setting.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

		settings = append(settings, setting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings: %w", err)
	}

	return settings, nil
}

// GetByKey retrieves a setting by key.
func (r *settingRepository) GetByKey(ctx context.Context, key string) (*domain.Setting, error) {
	query := `
		SELECT id, key, value, description, created_at, updated_at
		FROM settings
		WHERE key = ?
	`

	setting := &domain.Setting{}
	var createdAt, updatedAt string

	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&setting.ID,
		&setting.Key,
		&setting.Value,
		&setting.Description,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting by key: %w", err)
	}

	setting.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	setting.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return setting, nil
}

// Upsert creates the setting if absent, else updates its value.
// The description is only written on first insert.
func (r *settingRepository) Upsert(ctx context.Context, setting *domain.Setting) error {
	now := time.Now().UTC()
	setting.UpdatedAt = now

	query := `
		INSERT INTO settings (key, value, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		setting.Key,
		setting.Value,
		setting.Description,
		setting.CreatedAt.Format(time.RFC3339),
		setting.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	return nil
}

// Ensure settingRepository implements repository.SettingRepository.
var _ repository.SettingRepository = (*settingRepository)(nil)
