package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/repository"
)

// tokenRepository implements repository.TokenRepository for SQLite.
type tokenRepository struct {
	db *DB
}

// NewTokenRepository creates a new SQLite token repository.
func NewTokenRepository(db *DB) repository.TokenRepository {
	return &tokenRepository{db: db}
}

// Create creates a new token.
func (r *tokenRepository) Create(ctx context.Context, token *domain.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (key, admin_id, created_at)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		token.Key,
		token.AdminID,
		token.CreatedAt.Format(time.RFC3339),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: admin already holds a token", domain.ErrTokenAlreadyExists)
		}
		return fmt.Errorf("failed to create token: %w", err)
	}

	return nil
}

// GetByKey retrieves a token by its opaque key.
func (r *tokenRepository) GetByKey(ctx context.Context, key string) (*domain.AuthToken, error) {
	query := `SELECT key, admin_id, created_at FROM auth_tokens WHERE key = ?`

	token := &domain.AuthToken{}
	var createdAt string

	err := r.db.QueryRowContext(ctx, query, key).Scan(&token.Key, &token.AdminID, &createdAt)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token by key: %w", err)
	}

	token.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return token, nil
}

// GetByAdminID retrieves the token held by an admin, if any.
func (r *tokenRepository) GetByAdminID(ctx context.Context, adminID int64) (*domain.AuthToken, error) {
	query := `SELECT key, admin_id, created_at FROM auth_tokens WHERE admin_id = ?`

	token := &domain.AuthToken{}
	var createdAt string

	err := r.db.QueryRowContext(ctx, query, adminID).Scan(&token.Key, &token.AdminID, &createdAt)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token by admin: %w", err)
	}

	token.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return token, nil
}

// DeleteByAdminID deletes every token held by an admin.
func (r *tokenRepository) DeleteByAdminID(ctx context.Context, adminID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE admin_id = ?`, adminID)
	if err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}

// Ensure tokenRepository implements repository.TokenRepository.
var _ repository.TokenRepository = (*tokenRepository)(nil)
