package postgres

import (
	"context"
	"fmt"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/repository"
)

// tokenRepository implements repository.TokenRepository for PostgreSQL.
type tokenRepository struct {
	db *DB
}

// NewTokenRepository creates a new PostgreSQL token repository.
func NewTokenRepository(db *DB) repository.TokenRepository {
	return &tokenRepository{db: db}
}

// Create creates a new token.
func (r *tokenRepository) Create(ctx context.Context, token *domain.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (key, admin_id, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Pool.Exec(ctx, query, token.Key, token.AdminID, token.CreatedAt)
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
	query := `SELECT key, admin_id, created_at FROM auth_tokens WHERE key = $1`

	token := &domain.AuthToken{}
	err := r.db.Pool.QueryRow(ctx, query, key).Scan(&token.Key, &token.AdminID, &token.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token by key: %w", err)
	}

	return token, nil
}

// GetByAdminID retrieves the token held by an admin, if any.
func (r *tokenRepository) GetByAdminID(ctx context.Context, adminID int64) (*domain.AuthToken, error) {
	query := `SELECT key, admin_id, created_at FROM auth_tokens WHERE admin_id = $1`

	token := &domain.AuthToken{}
	err := r.db.Pool.QueryRow(ctx, query, adminID).Scan(&token.Key, &token.AdminID, &token.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token by admin: %w", err)
	}

	return token, nil
}

// DeleteByAdminID deletes every token held by an admin.
func (r *tokenRepository) DeleteByAdminID(ctx context.Context, adminID int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM auth_tokens WHERE admin_id = $1`, adminID)
	if err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}

// Ensure tokenRepository implements repository.TokenRepository.
var _ repository.TokenRepository = (*tokenRepository)(nil)
