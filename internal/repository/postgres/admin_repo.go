package postgres

import (
	"context"
	"fmt"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/repository"
)

// adminRepository implements repository.AdminRepository for PostgreSQL.
type adminRepository struct {
	db *DB
}

// NewAdminRepository creates a new PostgreSQL admin repository.
func NewAdminRepository(db *DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

// Create creates a new admin account.
func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admin (name, password_hash, is_staff, is_superuser, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		admin.Name,
		admin.PasswordHash,
		admin.IsStaff,
		admin.IsSuperuser,
		admin.IsActive,
		admin.CreatedAt,
		admin.UpdatedAt,
	).Scan(&admin.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: name %q", domain.ErrAdminAlreadyExists, admin.Name)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

// GetByID retrieves an admin by ID.
func (r *adminRepository) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	query := `
		SELECT id, name, password_hash, is_staff, is_superuser, is_active, created_at, updated_at
		FROM admin
		WHERE id = $1
	`
	return r.scanAdmin(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByName retrieves an admin by name.
func (r *adminRepository) GetByName(ctx context.Context, name string) (*domain.Admin, error) {
	query := `
		SELECT id, name, password_hash, is_staff, is_superuser, is_active, created_at, updated_at
		FROM admin
		WHERE name = $1
	`
	return r.scanAdmin(r.db.Pool.QueryRow(ctx, query, name))
}

// Update updates an existing admin.
func (r *adminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	query := `
		UPDATE admin
		SET name = $1, password_hash = $2, is_staff = $3, is_superuser = $4,
			is_active = $5, updated_at = $6
		WHERE id = $7
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		admin.Name,
		admin.PasswordHash,
		admin.IsStaff,
		admin.IsSuperuser,
		admin.IsActive,
		admin.UpdatedAt,
		admin.ID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: name %q", domain.ErrAdminAlreadyExists, admin.Name)
		}
		return fmt.Errorf("failed to update admin: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAdminNotFound
	}

	return nil
}

// List returns all admin accounts ordered by name.
func (r *adminRepository) List(ctx context.Context) ([]*domain.Admin, error) {
	query := `
		SELECT id, name, password_hash, is_staff, is_superuser, is_active, created_at, updated_at
		FROM admin
		ORDER BY name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var admins []*domain.Admin
	for rows.Next() {
		admin := &domain.Admin{}
		err := rows.Scan(
			&admin.ID,
			&admin.Name,
			&admin.PasswordHash,
			&admin.IsStaff,
			&admin.IsSuperuser,
			&admin.IsActive,
			&admin.CreatedAt,
			&admin.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, admin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admins: %w", err)
	}

	return admins, nil
}

// ExistsByName checks whether an admin with the given name exists.
func (r *adminRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM admin WHERE name = $1)`

	if err := r.db.Pool.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check admin existence: %w", err)
	}

	return exists, nil
}

type pgRowScanner interface {
	Scan(dest ...any) error
}

func (r *adminRepository) scanAdmin(row pgRowScanner) (*domain.Admin, error) {
	admin := &domain.Admin{}

	err := row.Scan(
		&admin.ID,
		&admin.Name,
		&admin.PasswordHash,
		&admin.IsStaff,
		&admin.IsSuperuser,
		&admin.IsActive,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to scan admin: %w", err)
	}

	return admin, nil
}

// Ensure adminRepository implements repository.AdminRepository.
var _ repository.AdminRepository = (*adminRepository)(nil)
