package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/repository"
)

// adminRepository implements repository.AdminRepository for SQLite.
type adminRepository struct {
	db *DB
}

// NewAdminRepository creates a new SQLite admin repository.
func NewAdminRepository(db *DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

// Create creates a new admin.
func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admin (name, password_hash, is_staff, is_superuser, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		admin.Name,
		admin.PasswordHash,
		boolToInt(admin.IsStaff),
		boolToInt(admin.IsSuperuser),
		boolToInt(admin.IsActive),
		admin.CreatedAt.Format(time.RFC3339),
		admin.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: name already exists", domain.ErrAdminAlreadyExists)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	admin.ID = id

	return nil
}

// GetByID retrieves an admin by ID.
func (r *adminRepository) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	query := `
		SELECT id, name, password_hash, is_staff, is_superuser, is_active, created_at, updated_at
		FROM admin
		WHERE id = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByName retrieves an admin by login name.
func (r *adminRepository) GetByName(ctx context.Context, name string) (*domain.Admin, error) {
	query := `
		SELECT id, name, password_hash, is_staff, is_superuser, is_active, created_at, updated_at
		FROM admin
		WHERE name = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, name))
}

// Update updates an existing admin.
func (r *adminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	admin.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE admin
		SET name = ?, password_hash = ?, is_staff = ?, is_superuser = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		admin.Name,
		admin.PasswordHash,
		boolToInt(admin.IsStaff),
		boolToInt(admin.IsSuperuser),
		boolToInt(admin.IsActive),
		admin.UpdatedAt.Format(time.RFC3339),
		admin.ID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: name already exists", domain.ErrAdminAlreadyExists)
		}
		return fmt.Errorf("failed to update admin: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrAdminNotFound
	}

	return nil
}

// List returns all admins ordered by creation time.
func (r *adminRepository) List(ctx context.Context) ([]*domain.Admin, error) {
	query := `
		SELECT id, name, password_hash, is_staff, is_superuser, is_active, created_at, updated_at
		FROM admin
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var admins []*domain.Admin
	for rows.Next() {
		admin := &domain.Admin{}
		var isStaff, isSuperuser, isActive int
		var createdAt, updatedAt string

		err := rows.Scan(
			&admin.ID,
			&admin.Name,
			&admin.PasswordHash,
			&isStaff,
			&isSuperuser,
			&isActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}

		admin.IsStaff = isStaff != 0
		admin.IsSuperuser = isSuperuser != 0
		admin.IsActive = isActive != 0
		admin.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		admin.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

		admins = append(admins, admin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admins: %w", err)
	}

	return admins, nil
}

// ExistsByName checks if an admin with the given name exists.
func (r *adminRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check admin existence: %w", err)
	}
	return count > 0, nil
}

// rowScanner abstracts sql.Row for single-row scans.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *adminRepository) scanOne(row rowScanner) (*domain.Admin, error) {
	admin := &domain.Admin{}
	var isStaff, isSuperuser, isActive int
	var createdAt, updatedAt string

	err := row.Scan(
		&admin.ID,
		&admin.Name,
		&admin.PasswordHash,
		&isStaff,
		&isSuperuser,
		&isActive,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	admin.IsStaff = isStaff != 0
	admin.IsSuperuser = isSuperuser != 0
	admin.IsActive = isActive != 0
	admin.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	admin.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return admin, nil
}

// boolToInt converts a boolean to an integer (SQLite doesn't have native boolean).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ensure adminRepository implements repository.AdminRepository.
var _ repository.AdminRepository = (*adminRepository)(nil)
