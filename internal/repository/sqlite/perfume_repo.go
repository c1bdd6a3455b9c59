package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/repository"
)

// perfumeColumns is the column list shared by every perfume query.
const perfumeColumns = `id, name_en, name_ar, brand_en, brand_ar, category_en, category_ar,
	gender_en, gender_ar, description_en, description_ar, sizes, stock_status,
	image_url, is_new, is_bestseller, is_active, created_at, updated_at`

// perfumeRepository implements repository.PerfumeRepository for SQLite.
type perfumeRepository struct {
	db *DB
}

// NewPerfumeRepository creates a new SQLite perfume repository.
func NewPerfumeRepository(db *DB) repository.PerfumeRepository {
	return &perfumeRepository{db: db}
}

// Create creates a new perfume.
func (r *perfumeRepository) Create(ctx context.Context, perfume *domain.Perfume) error {
	sizes, err := marshalSizes(perfume.Sizes)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO perfumes (%s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, perfumeColumns)

	_, err = r.db.ExecContext(ctx, query,
		perfume.ID.String(),
		perfume.Name.En, perfume.Name.Ar,
		perfume.Brand.En, perfume.Brand.Ar,
		perfume.Category.En, perfume.Category.Ar,
		perfume.Gender.En, perfume.Gender.Ar,
		perfume.Description.En, perfume.Description.Ar,
		sizes,
		perfume.StockStatus,
		nullString(perfume.ImageURL),
		boolToInt(perfume.IsNew),
		boolToInt(perfume.IsBestseller),
		boolToInt(perfume.IsActive),
		perfume.CreatedAt.Format(time.RFC3339Nano),
		perfume.UpdatedAt.Format(time.RFC3339Nano),
	)

	if err != nil {
		return fmt.Errorf("failed to create perfume: %w", err)
	}

	return nil
}

// GetByID retrieves a perfume by ID regardless of active state.
func (r *perfumeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Perfume, error) {
	query := fmt.Sprintf(`SELECT %s FROM perfumes WHERE id = ?`, perfumeColumns)
	return scanPerfume(r.db.QueryRowContext(ctx, query, id.String()))
}

// GetActiveByID retrieves an active perfume by ID.
func (r *perfumeRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Perfume, error) {
	query := fmt.Sprintf(`SELECT %s FROM perfumes WHERE id = ? AND is_active = 1`, perfumeColumns)
	return scanPerfume(r.db.QueryRowContext(ctx, query, id.String()))
}

// List returns perfumes matching the filter, newest first.
func (r *perfumeRepository) List(ctx context.Context, filter repository.PerfumeFilter, opts repository.ListOptions) (*repository.ListResult[domain.Perfume], error) {
	where, args := buildFilter(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM perfumes` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count perfumes: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM perfumes%s
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, perfumeColumns, where)

	rows, err := r.db.QueryContext(ctx, query, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list perfumes: %w", err)
	}
	defer rows.Close()

	var perfumes []*domain.Perfume
	for rows.Next() {
		perfume, err := scanPerfume(rows)
		if err != nil {
			return nil, err
		}
		perfumes = append(perfumes, perfume)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating perfumes: %w", err)
	}

	return &repository.ListResult[domain.Perfume]{
		Items:  perfumes,
		Total:  total,
		Offset: opts.Offset,
		Limit:  opts.Limit,
	}, nil
}

// Update updates an existing perfume.
func (r *perfumeRepository) Update(ctx context.Context, perfume *domain.Perfume) error {
	sizes, err := marshalSizes(perfume.Sizes)
	if err != nil {
		return err
	}

	query := `
		UPDATE perfumes
		SET name_en = ?, name_ar = ?, brand_en = ?, brand_ar = ?,
			category_en = ?, category_ar = ?, gender_en = ?, gender_ar = ?,
			description_en = ?, description_ar = ?, sizes = ?, stock_status = ?,
			image_url = ?, is_new = ?, is_bestseller = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		perfume.Name.En, perfume.Name.Ar,
		perfume.Brand.En, perfume.Brand.Ar,
		perfume.Category.En, perfume.Category.Ar,
		perfume.Gender.En, perfume.Gender.Ar,
		perfume.Description.En, perfume.Description.Ar,
		sizes,
		perfume.StockStatus,
		nullString(perfume.ImageURL),
		boolToInt(perfume.IsNew),
		boolToInt(perfume.IsBestseller),
		boolToInt(perfume.IsActive),
		perfume.UpdatedAt.Format(time.RFC3339Nano),
		perfume.ID.String(),
	)

	if err != nil {
		return fmt.Errorf("failed to update perfume: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrPerfumeNotFound
	}

	return nil
}

// Delete hard-deletes a perfume by ID.
func (r *perfumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM perfumes WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete perfume: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrPerfumeNotFound
	}

	return nil
}

// DistinctBrands returns distinct non-empty brand values over active records.
func (r *perfumeRepository) DistinctBrands(ctx context.Context, language string) ([]string, error) {
	return r.distinctValues(ctx, bilingualColumn("brand", language))
}

// DistinctCategories returns distinct non-empty category values over active records.
func (r *perfumeRepository) DistinctCategories(ctx context.Context, language string) ([]string, error) {
	return r.distinctValues(ctx, bilingualColumn("category", language))
}

func (r *perfumeRepository) distinctValues(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %s FROM perfumes
		WHERE is_active = 1 AND %s <> ''
		ORDER BY %s ASC
	`, column, column, column)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct values: %w", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan distinct value: %w", err)
		}
		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distinct values: %w", err)
	}

	return values, nil
}

// buildFilter translates a PerfumeFilter into a WHERE clause and arguments.
// Column selection follows the filter language; all conditions are ANDed.
func buildFilter(filter repository.PerfumeFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filter.ActiveOnly {
		conds = append(conds, "is_active = 1")
	}
	if filter.SearchTerm != "" {
		conds = append(conds, fmt.Sprintf("instr(lower(%s), lower(?)) > 0", bilingualColumn("name", filter.Language)))
		args = append(args, filter.SearchTerm)
	}
	if filter.Brand != "" {
		conds = append(conds, bilingualColumn("brand", filter.Language)+" = ?")
		args = append(args, filter.Brand)
	}
	if filter.Category != "" {
		conds = append(conds, bilingualColumn("category", filter.Language)+" = ?")
		args = append(args, filter.Category)
	}
	if filter.Gender != "" {
		conds = append(conds, bilingualColumn("gender", filter.Language)+" = ?")
		args = append(args, filter.Gender)
	}
	if filter.StockStatus != "" {
		conds = append(conds, "lower(stock_status) = lower(?)")
		args = append(args, filter.StockStatus)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// bilingualColumn returns the Arabic column when language is "ar",
// the English column otherwise.
func bilingualColumn(field, language string) string {
	if language == "ar" {
		return field + "_ar"
	}
	return field + "_en"
}

// scanPerfume scans one perfume row from either a *sql.Row or *sql.Rows.
func scanPerfume(row rowScanner) (*domain.Perfume, error) {
	perfume := &domain.Perfume{}
	var id, sizes, createdAt, updatedAt string
	var imageURL sql.NullString
	var isNew, isBestseller, isActive int

	err := row.Scan(
		&id,
		&perfume.Name.En, &perfume.Name.Ar,
		&perfume.Brand.En, &perfume.Brand.Ar,
		&perfume.Category.En, &perfume.Category.Ar,
		&perfume.Gender.En, &perfume.Gender.Ar,
		&perfume.Description.En, &perfume.Description.Ar,
		&sizes,
		&perfume.StockStatus,
		&imageURL,
		&isNew,
		&isBestseller,
		&isActive,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrPerfumeNotFound
		}
		return nil, fmt.Errorf("failed to scan perfume: %w", err)
	}

	perfume.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid perfume id %q: %w", id, err)
	}

	perfume.Sizes, err = unmarshalSizes(sizes)
	if err != nil {
		return nil, err
	}

	if imageURL.Valid {
		perfume.ImageURL = &imageURL.String
	}
	perfume.IsNew = isNew != 0
	perfume.IsBestseller = isBestseller != 0
	perfume.IsActive = isActive != 0
	perfume.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	perfume.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

	return perfume, nil
}

// marshalSizes encodes size tiers as the JSON column value.
func marshalSizes(sizes []domain.SizeTier) (string, error) {
	if sizes == nil {
		sizes = []domain.SizeTier{}
	}
	data, err := json.Marshal(sizes)
	if err != nil {
		return "", fmt.Errorf("failed to marshal sizes: %w", err)
	}
	return string(data), nil
}

// unmarshalSizes decodes the JSON column value. The result is never nil.
func unmarshalSizes(data string) ([]domain.SizeTier, error) {
	sizes := []domain.SizeTier{}
	if data == "" {
		return sizes, nil
	}
	if err := json.Unmarshal([]byte(data), &sizes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sizes: %w", err)
	}
	if sizes == nil {
		sizes = []domain.SizeTier{}
	}
	return sizes, nil
}

// nullString converts an optional string to a driver-friendly value.
func nullString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// Ensure perfumeRepository implements repository.PerfumeRepository.
var _ repository.PerfumeRepository = (*perfumeRepository)(nil)
