package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/repository"
)

// perfumeColumns is the column list shared by every perfume query.
const perfumeColumns = `id, name_en, name_ar, brand_en, brand_ar, category_en, category_ar,
	gender_en, gender_ar, description_en, description_ar, sizes, stock_status,
	image_url, is_new, is_bestseller, is_active, created_at, updated_at`

// perfumeRepository implements repository.PerfumeRepository for PostgreSQL.
type perfumeRepository struct {
	db *DB
}

// NewPerfumeRepository creates a new PostgreSQL perfume repository.
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`, perfumeColumns)

	_, err = r.db.Pool.Exec(ctx, query,
		perfume.ID,
		perfume.Name.En, perfume.Name.Ar,
		perfume.Brand.En, perfume.Brand.Ar,
		perfume.Category.En, perfume.Category.Ar,
		perfume.Gender.En, perfume.Gender.Ar,
		perfume.Description.En, perfume.Description.Ar,
		sizes,
		perfume.StockStatus,
		perfume.ImageURL,
		perfume.IsNew,
		perfume.IsBestseller,
		perfume.IsActive,
		perfume.CreatedAt,
		perfume.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create perfume: %w", err)
	}

	return nil
}

// GetByID retrieves a perfume by ID regardless of active state.
func (r *perfumeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Perfume, error) {
	query := fmt.Sprintf(`SELECT %s FROM perfumes WHERE id = $1`, perfumeColumns)
	return scanPerfume(r.db.Pool.QueryRow(ctx, query, id))
}

// GetActiveByID retrieves an active perfume by ID.
func (r *perfumeRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Perfume, error) {
	query := fmt.Sprintf(`SELECT %s FROM perfumes WHERE id = $1 AND is_active = true`, perfumeColumns)
	return scanPerfume(r.db.Pool.QueryRow(ctx, query, id))
}

// List returns perfumes matching the filter, newest first.
func (r *perfumeRepository) List(ctx context.Context, filter repository.PerfumeFilter, opts repository.ListOptions) (*repository.ListResult[domain.Perfume], error) {
	where, args := buildFilter(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM perfumes` + where
	if err := r.db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count perfumes: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM perfumes%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, perfumeColumns, where, len(args)+1, len(args)+2)

	rows, err := r.db.Pool.Query(ctx, query, append(args, opts.Limit, opts.Offset)...)
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
		SET name_en = $1, name_ar = $2, brand_en = $3, brand_ar = $4,
			category_en = $5, category_ar = $6, gender_en = $7, gender_ar = $8,
			description_en = $9, description_ar = $10, sizes = $11, stock_status = $12,
			image_url = $13, is_new = $14, is_bestseller = $15, is_active = $16, updated_at = $17
		WHERE id = $18
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		perfume.Name.En, perfume.Name.Ar,
		perfume.Brand.En, perfume.Brand.Ar,
		perfume.Category.En, perfume.Category.Ar,
		perfume.Gender.En, perfume.Gender.Ar,
		perfume.Description.En, perfume.Description.Ar,
		sizes,
		perfume.StockStatus,
		perfume.ImageURL,
		perfume.IsNew,
		perfume.IsBestseller,
		perfume.IsActive,
		perfume.UpdatedAt,
		perfume.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update perfume: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPerfumeNotFound
	}

	return nil
}

// Delete hard-deletes a perfume by ID.
func (r *perfumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM perfumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete perfume: %w", err)
	}

	if tag.RowsAffected() == 0 {
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
		WHERE is_active = true AND %s <> ''
		ORDER BY %s ASC
	`, column, column, column)

	rows, err := r.db.Pool.Query(ctx, query)
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
func buildFilter(filter repository.PerfumeFilter) (string, []any) {
	var conds []string
	var args []any

	arg := func(v any) int {
		args = append(args, v)
		return len(args)
	}

	if filter.ActiveOnly {
		conds = append(conds, "is_active = true")
	}
	if filter.SearchTerm != "" {
		// The term is matched as a literal substring, so LIKE wildcards
		// in user input must be escaped.
		conds = append(conds, fmt.Sprintf(`%s ILIKE '%%' || $%d || '%%' ESCAPE '\'`,
			bilingualColumn("name", filter.Language), arg(escapeLike(filter.SearchTerm))))
	}
	if filter.Brand != "" {
		conds = append(conds, fmt.Sprintf("%s = $%d", bilingualColumn("brand", filter.Language), arg(filter.Brand)))
	}
	if filter.Category != "" {
		conds = append(conds, fmt.Sprintf("%s = $%d", bilingualColumn("category", filter.Language), arg(filter.Category)))
	}
	if filter.Gender != "" {
		conds = append(conds, fmt.Sprintf("%s = $%d", bilingualColumn("gender", filter.Language), arg(filter.Gender)))
	}
	if filter.StockStatus != "" {
		conds = append(conds, fmt.Sprintf("lower(stock_status) = lower($%d)", arg(filter.StockStatus)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// likeEscaper neutralizes LIKE pattern metacharacters in user input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE wildcards so the term matches literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// bilingualColumn returns the Arabic column when language is "ar",
// the English column otherwise.
func bilingualColumn(field, language string) string {
	if language == "ar" {
		return field + "_ar"
	}
	return field + "_en"
}

// scanPerfume scans one perfume row.
func scanPerfume(row pgRowScanner) (*domain.Perfume, error) {
	perfume := &domain.Perfume{}
	var sizes []byte

	err := row.Scan(
		&perfume.ID,
		&perfume.Name.En, &perfume.Name.Ar,
		&perfume.Brand.En, &perfume.Brand.Ar,
		&perfume.Category.En, &perfume.Category.Ar,
		&perfume.Gender.En, &perfume.Gender.Ar,
		&perfume.Description.En, &perfume.Description.Ar,
		&sizes,
		&perfume.StockStatus,
		&perfume.ImageURL,
		&perfume.IsNew,
		&perfume.IsBestseller,
		&perfume.IsActive,
		&perfume.CreatedAt,
		&perfume.UpdatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrPerfumeNotFound
		}
		return nil, fmt.Errorf("failed to scan perfume: %w", err)
	}

	perfume.Sizes = []domain.SizeTier{}
	if len(sizes) > 0 {
		if err := json.Unmarshal(sizes, &perfume.Sizes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sizes: %w", err)
		}
	}
	if perfume.Sizes == nil {
		perfume.Sizes = []domain.SizeTier{}
	}

	return perfume, nil
}

// marshalSizes encodes size tiers as the JSONB column value.
func marshalSizes(sizes []domain.SizeTier) ([]byte, error) {
	if sizes == nil {
		sizes = []domain.SizeTier{}
	}
	data, err := json.Marshal(sizes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sizes: %w", err)
	}
	return data, nil
}

// Ensure perfumeRepository implements repository.PerfumeRepository.
var _ repository.PerfumeRepository = (*perfumeRepository)(nil)
