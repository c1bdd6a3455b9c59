package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/repository"
)

// CatalogService handles perfume catalog queries and administration.
type CatalogService struct {
	perfumeRepo    repository.PerfumeRepository
	publicPageSize int
	adminPageSize  int
	logger         zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(perfumeRepo repository.PerfumeRepository, publicPageSize, adminPageSize int, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		perfumeRepo:    perfumeRepo,
		publicPageSize: publicPageSize,
		adminPageSize:  adminPageSize,
		logger:         logger.With().Str("service", "catalog").Logger(),
	}
}

// ListParams holds the optional query parameters of a catalog listing.
// All filters combine with AND; zero values mean "not filtered".
type ListParams struct {
	Page  int
	Limit int

	// Language selects which column set the text filters apply to:
	// "ar" for Arabic, anything else for English.
	Language string

	Search      string
	Brand       string
	Category    string
	Gender      string
	StockStatus string
}

// PerfumePage is one page of catalog results with pagination metadata.
type PerfumePage struct {
	Items       []*domain.Perfume
	CurrentPage int
	TotalPages  int
	TotalItems  int64
	HasNext     bool
	HasPrev     bool
}

// ListPublic returns a page of active perfumes for the public surface.
func (s *CatalogService) ListPublic(ctx context.Context, params ListParams) (*PerfumePage, error) {
	return s.list(ctx, params, true, s.publicPageSize)
}

// ListAdmin returns a page of all perfumes, active or not.
func (s *CatalogService) ListAdmin(ctx context.Context, params ListParams) (*PerfumePage, error) {
	return s.list(ctx, params, false, s.adminPageSize)
}

func (s *CatalogService) list(ctx context.Context, params ListParams, activeOnly bool, defaultLimit int) (*PerfumePage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	filter := repository.PerfumeFilter{
		ActiveOnly: activeOnly,
		Language:   normalizeLanguage(params.Language),
		SearchTerm: params.Search,
		Brand:      params.Brand,
		Category:   params.Category,
		Gender:     params.Gender,
	}
	if params.StockStatus != "" {
		filter.StockStatus = domain.ResolveStockStatus(params.StockStatus)
	}

	result, err := s.perfumeRepo.List(ctx, filter, repository.ListOptions{
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list perfumes")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	totalPages := int((result.Total + int64(limit) - 1) / int64(limit))

	items := result.Items
	if items == nil {
		items = []*domain.Perfume{}
	}

	return &PerfumePage{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  result.Total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}, nil
}

// GetPublic retrieves an active perfume by ID for the public surface.
// A missing or inactive perfume yields (nil, nil): the public detail
// endpoint answers those with an empty body rather than an error.
func (s *CatalogService) GetPublic(ctx context.Context, id string) (*domain.Perfume, error) {
	perfumeID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidPerfumeID
	}

	perfume, err := s.perfumeRepo.GetActiveByID(ctx, perfumeID)
	if err != nil {
		if errors.Is(err, domain.ErrPerfumeNotFound) {
			return nil, nil
		}
		s.logger.Error().Err(err).Str("perfume_id", id).Msg("failed to get perfume")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return perfume, nil
}

// GetAdmin retrieves any perfume by ID, active or not.
func (s *CatalogService) GetAdmin(ctx context.Context, id string) (*domain.Perfume, error) {
	perfumeID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidPerfumeID
	}

	perfume, err := s.perfumeRepo.GetByID(ctx, perfumeID)
	if err != nil {
		if errors.Is(err, domain.ErrPerfumeNotFound) {
			return nil, ErrPerfumeNotFound
		}
		s.logger.Error().Err(err).Str("perfume_id", id).Msg("failed to get perfume")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return perfume, nil
}

// PerfumeInput contains the full field set for a create or full update.
type PerfumeInput struct {
	Name        domain.Bilingual
	Brand       domain.Bilingual
	Category    domain.Bilingual
	Gender      domain.Bilingual
	Description domain.Bilingual

	// Sizes must be present; an empty slice is legal, nil is not.
	Sizes []domain.SizeTier

	StockStatus string
	ImageURL    *string

	IsNew        bool
	IsBestseller bool

	// IsActive defaults to true when nil.
	IsActive *bool
}

// validate checks the required field set shared by create and update.
func (input PerfumeInput) validate() error {
	required := []struct {
		field string
		value string
	}{
		{"nameEn", input.Name.En},
		{"nameAr", input.Name.Ar},
		{"brandEn", input.Brand.En},
		{"brandAr", input.Brand.Ar},
		{"categoryEn", input.Category.En},
		{"categoryAr", input.Category.Ar},
		{"genderEn", input.Gender.En},
		{"genderAr", input.Gender.Ar},
		{"descriptionEn", input.Description.En},
		{"descriptionAr", input.Description.Ar},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, r.field)
		}
	}

	if input.Sizes == nil {
		return fmt.Errorf("%w: sizes is required", ErrValidation)
	}
	for i, size := range input.Sizes {
		if size.Size == "" {
			return fmt.Errorf("%w: sizes[%d].size is required", ErrValidation, i)
		}
		if size.PriceEGP < 0 {
			return fmt.Errorf("%w: sizes[%d].priceEGP must not be negative", ErrValidation, i)
		}
	}

	if input.StockStatus == "" {
		return fmt.Errorf("%w: stockStatus is required", ErrValidation)
	}

	return nil
}

// apply copies the input onto a perfume record.
func (input PerfumeInput) apply(perfume *domain.Perfume) {
	perfume.Name = input.Name
	perfume.Brand = input.Brand
	perfume.Category = input.Category
	perfume.Gender = input.Gender
	perfume.Description = input.Description
	perfume.Sizes = input.Sizes
	perfume.StockStatus = input.StockStatus
	perfume.ImageURL = input.ImageURL
	perfume.IsNew = input.IsNew
	perfume.IsBestseller = input.IsBestseller
	if input.IsActive != nil {
		perfume.IsActive = *input.IsActive
	}
}

// Create adds a perfume to the catalog.
func (s *CatalogService) Create(ctx context.Context, input PerfumeInput) (*domain.Perfume, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	perfume := domain.NewPerfume()
	input.apply(perfume)

	if err := s.perfumeRepo.Create(ctx, perfume); err != nil {
		s.logger.Error().Err(err).Msg("failed to create perfume")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("perfume_id", perfume.ID.String()).
		Str("name", perfume.Name.En).
		Msg("perfume created")

	return perfume, nil
}

// Update replaces every field of an existing perfume.
func (s *CatalogService) Update(ctx context.Context, id string, input PerfumeInput) (*domain.Perfume, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	perfume, err := s.GetAdmin(ctx, id)
	if err != nil {
		return nil, err
	}

	input.apply(perfume)
	perfume.Touch()

	if err := s.perfumeRepo.Update(ctx, perfume); err != nil {
		if errors.Is(err, domain.ErrPerfumeNotFound) {
			return nil, ErrPerfumeNotFound
		}
		s.logger.Error().Err(err).Str("perfume_id", id).Msg("failed to update perfume")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("perfume_id", id).Msg("perfume updated")
	return perfume, nil
}

// PerfumePatch is a typed merge-patch: nil fields are left unchanged.
type PerfumePatch struct {
	NameEn        *string
	NameAr        *string
	BrandEn       *string
	BrandAr       *string
	CategoryEn    *string
	CategoryAr    *string
	GenderEn      *string
	GenderAr      *string
	DescriptionEn *string
	DescriptionAr *string

	Sizes       []domain.SizeTier
	StockStatus *string

	// ImageURL sets a new image location; ClearImageURL removes it.
	ImageURL      *string
	ClearImageURL bool

	IsNew        *bool
	IsBestseller *bool
	IsActive     *bool
}

// validate rejects patch fields that would violate record invariants.
func (patch PerfumePatch) validate() error {
	nonEmpty := []struct {
		field string
		value *string
	}{
		{"nameEn", patch.NameEn},
		{"nameAr", patch.NameAr},
		{"brandEn", patch.BrandEn},
		{"brandAr", patch.BrandAr},
		{"categoryEn", patch.CategoryEn},
		{"categoryAr", patch.CategoryAr},
		{"genderEn", patch.GenderEn},
		{"genderAr", patch.GenderAr},
		{"descriptionEn", patch.DescriptionEn},
		{"descriptionAr", patch.DescriptionAr},
		{"stockStatus", patch.StockStatus},
	}
	for _, f := range nonEmpty {
		if f.value != nil && *f.value == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrValidation, f.field)
		}
	}

	for i, size := range patch.Sizes {
		if size.Size == "" {
			return fmt.Errorf("%w: sizes[%d].size is required", ErrValidation, i)
		}
		if size.PriceEGP < 0 {
			return fmt.Errorf("%w: sizes[%d].priceEGP must not be negative", ErrValidation, i)
		}
	}

	return nil
}

// apply merges the patch onto a perfume record.
func (patch PerfumePatch) apply(perfume *domain.Perfume) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&perfume.Name.En, patch.NameEn)
	setString(&perfume.Name.Ar, patch.NameAr)
	setString(&perfume.Brand.En, patch.BrandEn)
	setString(&perfume.Brand.Ar, patch.BrandAr)
	setString(&perfume.Category.En, patch.CategoryEn)
	setString(&perfume.Category.Ar, patch.CategoryAr)
	setString(&perfume.Gender.En, patch.GenderEn)
	setString(&perfume.Gender.Ar, patch.GenderAr)
	setString(&perfume.Description.En, patch.DescriptionEn)
	setString(&perfume.Description.Ar, patch.DescriptionAr)
	setString(&perfume.StockStatus, patch.StockStatus)

	if patch.Sizes != nil {
		perfume.Sizes = patch.Sizes
	}
	if patch.ClearImageURL {
		perfume.ImageURL = nil
	} else if patch.ImageURL != nil {
		perfume.ImageURL = patch.ImageURL
	}
	if patch.IsNew != nil {
		perfume.IsNew = *patch.IsNew
	}
	if patch.IsBestseller != nil {
		perfume.IsBestseller = *patch.IsBestseller
	}
	if patch.IsActive != nil {
		perfume.IsActive = *patch.IsActive
	}
}

// Patch partially updates a perfume; absent fields are untouched.
func (s *CatalogService) Patch(ctx context.Context, id string, patch PerfumePatch) (*domain.Perfume, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}

	perfume, err := s.GetAdmin(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.apply(perfume)
	perfume.Touch()

	if err := s.perfumeRepo.Update(ctx, perfume); err != nil {
		if errors.Is(err, domain.ErrPerfumeNotFound) {
			return nil, ErrPerfumeNotFound
		}
		s.logger.Error().Err(err).Str("perfume_id", id).Msg("failed to patch perfume")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("perfume_id", id).Msg("perfume patched")
	return perfume, nil
}

// Delete removes a perfume from the catalog. The delete is hard and
// unconditional: active records are deleted like any other.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	perfumeID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidPerfumeID
	}

	if err := s.perfumeRepo.Delete(ctx, perfumeID); err != nil {
		if errors.Is(err, domain.ErrPerfumeNotFound) {
			return ErrPerfumeNotFound
		}
		s.logger.Error().Err(err).Str("perfume_id", id).Msg("failed to delete perfume")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("perfume_id", id).Msg("perfume deleted")
	return nil
}

// Brands returns the distinct brand values of active perfumes in the
// requested language, sorted ascending.
func (s *CatalogService) Brands(ctx context.Context, language string) ([]string, error) {
	brands, err := s.perfumeRepo.DistinctBrands(ctx, normalizeLanguage(language))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list brands")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return brands, nil
}

// Categories returns the distinct category values of active perfumes in
// the requested language, sorted ascending.
func (s *CatalogService) Categories(ctx context.Context, language string) ([]string, error) {
	categories, err := s.perfumeRepo.DistinctCategories(ctx, normalizeLanguage(language))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return categories, nil
}

// normalizeLanguage collapses the language parameter to "ar" or "en".
func normalizeLanguage(language string) string {
	if language == "ar" {
		return "ar"
	}
	return "en"
}
