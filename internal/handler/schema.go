package handler

import (
	"encoding/json"
	"time"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/service"
)

// The wire schema keeps the original storefront's flat bilingual field
// layout (nameEn/nameAr and friends); the structured Bilingual values
// exist only inside the process.

// perfumeResponse is the wire shape of a perfume record.
type perfumeResponse struct {
	ID            string            `json:"id"`
	NameEn        string            `json:"nameEn"`
	NameAr        string            `json:"nameAr"`
	BrandEn       string            `json:"brandEn"`
	BrandAr       string            `json:"brandAr"`
	CategoryEn    string            `json:"categoryEn"`
	CategoryAr    string            `json:"categoryAr"`
	GenderEn      string            `json:"genderEn"`
	GenderAr      string            `json:"genderAr"`
	DescriptionEn string            `json:"descriptionEn"`
	DescriptionAr string            `json:"descriptionAr"`
	Sizes         []domain.SizeTier `json:"sizes"`
	StockStatus   string            `json:"stockStatus"`
	ImageURL      *string           `json:"imageUrl"`
	IsNew         bool              `json:"isNew"`
	IsBestseller  bool              `json:"isBestseller"`
	IsActive      bool              `json:"isActive"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func toPerfumeResponse(p *domain.Perfume) perfumeResponse {
	sizes := p.Sizes
	if sizes == nil {
		sizes = []domain.SizeTier{}
	}
	return perfumeResponse{
		ID:            p.ID.String(),
		NameEn:        p.Name.En,
		NameAr:        p.Name.Ar,
		BrandEn:       p.Brand.En,
		BrandAr:       p.Brand.Ar,
		CategoryEn:    p.Category.En,
		CategoryAr:    p.Category.Ar,
		GenderEn:      p.Gender.En,
		GenderAr:      p.Gender.Ar,
		DescriptionEn: p.Description.En,
		DescriptionAr: p.Description.Ar,
		Sizes:         sizes,
		StockStatus:   p.StockStatus,
		ImageURL:      p.ImageURL,
		IsNew:         p.IsNew,
		IsBestseller:  p.IsBestseller,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toPerfumeResponses(perfumes []*domain.Perfume) []perfumeResponse {
	result := make([]perfumeResponse, 0, len(perfumes))
	for _, p := range perfumes {
		result = append(result, toPerfumeResponse(p))
	}
	return result
}

// paginationResponse is the wire shape of list pagination metadata.
type paginationResponse struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// perfumeListResponse is the list envelope.
type perfumeListResponse struct {
	Perfumes   []perfumeResponse  `json:"perfumes"`
	Pagination paginationResponse `json:"pagination"`
}

func toPerfumeListResponse(page *service.PerfumePage) perfumeListResponse {
	return perfumeListResponse{
		Perfumes: toPerfumeResponses(page.Items),
		Pagination: paginationResponse{
			CurrentPage: page.CurrentPage,
			TotalPages:  page.TotalPages,
			TotalItems:  page.TotalItems,
			HasNext:     page.HasNext,
			HasPrev:     page.HasPrev,
		},
	}
}

// loginRequest is the login body. Name is optional.
type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// loginResponse is the successful login body.
type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	Admin   adminSummary `json:"admin"`
}

type adminSummary struct {
	Name string `json:"name"`
}

// updatePasswordRequest is the password rotation body.
type updatePasswordRequest struct {
	Password string `json:"password"`
}

// settingRequest is the settings upsert body. Value is a pointer so an
// absent value can be told apart from an empty string.
type settingRequest struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// imageUploadResponse is the image upload result body.
type imageUploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// perfumeWriteRequest is the create / full-update body.
type perfumeWriteRequest struct {
	NameEn        string            `json:"nameEn"`
	NameAr        string            `json:"nameAr"`
	BrandEn       string            `json:"brandEn"`
	BrandAr       string            `json:"brandAr"`
	CategoryEn    string            `json:"categoryEn"`
	CategoryAr    string            `json:"categoryAr"`
	GenderEn      string            `json:"genderEn"`
	GenderAr      string            `json:"genderAr"`
	DescriptionEn string            `json:"descriptionEn"`
	DescriptionAr string            `json:"descriptionAr"`
	Sizes         []domain.SizeTier `json:"sizes"`
	StockStatus   string            `json:"stockStatus"`
	ImageURL      *string           `json:"imageUrl"`
	IsNew         bool              `json:"isNew"`
	IsBestseller  bool              `json:"isBestseller"`
	IsActive      *bool             `json:"isActive"`
}

func (req perfumeWriteRequest) toInput() service.PerfumeInput {
	return service.PerfumeInput{
		Name:         domain.Bilingual{En: req.NameEn, Ar: req.NameAr},
		Brand:        domain.Bilingual{En: req.BrandEn, Ar: req.BrandAr},
		Category:     domain.Bilingual{En: req.CategoryEn, Ar: req.CategoryAr},
		Gender:       domain.Bilingual{En: req.GenderEn, Ar: req.GenderAr},
		Description:  domain.Bilingual{En: req.DescriptionEn, Ar: req.DescriptionAr},
		Sizes:        req.Sizes,
		StockStatus:  req.StockStatus,
		ImageURL:     req.ImageURL,
		IsNew:        req.IsNew,
		IsBestseller: req.IsBestseller,
		IsActive:     req.IsActive,
	}
}

// perfumePatchRequest is the partial-update body. Absent fields leave
// the record untouched; an explicit `"imageUrl": null` clears the image.
type perfumePatchRequest struct {
	NameEn        *string           `json:"nameEn"`
	NameAr        *string           `json:"nameAr"`
	BrandEn       *string           `json:"brandEn"`
	BrandAr       *string           `json:"brandAr"`
	CategoryEn    *string           `json:"categoryEn"`
	CategoryAr    *string           `json:"categoryAr"`
	GenderEn      *string           `json:"genderEn"`
	GenderAr      *string           `json:"genderAr"`
	DescriptionEn *string           `json:"descriptionEn"`
	DescriptionAr *string           `json:"descriptionAr"`
	Sizes         []domain.SizeTier `json:"sizes"`
	StockStatus   *string           `json:"stockStatus"`
	ImageURL      jsonOptionalString `json:"imageUrl"`
	IsNew         *bool             `json:"isNew"`
	IsBestseller  *bool             `json:"isBestseller"`
	IsActive      *bool             `json:"isActive"`
}

func (req perfumePatchRequest) toPatch() service.PerfumePatch {
	return service.PerfumePatch{
		NameEn:        req.NameEn,
		NameAr:        req.NameAr,
		BrandEn:       req.BrandEn,
		BrandAr:       req.BrandAr,
		CategoryEn:    req.CategoryEn,
		CategoryAr:    req.CategoryAr,
		GenderEn:      req.GenderEn,
		GenderAr:      req.GenderAr,
		DescriptionEn: req.DescriptionEn,
		DescriptionAr: req.DescriptionAr,
		Sizes:         req.Sizes,
		StockStatus:   req.StockStatus,
		ImageURL:      req.ImageURL.Value,
		ClearImageURL: req.ImageURL.Present && req.ImageURL.Value == nil,
		IsNew:         req.IsNew,
		IsBestseller:  req.IsBestseller,
		IsActive:      req.IsActive,
	}
}

// jsonOptionalString distinguishes an absent JSON field from an
// explicit null. Only fields that appear in the body are unmarshaled,
// so Present is false unless the key was sent.
type jsonOptionalString struct {
	Present bool
	Value   *string
}

func (o *jsonOptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
