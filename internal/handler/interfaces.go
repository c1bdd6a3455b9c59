package handler

import (
	"context"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/service"
)

// The handler package depends on narrow service interfaces rather than
// the concrete service types so tests can substitute fakes.

// AuthService authenticates admins and resolves bearer tokens.
type AuthService interface {
	Login(ctx context.Context, input service.LoginInput) (*service.LoginOutput, error)
	ValidateToken(ctx context.Context, key string) (*domain.Admin, error)
	UpdatePassword(ctx context.Context, input service.UpdatePasswordInput) error
}

// CatalogService serves catalog queries and mutations.
type CatalogService interface {
	ListPublic(ctx context.Context, params service.ListParams) (*service.PerfumePage, error)
	ListAdmin(ctx context.Context, params service.ListParams) (*service.PerfumePage, error)
	GetPublic(ctx context.Context, id string) (*domain.Perfume, error)
	GetAdmin(ctx context.Context, id string) (*domain.Perfume, error)
	Create(ctx context.Context, input service.PerfumeInput) (*domain.Perfume, error)
	Update(ctx context.Context, id string, input service.PerfumeInput) (*domain.Perfume, error)
	Patch(ctx context.Context, id string, patch service.PerfumePatch) (*domain.Perfume, error)
	Delete(ctx context.Context, id string) error
	Brands(ctx context.Context, language string) ([]string, error)
	Categories(ctx context.Context, language string) ([]string, error)
}

// SettingsService serves the key/value settings store.
type SettingsService interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, input service.UpdateSettingInput) error
}

// ImageService stores uploaded product images.
type ImageService interface {
	Upload(ctx context.Context, input service.UploadImageInput) (string, error)
}
