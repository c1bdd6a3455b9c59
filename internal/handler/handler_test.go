package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topnotes/catalog-api/internal/domain"
	"github.com/topnotes/catalog-api/internal/service"
)

// stubAuthService implements AuthService with overridable functions.
type stubAuthService struct {
	loginFn          func(ctx context.Context, input service.LoginInput) (*service.LoginOutput, error)
	validateTokenFn  func(ctx context.Context, key string) (*domain.Admin, error)
	updatePasswordFn func(ctx context.Context, input service.UpdatePasswordInput) error
}

func (s *stubAuthService) Login(ctx context.Context, input service.LoginInput) (*service.LoginOutput, error) {
	return s.loginFn(ctx, input)
}

func (s *stubAuthService) ValidateToken(ctx context.Context, key string) (*domain.Admin, error) {
	if s.validateTokenFn != nil {
		return s.validateTokenFn(ctx, key)
	}
	if key == "valid-token" {
		return staffAdmin(), nil
	}
	return nil, service.ErrInvalidToken
}

func (s *stubAuthService) UpdatePassword(ctx context.Context, input service.UpdatePasswordInput) error {
	return s.updatePasswordFn(ctx, input)
}

// stubCatalogService implements CatalogService with overridable functions.
type stubCatalogService struct {
	listPublicFn func(ctx context.Context, params service.ListParams) (*service.PerfumePage, error)
	listAdminFn  func(ctx context.Context, params service.ListParams) (*service.PerfumePage, error)
	getPublicFn  func(ctx context.Context, id string) (*domain.Perfume, error)
	getAdminFn   func(ctx context.Context, id string) (*domain.Perfume, error)
	createFn     func(ctx context.Context, input service.PerfumeInput) (*domain.Perfume, error)
	updateFn     func(ctx context.Context, id string, input service.PerfumeInput) (*domain.Perfume, error)
	patchFn      func(ctx context.Context, id string, patch service.PerfumePatch) (*domain.Perfume, error)
	deleteFn     func(ctx context.Context, id string) error
	brandsFn     func(ctx context.Context, language string) ([]string, error)
	categoriesFn func(ctx context.Context, language string) ([]string, error)
}

func (s *stubCatalogService) ListPublic(ctx context.Context, params service.ListParams) (*service.PerfumePage, error) {
	return s.listPublicFn(ctx, params)
}

func (s *stubCatalogService) ListAdmin(ctx context.Context, params service.ListParams) (*service.PerfumePage, error) {
	return s.listAdminFn(ctx, params)
}

func (s *stubCatalogService) GetPublic(ctx context.Context, id string) (*domain.Perfume, error) {
	return s.getPublicFn(ctx, id)
}

func (s *stubCatalogService) GetAdmin(ctx context.Context, id string) (*domain.Perfume, error) {
	return s.getAdminFn(ctx, id)
}

func (s *stubCatalogService) Create(ctx context.Context, input service.PerfumeInput) (*domain.Perfume, error) {
	return s.createFn(ctx, input)
}

func (s *stubCatalogService) Update(ctx context.Context, id string, input service.PerfumeInput) (*domain.Perfume, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubCatalogService) Patch(ctx context.Context, id string, patch service.PerfumePatch) (*domain.Perfume, error) {
	return s.patchFn(ctx, id, patch)
}

func (s *stubCatalogService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubCatalogService) Brands(ctx context.Context, language string) ([]string, error) {
	return s.brandsFn(ctx, language)
}

func (s *stubCatalogService) Categories(ctx context.Context, language string) ([]string, error) {
	return s.categoriesFn(ctx, language)
}

// stubSettingsService implements SettingsService with overridable functions.
type stubSettingsService struct {
	getAllFn func(ctx context.Context) (map[string]string, error)
	upsertFn func(ctx context.Context, input service.UpdateSettingInput) error
}

func (s *stubSettingsService) GetAll(ctx context.Context) (map[string]string, error) {
	return s.getAllFn(ctx)
}

func (s *stubSettingsService) Upsert(ctx context.Context, input service.UpdateSettingInput) error {
	return s.upsertFn(ctx, input)
}

// stubImageService implements ImageService with an overridable function.
type stubImageService struct {
	uploadFn func(ctx context.Context, input service.UploadImageInput) (string, error)
}

func (s *stubImageService) Upload(ctx context.Context, input service.UploadImageInput) (string, error) {
	return s.uploadFn(ctx, input)
}

func staffAdmin() *domain.Admin {
	admin := domain.NewAdmin("Top Notes Admin", "hash")
	admin.ID = 1
	admin.IsStaff = true
	return admin
}

type testServices struct {
	auth     *stubAuthService
	catalog  *stubCatalogService
	settings *stubSettingsService
	images   *stubImageService
}

func newTestRouter(svcs testServices) http.Handler {
	logger := zerolog.Nop()
	if svcs.auth == nil {
		svcs.auth = &stubAuthService{}
	}
	if svcs.catalog == nil {
		svcs.catalog = &stubCatalogService{}
	}
	if svcs.settings == nil {
		svcs.settings = &stubSettingsService{}
	}
	if svcs.images == nil {
		svcs.images = &stubImageService{}
	}

	return NewRouter(RouterConfig{
		Catalog: NewCatalogHandler(svcs.catalog, logger),
		Admin: NewAdminHandler(AdminHandlerConfig{
			Auth:      svcs.auth,
			Catalog:   svcs.catalog,
			Settings:  svcs.settings,
			Images:    svcs.images,
			MaxUpload: 5 * 1024 * 1024,
			Logger:    logger,
		}),
		Auth:   svcs.auth,
		Logger: logger,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	router := newTestRouter(testServices{})

	rec := doJSON(t, router, http.MethodGet, "/health", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestLogin(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, input service.LoginInput) (*service.LoginOutput, error) {
			assert.Equal(t, "secret", input.Password)
			assert.NotEmpty(t, input.ClientKey)
			return &service.LoginOutput{Token: "tok123", Admin: staffAdmin()}, nil
		},
	}
	router := newTestRouter(testServices{auth: auth})

	rec := doJSON(t, router, http.MethodPost, "/api/admin/login", "", `{"password":"secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, "tok123", body["token"])
	admin, ok := body["admin"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Top Notes Admin", admin["name"])
}

func TestLoginMissingPassword(t *testing.T) {
	called := false
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, input service.LoginInput) (*service.LoginOutput, error) {
			called = true
			return nil, nil
		},
	}
	router := newTestRouter(testServices{auth: auth})

	rec := doJSON(t, router, http.MethodPost, "/api/admin/login", "", `{"name":"Top Notes Admin"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "password is required", decodeBody(t, rec)["detail"])
	assert.False(t, called)
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, input service.LoginInput) (*service.LoginOutput, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	router := newTestRouter(testServices{auth: auth})

	rec := doJSON(t, router, http.MethodPost, "/api/admin/login", "", `{"password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decodeBody(t, rec), "detail")
}

func TestLoginRateLimited(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, input service.LoginInput) (*service.LoginOutput, error) {
			return nil, service.ErrTooManyAttempts
		},
	}
	router := newTestRouter(testServices{auth: auth})

	rec := doJSON(t, router, http.MethodPost, "/api/admin/login", "", `{"password":"whatever"}`)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestProtectedRequiresToken(t *testing.T) {
	router := newTestRouter(testServices{})

	rec := doJSON(t, router, http.MethodGet, "/api/admin/settings", "", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication credentials were not provided", decodeBody(t, rec)["detail"])
}

func TestProtectedRejectsUnknownToken(t *testing.T) {
	router := newTestRouter(testServices{})

	rec := doJSON(t, router, http.MethodGet, "/api/admin/settings", "bogus", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRejectsNonStaff(t *testing.T) {
	auth := &stubAuthService{
		validateTokenFn: func(ctx context.Context, key string) (*domain.Admin, error) {
			admin := staffAdmin()
			admin.IsStaff = false
			return admin, nil
		},
	}
	router := newTestRouter(testServices{auth: auth})

	rec := doJSON(t, router, http.MethodGet, "/api/admin/settings", "valid-token", "")

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "admin privileges required", decodeBody(t, rec)["detail"])
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer scheme", "Bearer abc", "abc"},
		{"token scheme", "Token abc", "abc"},
		{"lowercase scheme", "bearer abc", "abc"},
		{"bare value", "abc", "abc"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, bearerToken(req))
		})
	}
}

func TestPublicList(t *testing.T) {
	catalog := &stubCatalogService{
		listPublicFn: func(ctx context.Context, params service.ListParams) (*service.PerfumePage, error) {
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, "oud", params.Search)
			assert.Equal(t, "ar", params.Language)
			p := domain.NewPerfume()
			p.Name = domain.Bilingual{En: "Oud Royale", Ar: "عود ملكي"}
			return &service.PerfumePage{
				Items:       []*domain.Perfume{p},
				CurrentPage: 2,
				TotalPages:  3,
				TotalItems:  30,
				HasNext:     true,
				HasPrev:     true,
			}, nil
		},
	}
	router := newTestRouter(testServices{catalog: catalog})

	rec := doJSON(t, router, http.MethodGet, "/api/perfumes?page=2&searchTerm=oud&language=ar", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	perfumes, ok := body["perfumes"].([]interface{})
	require.True(t, ok)
	require.Len(t, perfumes, 1)
	first := perfumes[0].(map[string]interface{})
	assert.Equal(t, "Oud Royale", first["nameEn"])
	assert.Equal(t, "عود ملكي", first["nameAr"])

	pagination, ok := body["pagination"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), pagination["currentPage"])
	assert.Equal(t, float64(3), pagination["totalPages"])
	assert.Equal(t, float64(30), pagination["totalItems"])
	assert.Equal(t, true, pagination["hasNext"])
	assert.Equal(t, true, pagination["hasPrev"])
}

func TestPublicListLenientParams(t *testing.T) {
	catalog := &stubCatalogService{
		listPublicFn: func(ctx context.Context, params service.ListParams) (*service.PerfumePage, error) {
			assert.Zero(t, params.Page)
			assert.Zero(t, params.Limit)
			return &service.PerfumePage{Items: []*domain.Perfume{}, CurrentPage: 1, TotalPages: 1}, nil
		},
	}
	router := newTestRouter(testServices{catalog: catalog})

	rec := doJSON(t, router, http.MethodGet, "/api/perfumes?page=abc&limit=-", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicDetailNullBody(t *testing.T) {
	catalog := &stubCatalogService{
		getPublicFn: func(ctx context.Context, id string) (*domain.Perfume, error) {
			return nil, nil
		},
	}
	router := newTestRouter(testServices{catalog: catalog})

	rec := doJSON(t, router, http.MethodGet, "/api/perfumes/1b4e28ba-2fa1-11d2-883f-0016d3cca427", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestPublicDetailMalformedID(t *testing.T) {
	catalog := &stubCatalogService{
		getPublicFn: func(ctx context.Context, id string) (*domain.Perfume, error) {
			return nil, service.ErrInvalidPerfumeID
		},
	}
	router := newTestRouter(testServices{catalog: catalog})

	rec := doJSON(t, router, http.MethodGet, "/api/perfumes/not-a-uuid", "", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBrands(t *testing.T) {
	catalog := &stubCatalogService{
		brandsFn: func(ctx context.Context, language string) ([]string, error) {
			assert.Equal(t, "ar", language)
			return []string{"أزارو", "ديور"}, nil
		},
	}
	router := newTestRouter(testServices{catalog: catalog})

	rec := doJSON(t, router, http.MethodGet, "/api/brands?language=ar", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var brands []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &brands))
	assert.Equal(t, []string{"أزارو", "ديور"}, brands)
}

func TestCreatePerfume(t *testing.T) {
	catalog := &stubCatalogService{
		createFn: func(ctx context.Context, input service.PerfumeInput) (*domain.Perfume, error) {
			assert.Equal(t, "Oud Royale", input.Name.En)
			assert.Nil(t, input.IsActive)
			p := domain.NewPerfume()
			p.Name = input.Name
			p.StockStatus = input.StockStatus
			return p, nil
		},
	}
	router := newTestRouter(testServices{catalog: catalog})

	body := `{"nameEn":"Oud Royale","nameAr":"عود ملكي","brandEn":"Azzaro","brandAr":"أزارو",
		"categoryEn":"Oriental","categoryAr":"شرقي","genderEn":"Men","genderAr":"رجالي",
		"descriptionEn":"Warm","descriptionAr":"دافئ","sizes":[{"size":"50ml","priceEGP":1200}],
		"stockStatus":"In Stock"}`
	rec := doJSON(t, router, http.MethodPost, "/api/admin/perfumes", "valid-token", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "Oud Royale", resp["nameEn"])
	assert.NotEmpty(t, resp["id"])
}

func TestCreatePerfumeValidation(t *testing.T) {
	catalog := &stubCatalogService{
		createFn: func(ctx context.Context, input service.PerfumeInput) (*domain.Perfume, error) {
			return nil, service.ErrValidation
		},
	}
	router := newTestRouter(testServices{catalog: catalog})

	rec := doJSON(t, router, http.MethodPost, "/api/admin/perfumes", "valid-token", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPerfumeNotFound(t *testing.T) {
	catalog := &stubCatalogService{
		getAdminFn: func(ctx context.Context, id string) (*domain.Perfume, error) {
			return nil, service.ErrPerfumeNotFound
		},
	}
	router := newTestRouter(testServices{catalog: catalog})

	rec := doJSON(t, router, http.MethodGet, "/api/admin/perfumes/1b4e28ba-2fa1-11d2-883f-0016d3cca427", "valid-token", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatchPerfumeClearsImage(t *testing.T) {
	var captured service.PerfumePatch
	catalog := &stubCatalogService{
		patchFn: func(ctx context.Context, id string, patch service.PerfumePatch) (*domain.Perfume, error) {
			captured = patch
			return domain.NewPerfume(), nil
		},
	}
	router := newTestRouter(testServices{catalog: catalog})

	rec := doJSON(t, router, http.MethodPatch,
		"/api/admin/perfumes/1b4e28ba-2fa1-11d2-883f-0016d3cca427", "valid-token",
		`{"nameEn":"Renamed","imageUrl":null}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured.NameEn)
	assert.Equal(t, "Renamed", *captured.NameEn)
	assert.True(t, captured.ClearImageURL)
	assert.Nil(t, captured.BrandEn)
}

func TestPatchPerfumeAbsentImageLeavesIt(t *testing.T) {
	var captured service.PerfumePatch
	catalog := &stubCatalogService{
		patchFn: func(ctx context.Context, id string, patch service.PerfumePatch) (*domain.Perfume, error) {
			captured = patch
			return domain.NewPerfume(), nil
		},
	}
	router := newTestRouter(testServices{catalog: catalog})

	rec := doJSON(t, router, http.MethodPatch,
		"/api/admin/perfumes/1b4e28ba-2fa1-11d2-883f-0016d3cca427", "valid-token",
		`{"nameEn":"Renamed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, captured.ClearImageURL)
	assert.Nil(t, captured.ImageURL)
}

func TestDeletePerfume(t *testing.T) {
	deleted := ""
	catalog := &stubCatalogService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	router := newTestRouter(testServices{catalog: catalog})

	rec := doJSON(t, router, http.MethodDelete,
		"/api/admin/perfumes/1b4e28ba-2fa1-11d2-883f-0016d3cca427", "valid-token", "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "1b4e28ba-2fa1-11d2-883f-0016d3cca427", deleted)
}

func TestGetSettings(t *testing.T) {
	settings := &stubSettingsService{
		getAllFn: func(ctx context.Context) (map[string]string, error) {
			return map[string]string{"whatsapp_number": "+201000000000"}, nil
		},
	}
	router := newTestRouter(testServices{settings: settings})

	rec := doJSON(t, router, http.MethodGet, "/api/admin/settings", "valid-token", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "+201000000000", decodeBody(t, rec)["whatsapp_number"])
}

func TestUpdateSettings(t *testing.T) {
	var captured service.UpdateSettingInput
	settings := &stubSettingsService{
		upsertFn: func(ctx context.Context, input service.UpdateSettingInput) error {
			captured = input
			return nil
		},
	}
	router := newTestRouter(testServices{settings: settings})

	rec := doJSON(t, router, http.MethodPut, "/api/admin/settings", "valid-token",
		`{"key":"whatsapp_number","value":"+201000000000"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Settings updated successfully", decodeBody(t, rec)["message"])
	assert.Equal(t, "whatsapp_number", captured.Key)
	require.NotNil(t, captured.Value)
	assert.Equal(t, "+201000000000", *captured.Value)
}

func TestUpdateSettingsMissingValue(t *testing.T) {
	settings := &stubSettingsService{
		upsertFn: func(ctx context.Context, input service.UpdateSettingInput) error {
			assert.Nil(t, input.Value)
			return service.ErrSettingValueRequired
		},
	}
	router := newTestRouter(testServices{settings: settings})

	rec := doJSON(t, router, http.MethodPut, "/api/admin/settings", "valid-token",
		`{"key":"whatsapp_number"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePassword(t *testing.T) {
	var captured service.UpdatePasswordInput
	auth := &stubAuthService{
		updatePasswordFn: func(ctx context.Context, input service.UpdatePasswordInput) error {
			captured = input
			return nil
		},
	}
	router := newTestRouter(testServices{auth: auth})

	rec := doJSON(t, router, http.MethodPost, "/api/admin/update-password", "valid-token",
		`{"password":"newsecret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Password updated successfully", decodeBody(t, rec)["message"])
	assert.Equal(t, int64(1), captured.AdminID)
	assert.Equal(t, "newsecret", captured.NewPassword)
}

func TestUpdatePasswordTooShort(t *testing.T) {
	auth := &stubAuthService{
		updatePasswordFn: func(ctx context.Context, input service.UpdatePasswordInput) error {
			return service.ErrPasswordTooShort
		},
	}
	router := newTestRouter(testServices{auth: auth})

	rec := doJSON(t, router, http.MethodPost, "/api/admin/update-password", "valid-token",
		`{"password":"abc"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartImage(t *testing.T, field, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	images := &stubImageService{
		uploadFn: func(ctx context.Context, input service.UploadImageInput) (string, error) {
			assert.Equal(t, "image/png", input.ContentType)
			data, err := io.ReadAll(input.Reader)
			require.NoError(t, err)
			assert.Equal(t, []byte("png-bytes"), data)
			return "/media/perfumes/2026/08/abc.png", nil
		},
	}
	router := newTestRouter(testServices{images: images})

	body, contentType := multipartImage(t, "image", "bottle.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/perfumes/image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer valid-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/media/perfumes/2026/08/abc.png", decodeBody(t, rec)["imageUrl"])
}

func TestUploadImageMissingField(t *testing.T) {
	router := newTestRouter(testServices{})

	body, contentType := multipartImage(t, "file", "bottle.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/perfumes/image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer valid-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImageUnsupportedType(t *testing.T) {
	images := &stubImageService{
		uploadFn: func(ctx context.Context, input service.UploadImageInput) (string, error) {
			return "", service.ErrUnsupportedImageType
		},
	}
	router := newTestRouter(testServices{images: images})

	body, contentType := multipartImage(t, "image", "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/perfumes/image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer valid-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(testServices{})

	rec := doJSON(t, router, http.MethodGet, "/api/nope", "", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", decodeBody(t, rec)["detail"])
}
