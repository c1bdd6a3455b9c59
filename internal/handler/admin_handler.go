package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/topnotes/catalog-api/internal/metrics"
	"github.com/topnotes/catalog-api/internal/ratelimit"
	"github.com/topnotes/catalog-api/internal/service"
)

// AdminHandler serves the authenticated admin endpoints plus login.
type AdminHandler struct {
	auth      AuthService
	catalog   CatalogService
	settings  SettingsService
	images    ImageService
	maxUpload int64
	logger    zerolog.Logger
}

// AdminHandlerConfig contains the dependencies of an AdminHandler.
type AdminHandlerConfig struct {
	Auth      AuthService
	Catalog   CatalogService
	Settings  SettingsService
	Images    ImageService
	MaxUpload int64
	Logger    zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(cfg AdminHandlerConfig) *AdminHandler {
	return &AdminHandler{
		auth:      cfg.Auth,
		catalog:   cfg.Catalog,
		settings:  cfg.Settings,
		images:    cfg.Images,
		maxUpload: cfg.MaxUpload,
		logger:    cfg.Logger.With().Str("handler", "admin").Logger(),
	}
}

// RegisterPublicRoutes registers the admin routes that require no token.
func (h *AdminHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/admin/login", h.handleLogin)
}

// RegisterProtectedRoutes registers the staff-gated admin routes.
// The caller is expected to wrap the router with requireStaff.
func (h *AdminHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/admin/settings", h.handleGetSettings)
	r.Put("/admin/settings", h.handleUpdateSettings)
	r.Post("/admin/update-password", h.handleUpdatePassword)

	r.Get("/admin/perfumes", h.handleListPerfumes)
	r.Post("/admin/perfumes", h.handleCreatePerfume)
	r.Post("/admin/perfumes/image", h.handleUploadImage)
	r.Get("/admin/perfumes/{id}", h.handleGetPerfume)
	r.Put("/admin/perfumes/{id}", h.handleUpdatePerfume)
	r.Patch("/admin/perfumes/{id}", h.handlePatchPerfume)
	r.Delete("/admin/perfumes/{id}", h.handleDeletePerfume)
}

func (h *AdminHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Password == "" {
		writeDetail(w, http.StatusBadRequest, "password is required")
		return
	}

	out, err := h.auth.Login(r.Context(), service.LoginInput{
		Name:      req.Name,
		Password:  req.Password,
		ClientKey: ratelimit.ClientKey(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTooManyAttempts):
			metrics.LoginAttemptsTotal.WithLabelValues("rate_limited").Inc()
		case errors.Is(err, service.ErrInvalidCredentials):
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		}
		writeServiceError(w, h.logger, err)
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   out.Token,
		Admin:   adminSummary{Name: out.Admin.Name},
	})
}

func (h *AdminHandler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func (h *AdminHandler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.settings.Upsert(r.Context(), service.UpdateSettingInput{
		Key:   req.Key,
		Value: req.Value,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Settings updated successfully")
}

func (h *AdminHandler) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "authentication credentials were not provided")
		return
	}

	var req updatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.auth.UpdatePassword(r.Context(), service.UpdatePasswordInput{
		AdminID:     admin.ID,
		NewPassword: req.Password,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password updated successfully")
}

func (h *AdminHandler) handleListPerfumes(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.ListAdmin(r.Context(), listParamsFromQuery(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toPerfumeListResponse(page))
}

func (h *AdminHandler) handleGetPerfume(w http.ResponseWriter, r *http.Request) {
	perfume, err := h.catalog.GetAdmin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toPerfumeResponse(perfume))
}

func (h *AdminHandler) handleCreatePerfume(w http.ResponseWriter, r *http.Request) {
	var req perfumeWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	perfume, err := h.catalog.Create(r.Context(), req.toInput())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	metrics.PerfumeWritesTotal.WithLabelValues("create").Inc()
	writeJSON(w, http.StatusCreated, toPerfumeResponse(perfume))
}

func (h *AdminHandler) handleUpdatePerfume(w http.ResponseWriter, r *http.Request) {
	var req perfumeWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	perfume, err := h.catalog.Update(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	metrics.PerfumeWritesTotal.WithLabelValues("update").Inc()
	writeJSON(w, http.StatusOK, toPerfumeResponse(perfume))
}

func (h *AdminHandler) handlePatchPerfume(w http.ResponseWriter, r *http.Request) {
	var req perfumePatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	perfume, err := h.catalog.Patch(r.Context(), chi.URLParam(r, "id"), req.toPatch())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	metrics.PerfumeWritesTotal.WithLabelValues("patch").Inc()
	writeJSON(w, http.StatusOK, toPerfumeResponse(perfume))
}

func (h *AdminHandler) handleDeletePerfume(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	metrics.PerfumeWritesTotal.WithLabelValues("delete").Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1024)

	file, header, err := r.FormFile("image")
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("rejected").Inc()
		writeDetail(w, http.StatusBadRequest, "multipart form field 'image' is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	url, err := h.images.Upload(r.Context(), service.UploadImageInput{
		ContentType: contentType,
		Reader:      file,
		Size:        header.Size,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedImageType) || errors.Is(err, service.ErrImageTooLarge) {
			metrics.ImageUploadsTotal.WithLabelValues("rejected").Inc()
		} else {
			metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
		}
		writeServiceError(w, h.logger, err)
		return
	}

	metrics.ImageUploadsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusCreated, imageUploadResponse{ImageURL: url})
}
