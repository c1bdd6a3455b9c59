package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/topnotes/catalog-api/internal/service"
)

// CatalogHandler serves the public read-only catalog endpoints.
type CatalogHandler struct {
	catalog CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// RegisterRoutes registers the public catalog routes.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/perfumes", h.handleList)
	r.Get("/perfumes/{id}", h.handleDetail)
	r.Get("/brands", h.handleBrands)
	r.Get("/categories", h.handleCategories)
}

// listParamsFromQuery parses the shared listing query parameters.
// Unparseable page/limit values fall back to the defaults.
func listParamsFromQuery(r *http.Request) service.ListParams {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	return service.ListParams{
		Page:        page,
		Limit:       limit,
		Language:    query.Get("language"),
		Search:      query.Get("searchTerm"),
		Brand:       query.Get("brandFilter"),
		Category:    query.Get("categoryFilter"),
		Gender:      query.Get("genderFilter"),
		StockStatus: query.Get("stockStatusFilter"),
	}
}

func (h *CatalogHandler) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.ListPublic(r.Context(), listParamsFromQuery(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toPerfumeListResponse(page))
}

func (h *CatalogHandler) handleDetail(w http.ResponseWriter, r *http.Request) {
	perfume, err := h.catalog.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidPerfumeID) {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		writeServiceError(w, h.logger, err)
		return
	}

	// Missing and inactive records answer with a null body on purpose:
	// the public surface does not reveal whether a record exists.
	if perfume == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	writeJSON(w, http.StatusOK, toPerfumeResponse(perfume))
}

func (h *CatalogHandler) handleBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalog.Brands(r.Context(), r.URL.Query().Get("language"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, brands)
}

func (h *CatalogHandler) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context(), r.URL.Query().Get("language"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}
