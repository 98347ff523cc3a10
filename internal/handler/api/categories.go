package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/harlansk/sleipnir/internal/domain"
)

// CategoryHandler serves the category endpoints.
type CategoryHandler struct {
	catalog  domain.CatalogService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(catalog domain.CatalogService, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryHandler{
		catalog:  catalog,
		validate: validator.New(),
		logger:   logger,
	}
}

// List handles GET /api/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// GetBySlug handles GET /api/categories/{slug}
func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		respondError(w, h.logger, domain.Invalid("category.get", "slug is required"))
		return
	}

	category, err := h.catalog.GetCategoryBySlug(r.Context(), slug)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

// Create handles POST /api/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CategoryInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		respondError(w, h.logger, domain.Invalid("category.create", err.Error()))
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.logger.Info("category created", "slug", category.Slug)
	respondJSON(w, http.StatusCreated, category)
}
