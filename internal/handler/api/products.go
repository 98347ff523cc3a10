package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/harlansk/sleipnir/internal/domain"
)

// ProductHandler serves the product catalog endpoints.
type ProductHandler struct {
	catalog  domain.CatalogService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog domain.CatalogService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{
		catalog:  catalog,
		validate: validator.New(),
		logger:   logger,
	}
}

// List handles GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// ByCategory handles GET /api/products/category/{categoryID}
func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryID")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	products, err := h.catalog.ListProductsByCategory(r.Context(), categoryID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// Create handles POST /api/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		respondError(w, h.logger, domain.Invalid("product.create", err.Error()))
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.logger.Info("product created", "id", product.ID, "name", product.Name)
	respondJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var input domain.ProductInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		respondError(w, h.logger, domain.Invalid("product.update", err.Error()))
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// UpdateImage handles PATCH /api/products/{id}/image
func (h *ProductHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var body struct {
		Image string `json:"image" validate:"required,url"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		respondError(w, h.logger, domain.Invalid("product.update_image", "a valid image url is required"))
		return
	}

	product, err := h.catalog.UpdateProductImage(r.Context(), id, body.Image)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses a numeric path segment.
func pathID(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, domain.Invalid("api.path", "invalid "+name)
	}
	return id, nil
}
