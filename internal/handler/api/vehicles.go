package api

import (
	"log/slog"
	"net/http"

	"github.com/harlansk/sleipnir/internal/domain"
	"github.com/harlansk/sleipnir/internal/enrichment"
)

// VehicleHandler serves the AI-assisted lookup endpoints used by the admin
// product form: detail autofill, name suggestions, and thumbnail discovery.
type VehicleHandler struct {
	enricher *enrichment.Client
	logger   *slog.Logger
}

// NewVehicleHandler creates a new vehicle enrichment handler
func NewVehicleHandler(enricher *enrichment.Client, logger *slog.Logger) *VehicleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &VehicleHandler{enricher: enricher, logger: logger}
}

// Details handles GET /api/vehicles/details?name=...
func (h *VehicleHandler) Details(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, h.logger, domain.Invalid("vehicle.details", "name is required"))
		return
	}

	details, err := h.enricher.ProductDetails(r.Context(), name)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// Suggestions handles GET /api/vehicles/suggestions?query=...
func (h *VehicleHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, h.logger, domain.Invalid("vehicle.suggestions", "query is required"))
		return
	}

	suggestions, err := h.enricher.VehicleSuggestions(r.Context(), query)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	respondJSON(w, http.StatusOK, map[string][]string{"suggestions": suggestions})
}

// Thumbnail handles POST /api/vehicles/thumbnail
func (h *VehicleHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if req.Name == "" {
		respondError(w, h.logger, domain.Invalid("vehicle.thumbnail", "name is required"))
		return
	}

	result, err := h.enricher.Thumbnail(r.Context(), req.Name, req.Category)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// CheckImage handles GET /api/vehicles/check-image?url=...
func (h *VehicleHandler) CheckImage(w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		respondError(w, h.logger, domain.Invalid("vehicle.check_image", "url is required"))
		return
	}

	ok, err := h.enricher.CheckImage(r.Context(), imageURL)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"valid": ok})
}
