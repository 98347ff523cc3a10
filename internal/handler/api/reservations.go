package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/harlansk/sleipnir/internal/domain"
	"github.com/harlansk/sleipnir/internal/store"
)

// ReservationHandler serves the reservation endpoints. Reservation IDs and
// fees are assigned server-side; clients only name a product, a date, and
// their contact details.
type ReservationHandler struct {
	reservations *store.ReservationStore
	catalog      domain.CatalogService
	validate     *validator.Validate
	logger       *slog.Logger
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservations *store.ReservationStore, catalog domain.CatalogService, logger *slog.Logger) *ReservationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReservationHandler{
		reservations: reservations,
		catalog:      catalog,
		validate:     validator.New(),
		logger:       logger,
	}
}

// createReservationRequest is the POST /api/reservations body.
type createReservationRequest struct {
	ProductID   int                `json:"productId" validate:"required,gt=0"`
	Date        time.Time          `json:"date" validate:"required"`
	ContactInfo domain.ContactInfo `json:"contactInfo"`
}

// updateReservationRequest is the PATCH /api/reservations/{id} body.
// Absent fields leave the reservation untouched.
type updateReservationRequest struct {
	Date        *time.Time                `json:"date"`
	Status      *domain.ReservationStatus `json:"status"`
	ContactInfo *domain.ContactInfo       `json:"contactInfo"`
}

// List handles GET /api/reservations
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	reservations := h.reservations.Reservations()
	if reservations == nil {
		reservations = []domain.Reservation{}
	}
	respondJSON(w, http.StatusOK, reservations)
}

// Get handles GET /api/reservations/{id}
func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	reservation, ok := h.reservations.Get(id)
	if !ok {
		respondError(w, h.logger, domain.NotFound("reservation.get", "reservation", id))
		return
	}
	respondJSON(w, http.StatusOK, reservation)
}

// Create handles POST /api/reservations
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, h.logger, domain.Invalid("reservation.create", err.Error()))
		return
	}
	if req.ContactInfo.Name == "" || req.ContactInfo.Email == "" {
		respondError(w, h.logger, domain.Invalid("reservation.create", "contact name and email are required"))
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	reservation := domain.Reservation{
		ID:          uuid.NewString(),
		Product:     *product,
		Date:        req.Date,
		Fee:         product.Price * domain.ReservationFeeRate,
		Status:      domain.ReservationPending,
		ContactInfo: req.ContactInfo,
	}

	h.reservations.Add(r.Context(), reservation)
	h.logger.Info("reservation created",
		"id", reservation.ID,
		"product_id", product.ID,
		"fee", reservation.Fee,
	)
	respondJSON(w, http.StatusCreated, reservation)
}

// Update handles PATCH /api/reservations/{id}
func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := h.reservations.Get(id); !ok {
		respondError(w, h.logger, domain.NotFound("reservation.update", "reservation", id))
		return
	}

	var req updateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		respondError(w, h.logger, domain.Invalid("reservation.update", "unknown status "+strconv.Quote(string(*req.Status))))
		return
	}

	h.reservations.Update(r.Context(), id, domain.ReservationPatch{
		Date:        req.Date,
		Status:      req.Status,
		ContactInfo: req.ContactInfo,
	})

	reservation, _ := h.reservations.Get(id)
	respondJSON(w, http.StatusOK, reservation)
}

// Delete handles DELETE /api/reservations/{id}
func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.reservations.Remove(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/reservations
func (h *ReservationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.reservations.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
