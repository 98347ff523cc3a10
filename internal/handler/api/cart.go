package api

import (
	"log/slog"
	"net/http"

	"github.com/harlansk/sleipnir/internal/domain"
	"github.com/harlansk/sleipnir/internal/store"
)

// CartHandler exposes the cart store over the JSON API. Mutations never fail
// from the client's point of view; the handler always answers with the
// current cart view.
type CartHandler struct {
	cart   *store.CartStore
	logger *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cart *store.CartStore, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{cart: cart, logger: logger}
}

// cartView is the response shape for all cart endpoints.
type cartView struct {
	Items      []store.CartLine `json:"items"`
	TotalItems int              `json:"totalItems"`
	TotalPrice float64          `json:"totalPrice"`
}

func (h *CartHandler) view() cartView {
	items := h.cart.Items()
	if items == nil {
		items = []store.CartLine{}
	}
	return cartView{
		Items:      items,
		TotalItems: h.cart.TotalItems(),
		TotalPrice: h.cart.TotalPrice(),
	}
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.view())
}

// Add handles POST /api/cart with a product body
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := decodeJSON(r, &product); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if product.ID == "" {
		respondError(w, h.logger, domain.Invalid("cart.add", "product id is required"))
		return
	}

	h.cart.AddItem(r.Context(), product)
	respondJSON(w, http.StatusOK, h.view())
}

// Increment handles POST /api/cart/{productID}/increment
func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.cart.IncrementQuantity(r.Context(), r.PathValue("productID"))
	respondJSON(w, http.StatusOK, h.view())
}

// Decrement handles POST /api/cart/{productID}/decrement
func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.cart.DecrementQuantity(r.Context(), r.PathValue("productID"))
	respondJSON(w, http.StatusOK, h.view())
}

// Remove handles DELETE /api/cart/{productID}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.cart.RemoveItem(r.Context(), r.PathValue("productID"))
	respondJSON(w, http.StatusOK, h.view())
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	respondJSON(w, http.StatusOK, h.view())
}
