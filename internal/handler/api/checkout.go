package api

import (
	"log/slog"
	"net/http"

	"github.com/harlansk/sleipnir/internal/domain"
	"github.com/harlansk/sleipnir/internal/shipping"
	"github.com/harlansk/sleipnir/internal/store"
)

// CheckoutHandler quotes shipping for the current cart.
type CheckoutHandler struct {
	cart     *store.CartStore
	shipping shipping.Provider
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(cart *store.CartStore, provider shipping.Provider, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{cart: cart, shipping: provider, logger: logger}
}

// quoteOption is one shipping choice with the order total it implies.
type quoteOption struct {
	domain.ShippingMethod
	Total float64 `json:"total"`
}

type quoteResponse struct {
	Subtotal float64       `json:"subtotal"`
	Options  []quoteOption `json:"options"`
}

// Quote handles POST /api/checkout/quote
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	subtotal := h.cart.TotalPrice()

	methods, err := h.shipping.GetMethods(r.Context(), subtotal)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	options := make([]quoteOption, 0, len(methods))
	for _, m := range methods {
		options = append(options, quoteOption{
			ShippingMethod: m,
			Total:          subtotal + m.Price,
		})
	}

	respondJSON(w, http.StatusOK, quoteResponse{
		Subtotal: subtotal,
		Options:  options,
	})
}
