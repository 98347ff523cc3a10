// Package routes wires handlers onto the router.
package routes

import (
	"net/http"

	"github.com/harlansk/sleipnir/internal/handler/api"
	"github.com/harlansk/sleipnir/internal/router"
)

// Deps contains the handlers the API routes depend on.
type Deps struct {
	Products     *api.ProductHandler
	Categories   *api.CategoryHandler
	Cart         *api.CartHandler
	Reservations *api.ReservationHandler
	Checkout     *api.CheckoutHandler
	Vehicles     *api.VehicleHandler

	// MetricsHandler serves GET /metrics. Optional.
	MetricsHandler http.Handler
}

// Register registers all API routes on r.
func Register(r *router.Router, deps Deps) {
	// catalog
	r.Get("/api/products", deps.Products.List)
	r.Post("/api/products", deps.Products.Create)
	r.Get("/api/products/{id}", deps.Products.Get)
	r.Put("/api/products/{id}", deps.Products.Update)
	r.Delete("/api/products/{id}", deps.Products.Delete)
	r.Patch("/api/products/{id}/image", deps.Products.UpdateImage)
	r.Get("/api/products/category/{categoryID}", deps.Products.ByCategory)

	r.Get("/api/categories", deps.Categories.List)
	r.Post("/api/categories", deps.Categories.Create)
	r.Get("/api/categories/{slug}", deps.Categories.GetBySlug)

	// cart
	r.Get("/api/cart", deps.Cart.Get)
	r.Post("/api/cart", deps.Cart.Add)
	r.Delete("/api/cart", deps.Cart.Clear)
	r.Post("/api/cart/{productID}/increment", deps.Cart.Increment)
	r.Post("/api/cart/{productID}/decrement", deps.Cart.Decrement)
	r.Delete("/api/cart/{productID}", deps.Cart.Remove)

	// reservations
	r.Get("/api/reservations", deps.Reservations.List)
	r.Post("/api/reservations", deps.Reservations.Create)
	r.Delete("/api/reservations", deps.Reservations.Clear)
	r.Get("/api/reservations/{id}", deps.Reservations.Get)
	r.Patch("/api/reservations/{id}", deps.Reservations.Update)
	r.Delete("/api/reservations/{id}", deps.Reservations.Delete)

	// checkout
	r.Post("/api/checkout/quote", deps.Checkout.Quote)

	// enrichment
	r.Get("/api/vehicles/details", deps.Vehicles.Details)
	r.Get("/api/vehicles/suggestions", deps.Vehicles.Suggestions)
	r.Post("/api/vehicles/thumbnail", deps.Vehicles.Thumbnail)
	r.Get("/api/vehicles/check-image", deps.Vehicles.CheckImage)

	// operational
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if deps.MetricsHandler != nil {
		r.Handle(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}
