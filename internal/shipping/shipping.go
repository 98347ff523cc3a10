// Package shipping quotes shipping options for checkout.
package shipping

import (
	"context"

	"github.com/harlansk/sleipnir/internal/domain"
)

// Provider defines the interface for shipping quotes. Implementations can
// integrate with real carriers; the storefront ships phones only, so the
// flat-rate provider covers current needs.
type Provider interface {
	// GetMethods returns the shipping options available for an order of the
	// given merchandise subtotal.
	GetMethods(ctx context.Context, subtotal float64) ([]domain.ShippingMethod, error)

	// GetMethod resolves a single method by id.
	GetMethod(ctx context.Context, id string) (*domain.ShippingMethod, error)
}
