package shipping

import (
	"context"

	"github.com/harlansk/sleipnir/internal/domain"
)

// FlatRateProvider serves a fixed menu of shipping methods.
type FlatRateProvider struct {
	methods []domain.ShippingMethod
}

// NewFlatRateProvider returns a provider with the standard storefront rates.
func NewFlatRateProvider() *FlatRateProvider {
	return &FlatRateProvider{
		methods: []domain.ShippingMethod{
			{
				ID:            "standard",
				Name:          "Standard Shipping",
				Price:         5.99,
				EstimatedDays: "3-5 business days",
			},
			{
				ID:            "express",
				Name:          "Express Shipping",
				Price:         14.99,
				EstimatedDays: "1-2 business days",
			},
			{
				ID:            "next-day",
				Name:          "Next Day Air",
				Price:         29.99,
				EstimatedDays: "Next business day",
			},
		},
	}
}

func (p *FlatRateProvider) GetMethods(ctx context.Context, subtotal float64) ([]domain.ShippingMethod, error) {
	out := make([]domain.ShippingMethod, len(p.methods))
	copy(out, p.methods)
	return out, nil
}

func (p *FlatRateProvider) GetMethod(ctx context.Context, id string) (*domain.ShippingMethod, error) {
	for _, m := range p.methods {
		if m.ID == id {
			method := m
			return &method, nil
		}
	}
	return nil, domain.NotFound("shipping.get_method", "shipping method", id)
}
