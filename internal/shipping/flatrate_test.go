package shipping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harlansk/sleipnir/internal/domain"
)

func TestFlatRateProvider_GetMethods(t *testing.T) {
	p := NewFlatRateProvider()

	methods, err := p.GetMethods(context.Background(), 799.99)
	require.NoError(t, err)
	require.Len(t, methods, 3)

	assert.Equal(t, "standard", methods[0].ID)
	assert.Equal(t, 5.99, methods[0].Price)
	assert.Equal(t, "express", methods[1].ID)
	assert.Equal(t, 14.99, methods[1].Price)
	assert.Equal(t, "next-day", methods[2].ID)
	assert.Equal(t, 29.99, methods[2].Price)
}

func TestFlatRateProvider_GetMethodsReturnsCopy(t *testing.T) {
	p := NewFlatRateProvider()

	methods, err := p.GetMethods(context.Background(), 100)
	require.NoError(t, err)

	methods[0].Price = 0

	again, err := p.GetMethods(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 5.99, again[0].Price)
}

func TestFlatRateProvider_GetMethod(t *testing.T) {
	p := NewFlatRateProvider()

	method, err := p.GetMethod(context.Background(), "express")
	require.NoError(t, err)
	assert.Equal(t, "Express Shipping", method.Name)
	assert.Equal(t, "1-2 business days", method.EstimatedDays)
}

func TestFlatRateProvider_GetMethodUnknown(t *testing.T) {
	p := NewFlatRateProvider()

	_, err := p.GetMethod(context.Background(), "teleport")
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}
