package api

import (
	"context"

	"github.com/harlansk/sleipnir/internal/domain"
)

// catalogMock implements domain.CatalogService with overridable func fields.
type catalogMock struct {
	ListProductsFunc           func(ctx context.Context) ([]domain.Product, error)
	GetProductFunc             func(ctx context.Context, id int) (*domain.Product, error)
	ListProductsByCategoryFunc func(ctx context.Context, categoryID int) ([]domain.Product, error)
	CreateProductFunc          func(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
	UpdateProductFunc          func(ctx context.Context, id int, input domain.ProductInput) (*domain.Product, error)
	UpdateProductImageFunc     func(ctx context.Context, id int, imageURL string) (*domain.Product, error)
	DeleteProductFunc          func(ctx context.Context, id int) error
	ListCategoriesFunc         func(ctx context.Context) ([]domain.CategoryRecord, error)
	GetCategoryBySlugFunc      func(ctx context.Context, slug string) (*domain.CategoryRecord, error)
	CreateCategoryFunc         func(ctx context.Context, input domain.CategoryInput) (*domain.CategoryRecord, error)
}

func (m *catalogMock) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return m.ListProductsFunc(ctx)
}

func (m *catalogMock) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return m.GetProductFunc(ctx, id)
}

func (m *catalogMock) ListProductsByCategory(ctx context.Context, categoryID int) ([]domain.Product, error) {
	return m.ListProductsByCategoryFunc(ctx, categoryID)
}

func (m *catalogMock) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	return m.CreateProductFunc(ctx, input)
}

func (m *catalogMock) UpdateProduct(ctx context.Context, id int, input domain.ProductInput) (*domain.Product, error) {
	return m.UpdateProductFunc(ctx, id, input)
}

func (m *catalogMock) UpdateProductImage(ctx context.Context, id int, imageURL string) (*domain.Product, error) {
	return m.UpdateProductImageFunc(ctx, id, imageURL)
}

func (m *catalogMock) DeleteProduct(ctx context.Context, id int) error {
	return m.DeleteProductFunc(ctx, id)
}

func (m *catalogMock) ListCategories(ctx context.Context) ([]domain.CategoryRecord, error) {
	return m.ListCategoriesFunc(ctx)
}

func (m *catalogMock) GetCategoryBySlug(ctx context.Context, slug string) (*domain.CategoryRecord, error) {
	return m.GetCategoryBySlugFunc(ctx, slug)
}

func (m *catalogMock) CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.CategoryRecord, error) {
	return m.CreateCategoryFunc(ctx, input)
}
