package domain

import "context"

// Category rows back the three storefront product lines. Slug is one of the
// Category constants and is what clients route on.
type CategoryRecord struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageSrc    string `json:"imageSrc,omitempty"`
}

// ProductInput carries the writable fields for creating or updating a
// catalog product.
type ProductInput struct {
	Name        string           `json:"name" validate:"required"`
	Price       float64          `json:"price" validate:"required,gt=0"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	CategoryID  int              `json:"categoryId" validate:"required,gt=0"`
	Status      ProductStatus    `json:"status" validate:"omitempty,oneof=available reserved sold"`
	Condition   ProductCondition `json:"condition" validate:"omitempty,oneof=new pre-owned"`
	Mileage     int              `json:"mileage" validate:"gte=0"`
}

// CategoryInput carries the writable fields for creating a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,max=100"`
	Description string `json:"description"`
	ImageSrc    string `json:"imageSrc"`
}

// CatalogService provides catalog reads and the admin CRUD surface.
// The store layer never touches this; it consumes Product values handed to
// it by callers.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
	ListProductsByCategory(ctx context.Context, categoryID int) ([]Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id int, input ProductInput) (*Product, error)
	UpdateProductImage(ctx context.Context, id int, imageURL string) (*Product, error)
	DeleteProduct(ctx context.Context, id int) error

	ListCategories(ctx context.Context) ([]CategoryRecord, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*CategoryRecord, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*CategoryRecord, error)
}
