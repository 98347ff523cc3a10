// Package postgres implements the catalog on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harlansk/sleipnir/internal/domain"
)

// CatalogService implements domain.CatalogService using PostgreSQL.
type CatalogService struct {
	db *pgxpool.Pool
}

// Compile-time check that CatalogService implements domain.CatalogService.
var _ domain.CatalogService = (*CatalogService)(nil)

// NewCatalogService creates a new PostgreSQL-backed catalog.
func NewCatalogService(db *pgxpool.Pool) *CatalogService {
	return &CatalogService{db: db}
}

const productColumns = `
	p.id, p.name, p.price, p.description, p.image, p.category_id,
	p.status, p.condition, p.mileage, c.slug`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		id          int
		p           domain.Product
		description *string
		image       *string
		status      *string
		condition   *string
		mileage     *int
		slug        string
	)

	err := row.Scan(&id, &p.Name, &p.Price, &description, &image, &p.CategoryID,
		&status, &condition, &mileage, &slug)
	if err != nil {
		return nil, err
	}

	p.ID = strconv.Itoa(id)
	p.Category = domain.Category(slug)
	if description != nil {
		p.Description = *description
	}
	if image != nil {
		p.Image = *image
	}
	if status != nil {
		p.Status = domain.ProductStatus(*status)
	}
	if condition != nil {
		p.Condition = domain.ProductCondition(*condition)
	}
	if mileage != nil {
		p.Mileage = *mileage
	}

	return &p, nil
}

// ListProducts returns every catalog product.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+productColumns+`
		FROM products p
		JOIN categories c ON c.id = p.category_id
		ORDER BY p.id`)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_products", "failed to list products")
	}
	defer rows.Close()

	return collectProducts(rows, "catalog.list_products")
}

// GetProduct retrieves a product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	row := s.db.QueryRow(ctx, `
		SELECT`+productColumns+`
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("catalog.get_product", "product", strconv.Itoa(id))
		}
		return nil, domain.Internal(err, "catalog.get_product", "failed to get product")
	}

	return p, nil
}

// ListProductsByCategory returns the products in one category.
func (s *CatalogService) ListProductsByCategory(ctx context.Context, categoryID int) ([]domain.Product, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+productColumns+`
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.category_id = $1
		ORDER BY p.id`, categoryID)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_by_category", "failed to list products")
	}
	defer rows.Close()

	return collectProducts(rows, "catalog.list_by_category")
}

// CreateProduct inserts a product and returns the stored row.
func (s *CatalogService) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	status := input.Status
	if status == "" {
		status = domain.ProductAvailable
	}
	condition := input.Condition
	if condition == "" {
		condition = domain.ConditionNew
	}

	var id int
	err := s.db.QueryRow(ctx, `
		INSERT INTO products (name, price, description, image, category_id, status, condition, mileage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		input.Name, input.Price, input.Description, input.Image,
		input.CategoryID, status, condition, input.Mileage).Scan(&id)
	if err != nil {
		return nil, domain.Internal(err, "catalog.create_product", "failed to create product")
	}

	return s.GetProduct(ctx, id)
}

// UpdateProduct replaces the writable fields of a product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int, input domain.ProductInput) (*domain.Product, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE products
		SET name = $1, price = $2, description = $3, image = $4,
		    category_id = $5, status = $6, condition = $7, mileage = $8
		WHERE id = $9`,
		input.Name, input.Price, input.Description, input.Image,
		input.CategoryID, input.Status, input.Condition, input.Mileage, id)
	if err != nil {
		return nil, domain.Internal(err, "catalog.update_product", "failed to update product")
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.NotFound("catalog.update_product", "product", strconv.Itoa(id))
	}

	return s.GetProduct(ctx, id)
}

// UpdateProductImage sets only the image URL of a product. Used by the admin
// thumbnail-generation flow.
func (s *CatalogService) UpdateProductImage(ctx context.Context, id int, imageURL string) (*domain.Product, error) {
	tag, err := s.db.Exec(ctx, `UPDATE products SET image = $1 WHERE id = $2`, imageURL, id)
	if err != nil {
		return nil, domain.Internal(err, "catalog.update_product_image", "failed to update product image")
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.NotFound("catalog.update_product_image", "product", strconv.Itoa(id))
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product. Deleting an absent id is not an error.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return domain.Internal(err, "catalog.delete_product", "failed to delete product")
	}

	return nil
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.CategoryRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, slug, description, image_src
		FROM categories
		ORDER BY id`)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_categories", "failed to list categories")
	}
	defer rows.Close()

	var categories []domain.CategoryRecord
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, domain.Internal(err, "catalog.list_categories", "failed to scan category")
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "catalog.list_categories", "failed to read categories")
	}

	return categories, nil
}

// GetCategoryBySlug retrieves a category by its URL slug.
func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.CategoryRecord, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, slug, description, image_src
		FROM categories
		WHERE slug = $1`, slug)

	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("catalog.get_category", "category", slug)
		}
		return nil, domain.Internal(err, "catalog.get_category", "failed to get category")
	}

	return c, nil
}

// CreateCategory inserts a category and returns the stored row.
func (s *CatalogService) CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.CategoryRecord, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO categories (name, slug, description, image_src)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, slug, description, image_src`,
		input.Name, input.Slug, input.Description, input.ImageSrc)

	c, err := scanCategory(row)
	if err != nil {
		return nil, domain.Internal(err, "catalog.create_category", "failed to create category")
	}

	return c, nil
}

func scanCategory(row pgx.Row) (*domain.CategoryRecord, error) {
	var (
		c           domain.CategoryRecord
		description *string
		imageSrc    *string
	)

	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &description, &imageSrc); err != nil {
		return nil, err
	}

	if description != nil {
		c.Description = *description
	}
	if imageSrc != nil {
		c.ImageSrc = *imageSrc
	}

	return &c, nil
}

func collectProducts(rows pgx.Rows, op string) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to scan product")
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, op, "failed to read products")
	}

	return products, nil
}
