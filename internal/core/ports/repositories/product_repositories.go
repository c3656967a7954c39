package repositories

import (
	"context"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
)

// ProductReader defines read operations for products.
type ProductReader interface {
	// FindProductByID retrieves a product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves every product.
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductWriter defines write operations for products.
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct rewrites an existing product.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// AdjustStock changes a product's stock count by delta (negative to
	// consume stock). Implementations must not let stock go below zero.
	AdjustStock(ctx context.Context, productID string, delta int, userID string) error

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
