package services

import (
	"context"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
	"github.com/SscSPs/biz_books_app/internal/dto"
)

// ProductSvcFacade defines operations for products and stock.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)
	ConsumeStock(ctx context.Context, productID string, quantity int, userID string) error
	DeleteProduct(ctx context.Context, productID string, userID string) error
}
