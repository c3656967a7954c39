package dto

import (
	"github.com/SscSPs/biz_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest creates a product.
type CreateProductRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price" binding:"required"`
	Stock int             `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest updates a product.
type UpdateProductRequest struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
	Stock *int             `json:"stock" binding:"omitempty,gte=0"`
}

// ProductResponse mirrors a product for the API.
type ProductResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

// ToProductResponse converts a domain product to its API shape.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ProductID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
	}
}

// ToProductResponses converts a slice of domain products.
func ToProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}
