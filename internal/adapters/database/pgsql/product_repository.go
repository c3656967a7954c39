package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/biz_books_app/internal/apperrors"
	"github.com/SscSPs/biz_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_books_app/internal/core/ports/repositories"
)

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new repository for products.
func NewProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &productRepository{pool: pool}
}

var _ portsrepo.ProductRepositoryFacade = (*productRepository)(nil)

const productColumns = `product_id, name, price, stock, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ProductID, &p.Name, &p.Price, &p.Stock,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProduct inserts a new product.
func (r *productRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		product.ProductID, product.Name, product.Price, product.Stock,
		product.CreatedAt, product.CreatedBy, product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save product %s: %w", product.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product.
func (r *productRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	p, err := scanProduct(r.pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return p, nil
}

// ListProducts retrieves every product, alphabetically.
func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name ASC;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// UpdateProduct rewrites an existing product.
func (r *productRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products SET name = $2, price = $3, stock = $4, last_updated_at = $5, last_updated_by = $6
		WHERE product_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		product.ProductID, product.Name, product.Price, product.Stock,
		product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", product.ProductID, apperrors.ErrNotFound)
	}
	return nil
}

// AdjustStock changes stock by delta in one statement. GREATEST keeps the
// count from going negative when sales race each other.
func (r *productRepository) AdjustStock(ctx context.Context, productID string, delta int, userID string) error {
	query := `
		UPDATE products SET stock = GREATEST(stock + $2, 0), last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, productID, delta, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to adjust stock for product %s: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteProduct removes a product.
func (r *productRepository) DeleteProduct(ctx context.Context, productID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1;`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
	}
	return nil
}
