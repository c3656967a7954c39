package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/biz_books_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository against one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DocumentRepo:     NewDocumentRepository(pool),
		CounterpartyRepo: NewCounterpartyRepository(pool),
		ProductRepo:      NewProductRepository(pool),
		UserRepo:         NewUserRepository(pool),
	}
}
