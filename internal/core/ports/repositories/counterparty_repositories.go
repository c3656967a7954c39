package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
)

// CounterpartyReader defines read operations for vendors and customers.
type CounterpartyReader interface {
	// FindCounterpartyByID retrieves a counterparty by its unique identifier.
	FindCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error)

	// ListCounterpartiesByKind retrieves every counterparty of one kind.
	ListCounterpartiesByKind(ctx context.Context, kind domain.CounterpartyKind) ([]domain.Counterparty, error)
}

// CounterpartyWriter defines write operations for vendors and customers.
type CounterpartyWriter interface {
	// SaveCounterparty persists a new counterparty.
	SaveCounterparty(ctx context.Context, cp domain.Counterparty) error

	// UpdateCounterparty rewrites an existing counterparty.
	UpdateCounterparty(ctx context.Context, cp domain.Counterparty) error

	// DeleteCounterparty removes a counterparty.
	DeleteCounterparty(ctx context.Context, counterpartyID string, userID string, now time.Time) error
}

// CounterpartyRepositoryFacade combines all counterparty repository interfaces.
type CounterpartyRepositoryFacade interface {
	CounterpartyReader
	CounterpartyWriter
}
