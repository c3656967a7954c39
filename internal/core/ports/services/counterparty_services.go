package services

import (
	"context"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
	"github.com/SscSPs/biz_books_app/internal/dto"
)

// CounterpartySvcFacade defines operations for vendors and customers.
type CounterpartySvcFacade interface {
	CreateCounterparty(ctx context.Context, kind domain.CounterpartyKind, req dto.CreateCounterpartyRequest, creatorUserID string) (*domain.Counterparty, error)
	GetCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error)
	ListCounterparties(ctx context.Context, kind domain.CounterpartyKind) ([]domain.Counterparty, error)
	UpdateCounterparty(ctx context.Context, counterpartyID string, req dto.UpdateCounterpartyRequest, userID string) (*domain.Counterparty, error)
	DeleteCounterparty(ctx context.Context, counterpartyID string, userID string) error
}
