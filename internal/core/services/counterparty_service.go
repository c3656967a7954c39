package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_books_app/internal/core/ports/services"
	"github.com/SscSPs/biz_books_app/internal/dto"
	"github.com/SscSPs/biz_books_app/internal/middleware"
)

type counterpartyService struct {
	cpRepo portsrepo.CounterpartyRepositoryFacade
}

// NewCounterpartyService creates a new CounterpartyService.
func NewCounterpartyService(cpRepo portsrepo.CounterpartyRepositoryFacade) portssvc.CounterpartySvcFacade {
	return &counterpartyService{cpRepo: cpRepo}
}

var _ portssvc.CounterpartySvcFacade = (*counterpartyService)(nil)

func (s *counterpartyService) CreateCounterparty(ctx context.Context, kind domain.CounterpartyKind, req dto.CreateCounterpartyRequest, creatorUserID string) (*domain.Counterparty, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	cp := domain.Counterparty{
		CounterpartyID: uuid.NewString(),
		Kind:           kind,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		ContactName:    req.ContactName,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.cpRepo.SaveCounterparty(ctx, cp); err != nil {
		return nil, fmt.Errorf("failed to save counterparty: %w", err)
	}
	logger.Info("Counterparty created", slog.String("counterparty_id", cp.CounterpartyID), slog.String("kind", string(kind)))
	return &cp, nil
}

func (s *counterpartyService) GetCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error) {
	cp, err := s.cpRepo.FindCounterpartyByID(ctx, counterpartyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find counterparty %s: %w", counterpartyID, err)
	}
	return cp, nil
}

func (s *counterpartyService) ListCounterparties(ctx context.Context, kind domain.CounterpartyKind) ([]domain.Counterparty, error) {
	cps, err := s.cpRepo.ListCounterpartiesByKind(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s counterparties: %w", kind, err)
	}
	return cps, nil
}

func (s *counterpartyService) UpdateCounterparty(ctx context.Context, counterpartyID string, req dto.UpdateCounterpartyRequest, userID string) (*domain.Counterparty, error) {
	cp, err := s.cpRepo.FindCounterpartyByID(ctx, counterpartyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find counterparty %s: %w", counterpartyID, err)
	}

	if req.Name != nil {
		cp.Name = *req.Name
	}
	if req.Email != nil {
		cp.Email = *req.Email
	}
	if req.Phone != nil {
		cp.Phone = *req.Phone
	}
	if req.Address != nil {
		cp.Address = *req.Address
	}
	if req.ContactName != nil {
		cp.ContactName = *req.ContactName
	}
	if req.Notes != nil {
		cp.Notes = *req.Notes
	}

	cp.LastUpdatedAt = time.Now().UTC()
	cp.LastUpdatedBy = userID

	if err := s.cpRepo.UpdateCounterparty(ctx, *cp); err != nil {
		return nil, fmt.Errorf("failed to update counterparty %s: %w", counterpartyID, err)
	}
	return cp, nil
}

func (s *counterpartyService) DeleteCounterparty(ctx context.Context, counterpartyID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.cpRepo.DeleteCounterparty(ctx, counterpartyID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to delete counterparty %s: %w", counterpartyID, err)
	}
	logger.Info("Counterparty deleted", slog.String("counterparty_id", counterpartyID), slog.String("deleted_by", userID))
	return nil
}
