package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/biz_books_app/internal/apperrors"
	"github.com/SscSPs/biz_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_books_app/internal/core/ports/services"
	"github.com/SscSPs/biz_books_app/internal/dto"
	"github.com/SscSPs/biz_books_app/internal/middleware"
)

const defaultDocumentPageLimit = 50

// documentService manages the lifecycle of bills, invoices and vendor
// credits. Payment arithmetic lives in the ledger service; this one owns
// creation, header edits, listing and deletion.
type documentService struct {
	docRepo    portsrepo.DocumentRepositoryFacade
	cpRepo     portsrepo.CounterpartyRepositoryFacade
	productSvc portssvc.ProductSvcFacade
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(docRepo portsrepo.DocumentRepositoryFacade, cpRepo portsrepo.CounterpartyRepositoryFacade, productSvc portssvc.ProductSvcFacade) portssvc.DocumentSvcFacade {
	return &documentService{docRepo: docRepo, cpRepo: cpRepo, productSvc: productSvc}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// counterpartyKindFor maps the document kind to the counterparty side it
// must reference: bills and vendor credits name vendors, invoices name
// customers.
func counterpartyKindFor(kind domain.DocumentKind) domain.CounterpartyKind {
	if kind == domain.KindInvoice {
		return domain.KindCustomer
	}
	return domain.KindVendor
}

// faceAmountFromRequest derives the document total. Line items win over a
// flat amount when both are present.
func faceAmountFromRequest(req dto.CreateDocumentRequest) (decimal.Decimal, []domain.LineItem, error) {
	if len(req.LineItems) > 0 {
		items := make([]domain.LineItem, len(req.LineItems))
		total := decimal.Zero
		for i, li := range req.LineItems {
			if li.Quantity.LessThanOrEqual(decimal.Zero) {
				return decimal.Zero, nil, fmt.Errorf("%w: line item quantity must be positive", apperrors.ErrValidation)
			}
			if li.UnitPrice.LessThan(decimal.Zero) {
				return decimal.Zero, nil, fmt.Errorf("%w: line item unit price cannot be negative", apperrors.ErrValidation)
			}
			items[i] = domain.LineItem{
				ProductID:   li.ProductID,
				Description: li.Description,
				Quantity:    li.Quantity,
				UnitPrice:   li.UnitPrice,
			}
			total = total.Add(items[i].Total())
		}
		return total, items, nil
	}
	if req.Amount == nil {
		return decimal.Zero, nil, fmt.Errorf("%w: either line items or an amount is required", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	return *req.Amount, nil, nil
}

// CreateDocument creates a bill, invoice or vendor-credit pseudo-document.
// Credits are stored with a negative face amount and the Credit status so
// they never count toward payables totals. Invoice line items referencing a
// product consume its stock.
func (s *documentService) CreateDocument(ctx context.Context, kind domain.DocumentKind, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cp, err := s.cpRepo.FindCounterpartyByID(ctx, req.CounterpartyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find counterparty %s: %w", req.CounterpartyID, err)
	}
	if cp.Kind != counterpartyKindFor(kind) {
		return nil, fmt.Errorf("%w: counterparty %s is a %s, not a %s", apperrors.ErrValidation, cp.CounterpartyID, cp.Kind, counterpartyKindFor(kind))
	}

	documentDate, err := parsePaymentDate(req.DocumentDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parsePaymentDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	faceAmount, lineItems, err := faceAmountFromRequest(req)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := domain.Document{
		DocumentID:       uuid.NewString(),
		Kind:             kind,
		CounterpartyID:   cp.CounterpartyID,
		CounterpartyName: cp.Name,
		InvoiceNumber:    req.InvoiceNumber,
		Description:      req.Description,
		FaceAmount:       faceAmount,
		LineItems:        lineItems,
		DocumentDate:     documentDate,
		DueDate:          dueDate,
		DateCreated:      now,
		Payments:         []domain.PaymentRecord{},
		CreditsApplied:   []domain.CreditApplication{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	switch {
	case req.IsCredit:
		if kind != domain.KindBill {
			return nil, fmt.Errorf("%w: only vendor documents can be credits", apperrors.ErrValidation)
		}
		doc.IsCredit = true
		doc.FaceAmount = faceAmount.Neg()
		doc.Status = domain.SimpleStatus(domain.StatusCredit)
	case kind == domain.KindInvoice:
		doc.Status = domain.SimpleStatus(domain.StatusPending)
	default:
		doc.Status = domain.SimpleStatus(domain.StatusUnpaid)
	}

	if req.AlreadyPaid != nil {
		if doc.IsCredit {
			return nil, fmt.Errorf("%w: a credit cannot be marked paid", apperrors.ErrValidation)
		}
		paidDate, err := parsePaymentDate(req.AlreadyPaid.Date)
		if err != nil {
			return nil, err
		}
		if !domain.PaymentType(req.AlreadyPaid.Type).IsSelectable() {
			return nil, fmt.Errorf("%w: unknown payment type %q", apperrors.ErrValidation, req.AlreadyPaid.Type)
		}
		payment := domain.PaymentRecord{
			ID:           uuid.NewString(),
			Type:         domain.PaymentType(req.AlreadyPaid.Type),
			Date:         paidDate,
			Amount:       doc.FaceAmount,
			Reference:    req.AlreadyPaid.Reference,
			Notes:        req.AlreadyPaid.Notes,
			RecordedDate: now,
		}
		doc.Payments = append(doc.Payments, payment)
		doc.Status = domain.SimpleStatus(domain.StatusPaid)
		doc.PaymentDate = &paidDate
		doc.PaymentType = payment.Type
		doc.PaymentReference = payment.Reference
	}

	if err := s.docRepo.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	// Selling tracked products reduces stock. Stock errors do not unwind the
	// invoice; they surface in the log for manual correction.
	if kind == domain.KindInvoice {
		for _, li := range doc.LineItems {
			if li.ProductID == "" {
				continue
			}
			qty := int(li.Quantity.IntPart())
			if qty <= 0 {
				continue
			}
			if err := s.productSvc.ConsumeStock(ctx, li.ProductID, qty, creatorUserID); err != nil {
				logger.Warn("Failed to consume stock for invoice line item",
					slog.String("document_id", doc.DocumentID),
					slog.String("product_id", li.ProductID),
					slog.String("error", err.Error()))
			}
		}
	}

	logger.Info("Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("kind", string(kind)),
		slog.String("status", doc.Status.String()),
		slog.Bool("is_credit", doc.IsCredit))
	return &doc, nil
}

// GetDocumentByID retrieves a single document.
func (s *documentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	return doc, nil
}

// ListDocuments returns one page of documents of a kind. The optional status
// filter matches the effective (overdue-aware) status label, so filtering on
// "Overdue" works even though Overdue is never stored.
func (s *documentService) ListDocuments(ctx context.Context, kind domain.DocumentKind, params dto.ListDocumentsParams) (*dto.ListDocumentsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultDocumentPageLimit
	}

	docs, nextToken, err := s.docRepo.ListDocumentsByKind(ctx, kind, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s documents: %w", kind, err)
	}

	now := time.Now().UTC()
	if params.Status != "" {
		filtered := docs[:0]
		for _, d := range docs {
			if d.EffectiveStatus(now).String() == params.Status {
				filtered = append(filtered, d)
			}
		}
		docs = filtered
	}

	return &dto.ListDocumentsResponse{
		Documents: dto.ToDocumentResponses(docs, now),
		NextToken: nextToken,
	}, nil
}

// UpdateDocument edits header fields. Amounts, payments and credits are
// managed elsewhere and deliberately not editable here.
func (s *documentService) UpdateDocument(ctx context.Context, documentID string, req dto.UpdateDocumentRequest, userID string) (*domain.Document, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}

	if req.InvoiceNumber != nil {
		doc.InvoiceNumber = *req.InvoiceNumber
	}
	if req.Description != nil {
		doc.Description = *req.Description
	}
	if req.DocumentDate != nil {
		t, err := parsePaymentDate(*req.DocumentDate)
		if err != nil {
			return nil, err
		}
		doc.DocumentDate = t
	}
	if req.DueDate != nil {
		t, err := parsePaymentDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		doc.DueDate = t
	}

	doc.LastUpdatedAt = time.Now().UTC()
	doc.LastUpdatedBy = userID

	if err := s.docRepo.UpdateDocument(ctx, *doc); err != nil {
		return nil, fmt.Errorf("failed to update document %s: %w", documentID, err)
	}
	return doc, nil
}

// DeleteDocument removes a document. A consumed credit stays: deleting it
// would orphan the payment trail on the bill it settled.
func (s *documentService) DeleteDocument(ctx context.Context, documentID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	if doc.IsCredit && doc.Status.Code == domain.StatusApplied {
		return fmt.Errorf("%w: credit %s has been applied and cannot be deleted", apperrors.ErrConflict, documentID)
	}

	if err := s.docRepo.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	logger.Info("Document deleted", slog.String("document_id", documentID), slog.String("deleted_by", userID))
	return nil
}
