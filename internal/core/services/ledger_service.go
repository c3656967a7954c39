package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/biz_books_app/internal/apperrors"
	"github.com/SscSPs/biz_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_books_app/internal/core/ports/services"
	"github.com/SscSPs/biz_books_app/internal/dto"
	"github.com/SscSPs/biz_books_app/internal/middleware"
	"github.com/SscSPs/biz_books_app/internal/utils"
)

var (
	ErrDocumentAlreadyPaid = errors.New("document is already fully paid")
	ErrCreditUnavailable   = errors.New("credit is not available")
)

// paymentTolerance is the 1-cent allowance used to treat near-equal sums as
// exactly equal when deciding full-payment status.
var paymentTolerance = decimal.New(1, -2)

var oneHundred = decimal.NewFromInt(100)

// creditTypePrefix marks a payment-type value that references a vendor
// credit instead of a payment method, as the payment dialog submits it.
const creditTypePrefix = "credit-"

// AmountExceedsBalanceError reports a payment or credit application that
// would overpay a document. It carries the computed remaining balance so the
// caller can show a corrective message.
type AmountExceedsBalanceError struct {
	Requested decimal.Decimal
	Remaining decimal.Decimal
}

func (e *AmountExceedsBalanceError) Error() string {
	return fmt.Sprintf("payment amount (%s) exceeds remaining balance (%s)",
		utils.FormatMoney(e.Requested), utils.FormatMoney(e.Remaining))
}

// ledgerService owns the arithmetic and status-transition rules for payable
// and receivable documents.
type ledgerService struct {
	docRepo portsrepo.DocumentRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(docRepo portsrepo.DocumentRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{docRepo: docRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// paymentDateLayouts are the accepted calendar date formats for payment input.
var paymentDateLayouts = []string{"2006-01-02", time.RFC3339, "01/02/2006"}

func parsePaymentDate(s string) (time.Time, error) {
	for _, layout := range paymentDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable payment date %q", apperrors.ErrValidation, s)
}

// OutstandingBalance computes the unpaid remainder of a document.
func (s *ledgerService) OutstandingBalance(ctx context.Context, documentID string) (decimal.Decimal, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	return doc.OutstandingBalance(), nil
}

// AvailableCredits lists the unconsumed vendor credits for a counterparty.
// Order is insertion order; callers needing a different order sort explicitly.
func (s *ledgerService) AvailableCredits(ctx context.Context, counterpartyID string) ([]domain.Document, error) {
	credits, err := s.docRepo.FindAvailableCredits(ctx, counterpartyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list available credits for %s: %w", counterpartyID, err)
	}
	return credits, nil
}

// settle appends a payment record and re-derives the document status from
// the new running total. Paid wins when the remainder is within tolerance
// (or the document is overpaid by less than a cent); otherwise the status
// carries the dollar total paid.
func (s *ledgerService) settle(doc *domain.Document, payment domain.PaymentRecord) {
	doc.Payments = append(doc.Payments, payment)

	totalPaid := doc.TotalPaid()
	remaining := doc.FaceAmount.Sub(totalPaid)

	if remaining.Abs().LessThanOrEqual(paymentTolerance) || totalPaid.GreaterThanOrEqual(doc.FaceAmount) {
		doc.Status = domain.SimpleStatus(domain.StatusPaid)
		paidOn := payment.Date
		doc.PaymentDate = &paidOn
		doc.PaymentType = payment.Type
		doc.PaymentReference = payment.Reference
	} else {
		doc.Status = domain.PartialStatus(totalPaid)
	}
}

func (s *ledgerService) summaryMessage(doc *domain.Document) string {
	noun := "Bill"
	if doc.Kind == domain.KindInvoice {
		noun = "Invoice"
	}
	if doc.Status.Code == domain.StatusPaid {
		return fmt.Sprintf("Payment recorded successfully! %s is now fully paid.", noun)
	}
	totalPaid := doc.TotalPaid()
	return fmt.Sprintf("Partial payment recorded! Paid %s of %s (remaining: %s)",
		utils.FormatMoney(totalPaid),
		utils.FormatMoney(doc.FaceAmount),
		utils.FormatMoney(doc.FaceAmount.Sub(totalPaid)))
}

// RecordPayment validates and appends one payment to a document, re-derives
// its status and persists it. A request type of the form "credit-<id>"
// routes through RecordCreditPayment instead.
func (s *ledgerService) RecordPayment(ctx context.Context, documentID string, req dto.RecordPaymentRequest, userID string) (*domain.Document, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Type == "" {
		return nil, "", fmt.Errorf("%w: payment type is required", apperrors.ErrValidation)
	}
	date, err := parsePaymentDate(req.Date)
	if err != nil {
		return nil, "", err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, "", fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	if strings.HasPrefix(req.Type, creditTypePrefix) {
		creditID := strings.TrimPrefix(req.Type, creditTypePrefix)
		doc, err := s.RecordCreditPayment(ctx, documentID, creditID, req.Amount, date, userID)
		if err != nil {
			return nil, "", err
		}
		return doc, s.summaryMessage(doc), nil
	}

	if !domain.PaymentType(req.Type).IsSelectable() {
		return nil, "", fmt.Errorf("%w: unknown payment type %q", apperrors.ErrValidation, req.Type)
	}

	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	if doc.Status.Code == domain.StatusPaid {
		return nil, "", ErrDocumentAlreadyPaid
	}

	remaining := doc.OutstandingBalance()
	if req.Amount.GreaterThan(remaining.Add(paymentTolerance)) {
		return nil, "", &AmountExceedsBalanceError{Requested: req.Amount, Remaining: remaining}
	}

	now := time.Now().UTC()
	payment := domain.PaymentRecord{
		ID:           uuid.NewString(),
		Type:         domain.PaymentType(req.Type),
		Date:         date,
		Amount:       req.Amount,
		Reference:    req.Reference,
		Notes:        req.Notes,
		RecordedDate: now,
	}

	s.settle(doc, payment)
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = userID

	if err := s.docRepo.UpdateDocument(ctx, *doc); err != nil {
		logger.Error("Failed to persist payment", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return nil, "", fmt.Errorf("failed to persist payment: %w", err)
	}

	logger.Info("Payment recorded",
		slog.String("document_id", documentID),
		slog.String("payment_id", payment.ID),
		slog.String("amount", payment.Amount.String()),
		slog.String("status", doc.Status.String()))
	return doc, s.summaryMessage(doc), nil
}

// loadAvailableCredit fetches a credit document and verifies it can still be
// drawn against the given document.
func (s *ledgerService) loadAvailableCredit(ctx context.Context, doc *domain.Document, creditID string) (*domain.Document, error) {
	credit, err := s.docRepo.FindDocumentByID(ctx, creditID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: credit %s not found", ErrCreditUnavailable, creditID)
		}
		return nil, fmt.Errorf("failed to find credit %s: %w", creditID, err)
	}
	if !credit.IsCredit || credit.Status.Code != domain.StatusCredit {
		return nil, fmt.Errorf("%w: credit %s has already been applied", ErrCreditUnavailable, creditID)
	}
	if credit.CounterpartyID != doc.CounterpartyID {
		return nil, fmt.Errorf("%w: credit %s belongs to a different counterparty", ErrCreditUnavailable, creditID)
	}
	return credit, nil
}

// creditReference names the source credit in the synthetic payment record.
func creditReference(credit *domain.Document) string {
	ref := credit.InvoiceNumber
	if ref == "" {
		ref = credit.DocumentID
	}
	return fmt.Sprintf("Credit from Invoice #%s", ref)
}

// applyCreditToDoc marks the credit consumed and mirrors the draw on the
// document as a CreditApplication entry plus a synthetic Vendor Credit
// payment. Applying any amount exhausts the credit for future matching,
// even when the amount is less than the credit's face value; partial
// draw-down is not supported.
func (s *ledgerService) applyCreditToDoc(doc, credit *domain.Document, amount decimal.Decimal, date time.Time, now time.Time, userID string) {
	credit.Status = domain.SimpleStatus(domain.StatusApplied)
	credit.AppliedToDocumentID = &doc.DocumentID
	appliedOn := date
	credit.AppliedDate = &appliedOn
	credit.LastUpdatedAt = now
	credit.LastUpdatedBy = userID

	doc.CreditsApplied = append(doc.CreditsApplied, domain.CreditApplication{
		CreditID:            credit.DocumentID,
		CreditInvoiceNumber: credit.InvoiceNumber,
		Amount:              amount,
		AppliedDate:         date,
	})

	s.settle(doc, domain.PaymentRecord{
		ID:           uuid.NewString(),
		Type:         domain.PaymentVendorCredit,
		Date:         date,
		Amount:       amount,
		Reference:    creditReference(credit),
		Notes:        "Applied vendor credit",
		RecordedDate: now,
	})
}

// RecordCreditPayment draws one vendor credit against a document. Both the
// document and the credit are rewritten in a single repository transaction;
// a failed write leaves neither mutated.
func (s *ledgerService) RecordCreditPayment(ctx context.Context, documentID string, creditID string, amount decimal.Decimal, date time.Time, userID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: credit amount must be positive", apperrors.ErrValidation)
	}

	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	if doc.Status.Code == domain.StatusPaid {
		return nil, ErrDocumentAlreadyPaid
	}

	credit, err := s.loadAvailableCredit(ctx, doc, creditID)
	if err != nil {
		return nil, err
	}

	remaining := doc.OutstandingBalance()
	if amount.GreaterThan(remaining.Add(paymentTolerance)) {
		return nil, &AmountExceedsBalanceError{Requested: amount, Remaining: remaining}
	}

	now := time.Now().UTC()
	s.applyCreditToDoc(doc, credit, amount, date, now, userID)
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = userID

	if err := s.docRepo.UpdateDocuments(ctx, []domain.Document{*doc, *credit}); err != nil {
		logger.Error("Failed to persist credit application", slog.String("error", err.Error()), slog.String("document_id", documentID), slog.String("credit_id", creditID))
		return nil, fmt.Errorf("failed to persist credit application: %w", err)
	}

	logger.Info("Vendor credit applied",
		slog.String("document_id", documentID),
		slog.String("credit_id", creditID),
		slog.String("amount", amount.String()),
		slog.String("status", doc.Status.String()))
	return doc, nil
}

// ApplyCredits applies several vendor credits to a document in one batch.
// Every selection is validated before anything is mutated; the whole batch
// commits atomically or fails without side effects.
func (s *ledgerService) ApplyCredits(ctx context.Context, documentID string, selections []dto.CreditSelection, userID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(selections) == 0 {
		return nil, fmt.Errorf("%w: at least one credit must be selected", apperrors.ErrValidation)
	}

	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	if doc.Status.Code == domain.StatusPaid {
		return nil, ErrDocumentAlreadyPaid
	}

	// Validate every credit and the combined total before touching anything.
	credits := make([]*domain.Document, 0, len(selections))
	seen := make(map[string]struct{}, len(selections))
	total := decimal.Zero
	for _, sel := range selections {
		if sel.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: credit amount must be positive for credit %s", apperrors.ErrValidation, sel.CreditID)
		}
		if _, dup := seen[sel.CreditID]; dup {
			return nil, fmt.Errorf("%w: credit %s selected more than once", ErrCreditUnavailable, sel.CreditID)
		}
		seen[sel.CreditID] = struct{}{}

		credit, err := s.loadAvailableCredit(ctx, doc, sel.CreditID)
		if err != nil {
			return nil, err
		}
		credits = append(credits, credit)
		total = total.Add(sel.Amount)
	}

	remaining := doc.OutstandingBalance()
	if total.GreaterThan(remaining.Add(paymentTolerance)) {
		return nil, &AmountExceedsBalanceError{Requested: total, Remaining: remaining}
	}

	now := time.Now().UTC()
	for i, sel := range selections {
		s.applyCreditToDoc(doc, credits[i], sel.Amount, now, now, userID)
	}
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = userID

	updates := make([]domain.Document, 0, len(credits)+1)
	updates = append(updates, *doc)
	for _, credit := range credits {
		updates = append(updates, *credit)
	}
	if err := s.docRepo.UpdateDocuments(ctx, updates); err != nil {
		logger.Error("Failed to persist batch credit application", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to persist batch credit application: %w", err)
	}

	logger.Info("Vendor credits applied",
		slog.String("document_id", documentID),
		slog.Int("credit_count", len(credits)),
		slog.String("total", total.String()),
		slog.String("status", doc.Status.String()))
	return doc, nil
}

// MigrateLegacyPartialStatuses rewrites percentage-encoded partial statuses
// ("Partial (NN.N%)") into payment records plus the dollar form. It runs on
// every startup and is idempotent: dollar-encoded statuses are not touched,
// and a document that already has payments only has its status rewritten.
// Unparsable legacy text is logged and left exactly as stored.
func (s *ledgerService) MigrateLegacyPartialStatuses(ctx context.Context) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	migrated := 0
	for _, kind := range []domain.DocumentKind{domain.KindBill, domain.KindInvoice} {
		docs, err := s.docRepo.ListAllDocumentsByKind(ctx, kind)
		if err != nil {
			return migrated, fmt.Errorf("failed to list %s documents for migration: %w", kind, err)
		}
		for i := range docs {
			doc := &docs[i]
			if doc.Status.Code == domain.StatusUnknown && strings.Contains(doc.Status.String(), "Partial") {
				logger.Warn("Unparsable legacy partial status, leaving untouched",
					slog.String("document_id", doc.DocumentID),
					slog.String("status", doc.Status.String()))
				continue
			}
			if !doc.Status.IsLegacyPercent() {
				continue
			}

			now := time.Now().UTC()
			impliedAmount := doc.FaceAmount.Mul(doc.Status.Percent).Div(oneHundred)
			if len(doc.Payments) == 0 {
				paymentDate := doc.DateCreated
				if doc.PaymentDate != nil {
					paymentDate = *doc.PaymentDate
				}
				doc.Payments = append(doc.Payments, domain.PaymentRecord{
					ID:           uuid.NewString(),
					Type:         domain.PaymentUnknown, // original payment type was never recorded
					Date:         paymentDate,
					Amount:       impliedAmount,
					Reference:    "Migrated from old system",
					Notes:        fmt.Sprintf("Original status: %s", doc.Status.String()),
					RecordedDate: now,
				})
			}

			doc.Status = domain.PartialStatus(doc.TotalPaid())
			doc.LastUpdatedAt = now

			if err := s.docRepo.UpdateDocument(ctx, *doc); err != nil {
				return migrated, fmt.Errorf("failed to persist migrated document %s: %w", doc.DocumentID, err)
			}
			migrated++
			logger.Info("Migrated legacy partial status",
				slog.String("document_id", doc.DocumentID),
				slog.String("status", doc.Status.String()))
		}
	}

	return migrated, nil
}
