package services

import (
	"context"
	"time"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
	"github.com/SscSPs/biz_books_app/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations on the payment ledger.
type LedgerReaderSvc interface {
	// OutstandingBalance computes the unpaid remainder of a document.
	OutstandingBalance(ctx context.Context, documentID string) (decimal.Decimal, error)

	// AvailableCredits lists the unconsumed vendor credits for a counterparty,
	// in insertion order.
	AvailableCredits(ctx context.Context, counterpartyID string) ([]domain.Document, error)
}

// LedgerWriterSvc defines the mutating ledger operations.
type LedgerWriterSvc interface {
	// RecordPayment appends a payment to a document and re-derives its status.
	// A request type of the form "credit-<creditID>" applies a vendor credit
	// instead of a direct payment. Returns the updated document and the
	// summary message shown to the user.
	RecordPayment(ctx context.Context, documentID string, req dto.RecordPaymentRequest, userID string) (*domain.Document, string, error)

	// RecordCreditPayment draws a vendor credit against a document: the credit
	// is marked Applied, the document gains a CreditApplication entry and a
	// synthetic Vendor Credit payment. Both documents persist atomically.
	RecordCreditPayment(ctx context.Context, documentID string, creditID string, amount decimal.Decimal, date time.Time, userID string) (*domain.Document, error)

	// ApplyCredits applies several credits in one batch, all-or-nothing.
	ApplyCredits(ctx context.Context, documentID string, selections []dto.CreditSelection, userID string) (*domain.Document, error)
}

// LedgerMigratorSvc migrates legacy data encodings on load.
type LedgerMigratorSvc interface {
	// MigrateLegacyPartialStatuses rewrites percentage-encoded partial
	// statuses into payment records plus dollar-encoded statuses. Safe to run
	// on every startup; returns the number of documents rewritten.
	MigrateLegacyPartialStatuses(ctx context.Context) (int, error)
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerMigratorSvc
}
