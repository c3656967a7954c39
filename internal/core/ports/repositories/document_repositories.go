package repositories

import (
	"context"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
)

// DocumentReader defines read operations for payable/receivable documents.
type DocumentReader interface {
	// FindDocumentByID retrieves a single document by its unique identifier.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocumentsByKind retrieves a paginated list of documents of one kind
	// using token-based pagination. It returns the documents, a token for the
	// next page, and an error.
	ListDocumentsByKind(ctx context.Context, kind domain.DocumentKind, limit int, nextToken *string) ([]domain.Document, *string, error)

	// ListAllDocumentsByKind retrieves every document of one kind in insertion
	// order. Used by migration, reporting and export, which need the full set.
	ListAllDocumentsByKind(ctx context.Context, kind domain.DocumentKind) ([]domain.Document, error)

	// FindAvailableCredits retrieves the unconsumed credit documents for a
	// counterparty, in insertion order.
	FindAvailableCredits(ctx context.Context, counterpartyID string) ([]domain.Document, error)
}

// DocumentWriter defines write operations for documents.
type DocumentWriter interface {
	// SaveDocument persists a new document.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// UpdateDocument rewrites an existing document in full.
	UpdateDocument(ctx context.Context, doc domain.Document) error

	// UpdateDocuments rewrites several documents atomically: either every
	// update commits or none does. Credit application depends on this to keep
	// the bill and its source credits consistent.
	UpdateDocuments(ctx context.Context, docs []domain.Document) error

	// DeleteDocument removes a document.
	DeleteDocument(ctx context.Context, documentID string) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
