package services

import (
	"context"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
	"github.com/SscSPs/biz_books_app/internal/dto"
)

// DocumentReaderSvc defines read operations for documents.
type DocumentReaderSvc interface {
	// GetDocumentByID retrieves a single document.
	GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments retrieves a paginated list of documents of one kind.
	ListDocuments(ctx context.Context, kind domain.DocumentKind, params dto.ListDocumentsParams) (*dto.ListDocumentsResponse, error)
}

// DocumentWriterSvc defines write operations for documents.
type DocumentWriterSvc interface {
	// CreateDocument creates a bill or invoice (or vendor-credit pseudo-bill).
	CreateDocument(ctx context.Context, kind domain.DocumentKind, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error)

	// UpdateDocument updates mutable header fields.
	UpdateDocument(ctx context.Context, documentID string, req dto.UpdateDocumentRequest, userID string) (*domain.Document, error)

	// DeleteDocument removes a document.
	DeleteDocument(ctx context.Context, documentID string, userID string) error
}

// DocumentSvcFacade combines all document service interfaces.
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
}
