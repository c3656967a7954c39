package services

import (
	"context"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
)

// ExportSvcFacade renders ledger data for download.
type ExportSvcFacade interface {
	// ExportDocumentsCSV renders every document of one kind as CSV.
	ExportDocumentsCSV(ctx context.Context, kind domain.DocumentKind) ([]byte, error)
}
