package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_books_app/internal/core/ports/services"
)

// exportService renders documents as CSV for download.
type exportService struct {
	docRepo portsrepo.DocumentRepositoryFacade
}

// NewExportService creates a new ExportService.
func NewExportService(docRepo portsrepo.DocumentRepositoryFacade) portssvc.ExportSvcFacade {
	return &exportService{docRepo: docRepo}
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

var exportHeader = []string{
	"DocumentID", "InvoiceNumber", "Counterparty", "Description",
	"FaceAmount", "TotalPaid", "Balance", "Status",
	"DocumentDate", "DueDate", "PaymentDate", "PaymentType", "IsCredit",
}

// ExportDocumentsCSV renders every document of one kind as CSV. Status is
// the effective (overdue-aware) label so the export matches the table view.
func (s *exportService) ExportDocumentsCSV(ctx context.Context, kind domain.DocumentKind) ([]byte, error) {
	docs, err := s.docRepo.ListAllDocumentsByKind(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s documents: %w", kind, err)
	}

	now := time.Now().UTC()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range docs {
		d := &docs[i]
		paymentDate := ""
		if d.PaymentDate != nil {
			paymentDate = d.PaymentDate.Format("2006-01-02")
		}
		record := []string{
			d.DocumentID,
			d.InvoiceNumber,
			d.CounterpartyName,
			d.Description,
			d.FaceAmount.StringFixed(2),
			d.TotalPaid().StringFixed(2),
			d.OutstandingBalance().StringFixed(2),
			d.EffectiveStatus(now).String(),
			d.DocumentDate.Format("2006-01-02"),
			d.DueDate.Format("2006-01-02"),
			paymentDate,
			string(d.PaymentType),
			fmt.Sprintf("%t", d.IsCredit),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
