package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_books_app/internal/core/ports/services"
	"github.com/SscSPs/biz_books_app/internal/dto"
)

// reportingService aggregates ledger totals for the dashboard and the
// payables aging view. Everything is recomputed from the documents on each
// call; nothing here is cached or persisted.
type reportingService struct {
	docRepo portsrepo.DocumentRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(docRepo portsrepo.DocumentRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{docRepo: docRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) DashboardSummary(ctx context.Context, asOf time.Time) (*dto.DashboardSummaryResponse, error) {
	bills, err := s.docRepo.ListAllDocumentsByKind(ctx, domain.KindBill)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	invoices, err := s.docRepo.ListAllDocumentsByKind(ctx, domain.KindInvoice)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	summary := &dto.DashboardSummaryResponse{
		TotalReceivable:  decimal.Zero,
		TotalPayable:     decimal.Zero,
		PaidThisMonth:    decimal.Zero,
		AvailableCredits: decimal.Zero,
	}

	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())

	for i := range bills {
		b := &bills[i]
		if b.IsCredit {
			if b.Status.Code == domain.StatusCredit {
				summary.AvailableCredits = summary.AvailableCredits.Add(b.FaceAmount.Abs())
			}
			continue
		}
		switch b.EffectiveStatus(asOf).Code {
		case domain.StatusPaid:
		case domain.StatusOverdue:
			summary.OverdueBills++
			summary.TotalPayable = summary.TotalPayable.Add(b.OutstandingBalance())
		default:
			summary.TotalPayable = summary.TotalPayable.Add(b.OutstandingBalance())
		}
		for _, p := range b.Payments {
			if !p.Date.Before(monthStart) && p.Date.Before(asOf.AddDate(0, 0, 1)) {
				summary.PaidThisMonth = summary.PaidThisMonth.Add(p.Amount)
			}
		}
	}

	for i := range invoices {
		inv := &invoices[i]
		switch inv.EffectiveStatus(asOf).Code {
		case domain.StatusPaid:
		case domain.StatusOverdue:
			summary.OverdueInvoices++
			summary.TotalReceivable = summary.TotalReceivable.Add(inv.OutstandingBalance())
		default:
			summary.TotalReceivable = summary.TotalReceivable.Add(inv.OutstandingBalance())
		}
	}

	return summary, nil
}

// agingBucketLabel places a bill by how many days past due it is.
func agingBucketLabel(daysOverdue int) string {
	switch {
	case daysOverdue <= 0:
		return "Current"
	case daysOverdue <= 30:
		return "1-30"
	case daysOverdue <= 60:
		return "31-60"
	case daysOverdue <= 90:
		return "61-90"
	default:
		return "90+"
	}
}

var agingBucketOrder = []string{"Current", "1-30", "31-60", "61-90", "90+"}

func (s *reportingService) PayablesAging(ctx context.Context, asOf time.Time) (*dto.AgingReportResponse, error) {
	bills, err := s.docRepo.ListAllDocumentsByKind(ctx, domain.KindBill)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	byLabel := make(map[string]*dto.AgingBucket, len(agingBucketOrder))
	for _, label := range agingBucketOrder {
		byLabel[label] = &dto.AgingBucket{Label: label, Balance: decimal.Zero}
	}

	for i := range bills {
		b := &bills[i]
		if b.IsCredit || b.EffectiveStatus(asOf).Code == domain.StatusPaid {
			continue
		}
		daysOverdue := int(asOf.Sub(b.DueDate).Hours() / 24)
		bucket := byLabel[agingBucketLabel(daysOverdue)]
		bucket.Count++
		bucket.Balance = bucket.Balance.Add(b.OutstandingBalance())
	}

	report := &dto.AgingReportResponse{Buckets: make([]dto.AgingBucket, 0, len(agingBucketOrder))}
	for _, label := range agingBucketOrder {
		report.Buckets = append(report.Buckets, *byLabel[label])
	}
	return report, nil
}
