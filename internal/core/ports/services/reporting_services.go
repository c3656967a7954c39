package services

import (
	"context"
	"time"

	"github.com/SscSPs/biz_books_app/internal/dto"
)

// ReportingSvcFacade defines read-only aggregations over the ledger.
type ReportingSvcFacade interface {
	// DashboardSummary computes the headline totals as of a given instant.
	DashboardSummary(ctx context.Context, asOf time.Time) (*dto.DashboardSummaryResponse, error)

	// PayablesAging buckets open bills by days overdue.
	PayablesAging(ctx context.Context, asOf time.Time) (*dto.AgingReportResponse, error)
}
