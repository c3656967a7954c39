package dto

import "github.com/shopspring/decimal"

// DashboardSummaryResponse aggregates ledger totals for the dashboard.
type DashboardSummaryResponse struct {
	TotalReceivable  decimal.Decimal `json:"totalReceivable"`  // open invoice balances
	TotalPayable     decimal.Decimal `json:"totalPayable"`     // open bill balances
	OverdueInvoices  int             `json:"overdueInvoices"`
	OverdueBills     int             `json:"overdueBills"`
	PaidThisMonth    decimal.Decimal `json:"paidThisMonth"`    // bill payments recorded this month
	AvailableCredits decimal.Decimal `json:"availableCredits"` // unconsumed vendor credit value
}

// AgingBucket is one slice of the payables aging report.
type AgingBucket struct {
	Label   string          `json:"label"` // e.g. "1-30"
	Count   int             `json:"count"`
	Balance decimal.Decimal `json:"balance"`
}

// AgingReportResponse buckets open payables by days overdue.
type AgingReportResponse struct {
	Buckets []AgingBucket `json:"buckets"`
}
