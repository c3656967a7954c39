package dto

import (
	"time"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one billed line on a new document.
type LineItemRequest struct {
	ProductID   string          `json:"productId"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// InitialPaymentRequest marks a new document as already paid at creation
// time, recording one covering payment.
type InitialPaymentRequest struct {
	Type      string `json:"type" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Reference string `json:"reference"`
	Notes     string `json:"notes"`
}

// CreateDocumentRequest is the payload for creating a bill or an invoice.
// Either LineItems or Amount must be supplied; line items win when both are.
type CreateDocumentRequest struct {
	CounterpartyID string            `json:"counterpartyId" binding:"required"`
	InvoiceNumber  string            `json:"invoiceNumber"`
	Description    string            `json:"description"`
	LineItems      []LineItemRequest `json:"lineItems" binding:"omitempty,dive"`
	Amount         *decimal.Decimal  `json:"amount"`
	IsCredit       bool              `json:"isCredit"`
	DocumentDate   string            `json:"documentDate" binding:"required"`
	DueDate        string            `json:"dueDate" binding:"required"`
	AlreadyPaid    *InitialPaymentRequest `json:"alreadyPaid"`
}

// UpdateDocumentRequest updates mutable header fields of a document.
// Payments and credits are append-only and never edited through this.
type UpdateDocumentRequest struct {
	InvoiceNumber *string `json:"invoiceNumber"`
	Description   *string `json:"description"`
	DocumentDate  *string `json:"documentDate"`
	DueDate       *string `json:"dueDate"`
}

// DocumentResponse mirrors a document for the API, with derived fields the
// table rendering consumes (effective status, totals, balance).
type DocumentResponse struct {
	DocumentID       string                     `json:"documentId"`
	Kind             string                     `json:"kind"`
	CounterpartyID   string                     `json:"counterpartyId"`
	CounterpartyName string                     `json:"counterpartyName"`
	InvoiceNumber    string                     `json:"invoiceNumber"`
	Description      string                     `json:"description"`
	FaceAmount       decimal.Decimal            `json:"faceAmount"`
	IsCredit         bool                       `json:"isCredit"`
	Status           string                     `json:"status"`
	StatusBadge      domain.StatusBadge         `json:"statusBadge"`
	TotalPaid        decimal.Decimal            `json:"totalPaid"`
	Balance          decimal.Decimal            `json:"balance"`
	DocumentDate     string                     `json:"documentDate"`
	DueDate          string                     `json:"dueDate"`
	DateCreated      string                     `json:"dateCreated"`
	PaymentDate      *string                    `json:"paymentDate,omitempty"`
	PaymentType      string                     `json:"paymentType,omitempty"`
	PaymentReference string                     `json:"paymentReference,omitempty"`
	Payments         []PaymentResponse          `json:"payments"`
	CreditsApplied   []domain.CreditApplication `json:"creditsApplied"`
	AppliedToID      *string                    `json:"appliedToDocumentId,omitempty"`
}

// ListDocumentsParams holds parameters for listing documents.
type ListDocumentsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
	Status    string  `form:"status"` // optional effective-status filter
}

// ListDocumentsResponse is a page of documents plus the token for the next page.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToDocumentResponse converts a domain document to its API shape, deriving
// the display status as of now.
func ToDocumentResponse(d *domain.Document, asOf time.Time) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:       d.DocumentID,
		Kind:             string(d.Kind),
		CounterpartyID:   d.CounterpartyID,
		CounterpartyName: d.CounterpartyName,
		InvoiceNumber:    d.InvoiceNumber,
		Description:      d.Description,
		FaceAmount:       d.FaceAmount,
		IsCredit:         d.IsCredit,
		Status:           d.EffectiveStatus(asOf).String(),
		StatusBadge:      domain.FormatStatus(d, asOf),
		TotalPaid:        d.TotalPaid(),
		Balance:          d.OutstandingBalance(),
		DocumentDate:     d.DocumentDate.Format("2006-01-02"),
		DueDate:          d.DueDate.Format("2006-01-02"),
		DateCreated:      d.DateCreated.Format("2006-01-02"),
		PaymentType:      string(d.PaymentType),
		PaymentReference: d.PaymentReference,
		Payments:         ToPaymentResponses(d.Payments),
		CreditsApplied:   d.CreditsApplied,
		AppliedToID:      d.AppliedToDocumentID,
	}
	if d.PaymentDate != nil {
		s := d.PaymentDate.Format("2006-01-02")
		resp.PaymentDate = &s
	}
	if resp.CreditsApplied == nil {
		resp.CreditsApplied = []domain.CreditApplication{}
	}
	return resp
}

// ToDocumentResponses converts a slice of domain documents.
func ToDocumentResponses(docs []domain.Document, asOf time.Time) []DocumentResponse {
	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = ToDocumentResponse(&docs[i], asOf)
	}
	return out
}
