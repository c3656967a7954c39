package dto

import (
	"github.com/SscSPs/biz_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest is the payload for recording a payment against a
// bill or invoice. Type is either one of the fixed payment methods or a
// "credit-<creditID>" reference selecting a vendor credit, exactly as the
// payment dialog submits it.
type RecordPaymentRequest struct {
	Type      string          `json:"type" binding:"required"`
	Date      string          `json:"date" binding:"required"` // calendar date, e.g. 2025-01-01
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// CreditSelection picks one vendor credit and the amount to draw from it.
type CreditSelection struct {
	CreditID string          `json:"creditId" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

// ApplyCreditsRequest is the payload for the bulk credit-application dialog.
type ApplyCreditsRequest struct {
	Credits []CreditSelection `json:"credits" binding:"required,min=1,dive"`
}

// PaymentResponse mirrors one payment record on a document.
type PaymentResponse struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Reference    string          `json:"reference"`
	Notes        string          `json:"notes"`
	RecordedDate string          `json:"recordedDate"`
}

// PaymentResultResponse is returned after a successful payment or credit
// application: the updated document plus the summary message the UI shows.
type PaymentResultResponse struct {
	Document DocumentResponse `json:"document"`
	Message  string           `json:"message"`
}

// ToPaymentResponses converts domain payment records to DTOs.
func ToPaymentResponses(payments []domain.PaymentRecord) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = PaymentResponse{
			ID:           p.ID,
			Type:         string(p.Type),
			Date:         p.Date.Format("2006-01-02"),
			Amount:       p.Amount,
			Reference:    p.Reference,
			Notes:        p.Notes,
			RecordedDate: p.RecordedDate.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	return out
}
