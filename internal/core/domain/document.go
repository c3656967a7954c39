package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes payables from receivables.
type DocumentKind string

const (
	KindBill    DocumentKind = "BILL"    // money owed to a vendor
	KindInvoice DocumentKind = "INVOICE" // money owed by a customer
)

// PaymentType is the closed vocabulary of payment methods.
type PaymentType string

const (
	PaymentCash         PaymentType = "Cash"
	PaymentCheck        PaymentType = "Check"
	PaymentCreditCard   PaymentType = "Credit Card"
	PaymentDebitCard    PaymentType = "Debit Card"
	PaymentBankTransfer PaymentType = "Bank Transfer"
	PaymentACHWire      PaymentType = "ACH/Wire"
	PaymentPayPal       PaymentType = "PayPal"
	PaymentVenmo        PaymentType = "Venmo"
	PaymentZelle        PaymentType = "Zelle"
	PaymentOther        PaymentType = "Other"

	// Synthetic types, never offered for direct entry.
	PaymentVendorCredit PaymentType = "Vendor Credit" // credit application
	PaymentUnknown      PaymentType = "Unknown"       // legacy-data migration
)

// PaymentTypes lists the methods a user may pick when recording a payment.
var PaymentTypes = []PaymentType{
	PaymentCash, PaymentCheck, PaymentCreditCard, PaymentDebitCard,
	PaymentBankTransfer, PaymentACHWire, PaymentPayPal, PaymentVenmo,
	PaymentZelle, PaymentOther,
}

// IsSelectable reports whether the payment type may be supplied by a caller.
// The synthetic types are reserved for the ledger engine itself.
func (t PaymentType) IsSelectable() bool {
	for _, pt := range PaymentTypes {
		if t == pt {
			return true
		}
	}
	return false
}

// PaymentRecord is one discrete payment event applied to a document.
// Records are append-only and immutable once written.
type PaymentRecord struct {
	ID           string          `json:"id"`
	Type         PaymentType     `json:"type"`
	Date         time.Time       `json:"date"` // value date, distinct from RecordedDate
	Amount       decimal.Decimal `json:"amount"`
	Reference    string          `json:"reference"`
	Notes        string          `json:"notes"`
	RecordedDate time.Time       `json:"recordedDate"` // timestamp of data entry
}

// CreditApplication records that a credit document contributed Amount toward
// a bill. It is the credit-side view of the synthetic Vendor Credit payment
// appended to the bill, so "what paid this bill" and "where did this credit
// go" stay independently queryable.
type CreditApplication struct {
	CreditID            string          `json:"creditId"`
	CreditInvoiceNumber string          `json:"creditInvoiceNumber"`
	Amount              decimal.Decimal `json:"amount"`
	AppliedDate         time.Time       `json:"appliedDate"`
}

// LineItem is one billed line on a document.
type LineItem struct {
	ProductID   string          `json:"productId,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Total returns quantity times unit price.
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Document is a payable (bill) or receivable (invoice), or a vendor-credit
// pseudo-document when IsCredit is set (negative FaceAmount).
type Document struct {
	DocumentID       string       `json:"documentId"`
	Kind             DocumentKind `json:"kind"`
	CounterpartyID   string       `json:"counterpartyId"`
	CounterpartyName string       `json:"counterpartyName"`
	InvoiceNumber    string       `json:"invoiceNumber"`
	Description      string       `json:"description"`

	FaceAmount decimal.Decimal `json:"faceAmount"` // negative for credits
	IsCredit   bool            `json:"isCredit"`
	Status     Status          `json:"status"`

	LineItems []LineItem `json:"lineItems,omitempty"`

	DocumentDate time.Time `json:"documentDate"` // date on the bill/invoice itself
	DueDate      time.Time `json:"dueDate"`
	DateCreated  time.Time `json:"dateCreated"`

	// Stamped only once the document reaches Paid.
	PaymentDate      *time.Time  `json:"paymentDate,omitempty"`
	PaymentType      PaymentType `json:"paymentType,omitempty"`
	PaymentReference string      `json:"paymentReference,omitempty"`

	Payments       []PaymentRecord     `json:"payments"`
	CreditsApplied []CreditApplication `json:"creditsApplied"`

	// Set only on a credit document once it has been consumed.
	AppliedToDocumentID *string    `json:"appliedToDocumentId,omitempty"`
	AppliedDate         *time.Time `json:"appliedDate,omitempty"`

	AuditFields
}

// TotalPaid sums every payment on the document using exact decimal
// arithmetic.
func (d *Document) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range d.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// OutstandingBalance is the face amount less everything paid so far.
func (d *Document) OutstandingBalance() decimal.Decimal {
	return d.FaceAmount.Sub(d.TotalPaid())
}
