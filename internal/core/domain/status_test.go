package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCode  domain.StatusCode
		wantBack  string
		isLegacy  bool
		isPartial bool
	}{
		{
			name:     "simple unpaid",
			input:    "Unpaid",
			wantCode: domain.StatusUnpaid,
			wantBack: "Unpaid",
		},
		{
			name:     "simple pending",
			input:    "Pending",
			wantCode: domain.StatusPending,
			wantBack: "Pending",
		},
		{
			name:      "dollar partial",
			input:     "Partial ($60.00)",
			wantCode:  domain.StatusPartial,
			wantBack:  "Partial ($60.00)",
			isPartial: true,
		},
		{
			name:      "percent partial is legacy",
			input:     "Partial (40.0%)",
			wantCode:  domain.StatusPartial,
			wantBack:  "Partial (40.0%)",
			isLegacy:  true,
			isPartial: true,
		},
		{
			name:      "integer percent partial",
			input:     "Partial (75%)",
			wantCode:  domain.StatusPartial,
			wantBack:  "Partial (75%)",
			isLegacy:  true,
			isPartial: true,
		},
		{
			name:     "credit",
			input:    "Credit",
			wantCode: domain.StatusCredit,
			wantBack: "Credit",
		},
		{
			name:     "applied",
			input:    "Applied",
			wantCode: domain.StatusApplied,
			wantBack: "Applied",
		},
		{
			name:      "malformed partial survives verbatim",
			input:     "Partial (garbage%)",
			wantCode:  domain.StatusUnknown,
			wantBack:  "Partial (garbage%)",
			isPartial: true,
		},
		{
			name:     "arbitrary text survives verbatim",
			input:    "In Dispute",
			wantCode: domain.StatusUnknown,
			wantBack: "In Dispute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := domain.ParseStatus(tt.input)
			assert.Equal(t, tt.wantCode, st.Code)
			assert.Equal(t, tt.wantBack, st.String())
			assert.Equal(t, tt.isLegacy, st.IsLegacyPercent())
			assert.Equal(t, tt.isPartial, st.IsPartial())
		})
	}
}

func TestPartialStatus_RendersTwoDecimals(t *testing.T) {
	st := domain.PartialStatus(decimal.RequireFromString("60"))
	assert.Equal(t, "Partial ($60.00)", st.String())

	st = domain.PartialStatus(decimal.RequireFromString("33.335"))
	assert.Equal(t, "Partial ($33.33)", st.String())
}

func TestStatus_JSONRoundTrip(t *testing.T) {
	for _, text := range []string{"Paid", "Partial ($12.50)", "Partial (40.0%)", "Weird Legacy Text"} {
		st := domain.ParseStatus(text)

		data, err := json.Marshal(st)
		require.NoError(t, err)
		assert.JSONEq(t, `"`+text+`"`, string(data))

		var back domain.Status
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, text, back.String())
	}
}

func TestEffectiveStatus_OverdueDerivedOnRead(t *testing.T) {
	asOf := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	bill := &domain.Document{
		Kind:    domain.KindBill,
		Status:  domain.SimpleStatus(domain.StatusUnpaid),
		DueDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, domain.StatusOverdue, bill.EffectiveStatus(asOf).Code)
	// Persisted status is untouched.
	assert.Equal(t, domain.StatusUnpaid, bill.Status.Code)

	// Due today is not overdue.
	bill.DueDate = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, domain.StatusUnpaid, bill.EffectiveStatus(asOf).Code)

	// A later due date brings the document back out of Overdue.
	bill.DueDate = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, domain.StatusUnpaid, bill.EffectiveStatus(asOf).Code)

	invoice := &domain.Document{
		Kind:    domain.KindInvoice,
		Status:  domain.SimpleStatus(domain.StatusPending),
		DueDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, domain.StatusOverdue, invoice.EffectiveStatus(asOf).Code)
}

func TestEffectiveStatus_NeverReclassifies(t *testing.T) {
	asOf := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	pastDue := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	partial := &domain.Document{
		Kind:    domain.KindBill,
		Status:  domain.PartialStatus(decimal.RequireFromString("10")),
		DueDate: pastDue,
	}
	assert.Equal(t, domain.StatusPartial, partial.EffectiveStatus(asOf).Code)

	paid := &domain.Document{
		Kind:    domain.KindBill,
		Status:  domain.SimpleStatus(domain.StatusPaid),
		DueDate: pastDue,
	}
	assert.Equal(t, domain.StatusPaid, paid.EffectiveStatus(asOf).Code)

	credit := &domain.Document{
		Kind:     domain.KindBill,
		IsCredit: true,
		Status:   domain.SimpleStatus(domain.StatusCredit),
		DueDate:  pastDue,
	}
	assert.Equal(t, domain.StatusCredit, credit.EffectiveStatus(asOf).Code)
}

func TestFormatStatus(t *testing.T) {
	asOf := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	past := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		doc       domain.Document
		wantLabel string
		wantClass string
	}{
		{
			name:      "paid is green",
			doc:       domain.Document{Status: domain.SimpleStatus(domain.StatusPaid), DueDate: past},
			wantLabel: "Paid",
			wantClass: "text-success",
		},
		{
			name:      "overdue is red",
			doc:       domain.Document{Status: domain.SimpleStatus(domain.StatusUnpaid), DueDate: past},
			wantLabel: "Overdue",
			wantClass: "text-danger",
		},
		{
			name:      "partial is amber with dollar label",
			doc:       domain.Document{Status: domain.PartialStatus(decimal.RequireFromString("60")), DueDate: past},
			wantLabel: "Partial ($60.00)",
			wantClass: "text-warning",
		},
		{
			name:      "legacy percent partial is still amber",
			doc:       domain.Document{Status: domain.ParseStatus("Partial (40.0%)"), DueDate: past},
			wantLabel: "Partial (40.0%)",
			wantClass: "text-warning",
		},
		{
			name:      "credit is blue",
			doc:       domain.Document{IsCredit: true, Status: domain.SimpleStatus(domain.StatusCredit), DueDate: past},
			wantLabel: "Credit",
			wantClass: "text-info",
		},
		{
			name:      "applied is blue",
			doc:       domain.Document{IsCredit: true, Status: domain.SimpleStatus(domain.StatusApplied), DueDate: past},
			wantLabel: "Applied",
			wantClass: "text-info",
		},
		{
			name:      "unpaid not yet due is muted",
			doc:       domain.Document{Status: domain.SimpleStatus(domain.StatusUnpaid), DueDate: future},
			wantLabel: "Unpaid",
			wantClass: "text-muted",
		},
		{
			name:      "unknown text is muted",
			doc:       domain.Document{Status: domain.ParseStatus("In Dispute"), DueDate: future},
			wantLabel: "In Dispute",
			wantClass: "text-muted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			badge := domain.FormatStatus(&tt.doc, asOf)
			assert.Equal(t, tt.wantLabel, badge.Label)
			assert.Equal(t, tt.wantClass, badge.ColorClass)
		})
	}
}

func TestDocument_Balances(t *testing.T) {
	doc := domain.Document{
		FaceAmount: decimal.RequireFromString("100"),
		Payments: []domain.PaymentRecord{
			{Amount: decimal.RequireFromString("60")},
			{Amount: decimal.RequireFromString("19.99")},
		},
	}
	assert.True(t, doc.TotalPaid().Equal(decimal.RequireFromString("79.99")))
	assert.True(t, doc.OutstandingBalance().Equal(decimal.RequireFromString("20.01")))
}
