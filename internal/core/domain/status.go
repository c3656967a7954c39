package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StatusCode is the tag of the Status variant.
type StatusCode string

const (
	StatusUnpaid  StatusCode = "Unpaid"  // bills awaiting payment
	StatusPending StatusCode = "Pending" // invoices awaiting payment
	StatusOverdue StatusCode = "Overdue" // derived on read, never persisted
	StatusPartial StatusCode = "Partial"
	StatusPaid    StatusCode = "Paid"
	StatusCredit  StatusCode = "Credit"  // unconsumed vendor credit
	StatusApplied StatusCode = "Applied" // consumed vendor credit
	StatusUnknown StatusCode = "Unknown" // unrecognized persisted text, kept verbatim
)

var (
	partialDollarRe  = regexp.MustCompile(`^Partial \(\$(-?\d+\.?\d*)\)$`)
	partialPercentRe = regexp.MustCompile(`^Partial \((\d+\.?\d*)%\)$`)
)

// Status is the document status as a tagged variant. The legacy display
// strings ("Partial ($60.00)", "Partial (40.0%)") exist only at the
// parse/render boundary; business logic switches on Code.
type Status struct {
	Code       StatusCode
	AmountPaid decimal.Decimal // Partial only: running total paid in dollars
	Percent    decimal.Decimal // Partial only: legacy percentage encoding
	Legacy     bool            // Partial parsed from the percent form, awaiting migration

	raw string // original text for Legacy and Unknown, preserved verbatim
}

// SimpleStatus wraps a bare status code with no payload.
func SimpleStatus(code StatusCode) Status {
	return Status{Code: code}
}

// PartialStatus builds the dollar-encoded partial status.
func PartialStatus(amountPaid decimal.Decimal) Status {
	return Status{Code: StatusPartial, AmountPaid: amountPaid}
}

// ParseStatus maps persisted status text into a Status. Unrecognized text is
// not an error: it parses to StatusUnknown and renders back verbatim, so a
// malformed legacy record survives load/store untouched.
func ParseStatus(s string) Status {
	switch StatusCode(s) {
	case StatusUnpaid, StatusPending, StatusOverdue, StatusPaid, StatusCredit, StatusApplied:
		return Status{Code: StatusCode(s)}
	}
	if m := partialDollarRe.FindStringSubmatch(s); m != nil {
		amount, err := decimal.NewFromString(m[1])
		if err == nil {
			return Status{Code: StatusPartial, AmountPaid: amount}
		}
	}
	if m := partialPercentRe.FindStringSubmatch(s); m != nil {
		percent, err := decimal.NewFromString(m[1])
		if err == nil {
			return Status{Code: StatusPartial, Percent: percent, Legacy: true, raw: s}
		}
	}
	return Status{Code: StatusUnknown, raw: s}
}

// String renders the persisted display form.
func (s Status) String() string {
	if s.raw != "" {
		return s.raw
	}
	if s.Code == StatusPartial {
		return fmt.Sprintf("Partial ($%s)", s.AmountPaid.StringFixed(2))
	}
	return string(s.Code)
}

// IsPartial reports membership in the partial family, regardless of whether
// the payload is the dollar or the legacy percent form.
func (s Status) IsPartial() bool {
	return s.Code == StatusPartial || strings.HasPrefix(s.raw, "Partial")
}

// IsLegacyPercent reports whether this status still carries the historical
// percentage encoding and needs migration.
func (s Status) IsLegacyPercent() bool {
	return s.Code == StatusPartial && s.Legacy
}

// MarshalJSON renders the status as its display string, which is the wire
// and storage contract consumed by the UI layer.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses the display string form.
func (s *Status) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*s = ParseStatus(text)
	return nil
}

// EffectiveStatus derives the status to display as of a given instant.
// An Unpaid bill or Pending invoice past its due date shows Overdue; the
// persisted status stays untouched so a corrected due date or clock brings
// the document back out of Overdue on the next read. Partially-paid, paid
// and credit documents are never reclassified.
func (d *Document) EffectiveStatus(asOf time.Time) Status {
	if d.IsCredit {
		return d.Status
	}
	if d.Status.Code == StatusUnpaid || d.Status.Code == StatusPending {
		if !d.DueDate.IsZero() && d.DueDate.Before(startOfDay(asOf)) {
			return SimpleStatus(StatusOverdue)
		}
	}
	return d.Status
}

func startOfDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}

// StatusBadge carries the presentation hints for a status.
type StatusBadge struct {
	Label      string `json:"label"`
	ColorClass string `json:"colorClass"`
}

// FormatStatus maps a document's effective status to its display label and
// color class. Anything in the partial family gets the partial treatment;
// the dollar suffix is data, not part of the tag.
func FormatStatus(d *Document, asOf time.Time) StatusBadge {
	status := d.EffectiveStatus(asOf)
	badge := StatusBadge{Label: status.String(), ColorClass: "text-muted"}
	switch {
	case status.Code == StatusPaid:
		badge.ColorClass = "text-success"
	case status.Code == StatusOverdue:
		badge.ColorClass = "text-danger"
	case status.Code == StatusCredit || status.Code == StatusApplied:
		badge.ColorClass = "text-info"
	case status.IsPartial():
		badge.ColorClass = "text-warning"
	}
	return badge
}
