package utils

import "github.com/shopspring/decimal"

// FormatMoney renders an amount as a two-decimal dollar string, e.g. "$60.00".
// Used for status payloads and user-facing payment messages.
func FormatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
