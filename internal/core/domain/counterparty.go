package domain

// CounterpartyKind distinguishes vendors from customers.
type CounterpartyKind string

const (
	KindVendor   CounterpartyKind = "VENDOR"
	KindCustomer CounterpartyKind = "CUSTOMER"
)

// Counterparty is a vendor (bills are owed to it) or a customer (invoices
// are owed by it).
type Counterparty struct {
	CounterpartyID string           `json:"counterpartyId"`
	Kind           CounterpartyKind `json:"kind"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Address        string           `json:"address"`
	ContactName    string           `json:"contactName"`
	Notes          string           `json:"notes"`
	AuditFields
}
