package dto

import "github.com/SscSPs/biz_books_app/internal/core/domain"

// CreateCounterpartyRequest creates a vendor or customer.
type CreateCounterpartyRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	ContactName string `json:"contactName"`
	Notes       string `json:"notes"`
}

// UpdateCounterpartyRequest updates a vendor or customer.
type UpdateCounterpartyRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	ContactName *string `json:"contactName"`
	Notes       *string `json:"notes"`
}

// CounterpartyResponse mirrors a counterparty for the API.
type CounterpartyResponse struct {
	CounterpartyID string `json:"counterpartyId"`
	Kind           string `json:"kind"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	ContactName    string `json:"contactName"`
	Notes          string `json:"notes"`
}

// ToCounterpartyResponse converts a domain counterparty to its API shape.
func ToCounterpartyResponse(cp *domain.Counterparty) CounterpartyResponse {
	return CounterpartyResponse{
		CounterpartyID: cp.CounterpartyID,
		Kind:           string(cp.Kind),
		Name:           cp.Name,
		Email:          cp.Email,
		Phone:          cp.Phone,
		Address:        cp.Address,
		ContactName:    cp.ContactName,
		Notes:          cp.Notes,
	}
}

// ToCounterpartyResponses converts a slice of domain counterparties.
func ToCounterpartyResponses(cps []domain.Counterparty) []CounterpartyResponse {
	out := make([]CounterpartyResponse, len(cps))
	for i := range cps {
		out[i] = ToCounterpartyResponse(&cps[i])
	}
	return out
}
