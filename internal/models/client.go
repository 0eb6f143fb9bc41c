package models

import "github.com/shopspring/decimal"

// DefaultClientStatus is assigned to clients created without a status.
const DefaultClientStatus = "active"

// Client represents a customer who owes fees.
//
// TotalDue and TotalPaid are aggregates derived from the client's fees.
// They are written only by the ledger's recalculator and never accepted
// from callers.
type Client struct {
	// ID is assigned by the store on create.
	ID int64 `json:"id"`

	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=50"`

	// TotalDue is the sum of pending and overdue fee amounts.
	TotalDue decimal.Decimal `json:"totalDue"`

	// TotalPaid is the sum of paid fee amounts.
	TotalPaid decimal.Decimal `json:"totalPaid"`

	// Status is free-form; defaults to DefaultClientStatus.
	Status string `json:"status" validate:"max=50"`
}

// ClientPatch is a sparse update. Nil fields are left unchanged.
type ClientPatch struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Status *string `json:"status,omitempty" validate:"omitempty,max=50"`

	// TotalDue and TotalPaid are only set by aggregate recomputation.
	TotalDue  *decimal.Decimal `json:"-"`
	TotalPaid *decimal.Decimal `json:"-"`
}

// Empty reports whether the patch carries no fields.
func (p ClientPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Status == nil &&
		p.TotalDue == nil && p.TotalPaid == nil
}

// WithoutAggregates returns a copy of p with the aggregate fields cleared.
func (p ClientPatch) WithoutAggregates() ClientPatch {
	p.TotalDue = nil
	p.TotalPaid = nil
	return p
}
