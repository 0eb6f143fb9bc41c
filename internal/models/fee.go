package models

import "github.com/shopspring/decimal"

// FeeStatus is the lifecycle state of a fee.
type FeeStatus string

const (
	FeeStatusPending FeeStatus = "pending"
	FeeStatusOverdue FeeStatus = "overdue"
	FeeStatusPaid    FeeStatus = "paid"
)

// Valid reports whether s is one of the known statuses.
func (s FeeStatus) Valid() bool {
	switch s {
	case FeeStatusPending, FeeStatusOverdue, FeeStatusPaid:
		return true
	}
	return false
}

// Due reports whether a fee in this status counts toward a client's total due.
// Overdue is treated the same as pending.
func (s FeeStatus) Due() bool {
	return s == FeeStatusPending || s == FeeStatusOverdue
}

// Fee is an amount a client owes.
//
// Status moves pending -> paid when a payment is recorded and back to
// pending when a payment is removed. Overdue is only ever set by callers.
type Fee struct {
	ID          int64           `json:"id"`
	ClientID    int64           `json:"clientId" validate:"required,gt=0"`
	Description string          `json:"description" validate:"max=500"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
	DueDate     string          `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Category    string          `json:"category" validate:"max=100"`
	Status      FeeStatus       `json:"status"`
	IsRecurring bool            `json:"isRecurring"`
	Note        string          `json:"note"`
}

// FeePatch is a sparse update. Nil fields are left unchanged.
type FeePatch struct {
	ClientID    *int64           `json:"clientId,omitempty" validate:"omitempty,gt=0"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	Amount      *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gte=0"`
	DueDate     *string          `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Status      *FeeStatus       `json:"status,omitempty" validate:"omitempty,oneof=pending overdue paid"`
	IsRecurring *bool            `json:"isRecurring,omitempty"`
	Note        *string          `json:"note,omitempty"`
}

// Empty reports whether the patch carries no fields.
func (p FeePatch) Empty() bool {
	return p.ClientID == nil && p.Description == nil && p.Amount == nil && p.DueDate == nil &&
		p.Category == nil && p.Status == nil && p.IsRecurring == nil && p.Note == nil
}

// StatusPatch returns a patch that sets only the status.
func StatusPatch(status FeeStatus) FeePatch {
	return FeePatch{Status: &status}
}
