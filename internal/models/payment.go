package models

import "github.com/shopspring/decimal"

// Payment records money received against a fee.
// The existence of any payment for a fee is what marks that fee paid.
type Payment struct {
	ID          int64           `json:"id"`
	FeeID       int64           `json:"feeId" validate:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
	PaymentDate string          `json:"paymentDate" validate:"omitempty,datetime=2006-01-02"`
	Method      string          `json:"method" validate:"max=50"`
	Reference   string          `json:"reference" validate:"max=200"`
}

// PaymentPatch is a sparse update. Nil fields are left unchanged.
type PaymentPatch struct {
	FeeID       *int64           `json:"feeId,omitempty" validate:"omitempty,gt=0"`
	Amount      *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gte=0"`
	PaymentDate *string          `json:"paymentDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Method      *string          `json:"method,omitempty" validate:"omitempty,max=50"`
	Reference   *string          `json:"reference,omitempty" validate:"omitempty,max=200"`
}

// Empty reports whether the patch carries no fields.
func (p PaymentPatch) Empty() bool {
	return p.FeeID == nil && p.Amount == nil && p.PaymentDate == nil && p.Method == nil && p.Reference == nil
}
