package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/feeledger/internal/models"
	"github.com/mmynk/feeledger/internal/storage"
)

// CreatePayment stores a payment, marks its fee paid and recomputes the
// fee owner's totals. The payment date defaults to today.
func (l *Ledger) CreatePayment(ctx context.Context, in models.Payment) (*models.Payment, error) {
	payment := in
	payment.ID = 0
	if payment.PaymentDate == "" {
		payment.PaymentDate = l.today()
	}
	if err := validateStruct(&payment); err != nil {
		return nil, err
	}
	if err := l.requireFee(ctx, payment.FeeID); err != nil {
		return nil, err
	}

	if err := l.store.CreatePayment(ctx, &payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	l.log.Info("Payment created", "payment_id", payment.ID, "fee_id", payment.FeeID, "amount", payment.Amount.String())

	l.cascade.AfterPaymentCreated(ctx, payment.FeeID)
	return &payment, nil
}

// UpdatePayment applies the present fields of patch. It triggers no
// cascade: changing a payment's amount or fee leaves totals as they are.
func (l *Ledger) UpdatePayment(ctx context.Context, id int64, patch models.PaymentPatch) (*models.Payment, error) {
	if err := validateStruct(&patch); err != nil {
		return nil, err
	}
	if patch.FeeID != nil {
		if err := l.requireFee(ctx, *patch.FeeID); err != nil {
			return nil, err
		}
	}

	payment, err := l.store.UpdatePayment(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment %d: %w", id, err)
	}
	return payment, nil
}

// DeletePayment removes a payment, returns its fee to pending and
// recomputes the fee owner's totals.
func (l *Ledger) DeletePayment(ctx context.Context, id int64) error {
	var feeID int64
	before, err := l.store.GetPayment(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return err
	case err != nil:
		l.log.Warn("Could not read payment before delete", "payment_id", id, "error", err)
	default:
		feeID = before.FeeID
	}

	if err := l.store.DeletePayment(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment %d: %w", id, err)
	}
	l.log.Info("Payment deleted", "payment_id", id, "fee_id", feeID)

	l.cascade.AfterPaymentDeleted(ctx, feeID)
	return nil
}

// Payments lists all payments, most recent first.
func (l *Ledger) Payments(ctx context.Context) ([]*models.Payment, error) {
	payments, err := l.store.FindPayments(ctx, storage.PaymentQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// Payment returns one payment; storage.ErrNotFound if absent.
func (l *Ledger) Payment(ctx context.Context, id int64) (*models.Payment, error) {
	return l.store.GetPayment(ctx, id)
}

// PaymentsByFee lists a fee's payments. A store failure yields an empty list.
func (l *Ledger) PaymentsByFee(ctx context.Context, feeID int64) []*models.Payment {
	payments, err := l.store.FindPayments(ctx, storage.PaymentQuery{FeeID: feeID})
	if err != nil {
		l.log.Warn("PaymentsByFee failed", "fee_id", feeID, "error", err)
		return []*models.Payment{}
	}
	return payments
}

// requireFee checks that a referenced fee exists.
func (l *Ledger) requireFee(ctx context.Context, feeID int64) error {
	_, err := l.store.GetFee(ctx, feeID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: fee %d does not exist", ErrInvalidArgument, feeID)
	}
	if err != nil {
		return fmt.Errorf("failed to look up fee %d: %w", feeID, err)
	}
	return nil
}
