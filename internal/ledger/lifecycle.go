package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/feeledger/internal/models"
	"github.com/mmynk/feeledger/internal/storage"
)

// FeeLifecycle applies fee updates, including the payment-driven
// pending -> paid -> pending transitions.
//
// Each call is exactly one store write; the store applies the patch and
// returns the committed row, so there is no read-modify-write window
// inside a call. It never moves a fee to overdue.
type FeeLifecycle struct {
	fees storage.FeeStore
}

// NewFeeLifecycle builds a FeeLifecycle.
func NewFeeLifecycle(fees storage.FeeStore) *FeeLifecycle {
	return &FeeLifecycle{fees: fees}
}

// Update writes the present fields of patch. Store failures are returned.
func (c *FeeLifecycle) Update(ctx context.Context, feeID int64, patch models.FeePatch) (*models.Fee, error) {
	fee, err := c.fees.UpdateFee(ctx, feeID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update fee %d: %w", feeID, err)
	}
	return fee, nil
}

// MarkPaid moves a fee to paid after a payment is recorded against it.
func (c *FeeLifecycle) MarkPaid(ctx context.Context, feeID int64) (*models.Fee, error) {
	return c.Update(ctx, feeID, models.StatusPatch(models.FeeStatusPaid))
}

// MarkPending moves a fee back to pending after one of its payments is removed.
// It does not look for other payments still referencing the fee.
func (c *FeeLifecycle) MarkPending(ctx context.Context, feeID int64) (*models.Fee, error) {
	return c.Update(ctx, feeID, models.StatusPatch(models.FeeStatusPending))
}
