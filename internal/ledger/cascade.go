package ledger

import (
	"context"
	"log/slog"

	"github.com/mmynk/feeledger/internal/metrics"
	"github.com/mmynk/feeledger/internal/models"
)

// Cascade runs the secondary work that follows a committed primary write.
// Nothing it does is reported back to the caller of the primary mutation.
//
//	fee created / updated / deleted  -> recompute owner (old and new owner if it changed)
//	payment created                  -> fee to paid, recompute owner
//	payment deleted                  -> fee to pending, recompute owner
//	payment updated                  -> nothing
type Cascade struct {
	recalc    *Recalculator
	lifecycle *FeeLifecycle
	log       *slog.Logger
	metrics   *metrics.Metrics
}

// NewCascade builds a Cascade.
func NewCascade(recalc *Recalculator, lifecycle *FeeLifecycle, log *slog.Logger, m *metrics.Metrics) *Cascade {
	return &Cascade{recalc: recalc, lifecycle: lifecycle, log: log, metrics: m}
}

// AfterFeeWrite recomputes the fee's owner before and after the write.
// Zero IDs mean "unknown" and are skipped; equal IDs recompute once.
func (c *Cascade) AfterFeeWrite(ctx context.Context, ownerBefore, ownerAfter int64) {
	ctx = context.WithoutCancel(ctx)

	c.recalc.Recompute(ctx, ownerBefore)
	if ownerAfter != ownerBefore {
		c.recalc.Recompute(ctx, ownerAfter)
	}
}

// AfterPaymentCreated marks the payment's fee paid and recomputes its owner.
func (c *Cascade) AfterPaymentCreated(ctx context.Context, feeID int64) {
	c.afterPayment(ctx, feeID, models.FeeStatusPaid, c.lifecycle.MarkPaid)
}

// AfterPaymentDeleted returns the payment's fee to pending and recomputes its
// owner, even if other payments still reference the fee.
func (c *Cascade) AfterPaymentDeleted(ctx context.Context, feeID int64) {
	c.afterPayment(ctx, feeID, models.FeeStatusPending, c.lifecycle.MarkPending)
}

// afterPayment flips the fee status and then recomputes the fee's owner.
// If the flip fails the recompute is skipped: the fee set it would read
// has not changed.
func (c *Cascade) afterPayment(ctx context.Context, feeID int64, status models.FeeStatus,
	flip func(context.Context, int64) (*models.Fee, error)) {
	if feeID <= 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	fee, err := flip(ctx, feeID)
	c.metrics.Cascade(metrics.StepStatusFlip, err)
	if err != nil {
		c.log.Error("Fee status flip failed",
			"fee_id", feeID,
			"status", status,
			"error", err,
		)
		return
	}

	c.log.Debug("Fee status flipped", "fee_id", feeID, "status", status)
	c.recalc.Recompute(ctx, fee.ClientID)
}
