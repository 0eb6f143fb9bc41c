package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/feeledger/internal/models"
	"github.com/mmynk/feeledger/internal/storage"
)

// CreateFee stores a new pending fee and recomputes its client's totals.
// Any status in the input is ignored.
func (l *Ledger) CreateFee(ctx context.Context, in models.Fee) (*models.Fee, error) {
	fee := in
	fee.ID = 0
	fee.Status = models.FeeStatusPending
	if err := validateStruct(&fee); err != nil {
		return nil, err
	}
	if err := l.requireClient(ctx, fee.ClientID); err != nil {
		return nil, err
	}

	if err := l.store.CreateFee(ctx, &fee); err != nil {
		return nil, fmt.Errorf("failed to create fee: %w", err)
	}
	l.log.Info("Fee created", "fee_id", fee.ID, "client_id", fee.ClientID, "amount", fee.Amount.String())

	l.cascade.AfterFeeWrite(ctx, fee.ClientID, fee.ClientID)
	return &fee, nil
}

// UpdateFee applies the present fields of patch through the lifecycle
// controller, then recomputes the previous and current owners.
func (l *Ledger) UpdateFee(ctx context.Context, id int64, patch models.FeePatch) (*models.Fee, error) {
	if err := validateStruct(&patch); err != nil {
		return nil, err
	}

	// The owner before the write; zero if it could not be read.
	var ownerBefore int64
	before, err := l.store.GetFee(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, err
	case err != nil:
		l.log.Warn("Could not read fee before update", "fee_id", id, "error", err)
	default:
		ownerBefore = before.ClientID
	}

	if patch.ClientID != nil && *patch.ClientID != ownerBefore {
		if err := l.requireClient(ctx, *patch.ClientID); err != nil {
			return nil, err
		}
	}

	fee, err := l.lifecycle.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	l.log.Info("Fee updated", "fee_id", id, "client_id", fee.ClientID, "status", fee.Status)

	l.cascade.AfterFeeWrite(ctx, ownerBefore, fee.ClientID)
	return fee, nil
}

// DeleteFee removes a fee and recomputes its owner's totals.
// Payments referencing the fee are left in place.
func (l *Ledger) DeleteFee(ctx context.Context, id int64) error {
	var ownerBefore int64
	before, err := l.store.GetFee(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return err
	case err != nil:
		l.log.Warn("Could not read fee before delete", "fee_id", id, "error", err)
	default:
		ownerBefore = before.ClientID
	}

	if err := l.store.DeleteFee(ctx, id); err != nil {
		return fmt.Errorf("failed to delete fee %d: %w", id, err)
	}
	l.log.Info("Fee deleted", "fee_id", id, "client_id", ownerBefore)

	l.cascade.AfterFeeWrite(ctx, ownerBefore, ownerBefore)
	return nil
}

// Fees lists all fees, latest due date first.
func (l *Ledger) Fees(ctx context.Context) ([]*models.Fee, error) {
	fees, err := l.store.FindFees(ctx, storage.FeeQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to list fees: %w", err)
	}
	return fees, nil
}

// Fee returns one fee; storage.ErrNotFound if absent.
func (l *Ledger) Fee(ctx context.Context, id int64) (*models.Fee, error) {
	return l.store.GetFee(ctx, id)
}

// FeesByClient lists a client's fees. A store failure yields an empty list.
func (l *Ledger) FeesByClient(ctx context.Context, clientID int64) []*models.Fee {
	fees, err := l.store.FindFees(ctx, storage.FeeQuery{ClientID: clientID})
	if err != nil {
		l.log.Warn("FeesByClient failed", "client_id", clientID, "error", err)
		return []*models.Fee{}
	}
	return fees
}

// requireClient checks that a referenced client exists.
func (l *Ledger) requireClient(ctx context.Context, clientID int64) error {
	_, err := l.store.GetClient(ctx, clientID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: client %d does not exist", ErrInvalidArgument, clientID)
	}
	if err != nil {
		return fmt.Errorf("failed to look up client %d: %w", clientID, err)
	}
	return nil
}
