package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/feeledger/internal/calculator"
	"github.com/mmynk/feeledger/internal/metrics"
	"github.com/mmynk/feeledger/internal/models"
	"github.com/mmynk/feeledger/internal/storage"
)

// Recalculator derives a client's TotalDue and TotalPaid from its fees.
// It is the only writer of those two fields.
type Recalculator struct {
	fees    storage.FeeStore
	clients storage.ClientStore
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewRecalculator builds a Recalculator.
func NewRecalculator(fees storage.FeeStore, clients storage.ClientStore, log *slog.Logger, m *metrics.Metrics) *Recalculator {
	return &Recalculator{fees: fees, clients: clients, log: log, metrics: m}
}

// Recompute rewrites clientID's aggregates from its current fees.
// Failures are logged and counted, never returned.
func (r *Recalculator) Recompute(ctx context.Context, clientID int64) {
	if clientID <= 0 {
		return
	}
	totals, err := r.Run(ctx, clientID)
	r.metrics.Cascade(metrics.StepRecompute, err)
	if err != nil {
		r.log.Error("Recompute failed", "client_id", clientID, "error", err)
		return
	}
	r.log.Debug("Client totals recomputed",
		"client_id", clientID,
		"total_due", totals.TotalDue.String(),
		"total_paid", totals.TotalPaid.String(),
	)
}

// Run performs one full recompute and reports its result.
//
// A failed fee lookup aborts the run instead of writing zero totals, so a
// transient read error cannot wipe a client's aggregates.
func (r *Recalculator) Run(ctx context.Context, clientID int64) (calculator.ClientTotals, error) {
	start := time.Now()
	defer r.metrics.ObserveRecompute(start)

	fees, err := r.fees.FindFees(ctx, storage.FeeQuery{ClientID: clientID})
	if err != nil {
		return calculator.ClientTotals{}, fmt.Errorf("failed to load fees for client %d: %w", clientID, err)
	}

	totals := calculator.CalculateClientTotals(calculator.FeesForTotals(fees))

	_, err = r.clients.UpdateClient(ctx, clientID, models.ClientPatch{
		TotalDue:  &totals.TotalDue,
		TotalPaid: &totals.TotalPaid,
	})
	if err != nil {
		return calculator.ClientTotals{}, fmt.Errorf("failed to write totals for client %d: %w", clientID, err)
	}

	return totals, nil
}
