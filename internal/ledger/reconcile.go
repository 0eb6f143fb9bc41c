package ledger

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/feeledger/internal/metrics"
	"github.com/mmynk/feeledger/internal/storage"
)

// ReconcileReport summarizes a Reconcile run.
type ReconcileReport struct {
	Clients int     // clients attempted
	Failed  []int64 // clients whose recompute failed, ascending
}

// Reconcile recomputes the aggregates of the given clients, or of every
// client when none are given. It repairs drift left by failed cascades.
// Individual failures are reported, not returned; an error means the run
// itself could not proceed (the client list could not be read, or ctx
// was cancelled).
func (l *Ledger) Reconcile(ctx context.Context, clientIDs ...int64) (ReconcileReport, error) {
	if len(clientIDs) == 0 {
		clients, err := l.store.FindClients(ctx, storage.ClientQuery{})
		if err != nil {
			return ReconcileReport{}, fmt.Errorf("failed to list clients: %w", err)
		}
		for _, c := range clients {
			clientIDs = append(clientIDs, c.ID)
		}
	}

	var (
		mu     sync.Mutex
		failed []int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.reconcileConcurrency)
	for _, id := range clientIDs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := l.recalc.Run(gctx, id)
			l.metrics.Cascade(metrics.StepReconcile, err)
			if err != nil {
				l.log.Error("Reconcile failed for client", "client_id", id, "error", err)
				mu.Lock()
				failed = append(failed, id)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ReconcileReport{}, fmt.Errorf("reconcile interrupted: %w", err)
	}

	slices.Sort(failed)
	report := ReconcileReport{Clients: len(clientIDs), Failed: failed}
	l.log.Info("Reconcile finished", "clients", report.Clients, "failed", len(report.Failed))
	return report, nil
}
