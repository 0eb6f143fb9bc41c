// Package ledger keeps client aggregates and fee status consistent with the
// fees and payments recorded in a storage.Store.
//
// The store offers no transactions across records. Every mutation therefore
// commits its primary write first and then runs a cascade: a fee status flip
// (for payments) and a full recomputation of the affected clients' totals.
// Cascade failures are logged and counted but never returned, so aggregates
// can lag behind the source records until the next mutation for the same
// client, or until Reconcile is run.
package ledger

import (
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/feeledger/internal/metrics"
	"github.com/mmynk/feeledger/internal/storage"
)

// ErrInvalidArgument marks input rejected before any store write.
var ErrInvalidArgument = errors.New("invalid argument")

// DefaultReconcileConcurrency bounds parallel recomputes during Reconcile.
const DefaultReconcileConcurrency = 4

// Ledger exposes the per-entity operations and owns the single store handle
// shared by the recalculator, the fee lifecycle controller and the cascade.
type Ledger struct {
	store   storage.Store
	log     *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	reconcileConcurrency int

	recalc    *Recalculator
	lifecycle *FeeLifecycle
	cascade   *Cascade
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithMetrics sets the metrics sink. Defaults to none.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) { l.metrics = m }
}

// WithClock overrides the time source used for default payment dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithReconcileConcurrency bounds the number of clients recomputed at once by Reconcile.
func WithReconcileConcurrency(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.reconcileConcurrency = n
		}
	}
}

// New builds a Ledger over store.
func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:                store,
		log:                  slog.Default(),
		now:                  time.Now,
		reconcileConcurrency: DefaultReconcileConcurrency,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.With("component", "ledger")

	l.recalc = NewRecalculator(store, store, l.log, l.metrics)
	l.lifecycle = NewFeeLifecycle(store)
	l.cascade = NewCascade(l.recalc, l.lifecycle, l.log, l.metrics)
	return l
}

// Recalculator returns the ledger's recalculator.
func (l *Ledger) Recalculator() *Recalculator { return l.recalc }

// today returns the current UTC date as YYYY-MM-DD.
func (l *Ledger) today() string {
	return l.now().UTC().Format(dateLayout)
}

const dateLayout = "2006-01-02"
