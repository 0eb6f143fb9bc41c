// reconcile recomputes client totals from their fees, repairing any drift
// left behind by failed cascades. With no --client flags it walks every
// client.
//
//	reconcile --config feeledger.yaml
//	reconcile --client 7 --client 12
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/mmynk/feeledger/internal/config"
	"github.com/mmynk/feeledger/internal/ledger"
	"github.com/mmynk/feeledger/internal/storage/backend"
	"github.com/mmynk/feeledger/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// errIncomplete is returned when some clients could not be reconciled.
var errIncomplete = errors.New("some clients could not be reconciled")

func run(ctx context.Context, args []string, out io.Writer) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	flags := config.NewFlags("reconcile")
	var clientIDs []int64
	flags.FlagSet().Int64SliceVar(&clientIDs, "client", nil, "client ID to reconcile (repeatable; default all)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := flags.Load()
	if err != nil {
		return err
	}
	logger, err := logging.Setup(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	store, err := backend.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	l := ledger.New(store,
		ledger.WithLogger(logger),
		ledger.WithReconcileConcurrency(cfg.Reconcile.Concurrency),
	)

	report, err := l.Reconcile(ctx, clientIDs...)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "reconciled %d clients, %d failed\n", report.Clients, len(report.Failed))
	for _, id := range report.Failed {
		fmt.Fprintf(out, "  failed: client %d\n", id)
	}
	if len(report.Failed) > 0 {
		return errIncomplete
	}
	return nil
}
