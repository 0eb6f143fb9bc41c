package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/feeledger/internal/ledger"
)

// LedgerService implements feeledger.v1.LedgerService: on-demand repair
// of client totals.
type LedgerService struct {
	ledger *ledger.Ledger
}

// NewLedgerService creates a new LedgerService backed by l.
func NewLedgerService(l *ledger.Ledger) *LedgerService {
	return &LedgerService{ledger: l}
}

// Recompute rewrites one client's totals and returns them. Unlike the
// cascade, failures are reported to the caller.
func (s *LedgerService) Recompute(ctx context.Context, req *connect.Request[RecomputeRequest]) (*connect.Response[RecomputeResponse], error) {
	slog.Info("Recompute request received", "client_id", req.Msg.ClientID)

	totals, err := s.ledger.Recalculator().Run(ctx, req.Msg.ClientID)
	if err != nil {
		slog.Error("Recompute failed", "client_id", req.Msg.ClientID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&RecomputeResponse{
		ClientID:  req.Msg.ClientID,
		TotalDue:  totals.TotalDue,
		TotalPaid: totals.TotalPaid,
	}), nil
}

// Reconcile recomputes the requested clients, or every client.
func (s *LedgerService) Reconcile(ctx context.Context, req *connect.Request[ReconcileRequest]) (*connect.Response[ReconcileResponse], error) {
	slog.Info("Reconcile request received", "clients_requested", len(req.Msg.ClientIDs))

	report, err := s.ledger.Reconcile(ctx, req.Msg.ClientIDs...)
	if err != nil {
		slog.Error("Reconcile failed", "error", err)
		return nil, connectError(err)
	}

	failed := report.Failed
	if failed == nil {
		failed = []int64{}
	}
	return connect.NewResponse(&ReconcileResponse{Clients: report.Clients, Failed: failed}), nil
}

// NewLedgerServiceHandler builds the HTTP handler for svc and returns the
// path to mount it on.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	r := newRoutes(opts)
	handle(r, LedgerServiceRecomputeProcedure, svc.Recompute)
	handle(r, LedgerServiceReconcileProcedure, svc.Reconcile)
	return servicePath(LedgerServiceName), r.mux
}

// LedgerServiceClient calls feeledger.v1.LedgerService.
type LedgerServiceClient struct {
	recompute *connect.Client[RecomputeRequest, RecomputeResponse]
	reconcile *connect.Client[ReconcileRequest, ReconcileResponse]
}

// NewLedgerServiceClient constructs a client for the service at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	return &LedgerServiceClient{
		recompute: newClient[RecomputeRequest, RecomputeResponse](httpClient, baseURL, LedgerServiceRecomputeProcedure, opts),
		reconcile: newClient[ReconcileRequest, ReconcileResponse](httpClient, baseURL, LedgerServiceReconcileProcedure, opts),
	}
}

func (c *LedgerServiceClient) Recompute(ctx context.Context, req *connect.Request[RecomputeRequest]) (*connect.Response[RecomputeResponse], error) {
	return c.recompute.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) Reconcile(ctx context.Context, req *connect.Request[ReconcileRequest]) (*connect.Response[ReconcileResponse], error) {
	return c.reconcile.CallUnary(ctx, req)
}
