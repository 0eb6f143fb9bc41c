package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/feeledger/internal/ledger"
)

// FeeService implements feeledger.v1.FeeService.
type FeeService struct {
	ledger *ledger.Ledger
}

// NewFeeService creates a new FeeService backed by l.
func NewFeeService(l *ledger.Ledger) *FeeService {
	return &FeeService{ledger: l}
}

// CreateFee creates a pending fee and refreshes the owner's totals.
func (s *FeeService) CreateFee(ctx context.Context, req *connect.Request[CreateFeeRequest]) (*connect.Response[FeeResponse], error) {
	slog.Info("CreateFee request received",
		"client_id", req.Msg.Fee.ClientID,
		"amount", req.Msg.Fee.Amount.String(),
	)

	fee, err := s.ledger.CreateFee(ctx, req.Msg.Fee)
	if err != nil {
		slog.Error("CreateFee failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&FeeResponse{Fee: fee}), nil
}

// GetFee retrieves a fee by ID.
func (s *FeeService) GetFee(ctx context.Context, req *connect.Request[GetFeeRequest]) (*connect.Response[FeeResponse], error) {
	slog.Info("GetFee request received", "fee_id", req.Msg.ID)

	fee, err := s.ledger.Fee(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("GetFee failed", "fee_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&FeeResponse{Fee: fee}), nil
}

// ListFees lists all fees, or one client's fees when ClientID is set.
// A per-client listing never fails; store errors yield an empty list.
func (s *FeeService) ListFees(ctx context.Context, req *connect.Request[ListFeesRequest]) (*connect.Response[ListFeesResponse], error) {
	slog.Info("ListFees request received", "client_id", req.Msg.ClientID)

	if req.Msg.ClientID > 0 {
		fees := s.ledger.FeesByClient(ctx, req.Msg.ClientID)
		return connect.NewResponse(&ListFeesResponse{Fees: fees}), nil
	}

	fees, err := s.ledger.Fees(ctx)
	if err != nil {
		slog.Error("ListFees failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("ListFees successful", "count", len(fees))
	return connect.NewResponse(&ListFeesResponse{Fees: fees}), nil
}

// UpdateFee applies a partial update and refreshes the old and new owners' totals.
func (s *FeeService) UpdateFee(ctx context.Context, req *connect.Request[UpdateFeeRequest]) (*connect.Response[FeeResponse], error) {
	slog.Info("UpdateFee request received", "fee_id", req.Msg.ID)

	fee, err := s.ledger.UpdateFee(ctx, req.Msg.ID, req.Msg.Patch)
	if err != nil {
		slog.Error("UpdateFee failed", "fee_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&FeeResponse{Fee: fee}), nil
}

// DeleteFee removes a fee and refreshes its owner's totals.
func (s *FeeService) DeleteFee(ctx context.Context, req *connect.Request[DeleteFeeRequest]) (*connect.Response[DeleteResponse], error) {
	slog.Info("DeleteFee request received", "fee_id", req.Msg.ID)

	if err := s.ledger.DeleteFee(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteFee failed", "fee_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&DeleteResponse{}), nil
}

// NewFeeServiceHandler builds the HTTP handler for svc and returns the
// path to mount it on.
func NewFeeServiceHandler(svc *FeeService, opts ...connect.HandlerOption) (string, http.Handler) {
	r := newRoutes(opts)
	handle(r, FeeServiceCreateFeeProcedure, svc.CreateFee)
	handle(r, FeeServiceGetFeeProcedure, svc.GetFee)
	handle(r, FeeServiceListFeesProcedure, svc.ListFees)
	handle(r, FeeServiceUpdateFeeProcedure, svc.UpdateFee)
	handle(r, FeeServiceDeleteFeeProcedure, svc.DeleteFee)
	return servicePath(FeeServiceName), r.mux
}

// FeeServiceClient calls feeledger.v1.FeeService.
type FeeServiceClient struct {
	createFee *connect.Client[CreateFeeRequest, FeeResponse]
	getFee    *connect.Client[GetFeeRequest, FeeResponse]
	listFees  *connect.Client[ListFeesRequest, ListFeesResponse]
	updateFee *connect.Client[UpdateFeeRequest, FeeResponse]
	deleteFee *connect.Client[DeleteFeeRequest, DeleteResponse]
}

// NewFeeServiceClient constructs a client for the service at baseURL.
func NewFeeServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *FeeServiceClient {
	return &FeeServiceClient{
		createFee: newClient[CreateFeeRequest, FeeResponse](httpClient, baseURL, FeeServiceCreateFeeProcedure, opts),
		getFee:    newClient[GetFeeRequest, FeeResponse](httpClient, baseURL, FeeServiceGetFeeProcedure, opts),
		listFees:  newClient[ListFeesRequest, ListFeesResponse](httpClient, baseURL, FeeServiceListFeesProcedure, opts),
		updateFee: newClient[UpdateFeeRequest, FeeResponse](httpClient, baseURL, FeeServiceUpdateFeeProcedure, opts),
		deleteFee: newClient[DeleteFeeRequest, DeleteResponse](httpClient, baseURL, FeeServiceDeleteFeeProcedure, opts),
	}
}

func (c *FeeServiceClient) CreateFee(ctx context.Context, req *connect.Request[CreateFeeRequest]) (*connect.Response[FeeResponse], error) {
	return c.createFee.CallUnary(ctx, req)
}

func (c *FeeServiceClient) GetFee(ctx context.Context, req *connect.Request[GetFeeRequest]) (*connect.Response[FeeResponse], error) {
	return c.getFee.CallUnary(ctx, req)
}

func (c *FeeServiceClient) ListFees(ctx context.Context, req *connect.Request[ListFeesRequest]) (*connect.Response[ListFeesResponse], error) {
	return c.listFees.CallUnary(ctx, req)
}

func (c *FeeServiceClient) UpdateFee(ctx context.Context, req *connect.Request[UpdateFeeRequest]) (*connect.Response[FeeResponse], error) {
	return c.updateFee.CallUnary(ctx, req)
}

func (c *FeeServiceClient) DeleteFee(ctx context.Context, req *connect.Request[DeleteFeeRequest]) (*connect.Response[DeleteResponse], error) {
	return c.deleteFee.CallUnary(ctx, req)
}
