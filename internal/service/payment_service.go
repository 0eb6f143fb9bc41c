package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/feeledger/internal/ledger"
)

// PaymentService implements feeledger.v1.PaymentService.
type PaymentService struct {
	ledger *ledger.Ledger
}

// NewPaymentService creates a new PaymentService backed by l.
func NewPaymentService(l *ledger.Ledger) *PaymentService {
	return &PaymentService{ledger: l}
}

// CreatePayment records a payment, marks its fee paid and refreshes the owner's totals.
func (s *PaymentService) CreatePayment(ctx context.Context, req *connect.Request[CreatePaymentRequest]) (*connect.Response[PaymentResponse], error) {
	slog.Info("CreatePayment request received",
		"fee_id", req.Msg.Payment.FeeID,
		"amount", req.Msg.Payment.Amount.String(),
	)

	payment, err := s.ledger.CreatePayment(ctx, req.Msg.Payment)
	if err != nil {
		slog.Error("CreatePayment failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&PaymentResponse{Payment: payment}), nil
}

// GetPayment retrieves a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, req *connect.Request[GetPaymentRequest]) (*connect.Response[PaymentResponse], error) {
	slog.Info("GetPayment request received", "payment_id", req.Msg.ID)

	payment, err := s.ledger.Payment(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("GetPayment failed", "payment_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&PaymentResponse{Payment: payment}), nil
}

// ListPayments lists all payments, or one fee's payments when FeeID is set.
func (s *PaymentService) ListPayments(ctx context.Context, req *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error) {
	slog.Info("ListPayments request received", "fee_id", req.Msg.FeeID)

	if req.Msg.FeeID > 0 {
		payments := s.ledger.PaymentsByFee(ctx, req.Msg.FeeID)
		return connect.NewResponse(&ListPaymentsResponse{Payments: payments}), nil
	}

	payments, err := s.ledger.Payments(ctx)
	if err != nil {
		slog.Error("ListPayments failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("ListPayments successful", "count", len(payments))
	return connect.NewResponse(&ListPaymentsResponse{Payments: payments}), nil
}

// UpdatePayment applies a partial update. Fee status and totals are left as they are.
func (s *PaymentService) UpdatePayment(ctx context.Context, req *connect.Request[UpdatePaymentRequest]) (*connect.Response[PaymentResponse], error) {
	slog.Info("UpdatePayment request received", "payment_id", req.Msg.ID)

	payment, err := s.ledger.UpdatePayment(ctx, req.Msg.ID, req.Msg.Patch)
	if err != nil {
		slog.Error("UpdatePayment failed", "payment_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&PaymentResponse{Payment: payment}), nil
}

// DeletePayment removes a payment, returns its fee to pending and refreshes the owner's totals.
func (s *PaymentService) DeletePayment(ctx context.Context, req *connect.Request[DeletePaymentRequest]) (*connect.Response[DeleteResponse], error) {
	slog.Info("DeletePayment request received", "payment_id", req.Msg.ID)

	if err := s.ledger.DeletePayment(ctx, req.Msg.ID); err != nil {
		slog.Error("DeletePayment failed", "payment_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&DeleteResponse{}), nil
}

// NewPaymentServiceHandler builds the HTTP handler for svc and returns the
// path to mount it on.
func NewPaymentServiceHandler(svc *PaymentService, opts ...connect.HandlerOption) (string, http.Handler) {
	r := newRoutes(opts)
	handle(r, PaymentServiceCreatePaymentProcedure, svc.CreatePayment)
	handle(r, PaymentServiceGetPaymentProcedure, svc.GetPayment)
	handle(r, PaymentServiceListPaymentsProcedure, svc.ListPayments)
	handle(r, PaymentServiceUpdatePaymentProcedure, svc.UpdatePayment)
	handle(r, PaymentServiceDeletePaymentProcedure, svc.DeletePayment)
	return servicePath(PaymentServiceName), r.mux
}

// PaymentServiceClient calls feeledger.v1.PaymentService.
type PaymentServiceClient struct {
	createPayment *connect.Client[CreatePaymentRequest, PaymentResponse]
	getPayment    *connect.Client[GetPaymentRequest, PaymentResponse]
	listPayments  *connect.Client[ListPaymentsRequest, ListPaymentsResponse]
	updatePayment *connect.Client[UpdatePaymentRequest, PaymentResponse]
	deletePayment *connect.Client[DeletePaymentRequest, DeleteResponse]
}

// NewPaymentServiceClient constructs a client for the service at baseURL.
func NewPaymentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PaymentServiceClient {
	return &PaymentServiceClient{
		createPayment: newClient[CreatePaymentRequest, PaymentResponse](httpClient, baseURL, PaymentServiceCreatePaymentProcedure, opts),
		getPayment:    newClient[GetPaymentRequest, PaymentResponse](httpClient, baseURL, PaymentServiceGetPaymentProcedure, opts),
		listPayments:  newClient[ListPaymentsRequest, ListPaymentsResponse](httpClient, baseURL, PaymentServiceListPaymentsProcedure, opts),
		updatePayment: newClient[UpdatePaymentRequest, PaymentResponse](httpClient, baseURL, PaymentServiceUpdatePaymentProcedure, opts),
		deletePayment: newClient[DeletePaymentRequest, DeleteResponse](httpClient, baseURL, PaymentServiceDeletePaymentProcedure, opts),
	}
}

func (c *PaymentServiceClient) CreatePayment(ctx context.Context, req *connect.Request[CreatePaymentRequest]) (*connect.Response[PaymentResponse], error) {
	return c.createPayment.CallUnary(ctx, req)
}

func (c *PaymentServiceClient) GetPayment(ctx context.Context, req *connect.Request[GetPaymentRequest]) (*connect.Response[PaymentResponse], error) {
	return c.getPayment.CallUnary(ctx, req)
}

func (c *PaymentServiceClient) ListPayments(ctx context.Context, req *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

func (c *PaymentServiceClient) UpdatePayment(ctx context.Context, req *connect.Request[UpdatePaymentRequest]) (*connect.Response[PaymentResponse], error) {
	return c.updatePayment.CallUnary(ctx, req)
}

func (c *PaymentServiceClient) DeletePayment(ctx context.Context, req *connect.Request[DeletePaymentRequest]) (*connect.Response[DeleteResponse], error) {
	return c.deletePayment.CallUnary(ctx, req)
}
