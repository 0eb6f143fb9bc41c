package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/mmynk/feeledger/internal/ledger"
	"github.com/mmynk/feeledger/internal/metrics"
	"github.com/mmynk/feeledger/internal/middleware"
	"github.com/mmynk/feeledger/internal/models"
	"github.com/mmynk/feeledger/internal/storage/storagetest"
)

type testClients struct {
	clients  *ClientServiceClient
	fees     *FeeServiceClient
	payments *PaymentServiceClient
	ledger   *LedgerServiceClient

	store   *storagetest.FaultyStore
	metrics *metrics.Metrics
	url     string
}

// setupTestServer mounts every service behind the production interceptors.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	store := storagetest.Wrap(storagetest.NewSQLite(t))
	m := metrics.New(prometheus.NewRegistry())
	l := ledger.New(store,
		ledger.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		ledger.WithMetrics(m),
	)

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)

	mux := http.NewServeMux()
	mux.Handle(NewClientServiceHandler(NewClientService(l), interceptors))
	mux.Handle(NewFeeServiceHandler(NewFeeService(l), interceptors))
	mux.Handle(NewPaymentServiceHandler(NewPaymentService(l), interceptors))
	mux.Handle(NewLedgerServiceHandler(NewLedgerService(l), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testClients{
		clients:  NewClientServiceClient(http.DefaultClient, server.URL),
		fees:     NewFeeServiceClient(http.DefaultClient, server.URL),
		payments: NewPaymentServiceClient(http.DefaultClient, server.URL),
		ledger:   NewLedgerServiceClient(http.DefaultClient, server.URL),
		store:    store,
		metrics:  m,
		url:      server.URL,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func (c *testClients) createClient(t *testing.T, name string) *models.Client {
	t.Helper()
	resp, err := c.clients.CreateClient(context.Background(), connect.NewRequest(&CreateClientRequest{
		Client: models.Client{Name: name, Email: strings.ToLower(name) + "@example.com"},
	}))
	if err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	return resp.Msg.Client
}

func (c *testClients) createFee(t *testing.T, clientID int64, amount string) *models.Fee {
	t.Helper()
	resp, err := c.fees.CreateFee(context.Background(), connect.NewRequest(&CreateFeeRequest{
		Fee: models.Fee{ClientID: clientID, Description: "Tuition", Amount: dec(amount), DueDate: "2024-09-01"},
	}))
	if err != nil {
		t.Fatalf("CreateFee failed: %v", err)
	}
	return resp.Msg.Fee
}

func (c *testClients) getClient(t *testing.T, id int64) *models.Client {
	t.Helper()
	resp, err := c.clients.GetClient(context.Background(), connect.NewRequest(&GetClientRequest{ID: id}))
	if err != nil {
		t.Fatalf("GetClient failed: %v", err)
	}
	return resp.Msg.Client
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("code = %s, want %s (error: %v)", got, want, err)
	}
}

func TestClientService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	bob := c.createClient(t, "Bob")
	alice := c.createClient(t, "Alice")

	if bob.ID == 0 {
		t.Error("expected non-zero client ID")
	}
	if bob.Status != models.DefaultClientStatus {
		t.Errorf("status: expected %q, got %q", models.DefaultClientStatus, bob.Status)
	}

	t.Run("list orders by name", func(t *testing.T) {
		resp, err := c.clients.ListClients(ctx, connect.NewRequest(&ListClientsRequest{}))
		if err != nil {
			t.Fatalf("ListClients failed: %v", err)
		}
		if len(resp.Msg.Clients) != 2 {
			t.Fatalf("expected 2 clients, got %d", len(resp.Msg.Clients))
		}
		if resp.Msg.Clients[0].ID != alice.ID {
			t.Errorf("expected Alice first, got %q", resp.Msg.Clients[0].Name)
		}
	})

	t.Run("update keeps absent fields", func(t *testing.T) {
		resp, err := c.clients.UpdateClient(ctx, connect.NewRequest(&UpdateClientRequest{
			ID:    bob.ID,
			Patch: models.ClientPatch{Phone: ptr("555-0101")},
		}))
		if err != nil {
			t.Fatalf("UpdateClient failed: %v", err)
		}
		got := resp.Msg.Client
		if got.Phone != "555-0101" || got.Name != "Bob" || got.Email != "bob@example.com" {
			t.Errorf("unexpected client after update: %+v", got)
		}
	})

	t.Run("delete then get is not found", func(t *testing.T) {
		if _, err := c.clients.DeleteClient(ctx, connect.NewRequest(&DeleteClientRequest{ID: alice.ID})); err != nil {
			t.Fatalf("DeleteClient failed: %v", err)
		}
		_, err := c.clients.GetClient(ctx, connect.NewRequest(&GetClientRequest{ID: alice.ID}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("create without name is invalid", func(t *testing.T) {
		_, err := c.clients.CreateClient(ctx, connect.NewRequest(&CreateClientRequest{}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestFeeAndPaymentFlow(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	client := c.createClient(t, "Seven")
	fee := c.createFee(t, client.ID, "200")
	if fee.Status != models.FeeStatusPending {
		t.Errorf("fee status: expected pending, got %s", fee.Status)
	}

	got := c.getClient(t, client.ID)
	if !got.TotalDue.Equal(dec("200")) || !got.TotalPaid.IsZero() {
		t.Errorf("after fee: due=%s paid=%s, want 200/0", got.TotalDue, got.TotalPaid)
	}

	payResp, err := c.payments.CreatePayment(ctx, connect.NewRequest(&CreatePaymentRequest{
		Payment: models.Payment{FeeID: fee.ID, Amount: dec("200"), PaymentDate: "2024-09-02", Method: "transfer"},
	}))
	if err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}
	payment := payResp.Msg.Payment

	feeResp, err := c.fees.GetFee(ctx, connect.NewRequest(&GetFeeRequest{ID: fee.ID}))
	if err != nil {
		t.Fatalf("GetFee failed: %v", err)
	}
	if feeResp.Msg.Fee.Status != models.FeeStatusPaid {
		t.Errorf("fee status after payment: expected paid, got %s", feeResp.Msg.Fee.Status)
	}

	got = c.getClient(t, client.ID)
	if !got.TotalDue.IsZero() || !got.TotalPaid.Equal(dec("200")) {
		t.Errorf("after payment: due=%s paid=%s, want 0/200", got.TotalDue, got.TotalPaid)
	}

	listResp, err := c.payments.ListPayments(ctx, connect.NewRequest(&ListPaymentsRequest{FeeID: fee.ID}))
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(listResp.Msg.Payments) != 1 {
		t.Errorf("expected 1 payment for fee, got %d", len(listResp.Msg.Payments))
	}

	if _, err := c.payments.DeletePayment(ctx, connect.NewRequest(&DeletePaymentRequest{ID: payment.ID})); err != nil {
		t.Fatalf("DeletePayment failed: %v", err)
	}

	got = c.getClient(t, client.ID)
	if !got.TotalDue.Equal(dec("200")) || !got.TotalPaid.IsZero() {
		t.Errorf("after payment delete: due=%s paid=%s, want 200/0", got.TotalDue, got.TotalPaid)
	}
}

func TestFeeService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	c1 := c.createClient(t, "One")
	c2 := c.createClient(t, "Two")
	fee := c.createFee(t, c1.ID, "75.25")
	c.createFee(t, c2.ID, "10")

	t.Run("list by client", func(t *testing.T) {
		resp, err := c.fees.ListFees(ctx, connect.NewRequest(&ListFeesRequest{ClientID: c1.ID}))
		if err != nil {
			t.Fatalf("ListFees failed: %v", err)
		}
		if len(resp.Msg.Fees) != 1 || resp.Msg.Fees[0].ID != fee.ID {
			t.Errorf("unexpected fees: %+v", resp.Msg.Fees)
		}

		all, err := c.fees.ListFees(ctx, connect.NewRequest(&ListFeesRequest{}))
		if err != nil {
			t.Fatalf("ListFees failed: %v", err)
		}
		if len(all.Msg.Fees) != 2 {
			t.Errorf("expected 2 fees, got %d", len(all.Msg.Fees))
		}
	})

	t.Run("list by client swallows store errors", func(t *testing.T) {
		c.store.Fail(storagetest.FindFees, nil)
		defer c.store.Heal(storagetest.FindFees)

		resp, err := c.fees.ListFees(ctx, connect.NewRequest(&ListFeesRequest{ClientID: c1.ID}))
		if err != nil {
			t.Fatalf("ListFees by client should not fail, got %v", err)
		}
		if len(resp.Msg.Fees) != 0 {
			t.Errorf("expected empty list, got %d fees", len(resp.Msg.Fees))
		}

		_, err = c.fees.ListFees(ctx, connect.NewRequest(&ListFeesRequest{}))
		assertCode(t, err, connect.CodeInternal)
	})

	t.Run("reassign moves totals", func(t *testing.T) {
		resp, err := c.fees.UpdateFee(ctx, connect.NewRequest(&UpdateFeeRequest{
			ID:    fee.ID,
			Patch: models.FeePatch{ClientID: &c2.ID},
		}))
		if err != nil {
			t.Fatalf("UpdateFee failed: %v", err)
		}
		if resp.Msg.Fee.Description != "Tuition" {
			t.Errorf("description changed: %q", resp.Msg.Fee.Description)
		}

		if got := c.getClient(t, c1.ID); !got.TotalDue.IsZero() {
			t.Errorf("old owner due = %s, want 0", got.TotalDue)
		}
		if got := c.getClient(t, c2.ID); !got.TotalDue.Equal(dec("85.25")) {
			t.Errorf("new owner due = %s, want 85.25", got.TotalDue)
		}
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := c.fees.UpdateFee(ctx, connect.NewRequest(&UpdateFeeRequest{
			ID:    fee.ID,
			Patch: models.FeePatch{Status: ptr(models.FeeStatus("cancelled"))},
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("fee for unknown client is rejected", func(t *testing.T) {
		_, err := c.fees.CreateFee(ctx, connect.NewRequest(&CreateFeeRequest{
			Fee: models.Fee{ClientID: 999, Amount: dec("1")},
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("delete unknown fee is not found", func(t *testing.T) {
		_, err := c.fees.DeleteFee(ctx, connect.NewRequest(&DeleteFeeRequest{ID: 999}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("cascade failure still succeeds", func(t *testing.T) {
		c.store.Fail(storagetest.UpdateClient, nil)
		defer c.store.Heal(storagetest.UpdateClient)

		resp, err := c.fees.CreateFee(ctx, connect.NewRequest(&CreateFeeRequest{
			Fee: models.Fee{ClientID: c1.ID, Amount: dec("5")},
		}))
		if err != nil {
			t.Fatalf("CreateFee should succeed despite recompute failure, got %v", err)
		}
		if resp.Msg.Fee.ID == 0 {
			t.Error("expected fee ID")
		}
	})
}

func TestPaymentService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	client := c.createClient(t, "Payer")
	fee := c.createFee(t, client.ID, "100")

	resp, err := c.payments.CreatePayment(ctx, connect.NewRequest(&CreatePaymentRequest{
		Payment: models.Payment{FeeID: fee.ID, Amount: dec("100")},
	}))
	if err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}
	payment := resp.Msg.Payment
	if payment.PaymentDate == "" {
		t.Error("expected payment date to default to today")
	}

	t.Run("update does not touch totals", func(t *testing.T) {
		upd, err := c.payments.UpdatePayment(ctx, connect.NewRequest(&UpdatePaymentRequest{
			ID:    payment.ID,
			Patch: models.PaymentPatch{Amount: ptr(dec("60")), Reference: ptr("INV-9")},
		}))
		if err != nil {
			t.Fatalf("UpdatePayment failed: %v", err)
		}
		if upd.Msg.Payment.Reference != "INV-9" || !upd.Msg.Payment.Amount.Equal(dec("60")) {
			t.Errorf("unexpected payment: %+v", upd.Msg.Payment)
		}

		got := c.getClient(t, client.ID)
		if !got.TotalPaid.Equal(dec("100")) {
			t.Errorf("paid = %s, want 100 (payment updates do not recompute)", got.TotalPaid)
		}
	})

	t.Run("get and list", func(t *testing.T) {
		get, err := c.payments.GetPayment(ctx, connect.NewRequest(&GetPaymentRequest{ID: payment.ID}))
		if err != nil {
			t.Fatalf("GetPayment failed: %v", err)
		}
		if get.Msg.Payment.FeeID != fee.ID {
			t.Errorf("fee id = %d, want %d", get.Msg.Payment.FeeID, fee.ID)
		}

		all, err := c.payments.ListPayments(ctx, connect.NewRequest(&ListPaymentsRequest{}))
		if err != nil {
			t.Fatalf("ListPayments failed: %v", err)
		}
		if len(all.Msg.Payments) != 1 {
			t.Errorf("expected 1 payment, got %d", len(all.Msg.Payments))
		}
	})

	t.Run("payment for unknown fee is rejected", func(t *testing.T) {
		_, err := c.payments.CreatePayment(ctx, connect.NewRequest(&CreatePaymentRequest{
			Payment: models.Payment{FeeID: 4040, Amount: dec("1")},
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("unknown payment is not found", func(t *testing.T) {
		_, err := c.payments.GetPayment(ctx, connect.NewRequest(&GetPaymentRequest{ID: 4040}))
		assertCode(t, err, connect.CodeNotFound)

		_, err = c.payments.DeletePayment(ctx, connect.NewRequest(&DeletePaymentRequest{ID: 4040}))
		assertCode(t, err, connect.CodeNotFound)
	})
}

func TestLedgerService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	a := c.createClient(t, "Alpha")
	b := c.createClient(t, "Beta")

	c.store.Fail(storagetest.UpdateClient, nil)
	c.createFee(t, a.ID, "12.50")
	c.createFee(t, b.ID, "7.50")
	c.store.Heal(storagetest.UpdateClient)

	if got := c.getClient(t, a.ID); !got.TotalDue.IsZero() {
		t.Fatalf("expected drifted totals, got due=%s", got.TotalDue)
	}

	t.Run("recompute one client", func(t *testing.T) {
		resp, err := c.ledger.Recompute(ctx, connect.NewRequest(&RecomputeRequest{ClientID: a.ID}))
		if err != nil {
			t.Fatalf("Recompute failed: %v", err)
		}
		if !resp.Msg.TotalDue.Equal(dec("12.5")) {
			t.Errorf("due = %s, want 12.5", resp.Msg.TotalDue)
		}
	})

	t.Run("recompute unknown client is not found", func(t *testing.T) {
		_, err := c.ledger.Recompute(ctx, connect.NewRequest(&RecomputeRequest{ClientID: 999}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("reconcile all", func(t *testing.T) {
		resp, err := c.ledger.Reconcile(ctx, connect.NewRequest(&ReconcileRequest{}))
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}
		if resp.Msg.Clients != 2 || len(resp.Msg.Failed) != 0 {
			t.Errorf("unexpected report: %+v", resp.Msg)
		}
		if got := c.getClient(t, b.ID); !got.TotalDue.Equal(dec("7.5")) {
			t.Errorf("due = %s, want 7.5", got.TotalDue)
		}
	})
}

func TestInterceptors(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	req := connect.NewRequest(&ListClientsRequest{})
	req.Header().Set(middleware.RequestIDHeader, "trace-me")
	resp, err := c.clients.ListClients(ctx, req)
	if err != nil {
		t.Fatalf("ListClients failed: %v", err)
	}
	if got := resp.Header().Get(middleware.RequestIDHeader); got != "trace-me" {
		t.Errorf("request id header = %q, want trace-me", got)
	}

	_, err = c.clients.GetClient(ctx, connect.NewRequest(&GetClientRequest{ID: 77}))
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %v", err)
	}
	if connectErr.Meta().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected request id on error metadata")
	}

	if got := testutil.ToFloat64(c.metrics.RPCCounter(ClientServiceListClientsProcedure, "ok")); got != 1 {
		t.Errorf("ListClients ok count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.metrics.RPCCounter(ClientServiceGetClientProcedure, "not_found")); got != 1 {
		t.Errorf("GetClient not_found count = %v, want 1", got)
	}
}

func TestJSONWireFormat(t *testing.T) {
	c := setupTestServer(t)
	client := c.createClient(t, "Wire")
	c.createFee(t, client.ID, "19.90")

	body := strings.NewReader(`{"id": ` + strconv.FormatInt(client.ID, 10) + `}`)
	httpReq, err := http.NewRequest(http.MethodPost, c.url+ClientServiceGetClientProcedure, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", httpResp.StatusCode)
	}
	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	for _, want := range []string{`"name":"Wire"`, `"totalDue":"19.9"`, `"totalPaid":"0"`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("response %s missing %s", raw, want)
		}
	}
}
