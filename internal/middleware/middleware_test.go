package middleware

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/feeledger/internal/metrics"
)

type ping struct{}

func TestLoggingInterceptor(t *testing.T) {
	t.Run("generates and echoes a request ID", func(t *testing.T) {
		var seen string
		next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			seen = RequestID(ctx)
			return connect.NewResponse(&ping{}), nil
		}

		resp, err := LoggingInterceptor()(next)(context.Background(), connect.NewRequest(&ping{}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen == "" {
			t.Fatal("expected a request ID in the handler context")
		}
		if got := resp.Header().Get(RequestIDHeader); got != seen {
			t.Errorf("response header = %q, want %q", got, seen)
		}
	})

	t.Run("keeps the caller's request ID", func(t *testing.T) {
		req := connect.NewRequest(&ping{})
		req.Header().Set(RequestIDHeader, "req-123")

		next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			return nil, connect.NewError(connect.CodeNotFound, errors.New("missing"))
		}

		_, err := LoggingInterceptor()(next)(context.Background(), req)
		var connectErr *connect.Error
		if !errors.As(err, &connectErr) {
			t.Fatalf("expected connect error, got %v", err)
		}
		if got := connectErr.Meta().Get(RequestIDHeader); got != "req-123" {
			t.Errorf("error metadata request ID = %q, want req-123", got)
		}
	})
}

func TestMetricsInterceptor(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	interceptor := MetricsInterceptor(m)

	ok := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&ping{}), nil
	}
	fail := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bad"))
	}

	ctx := context.Background()
	interceptor(ok)(ctx, connect.NewRequest(&ping{}))
	interceptor(ok)(ctx, connect.NewRequest(&ping{}))
	interceptor(fail)(ctx, connect.NewRequest(&ping{}))

	// Requests built outside a client carry an empty procedure.
	if got := testutil.ToFloat64(m.RPCCounter("", "ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.RPCCounter("", "invalid_argument")); got != 1 {
		t.Errorf("invalid_argument count = %v, want 1", got)
	}
}
