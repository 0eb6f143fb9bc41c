package middleware

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/feeledger/internal/metrics"
)

// MetricsInterceptor counts every RPC by procedure and result code.
func MetricsInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.RPC(req.Spec().Procedure, code)

			return resp, err
		}
	}
}
