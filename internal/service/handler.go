// Package service exposes the ledger over Connect RPC.
//
// Each service has a NewXServiceHandler returning the path prefix and the
// http.Handler to mount, and a NewXServiceClient for callers. Messages are
// plain Go structs carried by a JSON codec.
package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/feeledger/internal/ledger"
	"github.com/mmynk/feeledger/internal/storage"
)

// routes collects the unary handlers of one service.
type routes struct {
	mux  *http.ServeMux
	opts []connect.HandlerOption
}

func newRoutes(opts []connect.HandlerOption) *routes {
	return &routes{
		mux:  http.NewServeMux(),
		opts: append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...),
	}
}

func handle[Req, Res any](r *routes, procedure string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error)) {
	r.mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, r.opts...))
}

// servicePath returns the prefix under which a service's procedures are mounted.
func servicePath(name string) string {
	return "/" + name + "/"
}

func newClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return connect.NewClient[Req, Res](httpClient, strings.TrimRight(baseURL, "/")+procedure, opts...)
}

// connectError maps ledger and storage errors to Connect codes.
func connectError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrInvalidArgument), errors.Is(err, storage.ErrUnknownOrderField):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
