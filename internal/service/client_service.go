package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/feeledger/internal/ledger"
)

// ClientService implements feeledger.v1.ClientService.
type ClientService struct {
	ledger *ledger.Ledger
}

// NewClientService creates a new ClientService backed by l.
func NewClientService(l *ledger.Ledger) *ClientService {
	return &ClientService{ledger: l}
}

// CreateClient creates a new client with zero totals.
func (s *ClientService) CreateClient(ctx context.Context, req *connect.Request[CreateClientRequest]) (*connect.Response[ClientResponse], error) {
	slog.Info("CreateClient request received", "name", req.Msg.Client.Name)

	client, err := s.ledger.CreateClient(ctx, req.Msg.Client)
	if err != nil {
		slog.Error("CreateClient failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("Client created", "client_id", client.ID)
	return connect.NewResponse(&ClientResponse{Client: client}), nil
}

// GetClient retrieves a client by ID.
func (s *ClientService) GetClient(ctx context.Context, req *connect.Request[GetClientRequest]) (*connect.Response[ClientResponse], error) {
	slog.Info("GetClient request received", "client_id", req.Msg.ID)

	client, err := s.ledger.Client(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("GetClient failed", "client_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&ClientResponse{Client: client}), nil
}

// ListClients retrieves all clients ordered by name.
func (s *ClientService) ListClients(ctx context.Context, req *connect.Request[ListClientsRequest]) (*connect.Response[ListClientsResponse], error) {
	slog.Info("ListClients request received")

	clients, err := s.ledger.Clients(ctx)
	if err != nil {
		slog.Error("ListClients failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("ListClients successful", "count", len(clients))
	return connect.NewResponse(&ListClientsResponse{Clients: clients}), nil
}

// UpdateClient applies a partial update. Totals cannot be set through it.
func (s *ClientService) UpdateClient(ctx context.Context, req *connect.Request[UpdateClientRequest]) (*connect.Response[ClientResponse], error) {
	slog.Info("UpdateClient request received", "client_id", req.Msg.ID)

	client, err := s.ledger.UpdateClient(ctx, req.Msg.ID, req.Msg.Patch)
	if err != nil {
		slog.Error("UpdateClient failed", "client_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Client updated", "client_id", client.ID)
	return connect.NewResponse(&ClientResponse{Client: client}), nil
}

// DeleteClient removes a client.
func (s *ClientService) DeleteClient(ctx context.Context, req *connect.Request[DeleteClientRequest]) (*connect.Response[DeleteResponse], error) {
	slog.Info("DeleteClient request received", "client_id", req.Msg.ID)

	if err := s.ledger.DeleteClient(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteClient failed", "client_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&DeleteResponse{}), nil
}

// NewClientServiceHandler builds the HTTP handler for svc and returns the
// path to mount it on.
func NewClientServiceHandler(svc *ClientService, opts ...connect.HandlerOption) (string, http.Handler) {
	r := newRoutes(opts)
	handle(r, ClientServiceCreateClientProcedure, svc.CreateClient)
	handle(r, ClientServiceGetClientProcedure, svc.GetClient)
	handle(r, ClientServiceListClientsProcedure, svc.ListClients)
	handle(r, ClientServiceUpdateClientProcedure, svc.UpdateClient)
	handle(r, ClientServiceDeleteClientProcedure, svc.DeleteClient)
	return servicePath(ClientServiceName), r.mux
}

// ClientServiceClient calls feeledger.v1.ClientService.
type ClientServiceClient struct {
	createClient *connect.Client[CreateClientRequest, ClientResponse]
	getClient    *connect.Client[GetClientRequest, ClientResponse]
	listClients  *connect.Client[ListClientsRequest, ListClientsResponse]
	updateClient *connect.Client[UpdateClientRequest, ClientResponse]
	deleteClient *connect.Client[DeleteClientRequest, DeleteResponse]
}

// NewClientServiceClient constructs a client for the service at baseURL.
func NewClientServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ClientServiceClient {
	return &ClientServiceClient{
		createClient: newClient[CreateClientRequest, ClientResponse](httpClient, baseURL, ClientServiceCreateClientProcedure, opts),
		getClient:    newClient[GetClientRequest, ClientResponse](httpClient, baseURL, ClientServiceGetClientProcedure, opts),
		listClients:  newClient[ListClientsRequest, ListClientsResponse](httpClient, baseURL, ClientServiceListClientsProcedure, opts),
		updateClient: newClient[UpdateClientRequest, ClientResponse](httpClient, baseURL, ClientServiceUpdateClientProcedure, opts),
		deleteClient: newClient[DeleteClientRequest, DeleteResponse](httpClient, baseURL, ClientServiceDeleteClientProcedure, opts),
	}
}

func (c *ClientServiceClient) CreateClient(ctx context.Context, req *connect.Request[CreateClientRequest]) (*connect.Response[ClientResponse], error) {
	return c.createClient.CallUnary(ctx, req)
}

func (c *ClientServiceClient) GetClient(ctx context.Context, req *connect.Request[GetClientRequest]) (*connect.Response[ClientResponse], error) {
	return c.getClient.CallUnary(ctx, req)
}

func (c *ClientServiceClient) ListClients(ctx context.Context, req *connect.Request[ListClientsRequest]) (*connect.Response[ListClientsResponse], error) {
	return c.listClients.CallUnary(ctx, req)
}

func (c *ClientServiceClient) UpdateClient(ctx context.Context, req *connect.Request[UpdateClientRequest]) (*connect.Response[ClientResponse], error) {
	return c.updateClient.CallUnary(ctx, req)
}

func (c *ClientServiceClient) DeleteClient(ctx context.Context, req *connect.Request[DeleteClientRequest]) (*connect.Response[DeleteResponse], error) {
	return c.deleteClient.CallUnary(ctx, req)
}
