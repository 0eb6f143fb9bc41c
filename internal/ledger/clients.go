package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/feeledger/internal/models"
	"github.com/mmynk/feeledger/internal/storage"
)

// CreateClient stores a new client with zero aggregates.
func (l *Ledger) CreateClient(ctx context.Context, in models.Client) (*models.Client, error) {
	client := in
	client.ID = 0
	client.TotalDue = decimal.Zero
	client.TotalPaid = decimal.Zero
	if client.Status == "" {
		client.Status = models.DefaultClientStatus
	}
	if err := validateStruct(&client); err != nil {
		return nil, err
	}

	if err := l.store.CreateClient(ctx, &client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	l.log.Info("Client created", "client_id", client.ID)
	return &client, nil
}

// UpdateClient applies the present fields of patch. Aggregate fields in the
// patch are ignored; only the recalculator writes them.
func (l *Ledger) UpdateClient(ctx context.Context, id int64, patch models.ClientPatch) (*models.Client, error) {
	patch = patch.WithoutAggregates()
	if err := validateStruct(&patch); err != nil {
		return nil, err
	}

	client, err := l.store.UpdateClient(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update client %d: %w", id, err)
	}
	return client, nil
}

// DeleteClient removes a client. Its fees are not touched.
func (l *Ledger) DeleteClient(ctx context.Context, id int64) error {
	if err := l.store.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}
	l.log.Info("Client deleted", "client_id", id)
	return nil
}

// Clients lists all clients by name.
func (l *Ledger) Clients(ctx context.Context) ([]*models.Client, error) {
	clients, err := l.store.FindClients(ctx, storage.ClientQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// Client returns one client; storage.ErrNotFound if absent.
func (l *Ledger) Client(ctx context.Context, id int64) (*models.Client, error) {
	return l.store.GetClient(ctx, id)
}
