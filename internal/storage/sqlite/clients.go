package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/feeledger/internal/models"
	"github.com/mmynk/feeledger/internal/storage"
)

const clientColumns = "id, name, email, phone, total_due, total_paid, status"

func scanClient(row scanner) (*models.Client, error) {
	client := &models.Client{}
	err := row.Scan(&client.ID, &client.Name, &client.Email, &client.Phone,
		&client.TotalDue, &client.TotalPaid, &client.Status)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// FindClients lists clients, by name unless q says otherwise.
func (s *SQLiteStore) FindClients(ctx context.Context, q storage.ClientQuery) ([]*models.Client, error) {
	order, err := storage.ClientOrderBy(q)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + clientColumns + " FROM clients"
	var args []any
	if q.Status != "" {
		query += " WHERE status = ?"
		args = append(args, q.Status)
	}
	query += " ORDER BY " + order

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	return clients, nil
}

// GetClient retrieves a client by ID.
func (s *SQLiteStore) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	client, err := scanClient(s.db.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: client %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// CreateClient persists a new client and sets its ID.
func (s *SQLiteStore) CreateClient(ctx context.Context, client *models.Client) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO clients (name, email, phone, total_due, total_paid, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		client.Name, client.Email, client.Phone, client.TotalDue, client.TotalPaid, client.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read client id: %w", err)
	}
	client.ID = id

	return nil
}

// UpdateClient writes the fields present in patch.
func (s *SQLiteStore) UpdateClient(ctx context.Context, id int64, patch models.ClientPatch) (*models.Client, error) {
	var set updateSet
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Email != nil {
		set.add("email", *patch.Email)
	}
	if patch.Phone != nil {
		set.add("phone", *patch.Phone)
	}
	if patch.Status != nil {
		set.add("status", *patch.Status)
	}
	if patch.TotalDue != nil {
		set.add("total_due", *patch.TotalDue)
	}
	if patch.TotalPaid != nil {
		set.add("total_paid", *patch.TotalPaid)
	}
	if set.empty() {
		return s.GetClient(ctx, id)
	}

	query, args := set.statement("clients", clientColumns, id)
	client, err := scanClient(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: client %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// DeleteClient removes a client. Fees owned by the client are left in place.
func (s *SQLiteStore) DeleteClient(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "clients", "client", id)
}
