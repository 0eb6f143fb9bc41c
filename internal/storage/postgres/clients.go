package postgres

import (
	"context"
	"fmt"

	"github.com/mmynk/feeledger/internal/models"
	"github.com/mmynk/feeledger/internal/storage"
)

func (s *Store) FindClients(ctx context.Context, q storage.ClientQuery) ([]*models.Client, error) {
	order, err := storage.ClientOrderBy(q)
	if err != nil {
		return nil, err
	}
	tx := s.db.WithContext(ctx).Order(order)
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	var rows []clientRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	out := make([]*models.Client, len(rows))
	for i := range rows {
		out[i] = rows[i].model()
	}
	return out, nil
}

func (s *Store) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	var row clientRow
	if err := s.first(ctx, &row, "client", id); err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (s *Store) CreateClient(ctx context.Context, client *models.Client) error {
	row := clientRow{
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		TotalDue:  client.TotalDue,
		TotalPaid: client.TotalPaid,
		Status:    client.Status,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	client.ID = row.ID
	return nil
}

func (s *Store) UpdateClient(ctx context.Context, id int64, patch models.ClientPatch) (*models.Client, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.TotalDue != nil {
		updates["total_due"] = *patch.TotalDue
	}
	if patch.TotalPaid != nil {
		updates["total_paid"] = *patch.TotalPaid
	}

	var row clientRow
	if err := s.update(ctx, &row, "client", id, updates); err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	return s.remove(ctx, &clientRow{}, "client", id)
}
