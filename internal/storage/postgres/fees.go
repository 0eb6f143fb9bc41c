package postgres

import (
	"context"
	"fmt"

	"github.com/mmynk/feeledger/internal/models"
	"github.com/mmynk/feeledger/internal/storage"
)

func (s *Store) FindFees(ctx context.Context, q storage.FeeQuery) ([]*models.Fee, error) {
	order, err := storage.FeeOrderBy(q)
	if err != nil {
		return nil, err
	}
	tx := s.db.WithContext(ctx).Order(order)
	if q.ClientID != 0 {
		tx = tx.Where("client_id = ?", q.ClientID)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", string(q.Status))
	}

	var rows []feeRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list fees: %w", err)
	}
	out := make([]*models.Fee, len(rows))
	for i := range rows {
		out[i] = rows[i].model()
	}
	return out, nil
}

func (s *Store) GetFee(ctx context.Context, id int64) (*models.Fee, error) {
	var row feeRow
	if err := s.first(ctx, &row, "fee", id); err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (s *Store) CreateFee(ctx context.Context, fee *models.Fee) error {
	row := feeRow{
		ClientID:    fee.ClientID,
		Description: fee.Description,
		Amount:      fee.Amount,
		DueDate:     fee.DueDate,
		Category:    fee.Category,
		Status:      string(fee.Status),
		IsRecurring: fee.IsRecurring,
		Note:        fee.Note,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert fee: %w", err)
	}
	fee.ID = row.ID
	return nil
}

// UpdateFee applies patch as a single UPDATE ... RETURNING statement.
func (s *Store) UpdateFee(ctx context.Context, id int64, patch models.FeePatch) (*models.Fee, error) {
	updates := map[string]any{}
	if patch.ClientID != nil {
		updates["client_id"] = *patch.ClientID
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Amount != nil {
		updates["amount"] = *patch.Amount
	}
	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.IsRecurring != nil {
		updates["is_recurring"] = *patch.IsRecurring
	}
	if patch.Note != nil {
		updates["note"] = *patch.Note
	}

	var row feeRow
	if err := s.update(ctx, &row, "fee", id, updates); err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (s *Store) DeleteFee(ctx context.Context, id int64) error {
	return s.remove(ctx, &feeRow{}, "fee", id)
}
