package postgres

import (
	"context"
	"fmt"

	"github.com/mmynk/feeledger/internal/models"
	"github.com/mmynk/feeledger/internal/storage"
)

func (s *Store) FindPayments(ctx context.Context, q storage.PaymentQuery) ([]*models.Payment, error) {
	order, err := storage.PaymentOrderBy(q)
	if err != nil {
		return nil, err
	}
	tx := s.db.WithContext(ctx).Order(order)
	if q.FeeID != 0 {
		tx = tx.Where("fee_id = ?", q.FeeID)
	}

	var rows []paymentRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	out := make([]*models.Payment, len(rows))
	for i := range rows {
		out[i] = rows[i].model()
	}
	return out, nil
}

func (s *Store) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	var row paymentRow
	if err := s.first(ctx, &row, "payment", id); err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (s *Store) CreatePayment(ctx context.Context, payment *models.Payment) error {
	row := paymentRow{
		FeeID:       payment.FeeID,
		Amount:      payment.Amount,
		PaymentDate: payment.PaymentDate,
		Method:      payment.Method,
		Reference:   payment.Reference,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	payment.ID = row.ID
	return nil
}

func (s *Store) UpdatePayment(ctx context.Context, id int64, patch models.PaymentPatch) (*models.Payment, error) {
	updates := map[string]any{}
	if patch.FeeID != nil {
		updates["fee_id"] = *patch.FeeID
	}
	if patch.Amount != nil {
		updates["amount"] = *patch.Amount
	}
	if patch.PaymentDate != nil {
		updates["payment_date"] = *patch.PaymentDate
	}
	if patch.Method != nil {
		updates["method"] = *patch.Method
	}
	if patch.Reference != nil {
		updates["reference"] = *patch.Reference
	}

	var row paymentRow
	if err := s.update(ctx, &row, "payment", id, updates); err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (s *Store) DeletePayment(ctx context.Context, id int64) error {
	return s.remove(ctx, &paymentRow{}, "payment", id)
}
