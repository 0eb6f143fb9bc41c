package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/feeledger/internal/models"
	"github.com/mmynk/feeledger/internal/storage"
)

const paymentColumns = "id, fee_id, amount, payment_date, method, reference"

func scanPayment(row scanner) (*models.Payment, error) {
	payment := &models.Payment{}
	err := row.Scan(&payment.ID, &payment.FeeID, &payment.Amount, &payment.PaymentDate,
		&payment.Method, &payment.Reference)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// FindPayments lists payments matching q, most recent first by default.
func (s *SQLiteStore) FindPayments(ctx context.Context, q storage.PaymentQuery) ([]*models.Payment, error) {
	order, err := storage.PaymentOrderBy(q)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + paymentColumns + " FROM payments"
	var args []any
	if q.FeeID != 0 {
		query += " WHERE fee_id = ?"
		args = append(args, q.FeeID)
	}
	query += " ORDER BY " + order

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}

// GetPayment retrieves a payment by ID.
func (s *SQLiteStore) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	payment, err := scanPayment(s.db.QueryRowContext(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: payment %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// CreatePayment persists a new payment and sets its ID.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (fee_id, amount, payment_date, method, reference)
		 VALUES (?, ?, ?, ?, ?)`,
		payment.FeeID, payment.Amount, payment.PaymentDate, payment.Method, payment.Reference,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read payment id: %w", err)
	}
	payment.ID = id

	return nil
}

// UpdatePayment writes the fields present in patch.
func (s *SQLiteStore) UpdatePayment(ctx context.Context, id int64, patch models.PaymentPatch) (*models.Payment, error) {
	var set updateSet
	if patch.FeeID != nil {
		set.add("fee_id", *patch.FeeID)
	}
	if patch.Amount != nil {
		set.add("amount", *patch.Amount)
	}
	if patch.PaymentDate != nil {
		set.add("payment_date", *patch.PaymentDate)
	}
	if patch.Method != nil {
		set.add("method", *patch.Method)
	}
	if patch.Reference != nil {
		set.add("reference", *patch.Reference)
	}
	if set.empty() {
		return s.GetPayment(ctx, id)
	}

	query, args := set.statement("payments", paymentColumns, id)
	payment, err := scanPayment(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: payment %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	return payment, nil
}

// DeletePayment removes a payment.
func (s *SQLiteStore) DeletePayment(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "payments", "payment", id)
}
