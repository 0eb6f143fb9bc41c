package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/feeledger/internal/models"
	"github.com/mmynk/feeledger/internal/storage"
)

const feeColumns = "id, client_id, description, amount, due_date, category, status, is_recurring, note"

func scanFee(row scanner) (*models.Fee, error) {
	fee := &models.Fee{}
	var status string
	err := row.Scan(&fee.ID, &fee.ClientID, &fee.Description, &fee.Amount, &fee.DueDate,
		&fee.Category, &status, &fee.IsRecurring, &fee.Note)
	if err != nil {
		return nil, err
	}
	fee.Status = models.FeeStatus(status)
	if fee.Status == "" {
		fee.Status = models.FeeStatusPending
	}
	return fee, nil
}

// FindFees lists fees matching q, newest due date first by default.
func (s *SQLiteStore) FindFees(ctx context.Context, q storage.FeeQuery) ([]*models.Fee, error) {
	order, err := storage.FeeOrderBy(q)
	if err != nil {
		return nil, err
	}

	var where []string
	var args []any
	if q.ClientID != 0 {
		where = append(where, "client_id = ?")
		args = append(args, q.ClientID)
	}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(q.Status))
	}

	query := "SELECT " + feeColumns + " FROM fees"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + order

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fees: %w", err)
	}
	defer rows.Close()

	var fees []*models.Fee
	for rows.Next() {
		fee, err := scanFee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee: %w", err)
		}
		fees = append(fees, fee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fees: %w", err)
	}

	return fees, nil
}

// GetFee retrieves a fee by ID.
func (s *SQLiteStore) GetFee(ctx context.Context, id int64) (*models.Fee, error) {
	fee, err := scanFee(s.db.QueryRowContext(ctx,
		"SELECT "+feeColumns+" FROM fees WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: fee %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fee: %w", err)
	}
	return fee, nil
}

// CreateFee persists a new fee and sets its ID.
func (s *SQLiteStore) CreateFee(ctx context.Context, fee *models.Fee) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO fees (client_id, description, amount, due_date, category, status, is_recurring, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		fee.ClientID, fee.Description, fee.Amount, fee.DueDate, fee.Category,
		string(fee.Status), fee.IsRecurring, fee.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fee: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read fee id: %w", err)
	}
	fee.ID = id

	return nil
}

// UpdateFee writes the fields present in patch as one statement.
func (s *SQLiteStore) UpdateFee(ctx context.Context, id int64, patch models.FeePatch) (*models.Fee, error) {
	var set updateSet
	if patch.ClientID != nil {
		set.add("client_id", *patch.ClientID)
	}
	if patch.Description != nil {
		set.add("description", *patch.Description)
	}
	if patch.Amount != nil {
		set.add("amount", *patch.Amount)
	}
	if patch.DueDate != nil {
		set.add("due_date", *patch.DueDate)
	}
	if patch.Category != nil {
		set.add("category", *patch.Category)
	}
	if patch.Status != nil {
		set.add("status", string(*patch.Status))
	}
	if patch.IsRecurring != nil {
		set.add("is_recurring", *patch.IsRecurring)
	}
	if patch.Note != nil {
		set.add("note", *patch.Note)
	}
	if set.empty() {
		return s.GetFee(ctx, id)
	}

	query, args := set.statement("fees", feeColumns, id)
	fee, err := scanFee(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: fee %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update fee: %w", err)
	}
	return fee, nil
}

// DeleteFee removes a fee. Payments referencing it are left in place.
func (s *SQLiteStore) DeleteFee(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "fees", "fee", id)
}
