// Package postgres provides a PostgreSQL implementation of storage.Store on gorm.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mmynk/feeledger/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using PostgreSQL through gorm.
type Store struct {
	db *gorm.DB
}

// Open connects to dsn and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return New(db)
}

// New wraps an existing gorm handle and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&clientRow{}, &feeRow{}, &paymentRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// first loads one row by primary key into dest.
func (s *Store) first(ctx context.Context, dest any, kind string, id int64) error {
	err := s.db.WithContext(ctx).First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", storage.ErrNotFound, kind, id)
	}
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return nil
}

// update applies updates to the row with id and scans the committed row
// into dest through RETURNING.
func (s *Store) update(ctx context.Context, dest any, kind string, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return s.first(ctx, dest, kind, id)
	}
	res := s.db.WithContext(ctx).
		Model(dest).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update %s: %w", kind, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %d", storage.ErrNotFound, kind, id)
	}
	return nil
}

// remove deletes the row with id from model's table.
func (s *Store) remove(ctx context.Context, model any, kind string, id int64) error {
	res := s.db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %d", storage.ErrNotFound, kind, id)
	}
	return nil
}
