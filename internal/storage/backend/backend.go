// Package backend opens the storage.Store selected by configuration.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/mmynk/feeledger/internal/config"
	"github.com/mmynk/feeledger/internal/storage"
	"github.com/mmynk/feeledger/internal/storage/postgres"
	"github.com/mmynk/feeledger/internal/storage/sqlite"
)

// Open returns the store for cfg.Driver. The caller owns the store and must Close it.
func Open(cfg config.DatabaseConfig) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.Driver, "database", cfg.Path)
		return store, nil
	case config.DriverPostgres:
		store, err := postgres.Open(cfg.URL)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.Driver)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
