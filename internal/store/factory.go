package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/earshot/internal/config"
)

// New creates a Store from configuration.
//
// The factory examines StoreConfig.Provider and builds the matching backend:
//   - "file" (default): local JSON snapshot store, zero external dependencies
//   - "postgres": remote database, requires a reachable server
//
// Callers never branch on the concrete backend; the provider is fixed at
// startup.
func New(cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Store.Provider {
	case "file", "":
		return NewFileStore(cfg.Store.File.Path, logger)
	case "postgres":
		return NewPostgresStore(cfg.Store.Postgres.DSN.Value(), logger)
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q (supported: file, postgres)",
			ErrInvalidConfig, cfg.Store.Provider)
	}
}
