// Package sqlite provides the public API for the SQLite notebook backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/verby/internal/sqlite"
	"github.com/mesh-intelligence/verby/pkg/types"
)

// NewBackend creates a new SQLite notebook. A nil logger disables logging.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	notebook := sqlite.NewBackend(nil)
//	err := notebook.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".verby-db",
//	    Seed:    true,
//	})
//	defer notebook.Detach()
func NewBackend(logger *zap.Logger) types.Notebook {
	return sqlite.NewBackend().WithLogger(logger)
}
