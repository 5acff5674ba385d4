// Package sqlite provides the public API for the SQLite Kennel backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/kennel/internal/sqlite"
	"github.com/mesh-intelligence/kennel/pkg/types"
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".kennel-db",
//	})
//	defer backend.Detach()
func NewBackend() types.Kennel {
	return sqlite.NewBackend()
}
