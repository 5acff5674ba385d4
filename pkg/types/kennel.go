package types

import "errors"

// Kennel defines the interface for backend-agnostic roster storage.
// Callers attach to a backend, access tables by name, and detach when done.
type Kennel interface {
	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a standard table.
	GetTable(name string) (Table, error)

	// Attach connects the Kennel to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations on tables return ErrKennelDetached.
	Detach() error
}

// Kennel lifecycle errors.
var (
	ErrKennelDetached  = errors.New("kennel is detached")
	ErrAlreadyAttached = errors.New("kennel is already attached")
	ErrTableNotFound   = errors.New("table not found")
)
