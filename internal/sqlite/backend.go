// Package sqlite implements the SQLite storage backend for the kennel roster.
// JSONL files in the data directory are the source of truth; SQLite is the
// query engine and is rebuilt from JSONL on every Attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/kennel/pkg/types"
)

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "kennel.db"

// Compile-time interface check: Backend must implement Kennel.
var _ types.Kennel = (*Backend)(nil)

// Backend implements the Kennel interface using SQLite as the query engine
// and JSONL files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table
	logger   *slog.Logger
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		tables: make(map[string]types.Table),
		logger: slog.New(slog.DiscardHandler),
	}
}

// SetLogger replaces the logger used for lifecycle and mutation events.
// A nil logger restores the discarding default.
func (b *Backend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	b.logger = l
}

// GetTable returns a Table interface for the specified table name.
// Returns ErrKennelDetached if the backend is not attached and
// ErrTableNotFound if the table name is not recognized.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrKennelDetached
	}

	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, recreates the SQLite database,
// applies the schema, and loads the JSONL files.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is a cache of the JSONL files; start fresh every time.
	dbPath := filepath.Join(dataDir, dbFileName)
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale database: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return err
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}

	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	config.DataDir = dataDir
	b.db = db
	b.config = config
	b.attached = true
	b.tables[types.TablePets] = &petsTable{backend: b}

	b.logger.Debug("kennel attached", "backend", config.Backend, "data_dir", dataDir)
	return nil
}

// Detach releases all resources held by the backend.
// After Detach, all operations return ErrKennelDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		b.db = nil
	}

	b.attached = false
	b.tables = make(map[string]types.Table)

	b.logger.Debug("kennel detached", "data_dir", b.config.DataDir)
	return nil
}

// dataDir returns the attached data directory. The caller must hold b.mu.
func (b *Backend) dataDir() string {
	return b.config.DataDir
}
