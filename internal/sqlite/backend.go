// Package sqlite implements the SQLite notebook backend for verby. The
// verbs.jsonl file in the data directory is the source of truth; SQLite is
// rebuilt from it on every Attach and serves reads and ordered writes.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/verby/pkg/types"
)

// Compile-time interface check: Backend must implement Notebook.
var _ types.Notebook = (*Backend)(nil)

// Backend implements the Notebook interface using SQLite as the query engine
// and a JSONL file as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *zap.Logger

	syncStrategy string // effective sync strategy: immediate or on_close
	pending      bool   // verbs.jsonl is behind the database (on_close only)
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{logger: zap.NewNop()}
}

// WithLogger sets the logger used for backend events and returns b.
func (b *Backend) WithLogger(logger *zap.Logger) *Backend {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, initializes the SQLite schema, and
// loads verbs.jsonl. On first run (no verbs.jsonl yet) the demo entry is
// seeded when config.Seed is set.
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
		return err
	}
	config.DataDir = dataDir

	// The database is a cache of verbs.jsonl; start from a fresh schema.
	dbPath := filepath.Join(dataDir, databaseFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	firstRun, err := initJSONLFiles(dataDir)
	if err != nil {
		db.Close()
		return err
	}

	loaded, err := loadAllJSONL(db, dataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.syncStrategy = config.GetSyncStrategy()
	b.pending = false

	if firstRun && config.Seed {
		if err := b.seedDemoEntry(); err != nil {
			db.Close()
			b.db = nil
			return fmt.Errorf("seed: %w", err)
		}
		loaded++
	}

	b.attached = true
	b.logger.Debug("notebook attached",
		zap.String("data_dir", dataDir),
		zap.String("sync", b.syncStrategy),
		zap.Int("entries", loaded),
		zap.Bool("first_run", firstRun))

	return nil
}

// Detach releases all resources held by the backend. For the on_close sync
// strategy, verbs.jsonl is written first. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.pending {
		if err := b.persistEntriesJSONL(); err != nil {
			return fmt.Errorf("flush pending writes: %w", err)
		}
		b.pending = false
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.logger.Debug("notebook detached")

	return nil
}

// DataDir returns the resolved data directory of an attached backend.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config.DataDir
}

// initJSONLFiles creates an empty verbs.jsonl if none exists and reports
// whether it had to.
func initJSONLFiles(dataDir string) (bool, error) {
	path := filepath.Join(dataDir, entriesJSONL)
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", entriesJSONL, err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return false, fmt.Errorf("creating %s: %w", entriesJSONL, err)
	}
	return true, nil
}

// newEntryID generates a new UUID v7 for entry rows.
func newEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
