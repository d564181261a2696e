package types

import "errors"

// Notebook is the persistence collaborator for the entry table. Only the
// ordered entries are persisted; grid, selection, and editor state never are.
type Notebook interface {
	// Attach connects the Notebook to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach flushes pending writes and releases backend resources.
	// Idempotent: multiple calls succeed.
	Detach() error

	// Load returns the stored entries in their saved order.
	Load() ([]Entry, error)

	// Save replaces the stored entries with the given ordered sequence.
	Save(entries []Entry) error
}

// Notebook lifecycle errors.
var (
	ErrNotebookDetached = errors.New("notebook is detached")
	ErrAlreadyAttached  = errors.New("notebook is already attached")
)
