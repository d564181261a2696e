package types

import "errors"

// Config holds backend selection and parameters for Notebook.Attach.
type Config struct {
	Backend      string `json:"backend" yaml:"backend"`
	DataDir      string `json:"data_dir" yaml:"data_dir"`
	SyncStrategy string `json:"sync_strategy,omitempty" yaml:"sync_strategy,omitempty"`
	// Seed adds the demo entry when the notebook is empty on first attach.
	Seed bool `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Sync strategies control when verbs.jsonl is rewritten.
const (
	SyncImmediate = "immediate"
	SyncOnClose   = "on_close"
)

// Mismatch policies decide what happens to the selection after a failed check.
const (
	MismatchHold  = "hold"
	MismatchClear = "clear"
)

// DefaultMinFormLength is the form length below which a candidate entry is
// flagged as suspicious.
const DefaultMinFormLength = 3

// Config validation errors.
var (
	ErrBackendEmpty          = errors.New("backend must not be empty")
	ErrBackendUnknown        = errors.New("unknown backend")
	ErrSyncStrategyUnknown   = errors.New("unknown sync strategy")
	ErrMismatchPolicyUnknown = errors.New("unknown mismatch policy")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	switch c.SyncStrategy {
	case "", SyncImmediate, SyncOnClose:
	default:
		return ErrSyncStrategyUnknown
	}
	return nil
}

// GetSyncStrategy returns the effective sync strategy, defaulting to immediate.
func (c Config) GetSyncStrategy() string {
	if c.SyncStrategy == "" {
		return SyncImmediate
	}
	return c.SyncStrategy
}

// ValidateMismatchPolicy accepts "", "hold" and "clear".
func ValidateMismatchPolicy(policy string) error {
	switch policy {
	case "", MismatchHold, MismatchClear:
		return nil
	default:
		return ErrMismatchPolicyUnknown
	}
}
