// Shared helpers for verby CLI commands.
package cli

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/verby/internal/paths"
	"github.com/mesh-intelligence/verby/pkg/sqlite"
	"github.com/mesh-intelligence/verby/pkg/types"
	"github.com/mesh-intelligence/verby/pkg/verbs"
)

// dataDir resolves the data directory: --data-dir > config.yaml data_dir >
// VERBY_DATA_DIR > platform default.
func (a *app) dataDir() (string, error) {
	dir, err := paths.ResolveDataDir(a.flags.dataDir, a.settings.DataDir)
	if err != nil {
		return "", sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	return dir, nil
}

// attachNotebook creates the configured backend and attaches it. The
// caller must Detach it.
func (a *app) attachNotebook() (types.Notebook, string, error) {
	dataDir, err := a.dataDir()
	if err != nil {
		return nil, "", err
	}

	cfg := types.Config{
		Backend:      a.settings.Backend,
		DataDir:      dataDir,
		SyncStrategy: a.settings.SyncStrategy,
		Seed:         a.settings.Seed,
	}
	nb := sqlite.NewBackend(a.logger)
	if err := nb.Attach(cfg); err != nil {
		return nil, "", sysError(fmt.Errorf("attach notebook: %w", err))
	}
	return nb, dataDir, nil
}

// openSession loads the notebook's entries into a new session.
func (a *app) openSession(nb types.Notebook) (*verbs.Session, error) {
	entries, err := nb.Load()
	if err != nil {
		return nil, sysError(fmt.Errorf("load entries: %w", err))
	}
	s := verbs.NewSession(verbs.SessionConfig{
		MismatchPolicy: a.settings.MismatchPolicy,
		MinFormLength:  a.settings.MinFormLength,
	}, a.logger)
	s.Import(entries)
	return s, nil
}

// withSession attaches the notebook, opens a session, and runs fn. When fn
// reports a change the entries are saved before the notebook is detached.
func (a *app) withSession(fn func(s *verbs.Session) (changed bool, err error)) (err error) {
	nb, _, err := a.attachNotebook()
	if err != nil {
		return err
	}
	defer func() {
		if derr := nb.Detach(); derr != nil && err == nil {
			err = sysError(fmt.Errorf("detach notebook: %w", derr))
		}
	}()

	s, err := a.openSession(nb)
	if err != nil {
		return err
	}
	changed, err := fn(s)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := nb.Save(s.Export()); err != nil {
		return sysError(fmt.Errorf("save entries: %w", err))
	}
	return nil
}

// classify wraps a core error with the exit code it deserves.
func classify(err error) error {
	switch {
	case errors.Is(err, types.ErrValidationRejected),
		errors.Is(err, types.ErrIndexOutOfRange):
		return userError(err)
	default:
		return sysError(err)
	}
}
