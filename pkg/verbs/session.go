package verbs

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/verby/pkg/types"
)

// SessionConfig carries the game settings a Session is created with.
type SessionConfig struct {
	// MismatchPolicy is types.MismatchHold (default) or types.MismatchClear.
	MismatchPolicy string
	// MinFormLength drives the short-form warning of EntryStore.Assess.
	// Zero means types.DefaultMinFormLength; negative disables the warning.
	MinFormLength int
}

// Session is one run of the trainer: a store, and a game derived from it.
// Collaborators pass the session around explicitly; persistence happens
// only at the boundaries through Import and Export.
type Session struct {
	store  *EntryStore
	game   *MatchGame
	logger *zap.Logger
}

// NewSession returns a session over an empty store with a built (empty) grid.
func NewSession(cfg SessionConfig, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := NewEntryStore()
	switch {
	case cfg.MinFormLength > 0:
		store.SetMinFormLength(cfg.MinFormLength)
	case cfg.MinFormLength < 0:
		store.SetMinFormLength(0)
	}
	s := &Session{
		store:  store,
		game:   NewMatchGame(GameOptions{MismatchPolicy: cfg.MismatchPolicy, Logger: logger}),
		logger: logger,
	}
	s.game.Rebuild(s.store)
	return s
}

// Import appends persisted entries through the normal insertion rules and
// rebuilds the grid. Entries the store rejects are skipped and logged; the
// number skipped is returned.
func (s *Session) Import(entries []types.Entry) int {
	skipped := 0
	for i, e := range entries {
		if _, err := s.store.insert(e); err != nil {
			skipped++
			s.logger.Warn("skipping entry",
				zap.Int("index", i),
				zap.Stringer("entry", e),
				zap.Error(err))
		}
	}
	s.game.Rebuild(s.store)
	return skipped
}

// Export returns the entries to persist. Grid and selection are never
// part of it.
func (s *Session) Export() []types.Entry {
	return s.store.Entries()
}

// Store returns the session's entry store for read access. Mutate through
// the session so the grid is kept consistent.
func (s *Session) Store() *EntryStore {
	return s.store
}

// Game returns the session's game.
func (s *Session) Game() *MatchGame {
	return s.game
}

// Insert adds an entry and, on success, rebuilds the grid.
func (s *Session) Insert(first, second, third string) error {
	if err := s.store.Insert(first, second, third); err != nil {
		return err
	}
	s.logger.Info("entry added", zap.Strings("forms", []string{first, second, third}))
	s.game.Rebuild(s.store)
	return nil
}

// DeleteAt removes an entry and, on success, rebuilds the grid.
func (s *Session) DeleteAt(index int) error {
	e, err := s.store.At(index)
	if err != nil {
		return err
	}
	if err := s.store.DeleteAt(index); err != nil {
		return err
	}
	s.logger.Info("entry deleted", zap.Int("index", index), zap.Stringer("entry", e))
	s.game.Rebuild(s.store)
	return nil
}

// Reset puts every entry back in play and drops the selection.
func (s *Session) Reset() {
	s.game.Rebuild(s.store)
}

// Toggle forwards a pick to the game. A grid left stale by a direct store
// mutation is rebuilt first and the pick is refused, since its position
// referred to the old grid.
func (s *Session) Toggle(p int) (Outcome, error) {
	if s.game.Stale() {
		s.game.Rebuild(s.store)
		return OutcomeNone, types.ErrGridStale
	}
	return s.game.Toggle(p)
}
