package verbs

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/verby/pkg/types"
)

// maxHeld is the number of picks kept when a new pick would overflow a
// full selection.
const maxHeld = types.FormCount - 1

// State is the selection state of a MatchGame.
type State int

const (
	// StateEmpty: nothing picked.
	StateEmpty State = iota
	// StatePartial: one or two picks held.
	StatePartial
	// StateChecking: three picks are being validated. Only visible from
	// inside Toggle.
	StateChecking
	// StateMismatch: three picks held after a failed check. The next
	// pick of an unselected cell evicts the newest held pick.
	StateMismatch
)

// String returns a lowercase name for the state.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePartial:
		return "partial"
	case StateChecking:
		return "checking"
	case StateMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Outcome reports what a Toggle did.
type Outcome int

const (
	// OutcomeNone is returned alongside an error.
	OutcomeNone Outcome = iota
	// OutcomeSelected: the position was added to the selection.
	OutcomeSelected
	// OutcomeDeselected: the position was removed from the selection.
	OutcomeDeselected
	// OutcomeMatched: the pick completed a real entry and its cells left the grid.
	OutcomeMatched
	// OutcomeMismatched: the pick completed a triple that is not an entry.
	OutcomeMismatched
)

// String returns a lowercase name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSelected:
		return "selected"
	case OutcomeDeselected:
		return "deselected"
	case OutcomeMatched:
		return "matched"
	case OutcomeMismatched:
		return "mismatched"
	default:
		return "none"
	}
}

// Changed reports whether the grid itself changed and should be redrawn
// from scratch.
func (o Outcome) Changed() bool {
	return o == OutcomeMatched
}

// GameOptions configures a MatchGame.
type GameOptions struct {
	// MismatchPolicy is types.MismatchHold (default) or types.MismatchClear.
	MismatchPolicy string
	// Logger receives debug events; nil means no logging.
	Logger *zap.Logger
}

// MatchGame owns the grid and the selection. It reads the store it was
// last rebuilt from but never mutates it.
type MatchGame struct {
	store           *EntryStore
	grid            Grid
	picks           []cellKey
	state           State
	revision        uint64
	built           bool
	clearOnMismatch bool
	logger          *zap.Logger
}

// NewMatchGame returns a game with an empty grid. Call Rebuild before
// accepting picks.
func NewMatchGame(opts GameOptions) *MatchGame {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchGame{
		clearOnMismatch: opts.MismatchPolicy == types.MismatchClear,
		logger:          logger,
	}
}

// Rebuild re-derives the grid from store and drops the selection, since
// positions from an earlier grid cannot be trusted.
func (g *MatchGame) Rebuild(store *EntryStore) {
	g.store = store
	g.grid = Flatten(store)
	g.picks = nil
	g.state = StateEmpty
	g.revision = store.Revision()
	g.built = true
	g.logger.Debug("grid rebuilt",
		zap.Int("entries", store.Len()),
		zap.Int("cells", g.grid.Len()),
		zap.Uint64("revision", g.revision))
}

// Toggle picks or unpicks the cell at position p.
//
// Unpicking is always allowed. Picking a new cell while more than two are
// held keeps only the first two before appending. When the selection
// reaches three, the check runs before Toggle returns.
func (g *MatchGame) Toggle(p int) (Outcome, error) {
	cell, ok := g.grid.Cell(p)
	if !ok {
		return OutcomeNone, fmt.Errorf("%w: %d (grid has %d cells)", types.ErrInvalidPosition, p, g.grid.Len())
	}
	k := cell.key()

	if i := slices.Index(g.picks, k); i >= 0 {
		g.picks = slices.Delete(g.picks, i, i+1)
		g.state = stateForPicks(len(g.picks))
		return OutcomeDeselected, nil
	}

	if len(g.picks) > maxHeld {
		g.picks = g.picks[:maxHeld]
	}
	g.picks = append(g.picks, k)
	if len(g.picks) < types.FormCount {
		g.state = StatePartial
		return OutcomeSelected, nil
	}
	return g.check(), nil
}

// check validates a full selection. The candidate is ordered by form
// column, not by pick order.
func (g *MatchGame) check() Outcome {
	g.state = StateChecking

	candidate, ok := g.candidate()
	if ok && g.store != nil && g.store.Contains(candidate) {
		g.grid.remove(g.picks)
		g.picks = nil
		g.state = StateEmpty
		g.logger.Debug("match", zap.Stringer("entry", candidate), zap.Int("remaining", g.grid.Len()))
		return OutcomeMatched
	}

	g.logger.Debug("mismatch", zap.Stringer("candidate", candidate), zap.Bool("columns_distinct", ok))
	if g.clearOnMismatch {
		g.picks = nil
		g.state = StateEmpty
	} else {
		g.state = StateMismatch
	}
	return OutcomeMismatched
}

// candidate assembles the picked labels by form column. It returns false
// when two picks share a column, which can never spell an entry.
func (g *MatchGame) candidate() (types.Entry, bool) {
	var forms [types.FormCount]string
	var seen [types.FormCount]bool
	distinct := true
	for _, k := range g.picks {
		c, _ := g.grid.Cell(g.grid.position(k))
		if seen[c.Form] {
			distinct = false
			continue
		}
		seen[c.Form] = true
		forms[c.Form] = c.Label
	}
	return types.EntryFromForms(forms), distinct
}

// stateForPicks maps a held pick count to its resting state.
func stateForPicks(n int) State {
	switch {
	case n == 0:
		return StateEmpty
	case n < types.FormCount:
		return StatePartial
	default:
		return StateMismatch
	}
}

// State returns the current selection state.
func (g *MatchGame) State() State {
	return g.state
}

// Grid returns the grid in play.
func (g *MatchGame) Grid() Grid {
	return g.grid
}

// Labels returns the grid labels in position order.
func (g *MatchGame) Labels() []string {
	return g.grid.Labels()
}

// Len returns the number of cells in play.
func (g *MatchGame) Len() int {
	return g.grid.Len()
}

// Selection returns the picked positions in pick order.
func (g *MatchGame) Selection() []int {
	out := make([]int, 0, len(g.picks))
	for _, k := range g.picks {
		out = append(out, g.grid.position(k))
	}
	return out
}

// Ordinal returns the 1-based pick number of position p, or 0 when p is
// not picked. Renderers show it as "#1", "#2", ...
func (g *MatchGame) Ordinal(p int) int {
	cell, ok := g.grid.Cell(p)
	if !ok {
		return 0
	}
	return slices.Index(g.picks, cell.key()) + 1
}

// Won reports whether a built grid has been cleared.
func (g *MatchGame) Won() bool {
	return g.built && g.grid.IsEmpty()
}

// Stale reports whether the grid needs a rebuild: it was never built, or
// the store has changed since.
func (g *MatchGame) Stale() bool {
	return !g.built || g.store == nil || g.store.Revision() != g.revision
}
