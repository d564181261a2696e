package verbs

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/verby/pkg/types"
)

// newGame returns a game rebuilt from a store holding entries.
func newGame(t *testing.T, policy string, entries ...types.Entry) (*MatchGame, *EntryStore) {
	t.Helper()
	s := newStore(t, entries...)
	g := NewMatchGame(GameOptions{MismatchPolicy: policy})
	g.Rebuild(s)
	return g, s
}

// toggleAll applies picks in order and returns the last outcome.
func toggleAll(t *testing.T, g *MatchGame, positions ...int) Outcome {
	t.Helper()
	var last Outcome
	for _, p := range positions {
		o, err := g.Toggle(p)
		require.NoError(t, err, "toggle %d", p)
		last = o
	}
	return last
}

func TestMatchGameSingleEntryMatch(t *testing.T) {
	g, _ := newGame(t, "", goEntry)
	require.Equal(t, []string{"go", "went", "gone"}, g.Labels())

	o, err := g.Toggle(0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSelected, o)
	assert.Equal(t, StatePartial, g.State())

	o, err = g.Toggle(1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSelected, o)

	o, err = g.Toggle(2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatched, o)
	assert.True(t, o.Changed())

	assert.Empty(t, g.Labels())
	assert.Empty(t, g.Selection())
	assert.Equal(t, StateEmpty, g.State())
	assert.True(t, g.Won())
}

func TestMatchGameMismatchHoldsSelection(t *testing.T) {
	g, _ := newGame(t, types.MismatchHold, goEntry, eatEntry)

	o := toggleAll(t, g, 0, 4, 2)

	assert.Equal(t, OutcomeMismatched, o)
	assert.False(t, o.Changed())
	assert.Equal(t, []string{"go", "went", "gone", "eat", "ate", "eaten"}, g.Labels())
	assert.Equal(t, []int{0, 4, 2}, g.Selection())
	assert.Equal(t, StateMismatch, g.State())
	assert.False(t, g.Won())
}

func TestMatchGameNextPickAfterMismatchKeepsFirstTwo(t *testing.T) {
	g, _ := newGame(t, types.MismatchHold, goEntry, eatEntry)
	toggleAll(t, g, 0, 4, 2)

	o, err := g.Toggle(5)
	require.NoError(t, err)

	// go, ate, eaten: still not an entry, but the newest held pick was evicted.
	assert.Equal(t, OutcomeMismatched, o)
	assert.Equal(t, []int{0, 4, 5}, g.Selection())
}

func TestMatchGameDeselectAfterMismatchThenMatch(t *testing.T) {
	g, _ := newGame(t, types.MismatchHold, goEntry, eatEntry)
	toggleAll(t, g, 0, 4, 2)

	o, err := g.Toggle(4)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeselected, o)
	assert.Equal(t, StatePartial, g.State())
	assert.Equal(t, []int{0, 2}, g.Selection())

	o, err = g.Toggle(1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatched, o)
	assert.Equal(t, []string{"eat", "ate", "eaten"}, g.Labels())
}

func TestMatchGameMismatchClearPolicy(t *testing.T) {
	g, _ := newGame(t, types.MismatchClear, goEntry, eatEntry)

	o := toggleAll(t, g, 0, 4, 2)

	assert.Equal(t, OutcomeMismatched, o)
	assert.Empty(t, g.Selection())
	assert.Equal(t, StateEmpty, g.State())
	assert.Len(t, g.Labels(), 6)
}

func TestMatchGameCandidateOrderedByColumn(t *testing.T) {
	tests := []struct {
		name  string
		picks []int
		want  Outcome
	}{
		{name: "column order", picks: []int{3, 4, 5}, want: OutcomeMatched},
		{name: "reverse order", picks: []int{5, 4, 3}, want: OutcomeMatched},
		{name: "mixed order", picks: []int{4, 5, 3}, want: OutcomeMatched},
		{name: "two picks in one column", picks: []int{0, 3, 4}, want: OutcomeMismatched},
		{name: "forms from different entries", picks: []int{0, 1, 5}, want: OutcomeMismatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newGame(t, "", goEntry, eatEntry)

			assert.Equal(t, tt.want, toggleAll(t, g, tt.picks...))
		})
	}
}

func TestMatchGameRemovalPreservesOrder(t *testing.T) {
	entries := []types.Entry{goEntry, eatEntry, seeEntry, takeEntry, writeEntry}

	for row := range entries {
		t.Run(entries[row].First, func(t *testing.T) {
			g, _ := newGame(t, "", entries...)
			before := g.Labels()
			base := row * types.FormCount

			o := toggleAll(t, g, base+2, base, base+1)
			require.Equal(t, OutcomeMatched, o)

			want := slices.Concat(before[:base], before[base+types.FormCount:])
			if diff := cmp.Diff(want, g.Labels()); diff != "" {
				t.Errorf("labels mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(before)-types.FormCount, g.Len())
		})
	}
}

func TestMatchGameSharedLabelsAcrossRows(t *testing.T) {
	a := types.NewEntry("x", "y", "z")
	b := types.NewEntry("x", "w", "z")
	g, _ := newGame(t, "", a, b)

	// b's "x" with a's "y" and "z" spells a.
	require.Equal(t, OutcomeMatched, toggleAll(t, g, 3, 1, 2))
	assert.Equal(t, []string{"x", "w", "z"}, g.Labels())

	// The remaining cells keep the form they were derived with.
	for p, want := range []types.Form{types.FormFirst, types.FormSecond, types.FormThird} {
		c, ok := g.Grid().Cell(p)
		require.True(t, ok)
		assert.Equal(t, want, c.Form)
	}
	require.Equal(t, OutcomeMatched, toggleAll(t, g, 0, 1, 2))
	assert.True(t, g.Won())
}

func TestMatchGameMatchAcrossShiftedPositions(t *testing.T) {
	g, _ := newGame(t, "", goEntry, eatEntry, seeEntry)

	require.Equal(t, OutcomeMatched, toggleAll(t, g, 3, 4, 5))
	require.Equal(t, []string{"go", "went", "gone", "see", "saw", "seen"}, g.Labels())

	require.Equal(t, OutcomeMatched, toggleAll(t, g, 5, 3, 4))
	assert.Equal(t, []string{"go", "went", "gone"}, g.Labels())
}

func TestMatchGameToggleOutOfRange(t *testing.T) {
	g, _ := newGame(t, "", goEntry)
	toggleAll(t, g, 1)

	for _, p := range []int{-1, 3, 100} {
		o, err := g.Toggle(p)
		assert.ErrorIs(t, err, types.ErrInvalidPosition)
		assert.Equal(t, OutcomeNone, o)
	}
	assert.Equal(t, []int{1}, g.Selection(), "a bad position leaves the selection alone")
	assert.Equal(t, StatePartial, g.State())
}

func TestMatchGameToggleBeforeRebuild(t *testing.T) {
	g := NewMatchGame(GameOptions{})

	_, err := g.Toggle(0)

	assert.ErrorIs(t, err, types.ErrInvalidPosition)
	assert.True(t, g.Stale())
	assert.False(t, g.Won(), "an unbuilt grid is not a win")
}

func TestMatchGameDeselect(t *testing.T) {
	g, _ := newGame(t, "", goEntry, eatEntry)

	toggleAll(t, g, 2, 0)
	assert.Equal(t, 1, g.Ordinal(2))
	assert.Equal(t, 2, g.Ordinal(0))
	assert.Equal(t, 0, g.Ordinal(1))
	assert.Equal(t, 0, g.Ordinal(99))

	o, err := g.Toggle(2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeselected, o)
	assert.Equal(t, []int{0}, g.Selection())
	assert.Equal(t, 1, g.Ordinal(0), "ordinals close up after a deselect")

	o, err = g.Toggle(0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeselected, o)
	assert.Equal(t, StateEmpty, g.State())
}

func TestMatchGameRebuildClearsSelection(t *testing.T) {
	g, s := newGame(t, "", goEntry, eatEntry)
	toggleAll(t, g, 0, 1)
	require.NoError(t, s.Insert("see", "saw", "seen"))
	assert.True(t, g.Stale())

	g.Rebuild(s)

	assert.False(t, g.Stale())
	assert.Empty(t, g.Selection())
	assert.Equal(t, StateEmpty, g.State())
	assert.Equal(t, 9, g.Len())
}

func TestMatchGameRebuildRestoresMatchedCells(t *testing.T) {
	g, s := newGame(t, "", goEntry, eatEntry)
	toggleAll(t, g, 0, 1, 2)
	require.Equal(t, 3, g.Len())

	g.Rebuild(s)

	assert.Equal(t, []string{"go", "went", "gone", "eat", "ate", "eaten"}, g.Labels())
}

func TestMatchGameSelectionNeverExceedsThree(t *testing.T) {
	entries := []types.Entry{goEntry, eatEntry, seeEntry, takeEntry, writeEntry}
	for _, policy := range []string{types.MismatchHold, types.MismatchClear} {
		t.Run(policy, func(t *testing.T) {
			g, s := newGame(t, policy, entries...)
			rng := rand.New(rand.NewPCG(3, 5))

			for range 2000 {
				if g.Won() {
					g.Rebuild(s)
				}
				o, err := g.Toggle(rng.IntN(g.Len()))
				require.NoError(t, err)
				require.LessOrEqual(t, len(g.Selection()), types.FormCount)
				if o == OutcomeMatched {
					require.Empty(t, g.Selection())
					require.Zero(t, g.Len()%types.FormCount)
				}
				require.NotEqual(t, StateChecking, g.State(), "checking is never observable at rest")
			}
		})
	}
}

func TestStateAndOutcomeStrings(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "partial", StatePartial.String())
	assert.Equal(t, "checking", StateChecking.String())
	assert.Equal(t, "mismatch", StateMismatch.String())
	assert.Equal(t, "unknown", State(42).String())

	assert.Equal(t, "none", OutcomeNone.String())
	assert.Equal(t, "selected", OutcomeSelected.String())
	assert.Equal(t, "deselected", OutcomeDeselected.String())
	assert.Equal(t, "matched", OutcomeMatched.String())
	assert.Equal(t, "mismatched", OutcomeMismatched.String())
}
