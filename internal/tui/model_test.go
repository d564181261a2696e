package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/verby/pkg/types"
	"github.com/mesh-intelligence/verby/pkg/verbs"
)

// fakeNotebook records saves.
type fakeNotebook struct {
	saves   [][]types.Entry
	saveErr error
}

func (f *fakeNotebook) Attach(types.Config) error    { return nil }
func (f *fakeNotebook) Detach() error                { return nil }
func (f *fakeNotebook) Load() ([]types.Entry, error) { return nil, nil }
func (f *fakeNotebook) Save(entries []types.Entry) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, entries)
	return nil
}

var specialKeys = map[string]tea.KeyType{
	"space":     tea.KeySpace,
	"enter":     tea.KeyEnter,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"esc":       tea.KeyEsc,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+d":    tea.KeyCtrlD,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
}

func keyMsg(k string) tea.KeyMsg {
	if k == "space" {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if kt, ok := specialKeys[k]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys to m in order. Names in specialKeys are sent as that
// key; anything else is typed as runes.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "Update must return a Model")
	}
	return m
}

func newModel(t *testing.T, nb types.Notebook, entries ...types.Entry) Model {
	t.Helper()
	s := verbs.NewSession(verbs.SessionConfig{}, nil)
	require.Zero(t, s.Import(entries))
	return New(s, Options{Notebook: nb})
}

var (
	goEntry  = types.NewEntry("go", "went", "gone")
	eatEntry = types.NewEntry("eat", "ate", "eaten")
)

func TestPlayCursorMovement(t *testing.T) {
	m := newModel(t, nil, goEntry, eatEntry)

	steps := []struct {
		key  string
		want int
	}{
		{"h", 0},
		{"right", 1},
		{"down", 4},
		{"j", 4},
		{"left", 3},
		{"up", 0},
		{"l", 1},
		{"l", 2},
		{"k", 2},
	}
	for _, st := range steps {
		m = press(t, m, st.key)
		assert.Equal(t, st.want, m.cursor, "after %q", st.key)
	}
}

func TestPlayMatchRemovesCells(t *testing.T) {
	m := newModel(t, nil, goEntry, eatEntry)

	m = press(t, m, "space", "l", "enter")
	assert.Equal(t, []int{0, 1}, m.session.Game().Selection())
	assert.Contains(t, m.View(), "go #1")
	assert.Contains(t, m.View(), "went #2")

	m = press(t, m, "l", "space")

	assert.Equal(t, []string{"eat", "ate", "eaten"}, m.session.Game().Labels())
	assert.Equal(t, "Match!", m.status)
	assert.Less(t, m.cursor, 3)
}

func TestPlayMismatchHoldsPicks(t *testing.T) {
	m := newModel(t, nil, goEntry, eatEntry)

	m = press(t, m, "space", "l", "space", "l", "l", "l", "l", "space")

	assert.Equal(t, verbs.StateMismatch, m.session.Game().State())
	assert.Equal(t, "Those forms do not belong together.", m.status)
	assert.Contains(t, m.View(), "eaten #3")
	assert.Len(t, m.session.Game().Labels(), 6)
}

func TestPlayWinThenReset(t *testing.T) {
	m := newModel(t, nil, goEntry)

	m = press(t, m, "space", "l", "space", "l", "space")
	require.True(t, m.session.Game().Won())
	assert.Equal(t, "All matched! Press r to play again.", m.status)
	assert.Contains(t, m.View(), "Every entry is matched.")

	m = press(t, m, "space") // nothing left to pick
	m = press(t, m, "r")

	assert.Equal(t, []string{"go", "went", "gone"}, m.session.Game().Labels())
	assert.Equal(t, 0, m.cursor)
}

func TestEmptyNotebookView(t *testing.T) {
	m := newModel(t, nil)

	m = press(t, m, "space")

	assert.Contains(t, m.View(), "No entries yet")
	assert.Empty(t, m.status)
}

func TestEditAddEntry(t *testing.T) {
	m := newModel(t, nil, goEntry)

	m = press(t, m, "e", "take", "tab", "took", "tab", "taken")
	assert.Contains(t, m.View(), "press enter to add")
	m = press(t, m, "enter")

	assert.Equal(t, []types.Entry{goEntry, types.NewEntry("take", "took", "taken")}, m.session.Export())
	assert.Len(t, m.table.Rows(), 2)
	assert.Len(t, m.session.Game().Labels(), 6, "the grid is rebuilt after an edit")
	assert.Equal(t, 0, m.focus)
	for i := range m.inputs {
		assert.Empty(t, m.inputs[i].Value())
	}
}

func TestEditRejectsInvalidEntry(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		reason string
	}{
		{name: "duplicate", keys: []string{"go", "tab", "went", "tab", "gone"}, reason: "already in the table"},
		{name: "empty form", keys: []string{"go", "tab", "tab", "gone"}, reason: "every form is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, nil, goEntry)
			m = press(t, m, "e")
			m = press(t, m, tt.keys...)
			assert.Contains(t, m.View(), "incomplete or already in the table")

			m = press(t, m, "enter")

			assert.Contains(t, m.status, tt.reason)
			assert.Equal(t, 1, m.session.Store().Len())
		})
	}
}

func TestEditShortFormWarning(t *testing.T) {
	m := newModel(t, nil)

	m = press(t, m, "e", "a", "tab", "b", "tab", "c")
	assert.Contains(t, m.View(), "a form looks too short")

	m = press(t, m, "enter")
	assert.Equal(t, 1, m.session.Store().Len(), "short forms are still accepted")
}

func TestEditDeleteHighlightedRow(t *testing.T) {
	m := newModel(t, nil, goEntry, eatEntry)

	m = press(t, m, "e", "tab", "tab", "tab")
	require.Equal(t, focusTable, m.focus)
	m = press(t, m, "down", "ctrl+d")

	assert.Equal(t, []types.Entry{goEntry}, m.session.Export())
	assert.Len(t, m.table.Rows(), 1)
	assert.Equal(t, []string{"go", "went", "gone"}, m.session.Game().Labels())

	m = press(t, m, "ctrl+d", "ctrl+d")
	assert.Equal(t, "Nothing to delete.", m.status)
}

func TestEditEscReturnsToPlay(t *testing.T) {
	m := newModel(t, nil, goEntry)

	m = press(t, m, "e", "q", "esc")

	assert.Equal(t, modePlay, m.mode)
	assert.False(t, m.quitting, "q is typed, not a quit, in edit mode")
	assert.Contains(t, m.View(), playHelp)
}

func TestQuitSavesChangedEntries(t *testing.T) {
	nb := &fakeNotebook{}
	m := newModel(t, nb, goEntry)

	m = press(t, m, "e", "eat", "tab", "ate", "tab", "eaten", "enter")
	next, cmd := m.Update(keyMsg("ctrl+c"))
	m = next.(Model)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	require.NoError(t, m.Err())
	require.Len(t, nb.saves, 1)
	assert.Equal(t, []types.Entry{goEntry, eatEntry}, nb.saves[0])
	assert.Empty(t, m.View())
}

func TestQuitWithoutChangesSkipsSave(t *testing.T) {
	nb := &fakeNotebook{}
	m := newModel(t, nb, goEntry)

	m = press(t, m, "space", "q")

	assert.True(t, m.quitting)
	assert.Empty(t, nb.saves)
}

func TestQuitReportsSaveError(t *testing.T) {
	boom := errors.New("disk full")
	m := newModel(t, &fakeNotebook{saveErr: boom}, goEntry)

	m = press(t, m, "e", "esc")
	require.NoError(t, m.session.DeleteAt(0))
	m = press(t, m, "q")

	assert.ErrorIs(t, m.Err(), boom)
}

func TestToggleAfterDirectStoreChange(t *testing.T) {
	m := newModel(t, nil, goEntry, eatEntry)
	require.NoError(t, m.session.Store().DeleteAt(0))

	m = press(t, m, "l", "space")

	assert.Contains(t, m.status, "grid was rebuilt")
	assert.Equal(t, 0, m.cursor)
	assert.Empty(t, m.session.Game().Selection())
}
