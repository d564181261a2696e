// Package tui renders a verbs.Session as a Bubble Tea program. Play mode
// shows the grid and forwards picks; edit mode adds and deletes entries.
// The model only reads the session through its views and mutates it through
// Session methods, so the grid is always rebuilt after an edit.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/verby/pkg/types"
	"github.com/mesh-intelligence/verby/pkg/verbs"
)

const (
	gridColumns = 3
	cellWidth   = 20
)

// focusTable is the edit-mode focus index of the entry table; lower
// indexes are the form inputs.
const focusTable = types.FormCount

const (
	playHelp = "arrows/hjkl move • space pick • r reset • e edit • q quit"
	editHelp = "tab next field • enter add • ctrl+d delete row • esc play"
)

type mode int

const (
	modePlay mode = iota
	modeEdit
)

// Options wires the model to its collaborators.
type Options struct {
	// Notebook receives the entries on quit. Nil disables saving.
	Notebook types.Notebook
	Logger   *zap.Logger
}

// Model is the Bubble Tea model for a play session.
type Model struct {
	session  *verbs.Session
	notebook types.Notebook
	logger   *zap.Logger
	styles   Styles

	mode     mode
	cursor   int
	status   string
	err      error
	quitting bool

	inputs [types.FormCount]textinput.Model
	focus  int
	table  table.Model

	savedRevision uint64
}

// New returns a model in play mode over session.
func New(session *verbs.Session, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		session:  session,
		notebook: opts.Notebook,
		logger:   logger,
		styles:   DefaultStyles(),
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = strings.ToLower(types.Form(i).String())
		in.CharLimit = 40
		in.Width = cellWidth
		m.inputs[i] = in
	}
	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "First", Width: 14},
			{Title: "Second", Width: 14},
			{Title: "Third", Width: 14},
		}),
		table.WithHeight(8),
	)
	m.refreshTable()
	m.savedRevision = session.Store().Revision()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m.quit()
	}
	if m.mode == modeEdit {
		return m.updateEdit(key)
	}
	return m.updatePlay(key)
}

func (m Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.session.Game().Len()
	switch msg.String() {
	case "q":
		return m.quit()
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor >= gridColumns {
			m.cursor -= gridColumns
		}
	case "down", "j":
		if m.cursor+gridColumns < n {
			m.cursor += gridColumns
		}
	case " ", "enter":
		m.toggle()
	case "r":
		m.session.Reset()
		m.cursor = 0
		m.status = "Grid reset."
	case "e":
		m.mode = modeEdit
		m.status = ""
		return m, m.setFocus(0)
	}
	return m, nil
}

func (m *Model) toggle() {
	if m.session.Game().Len() == 0 {
		return
	}
	outcome, err := m.session.Toggle(m.cursor)
	switch {
	case errors.Is(err, types.ErrGridStale):
		m.cursor = 0
		m.status = "The entries changed, so the grid was rebuilt. Pick again."
		return
	case err != nil:
		m.status = err.Error()
		return
	}

	switch outcome {
	case verbs.OutcomeMatched:
		m.clampCursor()
		if m.session.Game().Won() {
			m.status = "All matched! Press r to play again."
		} else {
			m.status = "Match!"
		}
	case verbs.OutcomeMismatched:
		m.status = "Those forms do not belong together."
	default:
		m.status = ""
	}
}

func (m *Model) clampCursor() {
	n := m.session.Game().Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modePlay
		m.blurAll()
		m.cursor = 0
		m.status = ""
		return m, nil
	case "tab":
		return m, m.setFocus((m.focus + 1) % (focusTable + 1))
	case "shift+tab":
		return m, m.setFocus((m.focus + focusTable) % (focusTable + 1))
	case "enter":
		if m.focus < focusTable {
			m.addEntry()
			return m, nil
		}
	case "ctrl+d":
		m.deleteSelected()
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusTable {
		m.table, cmd = m.table.Update(msg)
	} else {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

// setFocus moves edit-mode focus to index i and returns the input's blink
// command, if any.
func (m *Model) setFocus(i int) tea.Cmd {
	m.blurAll()
	m.focus = i
	if i == focusTable {
		m.table.Focus()
		return nil
	}
	return m.inputs[i].Focus()
}

func (m *Model) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.table.Blur()
}

func (m Model) values() (string, string, string) {
	return m.inputs[types.FormFirst].Value(), m.inputs[types.FormSecond].Value(), m.inputs[types.FormThird].Value()
}

func (m *Model) addEntry() {
	first, second, third := m.values()
	if err := m.session.Insert(first, second, third); err != nil {
		m.status = "Cannot add: " + rejectionReason(err)
		return
	}
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.setFocus(0)
	m.refreshTable()
	m.cursor = 0
	m.status = fmt.Sprintf("Added %s.", types.NewEntry(first, second, third))
}

func (m *Model) deleteSelected() {
	store := m.session.Store()
	if store.Len() == 0 {
		m.status = "Nothing to delete."
		return
	}
	i := m.table.Cursor()
	e, err := store.At(i)
	if err == nil {
		err = m.session.DeleteAt(i)
	}
	if err != nil {
		m.status = err.Error()
		return
	}
	m.refreshTable()
	m.cursor = 0
	m.status = fmt.Sprintf("Deleted %s.", e)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, types.ErrEmptyField):
		return "every form is required"
	case errors.Is(err, types.ErrDuplicateEntry):
		return "that entry is already in the table"
	default:
		return err.Error()
	}
}

func (m *Model) refreshTable() {
	entries := m.session.Store().Entries()
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{strconv.Itoa(i + 1), e.First, e.Second, e.Third}
	}
	m.table.SetRows(rows)
	if len(rows) > 0 && m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.err = m.save()
	return m, tea.Quit
}

// save writes the entries to the notebook if they changed since the last
// save. Only entries are written; the grid and selection are discarded.
func (m *Model) save() error {
	if m.notebook == nil {
		return nil
	}
	rev := m.session.Store().Revision()
	if rev == m.savedRevision {
		return nil
	}
	if err := m.notebook.Save(m.session.Export()); err != nil {
		m.logger.Error("saving entries failed", zap.Error(err))
		return fmt.Errorf("saving entries: %w", err)
	}
	m.savedRevision = rev
	m.logger.Info("entries saved", zap.Int("entries", m.session.Store().Len()))
	return nil
}

// Err returns the error from the save on quit, if any.
func (m Model) Err() error {
	return m.err
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("verby") + "\n\n")
	help := playHelp
	if m.mode == modeEdit {
		b.WriteString(m.editView())
		help = editHelp
	} else {
		b.WriteString(m.playView())
	}
	if m.status != "" {
		b.WriteString("\n" + m.styles.Status.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.styles.Help.Render(help) + "\n")
	return b.String()
}

func (m Model) playView() string {
	game := m.session.Game()
	labels := game.Labels()
	if m.session.Store().Len() == 0 {
		return "No entries yet. Press e to add some.\n"
	}
	if len(labels) == 0 {
		return "Every entry is matched.\n"
	}

	var b strings.Builder
	for start := 0; start < len(labels); start += gridColumns {
		end := min(start+gridColumns, len(labels))
		cells := make([]string, 0, gridColumns)
		for p := start; p < end; p++ {
			cells = append(cells, m.renderCell(p, labels[p], game.Ordinal(p)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}
	return b.String()
}

func (m Model) renderCell(p int, label string, ordinal int) string {
	style := m.styles.Cell
	text := label
	if ordinal > 0 {
		text = fmt.Sprintf("%s #%d", label, ordinal)
		style = m.styles.Picked
		if m.session.Game().State() == verbs.StateMismatch {
			style = m.styles.Mismatch
		}
	}
	if p == m.cursor {
		style = style.Reverse(true)
	}
	return style.Render(text)
}

func (m Model) editView() string {
	var b strings.Builder
	for i := range m.inputs {
		b.WriteString(m.styles.Label.Render(types.Form(i).String()+":") + m.inputs[i].View() + "\n")
	}
	if hint := m.assessmentView(); hint != "" {
		b.WriteString(hint + "\n")
	}
	b.WriteString("\n" + m.table.View() + "\n")
	return b.String()
}

// assessmentView colours the add hint the way the candidate would be
// treated by Insert.
func (m Model) assessmentView() string {
	first, second, third := m.values()
	if first == "" && second == "" && third == "" {
		return ""
	}
	switch m.session.Store().Assess(first, second, third) {
	case verbs.AssessInvalid:
		return m.styles.Invalid.Render("✗ incomplete or already in the table")
	case verbs.AssessShort:
		return m.styles.Warning.Render("! a form looks too short; enter still adds it")
	default:
		return m.styles.Valid.Render("✓ press enter to add")
	}
}

// Run starts the program and blocks until the user quits or ctx is done.
// The final model is returned so callers can report its state; edits are
// saved even when the program is interrupted.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	if err != nil {
		if saveErr := m.save(); saveErr != nil {
			return m, errors.Join(err, saveErr)
		}
		return m, fmt.Errorf("running ui: %w", err)
	}
	return m, m.Err()
}
