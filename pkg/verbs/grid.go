package verbs

import (
	"slices"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/verby/pkg/types"
)

// cellKey identifies a cell independently of its current position.
// No two cells of one grid share a key.
type cellKey struct {
	entry uuid.UUID
	form  types.Form
}

// Cell is one label in play. Form is the column the label was derived
// from and does not change when earlier cells are removed.
type Cell struct {
	EntryID uuid.UUID
	Form    types.Form
	Label   string
}

func (c Cell) key() cellKey {
	return cellKey{entry: c.EntryID, form: c.Form}
}

// Grid is the flattened, position-addressed view of the entries in play.
type Grid struct {
	cells []Cell
}

// Flatten derives a grid from the store: entries in store order, each
// contributing its forms in column order. The same store state always
// yields the same grid.
func Flatten(store *EntryStore) Grid {
	cells := make([]Cell, 0, store.Len()*types.FormCount)
	for _, sl := range store.slots {
		for f, label := range sl.entry.Forms() {
			cells = append(cells, Cell{EntryID: sl.id, Form: types.Form(f), Label: label})
		}
	}
	return Grid{cells: cells}
}

// Len returns the number of cells in play.
func (g Grid) Len() int {
	return len(g.cells)
}

// IsEmpty reports whether every cell has been matched away.
func (g Grid) IsEmpty() bool {
	return len(g.cells) == 0
}

// Labels returns the labels in position order.
func (g Grid) Labels() []string {
	out := make([]string, len(g.cells))
	for i, c := range g.cells {
		out[i] = c.Label
	}
	return out
}

// Cell returns the cell at position p.
func (g Grid) Cell(p int) (Cell, bool) {
	if p < 0 || p >= len(g.cells) {
		return Cell{}, false
	}
	return g.cells[p], true
}

// position returns the current position of the cell with key k, or -1.
func (g Grid) position(k cellKey) int {
	return slices.IndexFunc(g.cells, func(c Cell) bool { return c.key() == k })
}

// remove drops the cells with the given keys, keeping the relative order
// of everything else. Removal is by identity, so no index arithmetic is
// needed however the keys are spread across the grid.
func (g *Grid) remove(keys []cellKey) {
	g.cells = slices.DeleteFunc(g.cells, func(c Cell) bool {
		return slices.Contains(keys, c.key())
	})
}
