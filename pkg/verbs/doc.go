// Package verbs implements the matching game at the heart of verby.
//
// An EntryStore owns the ordered table of three-form verb entries. A
// MatchGame flattens that table into a Grid of labels, one cell per form,
// and accepts picks against grid positions. When three cells are picked the
// game assembles them into a candidate entry ordered by form column and
// looks it up in the store; a hit removes the three cells from the grid.
//
// A Session ties one store to one game for the lifetime of a run and is the
// only handle collaborators (CLI, terminal UI, persistence) need. Nothing in
// this package performs I/O or synchronizes access: callers serialize calls.
package verbs
