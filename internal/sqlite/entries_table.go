// This file implements reading and writing the ordered entry table.
package sqlite

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/verby/pkg/types"
)

var selectEntriesSQL = "SELECT " + strings.Join(entryColumns, ", ") + " FROM entries ORDER BY ordinal, rowid"

// Load returns the stored entries in saved order.
// Returns ErrNotebookDetached if the backend is not attached.
func (b *Backend) Load() ([]types.Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrNotebookDetached
	}

	records, err := b.queryEntries()
	if err != nil {
		return nil, err
	}
	entries := make([]types.Entry, len(records))
	for i, rec := range records {
		entries[i] = rec.entry()
	}
	return entries, nil
}

// Save replaces the stored entries with entries, in order. Entries already
// stored keep their entry_id; new ones get a fresh UUID v7. With the
// immediate sync strategy verbs.jsonl is rewritten before Save returns.
// Returns ErrNotebookDetached if the backend is not attached, and an error
// wrapping ErrValidationRejected if entries holds an empty form or a
// duplicate; nothing is written in that case.
func (b *Backend) Save(entries []types.Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrNotebookDetached
	}

	existing, err := b.queryEntries()
	if err != nil {
		return err
	}
	ids := make(map[types.Entry]string, len(existing))
	for _, rec := range existing {
		ids[rec.entry()] = rec.EntryID
	}

	seen := make(map[types.Entry]bool, len(entries))
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w: %w", i, types.ErrValidationRejected, err)
		}
		if seen[e] {
			return fmt.Errorf("entry %d: %w: %w", i, types.ErrValidationRejected, types.ErrDuplicateEntry)
		}
		seen[e] = true
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO entries (entry_id, ordinal, first, second, third) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		id, ok := ids[e]
		if !ok {
			id = newEntryID()
		}
		if _, err := stmt.Exec(id, i, e.First, e.Second, e.Third); err != nil {
			return fmt.Errorf("inserting entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entries: %w", err)
	}

	if b.syncStrategy == types.SyncOnClose {
		b.pending = true
		b.logger.Debug("entries saved, jsonl deferred", zap.Int("entries", len(entries)))
		return nil
	}
	if err := b.persistEntriesJSONL(); err != nil {
		return fmt.Errorf("persisting %s: %w", entriesJSONL, err)
	}
	b.logger.Debug("entries saved", zap.Int("entries", len(entries)))
	return nil
}

// queryEntries reads all rows in order. The caller must hold b.mu.
func (b *Backend) queryEntries() ([]entryRecord, error) {
	rows, err := b.db.Query(selectEntriesSQL)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var records []entryRecord
	for rows.Next() {
		var rec entryRecord
		if err := rows.Scan(&rec.EntryID, &rec.Ordinal, &rec.First, &rec.Second, &rec.Third); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return records, nil
}

// persistEntriesJSONL writes every entry row to verbs.jsonl atomically.
// The caller must hold b.mu.
func (b *Backend) persistEntriesJSONL() error {
	records, err := b.queryEntries()
	if err != nil {
		return err
	}
	raw := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshalling entry %s: %w", rec.EntryID, err)
		}
		raw = append(raw, line)
	}
	return writeJSONL(filepath.Join(b.config.DataDir, entriesJSONL), raw)
}
