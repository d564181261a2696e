// This file implements demo entry seeding on first attach.
package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/verby/pkg/types"
)

// seedDemoEntry stores the demo entry if the entries table is empty and
// writes verbs.jsonl so the seed survives regardless of sync strategy.
// The caller must hold b.mu and have set b.db and b.config.
func (b *Backend) seedDemoEntry() error {
	var count int
	if err := b.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count); err != nil {
		return fmt.Errorf("counting entries: %w", err)
	}
	if count > 0 {
		return nil
	}

	demo := types.DemoEntry()
	if _, err := b.db.Exec(
		"INSERT INTO entries (entry_id, ordinal, first, second, third) VALUES (?, ?, ?, ?, ?)",
		newEntryID(), 0, demo.First, demo.Second, demo.Third,
	); err != nil {
		return fmt.Errorf("inserting demo entry: %w", err)
	}

	return b.persistEntriesJSONL()
}
