// This file implements JSONL loading for startup.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTableMapping maps JSONL filenames to their SQLite tables and column lists.
var jsonlTableMapping = []struct {
	file     string
	table    string
	columns  []string
	defaults func(line int, args []any)
}{
	{entriesJSONL, "entries", entryColumns, fillEntryDefaults},
}

// fillEntryDefaults gives hand-written entry lines an ID and keeps them in
// file order when they carry no ordinal.
func fillEntryDefaults(line int, args []any) {
	if id, _ := args[0].(string); id == "" {
		args[0] = newEntryID()
	}
	if args[1] == nil {
		args[1] = line
	}
}

// loadAllJSONL reads each JSONL file from dataDir and inserts records into the
// corresponding SQLite tables. Loading is transactional: all succeed or the
// database remains empty. Malformed lines and records that violate table
// constraints are skipped; unknown fields are ignored. Returns the number of
// records loaded.
func loadAllJSONL(db *sql.DB, dataDir string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	loaded := 0
	for _, mapping := range jsonlTableMapping {
		path := filepath.Join(dataDir, mapping.file)
		records, err := readJSONL(path)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", mapping.file, err)
		}

		if len(records) == 0 {
			continue
		}

		n, err := insertRecords(tx, mapping.table, mapping.columns, mapping.defaults, records)
		if err != nil {
			return 0, fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
		loaded += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}

	return loaded, nil
}

// insertRecords inserts parsed JSONL records into a SQLite table. Only the
// listed columns are extracted; extra fields are ignored. defaults, when
// set, fills missing values before the insert. Returns the number of rows
// inserted.
func insertRecords(tx *sql.Tx, table string, columns []string, defaults func(int, []any), records []json.RawMessage) (int, error) {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	inserted := 0
	for line, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			val, ok := obj[col]
			if !ok {
				args[i] = nil
				continue
			}
			args[i] = val
		}
		if defaults != nil {
			defaults(line, args)
		}

		if _, err := stmt.Exec(args...); err != nil {
			// Constraint violations (empty form, duplicate entry) are skipped.
			continue
		}
		inserted++
	}

	return inserted, nil
}
