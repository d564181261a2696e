// This file holds the SQLite schema and data file names.
package sqlite

// Schema DDL. The CHECK and UNIQUE constraints mirror the entry store's
// insertion rules so that a hand-edited verbs.jsonl cannot smuggle empty or
// duplicate entries in on load.
const (
	createEntries = `CREATE TABLE entries (
    entry_id TEXT PRIMARY KEY,
    ordinal INTEGER NOT NULL,
    first TEXT NOT NULL CHECK (first <> ''),
    second TEXT NOT NULL CHECK (second <> ''),
    third TEXT NOT NULL CHECK (third <> ''),
    UNIQUE (first, second, third)
);`

	createEntriesOrdinalIndex = `CREATE INDEX idx_entries_ordinal ON entries (ordinal);`
)

// schemaStatements lists the DDL in execution order.
var schemaStatements = []string{
	createEntries,
	createEntriesOrdinalIndex,
}

// JSONL file names in the data directory.
const (
	entriesJSONL = "verbs.jsonl"
	databaseFile = "verby.db"
)

// entryColumns is the column order used by every entries query.
var entryColumns = []string{"entry_id", "ordinal", "first", "second", "third"}
