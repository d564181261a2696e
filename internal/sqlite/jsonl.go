// This file provides JSONL read/write helpers with atomic persistence.
package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/verby/pkg/types"
)

// entryRecord is one line of verbs.jsonl.
type entryRecord struct {
	EntryID string `json:"entry_id"`
	Ordinal int    `json:"ordinal"`
	First   string `json:"first"`
	Second  string `json:"second"`
	Third   string `json:"third"`
}

func (r entryRecord) entry() types.Entry {
	return types.NewEntry(r.First, r.Second, r.Third)
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := scanJSONL(f)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// scanJSONL splits r into JSON lines, skipping blank and malformed ones.
func scanJSONL(r io.Reader) ([]json.RawMessage, error) {
	var records []json.RawMessage
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// EncodeEntries writes entries to w in the verbs.jsonl format, numbering
// ordinals from zero. Entry IDs are left empty; the backend assigns them
// on import.
func EncodeEntries(w io.Writer, entries []types.Entry) error {
	enc := json.NewEncoder(w)
	for i, e := range entries {
		rec := entryRecord{Ordinal: i, First: e.First, Second: e.Second, Third: e.Third}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding entry %d: %w", i, err)
		}
	}
	return nil
}

// DecodeEntries reads verbs.jsonl-formatted entries from r in line order.
// Malformed lines are skipped; validation is left to the entry store.
func DecodeEntries(r io.Reader) ([]types.Entry, error) {
	records, err := scanJSONL(r)
	if err != nil {
		return nil, err
	}
	entries := make([]types.Entry, 0, len(records))
	for _, raw := range records {
		var rec entryRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		entries = append(entries, rec.entry())
	}
	return entries, nil
}
