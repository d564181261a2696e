// Tests for loading verbs.jsonl into SQLite on attach.
package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/verby/pkg/types"
)

// attachWithJSONL writes content as verbs.jsonl and attaches a backend to it.
func attachWithJSONL(t *testing.T, lines ...string) *Backend {
	t.Helper()
	dataDir := t.TempDir()
	content := strings.Join(lines, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, entriesJSONL), []byte(content), 0o644))
	return setupBackend(t, types.Config{DataDir: dataDir, Seed: true})
}

func TestLoadJSONLOrdersByOrdinal(t *testing.T) {
	b := attachWithJSONL(t,
		`{"entry_id":"c","ordinal":2,"first":"see","second":"saw","third":"seen"}`,
		`{"entry_id":"a","ordinal":0,"first":"go","second":"went","third":"gone"}`,
		`{"entry_id":"b","ordinal":1,"first":"eat","second":"ate","third":"eaten"}`,
	)

	got, err := b.Load()

	require.NoError(t, err)
	assert.Equal(t, sample, got)
}

func TestLoadJSONLSkipsConstraintViolations(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []types.Entry
	}{
		{
			name: "empty form",
			lines: []string{
				`{"entry_id":"a","ordinal":0,"first":"go","second":"went","third":"gone"}`,
				`{"entry_id":"b","ordinal":1,"first":"eat","second":"","third":"eaten"}`,
			},
			want: sample[:1],
		},
		{
			name: "duplicate entry",
			lines: []string{
				`{"entry_id":"a","ordinal":0,"first":"go","second":"went","third":"gone"}`,
				`{"entry_id":"b","ordinal":1,"first":"go","second":"went","third":"gone"}`,
			},
			want: sample[:1],
		},
		{
			name: "duplicate id",
			lines: []string{
				`{"entry_id":"a","ordinal":0,"first":"go","second":"went","third":"gone"}`,
				`{"entry_id":"a","ordinal":1,"first":"eat","second":"ate","third":"eaten"}`,
			},
			want: sample[:1],
		},
		{
			name: "missing form",
			lines: []string{
				`{"entry_id":"a","ordinal":0,"first":"go","second":"went"}`,
				`{"entry_id":"b","ordinal":1,"first":"eat","second":"ate","third":"eaten"}`,
			},
			want: sample[1:2],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := attachWithJSONL(t, tt.lines...)

			got, err := b.Load()

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadJSONLFillsMissingIDAndOrdinal(t *testing.T) {
	b := attachWithJSONL(t,
		`{"first":"go","second":"went","third":"gone"}`,
		`{"first":"eat","second":"ate","third":"eaten"}`,
		`{"first":"see","second":"saw","third":"seen"}`,
	)

	records, err := b.queryEntries()

	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, rec := range records {
		assert.NotEmpty(t, rec.EntryID)
		assert.Equal(t, i, rec.Ordinal)
		assert.Equal(t, sample[i], rec.entry())
	}
}

func TestLoadJSONLIgnoresUnknownFields(t *testing.T) {
	b := attachWithJSONL(t,
		`{"entry_id":"a","ordinal":0,"first":"go","second":"went","third":"gone","notes":"irregular","level":2}`,
	)

	got, err := b.Load()

	require.NoError(t, err)
	assert.Equal(t, sample[:1], got)
}

func TestLoadJSONLExistingEmptyFileIsNotFirstRun(t *testing.T) {
	b := attachWithJSONL(t)

	got, err := b.Load()

	require.NoError(t, err)
	assert.Empty(t, got, "an existing empty notebook is not seeded")
}
