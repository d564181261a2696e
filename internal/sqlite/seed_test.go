package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/verby/pkg/types"
)

func TestSeedDemoEntryIdempotent(t *testing.T) {
	b := setupBackend(t, types.Config{Seed: true})

	b.mu.Lock()
	err := b.seedDemoEntry()
	b.mu.Unlock()
	require.NoError(t, err)

	got, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, []types.Entry{types.DemoEntry()}, got)
}

func TestSeedWrittenToJSONLUnderOnClose(t *testing.T) {
	dataDir := t.TempDir()
	setupBackend(t, types.Config{DataDir: dataDir, Seed: true, SyncStrategy: types.SyncOnClose})

	data, err := os.ReadFile(filepath.Join(dataDir, entriesJSONL))

	require.NoError(t, err)
	assert.Contains(t, string(data), `"first":"first"`)
}
