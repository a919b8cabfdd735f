// Tests for the JSONL export.
package sqlite

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/yo/pkg/types"
)

func TestWriteJSONL_Atomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	records := []json.RawMessage{json.RawMessage(`{"a":1}`), json.RawMessage(`{"b":2}`)}
	require.NoError(t, writeJSONL(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n{\"b\":2}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file left behind: %s", e.Name())
	}
}

func TestBackend_Export(t *testing.T) {
	b := attachTest(t, t.TempDir())
	first := seedItem(t, b, "one")
	second := seedItem(t, b, "two")

	path := filepath.Join(t.TempDir(), "items.jsonl")
	require.NoError(t, b.Export(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var items []types.Item
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		assert.False(t, strings.Contains(line, "\n  "), "export must not be pretty-printed")
		var it types.Item
		require.NoError(t, json.Unmarshal([]byte(line), &it))
		items = append(items, it)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, items, 2)
	assert.Equal(t, first, items[0].ID)
	assert.Equal(t, second, items[1].ID)
	assert.Equal(t, "two", *items[1].Title)
	assert.Equal(t, types.Hours(6), *items[1].Remaining)
	assert.Len(t, items[1].Log, 1)
}

func TestBackend_ExportEmpty(t *testing.T) {
	b := attachTest(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "items.jsonl")
	require.NoError(t, b.Export(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}
