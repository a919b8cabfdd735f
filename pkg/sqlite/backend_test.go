package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/yo/pkg/entry"
	"github.com/mesh-intelligence/yo/pkg/types"
)

func TestOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".yo")
	store, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)

	id := uuid.New()
	create, err := entry.New(time.Now(), "alice", entry.Create{ItemID: id})
	require.NoError(t, err)
	p, err := store.Execute(create)
	require.NoError(t, err)
	require.Len(t, p.Items, 1)
	require.NoError(t, store.Detach())

	reopened, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Detach()
	p, err = reopened.Project()
	require.NoError(t, err)
	require.Len(t, p.Items, 1)
	assert.Equal(t, id, p.Items[0].ID)
}

func TestOpen_EmptyDataDir(t *testing.T) {
	_, err := Open("", zerolog.Nop())
	assert.ErrorIs(t, err, types.ErrDataDirEmpty)
}
