// Package sqlite provides the public API for the yo storage backend.
// This package exposes the factory for opening a project's store while
// keeping implementation details internal.
package sqlite

import (
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/yo/internal/sqlite"
	"github.com/mesh-intelligence/yo/pkg/entry"
	"github.com/mesh-intelligence/yo/pkg/types"
)

// Store is an attached project store: the entry log plus its snapshot.
type Store interface {
	// Project returns a copy of the current project state.
	Project() (*types.Project, error)
	// Entries decodes the whole log in order.
	Entries() ([]entry.Entry, error)
	// Execute validates, applies and appends entries as one command.
	Execute(entries ...entry.Entry) (*types.Project, error)
	// Reindex rebuilds the snapshot from the full log.
	Reindex() (*types.Project, error)
	// ResetSnapshot deletes the snapshot database and rebuilds it.
	ResetSnapshot() error
	// Export writes the projected items to a JSON lines file.
	Export(path string) error
	// Detach releases the store.
	Detach() error
}

// Open attaches a SQLite-backed store to dataDir, creating the log and
// snapshot if they do not exist.
//
// Example:
//
//	store, err := sqlite.Open(".yo", zerolog.Nop())
//	if err != nil {
//	    return err
//	}
//	defer store.Detach()
func Open(dataDir string, logger zerolog.Logger) (Store, error) {
	b := sqlite.NewBackend(logger)
	if err := b.Attach(types.Config{DataDir: dataDir}); err != nil {
		return nil, err
	}
	return b, nil
}
