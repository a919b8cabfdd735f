// This file implements the Backend lifecycle and command execution.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/yo/internal/project"
	"github.com/mesh-intelligence/yo/pkg/entry"
	"github.com/mesh-intelligence/yo/pkg/types"
)

// File names inside the data directory.
const (
	LogFileName      = "entries.log"
	SnapshotFileName = "snapshot.db"
)

// Backend owns the entry log and the snapshot for one project. The log is
// the source of truth; the snapshot is rebuilt from it whenever the two
// disagree.
type Backend struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	logger   zerolog.Logger
	db       *sql.DB
	logPath  string
	lines    []string
	project  *types.Project
}

// NewBackend creates a new backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(logger zerolog.Logger) *Backend {
	return &Backend{logger: logger}
}

// Attach opens the data directory, creating the log and snapshot if needed,
// and loads the current project. A snapshot that does not match the log is
// rebuilt by a full reindex. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return err
	}

	logPath := filepath.Join(config.DataDir, LogFileName)
	if err := ensureFile(logPath); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(config.DataDir, SnapshotFileName))
	if err != nil {
		return err
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating snapshot schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.logPath = logPath

	if err := b.loadLocked(); err != nil {
		db.Close()
		b.db = nil
		return err
	}

	b.attached = true
	b.logger.Debug().
		Str("data_dir", config.DataDir).
		Int("entries", len(b.lines)).
		Int("items", len(b.project.Items)).
		Msg("backend attached")
	return nil
}

// Detach releases the snapshot database. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	b.lines = nil
	b.project = nil
	return nil
}

// Project returns a copy of the current project state.
func (b *Backend) Project() (*types.Project, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.project.Clone(), nil
}

// Entries decodes the whole log in order.
func (b *Backend) Entries() ([]entry.Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	entries := make([]entry.Entry, 0, len(b.lines))
	for i, line := range b.lines {
		e, err := entry.Decode(line)
		if err != nil {
			return nil, &project.ReplayError{Index: i, Err: err}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Execute accepts new entries as one command. Every entry is validated and
// applied to a copy of the current state first; if any fails nothing is
// written. Otherwise the entries are appended to the log, the project is
// rebuilt from the full log, and the snapshot is replaced, in that order.
func (b *Backend) Execute(entries ...entry.Entry) (*types.Project, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	trial := b.project.Clone()
	newLines := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if err := project.Apply(trial, e); err != nil {
			return nil, err
		}
		newLines = append(newLines, e.String())
	}
	if len(newLines) == 0 {
		return b.project.Clone(), nil
	}

	if err := appendLines(b.logPath, newLines); err != nil {
		return nil, err
	}
	b.lines = append(b.lines, newLines...)
	for _, e := range entries {
		b.logger.Debug().Str("entry", entry.FormatID(e.ID)).Str("verb", e.Kind.Verb()).Msg("entry appended")
	}

	if err := b.rebuildLocked(); err != nil {
		return nil, err
	}
	return b.project.Clone(), nil
}

// Reindex rebuilds the project from the full log and replaces the snapshot.
func (b *Backend) Reindex() (*types.Project, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	lines, err := readLines(b.logPath)
	if err != nil {
		return nil, err
	}
	b.lines = lines
	if err := b.rebuildLocked(); err != nil {
		return nil, err
	}
	return b.project.Clone(), nil
}

// ResetSnapshot deletes the snapshot database file and rebuilds it from the log.
func (b *Backend) ResetSnapshot() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}
	if err := b.db.Close(); err != nil {
		return err
	}
	b.db = nil

	dbPath := filepath.Join(b.config.DataDir, SnapshotFileName)
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing snapshot: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating snapshot schema: %w", err)
		}
	}
	b.db = db
	b.logger.Debug().Str("path", dbPath).Msg("snapshot removed")
	return b.rebuildLocked()
}

// Export writes the projected items to path as JSON lines.
func (b *Backend) Export(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}
	return exportItemsJSONL(path, b.project)
}

// loadLocked reads the log and either trusts the snapshot, when it was built
// from exactly this log, or rebuilds it.
func (b *Backend) loadLocked() error {
	lines, err := readLines(b.logPath)
	if err != nil {
		return err
	}
	b.lines = lines

	state, ok, err := loadSnapshotState(b.db)
	if err != nil {
		return err
	}
	if ok && state == b.currentState() {
		p, err := loadSnapshot(b.db)
		if err == nil {
			b.project = p
			b.logger.Debug().Int("entries", state.entryCount).Msg("snapshot is current")
			return nil
		}
		b.logger.Warn().Err(err).Msg("snapshot unreadable, reindexing")
	} else {
		b.logger.Debug().
			Int("snapshot_entries", state.entryCount).
			Int("log_entries", len(lines)).
			Msg("snapshot is stale, reindexing")
	}
	return b.rebuildLocked()
}

// rebuildLocked replays b.lines into a new project and replaces the
// snapshot. On failure the previous project is kept.
func (b *Backend) rebuildLocked() error {
	p, err := project.ReindexLines(b.lines)
	if err != nil {
		return fmt.Errorf("reindex %s: %w", b.logPath, err)
	}
	if err := saveSnapshot(b.db, p, b.currentState()); err != nil {
		return err
	}
	b.project = p
	b.logger.Debug().Int("entries", len(b.lines)).Int("items", len(p.Items)).Msg("reindexed")
	return nil
}

func (b *Backend) currentState() snapshotState {
	s := snapshotState{entryCount: len(b.lines)}
	if n := len(b.lines); n > 0 {
		s.lastEntryID = firstField(b.lines[n-1])
	}
	return s
}
