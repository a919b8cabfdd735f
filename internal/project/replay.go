package project

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/yo/pkg/entry"
	"github.com/mesh-intelligence/yo/pkg/types"
)

// ReplayError reports the first entry that could not be decoded or applied
// during a reindex. Index is the entry's position in the replayed sequence.
type ReplayError struct {
	Index   int
	EntryID uuid.UUID // uuid.Nil when the line did not decode.
	Err     error
}

func (e *ReplayError) Error() string {
	if e.EntryID == uuid.Nil {
		return fmt.Sprintf("replay entry %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("replay entry %d (%s): %v", e.Index, entry.FormatID(e.EntryID), e.Err)
}

func (e *ReplayError) Unwrap() error { return e.Err }

// Reindex builds a new project by folding entries in the order given, which
// must be the log order. The result depends only on the entries. On the first
// failure no project is returned.
func Reindex(entries []entry.Entry) (*types.Project, error) {
	p := types.NewProject()
	for i, e := range entries {
		if err := Apply(p, e); err != nil {
			return nil, &ReplayError{Index: i, EntryID: e.ID, Err: err}
		}
	}
	return p, nil
}

// ReindexLines decodes and folds raw log lines. A line that fails to decode
// aborts the replay the same way an apply failure does.
func ReindexLines(lines []string) (*types.Project, error) {
	p := types.NewProject()
	for i, line := range lines {
		e, err := entry.Decode(line)
		if err != nil {
			return nil, &ReplayError{Index: i, Err: err}
		}
		if err := Apply(p, e); err != nil {
			return nil, &ReplayError{Index: i, EntryID: e.ID, Err: err}
		}
	}
	return p, nil
}
