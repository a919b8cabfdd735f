package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/yo/pkg/entry"
	"github.com/mesh-intelligence/yo/pkg/sqlite"
	"github.com/mesh-intelligence/yo/pkg/types"
)

// userFacing lists errors caused by what the user typed rather than by the
// environment.
var userFacing = []error{
	entry.ErrMissingField,
	entry.ErrInvalidID,
	entry.ErrInvalidTimestamp,
	entry.ErrInvalidVerb,
	entry.ErrUnknownParameterKey,
	entry.ErrParameterNotAllowed,
	entry.ErrInvalidText,
	types.ErrMalformedQuantity,
	types.ErrMalformedPriority,
	types.ErrMalformedKind,
	types.ErrMalformedStatus,
	types.ErrMalformedTimestamp,
	types.ErrInvalidUser,
	types.ErrItemNotFound,
	types.ErrDuplicateItem,
}

// classify wraps err with the exit code it should produce.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return err
	}
	for _, target := range userFacing {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}

// parseParamArgs joins command arguments back into one parameter list, so
// `yo set 0 title Fix the build; priority 1` needs no quoting.
func parseParamArgs(args []string) ([]entry.Parameter, error) {
	params, err := entry.ParseParams(strings.Join(args, " "))
	if err != nil {
		return nil, userError(err)
	}
	return params, nil
}

// newEntry stamps kind with the current time and user.
func newEntry(kind entry.EntryKind) (entry.Entry, error) {
	u, err := currentUser()
	if err != nil {
		return entry.Entry{}, err
	}
	e, err := entry.New(now(), u, kind)
	if err != nil {
		return entry.Entry{}, sysError(err)
	}
	return e, nil
}

// resolveItem looks up ref in the backend's current project.
func resolveItem(backend sqlite.Store, ref string) (*types.Item, error) {
	p, err := backend.Project()
	if err != nil {
		return nil, sysError(err)
	}
	it, err := p.Resolve(ref)
	if err != nil {
		return nil, userError(err)
	}
	return it, nil
}

// position returns the index of id in p, or -1.
func position(p *types.Project, it *types.Item) int {
	_, pos, err := p.Item(it.ID)
	if err != nil {
		return -1
	}
	return pos
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return sysError(fmt.Errorf("encode json: %w", err))
	}
	return nil
}

func quantityOr(q *types.Quantity, fallback string) string {
	if q == nil {
		return fallback
	}
	return q.String()
}
