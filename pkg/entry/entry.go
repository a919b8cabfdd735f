// Package entry defines the log entries of the yo tracker and their line
// codec. One entry is one line of the append-only log:
//
//	<id> <timestamp> <user> <VERB> <target> <param; param; ...>
//
// where VERB is CREATE, SET or LOG, ids are 32 lowercase hex digits and
// timestamps are RFC 3339.
package entry

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/yo/pkg/types"
)

// Verbs as written to the log.
const (
	VerbCreate = "CREATE"
	VerbSet    = "SET"
	VerbLog    = "LOG"
)

// ProjectToken is the set target naming the project itself.
const ProjectToken = "project"

// Entry is one immutable record of the log.
type Entry struct {
	ID        uuid.UUID
	Timestamp time.Time
	User      types.UserID
	Kind      EntryKind
}

// EntryKind is the closed union of entry payloads: Create, Set and Log.
type EntryKind interface {
	Verb() string
	isEntryKind()
}

// Create introduces a new item.
type Create struct {
	ItemID uuid.UUID
}

// Set overwrites fields of the project or of one item.
type Set struct {
	Target Target
	Params []Parameter
}

// Log records work performed against an item.
type Log struct {
	ItemID uuid.UUID
	Params []Parameter
}

func (Create) Verb() string { return VerbCreate }
func (Set) Verb() string    { return VerbSet }
func (Log) Verb() string    { return VerbLog }

func (Create) isEntryKind() {}
func (Set) isEntryKind()    {}
func (Log) isEntryKind()    {}

// Target addresses a set entry: the project or a single item.
type Target struct {
	Project bool
	ItemID  uuid.UUID
}

// ProjectTarget addresses the project details.
func ProjectTarget() Target { return Target{Project: true} }

// ItemTarget addresses one item.
func ItemTarget(id uuid.UUID) Target { return Target{ItemID: id} }

func (t Target) String() string {
	if t.Project {
		return ProjectToken
	}
	return FormatID(t.ItemID)
}

// New builds an entry with a fresh time-ordered ID. The timestamp is stored
// in UTC without its monotonic reading so the entry compares equal to its
// decoded form.
func New(ts time.Time, user types.UserID, kind EntryKind) (Entry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Entry{}, fmt.Errorf("generating entry id: %w", err)
	}
	return Entry{ID: id, Timestamp: ts.UTC().Round(0), User: user, Kind: kind}, nil
}

// FormatID encodes a 128-bit id as 32 lowercase hex digits.
func FormatID(id uuid.UUID) string {
	return hex.EncodeToString(id[:])
}

// ParseID decodes an id in hex form (hyphens allowed).
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// String encodes the entry as one log line. The entry must be valid; see
// Validate.
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(FormatID(e.ID))
	b.WriteByte(' ')
	b.WriteString(types.FormatTimestamp(e.Timestamp))
	b.WriteByte(' ')
	b.WriteString(e.User.String())
	b.WriteByte(' ')

	var target string
	var params []Parameter
	switch k := e.Kind.(type) {
	case Create:
		target = FormatID(k.ItemID)
	case Set:
		target, params = k.Target.String(), k.Params
	case Log:
		target, params = FormatID(k.ItemID), k.Params
	}
	b.WriteString(e.Kind.Verb())
	b.WriteByte(' ')
	b.WriteString(target)
	if len(params) > 0 {
		b.WriteByte(' ')
		b.WriteString(FormatParams(params))
	}
	return b.String()
}

// Encode is String, named for symmetry with Decode.
func Encode(e Entry) string { return e.String() }

// Validate reports whether the entry can be persisted and decoded back to an
// equal value.
func (e Entry) Validate() error {
	if _, err := types.ParseUserID(string(e.User)); err != nil {
		return err
	}
	var params []Parameter
	switch k := e.Kind.(type) {
	case Create:
	case Set:
		params = k.Params
	case Log:
		params = k.Params
		for _, p := range params {
			if !logKeys[p.Key()] {
				return &ParamError{Key: p.Key(), Err: ErrParameterNotAllowed}
			}
		}
	case nil:
		return fmt.Errorf("%w: entry has no kind", ErrInvalidVerb)
	}
	for _, p := range params {
		if err := validateParam(p); err != nil {
			return err
		}
	}
	return nil
}

// Decode parses one log line. Errors are reported in field order: a line
// with too few tokens fails with ErrMissingField before its id is looked at.
func Decode(line string) (Entry, error) {
	rest := strings.TrimSpace(line)
	var fields [5]string
	for i := range fields {
		fields[i], rest = cutField(rest)
		if fields[i] == "" {
			if i < 4 {
				return Entry{}, fmt.Errorf("%w: want id, timestamp, user and verb, got %d fields", ErrMissingField, i)
			}
			// Check the leading fields first so their errors win.
			break
		}
	}
	idText, tsText, userText, verbText, targetText := fields[0], fields[1], fields[2], fields[3], fields[4]

	id, err := ParseID(idText)
	if err != nil {
		return Entry{}, err
	}
	ts, err := types.ParseTimestamp(tsText)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, tsText)
	}
	verb := strings.ToUpper(verbText)
	if verb != VerbCreate && verb != VerbSet && verb != VerbLog {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidVerb, verbText)
	}
	if targetText == "" {
		return Entry{}, fmt.Errorf("%w: %s entry has no target", ErrMissingField, verb)
	}

	e := Entry{ID: id, Timestamp: ts, User: types.UserID(userText)}
	switch verb {
	case VerbCreate:
		itemID, err := ParseID(targetText)
		if err != nil {
			return Entry{}, err
		}
		// Trailing text after a create target carries no meaning and is ignored.
		e.Kind = Create{ItemID: itemID}
	case VerbSet:
		target := ProjectTarget()
		if !strings.EqualFold(targetText, ProjectToken) {
			itemID, err := ParseID(targetText)
			if err != nil {
				return Entry{}, err
			}
			target = ItemTarget(itemID)
		}
		params, err := ParseParams(rest)
		if err != nil {
			return Entry{}, err
		}
		e.Kind = Set{Target: target, Params: params}
	case VerbLog:
		itemID, err := ParseID(targetText)
		if err != nil {
			return Entry{}, err
		}
		params, err := parseLogParams(rest)
		if err != nil {
			return Entry{}, err
		}
		e.Kind = Log{ItemID: itemID, Params: params}
	}
	return e, nil
}
