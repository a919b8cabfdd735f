package types

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Priority orders items by urgency. Lower values are more urgent.
type Priority int

// Priority levels. The wire form is the digit.
const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// DefaultPriority applies to items that never had a priority set.
const DefaultPriority = PriorityLow

// String encodes the priority as 1, 2 or 3.
func (p Priority) String() string {
	return fmt.Sprintf("%d", int(p))
}

// Label returns a human-readable name for the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	}
	return "unknown"
}

// ParsePriority accepts exactly "1", "2" or "3".
func ParsePriority(s string) (Priority, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return PriorityHigh, nil
	case "2":
		return PriorityMedium, nil
	case "3":
		return PriorityLow, nil
	}
	return 0, fmt.Errorf("%w: %q (want 1|2|3)", ErrMalformedPriority, s)
}

// ItemKind classifies an item.
type ItemKind string

// Item kinds.
const (
	KindTask        ItemKind = "task"
	KindNote        ItemKind = "note"
	KindUserStory   ItemKind = "user_story"
	KindBacklogItem ItemKind = "backlog_item"
	KindIssue       ItemKind = "issue"
	KindMilestone   ItemKind = "milestone"
)

// ItemKinds lists every kind in declaration order.
var ItemKinds = []ItemKind{KindTask, KindNote, KindUserStory, KindBacklogItem, KindIssue, KindMilestone}

func (k ItemKind) String() string { return string(k) }

// ParseItemKind decodes one of the fixed kind tokens.
func ParseItemKind(s string) (ItemKind, error) {
	s = strings.TrimSpace(s)
	for _, k := range ItemKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrMalformedKind, s)
}

// Status is the progress state of an item.
type Status int

// Item statuses. The zero value is StatusNew.
const (
	StatusNew Status = iota
	StatusInProgress
	StatusDone
)

// String encodes the status as new, progress or done.
func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusInProgress:
		return "progress"
	case StatusDone:
		return "done"
	}
	return "unknown"
}

// ParseStatus accepts new, progress, inprogress and done.
func ParseStatus(s string) (Status, error) {
	switch strings.TrimSpace(s) {
	case "new":
		return StatusNew, nil
	case "progress", "inprogress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrMalformedStatus, s)
}

// FormatTimestamp encodes t as RFC 3339, keeping fractional seconds and the offset.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseTimestamp decodes an RFC 3339 timestamp. A zero offset decodes to UTC
// and any other offset to an unnamed fixed zone, never to time.Local, so the
// result does not depend on the host's zone.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	_, offset := t.Zone()
	switch {
	case offset == 0:
		t = t.UTC()
	case t.Location() == time.Local:
		t = t.In(time.FixedZone("", offset))
	}
	return t, nil
}

const dateLayout = "2006-01-02"

// FormatDate encodes the calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate decodes YYYY-MM-DD, or an RFC 3339 timestamp whose calendar date
// is kept. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrMalformedTimestamp, s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// UserID identifies the author of an entry.
type UserID string

func (u UserID) String() string { return string(u) }

// ParseUserID accepts any non-empty text without whitespace, since the user
// is a single token on a log line.
func ParseUserID(s string) (UserID, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidUser)
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: %q contains whitespace", ErrInvalidUser, s)
	}
	return UserID(s), nil
}
