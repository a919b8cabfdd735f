package types

import (
	"time"

	"github.com/google/uuid"
)

// Item is the projected state of one tracked piece of work. Items exist only
// because a create entry for their ID was replayed; every field is derived
// from the log.
type Item struct {
	ID          uuid.UUID   `json:"id"`
	Kind        *ItemKind   `json:"kind,omitempty"`
	Size        *Quantity   `json:"size,omitempty"`
	Remaining   *Quantity   `json:"remaining,omitempty"`
	HoursSpent  int         `json:"hours_spent"` // Sum of the hours in the log; story points add nothing.
	Log         []LogRecord `json:"log"`
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Priority    Priority    `json:"priority"`
	Owner       *UserID     `json:"owner,omitempty"`
	Duedate     *time.Time  `json:"duedate,omitempty"` // Calendar date at midnight UTC.
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	CreatedBy   UserID      `json:"created_by"`
}

// NewItem returns an item with default state stamped with its creation metadata.
func NewItem(id uuid.UUID, createdAt time.Time, createdBy UserID) *Item {
	return &Item{
		ID:        id,
		Log:       []LogRecord{},
		Priority:  DefaultPriority,
		Status:    StatusNew,
		CreatedAt: createdAt,
		CreatedBy: createdBy,
	}
}

// LogRecord is one unit of work logged against an item. Records are
// append-only and never change after they are created.
type LogRecord struct {
	EntryID   uuid.UUID `json:"entry_id"`
	Spent     *Quantity `json:"spent,omitempty"` // As logged, in either unit.
	Hours     int       `json:"hours"`           // Spent when it is in hours, else 0.
	Remaining *Quantity `json:"remaining,omitempty"` // Remaining value at the time of logging.
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy UserID    `json:"created_by"`
}

// TitleOr returns the title, or fallback when it is unset.
func (it *Item) TitleOr(fallback string) string {
	if it.Title == nil {
		return fallback
	}
	return *it.Title
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() *Item {
	c := *it
	c.Kind = clonePtr(it.Kind)
	c.Size = clonePtr(it.Size)
	c.Remaining = clonePtr(it.Remaining)
	c.Title = clonePtr(it.Title)
	c.Description = clonePtr(it.Description)
	c.Owner = clonePtr(it.Owner)
	c.Duedate = clonePtr(it.Duedate)
	c.Log = make([]LogRecord, len(it.Log))
	for i, rec := range it.Log {
		rec.Spent = clonePtr(rec.Spent)
		rec.Remaining = clonePtr(rec.Remaining)
		c.Log[i] = rec
	}
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
