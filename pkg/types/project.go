package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Details holds project-level fields.
type Details struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Project is the snapshot produced by replaying the entry log. Items are kept
// in creation order; an item's position is a convenient short reference but
// its identity is always the ID.
type Project struct {
	Details Details `json:"details"`
	Items   []*Item `json:"items"`
}

// NewProject returns an empty project.
func NewProject() *Project {
	return &Project{Items: []*Item{}}
}

// Item returns the item with the given ID and its position.
// Returns ErrItemNotFound if no such item exists.
func (p *Project) Item(id uuid.UUID) (*Item, int, error) {
	for i, it := range p.Items {
		if it.ID == id {
			return it, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// Resolve finds an item by position ("3"), full ID, or unique ID prefix.
func (p *Project) Resolve(ref string) (*Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrItemNotFound)
	}
	if pos, err := strconv.Atoi(ref); err == nil && len(ref) < 8 {
		if pos < 0 || pos >= len(p.Items) {
			return nil, fmt.Errorf("%w: no item at position %d", ErrItemNotFound, pos)
		}
		return p.Items[pos], nil
	}
	if id, err := uuid.Parse(ref); err == nil {
		it, _, err := p.Item(id)
		return it, err
	}

	prefix := strings.ToLower(strings.ReplaceAll(ref, "-", ""))
	var found *Item
	for _, it := range p.Items {
		if strings.HasPrefix(ShortID(it.ID, 32), prefix) {
			if found != nil {
				return nil, fmt.Errorf("%w: reference %q is ambiguous", ErrItemNotFound, ref)
			}
			found = it
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrItemNotFound, ref)
	}
	return found, nil
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	c := &Project{
		Details: Details{
			Title:       clonePtr(p.Details.Title),
			Description: clonePtr(p.Details.Description),
		},
		Items: make([]*Item, len(p.Items)),
	}
	for i, it := range p.Items {
		c.Items[i] = it.Clone()
	}
	return c
}

// ShortID returns the first n hex digits of id without hyphens.
func ShortID(id uuid.UUID, n int) string {
	s := strings.ReplaceAll(id.String(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
