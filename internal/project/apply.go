// Package project folds log entries into project state. Apply handles one
// entry; Reindex replays a whole log from an empty project.
package project

import (
	"fmt"

	"github.com/mesh-intelligence/yo/pkg/entry"
	"github.com/mesh-intelligence/yo/pkg/types"
)

// Apply folds one entry into p. It either applies the whole entry or, on
// error, leaves p untouched. Field updates are last-write-wins by log
// position; timestamps are only recorded, never compared.
func Apply(p *types.Project, e entry.Entry) error {
	switch k := e.Kind.(type) {
	case entry.Create:
		if _, _, err := p.Item(k.ItemID); err == nil {
			return fmt.Errorf("%w: %s", types.ErrDuplicateItem, k.ItemID)
		}
		p.Items = append(p.Items, types.NewItem(k.ItemID, e.Timestamp, e.User))
		return nil

	case entry.Set:
		if k.Target.Project {
			setDetails(&p.Details, k.Params)
			return nil
		}
		it, _, err := p.Item(k.Target.ItemID)
		if err != nil {
			return err
		}
		setItem(it, k.Params)
		return nil

	case entry.Log:
		it, _, err := p.Item(k.ItemID)
		if err != nil {
			return err
		}
		logWork(it, e, k.Params)
		return nil
	}
	return fmt.Errorf("%w: %T", entry.ErrInvalidVerb, e.Kind)
}

// setDetails applies title and description; other parameters have no
// project-level meaning and are ignored.
func setDetails(d *types.Details, params []entry.Parameter) {
	for _, param := range params {
		switch v := param.(type) {
		case entry.Title:
			d.Title = ptr(v.Value)
		case entry.Description:
			d.Description = ptr(v.Value)
		}
	}
}

// setItem overwrites fields wholesale in parameter order, so a repeated key
// keeps its last value. Spent and message belong to log entries and are
// ignored here.
func setItem(it *types.Item, params []entry.Parameter) {
	for _, param := range params {
		switch v := param.(type) {
		case entry.Title:
			it.Title = ptr(v.Value)
		case entry.Description:
			it.Description = ptr(v.Value)
		case entry.Size:
			it.Size = ptr(v.Value)
		case entry.Remaining:
			it.Remaining = ptr(v.Value)
		case entry.Priority:
			it.Priority = v.Value
		case entry.Owner:
			it.Owner = ptr(v.Value)
		case entry.Duedate:
			it.Duedate = ptr(v.Value)
		case entry.Kind:
			it.Kind = ptr(v.Value)
		case entry.Status:
			it.Status = v.Value
		case entry.Spent, entry.Message:
		}
	}
}

// logWork appends one record and accumulates spent hours. Negative spent
// values are corrections and are summed like any other. Spent story points
// are kept on the record but do not count towards the hour total.
func logWork(it *types.Item, e entry.Entry, params []entry.Parameter) {
	rec := types.LogRecord{
		EntryID:   e.ID,
		CreatedAt: e.Timestamp,
		CreatedBy: e.User,
	}
	remaining := it.Remaining
	for _, param := range params {
		switch v := param.(type) {
		case entry.Spent:
			rec.Spent = ptr(v.Value)
			rec.Hours = 0
			if v.Value.IsHours() {
				rec.Hours = int(v.Value.Value)
			}
		case entry.Remaining:
			remaining = ptr(v.Value)
		case entry.Message:
			rec.Message = v.Value
		}
	}
	rec.Remaining = clone(remaining)
	it.Remaining = remaining
	it.HoursSpent += rec.Hours
	it.Log = append(it.Log, rec)
}

func ptr[T any](v T) *T { return &v }

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return ptr(*p)
}
