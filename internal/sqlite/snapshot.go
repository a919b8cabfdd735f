// This file implements snapshot persistence: dehydrating a Project into the
// snapshot tables and hydrating it back.
package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/yo/pkg/types"
)

// snapshotState identifies the log prefix a snapshot was built from.
type snapshotState struct {
	entryCount  int
	lastEntryID string
}

// saveSnapshot replaces the whole snapshot with p in one transaction.
func saveSnapshot(db *sql.DB, p *types.Project, state snapshotState) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range snapshotTables {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO details (id, title, description) VALUES (1, ?, ?)",
		nullString(p.Details.Title), nullString(p.Details.Description),
	); err != nil {
		return fmt.Errorf("writing details: %w", err)
	}

	itemStmt, err := tx.Prepare(`INSERT INTO items (position, item_id, kind, size, remaining, hours_spent,
        title, description, priority, owner, duedate, status, created_at, created_by)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing item insert: %w", err)
	}
	defer itemStmt.Close()

	logStmt, err := tx.Prepare(`INSERT INTO item_log (item_id, seq, entry_id, spent, hours, remaining, message, created_at, created_by)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing log insert: %w", err)
	}
	defer logStmt.Close()

	for pos, it := range p.Items {
		var kind, owner, duedate *string
		if it.Kind != nil {
			kind = ptr(it.Kind.String())
		}
		if it.Owner != nil {
			owner = ptr(it.Owner.String())
		}
		if it.Duedate != nil {
			duedate = ptr(types.FormatDate(*it.Duedate))
		}
		if _, err := itemStmt.Exec(
			pos, it.ID.String(), nullString(kind), nullQuantity(it.Size), nullQuantity(it.Remaining),
			it.HoursSpent, nullString(it.Title), nullString(it.Description), int(it.Priority),
			nullString(owner), nullString(duedate), it.Status.String(),
			types.FormatTimestamp(it.CreatedAt), it.CreatedBy.String(),
		); err != nil {
			return fmt.Errorf("writing item %s: %w", it.ID, err)
		}
		for seq, rec := range it.Log {
			if _, err := logStmt.Exec(
				it.ID.String(), seq, rec.EntryID.String(), nullQuantity(rec.Spent), rec.Hours,
				nullQuantity(rec.Remaining),
				rec.Message, types.FormatTimestamp(rec.CreatedAt), rec.CreatedBy.String(),
			); err != nil {
				return fmt.Errorf("writing log record %d of item %s: %w", seq, it.ID, err)
			}
		}
	}

	for key, value := range map[string]string{
		metaEntryCount:  strconv.Itoa(state.entryCount),
		metaLastEntryID: state.lastEntryID,
	} {
		if _, err := tx.Exec("INSERT INTO meta (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("writing meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// loadSnapshotState reads the meta rows. ok is false when the snapshot was
// never written.
func loadSnapshotState(db *sql.DB) (state snapshotState, ok bool, err error) {
	rows, err := db.Query("SELECT key, value FROM meta")
	if err != nil {
		return state, false, fmt.Errorf("reading meta: %w", err)
	}
	defer rows.Close()

	seen := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return state, false, fmt.Errorf("scanning meta: %w", err)
		}
		switch key {
		case metaEntryCount:
			n, err := strconv.Atoi(value)
			if err != nil {
				return state, false, fmt.Errorf("parsing %s: %w", metaEntryCount, err)
			}
			state.entryCount = n
			seen++
		case metaLastEntryID:
			state.lastEntryID = value
			seen++
		}
	}
	if err := rows.Err(); err != nil {
		return state, false, err
	}
	return state, seen == 2, nil
}

// loadSnapshot hydrates the project stored in the snapshot tables.
func loadSnapshot(db *sql.DB) (*types.Project, error) {
	p := types.NewProject()

	var title, description sql.NullString
	err := db.QueryRow("SELECT title, description FROM details WHERE id = 1").Scan(&title, &description)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("reading details: %w", err)
	}
	p.Details.Title = fromNullString(title)
	p.Details.Description = fromNullString(description)

	rows, err := db.Query(`SELECT item_id, kind, size, remaining, hours_spent, title, description,
        priority, owner, duedate, status, created_at, created_by FROM items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*types.Item)
	for rows.Next() {
		it, err := hydrateItem(rows)
		if err != nil {
			return nil, err
		}
		p.Items = append(p.Items, it)
		byID[it.ID.String()] = it
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logRows, err := db.Query(`SELECT item_id, entry_id, spent, hours, remaining, message, created_at, created_by
        FROM item_log ORDER BY item_id, seq`)
	if err != nil {
		return nil, fmt.Errorf("reading item log: %w", err)
	}
	defer logRows.Close()

	for logRows.Next() {
		var itemID, entryID, message, createdAt, createdBy string
		var hours int
		var spent, remaining sql.NullString
		if err := logRows.Scan(&itemID, &entryID, &spent, &hours, &remaining, &message, &createdAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scanning log record: %w", err)
		}
		it, ok := byID[itemID]
		if !ok {
			return nil, fmt.Errorf("log record for unknown item %s", itemID)
		}
		rec := types.LogRecord{Hours: hours, Message: message, CreatedBy: types.UserID(createdBy)}
		if rec.EntryID, err = uuid.Parse(entryID); err != nil {
			return nil, fmt.Errorf("parsing log entry id: %w", err)
		}
		if rec.Spent, err = parseNullQuantity(spent); err != nil {
			return nil, err
		}
		if rec.Remaining, err = parseNullQuantity(remaining); err != nil {
			return nil, err
		}
		if rec.CreatedAt, err = types.ParseTimestamp(createdAt); err != nil {
			return nil, err
		}
		it.Log = append(it.Log, rec)
	}
	return p, logRows.Err()
}

func hydrateItem(rows *sql.Rows) (*types.Item, error) {
	var (
		id, status, createdAt, createdBy                          string
		kind, size, remaining, title, description, owner, duedate sql.NullString
		hoursSpent, priority                                      int
	)
	if err := rows.Scan(&id, &kind, &size, &remaining, &hoursSpent, &title, &description,
		&priority, &owner, &duedate, &status, &createdAt, &createdBy); err != nil {
		return nil, fmt.Errorf("scanning item: %w", err)
	}

	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing item id %q: %w", id, err)
	}
	ts, err := types.ParseTimestamp(createdAt)
	if err != nil {
		return nil, err
	}
	it := types.NewItem(itemID, ts, types.UserID(createdBy))
	it.HoursSpent = hoursSpent
	it.Priority = types.Priority(priority)
	it.Title = fromNullString(title)
	it.Description = fromNullString(description)

	if it.Status, err = types.ParseStatus(status); err != nil {
		return nil, err
	}
	if kind.Valid {
		k, err := types.ParseItemKind(kind.String)
		if err != nil {
			return nil, err
		}
		it.Kind = &k
	}
	if owner.Valid {
		u := types.UserID(owner.String)
		it.Owner = &u
	}
	if duedate.Valid {
		d, err := types.ParseDate(duedate.String)
		if err != nil {
			return nil, err
		}
		it.Duedate = &d
	}
	if it.Size, err = parseNullQuantity(size); err != nil {
		return nil, err
	}
	if it.Remaining, err = parseNullQuantity(remaining); err != nil {
		return nil, err
	}
	return it, nil
}

func ptr[T any](v T) *T { return &v }

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return ptr(ns.String)
}

func nullQuantity(q *types.Quantity) sql.NullString {
	if q == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: q.String(), Valid: true}
}

func parseNullQuantity(ns sql.NullString) (*types.Quantity, error) {
	if !ns.Valid {
		return nil, nil
	}
	q, err := types.ParseQuantity(ns.String)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
