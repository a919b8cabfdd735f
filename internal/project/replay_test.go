package project

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mesh-intelligence/yo/pkg/entry"
	"github.com/mesh-intelligence/yo/pkg/types"
)

func TestReindex_FixBugScenario(t *testing.T) {
	var m mk
	entries := []entry.Entry{
		m.entry("alice", entry.Create{ItemID: itemA}),
		m.entry("alice", entry.Set{Target: entry.ItemTarget(itemA), Params: []entry.Parameter{entry.Title{Value: "Fix bug"}}}),
		m.entry("alice", entry.Log{ItemID: itemA, Params: []entry.Parameter{entry.Spent{Value: types.Hours(2)}}}),
		m.entry("alice", entry.Log{ItemID: itemA, Params: []entry.Parameter{
			entry.Spent{Value: types.Hours(3)},
			entry.Remaining{Value: types.StoryPoints(1)},
		}}),
	}

	p, err := Reindex(entries)
	require.NoError(t, err)
	require.Len(t, p.Items, 1)

	it := p.Items[0]
	assert.Equal(t, itemA, it.ID)
	assert.Equal(t, "Fix bug", *it.Title)
	assert.Equal(t, 5, it.HoursSpent)
	assert.Equal(t, types.StoryPoints(1), *it.Remaining)
	assert.Len(t, it.Log, 2)
}

func TestReindex_ProjectTitleScenario(t *testing.T) {
	var m mk
	base := []entry.Entry{
		m.entry("alice", entry.Create{ItemID: itemA}),
		m.entry("alice", entry.Set{Target: entry.ItemTarget(itemA), Params: []entry.Parameter{entry.Title{Value: "a"}}}),
	}
	before, err := Reindex(base)
	require.NoError(t, err)

	after, err := Reindex(append(base, m.entry("alice", entry.Set{
		Target: entry.ProjectTarget(),
		Params: []entry.Parameter{entry.Title{Value: "Demo"}},
	})))
	require.NoError(t, err)

	assert.Nil(t, before.Details.Title)
	assert.Equal(t, "Demo", *after.Details.Title)
	assert.Equal(t, before.Items, after.Items)
}

func TestReindex_MissingCreateReportsPosition(t *testing.T) {
	var m mk
	entries := []entry.Entry{
		m.entry("alice", entry.Create{ItemID: itemA}),
		m.entry("alice", entry.Set{Target: entry.ItemTarget(itemA), Params: []entry.Parameter{entry.Title{Value: "a"}}}),
		m.entry("alice", entry.Set{Target: entry.ItemTarget(itemB), Params: []entry.Parameter{entry.Title{Value: "b"}}}),
		m.entry("alice", entry.Create{ItemID: itemB}),
	}

	p, err := Reindex(entries)
	assert.Nil(t, p)
	require.ErrorIs(t, err, types.ErrItemNotFound)

	var re *ReplayError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 2, re.Index)
	assert.Equal(t, entries[2].ID, re.EntryID)
}

func TestReindex_Empty(t *testing.T) {
	p, err := Reindex(nil)
	require.NoError(t, err)
	assert.Equal(t, types.NewProject(), p)
}

func TestReindexLines(t *testing.T) {
	var m mk
	entries := []entry.Entry{
		m.entry("alice", entry.Create{ItemID: itemA}),
		m.entry("alice", entry.Set{Target: entry.ItemTarget(itemA), Params: []entry.Parameter{
			entry.Title{Value: "Fix bug"},
			entry.Size{Value: types.Hours(4)},
		}}),
		m.entry("bob", entry.Log{ItemID: itemA, Params: []entry.Parameter{entry.Spent{Value: types.Hours(2)}}}),
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}

	fromLines, err := ReindexLines(lines)
	require.NoError(t, err)
	fromEntries, err := Reindex(entries)
	require.NoError(t, err)
	assert.Equal(t, fromEntries, fromLines)
}

func TestReindexLines_DecodeFailureAborts(t *testing.T) {
	var m mk
	lines := []string{
		m.entry("alice", entry.Create{ItemID: itemA}).String(),
		"garbage",
		m.entry("alice", entry.Create{ItemID: itemB}).String(),
	}

	p, err := ReindexLines(lines)
	assert.Nil(t, p)
	require.ErrorIs(t, err, entry.ErrMissingField)

	var re *ReplayError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 1, re.Index)
	assert.Equal(t, uuid.Nil, re.EntryID)
	assert.Contains(t, re.Error(), "replay entry 1")
}

// genLog draws a valid log over a small pool of items so sets and logs hit
// existing items often.
func genLog(t *rapid.T) []entry.Entry {
	pool := []uuid.UUID{itemA, itemB, uuid.MustParse("0190a1b2-c3d4-7000-8000-0000000000cc")}
	created := map[uuid.UUID]bool{}
	var m mk
	n := rapid.IntRange(0, 30).Draw(t, "n")
	var entries []entry.Entry
	for i := 0; i < n; i++ {
		id := rapid.SampledFrom(pool).Draw(t, "item")
		user := types.UserID(rapid.SampledFrom([]string{"alice", "bob"}).Draw(t, "user"))
		if !created[id] {
			created[id] = true
			entries = append(entries, m.entry(user, entry.Create{ItemID: id}))
			continue
		}
		switch rapid.IntRange(0, 2).Draw(t, "verb") {
		case 0:
			entries = append(entries, m.entry(user, entry.Set{Target: entry.ItemTarget(id), Params: []entry.Parameter{
				entry.Title{Value: rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "title")},
				entry.Remaining{Value: types.Hours(rapid.Int32Range(-5, 50).Draw(t, "remaining"))},
			}}))
		case 1:
			entries = append(entries, m.entry(user, entry.Log{ItemID: id, Params: []entry.Parameter{
				entry.Spent{Value: types.Quantity{
					Unit:  rapid.SampledFrom([]types.Unit{types.UnitHour, types.UnitStoryPoint}).Draw(t, "unit"),
					Value: rapid.Int32Range(-3, 8).Draw(t, "spent"),
				}},
			}}))
		default:
			entries = append(entries, m.entry(user, entry.Set{Target: entry.ProjectTarget(), Params: []entry.Parameter{
				entry.Title{Value: rapid.StringMatching(`[A-Z][a-z]{0,8}`).Draw(t, "project")},
			}}))
		}
	}
	return entries
}

func TestReindex_PropertyDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		entries := genLog(t)
		first, err := Reindex(entries)
		if err != nil {
			t.Fatalf("Reindex: %v", err)
		}
		second, err := Reindex(entries)
		if err != nil {
			t.Fatalf("Reindex: %v", err)
		}
		if !assert.ObjectsAreEqual(first, second) {
			t.Fatalf("replaying the same log twice gave different projects")
		}
	})
}

func TestReindex_PropertyIncrementalMatchesFull(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		entries := genLog(t)
		p := types.NewProject()
		for i, e := range entries {
			if err := Apply(p, e); err != nil {
				t.Fatalf("Apply entry %d: %v", i, err)
			}
		}
		full, err := Reindex(entries)
		if err != nil {
			t.Fatalf("Reindex: %v", err)
		}
		if !assert.ObjectsAreEqual(full, p) {
			t.Fatalf("applying entries one by one differs from a full reindex")
		}
	})
}

func TestReindex_PropertyHoursSpentIsSumOfLog(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p, err := Reindex(genLog(t))
		if err != nil {
			t.Fatalf("Reindex: %v", err)
		}
		for _, it := range p.Items {
			sum := 0
			for _, rec := range it.Log {
				sum += rec.Hours
			}
			if sum != it.HoursSpent {
				t.Fatalf("item %s: hours spent %d, log sums to %d", it.ID, it.HoursSpent, sum)
			}
		}
	})
}
