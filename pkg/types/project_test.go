package types

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProject(t *testing.T, ids ...string) *Project {
	t.Helper()
	p := NewProject()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range ids {
		p.Items = append(p.Items, NewItem(uuid.MustParse(s), created, "alice"))
	}
	return p
}

func TestNewItem_Defaults(t *testing.T) {
	it := NewItem(uuid.New(), time.Now().UTC(), "alice")
	assert.Equal(t, StatusNew, it.Status)
	assert.Equal(t, PriorityLow, it.Priority)
	assert.Nil(t, it.Size)
	assert.Nil(t, it.Remaining)
	assert.Zero(t, it.HoursSpent)
	assert.NotNil(t, it.Log)
	assert.Empty(t, it.Log)
}

func TestProject_Resolve(t *testing.T) {
	p := testProject(t,
		"0190a1b2-0000-7000-8000-000000000001",
		"0190a1b2-0000-7000-8000-000000000002",
		"0290a1b2-0000-7000-8000-000000000003",
	)

	tests := []struct {
		name string
		ref  string
		want int
	}{
		{"position", "1", 1},
		{"full id", "0190a1b2-0000-7000-8000-000000000002", 1},
		{"hex id", "0190a1b2000070008000000000000001", 0},
		{"unique prefix", "0290a", 2},
		{"prefix is case insensitive", "0290A1B2", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := p.Resolve(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, p.Items[tt.want].ID, it.ID)
		})
	}

	for _, bad := range []string{"", "3", "-1", "0190a1b2", "ffff"} {
		_, err := p.Resolve(bad)
		assert.ErrorIs(t, err, ErrItemNotFound, "ref %q", bad)
	}
}

func TestProject_CloneIsDeep(t *testing.T) {
	p := testProject(t, "0190a1b2-0000-7000-8000-000000000001")
	title := "original"
	q := Hours(3)
	p.Details.Title = &title
	p.Items[0].Title = &title
	p.Items[0].Remaining = &q
	spent := StoryPoints(2)
	p.Items[0].Log = append(p.Items[0].Log, LogRecord{Spent: &spent, Remaining: &q})

	c := p.Clone()
	require.Equal(t, p, c)

	*c.Details.Title = "changed"
	*c.Items[0].Remaining = Hours(9)
	*c.Items[0].Log[0].Remaining = Hours(9)
	*c.Items[0].Log[0].Spent = Hours(5)
	c.Items[0].Log[0].Hours = 5

	assert.Equal(t, "original", *p.Details.Title)
	assert.Equal(t, Hours(3), *p.Items[0].Remaining)
	assert.Equal(t, Hours(3), *p.Items[0].Log[0].Remaining)
	assert.Equal(t, StoryPoints(2), *p.Items[0].Log[0].Spent)
	assert.Zero(t, p.Items[0].Log[0].Hours)
}

func TestShortID(t *testing.T) {
	id := uuid.MustParse("0190a1b2-0000-7000-8000-000000000001")
	assert.Equal(t, "0190a1b2", ShortID(id, 8))
	assert.Equal(t, strings.ReplaceAll(id.String(), "-", ""), ShortID(id, 100))
}
