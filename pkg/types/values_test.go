package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"1", PriorityHigh},
		{"2", PriorityMedium},
		{"3", PriorityLow},
	}
	for _, tt := range tests {
		got, err := ParsePriority(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.in, got.String())
	}

	for _, bad := range []string{"", "0", "4", "high", "01"} {
		_, err := ParsePriority(bad)
		assert.ErrorIs(t, err, ErrMalformedPriority, "input %q", bad)
	}
}

func TestPriority_Label(t *testing.T) {
	assert.Equal(t, "high", PriorityHigh.Label())
	assert.Equal(t, "low", DefaultPriority.Label())
	assert.Equal(t, "unknown", Priority(9).Label())
}

func TestParseItemKind(t *testing.T) {
	for _, k := range ItemKinds {
		got, err := ParseItemKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	for _, bad := range []string{"", "Task", "user-story", "epic"} {
		_, err := ParseItemKind(bad)
		assert.ErrorIs(t, err, ErrMalformedKind, "input %q", bad)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"new", StatusNew},
		{"progress", StatusInProgress},
		{"inprogress", StatusInProgress},
		{"done", StatusDone},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	assert.Equal(t, "progress", StatusInProgress.String())

	_, err := ParseStatus("closed")
	assert.ErrorIs(t, err, ErrMalformedStatus)
}

func TestTimestamp_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 6, 123456789, time.UTC)
	got, err := ParseTimestamp(FormatTimestamp(ts))
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))

	_, err = ParseTimestamp("yesterday")
	assert.ErrorIs(t, err, ErrMalformedTimestamp)
}

// withLocal replaces time.Local for the duration of the test.
func withLocal(t *testing.T, loc *time.Location) {
	t.Helper()
	saved := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = saved })
}

func TestParseTimestamp_IgnoresHostZone(t *testing.T) {
	tests := []struct {
		in         string
		wantOffset int
		canonical  string
	}{
		{"2024-03-01T09:00:00Z", 0, "2024-03-01T09:00:00Z"},
		{"2024-03-01T09:00:00+00:00", 0, "2024-03-01T09:00:00Z"},
		{"2024-03-01T09:00:00+02:00", 2 * 3600, "2024-03-01T09:00:00+02:00"},
		{"2024-03-01T09:00:00.25-05:30", -(5*3600 + 1800), "2024-03-01T09:00:00.25-05:30"},
	}
	for _, host := range []int{0, 2 * 3600, -(5*3600 + 1800)} {
		withLocal(t, time.FixedZone("host", host))
		for _, tt := range tests {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err, tt.in)
			assert.NotSame(t, time.Local, got.Location(), "%s on host offset %d", tt.in, host)
			_, offset := got.Zone()
			assert.Equal(t, tt.wantOffset, offset, tt.in)
			if tt.wantOffset == 0 {
				assert.Same(t, time.UTC, got.Location(), tt.in)
			}

			line := FormatTimestamp(got)
			assert.Equal(t, tt.canonical, line)
			again, err := ParseTimestamp(line)
			require.NoError(t, err)
			assert.Equal(t, got, again, "%s on host offset %d", tt.in, host)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	got, err := ParseDate("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseDate("2024-05-01T17:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "2024-05-01", FormatDate(got))

	_, err = ParseDate("05/01/2024")
	assert.ErrorIs(t, err, ErrMalformedTimestamp)
}

func TestParseUserID(t *testing.T) {
	u, err := ParseUserID("alice")
	require.NoError(t, err)
	assert.Equal(t, UserID("alice"), u)

	for _, bad := range []string{"", "alice smith", "bob\t", "\n"} {
		_, err := ParseUserID(bad)
		assert.ErrorIs(t, err, ErrInvalidUser, "input %q", bad)
	}
}
