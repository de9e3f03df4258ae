package textfile

import (
	"testing"
	"time"

	"eventbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRecordRoundTrip(t *testing.T) {
	u := domain.NewUser("Alice", "alice@example.com", "555-0100")
	line := marshalUser(u)
	assert.Equal(t, "Alice;alice@example.com;555-0100", line)

	got, err := unmarshalUser(line)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestUnmarshalUserMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "Alice;alice@example.com"},
		{"too many fields", "Alice;alice@example.com;555;extra"},
		{"empty line", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := unmarshalUser(tt.line)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func noUsers(string) (*domain.User, bool) { return nil, false }

func TestMarshalEvent(t *testing.T) {
	start := time.Date(2024, 1, 15, 18, 30, 0, 0, time.Local)
	e := domain.NewEvent("Rock Night", "Arena", domain.CategoryShow, start, "doors; open early")
	alice := domain.NewUser("Alice", "alice@example.com", "111")
	bob := domain.NewUser("Bob", "bob@example.com", "222")
	e.AddParticipant(alice)
	e.AddParticipant(bob)

	line := marshalEvent(e)
	assert.Equal(t, "Rock Night;Arena;SHOW;2024-01-15T18:30;doors, open early;alice@example.com,bob@example.com", line)
}

func TestMarshalEventNoParticipants(t *testing.T) {
	start := time.Date(2024, 1, 15, 18, 30, 0, 0, time.Local)
	e := domain.NewEvent("Rock Night", "Arena", domain.CategoryShow, start, "")

	line := marshalEvent(e)
	assert.Equal(t, "Rock Night;Arena;SHOW;2024-01-15T18:30;;", line)

	// The trailing empty participant field must decode to zero participants.
	got, err := unmarshalEvent(line, noUsers)
	require.NoError(t, err)
	assert.Empty(t, got.Participants)
}

func TestUnmarshalEvent(t *testing.T) {
	alice := domain.NewUser("Alice", "Alice@Example.com", "111")
	resolve := func(email string) (*domain.User, bool) {
		if alice.EmailEquals(email) {
			return alice, true
		}
		return nil, false
	}

	got, err := unmarshalEvent("Rock Night;Arena;SHOW;2024-01-15T18:30;great show;alice@example.com,ghost@example.com", resolve)
	require.NoError(t, err)
	assert.Equal(t, "Rock Night", got.Name)
	assert.Equal(t, "Arena", got.Address)
	assert.Equal(t, domain.CategoryShow, got.Category)
	assert.Equal(t, time.Date(2024, 1, 15, 18, 30, 0, 0, time.Local), got.StartTime)
	assert.Equal(t, "great show", got.Description)
	assert.Equal(t, []*domain.User{alice}, got.Participants, "unknown emails are dropped")
}

func TestUnmarshalEventFiveFields(t *testing.T) {
	got, err := unmarshalEvent("Rock Night;Arena;SHOW;2024-01-15T18:30;great show", noUsers)
	require.NoError(t, err)
	assert.Empty(t, got.Participants)
}

func TestUnmarshalEventMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"four fields", "Rock Night;Arena;SHOW;2024-01-15T18:30"},
		{"unknown category", "Rock Night;Arena;KARAOKE;2024-01-15T18:30;desc"},
		{"lowercase category", "Rock Night;Arena;show;2024-01-15T18:30;desc"},
		{"bad timestamp", "Rock Night;Arena;SHOW;15/01/2024 18:30;desc"},
		{"empty line", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := unmarshalEvent(tt.line, noUsers)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestTimeFormats(t *testing.T) {
	minute := time.Date(2024, 1, 15, 18, 30, 0, 0, time.Local)
	assert.Equal(t, "2024-01-15T18:30", formatTime(minute))

	withSeconds := time.Date(2024, 1, 15, 18, 30, 45, 0, time.Local)
	assert.Equal(t, "2024-01-15T18:30:45", formatTime(withSeconds))

	got, err := parseTime("2024-01-15T18:30")
	require.NoError(t, err)
	assert.Equal(t, minute, got)

	got, err = parseTime("2024-01-15T18:30:45")
	require.NoError(t, err)
	assert.Equal(t, withSeconds, got)
}
