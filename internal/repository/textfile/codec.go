package textfile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"eventbook/internal/domain"
)

// ErrMalformedRecord marks a persisted line that cannot be decoded. Callers
// skip the record and keep loading.
var ErrMalformedRecord = errors.New("malformed record")

const (
	fieldSep       = ";"
	emailSep       = ","
	userFieldCount = 3
	eventMaxFields = 6

	// Timestamps are local date-times; seconds are written only when nonzero
	// so existing data files keep their minute-precision form.
	timeLayoutMinutes = "2006-01-02T15:04"
	timeLayoutSeconds = "2006-01-02T15:04:05"
)

func marshalUser(u *domain.User) string {
	return u.Name + fieldSep + u.Email + fieldSep + u.Phone
}

func unmarshalUser(line string) (*domain.User, error) {
	parts := strings.Split(line, fieldSep)
	if len(parts) != userFieldCount {
		return nil, fmt.Errorf("%w: user record has %d fields, want %d", ErrMalformedRecord, len(parts), userFieldCount)
	}
	return domain.NewUser(parts[0], parts[1], parts[2]), nil
}

func marshalEvent(e *domain.Event) string {
	var sb strings.Builder
	sb.WriteString(e.Name)
	sb.WriteString(fieldSep)
	sb.WriteString(e.Address)
	sb.WriteString(fieldSep)
	sb.WriteString(e.Category.String())
	sb.WriteString(fieldSep)
	sb.WriteString(formatTime(e.StartTime))
	sb.WriteString(fieldSep)
	// The description field must not break the fixed-delimiter split, so
	// embedded separators are collapsed to commas. Lossy, but deterministic.
	sb.WriteString(strings.ReplaceAll(e.Description, fieldSep, emailSep))
	sb.WriteString(fieldSep)
	for i, p := range e.Participants {
		if i > 0 {
			sb.WriteString(emailSep)
		}
		sb.WriteString(p.Email)
	}
	return sb.String()
}

// unmarshalEvent decodes one event record, resolving participant emails
// through resolve. Emails that resolve to no known user are dropped.
func unmarshalEvent(line string, resolve func(email string) (*domain.User, bool)) (*domain.Event, error) {
	parts := strings.SplitN(line, fieldSep, eventMaxFields)
	if len(parts) < eventMaxFields-1 {
		return nil, fmt.Errorf("%w: event record has %d fields, want at least %d", ErrMalformedRecord, len(parts), eventMaxFields-1)
	}

	category, err := domain.ParseCategory(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: unknown category %q", ErrMalformedRecord, parts[2])
	}
	start, err := parseTime(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: bad timestamp %q", ErrMalformedRecord, parts[3])
	}

	event := domain.NewEvent(parts[0], parts[1], category, start, parts[4])
	if len(parts) == eventMaxFields {
		for _, email := range strings.Split(parts[5], emailSep) {
			if u, ok := resolve(email); ok {
				event.AddParticipant(u)
			}
		}
	}
	return event, nil
}

func formatTime(t time.Time) string {
	if t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(timeLayoutMinutes)
	}
	return t.Format(timeLayoutSeconds)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayoutSeconds, s, time.Local)
	if err == nil {
		return t, nil
	}
	return time.ParseInLocation(timeLayoutMinutes, s, time.Local)
}
