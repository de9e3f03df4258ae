package domain

import (
	"context"
	"time"
)

// EventDuration is the fixed window during which an event counts as ongoing.
const EventDuration = 4 * time.Hour

// Category classifies an event. The numeric values and their order are part
// of the persisted format and of the menu selection contract; do not reorder.
type Category int

const (
	CategoryParty Category = iota
	CategoryShow
	CategorySports
	CategoryConference
	CategoryTheater
	CategoryOther
)

var categoryNames = [...]string{
	CategoryParty:      "FESTA",
	CategoryShow:       "SHOW",
	CategorySports:     "ESPORTE",
	CategoryConference: "CONFERENCIA",
	CategoryTheater:    "TEATRO",
	CategoryOther:      "OUTROS",
}

// String returns the persisted category name.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "OUTROS"
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return c >= 0 && int(c) < len(categoryNames)
}

// Categories returns all categories in their fixed order.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range categoryNames {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory maps a persisted name back to its Category. The match is
// case-sensitive exact, per the file format.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, ErrInvalidInput
}

// CategoryFromIndex selects a category by its ordinal, as the menu does.
func CategoryFromIndex(i int) (Category, error) {
	if i < 0 || i >= len(categoryNames) {
		return 0, ErrInvalidInput
	}
	return Category(i), nil
}

// EventStatus describes where an event sits relative to a point in time.
type EventStatus int

const (
	StatusScheduled EventStatus = iota
	StatusOngoing
	StatusPast
)

// String returns the display tag used in event listings.
func (s EventStatus) String() string {
	switch s {
	case StatusOngoing:
		return "OCORRENDO AGORA"
	case StatusPast:
		return "JÁ OCORREU"
	default:
		return "AGENDADO"
	}
}

// Event represents a registered event. Participants holds non-owning
// references to users in insertion order, each at most once.
type Event struct {
	Name         string
	Address      string
	Category     Category
	StartTime    time.Time
	Description  string
	Participants []*User
}

// NewEvent returns a new Event with an empty participant list.
func NewEvent(name, address string, category Category, start time.Time, description string) *Event {
	return &Event{
		Name:        name,
		Address:     address,
		Category:    category,
		StartTime:   start,
		Description: description,
	}
}

// AddParticipant appends the user to the participant list if not already
// present. It reports whether the user was added.
func (e *Event) AddParticipant(u *User) bool {
	if e.HasParticipant(u) {
		return false
	}
	e.Participants = append(e.Participants, u)
	return true
}

// RemoveParticipant removes the user from the participant list. Removing a
// user who is not participating is a no-op.
func (e *Event) RemoveParticipant(u *User) {
	for i, p := range e.Participants {
		if p.Equal(u) {
			e.Participants = append(e.Participants[:i], e.Participants[i+1:]...)
			return
		}
	}
}

// HasParticipant reports whether the user is in the participant list.
func (e *Event) HasParticipant(u *User) bool {
	for _, p := range e.Participants {
		if p.Equal(u) {
			return true
		}
	}
	return false
}

// StatusAt returns the event status relative to now: ongoing from the start
// time until EventDuration has elapsed, past afterwards, scheduled before.
func (e *Event) StatusAt(now time.Time) EventStatus {
	switch {
	case now.Before(e.StartTime):
		return StatusScheduled
	case now.Before(e.StartTime.Add(EventDuration)):
		return StatusOngoing
	default:
		return StatusPast
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	List(ctx context.Context) ([]*Event, error)
}

// EventService defines the business logic for events and participation.
type EventService interface {
	CreateEvent(ctx context.Context, name, address string, category Category, start time.Time, description string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	Join(ctx context.Context, event *Event, user *User) (bool, error)
	Leave(ctx context.Context, event *Event, user *User) error
	ListJoined(ctx context.Context, user *User) ([]*Event, error)
}
